package router

import (
	"timeclock/backend/foundation/web"
	"timeclock/backend/internal/auth"
	"timeclock/backend/internal/editstate"
	"timeclock/backend/internal/middleware"
	"timeclock/backend/internal/pkg/repository/postgresql"
	"timeclock/backend/internal/policy"

	"github.com/redis/go-redis/v9"

	"timeclock/backend/internal/repository/postgres/attendance"
	"timeclock/backend/internal/repository/postgres/company"
	"timeclock/backend/internal/repository/postgres/employee"
	"timeclock/backend/internal/repository/postgres/shift"
	"timeclock/backend/internal/repository/postgres/user"

	attendance_controller "timeclock/backend/internal/controller/http/v1/attendance"
	auth_controller "timeclock/backend/internal/controller/http/v1/auth"
	company_controller "timeclock/backend/internal/controller/http/v1/company"
	employee_controller "timeclock/backend/internal/controller/http/v1/employee"
	report_controller "timeclock/backend/internal/controller/http/v1/report"
	shift_controller "timeclock/backend/internal/controller/http/v1/shift"
	user_controller "timeclock/backend/internal/controller/http/v1/user"
)

type Router struct {
	*web.App
	postgresDB     *postgresql.Database
	redisDB        *redis.Client
	port           string
	auth           *auth.Auth
	jwtKey         string
	baseURL        string
	allowedOrigins []string
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	redisDB *redis.Client,
	port string,
	auth *auth.Auth,
	jwtKey string,
	baseURL string,
	allowedOrigins []string,
) *Router {
	return &Router{
		app,
		postgresDB,
		redisDB,
		port,
		auth,
		jwtKey,
		baseURL,
		allowedOrigins,
	}
}

func (r Router) Init() error {

	r.HandleMethodNotAllowed = true
	r.Use(middleware.CORSMiddleware(r.allowedOrigins))

	// - postgresql
	userPostgres := user.NewRepository(r.postgresDB)
	employeePostgres := employee.NewRepository(r.postgresDB)
	shiftPostgres := shift.NewRepository(r.postgresDB)
	attendancePostgres := attendance.NewRepository(r.postgresDB)
	companyPostgres := company.NewRepository(r.postgresDB)

	// - redis
	tracker := editstate.NewTracker(r.redisDB)

	// controller
	authController := auth_controller.NewController(userPostgres, r.auth, r.jwtKey)
	userController := user_controller.NewController(userPostgres)
	employeeController := employee_controller.NewController(employeePostgres, r.baseURL)
	shiftController := shift_controller.NewController(shiftPostgres, tracker)
	attendanceController := attendance_controller.NewController(attendancePostgres)
	reportController := report_controller.NewController(attendancePostgres)
	companyController := company_controller.NewController(companyPostgres)

	// #auth
	r.Post("/api/v1/sign-in", authController.SignIn)
	r.Post("/api/v1/refresh-token", authController.RefreshToken)
	r.Post("/api/v1/sign-out", authController.SignOut)

	// #user
	r.Get("/api/v1/user/list", userController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/user/:id", userController.GetDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/user/create", userController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Put("/api/v1/user/:id", userController.UpdateAll, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/user/:id", userController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #employee
	r.Get("/api/v1/attendances/employees", employeeController.GetList,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceEmployees, policy.ActionReadAny))
	r.Get("/api/v1/attendances/employees/export", employeeController.ExportExcel,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceEmployees, policy.ActionReadAny))
	r.Get("/api/v1/attendances/employees/:id", employeeController.GetDetailById,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceEmployees, policy.ActionReadAny))
	r.Get("/api/v1/attendances/employees/:id/badge", employeeController.Badge,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceEmployees, policy.ActionReadAny))
	r.Post("/api/v1/attendances/employees", employeeController.Create,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceEmployees, policy.ActionCreate))
	r.Put("/api/v1/attendances/employees/:id", employeeController.UpdateAll,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceEmployees, policy.ActionUpdateAny))
	r.Delete("/api/v1/attendances/employees/:id", employeeController.Delete,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceEmployees, policy.ActionDelete))

	// #shift
	r.Get("/api/v1/attendances/shifts", shiftController.GetList,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceShifts, policy.ActionReadAny))
	r.Get("/api/v1/attendances/shifts/:id", shiftController.GetDetailById,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceShifts, policy.ActionReadAny))
	r.Post("/api/v1/attendances/shifts", shiftController.Create,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceShifts, policy.ActionCreate))
	r.Put("/api/v1/attendances/shifts/:id", shiftController.UpdateAll,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceShifts, policy.ActionUpdateAny))
	r.Delete("/api/v1/attendances/shifts/:id", shiftController.Delete,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceShifts, policy.ActionDelete))

	// #shift days
	r.Post("/api/v1/attendances/shifts/days", shiftController.CreateDay,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceShifts, policy.ActionCreate))
	r.Delete("/api/v1/attendances/shifts/days/:id", shiftController.DeleteDay,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceShifts, policy.ActionDelete))

	// #shift schedules
	r.Post("/api/v1/attendances/shifts/schedules", shiftController.CreateSchedule,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceShifts, policy.ActionCreate))
	r.Put("/api/v1/attendances/shifts/schedules/:id", shiftController.UpdateSchedule,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceShifts, policy.ActionUpdateAny))
	r.Get("/api/v1/attendances/shifts/schedules/:id/status", shiftController.GetScheduleStatus,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceShifts, policy.ActionReadAny))
	r.Delete("/api/v1/attendances/shifts/schedules/:id", shiftController.DeleteSchedule,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceShifts, policy.ActionDelete))

	// #attendance, kiosk
	r.Get("/api/v1/employees/attendances/register", attendanceController.Register,
		middleware.Authenticate(r.auth))
	r.Post("/api/v1/employees/attendances", attendanceController.Punch,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceAttendances, policy.ActionCreate))
	r.Get("/api/v1/employees/attendances", attendanceController.GetRangeList,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceAttendances, policy.ActionReadAny))

	// #report
	r.Get("/api/v1/employees/attendances/report", reportController.GetReport,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceAttendances, policy.ActionReadAny))
	r.Get("/api/v1/employees/attendances/report/excel", reportController.ExportExcel,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceAttendances, policy.ActionReadAny))
	r.Get("/api/v1/employees/attendances/report/pdf", reportController.ExportPDF,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceAttendances, policy.ActionReadAny))

	// #company
	r.Get("/api/v1/company_info", companyController.GetInfo,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceCompany, policy.ActionReadAny))
	r.Put("/api/v1/company_info", companyController.UpdateAll,
		middleware.Authenticate(r.auth), middleware.Authorize(policy.ResourceCompany, policy.ActionUpdateAny))

	return r.Run(r.port)
}
