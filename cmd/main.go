package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"timeclock/backend/foundation/web"
	"timeclock/backend/internal/auth"
	"timeclock/backend/internal/commands"
	"timeclock/backend/internal/pkg/config"
	"timeclock/backend/internal/pkg/repository/postgresql"
	"timeclock/backend/internal/router"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var build = "develop"

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, commands.ErrHelp) {
			log.Println("main: error:", err)
		}
		os.Exit(1)
	}
}

func run() error {
	var cfg struct {
		conf.Version
		Web struct {
			Port           string `conf:"default::8080"`
			AllowedOrigins string `conf:"default:http://localhost:3000"`
		}
		ConfigPath string `conf:"default:config.yaml"`
		Migrate    bool   `conf:"default:true"`
	}
	cfg.Version.SVN = build

	if err := conf.Parse(os.Args[1:], "TIMECLOCK", &cfg); err != nil {
		switch {
		case errors.Is(err, conf.ErrHelpWanted):
			usage, err := conf.Usage("TIMECLOCK", &cfg)
			if err != nil {
				return errors.Wrap(err, "generating config usage")
			}
			fmt.Println(usage)
			return commands.ErrHelp
		case errors.Is(err, conf.ErrVersionWanted):
			version, err := conf.VersionString("TIMECLOCK", &cfg)
			if err != nil {
				return errors.Wrap(err, "generating config version")
			}
			fmt.Println(version)
			return commands.ErrHelp
		}
		return errors.Wrap(err, "parsing config")
	}

	fileCfg, err := config.NewConfig(cfg.ConfigPath)
	if err != nil {
		return errors.Wrap(err, "reading config file")
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		fileCfg.DBUsername,
		fileCfg.DBPassword,
		fileCfg.DBHost,
		fileCfg.DBPort,
		fileCfg.DBName,
	)

	postgresDB := postgresql.NewDatabase(dsn, fileCfg.DisableTLS)
	defer postgresDB.Close()

	if cfg.Migrate {
		commands.MigrateUP(postgresDB)
	}

	redisDB := redis.NewClient(&redis.Options{
		Addr:     fileCfg.RedisAddr,
		Password: fileCfg.RedisPassword,
	})
	defer redisDB.Close()

	authenticator := auth.New(fileCfg.JWTKey, redisDB)

	app := web.NewApp()

	r := router.NewRouter(
		app,
		postgresDB,
		redisDB,
		cfg.Web.Port,
		authenticator,
		fileCfg.JWTKey,
		fileCfg.BaseUrl,
		strings.Split(cfg.Web.AllowedOrigins, ","),
	)

	log.Println("main: starting api on", cfg.Web.Port)

	return r.Init()
}
