package company

type GetInfoResponse struct {
	ID               int     `json:"id"`
	Name             *string `json:"name"`
	Timezone         *string `json:"timezone"`
	ToleranceMinutes int     `json:"tolerance_minutes"`
}

type UpdateRequest struct {
	Name             *string `json:"name" form:"name"`
	Timezone         *string `json:"timezone" form:"timezone"`
	ToleranceMinutes *int    `json:"tolerance_minutes" form:"tolerance_minutes"`
}
