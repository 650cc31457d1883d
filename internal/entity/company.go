package entity

import (
	"github.com/uptrace/bun"
)

type Company struct {
	bun.BaseModel `bun:"table:company_info"`

	BasicEntity
	Name             *string `json:"name"              bun:"name"`
	Timezone         *string `json:"timezone"          bun:"timezone"`
	ToleranceMinutes *int    `json:"tolerance_minutes" bun:"tolerance_minutes"`
}
