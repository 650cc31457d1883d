package entity

import (
	"github.com/uptrace/bun"
)

type Employee struct {
	bun.BaseModel `bun:"table:employees"`

	BasicEntity
	Name    *string `json:"name"  bun:"name"`
	Pin     *string `json:"pin"   bun:"pin"`
	ShiftID *int    `json:"shift" bun:"shift_id"`
}
