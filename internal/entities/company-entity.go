package entities

import (
	"github.com/aarondl/null/v8"

	"gearguard/pkg/types"
)

type Company struct {
	ID       string      `json:"id" db:"id"`
	Name     string      `json:"name" db:"name"`
	Location null.String `json:"location" db:"location"`

	types.BaseEntity
}
