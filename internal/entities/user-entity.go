package entities

import (
	"github.com/aarondl/null/v8"

	"gearguard/pkg/types"
)

type User struct {
	ID          string      `json:"id" db:"id"`
	Email       string      `json:"email" db:"email"`
	Password    string      `json:"-" db:"password"`
	Name        string      `json:"name" db:"name"`
	Role        string      `json:"role" db:"role"`
	CompanyID   null.String `json:"companyId" db:"company_id"`
	CompanyName string      `json:"companyName" db:"company_name"`
	Department  null.String `json:"department" db:"department"`

	types.BaseEntity
}

// UserShort is the projection embedded in other entities.
type UserShort struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
