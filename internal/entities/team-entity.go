package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"gearguard/pkg/types"
)

type Team struct {
	ID          string      `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Description null.String `json:"description" db:"description"`
	CompanyID   string      `json:"companyId" db:"company_id"`

	types.BaseEntity

	Members  []TeamMember         `json:"members" db:"-"`
	Requests []MaintenanceRequest `json:"requests,omitempty" db:"-"`
}

type TeamMember struct {
	ID        string    `json:"id" db:"id"`
	TeamID    string    `json:"teamId" db:"team_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	User *UserShort `json:"user,omitempty" db:"-"`
}

type TeamShort struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
