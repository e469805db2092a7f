package dto

type CreateTeamDTO struct {
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description,omitempty"`
	MemberIDs   []string `json:"memberIds,omitempty" validate:"omitempty,dive,required"`
	CompanyID   string   `json:"companyId,omitempty"`
}

type UpdateTeamDTO struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
}

type AddTeamMemberDTO struct {
	UserID string  `json:"userId" validate:"required"`
	Role   *string `json:"role,omitempty"`
}

type RemoveTeamMemberDTO struct {
	MemberID string `json:"memberId" validate:"required"`
}
