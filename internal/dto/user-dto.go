package dto

type CreateUserDTO struct {
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	Role       string  `json:"role" validate:"required,role"`
	Department *string `json:"department,omitempty"`
}

type UpdateUserDTO struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Role       *string `json:"role,omitempty" validate:"omitempty,role"`
	Department *string `json:"department,omitempty"`
	Password   *string `json:"password,omitempty"`
}
