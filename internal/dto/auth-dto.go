package dto

import "gearguard/internal/entities"

type SignUpCompanyDTO struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

type SignUpDTO struct {
	Email    string            `json:"email" validate:"omitempty,email"`
	Password string            `json:"password"`
	Name     string            `json:"name"`
	Company  *SignUpCompanyDTO `json:"company"`
	Role     string            `json:"role" validate:"omitempty,role"`
}

type SignInDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponseDTO struct {
	User *entities.User `json:"user"`
}

type CheckFirstUserDTO struct {
	IsFirstUser bool `json:"isFirstUser"`
}

type ProfileDTO struct {
	User        *entities.User `json:"user"`
	Permissions []string       `json:"permissions"`
}
