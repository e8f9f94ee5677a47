package auth

import (
	"github.com/garagelab/modstudio-backend/internal/customers"
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// LoginInput carries the credentials presented at login.
type LoginInput struct {
	Email    string
	Password string
}

// SessionDTO is returned after a successful register or login.
type SessionDTO struct {
	Token    string                `json:"token"`
	Customer customers.CustomerDTO `json:"customer"`
}
