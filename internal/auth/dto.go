package auth

import (
	"github.com/frahmantamala/permit-management/internal"
	"github.com/frahmantamala/permit-management/internal/core/common/validation"
)

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("email", dto.Email).Required("Email is required.")
	v.Field("password", dto.Password).Required("Password is required.")
	return v.Validate()
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token"`
}
