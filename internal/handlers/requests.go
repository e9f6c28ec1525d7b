package handlers

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

type LoginRequest struct {
	Mail     string `json:"mail" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Mail     string `json:"mail" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *CreateUserRequest) Validate() error {
	return validate.Struct(r)
}

// PatchUserRequest holds the optional fields of a partial update. A nil
// pointer means the field was not sent.
type PatchUserRequest struct {
	Name     *string `json:"name" validate:"omitnil,min=1"`
	Mail     *string `json:"mail" validate:"omitnil,email"`
	Password *string `json:"password" validate:"omitnil,min=1"`
	Active   *bool   `json:"active"`
}

func (r *PatchUserRequest) Validate() error {
	return validate.Struct(r)
}

type TokenResponse struct {
	Token string `json:"token"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
