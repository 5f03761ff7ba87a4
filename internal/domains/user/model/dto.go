package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// =====================================================
// LOGIN REQUEST
// =====================================================

// LoginRequest carries the credential minted by the external identity
// provider. Email and name come from the verified credential, never from the
// request body; role is never accepted from the client.
type LoginRequest struct {
	IDToken string `json:"id_token"`
}

func (req LoginRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.IDToken, validation.Required),
	)
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// =====================================================
// UPDATE ROLE REQUEST
// =====================================================
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

func (req UpdateRoleRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Role, validation.Required, validation.In("user", "librarian", "admin")),
	)
}
