package types

// LoginRequest carries local credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return Validate.Struct(r)
}

// RegisterRequest creates a local account. Only admins can set IsAdmin.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6"`
	IsAdmin  bool   `json:"is_admin"`
}

func (r *RegisterRequest) Validate() error {
	return Validate.Struct(r)
}
