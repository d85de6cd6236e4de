package dto

// UserCreate represents the data needed to register a user.
type UserCreate struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=6"`
	Image    string `json:"image,omitempty" validate:"omitempty,url"`
}

// LoginInput is the body of POST /auth/login.
type LoginInput struct {
	Identity string `json:"identity" validate:"required"`
	Password string `json:"password" validate:"required"`
}
