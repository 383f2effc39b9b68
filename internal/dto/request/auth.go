package request

type RegisterRequest struct {
	FullName string  `json:"full_name" validate:"required,min=2,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role" validate:"required,oneof=contractor landlord"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	Company  *string `json:"company,omitempty" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
