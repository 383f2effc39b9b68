package request

type CreatePropertyRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=200"`
	Address     string  `json:"address" validate:"required,max=300"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}
