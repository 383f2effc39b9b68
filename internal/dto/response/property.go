package response

import (
	"time"

	"property-booking/internal/data/entity"
)

type PropertyResponse struct {
	ID          string    `json:"id"`
	LandlordID  string    `json:"landlord_id"`
	Title       string    `json:"title"`
	Address     string    `json:"address"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

func PropertyToResponse(p *entity.Property) PropertyResponse {
	return PropertyResponse{
		ID:          p.ID.String(),
		LandlordID:  p.LandlordID.String(),
		Title:       p.Title,
		Address:     p.Address,
		Description: p.Description,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt,
	}
}
