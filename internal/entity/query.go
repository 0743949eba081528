package entity

import (
	"time"

	"github.com/google/uuid"
)

// RecommendationQuery is the audit record of one recommendation request.
// Only the request parameters and the result count are stored, never the
// generated restaurant records themselves.
type RecommendationQuery struct {
	ID          uuid.UUID  `json:"id"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Category    string     `json:"category"`
	Price       string     `json:"price"`
	Distance    string     `json:"distance"`
	ResultCount int        `json:"result_count"`
	CreatedAt   time.Time  `json:"created_at"`
}
