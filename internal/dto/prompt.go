package dto

// PromptRecommendRequest carries a free-form request plus the caller coordinate.
type PromptRecommendRequest struct {
	Prompt    string  `json:"prompt"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PromptRecommendResponse echoes the interpreted filters alongside the results.
type PromptRecommendResponse struct {
	Prompt      string             `json:"prompt"`
	Category    string             `json:"category"`
	Price       string             `json:"price"`
	Distance    string             `json:"distance"`
	Restaurants []RestaurantRecord `json:"restaurants"`
}
