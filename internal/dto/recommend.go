package dto

// GeoLocation is the caller-supplied coordinate recommendations are biased to.
type GeoLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CategoryAny asks the model for any popular food instead of a specific cuisine.
const CategoryAny = "any"

// Price levels selectable by the caller, passed verbatim into the prompt.
const (
	PriceCheap    = "$"
	PriceModerate = "$$"
	PriceUpscale  = "$$$"
	PriceLuxury   = "$$$$"
)

// Distance ranges selectable by the caller, passed verbatim into the prompt.
const (
	DistanceWalking = "500m"
	DistanceNear    = "1km"
	DistanceMedium  = "3km"
	DistanceFar     = "5km"
)

// PriceLevels lists the accepted price filter values.
var PriceLevels = []string{PriceCheap, PriceModerate, PriceUpscale, PriceLuxury}

// DistanceRanges lists the accepted distance filter values.
var DistanceRanges = []string{DistanceWalking, DistanceNear, DistanceMedium, DistanceFar}

// ValidPriceLevel reports whether value is a selectable price filter.
func ValidPriceLevel(value string) bool {
	for _, level := range PriceLevels {
		if value == level {
			return true
		}
	}
	return false
}

// ValidDistanceRange reports whether value is a selectable distance filter.
func ValidDistanceRange(value string) bool {
	for _, distance := range DistanceRanges {
		if value == distance {
			return true
		}
	}
	return false
}

// RecommendRequest is the payload for the recommendation endpoint.
type RecommendRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Category  string  `json:"category,omitempty"`
	Price     string  `json:"price,omitempty"`
	Distance  string  `json:"distance,omitempty"`
}

// Location returns the request coordinate.
func (r RecommendRequest) Location() GeoLocation {
	return GeoLocation{Latitude: r.Latitude, Longitude: r.Longitude}
}

// RestaurantRecord is one recommendation parsed out of the model answer.
type RestaurantRecord struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Cuisine       string `json:"cuisine"`
	PriceEstimate string `json:"price_estimate"`
	Rating        string `json:"rating"`
	Description   string `json:"description"`
	MapURI        string `json:"map_uri"`
}
