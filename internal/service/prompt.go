package service

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/platefinder/api/internal/dto"
)

var (
	distancePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(km|m|公里|公尺|米)`)
	stopwordExpr    = regexp.MustCompile(`(?i)\b(find|show|me|some|good|nearby|close(?:st)?|please|restaurants?|places?|food|eat|within|walking|distance|a|an|the)\b|附近|餐廳|美食|推薦|想吃|幫我|請|找|的`)
)

var priceHints = []struct {
	expr  *regexp.Regexp
	level string
}{
	{regexp.MustCompile(`(?i)\b(cheap|budget)\b|便宜|平價`), dto.PriceCheap},
	{regexp.MustCompile(`(?i)\b(moderate|mid-range)\b|中等`), dto.PriceModerate},
	{regexp.MustCompile(`(?i)\b(upscale|fancy|expensive)\b|高級`), dto.PriceUpscale},
	{regexp.MustCompile(`(?i)\b(luxury|splurge)\b|奢華|頂級`), dto.PriceLuxury},
}

// PromptService interprets free-form recommendation requests.
type PromptService struct{}

// PromptResult contains structured filters derived from a prompt.
type PromptResult struct {
	Category string
	Price    string
	Distance string
}

// NewPromptService creates a prompt parser.
func NewPromptService() *PromptService {
	return &PromptService{}
}

// Parse converts a free-form prompt into recommendation filters. Anything it
// cannot extract falls back to the same defaults the structured endpoint uses.
func (s *PromptService) Parse(req dto.PromptRecommendRequest) (PromptResult, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return PromptResult{}, errors.New("prompt is required")
	}

	result := PromptResult{
		Category: dto.CategoryAny,
		Price:    dto.PriceModerate,
		Distance: dto.DistanceNear,
	}

	rest := prompt
	if match := distancePattern.FindStringSubmatch(rest); len(match) > 2 {
		result.Distance = bucketDistance(match[1], match[2])
		rest = strings.Replace(rest, match[0], " ", 1)
	}

	for _, hint := range priceHints {
		if hint.expr.MatchString(rest) {
			result.Price = hint.level
			rest = hint.expr.ReplaceAllString(rest, " ")
			break
		}
	}

	category := stopwordExpr.ReplaceAllString(rest, " ")
	category = strings.Join(strings.Fields(category), " ")
	if category != "" {
		result.Category = category
	}

	return result, nil
}

// bucketDistance snaps a parsed distance onto the closest selectable range.
func bucketDistance(value, unit string) string {
	meters, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return dto.DistanceNear
	}
	switch strings.ToLower(unit) {
	case "km", "公里":
		meters *= 1000
	}

	switch {
	case meters <= 500:
		return dto.DistanceWalking
	case meters <= 1000:
		return dto.DistanceNear
	case meters <= 3000:
		return dto.DistanceMedium
	default:
		return dto.DistanceFar
	}
}
