package service

import (
	"testing"

	"github.com/platefinder/api/internal/dto"
)

func TestPromptService_Parse(t *testing.T) {
	svc := NewPromptService()

	tests := map[string]struct {
		prompt string
		want   PromptResult
	}{
		"english with price and distance": {
			prompt: "cheap ramen within 1km",
			want:   PromptResult{Category: "ramen", Price: dto.PriceCheap, Distance: dto.DistanceNear},
		},
		"chinese with distance": {
			prompt: "幫我找附近的拉麵 500m",
			want:   PromptResult{Category: "拉麵", Price: dto.PriceModerate, Distance: dto.DistanceWalking},
		},
		"chinese price hint": {
			prompt: "高級壽司",
			want:   PromptResult{Category: "壽司", Price: dto.PriceUpscale, Distance: dto.DistanceNear},
		},
		"defaults when nothing extractable": {
			prompt: "sushi",
			want:   PromptResult{Category: "sushi", Price: dto.PriceModerate, Distance: dto.DistanceNear},
		},
		"category falls back when prompt is all filler": {
			prompt: "find me some food nearby",
			want:   PromptResult{Category: dto.CategoryAny, Price: dto.PriceModerate, Distance: dto.DistanceNear},
		},
		"fractional kilometers bucket upward": {
			prompt: "thai 2.5km",
			want:   PromptResult{Category: "thai", Price: dto.PriceModerate, Distance: dto.DistanceMedium},
		},
		"far distances clamp to the widest range": {
			prompt: "luxury steak 8km",
			want:   PromptResult{Category: "steak", Price: dto.PriceLuxury, Distance: dto.DistanceFar},
		},
		"meters in chinese units": {
			prompt: "牛肉麵 800公尺",
			want:   PromptResult{Category: "牛肉麵", Price: dto.PriceModerate, Distance: dto.DistanceNear},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := svc.Parse(dto.PromptRecommendRequest{Prompt: tc.prompt})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestPromptService_Parse_EmptyPrompt(t *testing.T) {
	svc := NewPromptService()

	if _, err := svc.Parse(dto.PromptRecommendRequest{Prompt: "   "}); err == nil {
		t.Fatalf("expected error for blank prompt")
	}
}
