package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/platefinder/api/internal/dto"
	"github.com/platefinder/api/internal/service"
)

func TestPromptRecommendHandler_Recommend(t *testing.T) {
	t.Run("requires a prompt", func(t *testing.T) {
		h := NewPromptRecommendHandler(service.NewPromptService(), &recommenderStub{}, nil)
		c, rec := newJSONContext(t, http.MethodPost, "/recommendations/prompt", `{"prompt":"   ","latitude":25.033,"longitude":121.565}`)

		if err := h.Recommend(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("rejects invalid coordinate", func(t *testing.T) {
		h := NewPromptRecommendHandler(service.NewPromptService(), &recommenderStub{}, nil)
		c, rec := newJSONContext(t, http.MethodPost, "/recommendations/prompt", `{"prompt":"ramen","latitude":95,"longitude":121.565}`)

		if err := h.Recommend(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("derives filters from the prompt", func(t *testing.T) {
		stub := &recommenderStub{records: []dto.RestaurantRecord{{ID: "rec-0-1", Name: "一蘭"}}}
		queries := &queriesStub{}
		h := NewPromptRecommendHandler(service.NewPromptService(), stub, queries)

		c, rec := newJSONContext(t, http.MethodPost, "/recommendations/prompt", `{"prompt":"cheap ramen within 1km","latitude":25.033,"longitude":121.565}`)

		if err := h.Recommend(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		if stub.got.Category != "ramen" || stub.got.Price != dto.PriceCheap || stub.got.Distance != dto.DistanceNear {
			t.Fatalf("unexpected derived request: %+v", stub.got)
		}
		if stub.got.Latitude != 25.033 || stub.got.Longitude != 121.565 {
			t.Fatalf("expected coordinate forwarded, got %+v", stub.got)
		}

		var resp struct {
			Data dto.PromptRecommendResponse `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Data.Prompt != "cheap ramen within 1km" || resp.Data.Category != "ramen" {
			t.Fatalf("unexpected response data: %+v", resp.Data)
		}
		if len(resp.Data.Restaurants) != 1 || resp.Data.Restaurants[0].Name != "一蘭" {
			t.Fatalf("unexpected restaurants: %+v", resp.Data.Restaurants)
		}

		if len(queries.recorded) != 1 || queries.recorded[0].Category != "ramen" {
			t.Fatalf("expected audit row with derived filters, got %+v", queries.recorded)
		}
	})

	t.Run("maps upstream failure to bad gateway", func(t *testing.T) {
		h := NewPromptRecommendHandler(service.NewPromptService(), &recommenderStub{err: errors.New("model unavailable")}, nil)
		c, rec := newJSONContext(t, http.MethodPost, "/recommendations/prompt", `{"prompt":"sushi","latitude":25.033,"longitude":121.565}`)

		if err := h.Recommend(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
	})
}
