package handler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/platefinder/api/internal/dto"
	"github.com/platefinder/api/internal/entity"
	middlewarepkg "github.com/platefinder/api/internal/middleware"
	"github.com/platefinder/api/internal/repository"
	"github.com/platefinder/api/internal/service"
)

// Recommender produces restaurant records for a validated request.
type Recommender interface {
	Fetch(ctx context.Context, req dto.RecommendRequest) ([]dto.RestaurantRecord, error)
}

// RecommendHandler serves restaurant recommendation requests.
type RecommendHandler struct {
	recommender Recommender
	queries     repository.QueriesRepository
}

// NewRecommendHandler wires the handler. The queries repository is optional;
// without it no audit trail is written.
func NewRecommendHandler(recommender Recommender, queries repository.QueriesRepository) *RecommendHandler {
	return &RecommendHandler{recommender: recommender, queries: queries}
}

// Recommend handles POST /recommendations.
func (h *RecommendHandler) Recommend(c echo.Context) error {
	var req dto.RecommendRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if err := normalizeRecommendRequest(&req); err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	records, err := h.recommender.Fetch(c.Request().Context(), req)
	if err != nil {
		return Error(c, http.StatusBadGateway, "recommendation service unavailable")
	}

	auditQuery(c, h.queries, req, len(records))
	return Success(c, http.StatusOK, "recommendations ready", records)
}

// normalizeRecommendRequest validates the coordinate and fills filter
// defaults. Unknown filter values are rejected rather than passed to the
// model, since they end up verbatim in the prompt.
func normalizeRecommendRequest(req *dto.RecommendRequest) error {
	if err := service.ValidateCoordinate(req.Latitude, req.Longitude); err != nil {
		return err
	}

	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		req.Category = dto.CategoryAny
	}

	req.Price = strings.TrimSpace(req.Price)
	if req.Price == "" {
		req.Price = dto.PriceModerate
	}
	if !dto.ValidPriceLevel(req.Price) {
		return fmt.Errorf("unsupported price level: %s", req.Price)
	}

	req.Distance = strings.TrimSpace(req.Distance)
	if req.Distance == "" {
		req.Distance = dto.DistanceNear
	}
	if !dto.ValidDistanceRange(req.Distance) {
		return fmt.Errorf("unsupported distance range: %s", req.Distance)
	}

	return nil
}

// auditQuery records the request parameters best-effort. Failures are logged
// and never influence the response.
func auditQuery(c echo.Context, queries repository.QueriesRepository, req dto.RecommendRequest, resultCount int) {
	if queries == nil {
		return
	}

	query := entity.RecommendationQuery{
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Category:    req.Category,
		Price:       req.Price,
		Distance:    req.Distance,
		ResultCount: resultCount,
	}
	if uid, err := uuid.Parse(middlewarepkg.UserIDFromContext(c)); err == nil {
		query.UserID = &uid
	}

	if err := queries.Record(c.Request().Context(), query); err != nil {
		log.Printf("request_id=%s audit insert failed: %v", middlewarepkg.RequestIDFromContext(c), err)
	}
}
