package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/platefinder/api/internal/dto"
	"github.com/platefinder/api/internal/repository"
	"github.com/platefinder/api/internal/service"
)

// PromptRecommendHandler accepts free-form prompts and turns them into
// structured recommendation requests.
type PromptRecommendHandler struct {
	prompts     *service.PromptService
	recommender Recommender
	queries     repository.QueriesRepository
}

// NewPromptRecommendHandler wires the handler.
func NewPromptRecommendHandler(prompts *service.PromptService, recommender Recommender, queries repository.QueriesRepository) *PromptRecommendHandler {
	return &PromptRecommendHandler{prompts: prompts, recommender: recommender, queries: queries}
}

// Recommend handles POST /recommendations/prompt.
func (h *PromptRecommendHandler) Recommend(c echo.Context) error {
	var req dto.PromptRecommendRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		return Error(c, http.StatusBadRequest, "prompt is required")
	}

	result, err := h.prompts.Parse(req)
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	recommendReq := dto.RecommendRequest{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Category:  result.Category,
		Price:     result.Price,
		Distance:  result.Distance,
	}
	if err := normalizeRecommendRequest(&recommendReq); err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	records, err := h.recommender.Fetch(c.Request().Context(), recommendReq)
	if err != nil {
		return Error(c, http.StatusBadGateway, "recommendation service unavailable")
	}

	auditQuery(c, h.queries, recommendReq, len(records))
	return Success(c, http.StatusOK, "recommendations ready", dto.PromptRecommendResponse{
		Prompt:      req.Prompt,
		Category:    recommendReq.Category,
		Price:       recommendReq.Price,
		Distance:    recommendReq.Distance,
		Restaurants: records,
	})
}
