package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/platefinder/api/internal/repository"
)

// QueryAuditHandler exposes the recommendation query audit trail to admins.
type QueryAuditHandler struct {
	queries repository.QueriesRepository
}

// NewQueryAuditHandler constructs a QueryAuditHandler.
func NewQueryAuditHandler(queries repository.QueriesRepository) *QueryAuditHandler {
	return &QueryAuditHandler{queries: queries}
}

// List handles GET /admin/queries.
func (h *QueryAuditHandler) List(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return Error(c, http.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}

	queries, err := h.queries.List(c.Request().Context(), limit)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to list queries")
	}

	return Success(c, http.StatusOK, "queries retrieved", queries)
}
