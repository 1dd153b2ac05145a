package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/roadassist/internal/pkg/logger"
	"github.com/piresc/roadassist/internal/pkg/middleware"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/piresc/roadassist/internal/utils"
	"github.com/piresc/roadassist/services/matching"
)

// MatchingHandler handles HTTP requests for provider search and status
type MatchingHandler struct {
	matchingUC matching.MatchingUC
}

// NewMatchingHandler creates a new matching HTTP handler
func NewMatchingHandler(matchingUC matching.MatchingUC) *MatchingHandler {
	return &MatchingHandler{
		matchingUC: matchingUC,
	}
}

// SearchProviders ranks the providers able to serve the query
func (h *MatchingHandler) SearchProviders(c echo.Context) error {
	middleware.SetTransactionName(c.Request().Context(), "Matching.SearchProviders")

	var query models.SearchQuery
	if err := c.Bind(&query); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	candidates, err := h.matchingUC.Search(c.Request().Context(), query)
	if err != nil {
		middleware.NoticeError(c, err)
		logger.WarnCtx(c.Request().Context(), "Provider search failed", logger.Err(err))
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Providers found", candidates)
}

// SetStatus takes the calling provider online or offline
func (h *MatchingHandler) SetStatus(c echo.Context) error {
	middleware.SetTransactionName(c.Request().Context(), "Matching.SetStatus")

	providerID, _, ok := middleware.Caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	var req models.ProviderStatusRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	if err := h.matchingUC.SetStatus(c.Request().Context(), providerID, req); err != nil {
		middleware.NoticeError(c, err)
		logger.WarnCtx(c.Request().Context(), "Failed to update provider status",
			logger.String("provider_id", providerID.String()),
			logger.Err(err))
		return utils.DomainErrorResponse(c, err)
	}

	message := "You are offline"
	if req.Online {
		message = "You are online"
	}
	return utils.SuccessResponse(c, http.StatusOK, message, req)
}
