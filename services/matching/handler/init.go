package handler

import (
	"github.com/piresc/roadassist/services/matching"
	httpHandler "github.com/piresc/roadassist/services/matching/handler/http"
)

// Handler combines all handlers for the matching service
type Handler struct {
	matchingHTTP *httpHandler.MatchingHandler
}

// NewHandler creates a new combined handler
func NewHandler(matchingUC matching.MatchingUC) *Handler {
	return &Handler{
		matchingHTTP: httpHandler.NewMatchingHandler(matchingUC),
	}
}
