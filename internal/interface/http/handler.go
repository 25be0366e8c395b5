package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/cocktail-bac/internal/domain/bac"
)

// Handler wires the BAC endpoints to the domain service.
type Handler struct {
	bacSvc bac.Service
	logger *slog.Logger
}

// NewHandler constructs the BAC HTTP handler.
func NewHandler(bacSvc bac.Service, logger *slog.Logger) *Handler {
	return &Handler{
		bacSvc: bacSvc,
		logger: logger.With("component", "http.handler"),
	}
}

// Alcohol reports the ethanol mass of an ingredient list.
func (h *Handler) Alcohol(c *gin.Context) {
	var req bac.DosesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}
	resp, err := h.bacSvc.Alcohol(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err, "alcohol_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Estimate returns the instantaneous BAC for an explicit sex and weight.
func (h *Handler) Estimate(c *gin.Context) {
	var req bac.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}
	resp, err := h.bacSvc.Estimate(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err, "estimate_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Project applies elimination over the requested hours.
func (h *Handler) Project(c *gin.Context) {
	var req bac.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}
	resp, err := h.bacSvc.Project(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err, "project_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Risk classifies a BAC value.
func (h *Handler) Risk(c *gin.Context) {
	var req bac.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}
	tier, err := h.bacSvc.Classify(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err, "classify_failed"))
		return
	}
	c.JSON(http.StatusOK, tier)
}

// Summary composes the full summary for an inline profile.
func (h *Handler) Summary(c *gin.Context) {
	var req bac.SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}
	resp, err := h.bacSvc.Summarize(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err, "summary_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MySummary composes the summary using the caller's stored profile.
func (h *Handler) MySummary(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	var req bac.DosesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}
	resp, err := h.bacSvc.SummarizeForUser(c.Request.Context(), claims.UserID, req)
	if err != nil {
		abortWithError(c, fromDomainError(err, "summary_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Stats returns how often each risk tier has been served.
func (h *Handler) Stats(c *gin.Context) {
	resp, err := h.bacSvc.TierStats(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err, "stats_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
