package api

import (
	"context"
	"errors"
	"net/http"

	"loyaltyflow/internal/dto/req"
	"loyaltyflow/internal/dto/resp"
	v1 "loyaltyflow/pkg/api/v1"
	"loyaltyflow/pkg/campaign"
	"loyaltyflow/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CampaignProvider interface {
	List(ctx context.Context) []v1.CampaignType
	Get(ctx context.Context, id campaign.ID) (*v1.CampaignType, error)
	Evaluate(ctx context.Context, id campaign.ID, in campaign.Input) (v1.Decision, error)
	Health(ctx context.Context) error
}

type CampaignHandler struct {
	service CampaignProvider
}

func NewCampaignHandler(service CampaignProvider) *CampaignHandler {
	return &CampaignHandler{service: service}
}

func (h *CampaignHandler) ListCampaignTypes(c *gin.Context) {
	c.JSON(http.StatusOK, resp.ListCampaignTypesResponse{Data: h.service.List(c.Request.Context())})
}

func (h *CampaignHandler) GetCampaignType(c *gin.Context) {
	var r req.CampaignTypeURI
	if err := c.ShouldBindUri(&r); err != nil {
		c.JSON(http.StatusBadRequest, resp.ErrorResponse{Error: "invalid campaign type"})
		return
	}

	ct, err := h.service.Get(c.Request.Context(), campaign.ID(r.ID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.GetCampaignTypeResponse{CampaignType: ct})
}

func (h *CampaignHandler) Evaluate(c *gin.Context) {
	var r req.CampaignTypeURI
	if err := c.ShouldBindUri(&r); err != nil {
		c.JSON(http.StatusBadRequest, resp.ErrorResponse{Error: "invalid campaign type"})
		return
	}
	var ec v1.EvaluationContext
	if err := c.ShouldBindJSON(&ec); err != nil {
		c.JSON(http.StatusBadRequest, resp.ErrorResponse{Error: "JSON format error"})
		return
	}

	id := campaign.ID(r.ID)
	decision, err := h.service.Evaluate(c.Request.Context(), id, ec.Input(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.EvaluateResponse{Decision: decision})
}

func (h *CampaignHandler) HealthCheck(c *gin.Context) {
	if err := h.service.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, campaign.ErrNotFound) {
		c.JSON(http.StatusNotFound, resp.ErrorResponse{Error: err.Error()})
		return
	}
	logger.Error("campaign request failed", zap.Error(err), zap.String("path", c.FullPath()))
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, resp.ErrorResponse{Error: "internal error"})
}
