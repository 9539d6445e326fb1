package api

import (
	"context"
	"errors"
	"net/http"

	apperrors "jobsweep/internal/errors"
	"jobsweep/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Analytics is the slice of the jobs repository the handlers need.
type Analytics interface {
	KPI(ctx context.Context) (*store.KPIReport, error)
	Distribution(ctx context.Context, country, variable string) ([]store.NameCount, error)
	Trend(ctx context.Context, country string) ([]store.MonthCount, error)
	RegionComparison(ctx context.Context) ([]store.RegionCount, error)
}

type Handler struct {
	analytics Analytics
	logger    *zap.Logger
}

func NewHandler(analytics Analytics, logger *zap.Logger) *Handler {
	return &Handler{analytics: analytics, logger: logger}
}

func (h *Handler) KPI(c *gin.Context) {
	report, err := h.analytics.KPI(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) Distribution(c *gin.Context) {
	country := c.DefaultQuery("country", "All")
	variable := c.DefaultQuery("variable", "company")

	data, err := h.analytics.Distribution(c.Request.Context(), country, variable)
	if err != nil {
		h.fail(c, err)
		return
	}
	if data == nil {
		data = []store.NameCount{}
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handler) Trend(c *gin.Context) {
	country := c.DefaultQuery("country", "All")

	data, err := h.analytics.Trend(c.Request.Context(), country)
	if err != nil {
		h.fail(c, err)
		return
	}
	if data == nil {
		data = []store.MonthCount{}
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handler) RegionComparison(c *gin.Context) {
	data, err := h.analytics.RegionComparison(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if data == nil {
		data = []store.RegionCount{}
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handler) fail(c *gin.Context, err error) {
	var domainErr *apperrors.DomainError
	errors.As(err, &domainErr)

	switch apperrors.TypeOf(err) {
	case apperrors.ErrTypeInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": domainErr.Message})
	case apperrors.ErrTypeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": domainErr.Message})
	default:
		h.logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
