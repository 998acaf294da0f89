package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinic/backend/internal/application/report"
)

// ReportHandler handles earnings report HTTP requests.
type ReportHandler struct {
	BaseHandler
	earningsService *report.EarningsService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(earningsService *report.EarningsService) *ReportHandler {
	return &ReportHandler{earningsService: earningsService}
}

// RegisterRoutes registers the report endpoints.
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/earnings", h.GetEarnings)
	}
}

// GetEarnings returns the clinic's earnings report. Without start and end
// query parameters the window defaults to the current year to date.
func (h *ReportHandler) GetEarnings(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var start, end time.Time
	if raw := c.Query("start"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			h.BadRequest(c, "start must be in YYYY-MM-DD format")
			return
		}
		start = t
	}
	if raw := c.Query("end"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			h.BadRequest(c, "end must be in YYYY-MM-DD format")
			return
		}
		end = t
	}

	result, err := h.earningsService.GetEarnings(c.Request.Context(), report.EarningsInput{
		TenantID: tenantID,
		Start:    start,
		End:      end,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
