package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockpilot/inventory-api/internal/httperr"
	ucDashboard "github.com/stockpilot/inventory-api/internal/usecase/dashboard"
)

type DashboardHandler struct {
	statsUC *ucDashboard.GetStats
}

func NewDashboardHandler(statsUC *ucDashboard.GetStats) *DashboardHandler {
	return &DashboardHandler{statsUC: statsUC}
}

// Page returns the dashboard page payload. The statistics are recomputed
// on every request.
func (h *DashboardHandler) Page(c *gin.Context) {
	user := currentUser(c)

	stats, err := h.statsUC.Execute(c.Request.Context(), user)
	if err != nil {
		httperr.Internal(c, "failed_to_compute_stats", "Could not load dashboard.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page": "Dashboard",
		"props": gin.H{
			"stats": stats,
		},
	})
}
