package handlers

import (
	"net/http"

	"carteirab3/internal/api/middleware"
	"carteirab3/internal/api/response"
	"carteirab3/internal/service"
)

// DashboardHandler serves the aggregated chart endpoints.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// PortfolioEvolution handles GET requests for the total-value-over-time
// chart.
//
// Endpoint: GET /api/dashboard/portfolio-evolution?period=2y|5y|10y|max
func (h *DashboardHandler) PortfolioEvolution(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFrom(r.Context())
	period := paramOr(r.URL.Query().Get("period"), "max")

	chart, err := h.dashboardService.PortfolioEvolution(userID, period)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to fetch portfolio evolution data", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, chart)
}

// PortfolioByAssetType handles GET requests for the per-category value
// chart.
//
// Endpoint: GET /api/dashboard/portfolio-by-asset-type?period=2y|5y|10y|max
func (h *DashboardHandler) PortfolioByAssetType(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFrom(r.Context())
	period := paramOr(r.URL.Query().Get("period"), "2y")

	chart, err := h.dashboardService.PortfolioByAssetType(userID, period)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to fetch portfolio by asset type data", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, chart)
}

// ProventosChart handles GET requests for the monthly income chart.
//
// Endpoint: GET /api/proventos/chart?period=1y|2y|5y|all
func (h *DashboardHandler) ProventosChart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFrom(r.Context())
	period := paramOr(r.URL.Query().Get("period"), "1y")

	chart, err := h.dashboardService.ProventosMonthly(userID, period)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to fetch proventos chart data", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, chart)
}
