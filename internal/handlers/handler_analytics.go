package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/dto"
)

type analyticsHandler struct {
	analyticsService portssvc.AnalyticsSvc
}

func registerAnalyticsRoutes(workspaceGroup *gin.RouterGroup, analyticsService portssvc.AnalyticsSvc) {
	h := &analyticsHandler{analyticsService: analyticsService}

	analytics := workspaceGroup.Group("/analytics")
	{
		analytics.GET("/field-activities/overview", h.overview)

		customers := analytics.Group("/customers")
		customers.GET("/top-customers", h.topCustomers)
		customers.GET("/health-check", h.healthCheck)
		customers.GET("/visit-frequency", h.visitFrequency)
		customers.GET("/:customer_id/timeline", h.customerTimeline)
	}
}

// overview godoc
// @Summary Workspace activity overview
// @Tags analytics
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.OverviewResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/analytics/field-activities/overview [get]
func (h *analyticsHandler) overview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	overview, err := h.analyticsService.Overview(c.Request.Context(), c.Param("workspace_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to compute overview")
		return
	}
	c.JSON(http.StatusOK, dto.ToOverviewResponse(*overview))
}

// topCustomers godoc
// @Summary Most visited customers
// @Tags analytics
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   limit query int false "Maximum results" default(10)
// @Param   date_from query string false "YYYY-MM-DD"
// @Success 200 {array} dto.TopCustomerResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/analytics/customers/top-customers [get]
func (h *analyticsHandler) topCustomers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.TopCustomersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	from, err := params.From()
	if err != nil {
		respondError(c, err, "Invalid date_from")
		return
	}
	customers, err := h.analyticsService.TopCustomers(c.Request.Context(), c.Param("workspace_id"), params.Limit, from, userID)
	if err != nil {
		respondError(c, err, "Failed to rank customers")
		return
	}
	c.JSON(http.StatusOK, dto.ToTopCustomerResponses(customers))
}

// customerTimeline godoc
// @Summary Visit history of one customer
// @Tags analytics
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   customer_id path string true "Customer ID"
// @Success 200 {object} dto.CustomerTimelineResponse
// @Failure 404 {object} ErrorResponse "No activities for this customer"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/analytics/customers/{customer_id}/timeline [get]
func (h *analyticsHandler) customerTimeline(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	timeline, err := h.analyticsService.CustomerTimeline(c.Request.Context(), c.Param("workspace_id"), c.Param("customer_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to build customer timeline")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerTimelineResponse(timeline))
}

// healthCheck godoc
// @Summary Customers by days since last visit
// @Tags analytics
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   days_threshold query int false "Days after which a customer needs attention" default(30)
// @Success 200 {array} dto.CustomerHealthResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/analytics/customers/health-check [get]
func (h *analyticsHandler) healthCheck(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.HealthCheckParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	health, err := h.analyticsService.HealthCheck(c.Request.Context(), c.Param("workspace_id"), params.DaysThreshold, userID)
	if err != nil {
		respondError(c, err, "Failed to compute customer health")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerHealthResponses(health))
}

// visitFrequency godoc
// @Summary Average days between visits per customer
// @Tags analytics
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {array} dto.VisitFrequencyResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/analytics/customers/visit-frequency [get]
func (h *analyticsHandler) visitFrequency(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	frequency, err := h.analyticsService.VisitFrequency(c.Request.Context(), c.Param("workspace_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to compute visit frequency")
		return
	}
	c.JSON(http.StatusOK, dto.ToVisitFrequencyResponses(frequency))
}
