package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flowhive/flowhive_backend/internal/core/ports/gateways"
	"github.com/flowhive/flowhive_backend/internal/dto"
	"github.com/flowhive/flowhive_backend/internal/middleware"
)

type customerHandler struct {
	directory gateways.CompanyDirectory
}

func registerCustomerRoutes(rg *gin.RouterGroup, directory gateways.CompanyDirectory) {
	h := &customerHandler{directory: directory}
	rg.GET("/customers/companies", h.listCompanies)
}

// listCompanies godoc
// @Summary List customer companies
// @Description Proxies the external companies directory.
// @Tags customers
// @Produce json
// @Success 200 {array} dto.CompanyResponse
// @Failure 503 {object} ErrorResponse "Directory unavailable"
// @Security BearerAuth
// @Router /customers/companies [get]
func (h *customerHandler) listCompanies(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	companies, err := h.directory.ListCompanies(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Companies directory request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Companies service is unavailable"})
		return
	}
	resp := make([]dto.CompanyResponse, len(companies))
	for i, company := range companies {
		resp[i] = company
	}
	c.JSON(http.StatusOK, resp)
}
