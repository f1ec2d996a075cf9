package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
	portssvc "github.com/skillbridge/skillbridge_backend/internal/core/ports/services"
	"github.com/skillbridge/skillbridge_backend/internal/dto"
	"github.com/skillbridge/skillbridge_backend/internal/middleware"
)

// CompanyHandler serves company-specific session routes.
type CompanyHandler struct {
	companyService portssvc.CompanySvcFacade
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(services *portssvc.ServiceContainer) *CompanyHandler {
	return &CompanyHandler{companyService: services.Company}
}

// ApprovalStatus godoc
// @Summary Company approval status
// @Description Reports whether the authenticated company's partnership has been approved. Reachable by unapproved companies.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.ApprovalStatusResponse
// @Failure 403 {object} dto.ErrorResponse "Not a company"
// @Router /auth/company/approval-status [get]
func (h *CompanyHandler) ApprovalStatus(c *gin.Context) {
	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}
	if identity.Kind != domain.ActorKindCompany {
		c.JSON(http.StatusForbidden, dto.NewErrorResponse("Access denied"))
		return
	}

	company, err := h.companyService.GetCompanyByID(c.Request.Context(), identity.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ApprovalStatusResponse{Success: true, IsApproved: company.IsApproved})
}
