package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
	portssvc "github.com/skillbridge/skillbridge_backend/internal/core/ports/services"
	"github.com/skillbridge/skillbridge_backend/internal/dto"
	"github.com/skillbridge/skillbridge_backend/internal/middleware"
)

// ProfileHandler serves authenticated profile edits.
type ProfileHandler struct {
	userService    portssvc.UserSvcFacade
	companyService portssvc.CompanySvcFacade
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(services *portssvc.ServiceContainer) *ProfileHandler {
	return &ProfileHandler{
		userService:    services.User,
		companyService: services.Company,
	}
}

// UpdateProfile godoc
// @Summary Update the authenticated actor's profile
// @Description Updates display fields of the current user or company.
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /auth/me [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	switch identity.Kind {
	case domain.ActorKindCompany:
		var req dto.UpdateCompanyRequest
		if !bindJSON(c, &req) {
			return
		}
		company, err := h.companyService.UpdateCompany(c.Request.Context(), identity.ID, req)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.LoginResponse{Success: true, Actor: dto.ToCompanySummary(company)})
	default:
		var req dto.UpdateUserRequest
		if !bindJSON(c, &req) {
			return
		}
		user, err := h.userService.UpdateUser(c.Request.Context(), identity.ID, req)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.LoginResponse{Success: true, Actor: dto.ToUserSummary(user)})
	}
}
