package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/skillbridge/skillbridge_backend/internal/apperrors"
	"github.com/skillbridge/skillbridge_backend/internal/dto"
	"github.com/skillbridge/skillbridge_backend/internal/middleware"
)

// bindJSON binds the request body and, on failure, writes the uniform
// validation envelope. Returns false when the request was rejected.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Success: false,
				Message: "Validation failed",
				Errors:  translateValidationErrors(validationErrs),
			})
			return false
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request body"))
		return false
	}
	return true
}

// translateValidationErrors converts validator failures into the field-level
// {param, msg} shape clients expect.
func translateValidationErrors(errs validator.ValidationErrors) []dto.FieldError {
	out := make([]dto.FieldError, 0, len(errs))
	for _, fe := range errs {
		param := lowerFirst(fe.Field())
		out = append(out, dto.FieldError{Param: param, Msg: validationMessage(param, fe)})
	}
	return out
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func validationMessage(param string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", param)
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "eq":
		if param == "agreedToTerms" {
			return "you must agree to the terms and conditions"
		}
		return fmt.Sprintf("must equal %s", fe.Param())
	case "strongpassword":
		return "password must be at least 6 characters and contain a lowercase letter, an uppercase letter and a digit"
	default:
		return fmt.Sprintf("%s is invalid", param)
	}
}

// respondWithError maps service errors onto HTTP statuses and the uniform
// error envelope.
func respondWithError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, dto.NewErrorResponse(appErr.Message))
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("An account with this email already exists"))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid or expired token"))
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid email or password"))
	case errors.Is(err, apperrors.ErrRefreshTokenInvalid):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid or expired session"))
	case errors.Is(err, apperrors.ErrAccountInactive):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Account is deactivated"))
	case errors.Is(err, apperrors.ErrEmailNotVerified):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse("Please verify your email address before logging in"))
	case errors.Is(err, apperrors.ErrCompanyNotApproved):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse("Company account is pending approval"))
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse("Access denied"))
	case errors.Is(err, apperrors.ErrAccountLocked):
		c.JSON(http.StatusLocked, dto.NewErrorResponse("Account temporarily locked due to too many failed login attempts. Please try again later."))
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("Resource not found"))
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Something went wrong"))
	}
}
