package dto

import "time"

// FieldError is a single field-level validation failure.
type FieldError struct {
	Param string `json:"param"`
	Msg   string `json:"msg"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// NewErrorResponse builds the envelope for a plain message.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}

// MessageResponse is the uniform success envelope for routes without a payload.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewMessageResponse builds the success envelope for a plain message.
func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Success: true, Message: message}
}

// ActorSummary is the public projection of an authenticated actor returned by
// login, refresh and /me. Role-variant fields are omitted when empty.
type ActorSummary struct {
	ID              string     `json:"id"`
	Kind            string     `json:"kind"`
	Role            string     `json:"role"`
	Name            string     `json:"name,omitempty"`
	CompanyName     string     `json:"companyName,omitempty"`
	Email           string     `json:"email"`
	IsEmailVerified bool       `json:"isEmailVerified"`
	IsApproved      *bool      `json:"isApproved,omitempty"` // companies only
	LastLogin       *time.Time `json:"lastLogin,omitempty"`
}

// LoginResponse is returned by login, email verification and refresh. Tokens
// travel in httpOnly cookies, never in the body.
type LoginResponse struct {
	Success                bool         `json:"success"`
	Actor                  ActorSummary `json:"actor"`
	NeedsEmailVerification bool         `json:"needsEmailVerification,omitempty"`
}

// ApprovalStatusResponse reports a company's partnership approval state.
type ApprovalStatusResponse struct {
	Success    bool `json:"success"`
	IsApproved bool `json:"isApproved"`
}
