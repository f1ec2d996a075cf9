package dto

// RegisterUserRequest is the body for learner/mentor registration. The role
// field is ignored (and may be omitted) on the role-split routes, which pin
// it from the URL.
type RegisterUserRequest struct {
	Name          string `json:"name" binding:"required,min=2,max=100"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,strongpassword"`
	Role          string `json:"role" binding:"omitempty,oneof=learner mentor"`
	AgreedToTerms bool   `json:"agreedToTerms" binding:"required,eq=true"`
}

// RegisterCompanyRequest is the body for company registration.
type RegisterCompanyRequest struct {
	CompanyName   string `json:"companyName" binding:"required,min=2,max=150"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,strongpassword"`
	AgreedToTerms bool   `json:"agreedToTerms" binding:"required,eq=true"`
}

// LoginRequest is the body for every login route.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ResendVerificationRequest asks for a fresh email-verification token.
type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPasswordRequest asks for a password-reset token.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest carries the new password; the raw token travels in the
// URL path.
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,strongpassword"`
}

// ChangePasswordRequest is the body for authenticated password changes.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,strongpassword"`
}

// UpdateUserRequest defines the data allowed for updating a user profile.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name *string `json:"name" binding:"omitempty,min=2,max=100"`
}

// UpdateCompanyRequest defines the data allowed for updating a company profile.
type UpdateCompanyRequest struct {
	CompanyName *string `json:"companyName" binding:"omitempty,min=2,max=150"`
}
