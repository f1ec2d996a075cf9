package services

// MailerSvcFacade delivers transactional email. It is an explicitly
// constructed, injected resource; callers decide whether a delivery failure
// is fatal for the surrounding flow.
type MailerSvcFacade interface {
	// SendVerificationEmail emails the raw email-verification token, embedded
	// in a frontend URL.
	SendVerificationEmail(to, name, rawToken string) error

	// SendPasswordResetEmail emails the raw password-reset token, embedded in
	// a frontend URL.
	SendPasswordResetEmail(to, name, rawToken string) error

	// SendWelcomeEmail emails a post-verification welcome message.
	SendWelcomeEmail(to, name string) error
}
