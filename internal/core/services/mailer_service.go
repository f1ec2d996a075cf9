package services

import (
	"fmt"

	portssvc "github.com/skillbridge/skillbridge_backend/internal/core/ports/services"
	"github.com/skillbridge/skillbridge_backend/internal/platform/config"
	"gopkg.in/gomail.v2"
)

// mailerService delivers transactional email over SMTP. The dialer is
// constructed once and injected wherever email is needed; there is no
// module-level transporter.
type mailerService struct {
	dialer          *gomail.Dialer
	from            string
	frontendBaseURL string
}

// NewMailerService creates a new instance of mailerService.
func NewMailerService(cfg *config.Config) portssvc.MailerSvcFacade {
	return &mailerService{
		dialer:          gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:            cfg.SMTPFrom,
		frontendBaseURL: cfg.FrontendBaseURL,
	}
}

var _ portssvc.MailerSvcFacade = (*mailerService)(nil)

func (s *mailerService) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return s.dialer.DialAndSend(m)
}

// SendVerificationEmail emails the raw email-verification token.
func (s *mailerService) SendVerificationEmail(to, name, rawToken string) error {
	verifyURL := fmt.Sprintf("%s/verify-email/%s", s.frontendBaseURL, rawToken)
	body := fmt.Sprintf(`
		<h2>Welcome to SkillBridge, %s!</h2>
		<p>Please confirm your email address to activate your account.</p>
		<p><a href="%s">Verify my email</a></p>
		<p>This link expires in 24 hours. If you did not create an account, you can ignore this email.</p>
	`, name, verifyURL)

	if err := s.send(to, "Verify your SkillBridge email", body); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

// SendPasswordResetEmail emails the raw password-reset token.
func (s *mailerService) SendPasswordResetEmail(to, name, rawToken string) error {
	resetURL := fmt.Sprintf("%s/reset-password/%s", s.frontendBaseURL, rawToken)
	body := fmt.Sprintf(`
		<h3>Password reset requested</h3>
		<p>Hi %s, we received a request to reset the password for your account.</p>
		<p><a href="%s">Reset my password</a></p>
		<p>This link expires in 10 minutes. If you did not request this change, you can ignore this email.</p>
	`, name, resetURL)

	if err := s.send(to, "Reset your SkillBridge password", body); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

// SendWelcomeEmail emails a post-verification welcome message.
func (s *mailerService) SendWelcomeEmail(to, name string) error {
	body := fmt.Sprintf(`
		<h2>You're all set, %s!</h2>
		<p>Your email is verified and your SkillBridge account is active.</p>
		<p>Best regards,<br>The SkillBridge Team</p>
	`, name)

	if err := s.send(to, "Welcome to SkillBridge!", body); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}
