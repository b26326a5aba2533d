package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional email over SMTP
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer creates a new mailer
func NewMailer(host string, port int, user, pass string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   user,
	}
}

// SendOTP emails a verification code to a new user
func (m *Mailer) SendOTP(to, otp string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.from, "LexAI"))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your LexAI Verification Code")
	msg.SetBody("text/html", otpBody(otp))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}
	return nil
}

func otpBody(otp string) string {
	return fmt.Sprintf(`
      <div style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif; max-width: 480px; margin: 0 auto; padding: 40px 24px;">
        <div style="text-align: center; margin-bottom: 32px;">
          <h1 style="font-size: 24px; font-weight: 700; color: #111; margin: 0;">LexAI</h1>
          <p style="color: #666; font-size: 14px; margin-top: 4px;">AI Legal Agent</p>
        </div>
        <div style="background: #f9fafb; border-radius: 12px; padding: 32px; text-align: center;">
          <p style="color: #333; font-size: 15px; margin: 0 0 24px;">Your verification code is:</p>
          <div style="font-size: 36px; font-weight: 700; letter-spacing: 8px; color: #111; font-family: monospace;">
            %s
          </div>
          <p style="color: #999; font-size: 13px; margin: 24px 0 0;">Valid for 10 minutes. Do not share this code.</p>
        </div>
        <p style="color: #999; font-size: 12px; text-align: center; margin-top: 24px;">
          If you didn't request this, please ignore this email.
        </p>
      </div>`, otp)
}
