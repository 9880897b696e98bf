package utils

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"lms/config"
)

// SendEmail delivers an HTML email through SendGrid.
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	from := sgmail.NewEmail(config.AppConfig.EmailName, config.AppConfig.EmailSender)
	to := sgmail.NewEmail(toName, toEmail)

	message := sgmail.NewSingleEmail(from, subject, to, "", htmlBody)
	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)

	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 300 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	return nil
}

// getEmailTemplate wraps body content in the shared HTML layout
func getEmailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1F2A44; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1F2A44; line-height: 1.6; }
			.content h2 { color: #1F2A44; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #4C6FFF; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #4C6FFF; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">
				%s
			</div>
			<div class="footer">
				This is an automated message. Please do not reply to this email.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendPasswordResetEmail emails a password reset link. The token is valid for one hour.
func SendPasswordResetEmail(toName, toEmail, token string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", config.AppConfig.FrontendURL, token)

	body := fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>We received a request to reset the password for your account.</p>
		<div class="info-box">This link expires in 1 hour. If you did not request a reset, you can safely ignore this email.</div>
		<a class="btn" href="%s">Reset Password</a>`, toName, resetLink)

	return SendEmail(toName, toEmail, "Password Reset Request", getEmailTemplate("Password Reset", body))
}

// SendRegistrationInviteEmail emails a registration invitation. The token is valid
// for seven days.
func SendRegistrationInviteEmail(toEmail, token string) error {
	inviteLink := fmt.Sprintf("%s/register?token=%s", config.AppConfig.FrontendURL, token)

	body := fmt.Sprintf(`
		<h2>Welcome!</h2>
		<p>You have been invited to join the learning platform. Click below to create your account.</p>
		<div class="info-box">This invitation expires in 7 days.</div>
		<a class="btn" href="%s">Create Account</a>`, inviteLink)

	return SendEmail("", toEmail, "You're Invited to Join", getEmailTemplate("Registration Invite", body))
}
