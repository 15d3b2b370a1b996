package auth

import (
	"fmt"
	"net/smtp"
	"os"

	"companion-app/config"
)

func sendMail(to, subject, body string) error {
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("SMTP_PASSWORD")
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")

	if host == "" {
		// Local dev: links are printed to stdout instead.
		return fmt.Errorf("SMTP not configured")
	}

	auth := smtp.PlainAuth("", from, password, host)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	err := smtp.SendMail(host+":"+port, auth, from, []string{to}, message)
	if err != nil {
		fmt.Println("❌ SMTP error:", err)
	}
	return err
}

func SendVerificationEmail(to string, token string) error {
	link := fmt.Sprintf("%s/verify?token=%s", config.FRONTEND_URL, token)
	fmt.Println("📨 Verification link:", link)
	return sendMail(to, "Verify Your Account",
		fmt.Sprintf("Click the following link to verify your account:\n\n%s", link))
}

func SendPasswordResetEmail(to string, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", config.FRONTEND_URL, token)
	fmt.Println("📨 Reset link:", link)
	return sendMail(to, "Reset Your Password",
		fmt.Sprintf("Click the following link to reset your password:\n\n%s", link))
}
