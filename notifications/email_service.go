package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// EmailService sends transactional email through the Brevo HTTP API. A nil
// *EmailService means the service is not configured; callers then skip
// notifications entirely.
type EmailService struct {
	APIKey      string
	SenderEmail string
	SenderName  string

	client *http.Client
}

func NewEmailService(apiKey, senderEmail, senderName string) *EmailService {
	if apiKey == "" || senderEmail == "" || senderName == "" {
		log.Println("⚠️ Email service not configured. Missing API Key, Sender Email, or Sender Name.")
		return nil
	}

	log.Printf("✅ Email service initialized (sender: %s <%s>)", senderName, senderEmail)
	return &EmailService{
		APIKey:      apiKey,
		SenderEmail: senderEmail,
		SenderName:  senderName,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

func (s *EmailService) send(toEmail, toName, subject, htmlContent string) error {
	if toEmail == "" || !strings.Contains(toEmail, "@") {
		return fmt.Errorf("invalid recipient email: %s", toEmail)
	}

	recipientName := toName
	if recipientName == "" {
		recipientName = toEmail[:strings.Index(toEmail, "@")]
	}

	payload := brevoPayload{
		Sender:      map[string]string{"name": s.SenderName, "email": s.SenderEmail},
		To:          []map[string]string{{"email": toEmail, "name": recipientName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, brevoEndpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", s.APIKey)
	req.Header.Set("content-type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to send email via Brevo: %s", string(respBody))
	}

	return nil
}

var certificateEmailTemplate = template.Must(template.New("certificate_email").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background-color: #4285f4; color: white; padding: 20px; text-align: center; }
    .content { padding: 20px; background-color: #f9f9f9; }
    .button { display: inline-block; padding: 12px 24px; background-color: #4285f4; color: white; text-decoration: none; border-radius: 4px; margin: 10px 0; }
    .footer { text-align: center; padding: 20px; font-size: 12px; color: #666; }
    .cert-id { background-color: #e8f0fe; padding: 10px; border-left: 4px solid #4285f4; margin: 15px 0; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Congratulations, {{.RecipientName}}!</h1>
    </div>
    <div class="content">
      <p>We are pleased to inform you that your certificate for <strong>{{.EventName}}</strong> has been generated.</p>

      <div class="cert-id">
        <strong>Certificate ID:</strong> {{.UniqueID}}
      </div>

      <p>You can validate your certificate at any time using the link below:</p>
      <p style="text-align: center;">
        <a href="{{.ValidationURL}}" class="button">Validate Certificate</a>
      </p>

      {{if .PDFURL}}
      <p>You can also download your certificate PDF:</p>
      <p style="text-align: center;">
        <a href="{{.PDFURL}}" class="button">Download Certificate</a>
      </p>
      {{end}}

      <p>Keep your Certificate ID safe for future reference.</p>
    </div>
    <div class="footer">
      <p>This email was sent by GDGoC Certificate System</p>
      <p>Please do not reply to this email</p>
    </div>
  </div>
</body>
</html>`))

type certificateEmailData struct {
	RecipientName string
	EventName     string
	UniqueID      string
	ValidationURL string
	PDFURL        *string
}

// SendCertificateEmail renders the certificate notification and delivers it
// through Brevo. Implements services.Mailer.
func (s *EmailService) SendCertificateEmail(toEmail, toName, eventName, uniqueID, validationURL string, pdfURL *string) error {
	var rendered bytes.Buffer
	err := certificateEmailTemplate.Execute(&rendered, certificateEmailData{
		RecipientName: toName,
		EventName:     eventName,
		UniqueID:      uniqueID,
		ValidationURL: validationURL,
		PDFURL:        pdfURL,
	})
	if err != nil {
		return fmt.Errorf("failed to render certificate email: %v", err)
	}

	subject := fmt.Sprintf("Your Certificate for %s", eventName)
	if err := s.send(toEmail, toName, subject, rendered.String()); err != nil {
		return err
	}

	log.Printf("✅ Certificate email sent to %s for %s", toEmail, uniqueID)
	return nil
}
