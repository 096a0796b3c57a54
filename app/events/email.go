package events

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"github.com/secondbrain-labs/secondbrain/app/cfg"
)

// ErrNotConfigured is returned when SMTP credentials are missing. Callers
// report it to the user instead of failing the whole request.
var ErrNotConfigured = errors.New("email credentials not configured, set SMTP_USERNAME and SMTP_PASSWORD")

// Invitation describes one event to announce by email. Recipient defaults to
// the sending account when empty.
type Invitation struct {
	Title       string
	Description string
	Recipient   string
	StartTime   time.Time
	EndTime     time.Time
}

// Mailer sends event invitations over SMTP with STARTTLS.
type Mailer struct {
	host     string
	port     string
	username string
	password string
}

func NewMailer(c *cfg.Cfg) *Mailer {
	return &Mailer{
		host:     c.SMTPHost,
		port:     c.SMTPPort,
		username: c.SMTPUsername,
		password: c.SMTPPassword,
	}
}

// SendInvitation formats the invitation as an HTML email and delivers it.
// Returns the address the invitation went to.
func (m *Mailer) SendInvitation(invitation Invitation) (string, error) {
	if m.username == "" || m.password == "" {
		return "", ErrNotConfigured
	}

	recipient := invitation.Recipient
	if recipient == "" {
		recipient = m.username
	}

	subject := invitation.Title
	if subject == "" {
		subject = "Event Invitation from SecondBrain"
	}

	message, err := m.buildMessage(subject, recipient, invitation)
	if err != nil {
		return "", fmt.Errorf("failed to build invitation email: %w", err)
	}

	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := smtp.SendMail(addr, auth, m.username, []string{recipient}, message); err != nil {
		return "", fmt.Errorf("failed to send invitation email: %w", err)
	}

	return recipient, nil
}

func (m *Mailer) buildMessage(subject, recipient string, invitation Invitation) ([]byte, error) {
	var b strings.Builder
	writer := multipart.NewWriter(&b)

	fmt.Fprintf(&b, "From: %s\r\n", m.username)
	fmt.Fprintf(&b, "To: %s\r\n", recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", writer.Boundary())

	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}

	title := invitation.Title
	if title == "" {
		title = "Event Invitation"
	}
	fmt.Fprintf(part, `<html>
<body>
    <h2>%s</h2>
    <p><strong>Date:</strong> %s</p>
    <p><strong>Time:</strong> %s - %s</p>
    <p>%s</p>
</body>
</html>
`, title,
		invitation.StartTime.Format("2006-01-02"),
		invitation.StartTime.Format("15:04"),
		invitation.EndTime.Format("15:04"),
		invitation.Description)

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return []byte(b.String()), nil
}
