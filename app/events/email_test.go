package events

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/secondbrain-labs/secondbrain/app/cfg"
)

func TestSendInvitationWithoutCredentials(t *testing.T) {
	mailer := NewMailer(&cfg.Cfg{SMTPHost: "smtp.example.com", SMTPPort: "587"})

	_, err := mailer.SendInvitation(Invitation{Title: "Standup"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got: %v", err)
	}
}

func TestBuildMessage(t *testing.T) {
	mailer := NewMailer(&cfg.Cfg{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     "587",
		SMTPUsername: "sender@example.com",
		SMTPPassword: "secret",
	})

	invitation := Invitation{
		Title:       "Quarterly Review",
		Description: "Slides attached beforehand.",
		StartTime:   time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 9, 10, 15, 30, 0, 0, time.UTC),
	}

	message, err := mailer.buildMessage("Quarterly Review", "team@example.com", invitation)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	text := string(message)
	for _, want := range []string{
		"From: sender@example.com",
		"To: team@example.com",
		"Subject: Quarterly Review",
		"Content-Type: multipart/alternative",
		"text/html",
		"<h2>Quarterly Review</h2>",
		"<strong>Date:</strong> 2026-09-10",
		"<strong>Time:</strong> 14:00 - 15:30",
		"Slides attached beforehand.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected message to contain %q, got:\n%s", want, text)
		}
	}
}

func TestSendInvitationDefaultsRecipient(t *testing.T) {
	mailer := NewMailer(&cfg.Cfg{
		SMTPUsername: "sender@example.com",
		SMTPPassword: "secret",
	})

	invitation := Invitation{StartTime: time.Now(), EndTime: time.Now()}
	message, err := mailer.buildMessage("Event Invitation from SecondBrain", "sender@example.com", invitation)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.Contains(string(message), "To: sender@example.com") {
		t.Errorf("Expected recipient to default to the sender, got:\n%s", message)
	}
}
