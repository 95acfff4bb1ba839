package mailer

import (
	"net/smtp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adilsaaly/trackport/internal/services/user"
)

func testUser() *user.User {
	phone := "0771234567"
	return &user.User{
		Name:  "Nadia Perera",
		Email: "nadia@example.com",
		Phone: &phone,
		Role:  user.RoleSoftwareEngineer,
	}
}

func TestComposeWelcome(t *testing.T) {
	m := New(Options{
		Host:   "smtp.example.com",
		Port:   "587",
		From:   "portal@example.com",
		AppURL: "https://tracker.example.com",
	})

	msg, err := m.compose(welcomeData{
		Name:     "Nadia Perera",
		Email:    "nadia@example.com",
		Password: "s3cret",
		Role:     "software-engineer",
		Phone:    "0771234567",
		AppURL:   "https://tracker.example.com",
	})
	require.NoError(t, err)

	body := string(msg)
	assert.Contains(t, body, "Subject: Welcome to Task Tracker, Nadia Perera!")
	assert.Contains(t, body, "To: nadia@example.com")
	assert.Contains(t, body, "Password: s3cret")
	assert.Contains(t, body, "https://tracker.example.com")
	assert.Contains(t, body, "change your password after your first login")
}

func TestSendWelcomeDeliversInBackground(t *testing.T) {
	m := New(Options{
		Host:   "smtp.example.com",
		Port:   "587",
		From:   "portal@example.com",
		AppURL: "https://tracker.example.com",
	})

	var (
		mu   sync.Mutex
		to   []string
		body string
	)
	delivered := make(chan struct{})
	m.send = func(addr string, a smtp.Auth, from string, rcpt []string, msg []byte) error {
		mu.Lock()
		to = rcpt
		body = string(msg)
		mu.Unlock()
		close(delivered)
		return nil
	}

	m.SendWelcome(testUser(), "s3cret")

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("welcome email was never handed to smtp")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"nadia@example.com"}, to)
	assert.Contains(t, body, "Password: s3cret")
}

func TestSendWelcomeSkipsWhenDisabled(t *testing.T) {
	m := New(Options{})
	m.send = func(addr string, a smtp.Auth, from string, rcpt []string, msg []byte) error {
		t.Fatal("send must not be called when mailer is disabled")
		return nil
	}

	assert.False(t, m.Enabled())
	m.SendWelcome(testUser(), "s3cret")
}
