// Package mailer delivers the onboarding email for new portal users over
// plain SMTP. Delivery runs in the background; callers never block on it and
// failures are logged, not returned.
package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"text/template"
	"time"

	"github.com/adilsaaly/trackport/internal/services/user"
)

// sendDeadline caps the background delivery so a dead SMTP host cannot pile
// up goroutines.
const sendDeadline = 30 * time.Second

type Options struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	// AppURL is the sign-in link embedded in the email body.
	AppURL string
}

type Mailer struct {
	opts Options
	tmpl *template.Template

	// send is swapped in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func New(opts Options) *Mailer {
	return &Mailer{
		opts: opts,
		tmpl: template.Must(template.New("welcome").Parse(welcomeText)),
		send: smtp.SendMail,
	}
}

// Enabled reports whether SMTP credentials were configured; when false,
// SendWelcome only logs.
func (m *Mailer) Enabled() bool {
	return m.opts.Host != "" && m.opts.From != ""
}

type welcomeData struct {
	Name     string
	Email    string
	Password string
	Role     string
	Phone    string
	AppURL   string
}

// SendWelcome emails the new user their credentials. It returns immediately;
// the SMTP exchange happens on a background goroutine with a deadline.
func (m *Mailer) SendWelcome(u *user.User, plainPassword string) {
	if !m.Enabled() {
		slog.Info("mailer disabled, skipping welcome email", "email", u.Email)
		return
	}

	phone := ""
	if u.Phone != nil {
		phone = *u.Phone
	}
	data := welcomeData{
		Name:     u.Name,
		Email:    u.Email,
		Password: plainPassword,
		Role:     string(u.Role),
		Phone:    phone,
		AppURL:   m.opts.AppURL,
	}

	msg, err := m.compose(data)
	if err != nil {
		slog.Error("failed to compose welcome email", "email", u.Email, "error", err)
		return
	}

	go func() {
		done := make(chan error, 1)
		go func() {
			var auth smtp.Auth
			if m.opts.Username != "" {
				auth = smtp.PlainAuth("", m.opts.Username, m.opts.Password, m.opts.Host)
			}
			addr := m.opts.Host + ":" + m.opts.Port
			done <- m.send(addr, auth, m.opts.From, []string{u.Email}, msg)
		}()

		select {
		case err := <-done:
			if err != nil {
				slog.Error("failed to send welcome email", "email", u.Email, "error", err)
				return
			}
			slog.Info("welcome email sent", "email", u.Email)
		case <-time.After(sendDeadline):
			slog.Error("welcome email timed out", "email", u.Email)
		}
	}()
}

func (m *Mailer) compose(data welcomeData) ([]byte, error) {
	var body strings.Builder
	if err := m.tmpl.Execute(&body, data); err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: Task Tracker <%s>\r\n", m.opts.From)
	fmt.Fprintf(&b, "To: %s\r\n", data.Email)
	fmt.Fprintf(&b, "Subject: Welcome to Task Tracker, %s!\r\n", data.Name)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body.String(), "\n", "\r\n"))
	return []byte(b.String()), nil
}

const welcomeText = `Welcome to Task Tracker, {{.Name}}!

Hello {{.Name}},

Your account has been successfully created! We're excited to have you on board.

Your Account Details:
-------------------
Name: {{.Name}}
Email: {{.Email}}
Password: {{.Password}}
Role: {{.Role}}
Phone: {{.Phone}}

Important Security Steps:
------------------------
1. Please change your password after your first login for security purposes
2. You can set up a PIN for quick access in your account settings
3. Keep your credentials secure and do not share them with anyone

Getting Started:
---------------
1. Visit the application at: {{.AppURL}}
2. Log in using your email and the password provided above
3. Complete your profile setup
4. Explore your dashboard and assigned projects

If you have any questions or need assistance, please contact your system administrator.

Best regards,
The Team
`
