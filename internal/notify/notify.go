// Package notify dispatches pipeline event notifications to configured
// channels.
package notify

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/ats-optimizer/internal/types"
)

// Notification levels
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
	LevelSuccess = "success"
)

// Notification is a single notification event
type Notification struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Level     string    `json:"level"`
	Timestamp time.Time `json:"timestamp"`
}

// Channel delivers notifications to one destination
type Channel interface {
	Send(n Notification) error
	Name() string
}

// ConsoleChannel logs notifications through the structured logger
type ConsoleChannel struct {
	log *zap.Logger
}

// NewConsoleChannel creates a console channel
func NewConsoleChannel(log *zap.Logger) *ConsoleChannel {
	return &ConsoleChannel{log: log}
}

func (c *ConsoleChannel) Name() string { return "console" }

func (c *ConsoleChannel) Send(n Notification) error {
	fields := []zap.Field{
		zap.String("title", n.Title),
		zap.String("level", n.Level),
	}
	switch n.Level {
	case LevelWarning:
		c.log.Warn(n.Body, fields...)
	case LevelError:
		c.log.Error(n.Body, fields...)
	default:
		c.log.Info(n.Body, fields...)
	}
	return nil
}

// EmailChannel is a stub email channel. It logs instead of sending until
// SMTP delivery is wired up.
type EmailChannel struct {
	log      *zap.Logger
	SMTPHost string
	SMTPPort int
	Email    string
}

// NewEmailChannel creates an email channel stub
func NewEmailChannel(log *zap.Logger, smtpHost string, smtpPort int, email string) *EmailChannel {
	return &EmailChannel{log: log, SMTPHost: smtpHost, SMTPPort: smtpPort, Email: email}
}

func (e *EmailChannel) Name() string { return "email" }

func (e *EmailChannel) Send(n Notification) error {
	e.log.Info("email stub, not sending",
		zap.String("to", e.Email),
		zap.String("title", n.Title),
		zap.String("body", n.Body),
	)
	return nil
}

// Manager dispatches notifications to every configured channel and keeps
// a history of what was sent
type Manager struct {
	log      *zap.Logger
	mu       sync.Mutex
	channels []Channel
	history  []Notification
}

// NewManager creates a manager with a console channel preconfigured
func NewManager(log *zap.Logger) *Manager {
	return &Manager{
		log:      log,
		channels: []Channel{NewConsoleChannel(log)},
	}
}

// AddChannel registers an additional notification channel
func (m *Manager) AddChannel(ch Channel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels = append(m.channels, ch)
}

// Notify sends a notification to all channels
func (m *Manager) Notify(title, body, level string) {
	n := Notification{Title: title, Body: body, Level: level, Timestamp: time.Now()}

	m.mu.Lock()
	m.history = append(m.history, n)
	channels := make([]Channel, len(m.channels))
	copy(channels, m.channels)
	m.mu.Unlock()

	for _, ch := range channels {
		if err := ch.Send(n); err != nil {
			m.log.Error("notification send failed",
				zap.String("channel", ch.Name()),
				zap.Error(err),
			)
		}
	}
}

// PipelineComplete sends a summary notification after a pipeline run
func (m *Manager) PipelineComplete(result *types.PipelineResult) {
	level := LevelSuccess
	if len(result.Errors) > 0 {
		level = LevelWarning
	}
	m.Notify(
		"Pipeline Complete",
		fmt.Sprintf("Discovered: %d, New: %d, Resumes: %d, Applied: %d, Errors: %d",
			result.JobsDiscovered, result.JobsNew, result.ResumesGenerated,
			result.ApplicationsSubmitted, len(result.Errors)),
		level,
	)
}

// CaptchaDetected alerts that a CAPTCHA needs manual solving
func (m *Manager) CaptchaDetected(url string) {
	m.Notify("CAPTCHA Detected", fmt.Sprintf("Manual intervention required at: %s", url), LevelWarning)
}

// Error alerts about a pipeline error
func (m *Manager) Error(msg string) {
	m.Notify("Error", msg, LevelError)
}

// History returns a copy of all notifications sent so far
func (m *Manager) History() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Notification, len(m.history))
	copy(out, m.history)
	return out
}
