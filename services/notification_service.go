package services

import (
	"fmt"
	"io"
	"sync"

	"drivedash/models"

	"github.com/fatih/color"
)

// NotificationService shows transient notices. A notice posted with the ID
// of an earlier one replaces it, so a progress notice can turn into its
// result.
type NotificationService struct {
	mu      sync.Mutex
	out     io.Writer
	history []models.Notice
	seq     int
}

func NewNotificationService(out io.Writer) *NotificationService {
	return &NotificationService{out: out}
}

// NewID returns a fresh notice ID.
func (s *NotificationService) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return fmt.Sprintf("notice-%d", s.seq)
}

func (s *NotificationService) Post(n models.Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == "" {
		s.seq++
		n.ID = fmt.Sprintf("notice-%d", s.seq)
	}

	replaced := false
	for i := range s.history {
		if s.history[i].ID == n.ID {
			s.history[i] = n
			replaced = true
			break
		}
	}
	if !replaced {
		s.history = append(s.history, n)
	}

	if s.out != nil {
		fmt.Fprintln(s.out, formatNotice(n))
	}
}

func (s *NotificationService) Success(message string) {
	s.Post(models.Notice{Level: models.NoticeSuccess, Message: message})
}

func (s *NotificationService) Error(message string) {
	s.Post(models.Notice{Level: models.NoticeError, Message: message})
}

// Notices returns the current notices, oldest first.
func (s *NotificationService) Notices() []models.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notice, len(s.history))
	copy(out, s.history)
	return out
}

// Last returns the most recently added notice.
func (s *NotificationService) Last() (models.Notice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return models.Notice{}, false
	}
	return s.history[len(s.history)-1], true
}

func formatNotice(n models.Notice) string {
	switch n.Level {
	case models.NoticeSuccess:
		return color.GreenString("✓ %s", n.Message)
	case models.NoticeError:
		return color.RedString("✗ %s", n.Message)
	default:
		return color.YellowString("… %s", n.Message)
	}
}
