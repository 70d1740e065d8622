package service

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/drewham94/AMai-Code/internal/models"
	"github.com/drewham94/AMai-Code/internal/repository"
)

var (
	ErrTimerRunning = errors.New("a focus timer is already running")
	ErrNoTimer      = errors.New("no focus timer is running")
)

// focusTimer is one running countdown
type focusTimer struct {
	minutes   int
	remaining time.Duration
	done      chan struct{}
}

// FocusService runs the uninterrupted-study countdown and records a
// FocusSession exactly once per completed timer
type FocusService struct {
	repo *repository.FocusRepository

	mu     sync.Mutex
	timers map[string]*focusTimer

	// tick is the real interval between countdown steps; each step
	// takes one second off the clock. Tests shrink the interval.
	tick time.Duration
}

// NewFocusService creates a focus service
func NewFocusService(repo *repository.FocusRepository) *FocusService {
	return &FocusService{
		repo:   repo,
		timers: make(map[string]*focusTimer),
		tick:   time.Second,
	}
}

// StartTimer begins a countdown for the user. Only one timer per user
// runs at a time.
func (s *FocusService) StartTimer(email string, minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("invalid focus duration: %d minutes", minutes)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, running := s.timers[email]; running {
		return ErrTimerRunning
	}

	timer := &focusTimer{
		minutes:   minutes,
		remaining: time.Duration(minutes) * time.Minute,
		done:      make(chan struct{}),
	}
	s.timers[email] = timer
	go s.run(email, timer)
	return nil
}

// run decrements the countdown once per tick. Reaching zero records
// the session exactly once; cancellation records nothing.
func (s *FocusService) run(email string, timer *focusTimer) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-timer.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			timer.remaining -= time.Second
			finished := timer.remaining <= 0
			if finished {
				delete(s.timers, email)
			}
			s.mu.Unlock()

			if finished {
				if err := s.Record(email, &models.FocusSession{
					ID:      uuid.New().String(),
					Date:    time.Now().UTC(),
					Minutes: timer.minutes,
				}); err != nil {
					log.Printf("Warning: failed to record focus session for %s: %v", email, err)
				}
				return
			}
		}
	}
}

// CancelTimer stops the user's countdown without recording anything
func (s *FocusService) CancelTimer(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.timers[email]
	if !ok {
		return ErrNoTimer
	}
	close(timer.done)
	delete(s.timers, email)
	return nil
}

// Remaining reports the time left on the user's countdown
func (s *FocusService) Remaining(email string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.timers[email]
	if !ok {
		return 0, ErrNoTimer
	}
	return timer.remaining, nil
}

// Record stores a completed focus session. Re-submitting the same id
// is a no-op, so a retried completion never double-counts.
func (s *FocusService) Record(email string, session *models.FocusSession) error {
	session.UserEmail = email
	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	exists, err := s.repo.Exists(session.ID, email)
	if err != nil {
		return fmt.Errorf("failed to check focus session: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.repo.Create(session); err != nil {
		return fmt.Errorf("failed to save focus session: %w", err)
	}
	return nil
}

// List returns the user's focus history, newest first
func (s *FocusService) List(email string) ([]models.FocusSession, error) {
	sessions, err := s.repo.ListByUser(email)
	if err != nil {
		return nil, fmt.Errorf("failed to load focus sessions: %w", err)
	}
	return sessions, nil
}
