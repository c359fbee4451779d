// Package newsletter implements the email subscription flow: validate the
// address locally, then hand it to the backend.
package newsletter

import (
	"context"
	"errors"
	"regexp"

	"go.uber.org/zap"

	"github.com/seenimoa/equibull/pkg/models"
)

// ErrInvalidEmail is returned for addresses that fail the format check.
// Its message is shown to users as is.
var ErrInvalidEmail = errors.New("Please enter a valid email address")

// emailPattern requires something@something.something with no whitespace
// and a single "@".
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Subscriber is the backend operation the service depends on.
type Subscriber interface {
	Subscribe(ctx context.Context, email string) (*models.SubscribeResult, error)
}

// Service validates and forwards subscriptions.
type Service struct {
	backend Subscriber
	log     *zap.Logger
}

// NewService creates a subscription service backed by s.
func NewService(s Subscriber, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{backend: s, log: log.Named("newsletter")}
}

// Subscribe validates email and, if it passes, submits it exactly once.
func (s *Service) Subscribe(ctx context.Context, email string) (*models.SubscribeResult, error) {
	if !ValidEmail(email) {
		s.log.Debug("rejected invalid email")
		return nil, ErrInvalidEmail
	}
	return s.backend.Subscribe(ctx, email)
}
