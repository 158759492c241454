// Package newsletter implements the subscription pipeline and subscriber
// group management. Saving the subscriber is the critical step; the welcome
// email is best effort and never fails a subscription.
package newsletter

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gamepress/internal/core"
	"gamepress/internal/logger"
	"gamepress/internal/store"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether email has a plausible address shape.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// WelcomeSender delivers the welcome email for a new subscriber.
type WelcomeSender interface {
	SendWelcome(ctx context.Context, toEmail, toName string) error
}

// DefaultGroupID is the group every new subscriber joins.
const DefaultGroupID = "general"

// Service runs the newsletter operations over the document store.
type Service struct {
	store  store.Store
	mailer WelcomeSender
}

// New creates a Service. mailer may be nil, in which case no welcome emails
// are sent.
func New(st store.Store, mailer WelcomeSender) *Service {
	return &Service{store: st, mailer: mailer}
}

// Result is the user-facing outcome of a subscription attempt.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Subscribe validates and stores a new subscriber, then tries to send the
// welcome email. Duplicate and invalid emails are rejected.
func (s *Service) Subscribe(ctx context.Context, email, name string) Result {
	email = strings.TrimSpace(email)
	if !IsValidEmail(email) {
		return Result{Success: false, Message: "Por favor, introduce un email válido"}
	}

	_, err := s.store.FindSubscriberByEmail(ctx, email)
	switch {
	case err == nil:
		return Result{Success: false, Message: "¡Este email ya está suscrito a nuestra newsletter!"}
	case !errors.Is(err, store.ErrNotFound):
		logger.Error("failed to check existing subscription", err, "email", email)
		return Result{Success: false, Message: "Error al procesar la suscripción. Por favor, intenta de nuevo."}
	}

	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	sub := &core.Subscriber{
		Email:     email,
		Name:      name,
		Status:    core.SubscriberActive,
		Source:    "website",
		Confirmed: true,
		Groups:    []string{DefaultGroupID},
	}
	if _, err := s.store.CreateSubscriber(ctx, sub); err != nil {
		logger.Error("failed to save subscriber", err, "email", email)
		return Result{Success: false, Message: "Error al guardar el suscriptor"}
	}

	// Best effort: a bounced welcome email must not undo the subscription.
	if s.mailer != nil {
		if err := s.mailer.SendWelcome(ctx, sub.Email, sub.Name); err != nil {
			logger.Warn("welcome email not sent", "email", sub.Email, "error", err)
		}
	}

	logger.Info("new subscriber", "email", sub.Email, "name", sub.Name)
	return Result{Success: true, Message: "¡Suscripción exitosa! Te has registrado correctamente."}
}

// Stats summarizes the subscriber base.
type Stats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	subs, err := s.store.ListSubscribers(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Total: len(subs)}
	for _, sub := range subs {
		if sub.Status == core.SubscriberActive {
			stats.Active++
		}
	}
	return stats, nil
}

// ExportCSV renders subscribers as CSV with Spanish headers.
func ExportCSV(subscribers []core.Subscriber) string {
	var sb strings.Builder
	sb.WriteString("Email,Nombre,Fecha de Suscripción,Estado,Fuente\n")

	for _, sub := range subscribers {
		date := "N/A"
		if !sub.SubscribedAt.IsZero() {
			date = fmt.Sprintf("%d/%d/%d", sub.SubscribedAt.Day(), int(sub.SubscribedAt.Month()), sub.SubscribedAt.Year())
		}
		sb.WriteString(strings.Join([]string{sub.Email, sub.Name, date, sub.Status, sub.Source}, ","))
		sb.WriteString("\n")
	}
	return sb.String()
}

// BulkResult counts the outcome of a bulk operation.
type BulkResult struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

// BulkUpdate applies updates to each subscriber independently; one failure
// does not stop the batch.
func (s *Service) BulkUpdate(ctx context.Context, ids []string, updates map[string]any) BulkResult {
	var res BulkResult
	for _, id := range ids {
		if err := s.store.UpdateSubscriber(ctx, id, updates); err != nil {
			logger.Warn("bulk update failed for subscriber", "id", id, "error", err)
			res.Failed++
			continue
		}
		res.Success++
	}
	return res
}

// BulkDelete removes each subscriber independently.
func (s *Service) BulkDelete(ctx context.Context, ids []string) BulkResult {
	var res BulkResult
	for _, id := range ids {
		if err := s.store.DeleteSubscriber(ctx, id); err != nil {
			logger.Warn("bulk delete failed for subscriber", "id", id, "error", err)
			res.Failed++
			continue
		}
		res.Success++
	}
	return res
}
