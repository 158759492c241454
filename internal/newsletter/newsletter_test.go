package newsletter

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamepress/internal/core"
	"gamepress/internal/store"
)

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) SendWelcome(_ context.Context, toEmail, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, toEmail)
	return nil
}

func TestSubscribe(t *testing.T) {
	mem := store.NewMemory()
	mailer := &fakeMailer{}
	svc := New(mem, mailer)

	res := svc.Subscribe(context.Background(), "Ana@Example.com", "Ana")
	assert.True(t, res.Success)
	assert.Equal(t, []string{"ana@example.com"}, mailer.sent)

	sub, err := mem.FindSubscriberByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", sub.Name)
	assert.Equal(t, core.SubscriberActive, sub.Status)
	assert.Equal(t, "website", sub.Source)
	assert.True(t, sub.Confirmed)
	assert.Equal(t, []string{DefaultGroupID}, sub.Groups)
}

func TestSubscribeInvalidEmail(t *testing.T) {
	svc := New(store.NewMemory(), nil)

	for _, email := range []string{"", "no-arroba", "dos@@a.com", "con espacios@a.com", "sin@tld"} {
		res := svc.Subscribe(context.Background(), email, "")
		assert.False(t, res.Success, "email %q must be rejected", email)
		assert.Equal(t, "Por favor, introduce un email válido", res.Message)
	}
}

func TestSubscribeDuplicate(t *testing.T) {
	mem := store.NewMemory()
	svc := New(mem, nil)

	require.True(t, svc.Subscribe(context.Background(), "ana@example.com", "Ana").Success)

	res := svc.Subscribe(context.Background(), "ANA@example.com", "Otra Ana")
	assert.False(t, res.Success)
	assert.Equal(t, "¡Este email ya está suscrito a nuestra newsletter!", res.Message)

	subs, err := mem.ListSubscribers(context.Background())
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestSubscribeDefaultsNameToLocalPart(t *testing.T) {
	mem := store.NewMemory()
	svc := New(mem, nil)

	require.True(t, svc.Subscribe(context.Background(), "luis.gamer@example.com", "").Success)

	sub, err := mem.FindSubscriberByEmail(context.Background(), "luis.gamer@example.com")
	require.NoError(t, err)
	assert.Equal(t, "luis.gamer", sub.Name)
}

func TestSubscribeSurvivesEmailFailure(t *testing.T) {
	mem := store.NewMemory()
	svc := New(mem, &fakeMailer{err: errors.New("brevo down")})

	res := svc.Subscribe(context.Background(), "ana@example.com", "Ana")
	assert.True(t, res.Success, "email failure must not fail the subscription")

	_, err := mem.FindSubscriberByEmail(context.Background(), "ana@example.com")
	assert.NoError(t, err)
}

func TestStats(t *testing.T) {
	mem := store.NewMemory()
	svc := New(mem, nil)

	require.True(t, svc.Subscribe(context.Background(), "a@example.com", "").Success)
	require.True(t, svc.Subscribe(context.Background(), "b@example.com", "").Success)

	sub, err := mem.FindSubscriberByEmail(context.Background(), "b@example.com")
	require.NoError(t, err)
	require.NoError(t, mem.UpdateSubscriber(context.Background(), sub.ID, map[string]any{"status": core.SubscriberBlocked}))

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 2, Active: 1}, stats)
}

func TestExportCSV(t *testing.T) {
	subs := []core.Subscriber{
		{
			Email:        "ana@example.com",
			Name:         "Ana",
			Status:       core.SubscriberActive,
			Source:       "website",
			SubscribedAt: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{Email: "sin.fecha@example.com", Name: "X", Status: "active", Source: "import"},
	}

	csv := ExportCSV(subs)
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Email,Nombre,Fecha de Suscripción,Estado,Fuente", lines[0])
	assert.Equal(t, "ana@example.com,Ana,2/3/2025,active,website", lines[1])
	assert.Contains(t, lines[2], "N/A")
}

func TestBulkOperations(t *testing.T) {
	mem := store.NewMemory()
	svc := New(mem, nil)

	require.True(t, svc.Subscribe(context.Background(), "a@example.com", "").Success)
	require.True(t, svc.Subscribe(context.Background(), "b@example.com", "").Success)

	subs, err := mem.ListSubscribers(context.Background())
	require.NoError(t, err)
	ids := []string{subs[0].ID, subs[1].ID, "missing-id"}

	res := svc.BulkUpdate(context.Background(), ids, map[string]any{"status": core.SubscriberBlocked})
	assert.Equal(t, BulkResult{Success: 2, Failed: 1}, res)

	res = svc.BulkDelete(context.Background(), ids)
	assert.Equal(t, BulkResult{Success: 2, Failed: 1}, res)

	remaining, err := mem.ListSubscribers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
