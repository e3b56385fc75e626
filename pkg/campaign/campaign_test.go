package campaign_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailmerge/pkg/campaign"
	"github.com/dmitrymomot/mailmerge/pkg/mailer"
	"github.com/dmitrymomot/mailmerge/pkg/sheet"
	"github.com/dmitrymomot/mailmerge/pkg/sheet/memory"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, email *mailer.Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func toAddr(addr string) any {
	return mock.MatchedBy(func(e *mailer.Email) bool {
		return len(e.To) == 1 && e.To[0] == addr
	})
}

// noSleep replaces the inter-send pause in tests.
func noSleep(context.Context, time.Duration) error { return nil }

func fixedClock() time.Time {
	return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
}

func seedRecipients(wb *memory.Workbook) *memory.Sheet {
	return wb.Seed("Recipients", [][]string{
		{"email", "greeting_first_name", "message"},
		{"a@x.com", "John", "liked your talk"},
		{"b@x.com", "Jane", ""},
		{"c@x.com", "", "great launch"},
	})
}

func TestSend_DeliversAndMarksRows(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	wb := memory.New()
	sh := seedRecipients(wb)

	sender := new(mockSender)
	sender.On("Send", mock.Anything, mock.AnythingOfType("*mailer.Email")).Return(nil).Times(3)

	c := campaign.New(wb, sender, campaign.Config{},
		campaign.WithSleep(noSleep),
		campaign.WithClock(fixedClock),
	)

	res, err := c.Send(ctx, false)
	require.NoError(t, err)
	require.Equal(t, 3, res.Sent)
	require.Zero(t, res.Failed)
	require.Empty(t, res.Errors)
	require.NotEqual(t, uuid.Nil, res.BatchID)
	require.False(t, res.TestMode)
	sender.AssertExpectations(t)

	// Status and sent-date columns get appended after the 3 data
	// columns, so they land at columns 4 and 5.
	for row := 2; row <= 4; row++ {
		status, err := sh.Cell(ctx, row, 4)
		require.NoError(t, err)
		require.Equal(t, campaign.StatusSent, status)

		stamp, err := sh.Cell(ctx, row, 5)
		require.NoError(t, err)
		require.Equal(t, "2025-03-10T12:00:00Z", stamp)

		require.Equal(t, sheet.ColorSuccess, sh.RowColor(row))
	}

	header, err := sh.Cell(ctx, 1, 4)
	require.NoError(t, err)
	require.Equal(t, "status", header)
	header, err = sh.Cell(ctx, 1, 5)
	require.NoError(t, err)
	require.Equal(t, "sent_date", header)
}

func TestSend_RendersTemplatePerRecipient(t *testing.T) {
	t.Parallel()

	wb := memory.New()
	seedRecipients(wb)
	seedTemplate(wb, "Hi {{greeting_first_name}}", "{{message}}", "friend", "hope you are well")

	var sent []*mailer.Email
	sender := new(mockSender)
	sender.On("Send", mock.Anything, mock.AnythingOfType("*mailer.Email")).
		Run(func(args mock.Arguments) {
			sent = append(sent, args.Get(1).(*mailer.Email))
		}).
		Return(nil)

	c := campaign.New(wb, sender, campaign.Config{}, campaign.WithSleep(noSleep))

	_, err := c.Send(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, sent, 3)

	require.Equal(t, "Hi John", sent[0].Subject)
	require.Equal(t, "liked your talk", sent[0].Text)

	// Blank message cell falls back to the template-level default.
	require.Equal(t, "Hi Jane", sent[1].Subject)
	require.Equal(t, "hope you are well", sent[1].Text)

	// Blank name cell falls back too.
	require.Equal(t, "Hi friend", sent[2].Subject)
	require.Equal(t, "great launch", sent[2].Text)
}

func TestSend_TestModeSendsOnlyFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	wb := memory.New()
	sh := seedRecipients(wb)

	sender := new(mockSender)
	sender.On("Send", mock.Anything, toAddr("a@x.com")).Return(nil).Once()

	c := campaign.New(wb, sender, campaign.Config{}, campaign.WithSleep(noSleep))

	res, err := c.Send(ctx, true)
	require.NoError(t, err)
	require.Equal(t, 1, res.Sent)
	require.True(t, res.TestMode)
	sender.AssertExpectations(t)

	status, err := sh.Cell(ctx, 2, 4)
	require.NoError(t, err)
	require.Equal(t, campaign.StatusSent, status)

	// The remaining rows stay untouched.
	for row := 3; row <= 4; row++ {
		status, err := sh.Cell(ctx, row, 4)
		require.NoError(t, err)
		require.Empty(t, status)
		require.Equal(t, sheet.ColorNone, sh.RowColor(row))
	}
}

func TestSend_PartialFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	wb := memory.New()
	sh := seedRecipients(wb)

	sender := new(mockSender)
	sender.On("Send", mock.Anything, toAddr("b@x.com")).Return(errors.New("mailbox full")).Once()
	sender.On("Send", mock.Anything, mock.AnythingOfType("*mailer.Email")).Return(nil).Twice()

	c := campaign.New(wb, sender, campaign.Config{}, campaign.WithSleep(noSleep))

	res, err := c.Send(ctx, false)
	require.NoError(t, err)
	require.Equal(t, 2, res.Sent)
	require.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0], "b@x.com")
	require.Contains(t, res.Errors[0], "mailbox full")
	sender.AssertExpectations(t)

	status, err := sh.Cell(ctx, 3, 4)
	require.NoError(t, err)
	require.Equal(t, campaign.StatusError, status)
	require.Equal(t, sheet.ColorFailure, sh.RowColor(3))

	// Failed rows carry no sent-date stamp.
	stamp, err := sh.Cell(ctx, 3, 5)
	require.NoError(t, err)
	require.Empty(t, stamp)

	for _, row := range []int{2, 4} {
		status, err := sh.Cell(ctx, row, 4)
		require.NoError(t, err)
		require.Equal(t, campaign.StatusSent, status)
		require.Equal(t, sheet.ColorSuccess, sh.RowColor(row))
	}
}

func TestSend_PacesBetweenSends(t *testing.T) {
	t.Parallel()

	wb := memory.New()
	seedRecipients(wb)

	sender := new(mockSender)
	sender.On("Send", mock.Anything, mock.AnythingOfType("*mailer.Email")).Return(nil)

	var pauses []time.Duration
	c := campaign.New(wb, sender, campaign.Config{SendDelay: 250 * time.Millisecond},
		campaign.WithSleep(func(_ context.Context, d time.Duration) error {
			pauses = append(pauses, d)
			return nil
		}),
	)

	_, err := c.Send(context.Background(), false)
	require.NoError(t, err)

	// No pause before the first send and none after the last.
	require.Equal(t, []time.Duration{250 * time.Millisecond, 250 * time.Millisecond}, pauses)
}

func TestSend_AbortsWhenPauseCanceled(t *testing.T) {
	t.Parallel()

	wb := memory.New()
	seedRecipients(wb)

	sender := new(mockSender)
	sender.On("Send", mock.Anything, mock.AnythingOfType("*mailer.Email")).Return(nil).Once()

	c := campaign.New(wb, sender, campaign.Config{},
		campaign.WithSleep(func(context.Context, time.Duration) error {
			return context.Canceled
		}),
	)

	res, err := c.Send(context.Background(), false)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	require.Equal(t, 1, res.Sent)
	sender.AssertExpectations(t)
}

func TestSend_NoPendingRecipients(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	wb := memory.New()
	sh := wb.Seed("Recipients", [][]string{
		{"email", "greeting_first_name"},
	})

	sender := new(mockSender)
	c := campaign.New(wb, sender, campaign.Config{}, campaign.WithSleep(noSleep))

	_, err := c.Send(ctx, false)
	require.ErrorIs(t, err, campaign.ErrNoRecipients)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)

	// No status columns get appended on a no-op run.
	rows, err := sh.Rows(ctx)
	require.NoError(t, err)
	require.Len(t, rows[0], 2)
}

func TestSend_MissingRecipientSheet(t *testing.T) {
	t.Parallel()

	sender := new(mockSender)
	c := campaign.New(memory.New(), sender, campaign.Config{})

	_, err := c.Send(context.Background(), false)
	require.ErrorIs(t, err, sheet.ErrSheetNotFound)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSend_ReusesExistingStatusColumns(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	wb := memory.New()
	sh := wb.Seed("Recipients", [][]string{
		{"email", "status", "sent_date"},
		{"a@x.com", "Error", "2024-01-01T00:00:00Z"},
	})

	sender := new(mockSender)
	sender.On("Send", mock.Anything, toAddr("a@x.com")).Return(nil).Once()

	c := campaign.New(wb, sender, campaign.Config{},
		campaign.WithSleep(noSleep),
		campaign.WithClock(fixedClock),
	)

	res, err := c.Send(ctx, false)
	require.NoError(t, err)
	require.Equal(t, 1, res.Sent)

	rows, err := sh.Rows(ctx)
	require.NoError(t, err)
	require.Len(t, rows[0], 3, "existing columns must not be duplicated")

	status, err := sh.Cell(ctx, 2, 2)
	require.NoError(t, err)
	require.Equal(t, campaign.StatusSent, status)
	stamp, err := sh.Cell(ctx, 2, 3)
	require.NoError(t, err)
	require.Equal(t, "2025-03-10T12:00:00Z", stamp)
}

func TestSend_HTMLBody(t *testing.T) {
	t.Parallel()

	wb := memory.New()
	seedRecipients(wb)

	var sent []*mailer.Email
	sender := new(mockSender)
	sender.On("Send", mock.Anything, mock.AnythingOfType("*mailer.Email")).
		Run(func(args mock.Arguments) {
			sent = append(sent, args.Get(1).(*mailer.Email))
		}).
		Return(nil)

	c := campaign.New(wb, sender, campaign.Config{HTMLBody: true}, campaign.WithSleep(noSleep))

	_, err := c.Send(context.Background(), false)
	require.NoError(t, err)
	require.NotEmpty(t, sent)
	require.NotEmpty(t, sent[0].Text)
	require.Contains(t, sent[0].HTML, "<p>")
}

func TestSendSelfTest(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	wb := memory.New()
	sh := seedRecipients(wb)
	seedTemplate(wb, "Weekly update", "Hello {{greeting_first_name}}", "there", "")

	var sent []*mailer.Email
	sender := new(mockSender)
	sender.On("Send", mock.Anything, toAddr("me@corp.com")).
		Run(func(args mock.Arguments) {
			sent = append(sent, args.Get(1).(*mailer.Email))
		}).
		Return(nil).
		Once()

	c := campaign.New(wb, sender, campaign.Config{OperatorEmail: "me@corp.com"})

	to, err := c.SendSelfTest(ctx)
	require.NoError(t, err)
	require.Equal(t, "me@corp.com", to)
	sender.AssertExpectations(t)
	require.Len(t, sent, 1)
	require.Equal(t, "Weekly update [TEST]", sent[0].Subject)
	require.Equal(t, "Hello Test User", sent[0].Text)

	// Self tests never write to the recipient tab.
	rows, err := sh.Rows(ctx)
	require.NoError(t, err)
	require.Len(t, rows[0], 3)
	for row := 2; row <= 4; row++ {
		require.Equal(t, sheet.ColorNone, sh.RowColor(row))
	}
}

func TestSendSelfTest_NoIdentity(t *testing.T) {
	t.Parallel()

	sender := new(mockSender)
	c := campaign.New(memory.New(), sender, campaign.Config{})

	_, err := c.SendSelfTest(context.Background())
	require.ErrorIs(t, err, campaign.ErrNoIdentity)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSendSelfTest_TransportError(t *testing.T) {
	t.Parallel()

	sender := new(mockSender)
	sender.On("Send", mock.Anything, mock.AnythingOfType("*mailer.Email")).
		Return(errors.New("rejected")).
		Once()

	wb := memory.New()
	c := campaign.New(wb, sender, campaign.Config{OperatorEmail: "me@corp.com"})

	_, err := c.SendSelfTest(context.Background())
	require.Error(t, err)
}

func TestPreview_FirstPendingRecipient(t *testing.T) {
	t.Parallel()

	wb := memory.New()
	seedRecipients(wb)
	seedTemplate(wb, "Hi {{greeting_first_name}}", "{{message}}", "friend", "checking in")

	c := campaign.New(wb, nil, campaign.Config{})

	p, err := c.Preview(context.Background())
	require.NoError(t, err)
	require.False(t, p.Sample)
	require.Equal(t, 3, p.Pending)
	require.Equal(t, "a@x.com", p.To)
	require.Equal(t, "Hi John", p.Subject)
	require.Equal(t, "liked your talk", p.Body)
}

func TestPreview_SampleWhenNothingPending(t *testing.T) {
	t.Parallel()

	wb := memory.New()
	wb.Seed("Recipients", [][]string{
		{"email", "status"},
		{"a@x.com", "Sent"},
	})

	c := campaign.New(wb, nil, campaign.Config{})

	p, err := c.Preview(context.Background())
	require.NoError(t, err)
	require.True(t, p.Sample)
	require.Zero(t, p.Pending)
	require.Equal(t, "sample@example.com", p.To)
	require.Equal(t, campaign.DefaultSubject, p.Subject)
	require.Equal(t, "Dear John,\n\nThis is a sample message\n\nBest regards", p.Body)
}
