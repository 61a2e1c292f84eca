package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmadnk31/fixwise/internal/domain"
	"github.com/ahmadnk31/fixwise/internal/integrations/mailer"
	"github.com/ahmadnk31/fixwise/pkg/logger"
	"github.com/ahmadnk31/fixwise/pkg/ptr"
	"github.com/ahmadnk31/fixwise/pkg/types"
)

type fakeClient struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (c *fakeClient) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.tasks = append(c.tasks, task)
	c.opts = append(c.opts, opts)
	return &asynq.TaskInfo{ID: "t-1", Queue: "notifications", Type: task.Type()}, nil
}

type fakeMailer struct {
	sent []*mailer.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg *mailer.Message) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, msg)
	return "email_1", nil
}

func testBooking(status domain.BookingStatus) (*domain.Booking, *domain.Shop) {
	shop := &domain.Shop{ID: uuid.New(), Name: "Screen Savers", Email: "shop@example.com"}
	booking := &domain.Booking{
		ID:            uuid.New(),
		ShopID:        shop.ID,
		BookingDate:   time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC),
		StartTime:     types.TimeString("10:30"),
		Status:        status,
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
		CustomerPhone: ptr.Ptr("+32 470 00 00 00"),
		Notes:         ptr.Ptr("Cracked screen"),
	}
	return booking, shop
}

func TestEnqueuer_NotifyCustomer(t *testing.T) {
	client := &fakeClient{}
	e := NewEnqueuer(client, Options{Queue: "notifications", MaxRetry: 5, Timeout: time.Minute}, logger.NewNop())
	booking, shop := testBooking(domain.StatusPending)

	require.NoError(t, e.NotifyCustomer(context.Background(), booking, shop))
	require.Len(t, client.tasks, 1)

	task := client.tasks[0]
	assert.Equal(t, TypeNotifyCustomer, task.Type())
	assert.Len(t, client.opts[0], 4)

	var p BookingPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, booking.ID, p.BookingID)
	assert.Equal(t, "2026-03-12", p.BookingDate)
	assert.Equal(t, "10:30", p.StartTime)
	assert.Equal(t, "pending", p.Status)
	assert.Equal(t, "+32 470 00 00 00", p.CustomerPhone)
	assert.Equal(t, "Screen Savers", p.ShopName)
}

func TestEnqueuer_NotifyShopWithoutEmailIsSkipped(t *testing.T) {
	client := &fakeClient{}
	e := NewEnqueuer(client, Options{}, logger.NewNop())
	booking, shop := testBooking(domain.StatusPending)
	shop.Email = ""

	require.NoError(t, e.NotifyShop(context.Background(), booking, shop))
	assert.Empty(t, client.tasks)
}

func TestEnqueuer_Errors(t *testing.T) {
	booking, shop := testBooking(domain.StatusPending)

	dup := NewEnqueuer(&fakeClient{err: asynq.ErrTaskIDConflict}, Options{}, logger.NewNop())
	assert.NoError(t, dup.NotifyShop(context.Background(), booking, shop))

	down := NewEnqueuer(&fakeClient{err: errors.New("dial tcp: connection refused")}, Options{}, logger.NewNop())
	assert.ErrorIs(t, down.NotifyCustomer(context.Background(), booking, shop), ErrEnqueue)
}

func TestTaskID(t *testing.T) {
	id := uuid.MustParse("6f1c2c1e-5f0a-4c7c-9d2e-2b3a4c5d6e7f")
	assert.Equal(t, "booking:notify_shop:6f1c2c1e-5f0a-4c7c-9d2e-2b3a4c5d6e7f", taskID(TypeNotifyShop, id))
}

func taskFor(t *testing.T, taskType string, booking *domain.Booking, shop *domain.Shop) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(NewBookingPayload(booking, shop))
	require.NoError(t, err)
	return asynq.NewTask(taskType, b)
}

func TestHandler_CustomerMessages(t *testing.T) {
	tests := []struct {
		status  domain.BookingStatus
		subject string
		lead    string
	}{
		{domain.StatusConfirmed, "Your booking at Screen Savers is confirmed", "is confirmed"},
		{domain.StatusPending, "Booking request sent to Screen Savers", "will confirm it shortly"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			m := &fakeMailer{}
			h := NewHandler(m, "FixWise <no-reply@fixwise.test>", logger.NewNop())
			booking, shop := testBooking(tt.status)

			require.NoError(t, h.HandleNotifyCustomer(context.Background(), taskFor(t, TypeNotifyCustomer, booking, shop)))
			require.Len(t, m.sent, 1)

			msg := m.sent[0]
			assert.Equal(t, []string{"ana@example.com"}, msg.To)
			assert.Equal(t, "shop@example.com", msg.ReplyTo)
			assert.Equal(t, tt.subject, msg.Subject)
			assert.Contains(t, msg.Text, tt.lead)
			assert.Contains(t, msg.Text, "Time: 10:30")
		})
	}
}

func TestHandler_ShopMessage(t *testing.T) {
	m := &fakeMailer{}
	h := NewHandler(m, "no-reply@fixwise.test", logger.NewNop())
	booking, shop := testBooking(domain.StatusPending)

	require.NoError(t, h.HandleNotifyShop(context.Background(), taskFor(t, TypeNotifyShop, booking, shop)))
	require.Len(t, m.sent, 1)

	msg := m.sent[0]
	assert.Equal(t, []string{"shop@example.com"}, msg.To)
	assert.Equal(t, "New booking request: 2026-03-12 at 10:30", msg.Subject)
	assert.Contains(t, msg.Text, "Phone: +32 470 00 00 00")
	assert.Contains(t, msg.Text, "Notes: Cracked screen")
}

func TestHandler_Errors(t *testing.T) {
	booking, shop := testBooking(domain.StatusPending)

	t.Run("broken payload is not retried", func(t *testing.T) {
		h := NewHandler(&fakeMailer{}, "from@x.test", logger.NewNop())
		err := h.HandleNotifyCustomer(context.Background(), asynq.NewTask(TypeNotifyCustomer, []byte("{")))
		assert.ErrorIs(t, err, ErrInvalidPayload)
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})

	t.Run("rejected email is not retried", func(t *testing.T) {
		h := NewHandler(&fakeMailer{err: mailer.ErrInvalidRequest}, "from@x.test", logger.NewNop())
		err := h.HandleNotifyCustomer(context.Background(), taskFor(t, TypeNotifyCustomer, booking, shop))
		assert.ErrorIs(t, err, ErrSend)
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})

	t.Run("unavailable mailer is retried", func(t *testing.T) {
		h := NewHandler(&fakeMailer{err: mailer.ErrUnavailable}, "from@x.test", logger.NewNop())
		err := h.HandleNotifyShop(context.Background(), taskFor(t, TypeNotifyShop, booking, shop))
		assert.ErrorIs(t, err, ErrSend)
		assert.NotErrorIs(t, err, asynq.SkipRetry)
	})
}

func TestHandler_Register(t *testing.T) {
	mux := asynq.NewServeMux()
	m := &fakeMailer{}
	NewHandler(m, "from@x.test", logger.NewNop()).Register(mux)

	booking, shop := testBooking(domain.StatusPending)
	require.NoError(t, mux.ProcessTask(context.Background(), taskFor(t, TypeNotifyShop, booking, shop)))
	assert.Len(t, m.sent, 1)
}
