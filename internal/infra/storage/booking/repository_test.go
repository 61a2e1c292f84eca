package booking

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmadnk31/fixwise/internal/domain"
	"github.com/ahmadnk31/fixwise/pkg/types"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

var testDate = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

func TestRepository_CountActive(t *testing.T) {
	repo, mock := newMock(t)
	shopID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM bookings WHERE booking_date = $1 AND shop_id = $2 AND status IN ($3,$4)")).
		WithArgs(testDate, shopID, "pending", "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountActive(context.Background(), shopID, testDate)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, 3, count)
}

func TestRepository_CountActiveAtSlot(t *testing.T) {
	repo, mock := newMock(t)
	shopID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM bookings WHERE booking_date = $1 AND shop_id = $2 AND start_time = $3 AND status IN ($4,$5)")).
		WithArgs(testDate, shopID, "09:30", "pending", "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	// время без ведущего нуля нормализуется перед запросом
	count, err := repo.CountActiveAtSlot(context.Background(), shopID, testDate, types.TimeString("9:30"))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, 1, count)
}

func TestRepository_CountActive_QueryError(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("connection reset"))

	_, err := repo.CountActive(context.Background(), uuid.New(), testDate)
	assert.ErrorIs(t, err, ErrScanRow)
}

func TestRepository_CountActiveByTime(t *testing.T) {
	repo, mock := newMock(t)
	shopID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT start_time, COUNT(*) FROM bookings")).
		WithArgs(testDate, shopID, "pending", "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"start_time", "count"}).
			AddRow("09:00:00", 2).
			AddRow("13:30:00", 1))

	counts, err := repo.CountActiveByTime(context.Background(), shopID, testDate)
	require.NoError(t, err)
	assert.Equal(t, map[types.TimeString]int{"09:00": 2, "13:30": 1}, counts)
}

func TestRepository_ListUpcomingDates(t *testing.T) {
	repo, mock := newMock(t)
	shopID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT DISTINCT booking_date FROM bookings WHERE shop_id = $1 AND status IN ($2,$3) AND booking_date >= $4 ORDER BY booking_date ASC LIMIT 100")).
		WithArgs(shopID, "pending", "confirmed", testDate).
		WillReturnRows(sqlmock.NewRows([]string{"booking_date"}).
			AddRow(testDate).
			AddRow(testDate.AddDate(0, 0, 2)))

	dates, err := repo.ListUpcomingDates(context.Background(), shopID, testDate, 100)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, []time.Time{testDate, testDate.AddDate(0, 0, 2)}, dates)
}

func newBooking(shopID uuid.UUID) *domain.Booking {
	return &domain.Booking{
		ShopID:        shopID,
		BookingDate:   testDate,
		StartTime:     types.MustTimeString("10:00"),
		Status:        domain.StatusPending,
		CustomerName:  "Alex Doe",
		CustomerEmail: "alex@example.com",
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	shopID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings (id,shop_id,diagnosis_id,booking_date,start_time,status,customer_name,customer_email,customer_phone,notes)")).
		WithArgs(sqlmock.AnyArg(), shopID, nil, testDate, "10:00", "pending", "Alex Doe", "alex@example.com", nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	created, err := repo.Create(context.Background(), newBooking(shopID))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, now, created.CreatedAt)
}

func TestRepository_Create_Conflict(t *testing.T) {
	tests := []struct {
		name string
		code pq.ErrorCode
	}{
		{"unique violation", "23505"},
		{"serialization failure", "40001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMock(t)

			mock.ExpectQuery("INSERT INTO bookings").WillReturnError(&pq.Error{Code: tt.code})

			_, err := repo.Create(context.Background(), newBooking(uuid.New()))
			assert.ErrorIs(t, err, ErrSlotConflict)
			assert.True(t, IsConflict(err))
		})
	}
}

func TestRepository_Create_OtherError(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("INSERT INTO bookings").WillReturnError(&pq.Error{Code: "23503"})

	_, err := repo.Create(context.Background(), newBooking(uuid.New()))
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.False(t, IsConflict(err))
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMock(t)
	id, shopID := uuid.New(), uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(id.String(), shopID.String(), nil, testDate, "14:00:00", "confirmed",
				"Alex Doe", "alex@example.com", "+3212345678", nil, now, now))

	b, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, shopID, b.ShopID)
	assert.Equal(t, types.TimeString("14:00"), b.StartTime)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	require.NotNil(t, b.CustomerPhone)
	assert.Equal(t, "+3212345678", *b.CustomerPhone)
	assert.Nil(t, b.Notes)
	assert.Nil(t, b.DiagnosisID)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("FROM bookings").WillReturnRows(sqlmock.NewRows(bookingColumns))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_GetByShopWithFilter_ActiveOnly(t *testing.T) {
	repo, mock := newMock(t)
	shopID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM bookings WHERE shop_id = $1 AND booking_date >= $2 AND booking_date <= $3 AND status IN ($4,$5) ORDER BY start_time ASC")).
		WithArgs(shopID, testDate, testDate, "pending", "confirmed").
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	date := testDate
	bookings, err := repo.GetByShopWithFilter(context.Background(), domain.ShopBookingsFilter{
		ShopID:    shopID,
		StartDate: &date,
		EndDate:   &date,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, bookings)
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := newMock(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs("cancelled", id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), id, domain.StatusCancelled))

	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), id, domain.StatusCompleted), ErrBookingNotFound)

	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), id, "archived"), ErrInvalidStatus)
}
