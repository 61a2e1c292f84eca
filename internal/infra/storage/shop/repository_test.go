package shop

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmadnk31/fixwise/internal/domain"
	"github.com/ahmadnk31/fixwise/pkg/ptr"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func shopRow(id, owner uuid.UUID, prefs interface{}) *sqlmock.Rows {
	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(shopColumns).
		AddRow(id.String(), owner.String(), "Fix It Fast", "shop@example.com", nil, prefs, now, now)
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMock(t)
	id, owner := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, owner_id, name, email, phone, booking_preferences, created_at, updated_at FROM shops WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(shopRow(id, owner, []byte(`{"maxBookingsPerDay":4,"workingHours":{"start":"08:00"}}`)))

	shop, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, id, shop.ID)
	assert.Equal(t, owner, shop.OwnerID)
	assert.Nil(t, shop.Phone)
	require.NotNil(t, shop.Preferences)
	assert.Equal(t, ptr.Ptr(4), shop.Preferences.MaxBookingsPerDay)
	require.NotNil(t, shop.Preferences.WorkingHours)
	assert.Equal(t, ptr.Ptr("08:00"), shop.Preferences.WorkingHours.Start)
	assert.Nil(t, shop.Preferences.WorkingHours.End)
}

func TestRepository_GetByID_NullPreferences(t *testing.T) {
	repo, mock := newMock(t)
	id := uuid.New()

	mock.ExpectQuery("FROM shops").WithArgs(id).WillReturnRows(shopRow(id, uuid.New(), nil))

	shop, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, shop.Preferences)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)
	id := uuid.New()

	mock.ExpectQuery("FROM shops").WithArgs(id).WillReturnRows(sqlmock.NewRows(shopColumns))

	_, err := repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrShopNotFound)
}

func TestRepository_UpdatePreferences(t *testing.T) {
	repo, mock := newMock(t)
	id, owner := uuid.New(), uuid.New()
	prefs := &domain.PartialPreferences{AutoConfirm: ptr.Ptr(true)}

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE shops SET booking_preferences = $1, updated_at = NOW() WHERE id = $2 RETURNING")).
		WithArgs([]byte(`{"autoConfirm":true}`), id).
		WillReturnRows(shopRow(id, owner, []byte(`{"autoConfirm":true}`)))

	shop, err := repo.UpdatePreferences(context.Background(), id, prefs)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, ptr.Ptr(true), shop.Preferences.AutoConfirm)
}

func TestDecodePreferences_IgnoresMalformedFields(t *testing.T) {
	prefs := decodePreferences([]byte(`{
		"maxBookingsPerDay": "ten",
		"maxBookingsPerSlot": 2,
		"autoConfirm": "yes",
		"requirePhone": true,
		"workingHours": {"start": 9, "end": "18:00"}
	}`))

	require.NotNil(t, prefs)
	assert.Nil(t, prefs.MaxBookingsPerDay)
	assert.Equal(t, ptr.Ptr(2), prefs.MaxBookingsPerSlot)
	assert.Nil(t, prefs.AutoConfirm)
	assert.Equal(t, ptr.Ptr(true), prefs.RequirePhone)
	require.NotNil(t, prefs.WorkingHours)
	assert.Nil(t, prefs.WorkingHours.Start)
	assert.Equal(t, ptr.Ptr("18:00"), prefs.WorkingHours.End)
}

func TestDecodePreferences_Garbage(t *testing.T) {
	assert.Nil(t, decodePreferences(nil))
	assert.Nil(t, decodePreferences([]byte(`not json`)))
	assert.Nil(t, decodePreferences([]byte(`null`)))
}
