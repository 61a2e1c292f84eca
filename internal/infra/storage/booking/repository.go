package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ahmadnk31/fixwise/internal/domain"
	"github.com/ahmadnk31/fixwise/pkg/dbmetrics"
	"github.com/ahmadnk31/fixwise/pkg/psqlbuilder"
	"github.com/ahmadnk31/fixwise/pkg/types"
)

var bookingColumns = []string{
	"id",
	"shop_id",
	"diagnosis_id",
	"booking_date",
	"start_time",
	"status",
	"customer_name",
	"customer_email",
	"customer_phone",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CountActive считает активные бронирования мастерской на дату
func (r *Repository) CountActive(ctx context.Context, shopID uuid.UUID, date time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"shop_id":      shopID,
			"booking_date": domain.DateOnly(date),
			"status":       domain.ActiveStatusStrings(),
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActive - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActive - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountActiveAtSlot считает активные бронирования мастерской на конкретное время даты.
// Внутри транзакции это финальная перепроверка перед вставкой
func (r *Repository) CountActiveAtSlot(ctx context.Context, shopID uuid.UUID, date time.Time, startTime types.TimeString) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"shop_id":      shopID,
			"booking_date": domain.DateOnly(date),
			"start_time":   startTime,
			"status":       domain.ActiveStatusStrings(),
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveAtSlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		if IsConflict(err) {
			return 0, fmt.Errorf("%w: CountActiveAtSlot - %v", ErrSlotConflict, err)
		}
		return 0, fmt.Errorf("%w: CountActiveAtSlot - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountActiveByTime возвращает количество активных бронирований по каждому занятому времени даты
func (r *Repository) CountActiveByTime(ctx context.Context, shopID uuid.UUID, date time.Time) (map[types.TimeString]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_time", "COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"shop_id":      shopID,
			"booking_date": domain.DateOnly(date),
			"status":       domain.ActiveStatusStrings(),
		}).
		GroupBy("start_time").
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByTime - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByTime - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[types.TimeString]int)
	for rows.Next() {
		var startTime types.TimeString
		var count int
		if err := rows.Scan(&startTime, &count); err != nil {
			return nil, fmt.Errorf("%w: CountActiveByTime - scan row: %v", ErrScanRow, err)
		}
		counts[startTime] += count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountActiveByTime - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// ListUpcomingDates возвращает отсортированные даты начиная с from, на которые есть
// хотя бы одно активное бронирование. Выборка ограничена limit
func (r *Repository) ListUpcomingDates(ctx context.Context, shopID uuid.UUID, from time.Time, limit int) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT booking_date").
		From("bookings").
		Where(squirrel.Eq{
			"shop_id": shopID,
			"status":  domain.ActiveStatusStrings(),
		}).
		Where(squirrel.GtOrEq{"booking_date": domain.DateOnly(from)}).
		OrderBy("booking_date ASC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcomingDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcomingDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: ListUpcomingDates - scan booking_date: %v", ErrScanRow, err)
		}
		dates = append(dates, domain.DateOnly(d))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListUpcomingDates - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
// Конфликт с параллельной транзакцией возвращается как ErrSlotConflict
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"shop_id",
			"diagnosis_id",
			"booking_date",
			"start_time",
			"status",
			"customer_name",
			"customer_email",
			"customer_phone",
			"notes",
		).
		Values(
			booking.ID,
			booking.ShopID,
			booking.DiagnosisID,
			domain.DateOnly(booking.BookingDate),
			booking.StartTime,
			booking.Status,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if IsConflict(err) {
			return nil, fmt.Errorf("%w: Create - %v", ErrSlotConflict, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID. В транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}

	return bookings[0], nil
}

// GetByShopWithFilter получает бронирования мастерской с фильтрацией
//
// Примеры использования:
//
// 1. Бронирования на конкретную дату:
//    filter := domain.ShopBookingsFilter{ShopID: id, StartDate: &date, EndDate: &date}
//
// 2. Только ожидающие подтверждения:
//    status := domain.StatusPending
//    filter := domain.ShopBookingsFilter{ShopID: id, Status: &status}
//
// 3. Вся история включая отмененные:
//    filter := domain.ShopBookingsFilter{ShopID: id, IncludeInactive: true}
func (r *Repository) GetByShopWithFilter(ctx context.Context, filter domain.ShopBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"shop_id": filter.ShopID})

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": domain.DateOnly(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": domain.DateOnly(*filter.EndDate)})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.ActiveStatusStrings()})
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		// Для конкретной даты сортируем по времени начала
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date ASC", "start_time ASC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByShopWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByShopWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var diagnosisID uuid.NullUUID
		var phone, notes sql.NullString
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.ShopID,
			&diagnosisID,
			&booking.BookingDate,
			&booking.StartTime,
			&booking.Status,
			&booking.CustomerName,
			&booking.CustomerEmail,
			&phone,
			&notes,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		if diagnosisID.Valid {
			booking.DiagnosisID = &diagnosisID.UUID
		}
		if phone.Valid {
			booking.CustomerPhone = &phone.String
		}
		if notes.Valid {
			booking.Notes = &notes.String
		}
		booking.BookingDate = domain.DateOnly(booking.BookingDate)
		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
