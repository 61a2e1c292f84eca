package shop

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ahmadnk31/fixwise/internal/domain"
	"github.com/ahmadnk31/fixwise/pkg/dbmetrics"
	"github.com/ahmadnk31/fixwise/pkg/psqlbuilder"
)

var shopColumns = []string{
	"id",
	"owner_id",
	"name",
	"email",
	"phone",
	"booking_preferences",
	"created_at",
	"updated_at",
}

// Repository репозиторий мастерских и их настроек бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастерских
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает мастерскую вместе с сохраненными настройками бронирования.
// В транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(shopColumns...).
		From("shops").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку: настройки обновляются через read-modify-write
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	shop, err := scanShop(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan shop: %v", ErrScanRow, err)
	}

	return shop, nil
}

// UpdatePreferences перезаписывает сохраненные настройки бронирования мастерской
func (r *Repository) UpdatePreferences(ctx context.Context, id uuid.UUID, prefs *domain.PartialPreferences) (*domain.Shop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	encoded, err := encodePreferences(prefs)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdatePreferences - %v", ErrEncodePreferences, err)
	}

	query, args, err := psqlbuilder.Update("shops").
		Set("booking_preferences", encoded).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(shopColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdatePreferences - build update query: %v", ErrBuildQuery, err)
	}

	shop, err := scanShop(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdatePreferences - execute update: %v", ErrExecQuery, err)
	}

	return shop, nil
}

func scanShop(row *sql.Row) (*domain.Shop, error) {
	var shop domain.Shop
	var phone sql.NullString
	var rawPrefs []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&shop.ID,
		&shop.OwnerID,
		&shop.Name,
		&shop.Email,
		&phone,
		&rawPrefs,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if phone.Valid {
		shop.Phone = &phone.String
	}
	shop.Preferences = decodePreferences(rawPrefs)
	shop.CreatedAt = createdAt.Time
	shop.UpdatedAt = updatedAt.Time

	return &shop, nil
}
