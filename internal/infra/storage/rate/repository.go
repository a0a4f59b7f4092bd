package rate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/peppertree17/booking-service/internal/domain"
	"github.com/peppertree17/booking-service/pkg/psqlbuilder"
	"github.com/peppertree17/booking-service/pkg/txmanager"
	"github.com/peppertree17/booking-service/pkg/types"
)

var rateColumns = []string{
	"id",
	"kind",
	"guests",
	"amount_per_night",
	"start_date",
	"end_date",
	"description",
	"active",
	"created_by",
	"updated_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с тарифами
type Repository struct {
	db Executor
}

// NewRepository создает новый экземпляр репозитория тарифов
func NewRepository(db Executor) *Repository {
	return &Repository{db: db}
}

// Create создает новый тариф
func (r *Repository) Create(ctx context.Context, rate *domain.Rate) (*domain.Rate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("rates").
		Columns(
			"kind",
			"guests",
			"amount_per_night",
			"start_date",
			"end_date",
			"description",
			"active",
			"created_by",
			"updated_by",
		).
		Values(
			rate.Kind,
			rate.Guests,
			rate.AmountPerNight,
			rate.StartDate,
			rate.EndDate,
			rate.Description,
			rate.Active,
			rate.CreatedBy,
			rate.UpdatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rate.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rate.CreatedAt = createdAt.Time
	rate.UpdatedAt = updatedAt.Time

	return rate, nil
}

// GetByID получает тариф по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Rate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(rateColumns...).
		From("rates").
		Where(squirrel.Eq{"id": id})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	rate, err := scanRate(row)
	if err == sql.ErrNoRows {
		return nil, ErrRateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan rate: %v", ErrScanRow, err)
	}

	return rate, nil
}

// GetActiveBase получает активный базовый тариф для указанного числа гостей.
// Инвариант хранилища: на каждое число гостей не более одного активного
// базового тарифа, его поддерживает serializable-транзакция в сервисе.
func (r *Repository) GetActiveBase(ctx context.Context, guests int) (*domain.Rate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(rateColumns...).
		From("rates").
		Where(squirrel.Eq{
			"kind":   domain.RateBase,
			"guests": guests,
			"active": true,
		})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBase - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	rate, err := scanRate(row)
	if err == sql.ErrNoRows {
		return nil, ErrRateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBase - scan rate: %v", ErrScanRow, err)
	}

	return rate, nil
}

// FindSpecialsInRange находит активные спецтарифы для указанного числа
// гостей, чьи окна пересекают инклюзивный диапазон [from, to]
func (r *Repository) FindSpecialsInRange(ctx context.Context, guests int, from, to types.Date) ([]*domain.Rate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(rateColumns...).
		From("rates").
		Where(squirrel.Eq{
			"kind":   domain.RateSpecial,
			"guests": guests,
			"active": true,
		}).
		Where(squirrel.LtOrEq{"start_date": to}).
		Where(squirrel.GtOrEq{"end_date": from}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindSpecialsInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindSpecialsInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRates(rows)
}

// FindOverlappingSpecials находит активные спецтарифы того же числа гостей,
// пересекающиеся с инклюзивным окном [start, end]. Используется при
// создании спецтарифа для проверки конфликтов окон.
//
// Под транзакцией добавляет FOR UPDATE, чтобы конкурирующие создания
// пересекающихся окон не прошли одновременно.
func (r *Repository) FindOverlappingSpecials(ctx context.Context, guests int, start, end types.Date, excludeID *int64) ([]*domain.Rate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(rateColumns...).
		From("rates").
		Where(squirrel.Eq{
			"kind":   domain.RateSpecial,
			"guests": guests,
			"active": true,
		}).
		Where(squirrel.LtOrEq{"start_date": end}).
		Where(squirrel.GtOrEq{"end_date": start})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlappingSpecials - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlappingSpecials - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRates(rows)
}

// CountActiveBase считает активные базовые тарифы для числа гостей,
// исключая опционально один тариф. Нужен для проверки "последнего базового".
func (r *Repository) CountActiveBase(ctx context.Context, guests int, excludeID *int64) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("rates").
		Where(squirrel.Eq{
			"kind":   domain.RateBase,
			"guests": guests,
			"active": true,
		})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveBase - build count query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveBase - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// List получает тарифы с фильтрацией
func (r *Repository) List(ctx context.Context, filter domain.RatesFilter) ([]*domain.Rate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(rateColumns...).
		From("rates").
		OrderBy("kind ASC, guests ASC, start_date ASC NULLS FIRST")

	if filter.Kind != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"kind": *filter.Kind})
	}
	if filter.Guests != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"guests": *filter.Guests})
	}
	if filter.ActiveOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRates(rows)
}

// Deactivate помечает тариф неактивным, сохраняя запись для истории
func (r *Repository) Deactivate(ctx context.Context, id int64, updatedBy *string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("rates").
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if updatedBy != nil {
		updateBuilder = updateBuilder.Set("updated_by", *updatedBy)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRateNotFound
	}

	return nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRate сканирует одну строку в доменную модель
func scanRate(row rowScanner) (*domain.Rate, error) {
	var rate domain.Rate
	var startDate, endDate types.NullDate
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rate.ID,
		&rate.Kind,
		&rate.Guests,
		&rate.AmountPerNight,
		&startDate,
		&endDate,
		&rate.Description,
		&rate.Active,
		&rate.CreatedBy,
		&rate.UpdatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if startDate.Valid {
		rate.StartDate = &startDate.Date
	}
	if endDate.Valid {
		rate.EndDate = &endDate.Date
	}
	rate.CreatedAt = createdAt.Time
	rate.UpdatedAt = updatedAt.Time

	return &rate, nil
}

// scanRates сканирует результаты запроса в слайс тарифов
func scanRates(rows *sql.Rows) ([]*domain.Rate, error) {
	rates := make([]*domain.Rate, 0)

	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRates - scan row: %v", ErrScanRow, err)
		}
		rates = append(rates, rate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRates - rows error: %v", ErrScanRow, err)
	}

	return rates, nil
}
