package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/peppertree17/booking-service/internal/domain"
	"github.com/peppertree17/booking-service/pkg/psqlbuilder"
	"github.com/peppertree17/booking-service/pkg/txmanager"
	"github.com/peppertree17/booking-service/pkg/types"
)

// Коды ошибок Postgres, которые репозиторий переводит в доменные ошибки
const (
	pgExclusionViolation = "23P01" // exclusion constraint bookings_no_date_overlap
	pgUniqueViolation    = "23505" // unique constraint bookings_external_uid_key
)

var bookingColumns = []string{
	"id",
	"checkin_date",
	"checkout_date",
	"guests",
	"guest_name",
	"email",
	"phone",
	"special_requests",
	"status",
	"payment_status",
	"computed_total",
	"payment_amount",
	"payment_date",
	"payment_reference",
	"payment_method",
	"admin_notes",
	"status_history",
	"source",
	"external_uid",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db Executor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db Executor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
//
// Конфликт дат ловится дважды: usecase проверяет пересечения под
// serializable-транзакцией, а exclusion constraint в БД остается
// последней линией обороны. Нарушение constraint транслируется
// в ErrDateOverlap.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	historyJSON, err := json.Marshal(booking.StatusHistory)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal history: %v", ErrEncodeHistory, err)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"checkin_date",
			"checkout_date",
			"guests",
			"guest_name",
			"email",
			"phone",
			"special_requests",
			"status",
			"payment_status",
			"computed_total",
			"admin_notes",
			"status_history",
			"source",
			"external_uid",
		).
		Values(
			booking.CheckIn,
			booking.CheckOut,
			booking.Guests,
			booking.GuestName,
			booking.Email,
			booking.Phone,
			booking.SpecialRequests,
			booking.Status,
			booking.PaymentStatus,
			booking.ComputedTotal,
			booking.AdminNotes,
			historyJSON,
			booking.Source,
			booking.ExternalUID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case pgExclusionViolation:
				return nil, fmt.Errorf("%w: Create: %v", ErrDateOverlap, err)
			case pgUniqueViolation:
				return nil, fmt.Errorf("%w: Create: %v", ErrDuplicateExternalUID, err)
			}
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	// Под транзакцией блокируем строку: смена статуса читает и пишет её же
	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByExternalUID получает бронирование по внешнему UID календарной платформы.
// Используется для дедупликации при импорте iCal-фидов.
func (r *Repository) GetByExternalUID(ctx context.Context, uid string) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"external_uid": uid}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByExternalUID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByExternalUID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetWithFilter получает страницу бронирований с фильтрацией для админки.
// Возвращает записи страницы и общее число записей под фильтром.
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	conditions := squirrel.And{}
	if filter.Status != nil {
		conditions = append(conditions, squirrel.Eq{"status": *filter.Status})
	}
	if filter.PaymentStatus != nil {
		conditions = append(conditions, squirrel.Eq{"payment_status": *filter.PaymentStatus})
	}
	if filter.StartDate != nil {
		conditions = append(conditions, squirrel.GtOrEq{"checkin_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		conditions = append(conditions, squirrel.LtOrEq{"checkout_date": *filter.EndDate})
	}

	countBuilder := psqlbuilder.Select("COUNT(*)").From("bookings")
	if len(conditions) > 0 {
		countBuilder = countBuilder.Where(conditions)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetWithFilter - build count query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: GetWithFilter - scan count: %v", ErrScanRow, err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = domain.DefaultPageSize
	}
	if perPage > domain.MaxPageSize {
		perPage = domain.MaxPageSize
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("created_at DESC, id DESC").
		Limit(uint64(perPage)).
		Offset(uint64((page - 1) * perPage))
	if len(conditions) > 0 {
		selectBuilder = selectBuilder.Where(conditions)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// FindBlockingInRange находит блокирующие бронирования, пересекающиеся
// с полуинтервалом [checkIn, checkOut). Выезд и заезд в один день не
// считаются пересечением.
//
// Под транзакцией добавляет FOR UPDATE: так конкурирующие создания
// одного диапазона сериализуются на уровне строк.
func (r *Repository) FindBlockingInRange(ctx context.Context, checkIn, checkOut types.Date, excludeID *int64) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	blocking := make([]string, len(domain.BlockingStatuses))
	for i, s := range domain.BlockingStatuses {
		blocking[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Lt{"checkin_date": checkOut}).
		Where(squirrel.Gt{"checkout_date": checkIn}).
		Where(squirrel.Eq{"status": blocking}).
		OrderBy("checkin_date ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindBlockingInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindBlockingInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListExportable получает бронирования для iCal-фида: только подтвержденные
// и завершенные проживания, pending и отмененные наружу не отдаются.
func (r *Repository) ListExportable(ctx context.Context) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	exportable := make([]string, len(domain.ExportableStatuses))
	for i, s := range domain.ExportableStatuses {
		exportable[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": exportable}).
		OrderBy("checkin_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListExportable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExportable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования, историю изменений
// и, опционально, заметки администратора
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, history domain.StatusHistory, adminNotes *string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	historyJSON, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - marshal history: %v", ErrEncodeHistory, err)
	}

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("status_history", historyJSON).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if adminNotes != nil {
		updateBuilder = updateBuilder.Set("admin_notes", *adminNotes)
	}

	query, args, err := updateBuilder.ToSql()
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

// UpdatePayment обновляет статус оплаты, платежные поля и историю изменений
func (r *Repository) UpdatePayment(ctx context.Context, id int64, payment domain.PaymentUpdate, history domain.StatusHistory) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	historyJSON, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - marshal history: %v", ErrEncodeHistory, err)
	}

	updateBuilder := psqlbuilder.Update("bookings").
		Set("payment_status", payment.Status).
		Set("status_history", historyJSON).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if payment.Amount != nil {
		updateBuilder = updateBuilder.Set("payment_amount", *payment.Amount)
	}
	if payment.Date != nil {
		updateBuilder = updateBuilder.Set("payment_date", *payment.Date)
	}
	if payment.Reference != nil {
		updateBuilder = updateBuilder.Set("payment_reference", *payment.Reference)
	}
	if payment.Method != nil {
		updateBuilder = updateBuilder.Set("payment_method", *payment.Method)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Delete физически удаляет бронирование.
// Вызывается только из админского сценария, факт удаления фиксируется
// в журнале на уровне сервиса.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Stats собирает агрегаты для админской панели
func (r *Repository) Stats(ctx context.Context, today types.Date) (*domain.DashboardStats, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE status = 'pending')",
		"COUNT(*) FILTER (WHERE status = 'approved')",
		"COUNT(*) FILTER (WHERE status = 'completed')",
		"COUNT(*) FILTER (WHERE status = 'cancelled')",
		"COUNT(*) FILTER (WHERE status = 'rejected')",
		"COUNT(*) FILTER (WHERE status = 'approved' AND checkin_date >= ?)",
		"COALESCE(SUM(payment_amount) FILTER (WHERE payment_status IN ('partial', 'paid')), 0)",
		"COALESCE(SUM(computed_total) FILTER (WHERE status IN ('pending', 'approved') AND payment_status = 'pending'), 0)",
	).
		From("bookings").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build select query: %v", ErrBuildQuery, err)
	}

	args = append(args, today)

	var stats domain.DashboardStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.Total,
		&stats.Pending,
		&stats.Approved,
		&stats.Completed,
		&stats.Cancelled,
		&stats.Rejected,
		&stats.UpcomingStays,
		&stats.Revenue,
		&stats.RevenuePending,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - scan stats: %v", ErrScanRow, err)
	}

	return &stats, nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в доменную модель
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var paymentAmount decimal.NullDecimal
	var paymentDate, createdAt, updatedAt sql.NullTime
	var historyJSON []byte

	err := row.Scan(
		&booking.ID,
		&booking.CheckIn,
		&booking.CheckOut,
		&booking.Guests,
		&booking.GuestName,
		&booking.Email,
		&booking.Phone,
		&booking.SpecialRequests,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.ComputedTotal,
		&paymentAmount,
		&paymentDate,
		&booking.PaymentReference,
		&booking.PaymentMethod,
		&booking.AdminNotes,
		&historyJSON,
		&booking.Source,
		&booking.ExternalUID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if paymentAmount.Valid {
		booking.PaymentAmount = &paymentAmount.Decimal
	}
	if paymentDate.Valid {
		booking.PaymentDate = &paymentDate.Time
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	if len(historyJSON) > 0 {
		if err := json.Unmarshal(historyJSON, &booking.StatusHistory); err != nil {
			return nil, fmt.Errorf("unmarshal status history: %v", err)
		}
	}

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
