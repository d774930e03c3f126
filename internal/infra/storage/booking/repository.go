package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	"github.com/m04kA/RiverRun-BookingService/pkg/dbmetrics"
	"github.com/m04kA/RiverRun-BookingService/pkg/psqlbuilder"
)

const (
	codeUniqueViolation = "23505"
	transactionIndex    = "uq_bookings_transaction"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"customer_name",
	"customer_email",
	"subtotal",
	"discount_amount",
	"coupon_code",
	"tax_amount",
	"total_amount",
	"status",
	"payment_method",
	"transaction_id",
	"created_by_staff_id",
	"created_by_staff_email",
	"scanned",
	"scanned_at",
	"qr_code_data",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями и их позициями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование вместе с позициями.
// Заказ и позиции пишутся в транзакции вызывающего.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"user_id",
			"customer_name",
			"customer_email",
			"subtotal",
			"discount_amount",
			"coupon_code",
			"tax_amount",
			"total_amount",
			"status",
			"payment_method",
			"transaction_id",
			"created_by_staff_id",
			"created_by_staff_email",
			"scanned",
			"qr_code_data",
		).
		Values(
			booking.ID,
			booking.UserID,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.Subtotal,
			booking.DiscountAmount,
			booking.CouponCode,
			booking.TaxAmount,
			booking.TotalAmount,
			booking.Status,
			booking.PaymentMethod,
			booking.TransactionID,
			booking.CreatedByStaffID,
			booking.CreatedByStaffEmail,
			booking.Scanned,
			booking.QRCodeData,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation && pqErr.Constraint == transactionIndex {
			return nil, fmt.Errorf("%w: Create - transaction_id=%s", ErrDuplicateTransaction, *booking.TransactionID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	if err := r.insertItems(ctx, executor, booking.ID, booking.Items); err != nil {
		return nil, err
	}

	return booking, nil
}

// insertItems пакетно вставляет позиции заказа одним запросом
func (r *Repository) insertItems(ctx context.Context, executor DBExecutor, bookingID string, items []domain.BookingItem) error {
	if len(items) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("booking_items").
		Columns("booking_id", "position", "id", "type", "reference_id", "title", "subtitle", "quantity", "unit_price")
	for i, item := range items {
		insert = insert.Values(bookingID, i, item.ID, item.Type, item.ReferenceID, item.Title, item.Subtitle, item.Quantity, item.Price)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertItems - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertItems - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID вместе с позициями
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	items, err := r.loadItems(ctx, executor, []string{booking.ID})
	if err != nil {
		return nil, err
	}
	booking.Items = items[booking.ID]

	return booking, nil
}

// List получает бронирования по фильтру, новые первыми
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("created_at DESC", "id ASC")

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"created_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"created_at": *filter.To})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(filter.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	ids := make([]string, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
		ids = append(ids, booking.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return bookings, nil
	}

	items, err := r.loadItems(ctx, executor, ids)
	if err != nil {
		return nil, err
	}
	for _, booking := range bookings {
		booking.Items = items[booking.ID]
	}

	return bookings, nil
}

// loadItems загружает позиции для набора бронирований в порядке добавления
func (r *Repository) loadItems(ctx context.Context, executor DBExecutor, bookingIDs []string) (map[string][]domain.BookingItem, error) {
	query, args, err := psqlbuilder.Select(
		"booking_id",
		"id",
		"type",
		"reference_id",
		"title",
		"subtitle",
		"quantity",
		"unit_price",
	).
		From("booking_items").
		Where(squirrel.Eq{"booking_id": bookingIDs}).
		OrderBy("booking_id", "position").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: loadItems - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadItems - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[string][]domain.BookingItem, len(bookingIDs))
	for rows.Next() {
		var bookingID string
		var item domain.BookingItem
		if err := rows.Scan(
			&bookingID,
			&item.ID,
			&item.Type,
			&item.ReferenceID,
			&item.Title,
			&item.Subtitle,
			&item.Quantity,
			&item.Price,
		); err != nil {
			return nil, fmt.Errorf("%w: loadItems - scan row: %w", ErrScanRow, err)
		}
		result[bookingID] = append(result[bookingID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadItems - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// GetBookedQuantities суммирует количество мест по слотам из активных (не отменённых) бронирований.
// Слоты без бронирований в результат не попадают.
func (r *Repository) GetBookedQuantities(ctx context.Context, slotIDs []string) (map[string]int, error) {
	result := make(map[string]int, len(slotIDs))
	if len(slotIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := bookedQuantitiesQuery(slotIDs).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedQuantities - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedQuantities - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var slotID string
		var quantity int
		if err := rows.Scan(&slotID, &quantity); err != nil {
			return nil, fmt.Errorf("%w: GetBookedQuantities - scan row: %w", ErrScanRow, err)
		}
		result[slotID] = quantity
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookedQuantities - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// bookedQuantitiesQuery отменённые заказы места не занимают
func bookedQuantitiesQuery(slotIDs []string) squirrel.SelectBuilder {
	inactive := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		inactive[i] = string(s)
	}

	return psqlbuilder.Select("bi.reference_id", "COALESCE(SUM(bi.quantity), 0)").
		From("booking_items bi").
		Join("bookings b ON b.id = bi.booking_id").
		Where(squirrel.Eq{"bi.type": string(domain.ItemActivity)}).
		Where(squirrel.Eq{"bi.reference_id": slotIDs}).
		Where(squirrel.NotEq{"b.status": inactive}).
		GroupBy("bi.reference_id")
}

// ExistsByTransactionID проверяет, оплачен ли уже какой-либо заказ этой транзакцией
func (r *Repository) ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"transaction_id": transactionID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByTransactionID - build select query: %w", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsByTransactionID - execute query: %w", ErrExecQuery, err)
	}

	return exists, nil
}

// LockSlots берёт транзакционные advisory-блокировки на слоты в отсортированном порядке.
// Работает и для сгенерированных слотов, у которых нет строки в БД.
func (r *Repository) LockSlots(ctx context.Context, slotIDs []string) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNoTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	sorted := append([]string(nil), slotIDs...)
	sort.Strings(sorted)

	for _, id := range sorted {
		if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", id); err != nil {
			return fmt.Errorf("%w: LockSlots - lock slot %s: %w", ErrExecQuery, id, err)
		}
	}

	return nil
}

// UpdateStatus переводит бронирование в новый статус, если текущий статус входит в from
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, from []domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// MarkScanned отмечает проход по билету. Обновляет только оплаченное и ещё не отсканированное бронирование.
func (r *Repository) MarkScanned(ctx context.Context, id string, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("scanned", true).
		Set("scanned_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusPaid}).
		Where(squirrel.Eq{"scanned": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkScanned - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkScanned - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkScanned - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var scannedAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.Subtotal,
		&booking.DiscountAmount,
		&booking.CouponCode,
		&booking.TaxAmount,
		&booking.TotalAmount,
		&booking.Status,
		&booking.PaymentMethod,
		&booking.TransactionID,
		&booking.CreatedByStaffID,
		&booking.CreatedByStaffEmail,
		&booking.Scanned,
		&scannedAt,
		&booking.QRCodeData,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if scannedAt.Valid {
		t := scannedAt.Time
		booking.ScannedAt = &t
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}
