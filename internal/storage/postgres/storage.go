package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/pasarmart/pasarmart/internal/domain/errors"
	"github.com/pasarmart/pasarmart/internal/domain/model"
	"github.com/pasarmart/pasarmart/internal/domain/repository"
)

// pgxPool is the pool surface the storage relies on; pgxmock satisfies it.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

type paymentRepository struct {
	storage *Storage
}

type receiptRepository struct {
	storage *Storage
}

type inventoryRepository struct {
	storage *Storage
}

type sellerRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Payments() repository.PaymentRepository {
	return &paymentRepository{storage: s}
}

func (s *Storage) Receipts() repository.ReceiptRepository {
	return &receiptRepository{storage: s}
}

func (s *Storage) Inventory() repository.InventoryRepository {
	return &inventoryRepository{storage: s}
}

func (s *Storage) Sellers() repository.SellerRepository {
	return &sellerRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sellers (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            email TEXT NOT NULL,
            payment_target TEXT NOT NULL DEFAULT '',
            reminder_frequency TEXT NOT NULL DEFAULT '30m',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            seller_id BIGINT NOT NULL REFERENCES sellers(id),
            name TEXT NOT NULL,
            price DOUBLE PRECISION NOT NULL,
            shipping_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
            available INTEGER NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            product_id BIGINT NOT NULL REFERENCES products(id),
            seller_id BIGINT NOT NULL REFERENCES sellers(id),
            buyer_id BIGINT,
            quantity INTEGER NOT NULL,
            total_amount DOUBLE PRECISION NOT NULL,
            status TEXT NOT NULL,
            payment_status TEXT NOT NULL,
            payment_method TEXT NOT NULL,
            receipt_url TEXT,
            buyer_name TEXT NOT NULL,
            buyer_email TEXT NOT NULL,
            buyer_phone TEXT NOT NULL,
            shipping_address TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_status_history (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            status TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            actor TEXT NOT NULL DEFAULT 'system',
            location TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS payments (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            channel TEXT NOT NULL,
            reference TEXT NOT NULL,
            amount DOUBLE PRECISION NOT NULL,
            currency TEXT NOT NULL DEFAULT 'MYR',
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            UNIQUE (channel, reference)
        )`,
		`CREATE TABLE IF NOT EXISTS receipts (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            seller_id BIGINT NOT NULL REFERENCES sellers(id),
            amount DOUBLE PRECISION NOT NULL,
            image_url TEXT NOT NULL,
            status TEXT NOT NULL,
            uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            resolved_at TIMESTAMPTZ
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_unpaid ON orders(status, payment_status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_history_order ON order_status_history(order_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_order ON payments(order_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_receipts_seller ON receipts(seller_id, status)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const orderColumns = `id, product_id, seller_id, buyer_id, quantity, total_amount,
                      status, payment_status, payment_method, receipt_url,
                      buyer_name, buyer_email, buyer_phone, shipping_address,
                      created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.ProductID, &o.SellerID, &o.BuyerID, &o.Quantity, &o.TotalAmount,
		&o.Status, &o.PaymentStatus, &o.PaymentMethod, &o.ReceiptURL,
		&o.BuyerName, &o.BuyerEmail, &o.BuyerPhone, &o.ShippingAddress,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func appendHistoryTx(ctx context.Context, tx pgx.Tx, orderID int64, status model.OrderStatus, description, actor, location string) error {
	const query = `INSERT INTO order_status_history (order_id, status, description, actor, location)
                   VALUES ($1, $2, $3, $4, $5)`
	_, err := tx.Exec(ctx, query, orderID, status, description, actor, location)
	return err
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const reserve = `UPDATE products SET available = available - $2 WHERE id = $1 AND available >= $2`
		tag, err := tx.Exec(ctx, reserve, order.ProductID, order.Quantity)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrInsufficientStock
		}

		const insert = `INSERT INTO orders (product_id, seller_id, buyer_id, quantity, total_amount,
                            status, payment_status, payment_method,
                            buyer_name, buyer_email, buyer_phone, shipping_address)
                        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
                        RETURNING id, created_at, updated_at`
		err = tx.QueryRow(ctx, insert,
			order.ProductID, order.SellerID, order.BuyerID, order.Quantity, order.TotalAmount,
			model.OrderStatusPending, model.PaymentStatusPending, order.PaymentMethod,
			order.BuyerName, order.BuyerEmail, order.BuyerPhone, order.ShippingAddress,
		).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return err
		}

		return appendHistoryTx(ctx, tx, order.ID, model.OrderStatusPending, "order created", model.ActorSystem, "")
	})
	if err != nil {
		return nil, err
	}

	order.Status = model.OrderStatusPending
	order.PaymentStatus = model.PaymentStatusPending
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return scanOrder(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *orderRepository) History(ctx context.Context, orderID int64) ([]model.StatusChange, error) {
	const query = `SELECT id, order_id, status, description, actor, location, created_at
                   FROM order_status_history WHERE order_id=$1 ORDER BY created_at, id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.StatusChange
	for rows.Next() {
		var h model.StatusChange
		if err := rows.Scan(&h.ID, &h.OrderID, &h.Status, &h.Description, &h.Actor, &h.Location, &h.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, orderID int64, actor, description string) (applied bool, err error) {
	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const advance = `UPDATE orders SET status=$2, payment_status=$3, updated_at=NOW()
                         WHERE id=$1 AND status=$4 AND payment_status <> $3`
		tag, err := tx.Exec(ctx, advance, orderID,
			model.OrderStatusPaid, model.PaymentStatusPaid, model.OrderStatusPending)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 1 {
			applied = true
			return appendHistoryTx(ctx, tx, orderID, model.OrderStatusPaid, description, actor, "")
		}

		// The order may already be past paid in the fulfilment pipeline
		// with a stale payment status (late webhook); correct the payment
		// status alone. Cancelled and already-paid orders stay untouched.
		const correct = `UPDATE orders SET payment_status=$2, updated_at=NOW()
                         WHERE id=$1 AND payment_status=$3 AND status NOT IN ($4, $5)`
		tag, err = tx.Exec(ctx, correct, orderID,
			model.PaymentStatusPaid, model.PaymentStatusPending,
			model.OrderStatusPending, model.OrderStatusCancelled)
		if err != nil {
			return err
		}
		applied = tag.RowsAffected() == 1
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

func (r *orderRepository) MarkPaymentFailed(ctx context.Context, orderID int64, actor, description string) (applied bool, err error) {
	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const update = `UPDATE orders SET payment_status=$2, updated_at=NOW()
                        WHERE id=$1 AND status=$3 AND payment_status <> $4`
		tag, err := tx.Exec(ctx, update, orderID,
			model.PaymentStatusFailed, model.OrderStatusPending, model.PaymentStatusPaid)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		applied = true
		return appendHistoryTx(ctx, tx, orderID, model.OrderStatusPending, description, actor, "")
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

func (r *orderRepository) Cancel(ctx context.Context, orderID int64, reason, actor string) (applied bool, err error) {
	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const cancel = `UPDATE orders SET status=$2, payment_status=$3, updated_at=NOW()
                        WHERE id=$1 AND status=$4
                        RETURNING product_id, quantity`
		var productID int64
		var quantity int
		err := tx.QueryRow(ctx, cancel, orderID,
			model.OrderStatusCancelled, model.PaymentStatusFailed, model.OrderStatusPending,
		).Scan(&productID, &quantity)
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return err
			}
			// Lost the conditional update: either a concurrent caller won
			// or the order is beyond pending.
			var status model.OrderStatus
			if err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1`, orderID).Scan(&status); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return domainErrors.ErrNotFound
				}
				return err
			}
			if status == model.OrderStatusCancelled {
				return nil
			}
			return domainErrors.ErrOrderNotCancellable
		}

		const release = `UPDATE products SET available = available + $2 WHERE id = $1`
		if _, err := tx.Exec(ctx, release, productID, quantity); err != nil {
			return err
		}

		applied = true
		return appendHistoryTx(ctx, tx, orderID, model.OrderStatusCancelled, reason, actor, "")
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

func (r *orderRepository) AdvanceStatus(ctx context.Context, orderID int64, next model.OrderStatus, actor, description, location string) (*model.Order, error) {
	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
		current, err := scanOrder(tx.QueryRow(ctx, query, orderID))
		if err != nil {
			return err
		}
		if !current.Status.CanTransitionTo(next) {
			return domainErrors.ErrInvalidTransition
		}

		const update = `UPDATE orders SET status=$2, updated_at=NOW() WHERE id=$1 RETURNING updated_at`
		if err := tx.QueryRow(ctx, update, orderID, next).Scan(&current.UpdatedAt); err != nil {
			return err
		}
		current.Status = next

		if err := appendHistoryTx(ctx, tx, orderID, next, description, actor, location); err != nil {
			return err
		}
		order = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListExpired(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
              WHERE status=$1 AND payment_status=$2 AND created_at < $3
              ORDER BY created_at
              LIMIT $4`
	rows, err := r.storage.pool.Query(ctx, query,
		model.OrderStatusPending, model.PaymentStatusPending, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.ProductID, &o.SellerID, &o.BuyerID, &o.Quantity, &o.TotalAmount,
			&o.Status, &o.PaymentStatus, &o.PaymentMethod, &o.ReceiptURL,
			&o.BuyerName, &o.BuyerEmail, &o.BuyerPhone, &o.ShippingAddress,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) SetReceiptURL(ctx context.Context, orderID int64, url string) error {
	const query = `UPDATE orders SET receipt_url=$2, updated_at=NOW() WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, orderID, url)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- PaymentRepository implementation ---

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	const query = `INSERT INTO payments (order_id, channel, reference, amount, currency, status)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query,
		payment.OrderID, payment.Channel, payment.Reference, payment.Amount, payment.Currency,
		model.PaymentStatePending,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return nil, err
	}
	payment.Status = model.PaymentStatePending
	return payment, nil
}

const paymentColumns = `id, order_id, channel, reference, amount, currency, status, created_at, updated_at`

func scanPayment(row pgx.Row) (*model.Payment, error) {
	var p model.Payment
	err := row.Scan(&p.ID, &p.OrderID, &p.Channel, &p.Reference, &p.Amount, &p.Currency, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) GetByReference(ctx context.Context, channel model.PaymentMethod, reference string) (*model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE channel=$1 AND reference=$2`
	return scanPayment(r.storage.pool.QueryRow(ctx, query, channel, reference))
}

func (r *paymentRepository) LatestByOrder(ctx context.Context, orderID int64, channel model.PaymentMethod) (*model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
              WHERE order_id=$1 AND channel=$2 ORDER BY created_at DESC, id DESC LIMIT 1`
	return scanPayment(r.storage.pool.QueryRow(ctx, query, orderID, channel))
}

func (r *paymentRepository) Complete(ctx context.Context, id int64) (bool, error) {
	const query = `UPDATE payments SET status=$2, updated_at=NOW() WHERE id=$1 AND status=$3`
	tag, err := r.storage.pool.Exec(ctx, query, id, model.PaymentStateCompleted, model.PaymentStatePending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *paymentRepository) Fail(ctx context.Context, id int64) (bool, error) {
	const query = `UPDATE payments SET status=$2, updated_at=NOW() WHERE id=$1 AND status=$3`
	tag, err := r.storage.pool.Exec(ctx, query, id, model.PaymentStateFailed, model.PaymentStatePending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// --- ReceiptRepository implementation ---

const receiptColumns = `id, order_id, seller_id, amount, image_url, status, uploaded_at, resolved_at`

func scanReceipt(row pgx.Row) (*model.Receipt, error) {
	var rec model.Receipt
	err := row.Scan(&rec.ID, &rec.OrderID, &rec.SellerID, &rec.Amount, &rec.ImageURL, &rec.Status, &rec.UploadedAt, &rec.ResolvedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *receiptRepository) Create(ctx context.Context, receipt *model.Receipt) (*model.Receipt, error) {
	const query = `INSERT INTO receipts (order_id, seller_id, amount, image_url, status)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id, uploaded_at`
	err := r.storage.pool.QueryRow(ctx, query,
		receipt.OrderID, receipt.SellerID, receipt.Amount, receipt.ImageURL, model.ReceiptStatusPending,
	).Scan(&receipt.ID, &receipt.UploadedAt)
	if err != nil {
		return nil, err
	}
	receipt.Status = model.ReceiptStatusPending
	return receipt, nil
}

func (r *receiptRepository) GetByID(ctx context.Context, id int64) (*model.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE id=$1`
	return scanReceipt(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *receiptRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE order_id=$1 ORDER BY uploaded_at, id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReceipts(rows)
}

func (r *receiptRepository) Resolve(ctx context.Context, id int64, status model.ReceiptStatus) (bool, error) {
	const query = `UPDATE receipts SET status=$2, resolved_at=NOW() WHERE id=$1 AND status=$3`
	tag, err := r.storage.pool.Exec(ctx, query, id, status, model.ReceiptStatusPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *receiptRepository) ListPendingBySeller(ctx context.Context, sellerID int64, limit int) ([]model.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts
              WHERE seller_id=$1 AND status=$2 ORDER BY uploaded_at, id`
	args := []any{sellerID, model.ReceiptStatusPending}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReceipts(rows)
}

func collectReceipts(rows pgx.Rows) ([]model.Receipt, error) {
	var result []model.Receipt
	for rows.Next() {
		var rec model.Receipt
		if err := rows.Scan(&rec.ID, &rec.OrderID, &rec.SellerID, &rec.Amount, &rec.ImageURL, &rec.Status, &rec.UploadedAt, &rec.ResolvedAt); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- InventoryRepository implementation ---

func (r *inventoryRepository) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT id, seller_id, name, price, shipping_fee, available, created_at
                   FROM products WHERE id=$1`
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.SellerID, &p.Name, &p.Price, &p.ShippingFee, &p.Available, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// --- SellerRepository implementation ---

const sellerColumns = `id, login, password_hash, email, payment_target, reminder_frequency, created_at`

func scanSeller(row pgx.Row) (*model.Seller, error) {
	var s model.Seller
	err := row.Scan(&s.ID, &s.Login, &s.PasswordHash, &s.Email, &s.PaymentTarget, &s.ReminderFrequency, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *sellerRepository) GetByID(ctx context.Context, id int64) (*model.Seller, error) {
	query := `SELECT ` + sellerColumns + ` FROM sellers WHERE id=$1`
	return scanSeller(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *sellerRepository) GetByLogin(ctx context.Context, login string) (*model.Seller, error) {
	query := `SELECT ` + sellerColumns + ` FROM sellers WHERE login=$1`
	return scanSeller(r.storage.pool.QueryRow(ctx, query, login))
}

func (r *sellerRepository) UpdateReminderFrequency(ctx context.Context, sellerID int64, freq model.ReminderFrequency) error {
	const query = `UPDATE sellers SET reminder_frequency=$2 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, sellerID, freq)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *sellerRepository) ListWithPendingReceipts(ctx context.Context) ([]model.Seller, error) {
	const query = `SELECT DISTINCT s.id, s.login, s.password_hash, s.email, s.payment_target, s.reminder_frequency, s.created_at
                   FROM sellers s
                   JOIN receipts r ON r.seller_id = s.id AND r.status = $1
                   WHERE s.reminder_frequency <> $2
                   ORDER BY s.id`
	rows, err := r.storage.pool.Query(ctx, query, model.ReceiptStatusPending, model.ReminderOff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seller
	for rows.Next() {
		var s model.Seller
		if err := rows.Scan(&s.ID, &s.Login, &s.PasswordHash, &s.Email, &s.PaymentTarget, &s.ReminderFrequency, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
