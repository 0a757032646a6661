package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound signals that no order with the given id exists.
	ErrNotFound = errors.New("order not found")
	// ErrInvalidOrder signals a create request that fails the aggregate's
	// preconditions. No store access has happened when it is returned.
	ErrInvalidOrder = errors.New("invalid order")
)

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type Repository interface {
	List(ctx context.Context) ([]Order, error)
	Create(ctx context.Context, code string, customerID int64, date *time.Time, items []NewItem) (*Order, error)
	Delete(ctx context.Context, orderID int64) (*Order, error)
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const listQuery = `
	SELECT
		o.id, o.code, o.customer_id, c.name AS customer_name, o.date, o.total,
		oi.id AS item_id, oi.product_id, p.name AS product_name, oi.quantity, oi.price
	FROM orders o
	JOIN customers c ON o.customer_id = c.id
	LEFT JOIN order_items oi ON oi.order_id = o.id
	LEFT JOIN products p ON oi.product_id = p.id
	ORDER BY o.id DESC, oi.id ASC`

// List returns every order as a nested object, newest first, folding the flat
// join result by order id. Orders without items keep an empty items list; the
// left join yields NULL item columns for them.
func (r *PostgresRepository) List(ctx context.Context) ([]Order, error) {
	rows, err := r.pool.Query(ctx, listQuery)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders := make([]Order, 0)
	index := make(map[int64]int)

	for rows.Next() {
		var (
			o        Order
			date     sql.NullTime
			itemID   sql.NullInt64
			prodID   sql.NullInt64
			prodName sql.NullString
			qty      sql.NullFloat64
			price    sql.NullFloat64
		)
		if err := rows.Scan(
			&o.ID, &o.Code, &o.CustomerID, &o.CustomerName, &date, &o.Total,
			&itemID, &prodID, &prodName, &qty, &price,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}

		i, seen := index[o.ID]
		if !seen {
			if date.Valid {
				t := date.Time
				o.Date = &t
			}
			o.Items = make([]Item, 0)
			orders = append(orders, o)
			i = len(orders) - 1
			index[o.ID] = i
		}
		if itemID.Valid {
			orders[i].Items = append(orders[i].Items, Item{
				ID:          itemID.Int64,
				ProductID:   prodID.Int64,
				ProductName: prodName.String,
				Quantity:    qty.Float64,
				Price:       price.Float64,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return orders, nil
}

// Create persists the order and all of its items in one transaction. The total
// is computed here from the supplied snapshot prices. Any failure, including a
// dangling product or customer reference, rolls the whole aggregate back.
func (r *PostgresRepository) Create(ctx context.Context, code string, customerID int64, date *time.Time, items []NewItem) (*Order, error) {
	if code == "" || customerID == 0 || len(items) == 0 {
		return nil, ErrInvalidOrder
	}

	var total float64
	for _, it := range items {
		total += it.Quantity * it.Price
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o := Order{
		Code:       code,
		CustomerID: customerID,
		Total:      total,
		Items:      make([]Item, 0, len(items)),
	}

	var storedDate sql.NullTime
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (code, customer_id, date, total)
         VALUES ($1, $2, $3, $4)
         RETURNING id, date`,
		code, customerID, date, total,
	).Scan(&o.ID, &storedDate)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	if storedDate.Valid {
		t := storedDate.Time
		o.Date = &t
	}

	for _, it := range items {
		item := Item{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price}
		err = tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, price)
             VALUES ($1, $2, $3, $4)
             RETURNING id`,
			o.ID, it.ProductID, it.Quantity, it.Price,
		).Scan(&item.ID)
		if err != nil {
			return nil, fmt.Errorf("insert order_item: %w", err)
		}
		o.Items = append(o.Items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &o, nil
}

// Delete removes the order and its items in one transaction, items first to
// respect the foreign key. A missing order rolls the transaction back and
// returns ErrNotFound, so the item delete never commits on its own.
func (r *PostgresRepository) Delete(ctx context.Context, orderID int64) (*Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		return nil, fmt.Errorf("delete order_items: %w", err)
	}

	var o Order
	var date sql.NullTime
	err = tx.QueryRow(ctx,
		`DELETE FROM orders WHERE id = $1
         RETURNING id, code, customer_id, date, total`,
		orderID,
	).Scan(&o.ID, &o.Code, &o.CustomerID, &date, &o.Total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete order: %w", err)
	}
	if date.Valid {
		t := date.Time
		o.Date = &t
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &o, nil
}
