package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrNotFound = errors.New("customer not found")

// DBPool matches the methods from *pgxpool.Pool that we use.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	List(ctx context.Context) ([]Customer, error)
	Create(ctx context.Context, c Customer) (*Customer, error)
	Update(ctx context.Context, id int64, c Customer) (*Customer, error)
	Delete(ctx context.Context, id int64) (*Customer, error)
	BulkInsert(ctx context.Context, customers []Customer) (int, error)
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) List(ctx context.Context) ([]Customer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, code, name, address, tax_code FROM customers ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}
	defer rows.Close()

	customers := make([]Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return customers, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c Customer) (*Customer, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO customers (code, name, address, tax_code)
         VALUES ($1, $2, $3, $4)
         RETURNING id, code, name, address, tax_code`,
		c.Code, c.Name, nullable(c.Address), nullable(c.TaxCode))
	created, err := scanCustomer(row)
	if err != nil {
		return nil, fmt.Errorf("insert customer: %w", err)
	}
	return &created, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, c Customer) (*Customer, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE customers SET code=$1, name=$2, address=$3, tax_code=$4
         WHERE id=$5
         RETURNING id, code, name, address, tax_code`,
		c.Code, c.Name, nullable(c.Address), nullable(c.TaxCode), id)
	updated, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return &updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (*Customer, error) {
	row := r.pool.QueryRow(ctx,
		`DELETE FROM customers WHERE id=$1
         RETURNING id, code, name, address, tax_code`, id)
	deleted, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete customer: %w", err)
	}
	return &deleted, nil
}

// BulkInsert inserts customers one statement at a time, deliberately without a
// transaction: a bad row fails the import midway but keeps the rows already
// inserted, which is how the spreadsheet import has always behaved.
func (r *PostgresRepository) BulkInsert(ctx context.Context, customers []Customer) (int, error) {
	for i, c := range customers {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO customers (code, name, address, tax_code)
             VALUES ($1, $2, $3, $4)`,
			c.Code, c.Name, nullable(c.Address), nullable(c.TaxCode))
		if err != nil {
			return i, fmt.Errorf("insert customer %d: %w", i, err)
		}
	}
	return len(customers), nil
}

func scanCustomer(row pgx.Row) (Customer, error) {
	var c Customer
	var address, taxCode sql.NullString
	if err := row.Scan(&c.ID, &c.Code, &c.Name, &address, &taxCode); err != nil {
		return Customer{}, err
	}
	c.Address = address.String
	c.TaxCode = taxCode.String
	return c, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
