package supplier

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("supplier not found")

// DBPool matches the methods from *pgxpool.Pool that we use.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository interface {
	List(ctx context.Context) ([]Supplier, error)
	Create(ctx context.Context, s Supplier) (*Supplier, error)
	Update(ctx context.Context, id int64, s Supplier) (*Supplier, error)
	Delete(ctx context.Context, id int64) (*Supplier, error)
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) List(ctx context.Context) ([]Supplier, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, code, name, address, phone FROM suppliers ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("select suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := make([]Supplier, 0)
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return suppliers, nil
}

func (r *PostgresRepository) Create(ctx context.Context, s Supplier) (*Supplier, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO suppliers (code, name, address, phone)
         VALUES ($1, $2, $3, $4)
         RETURNING id, code, name, address, phone`,
		s.Code, s.Name, nullable(s.Address), nullable(s.Phone))
	created, err := scanSupplier(row)
	if err != nil {
		return nil, fmt.Errorf("insert supplier: %w", err)
	}
	return &created, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, s Supplier) (*Supplier, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE suppliers SET code=$1, name=$2, address=$3, phone=$4
         WHERE id=$5
         RETURNING id, code, name, address, phone`,
		s.Code, s.Name, nullable(s.Address), nullable(s.Phone), id)
	updated, err := scanSupplier(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update supplier: %w", err)
	}
	return &updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (*Supplier, error) {
	row := r.pool.QueryRow(ctx,
		`DELETE FROM suppliers WHERE id=$1
         RETURNING id, code, name, address, phone`, id)
	deleted, err := scanSupplier(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete supplier: %w", err)
	}
	return &deleted, nil
}

func scanSupplier(row pgx.Row) (Supplier, error) {
	var s Supplier
	var address, phone sql.NullString
	if err := row.Scan(&s.ID, &s.Code, &s.Name, &address, &phone); err != nil {
		return Supplier{}, err
	}
	s.Address = address.String
	s.Phone = phone.String
	return s, nil
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
