package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("category not found")

// DBPool matches the methods from *pgxpool.Pool that we use.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository interface {
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, c Category) (*Category, error)
	Update(ctx context.Context, id int64, c Category) (*Category, error)
	Delete(ctx context.Context, id int64) (*Category, error)
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) List(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, code, name FROM categories ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Code, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return categories, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c Category) (*Category, error) {
	var created Category
	err := r.pool.QueryRow(ctx,
		`INSERT INTO categories (code, name) VALUES ($1, $2)
         RETURNING id, code, name`,
		c.Code, c.Name).Scan(&created.ID, &created.Code, &created.Name)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return &created, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, c Category) (*Category, error) {
	var updated Category
	err := r.pool.QueryRow(ctx,
		`UPDATE categories SET code=$1, name=$2 WHERE id=$3
         RETURNING id, code, name`,
		c.Code, c.Name, id).Scan(&updated.ID, &updated.Code, &updated.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return &updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (*Category, error) {
	var deleted Category
	err := r.pool.QueryRow(ctx,
		`DELETE FROM categories WHERE id=$1
         RETURNING id, code, name`,
		id).Scan(&deleted.ID, &deleted.Code, &deleted.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete category: %w", err)
	}
	return &deleted, nil
}
