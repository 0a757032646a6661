package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrNotFound = errors.New("product not found")

// DBPool matches the methods from *pgxpool.Pool that we use.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, p Product) (*Product, error)
	Update(ctx context.Context, id int64, p Product) (*Product, error)
	Delete(ctx context.Context, id int64) (*Product, error)
	BulkInsert(ctx context.Context, products []Product) (int, error)
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const listQuery = `
	SELECT p.id, p.code, p.name, p.category_id, c.name AS category_name,
	       p.unit, p.price, p.supplier_id, s.name AS supplier_name
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.id
	LEFT JOIN suppliers s ON p.supplier_id = s.id
	ORDER BY p.id ASC`

func (r *PostgresRepository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx, listQuery)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var (
			p            Product
			categoryID   sql.NullInt64
			categoryName sql.NullString
			unit         sql.NullString
			price        sql.NullFloat64
			supplierID   sql.NullInt64
			supplierName sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &categoryID, &categoryName,
			&unit, &price, &supplierID, &supplierName); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if categoryID.Valid {
			p.CategoryID = &categoryID.Int64
		}
		if supplierID.Valid {
			p.SupplierID = &supplierID.Int64
		}
		p.CategoryName = categoryName.String
		p.SupplierName = supplierName.String
		p.Unit = unit.String
		p.Price = price.Float64
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return products, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p Product) (*Product, error) {
	created, err := scanProduct(r.pool.QueryRow(ctx,
		`INSERT INTO products (code, name, category_id, unit, price, supplier_id)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING id, code, name, category_id, unit, price, supplier_id`,
		p.Code, p.Name, p.CategoryID, nullable(p.Unit), p.Price, p.SupplierID))
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, p Product) (*Product, error) {
	updated, err := scanProduct(r.pool.QueryRow(ctx,
		`UPDATE products SET code=$1, name=$2, category_id=$3, unit=$4, price=$5, supplier_id=$6
         WHERE id=$7
         RETURNING id, code, name, category_id, unit, price, supplier_id`,
		p.Code, p.Name, p.CategoryID, nullable(p.Unit), p.Price, p.SupplierID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (*Product, error) {
	deleted, err := scanProduct(r.pool.QueryRow(ctx,
		`DELETE FROM products WHERE id=$1
         RETURNING id, code, name, category_id, unit, price, supplier_id`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete product: %w", err)
	}
	return deleted, nil
}

// BulkInsert mirrors the spreadsheet import: one plain insert per row, no
// surrounding transaction, first failure stops the loop.
func (r *PostgresRepository) BulkInsert(ctx context.Context, products []Product) (int, error) {
	for i, p := range products {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO products (code, name, category_id, unit, price, supplier_id)
             VALUES ($1, $2, $3, $4, $5, $6)`,
			p.Code, p.Name, p.CategoryID, nullable(p.Unit), p.Price, p.SupplierID)
		if err != nil {
			return i, fmt.Errorf("insert product %d: %w", i, err)
		}
	}
	return len(products), nil
}

func scanProduct(row pgx.Row) (*Product, error) {
	var (
		p          Product
		categoryID sql.NullInt64
		unit       sql.NullString
		price      sql.NullFloat64
		supplierID sql.NullInt64
	)
	if err := row.Scan(&p.ID, &p.Code, &p.Name, &categoryID, &unit, &price, &supplierID); err != nil {
		return nil, err
	}
	if categoryID.Valid {
		p.CategoryID = &categoryID.Int64
	}
	if supplierID.Valid {
		p.SupplierID = &supplierID.Int64
	}
	p.Unit = unit.String
	p.Price = price.Float64
	return &p, nil
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
