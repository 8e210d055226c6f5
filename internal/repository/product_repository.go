package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vendorbuddy/marketplace-service/internal/domain"
)

// PageRequest carries zero-based page coordinates.
type PageRequest struct {
	Page int
	Size int
}

// SortSpec names a sort column. The field is not validated here; an unknown
// column surfaces as the database's own error.
type SortSpec struct {
	Field      string
	Descending bool
}

// ProductPage is one page of results plus the total match count.
type ProductPage struct {
	Items      []domain.Product
	TotalCount int64
	Page       int
	Size       int
}

// ProductRepository encapsulates product persistence.
type ProductRepository interface {
	Save(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
	FindAll(ctx context.Context, page PageRequest, sort SortSpec) (*ProductPage, error)
	FindBySupplierID(ctx context.Context, supplierID string) ([]domain.Product, error)
	SearchText(ctx context.Context, term string, page PageRequest) (*ProductPage, error)
	SearchTextWithPriceRange(ctx context.Context, term string, minPrice, maxPrice float64, page PageRequest) (*ProductPage, error)
	FindByCategory(ctx context.Context, category string, page PageRequest) (*ProductPage, error)
	FindByCategoryAndPriceRange(ctx context.Context, category string, minPrice, maxPrice float64, page PageRequest) (*ProductPage, error)
	FindByPriceRange(ctx context.Context, minPrice, maxPrice float64, page PageRequest) (*ProductPage, error)
	FindAvailable(ctx context.Context, page PageRequest) (*ProductPage, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository instantiates repository.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

const productColumns = `id, supplier_id, name, category, description, unit_price, unit_type,
               stock, delivery_range, image_url, created_at, updated_at`

func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		const query = `
        INSERT INTO products (supplier_id, name, category, description, unit_price, unit_type, stock, delivery_range, image_url, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id`
		return r.pool.QueryRow(ctx, query,
			product.SupplierID,
			product.Name,
			product.Category,
			product.Description,
			product.UnitPrice,
			product.UnitType,
			product.Stock,
			product.DeliveryRange,
			product.ImageURL,
			product.CreatedAt,
			product.UpdatedAt,
		).Scan(&product.ID)
	}

	const query = `
        UPDATE products SET supplier_id=$1, name=$2, category=$3, description=$4, unit_price=$5,
            unit_type=$6, stock=$7, delivery_range=$8, image_url=$9, updated_at=$10
        WHERE id=$11`
	cmd, err := r.pool.Exec(ctx, query,
		product.SupplierID,
		product.Name,
		product.Category,
		product.Description,
		product.UnitPrice,
		product.UnitType,
		product.Stock,
		product.DeliveryRange,
		product.ImageURL,
		product.UpdatedAt,
		product.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id=$1`, productColumns)
	row := r.pool.QueryRow(ctx, query, id)
	return scanProduct(row)
}

func (r *productRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM products WHERE id=$1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *productRepository) DeleteByID(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) FindAll(ctx context.Context, page PageRequest, sort SortSpec) (*ProductPage, error) {
	direction := "ASC"
	if sort.Descending {
		direction = "DESC"
	}
	column := pgx.Identifier{sort.Field}.Sanitize()
	orderBy := fmt.Sprintf("%s %s", column, direction)
	return r.pagedQuery(ctx, "", nil, orderBy, page)
}

func (r *productRepository) FindBySupplierID(ctx context.Context, supplierID string) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE supplier_id=$1 ORDER BY created_at DESC`, productColumns)
	rows, err := r.pool.Query(ctx, query, supplierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *productRepository) SearchText(ctx context.Context, term string, page PageRequest) (*ProductPage, error) {
	where := "(name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')"
	return r.pagedQuery(ctx, where, []any{term}, "name ASC", page)
}

func (r *productRepository) SearchTextWithPriceRange(ctx context.Context, term string, minPrice, maxPrice float64, page PageRequest) (*ProductPage, error) {
	where := "(name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%') AND unit_price BETWEEN $2 AND $3"
	return r.pagedQuery(ctx, where, []any{term, minPrice, maxPrice}, "name ASC", page)
}

func (r *productRepository) FindByCategory(ctx context.Context, category string, page PageRequest) (*ProductPage, error) {
	return r.pagedQuery(ctx, "category=$1", []any{category}, "name ASC", page)
}

func (r *productRepository) FindByCategoryAndPriceRange(ctx context.Context, category string, minPrice, maxPrice float64, page PageRequest) (*ProductPage, error) {
	where := "category=$1 AND unit_price BETWEEN $2 AND $3"
	return r.pagedQuery(ctx, where, []any{category, minPrice, maxPrice}, "name ASC", page)
}

func (r *productRepository) FindByPriceRange(ctx context.Context, minPrice, maxPrice float64, page PageRequest) (*ProductPage, error) {
	return r.pagedQuery(ctx, "unit_price BETWEEN $1 AND $2", []any{minPrice, maxPrice}, "name ASC", page)
}

func (r *productRepository) FindAvailable(ctx context.Context, page PageRequest) (*ProductPage, error) {
	return r.pagedQuery(ctx, "stock > 0", nil, "created_at DESC", page)
}

func (r *productRepository) pagedQuery(ctx context.Context, where string, args []any, orderBy string, page PageRequest) (*ProductPage, error) {
	var clause string
	if strings.TrimSpace(where) != "" {
		clause = " WHERE " + where
	}

	countQuery := "SELECT COUNT(*) FROM products" + clause
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, err
	}

	limitArgs := append(append([]any{}, args...), page.Size, page.Page*page.Size)
	query := fmt.Sprintf("SELECT %s FROM products%s ORDER BY %s LIMIT $%d OFFSET $%d",
		productColumns, clause, orderBy, len(limitArgs)-1, len(limitArgs))

	rows, err := r.pool.Query(ctx, query, limitArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Items: items, TotalCount: total, Page: page.Page, Size: page.Size}, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var product domain.Product
	if err := row.Scan(
		&product.ID,
		&product.SupplierID,
		&product.Name,
		&product.Category,
		&product.Description,
		&product.UnitPrice,
		&product.UnitType,
		&product.Stock,
		&product.DeliveryRange,
		&product.ImageURL,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &product, nil
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}
