package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aureliefinejewels/storefront-api/internal/models"
	"github.com/aureliefinejewels/storefront-api/internal/utils"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO products (category_id, name, description, price_cents, stock_quantity, sku, gender, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.CategoryID, product.Name, product.Description, product.PriceCents, product.StockQuantity, product.SKU, product.Gender, product.Status).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	query := `
        SELECT p.id, p.category_id, p.name, p.description, p.price_cents,
               p.stock_quantity, p.sku, p.gender, p.status, p.created_at, p.updated_at,
               c.id, c.name, c.description
        FROM products p
        LEFT JOIN categories c ON p.category_id = c.id
        WHERE p.id = $1`

	// The category row may be missing; scan through Null* so an orphaned
	// product still comes back.
	var categoryID sql.NullInt64

	var categoryName, categoryDescription sql.NullString

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&product.ID, &product.CategoryID, &product.Name, &product.Description, &product.PriceCents, &product.StockQuantity, &product.SKU, &product.Gender, &product.Status, &product.CreatedAt, &product.UpdatedAt, &categoryID, &categoryName, &categoryDescription)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	if categoryID.Valid {
		product.Category = &models.Category{
			ID:          categoryID.Int64,
			Name:        categoryName.String,
			Description: categoryDescription.String,
		}
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET category_id = $1, name = $2, description = $3, price_cents = $4, stock_quantity = $5, gender = $6, status = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.CategoryID, product.Name, product.Description, product.PriceCents, product.StockQuantity, product.Gender, product.Status, product.ID).Scan(&product.UpdatedAt)
}


func (r *productRepository) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM products`

	err := r.DB.QueryRowContext(dbCtx, countQuery).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `
		SELECT p.id, p.category_id, p.name, p.description, p.price_cents,
		p.stock_quantity, p.sku, p.gender, p.status, p.created_at, p.updated_at,
		c.id, c.name, c.description
		FROM products p
		LEFT JOIN categories c on p.category_id = c.id
		ORDER BY p.id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product := &models.Product{}

		var categoryID sql.NullInt64

		var categoryName, categoryDescription sql.NullString

		err := rows.Scan(&product.ID, &product.CategoryID, &product.Name, &product.Description, &product.PriceCents, &product.StockQuantity, &product.SKU, &product.Gender, &product.Status, &product.CreatedAt, &product.UpdatedAt, &categoryID, &categoryName, &categoryDescription)
		if err != nil {
			return nil, 0, err
		}

		if categoryID.Valid {
			product.Category = &models.Category{
				ID:          categoryID.Int64,
				Name:        categoryName.String,
				Description: categoryDescription.String,
			}
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}
