package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/domain"
)

// SQLiteProvider serves the catalog from a local sqlite database,
// used for offline and demo deployments instead of the remote API.
type SQLiteProvider struct {
	db *sql.DB
}

func OpenSQLite(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteProvider{db: db}, nil
}

func (p *SQLiteProvider) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(p.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (p *SQLiteProvider) FetchAll(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, title, description, category, price, image_url
		FROM products
		ORDER BY id
	`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: query products: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var (
			prod  domain.Product
			price string
		)
		err := rows.Scan(
			&prod.ID,
			&prod.Title,
			&prod.Description,
			&prod.Category,
			&price,
			&prod.ImageURL,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scan product: %v", ErrUnavailable, err)
		}
		prod.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("%w: parse price for product %d: %v", ErrUnavailable, prod.ID, err)
		}
		products = append(products, prod)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: row iteration: %v", ErrUnavailable, err)
	}

	return products, nil
}

func (p *SQLiteProvider) Close() error {
	return p.db.Close()
}
