package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"estateportal/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// QueryListings returns one page of properties and the total matching count
func (r *PostgresRepository) QueryListings(ctx context.Context, q model.ListingQuery) ([]model.Property, int, error) {
	stmt := buildListingQuery(q)

	var total int
	if err := r.db.GetContext(ctx, &total, stmt.count, stmt.countArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	properties := []model.Property{}
	if err := r.db.SelectContext(ctx, &properties, stmt.page, stmt.pageArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch listings: %w", err)
	}

	return properties, total, nil
}

// GetProperty retrieves a single property by its ID, or nil when absent
func (r *PostgresRepository) GetProperty(ctx context.Context, id string) (*model.Property, error) {
	var property model.Property
	query := fmt.Sprintf("SELECT %s FROM properties WHERE id = $1", propertyColumns)
	err := r.db.GetContext(ctx, &property, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &property, nil
}

// ListAllProperties returns every property regardless of status, newest first
func (r *PostgresRepository) ListAllProperties(ctx context.Context) ([]model.Property, error) {
	properties := []model.Property{}
	query := fmt.Sprintf("SELECT %s FROM properties ORDER BY created_at DESC", propertyColumns)
	if err := r.db.SelectContext(ctx, &properties, query); err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

// SimilarProperties returns available properties whose description embedding
// is closest to the given property's
func (r *PostgresRepository) SimilarProperties(ctx context.Context, id string, limit int) ([]model.Property, error) {
	properties := []model.Property{}
	query := fmt.Sprintf(`
		SELECT %s
		FROM properties
		WHERE id <> $1
		  AND status = 'available'
		  AND embedding IS NOT NULL
		  AND (SELECT embedding FROM properties WHERE id = $1) IS NOT NULL
		ORDER BY embedding <-> (SELECT embedding FROM properties WHERE id = $1)
		LIMIT $2
	`, propertyColumns)
	if err := r.db.SelectContext(ctx, &properties, query, id, limit); err != nil {
		return nil, fmt.Errorf("failed to find similar properties: %w", err)
	}
	return properties, nil
}

// CreateProperty inserts a new property; ID and timestamps are set by the caller
func (r *PostgresRepository) CreateProperty(ctx context.Context, p *model.Property) error {
	query := `
		INSERT INTO properties (
			id, title, description, price, property_type, bedrooms, bathrooms,
			area_sqm, location, address, features, status, images, created_by,
			created_at, updated_at
		) VALUES (
			:id, :title, :description, :price, :property_type, :bedrooms, :bathrooms,
			:area_sqm, :location, :address, :features, :status, :images, :created_by,
			:created_at, :updated_at
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

// UpdateProperty replaces the editable fields of a property. It returns nil when absent.
func (r *PostgresRepository) UpdateProperty(ctx context.Context, id string, in *model.PropertyInput) (*model.Property, error) {
	var property model.Property
	query := fmt.Sprintf(`
		UPDATE properties SET
			title = $2, description = $3, price = $4, property_type = $5,
			bedrooms = $6, bathrooms = $7, area_sqm = $8, location = $9,
			address = $10, features = $11, status = $12, images = $13,
			updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, propertyColumns)
	err := r.db.GetContext(ctx, &property, query,
		id, in.Title, in.Description, in.Price, string(in.Category),
		in.Bedrooms, in.Bathrooms, in.AreaSqm, in.Location,
		in.Address, pq.StringArray(in.Features), string(in.Status), pq.StringArray(in.Images),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update property: %w", err)
	}
	return &property, nil
}

// UpdatePropertyStatus sets the availability status. It reports whether the property exists.
func (r *PostgresRepository) UpdatePropertyStatus(ctx context.Context, id string, status model.Status) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE properties SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return false, fmt.Errorf("failed to update property status: %w", err)
	}
	return affected(res)
}

// DeleteProperty removes a property. It reports whether the property existed.
func (r *PostgresRepository) DeleteProperty(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete property: %w", err)
	}
	return affected(res)
}

// UpdateEmbedding updates the embedding vector for a property
func (r *PostgresRepository) UpdateEmbedding(ctx context.Context, id string, embedding []float32) error {
	vec := pgvector.NewVector(embedding)
	query := `UPDATE properties SET embedding = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, vec, id)
	if err != nil {
		return fmt.Errorf("failed to update embedding: %w", err)
	}
	return nil
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}
