package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"estateportal/internal/model"

	"github.com/google/uuid"
)

const inquiryColumns = `
	i.id, i.property_id, i.user_id, i.name, i.email, i.phone, i.message,
	i.inquiry_type, i.status, p.title AS property_title, i.created_at`

// CreateInquiry stores a new inquiry with status "new" and returns it
func (r *PostgresRepository) CreateInquiry(ctx context.Context, req *model.InquiryRequest, userID *string) (*model.Inquiry, error) {
	var inquiry model.Inquiry
	query := `
		INSERT INTO property_inquiries (
			id, property_id, user_id, name, email, phone, message, inquiry_type, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, property_id, user_id, name, email, phone, message, inquiry_type, status, created_at
	`
	err := r.db.GetContext(ctx, &inquiry, query,
		uuid.NewString(), req.PropertyID, userID, req.Name, req.Email,
		req.Phone, req.Message, req.InquiryType, string(model.InquiryNew),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}
	return &inquiry, nil
}

// ListInquiriesByUser returns the inquiries a user submitted, newest first
func (r *PostgresRepository) ListInquiriesByUser(ctx context.Context, userID string) ([]model.Inquiry, error) {
	inquiries := []model.Inquiry{}
	query := fmt.Sprintf(`
		SELECT %s
		FROM property_inquiries i
		LEFT JOIN properties p ON p.id = i.property_id
		WHERE i.user_id = $1
		ORDER BY i.created_at DESC
	`, inquiryColumns)
	if err := r.db.SelectContext(ctx, &inquiries, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list user inquiries: %w", err)
	}
	return inquiries, nil
}

// ListInquiries returns every inquiry with its property title, newest first
func (r *PostgresRepository) ListInquiries(ctx context.Context) ([]model.Inquiry, error) {
	inquiries := []model.Inquiry{}
	query := fmt.Sprintf(`
		SELECT %s
		FROM property_inquiries i
		LEFT JOIN properties p ON p.id = i.property_id
		ORDER BY i.created_at DESC
	`, inquiryColumns)
	if err := r.db.SelectContext(ctx, &inquiries, query); err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	return inquiries, nil
}

// UpdateInquiryStatus moves an inquiry to a new status. It reports whether the inquiry exists.
func (r *PostgresRepository) UpdateInquiryStatus(ctx context.Context, id string, status model.InquiryStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE property_inquiries SET status = $2 WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return false, fmt.Errorf("failed to update inquiry status: %w", err)
	}
	return affected(res)
}

// SaveProperty bookmarks a property for a user. Saving twice is a no-op.
func (r *PostgresRepository) SaveProperty(ctx context.Context, userID, propertyID string) error {
	query := `
		INSERT INTO saved_properties (id, user_id, property_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, property_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, uuid.NewString(), userID, propertyID); err != nil {
		return fmt.Errorf("failed to save property: %w", err)
	}
	return nil
}

// ListSavedProperties returns a user's bookmarks joined with listing details
func (r *PostgresRepository) ListSavedProperties(ctx context.Context, userID string) ([]model.SavedProperty, error) {
	saved := []model.SavedProperty{}
	query := `
		SELECT s.id, s.property_id, p.title, p.price, p.location, p.property_type,
		       p.status, p.images[1] AS cover_image, s.created_at
		FROM saved_properties s
		JOIN properties p ON p.id = s.property_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
	`
	if err := r.db.SelectContext(ctx, &saved, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list saved properties: %w", err)
	}
	return saved, nil
}

// RemoveSavedProperty deletes a bookmark. It reports whether one existed.
func (r *PostgresRepository) RemoveSavedProperty(ctx context.Context, userID, propertyID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM saved_properties WHERE user_id = $1 AND property_id = $2`,
		userID, propertyID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to remove saved property: %w", err)
	}
	return affected(res)
}

// LogEvent records an analytics event
func (r *PostgresRepository) LogEvent(ctx context.Context, event *model.AnalyticsEvent) error {
	query := `
		INSERT INTO analytics_events (id, event_type, page_url, property_id, user_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.db.ExecContext(ctx, query,
		uuid.NewString(), event.EventType, event.PageURL, event.PropertyID, event.UserID, event.Metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to log event: %w", err)
	}
	return nil
}

// PropertyExists reports whether a property with the given ID exists
func (r *PostgresRepository) PropertyExists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.db.GetContext(ctx, &one, `SELECT 1 FROM properties WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check property: %w", err)
	}
	return true, nil
}
