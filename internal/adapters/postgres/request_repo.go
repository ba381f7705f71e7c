package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jayakulan/TrashRoute1/internal/core/domain"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// RequestRepo implements ports.PickupRequestRepository with pgx.
type RequestRepo struct {
	db *DB
}

// NewRequestRepo creates a new RequestRepo.
func NewRequestRepo(db *DB) *RequestRepo {
	return &RequestRepo{db: db}
}

const requestColumns = `
	id, user_id, COALESCE(company_id::text, ''), status, items,
	street, city, COALESCE(state, ''), COALESCE(zip_code, ''), COALESCE(country, ''),
	ST_Y(location::geometry) as lat,
	ST_X(location::geometry) as lon,
	scheduled_date, time_slot, COALESCE(notes, ''), created_at, updated_at`

// Create inserts a new pickup request in pending status.
func (r *RequestRepo) Create(ctx context.Context, req *domain.PickupRequest) error {
	items, err := json.Marshal(req.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	var lat, lon *float64
	if c := req.Address.Coordinate; c != nil {
		lat, lon = &c.Latitude, &c.Longitude
	}

	_, err = r.db.Pool.Exec(ctx, `
		INSERT INTO pickup_requests
			(id, user_id, status, items, street, city, state, zip_code, country,
			 location, scheduled_date, time_slot, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''),
		        ST_SetSRID(ST_MakePoint($10, $11), 4326)::geography,
		        $12, $13, NULLIF($14, ''), $15, $16)
	`, req.ID, req.UserID, req.Status, items,
		req.Address.Street, req.Address.City, req.Address.State,
		req.Address.ZipCode, req.Address.Country,
		lon, lat,
		req.Schedule.Date, req.Schedule.TimeSlot, req.Notes,
		req.CreatedAt, req.UpdatedAt)
	return err
}

// GetByID returns a single pickup request.
func (r *RequestRepo) GetByID(ctx context.Context, id string) (*domain.PickupRequest, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM pickup_requests WHERE id = $1`, id)
	req, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("pickup request %s: %w", id, ErrNotFound)
	}
	return req, err
}

// ListByUser returns all requests created by a user, newest first.
func (r *RequestRepo) ListByUser(ctx context.Context, userID string) ([]domain.PickupRequest, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+requestColumns+`
		 FROM pickup_requests
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

// ListByCompany returns the requests a company has taken on plus the open
// pending pool it can still accept.
func (r *RequestRepo) ListByCompany(ctx context.Context, companyID string) ([]domain.PickupRequest, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+requestColumns+`
		 FROM pickup_requests
		 WHERE company_id = $1 OR status = 'pending'
		 ORDER BY created_at DESC, id ASC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

// ListByStatus returns all requests in a status, newest first.
func (r *RequestRepo) ListByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.PickupRequest, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+requestColumns+`
		 FROM pickup_requests
		 WHERE status = $1
		 ORDER BY created_at DESC, id ASC`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

// UpdateStatus persists the status, assignee, and updated_at of a request
// whose transition the domain has already validated.
func (r *RequestRepo) UpdateStatus(ctx context.Context, req *domain.PickupRequest) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE pickup_requests
		SET status = $2, company_id = NULLIF($3, '')::uuid, updated_at = $4
		WHERE id = $1
	`, req.ID, req.Status, req.CompanyID, req.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pickup request %s: %w", req.ID, ErrNotFound)
	}
	return nil
}

func scanRequest(row pgx.Row) (*domain.PickupRequest, error) {
	var req domain.PickupRequest
	var items []byte
	var lat, lon *float64
	err := row.Scan(
		&req.ID, &req.UserID, &req.CompanyID, &req.Status, &items,
		&req.Address.Street, &req.Address.City, &req.Address.State,
		&req.Address.ZipCode, &req.Address.Country,
		&lat, &lon,
		&req.Schedule.Date, &req.Schedule.TimeSlot, &req.Notes,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &req.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	if lat != nil && lon != nil {
		req.Address.Coordinate = &domain.Coordinate{Latitude: *lat, Longitude: *lon}
	}
	return &req, nil
}

func scanRequests(rows pgx.Rows) ([]domain.PickupRequest, error) {
	var requests []domain.PickupRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}
