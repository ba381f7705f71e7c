package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jayakulan/TrashRoute1/internal/core/domain"
)

// CompanyRepo implements ports.CompanyRepository with pgx.
type CompanyRepo struct {
	db *DB
}

// NewCompanyRepo creates a new CompanyRepo.
func NewCompanyRepo(db *DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

// GetByID returns a company by UUID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	var c domain.Company
	var lat, lon *float64
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, email, COALESCE(phone, ''),
		       COALESCE(street, ''), COALESCE(city, ''),
		       ST_Y(location::geometry) as lat,
		       ST_X(location::geometry) as lon,
		       service_radius_km, COALESCE(accepted_categories, '{}'), rating, created_at
		FROM companies WHERE id = $1
	`, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone,
		&c.Address.Street, &c.Address.City,
		&lat, &lon,
		&c.ServiceRadiusKm, &c.AcceptedCategories, &c.Rating, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("company %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if lat != nil && lon != nil {
		c.Address.Coordinate = &domain.Coordinate{Latitude: *lat, Longitude: *lon}
	}
	return &c, nil
}

// FindNearby returns companies within radiusMeters using PostGIS ST_DWithin,
// closest first.
func (r *CompanyRepo) FindNearby(ctx context.Context, lat, lng, radiusMeters float64, limit int) ([]domain.Company, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, email, COALESCE(phone, ''),
		       COALESCE(street, ''), COALESCE(city, ''),
		       ST_Y(location::geometry) as lat,
		       ST_X(location::geometry) as lon,
		       service_radius_km, COALESCE(accepted_categories, '{}'), rating,
		       ST_Distance(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography) as distance,
		       created_at
		FROM companies
		WHERE ST_DWithin(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
		ORDER BY distance
		LIMIT $4
	`, lng, lat, radiusMeters, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		var c domain.Company
		var clat, clon *float64
		var dist float64
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Phone,
			&c.Address.Street, &c.Address.City,
			&clat, &clon,
			&c.ServiceRadiusKm, &c.AcceptedCategories, &c.Rating,
			&dist, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		if clat != nil && clon != nil {
			c.Address.Coordinate = &domain.Coordinate{Latitude: *clat, Longitude: *clon}
		}
		c.Distance = &dist
		companies = append(companies, c)
	}
	return companies, rows.Err()
}
