package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

func (a *Accessor) GetServices(ctx context.Context) ([]Service, error) {
	services := []Service{}

	query := `SELECT id, name, duration_minutes, price FROM services ORDER BY name`
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.Name, &s.DurationMinutes, &s.Price); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return services, nil
}

func (a *Accessor) GetService(ctx context.Context, id uuid.UUID) (Service, error) {
	var s Service

	query := `SELECT id, name, duration_minutes, price FROM services WHERE id = $1`
	row := a.db.QueryRowContext(ctx, query, id)
	if err := row.Scan(&s.ID, &s.Name, &s.DurationMinutes, &s.Price); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Service{}, ErrNotFound
		}
		return Service{}, fmt.Errorf("scan: %w", err)
	}

	return s, nil
}
