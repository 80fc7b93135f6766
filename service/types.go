package service

import (
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("service not found")

// Service is a treatment on the salon menu. Price is in minor currency units.
type Service struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           int64     `json:"price"`
}

func (s *Service) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.DurationMinutes <= 0 {
		return errors.New("duration minutes must be greater than 0")
	}
	if s.Price < 0 {
		return errors.New("price must not be negative")
	}
	return nil
}
