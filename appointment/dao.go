package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"salon-booking/slot"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

const selectColumns = `SELECT a.id, a.client_name, a.date, a.time, a.status, a.created_at, s.id, s.name, s.duration_minutes, s.price FROM appointments a JOIN services s ON s.id = a.service_id`

func (a *Accessor) ListAppointmentsForDay(ctx context.Context, date time.Time) ([]Appointment, error) {
	query := selectColumns + ` WHERE a.date = $1 ORDER BY a.time`
	return a.list(ctx, query, date.Format(dateLayout))
}

// ListAppointmentsForRange returns the appointments from start to end, both
// days inclusive, ordered by date and time.
func (a *Accessor) ListAppointmentsForRange(ctx context.Context, start, end time.Time) ([]Appointment, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("range end %s before start %s", end.Format(dateLayout), start.Format(dateLayout))
	}
	query := selectColumns + ` WHERE a.date BETWEEN $1 AND $2 ORDER BY a.date, a.time`
	return a.list(ctx, query, start.Format(dateLayout), end.Format(dateLayout))
}

func (a *Accessor) GetAppointment(ctx context.Context, id uuid.UUID) (Appointment, error) {
	query := selectColumns + ` WHERE a.id = $1`
	row := a.db.QueryRowContext(ctx, query, id)
	appt, err := a.scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Appointment{}, ErrNotFound
		}
		return Appointment{}, fmt.Errorf("scan: %w", err)
	}
	return appt, nil
}

func (a *Accessor) CreateAppointment(ctx context.Context, appt Appointment, now time.Time) (Appointment, error) {
	if appt.Status == "" {
		appt.Status = StatusPending
	}
	if err := appt.Validate(); err != nil {
		return Appointment{}, fmt.Errorf("validate: %w", err)
	}

	appt.ID = uuid.New()
	appt.Date = a.day(appt.Date)
	appt.CreatedAt = now

	query := `INSERT INTO appointments (id, client_name, date, time, service_id, status, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := a.db.ExecContext(ctx, query, appt.ID, appt.ClientName, appt.Date.Format(dateLayout), appt.Time, appt.Service.ID, string(appt.Status), now); err != nil {
		return Appointment{}, fmt.Errorf("exec context: %w", err)
	}

	return appt, nil
}

// RescheduleAppointment moves an appointment to a new day, time and service.
// Client name, status and created_at are left unchanged.
func (a *Accessor) RescheduleAppointment(ctx context.Context, id uuid.UUID, date time.Time, at slot.Slot, serviceID uuid.UUID) (Appointment, error) {
	query := `UPDATE appointments SET date = $1, time = $2, service_id = $3 WHERE id = $4`
	res, err := a.db.ExecContext(ctx, query, date.Format(dateLayout), at, serviceID, id)
	if err != nil {
		return Appointment{}, fmt.Errorf("exec context: %w", err)
	}
	if err := affected(res); err != nil {
		return Appointment{}, err
	}

	updated, err := a.GetAppointment(ctx, id)
	if err != nil {
		return Appointment{}, fmt.Errorf("get appointment: %w", err)
	}
	return updated, nil
}

func (a *Accessor) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	if err := status.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	query := `UPDATE appointments SET status = $1 WHERE id = $2`
	res, err := a.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return affected(res)
}

func (a *Accessor) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM appointments WHERE id = $1`
	res, err := a.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return affected(res)
}

func (a *Accessor) list(ctx context.Context, query string, args ...any) ([]Appointment, error) {
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	appointments := []Appointment{}
	for rows.Next() {
		appt, err := a.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		appointments = append(appointments, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return appointments, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (a *Accessor) scan(row scanner) (Appointment, error) {
	var appt Appointment
	var status string
	if err := row.Scan(
		&appt.ID, &appt.ClientName, &appt.Date, &appt.Time, &status, &appt.CreatedAt,
		&appt.Service.ID, &appt.Service.Name, &appt.Service.DurationMinutes, &appt.Service.Price,
	); err != nil {
		return Appointment{}, err
	}
	appt.Status = Status(status)
	appt.Date = a.day(appt.Date)
	return appt, nil
}

// day keeps the calendar date of t and moves it to midnight in the business
// timezone. A DATE column has no zone, so its Y-M-D is taken as is.
func (a *Accessor) day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, a.loc)
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
