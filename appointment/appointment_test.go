package appointment_test

import (
	"database/sql"
	"regexp"
	"salon-booking/appointment"
	"salon-booking/service"
	"salon-booking/slot"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selectColumns = `SELECT a.id, a.client_name, a.date, a.time, a.status, a.created_at, s.id, s.name, s.duration_minutes, s.price FROM appointments a JOIN services s ON s.id = a.service_id`

var columns = []string{"id", "client_name", "date", "time", "status", "created_at", "service_id", "service_name", "duration_minutes", "price"}

func TestAppointment(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	loc := time.FixedZone("salon", 3*60*60)
	a := appointment.NewAccessor(db, loc)

	apptID := uuid.New()
	cut := service.Service{ID: uuid.New(), Name: "Cut", DurationMinutes: 45, Price: 3000}
	now := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	day := time.Date(2024, time.January, 3, 0, 0, 0, 0, loc)
	// Postgres hands DATE columns back as UTC midnight.
	dbDay := time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)

	t.Run("create appointment", func(t *testing.T) {
		insertQuery := `INSERT INTO appointments (id, client_name, date, time, service_id, status, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`
		dbMock.ExpectExec(regexp.QuoteMeta(insertQuery)).
			WithArgs(sqlmock.AnyArg(), "Ana", "2024-01-03", "17:30", cut.ID, "pending", now).
			WillReturnResult(sqlmock.NewResult(1, 1))

		created, err := a.CreateAppointment(t.Context(), appointment.Appointment{
			ClientName: "Ana",
			Date:       day,
			Time:       slot.Slot{Hour: 17, Minute: 30},
			Service:    cut,
		}, now)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, appointment.StatusPending, created.Status)
		assert.Equal(t, now, created.CreatedAt)

		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("create appointment validation error", func(t *testing.T) {
		_, err := a.CreateAppointment(t.Context(), appointment.Appointment{Date: day, Service: cut}, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validate")
	})

	t.Run("list for day", func(t *testing.T) {
		dbMock.ExpectQuery(regexp.QuoteMeta(selectColumns+` WHERE a.date = $1 ORDER BY a.time`)).
			WithArgs("2024-01-03").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(apptID.String(), "Ana", dbDay, "17:30:00", "confirmed", now, cut.ID.String(), cut.Name, cut.DurationMinutes, cut.Price))

		appts, err := a.ListAppointmentsForDay(t.Context(), day)
		require.NoError(t, err)
		require.Len(t, appts, 1)
		assert.Equal(t, apptID, appts[0].ID)
		assert.Equal(t, day, appts[0].Date)
		assert.Equal(t, slot.Slot{Hour: 17, Minute: 30}, appts[0].Time)
		assert.Equal(t, appointment.StatusConfirmed, appts[0].Status)
		assert.Equal(t, cut, appts[0].Service)

		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("list for day - empty", func(t *testing.T) {
		dbMock.ExpectQuery(regexp.QuoteMeta(selectColumns + ` WHERE a.date = $1 ORDER BY a.time`)).
			WithArgs("2024-01-07").
			WillReturnRows(sqlmock.NewRows(columns))

		appts, err := a.ListAppointmentsForDay(t.Context(), day.AddDate(0, 0, 4))
		require.NoError(t, err)
		require.NotNil(t, appts)
		assert.Empty(t, appts)

		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("list for range", func(t *testing.T) {
		dbMock.ExpectQuery(regexp.QuoteMeta(selectColumns+` WHERE a.date BETWEEN $1 AND $2 ORDER BY a.date, a.time`)).
			WithArgs("2024-01-01", "2024-01-07").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(apptID.String(), "Ana", dbDay, "17:30", "confirmed", now, cut.ID.String(), cut.Name, cut.DurationMinutes, cut.Price).
				AddRow(uuid.NewString(), "Bo", dbDay.AddDate(0, 0, 1), "10:00", "cancelled", now, cut.ID.String(), cut.Name, cut.DurationMinutes, cut.Price))

		start := time.Date(2024, time.January, 1, 0, 0, 0, 0, loc)
		appts, err := a.ListAppointmentsForRange(t.Context(), start, start.AddDate(0, 0, 6))
		require.NoError(t, err)
		require.Len(t, appts, 2)
		assert.True(t, appts[1].Status.IsCancelled())

		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("list for range - inverted", func(t *testing.T) {
		_, err := a.ListAppointmentsForRange(t.Context(), day, day.AddDate(0, 0, -1))
		require.Error(t, err)
	})

	t.Run("list for day - query error", func(t *testing.T) {
		dbMock.ExpectQuery(regexp.QuoteMeta(selectColumns + ` WHERE a.date = $1 ORDER BY a.time`)).
			WithArgs("2024-01-03").
			WillReturnError(sql.ErrConnDone)

		_, err := a.ListAppointmentsForDay(t.Context(), day)
		require.ErrorIs(t, err, sql.ErrConnDone)

		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("get appointment - no rows", func(t *testing.T) {
		missing := uuid.New()
		dbMock.ExpectQuery(regexp.QuoteMeta(selectColumns + ` WHERE a.id = $1`)).
			WithArgs(missing).
			WillReturnError(sql.ErrNoRows)

		_, err := a.GetAppointment(t.Context(), missing)
		require.ErrorIs(t, err, appointment.ErrNotFound)

		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("reschedule appointment", func(t *testing.T) {
		colour := service.Service{ID: uuid.New(), Name: "Colour", DurationMinutes: 90, Price: 8500}
		updateQuery := `UPDATE appointments SET date = $1, time = $2, service_id = $3 WHERE id = $4`
		dbMock.ExpectExec(regexp.QuoteMeta(updateQuery)).
			WithArgs("2024-01-04", "10:00", colour.ID, apptID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		dbMock.ExpectQuery(regexp.QuoteMeta(selectColumns + ` WHERE a.id = $1`)).
			WithArgs(apptID).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(apptID.String(), "Ana", dbDay.AddDate(0, 0, 1), "10:00", "confirmed", now, colour.ID.String(), colour.Name, colour.DurationMinutes, colour.Price))

		updated, err := a.RescheduleAppointment(t.Context(), apptID, day.AddDate(0, 0, 1), slot.Slot{Hour: 10}, colour.ID)
		require.NoError(t, err)
		assert.Equal(t, colour, updated.Service)
		assert.Equal(t, day.AddDate(0, 0, 1), updated.Date)

		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("reschedule missing appointment", func(t *testing.T) {
		missing := uuid.New()
		updateQuery := `UPDATE appointments SET date = $1, time = $2, service_id = $3 WHERE id = $4`
		dbMock.ExpectExec(regexp.QuoteMeta(updateQuery)).
			WithArgs("2024-01-04", "10:00", cut.ID, missing).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := a.RescheduleAppointment(t.Context(), missing, day.AddDate(0, 0, 1), slot.Slot{Hour: 10}, cut.ID)
		require.ErrorIs(t, err, appointment.ErrNotFound)

		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("update status", func(t *testing.T) {
		dbMock.ExpectExec(regexp.QuoteMeta(`UPDATE appointments SET status = $1 WHERE id = $2`)).
			WithArgs("cancelled", apptID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, a.UpdateStatus(t.Context(), apptID, appointment.StatusCancelled))
		require.Error(t, a.UpdateStatus(t.Context(), apptID, appointment.Status("lost")))

		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("delete appointment", func(t *testing.T) {
		dbMock.ExpectExec(regexp.QuoteMeta(`DELETE FROM appointments WHERE id = $1`)).
			WithArgs(apptID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, a.DeleteAppointment(t.Context(), apptID))

		require.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestAppointmentHelpers(t *testing.T) {
	t.Run("cancelled spellings", func(t *testing.T) {
		assert.True(t, appointment.StatusCancelled.IsCancelled())
		assert.True(t, appointment.Status("Canceled").IsCancelled())
		assert.False(t, appointment.StatusConfirmed.IsCancelled())
		assert.False(t, appointment.StatusPending.IsCancelled())
	})

	t.Run("occupies", func(t *testing.T) {
		appt := appointment.Appointment{
			Time:    slot.Slot{Hour: 17, Minute: 30},
			Service: service.Service{DurationMinutes: 45},
		}
		start, end := appt.Occupies()
		assert.Equal(t, 17*60+30, start)
		assert.Equal(t, 18*60+15, end)
	})

	t.Run("same day", func(t *testing.T) {
		appt := appointment.Appointment{Date: time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)}
		assert.True(t, appt.SameDay(time.Date(2024, time.January, 3, 18, 0, 0, 0, time.UTC)))
		assert.False(t, appt.SameDay(time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC)))
	})
}
