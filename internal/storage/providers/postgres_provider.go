package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ja-he/salonplan/internal/model"
	"github.com/ja-he/salonplan/internal/storage"
)

const uniqueViolation = "23505"

// PostgresSchema creates the tables PostgresDataProvider reads from and writes
// to, if they do not exist.
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS staff (
	id       text PRIMARY KEY,
	name     text NOT NULL DEFAULT '',
	position integer NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS rooms (
	id       text PRIMARY KEY,
	name     text NOT NULL DEFAULT '',
	position integer NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS appointments (
	id         text PRIMARY KEY,
	date       date NOT NULL,
	start_time time NOT NULL,
	end_time   time NOT NULL,
	staff_id   text,
	room_id    text,
	label      text NOT NULL DEFAULT '',
	customer   text NOT NULL DEFAULT '',
	status     text NOT NULL DEFAULT 'pending',
	color      text NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS appointments_date_idx ON appointments (date);
`

// PostgresDataProvider reads appointments and directories from a PostgreSQL
// database (see PostgresSchema).
type PostgresDataProvider struct {
	pool *pgxpool.Pool
}

// NewPostgresDataProvider connects to the database at the given URL and checks
// the connection.
func NewPostgresDataProvider(ctx context.Context, databaseURL string) (*PostgresDataProvider, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("could not parse database url (%w)", err)
	}
	cfg.MaxConns = 4
	cfg.MinConns = 1
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create connection pool (%w)", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("could not reach database (%w)", err)
	}
	return &PostgresDataProvider{pool: pool}, nil
}

// Close releases the connection pool.
func (p *PostgresDataProvider) Close() {
	if p != nil && p.pool != nil {
		p.pool.Close()
	}
}

// EnsureSchema creates missing tables.
func (p *PostgresDataProvider) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, PostgresSchema); err != nil {
		return fmt.Errorf("could not create schema (%w)", err)
	}
	return nil
}

// GetAppointments returns the appointments on the dates of the range, ordered
// by date, start, and id.
func (p *PostgresDataProvider) GetAppointments(ctx context.Context, dateRange model.DateRange) ([]model.Appointment, error) {
	if !dateRange.Valid() {
		return nil, fmt.Errorf("invalid date range %s", dateRange.String())
	}

	rows, err := p.pool.Query(ctx, `
		SELECT id, to_char(date, 'YYYY-MM-DD'), to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
		       coalesce(staff_id, ''), coalesce(room_id, ''), label, customer, status, color
		FROM appointments
		WHERE date BETWEEN $1::date AND $2::date
		ORDER BY date, start_time, id
	`, dateRange.Start.String(), dateRange.End.String())
	if err != nil {
		return nil, fmt.Errorf("could not query appointments (%w)", err)
	}
	defer rows.Close()

	result := []model.Appointment{}
	for rows.Next() {
		var a model.Appointment
		var status string
		if err := rows.Scan(&a.ID, &a.Date, &a.StartTime, &a.EndTime, &a.StaffID, &a.RoomID, &a.Label, &a.SecondaryLabel, &status, &a.Color); err != nil {
			return nil, fmt.Errorf("could not scan appointment (%w)", err)
		}
		a.Status = model.Status(status)
		result = append(result, a)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("could not read appointments (%w)", rows.Err())
	}
	return result, nil
}

// GetStaff returns the staff directory ordered by position.
func (p *PostgresDataProvider) GetStaff(ctx context.Context) ([]model.Resource, error) {
	return p.getDirectory(ctx, `SELECT id, name FROM staff ORDER BY position, id`)
}

// GetRooms returns the room directory ordered by position.
func (p *PostgresDataProvider) GetRooms(ctx context.Context) ([]model.Resource, error) {
	return p.getDirectory(ctx, `SELECT id, name FROM rooms ORDER BY position, id`)
}

func (p *PostgresDataProvider) getDirectory(ctx context.Context, query string) ([]model.Resource, error) {
	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query directory (%w)", err)
	}
	defer rows.Close()

	result := []model.Resource{}
	for rows.Next() {
		var r model.Resource
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("could not scan directory entry (%w)", err)
		}
		result = append(result, r)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("could not read directory (%w)", rows.Err())
	}
	return result, nil
}

// AddAppointment validates and inserts the appointment.
func (p *PostgresDataProvider) AddAppointment(ctx context.Context, a model.Appointment) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("refusing to store invalid appointment (%w)", err)
	}
	_, err := p.pool.Exec(ctx, `
		INSERT INTO appointments (id, date, start_time, end_time, staff_id, room_id, label, customer, status, color)
		VALUES ($1, $2::date, $3::time, $4::time, nullif($5, ''), nullif($6, ''), $7, $8, $9, $10)
	`, a.ID, a.Date, a.StartTime, a.EndTime, a.StaffID, a.RoomID, a.Label, a.SecondaryLabel, string(a.Status), a.Color)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("id '%s' taken (%w)", a.ID, storage.ErrDuplicate)
		}
		return fmt.Errorf("could not insert appointment '%s' (%w)", a.ID, err)
	}
	return nil
}
