package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"clinic/internal/domain"
)

type ScheduleRepo struct {
	db *pgxpool.Pool
}

func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepo {
	return &ScheduleRepo{
		db: db,
	}
}

const scheduleColumns = `
	id, doctor_id, date, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	slot_duration, to_char(break_start, 'HH24:MI'), to_char(break_end, 'HH24:MI'),
	is_available, is_working_day, room, notes, created_at, updated_at
`

func (r *ScheduleRepo) Create(ctx context.Context, schedule domain.Schedule) (int64, error) {
	query := `
		INSERT INTO schedules (
			doctor_id, date, start_time, end_time, slot_duration, break_start,
			break_end, is_available, is_working_day, room, notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		schedule.DoctorID,
		schedule.Date,
		schedule.StartTime,
		schedule.EndTime,
		schedule.SlotDuration,
		schedule.BreakStart,
		schedule.BreakEnd,
		schedule.IsAvailable,
		schedule.IsWorkingDay,
		schedule.Room,
		schedule.Notes,
		time.Now(),
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, domain.ErrScheduleExists
		}
		return 0, fmt.Errorf("ошибка создания расписания: %w", err)
	}

	return id, nil
}

func (r *ScheduleRepo) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	query := "SELECT " + scheduleColumns + " FROM schedules WHERE id = $1"
	return r.scanSchedule(r.db.QueryRow(ctx, query, id))
}

func (r *ScheduleRepo) GetByDoctorAndDate(ctx context.Context, doctorID int64, date time.Time) (*domain.Schedule, error) {
	query := "SELECT " + scheduleColumns + " FROM schedules WHERE doctor_id = $1 AND date = $2"
	return r.scanSchedule(r.db.QueryRow(ctx, query, doctorID, date))
}

func (r *ScheduleRepo) scanSchedule(row pgx.Row) (*domain.Schedule, error) {
	var s domain.Schedule
	err := row.Scan(
		&s.ID,
		&s.DoctorID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.SlotDuration,
		&s.BreakStart,
		&s.BreakEnd,
		&s.IsAvailable,
		&s.IsWorkingDay,
		&s.Room,
		&s.Notes,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения расписания: %w", err)
	}
	return &s, nil
}

func (r *ScheduleRepo) Update(ctx context.Context, schedule domain.Schedule) error {
	query := `
		UPDATE schedules
		SET start_time = $1, end_time = $2, slot_duration = $3, break_start = $4,
			break_end = $5, is_available = $6, is_working_day = $7, room = $8,
			notes = $9, updated_at = $10
		WHERE id = $11
	`

	tag, err := r.db.Exec(ctx, query,
		schedule.StartTime,
		schedule.EndTime,
		schedule.SlotDuration,
		schedule.BreakStart,
		schedule.BreakEnd,
		schedule.IsAvailable,
		schedule.IsWorkingDay,
		schedule.Room,
		schedule.Notes,
		time.Now(),
		schedule.ID,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления расписания: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ScheduleRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM schedules WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("ошибка удаления расписания: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ScheduleRepo) List(ctx context.Context, filter domain.ScheduleFilter) ([]domain.Schedule, int, error) {
	conditions := make([]string, 0)
	args := make([]interface{}, 0)
	argID := 1

	if filter.DoctorID != nil {
		conditions = append(conditions, fmt.Sprintf("doctor_id = $%d", argID))
		args = append(args, *filter.DoctorID)
		argID++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argID))
		args = append(args, *filter.DateFrom)
		argID++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argID))
		args = append(args, *filter.DateTo)
		argID++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM schedules "+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчёта расписаний: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM schedules
		%s
		ORDER BY date
		LIMIT $%d OFFSET $%d
	`, scheduleColumns, where, argID, argID+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка расписаний: %w", err)
	}
	defer rows.Close()

	schedules := make([]domain.Schedule, 0)
	for rows.Next() {
		s, err := r.scanSchedule(rows)
		if err != nil {
			return nil, 0, err
		}
		schedules = append(schedules, *s)
	}

	return schedules, total, rows.Err()
}

func (r *ScheduleRepo) ListRange(ctx context.Context, doctorID int64, from, to time.Time) ([]domain.Schedule, error) {
	query := "SELECT " + scheduleColumns + `
		FROM schedules
		WHERE doctor_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date
	`

	rows, err := r.db.Query(ctx, query, doctorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения расписаний за период: %w", err)
	}
	defer rows.Close()

	schedules := make([]domain.Schedule, 0)
	for rows.Next() {
		s, err := r.scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, *s)
	}

	return schedules, rows.Err()
}
