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
	"clinic/internal/scheduling"
)

// Имена уникальных индексов из миграций. По ним нарушение 23505
// разводится на "слот занят" и "конфликт нумерации".
const (
	slotUniqueConstraint   = "uq_appointments_doctor_slot"
	numberUniqueConstraint = "uq_appointments_number"
)

const numberRetries = 3

type AppointmentRepo struct {
	db *pgxpool.Pool
}

func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepo {
	return &AppointmentRepo{
		db: db,
	}
}

const appointmentColumns = `
	a.id, a.number, a.patient_id, a.doctor_id, a.service_id, a.schedule_id,
	a.appointment_time, a.duration, a.status, a.symptoms, a.notes, a.created_by,
	a.created_at, a.updated_at,
	pu.last_name || ' ' || pu.first_name AS patient_name,
	d.last_name || ' ' || d.first_name AS doctor_name,
	COALESCE(s.name, '') AS service_name,
	COALESCE(sch.room, '') AS room
`

const appointmentJoins = `
	FROM appointments a
	JOIN patients p ON p.id = a.patient_id
	JOIN users pu ON pu.id = p.user_id
	JOIN doctors d ON d.id = a.doctor_id
	LEFT JOIN services s ON s.id = a.service_id
	LEFT JOIN schedules sch ON sch.id = a.schedule_id
`

// Create выделяет номер записи и вставляет её в одной транзакции. Конфликт
// по слоту не ретраится: слот занят конкурентной записью. Конфликт по
// номеру ретраится заново с пересчитанным номером.
func (r *AppointmentRepo) Create(ctx context.Context, appointment domain.Appointment) (int64, string, error) {
	var lastErr error
	for attempt := 0; attempt < numberRetries; attempt++ {
		id, number, err := r.tryCreate(ctx, appointment)
		if err == nil {
			return id, number, nil
		}
		if errors.Is(err, domain.ErrNumberingConflict) {
			lastErr = err
			continue
		}
		return 0, "", err
	}
	return 0, "", lastErr
}

func (r *AppointmentRepo) tryCreate(ctx context.Context, appointment domain.Appointment) (int64, string, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, "", fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	prefix := scheduling.NumberPrefix(appointment.AppointmentTime)

	var maxSeq int
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(CAST(SUBSTRING(number FROM LENGTH($1) + 1) AS INTEGER)), 0)
		FROM appointments
		WHERE number LIKE $1 || '%'
	`, prefix).Scan(&maxSeq)
	if err != nil {
		return 0, "", fmt.Errorf("ошибка выделения номера записи: %w", err)
	}

	number := scheduling.AppointmentNumber(appointment.AppointmentTime, maxSeq+1)

	query := `
		INSERT INTO appointments (
			number, patient_id, doctor_id, service_id, schedule_id,
			appointment_time, duration, status, symptoms, notes, created_by,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		RETURNING id
	`

	var id int64
	err = tx.QueryRow(ctx, query,
		number,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.ServiceID,
		appointment.ScheduleID,
		appointment.AppointmentTime,
		appointment.Duration,
		appointment.Status,
		appointment.Symptoms,
		appointment.Notes,
		appointment.CreatedBy,
		time.Now(),
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case slotUniqueConstraint:
				return 0, "", domain.ErrSlotTaken
			case numberUniqueConstraint:
				return 0, "", domain.ErrNumberingConflict
			}
		}
		return 0, "", fmt.Errorf("ошибка создания записи: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, "", fmt.Errorf("ошибка коммита транзакции: %w", err)
	}

	return id, number, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	query := "SELECT " + appointmentColumns + appointmentJoins + " WHERE a.id = $1"
	return r.scanAppointment(r.db.QueryRow(ctx, query, id))
}

func (r *AppointmentRepo) scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var a domain.Appointment
	err := row.Scan(
		&a.ID,
		&a.Number,
		&a.PatientID,
		&a.DoctorID,
		&a.ServiceID,
		&a.ScheduleID,
		&a.AppointmentTime,
		&a.Duration,
		&a.Status,
		&a.Symptoms,
		&a.Notes,
		&a.CreatedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.PatientName,
		&a.DoctorName,
		&a.ServiceName,
		&a.Room,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения записи: %w", err)
	}
	return &a, nil
}

func (r *AppointmentRepo) Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error {
	setValues := make([]string, 0)
	args := make([]interface{}, 0)
	argID := 1

	if dto.Symptoms != nil {
		setValues = append(setValues, fmt.Sprintf("symptoms = $%d", argID))
		args = append(args, *dto.Symptoms)
		argID++
	}
	if dto.Notes != nil {
		setValues = append(setValues, fmt.Sprintf("notes = $%d", argID))
		args = append(args, *dto.Notes)
		argID++
	}

	if len(setValues) == 0 {
		return nil
	}

	setValues = append(setValues, fmt.Sprintf("updated_at = $%d", argID))
	args = append(args, time.Now())
	argID++

	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE appointments
		SET %s
		WHERE id = $%d
	`, strings.Join(setValues, ", "), argID)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления записи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE appointments SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления статуса записи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	where, args := appointmentConditions(filter)
	argID := len(args) + 1

	query := fmt.Sprintf(`
		SELECT %s %s %s
		ORDER BY a.appointment_time DESC
		LIMIT $%d OFFSET $%d
	`, appointmentColumns, appointmentJoins, where, argID, argID+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка записей: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		a, err := r.scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, *a)
	}

	return appointments, rows.Err()
}

func (r *AppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	where, args := appointmentConditions(filter)

	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM appointments a "+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта записей: %w", err)
	}

	return count, nil
}

// ListForDay возвращает записи врача за календарные сутки date.
// Пустой список статусов означает любые статусы.
func (r *AppointmentRepo) ListForDay(ctx context.Context, doctorID int64, date time.Time, statuses []domain.AppointmentStatus) ([]domain.Appointment, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	args := []interface{}{doctorID, dayStart, dayEnd}
	statusCond := ""
	if len(statuses) > 0 {
		placeholders := make([]string, 0, len(statuses))
		for _, s := range statuses {
			args = append(args, s)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		statusCond = " AND a.status IN (" + strings.Join(placeholders, ", ") + ")"
	}

	query := "SELECT " + appointmentColumns + appointmentJoins + `
		WHERE a.doctor_id = $1 AND a.appointment_time >= $2 AND a.appointment_time < $3
	` + statusCond + " ORDER BY a.appointment_time"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения записей за день: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		a, err := r.scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, *a)
	}

	return appointments, rows.Err()
}

// CountByTimeOfDay группирует записи по времени приёма:
// утро 9-12, день 12-17, вечер 17-20.
func (r *AppointmentRepo) CountByTimeOfDay(ctx context.Context, doctorID int64, from, to time.Time) (int, int, int, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE EXTRACT(HOUR FROM appointment_time) >= 9 AND EXTRACT(HOUR FROM appointment_time) < 12),
			COUNT(*) FILTER (WHERE EXTRACT(HOUR FROM appointment_time) >= 12 AND EXTRACT(HOUR FROM appointment_time) < 17),
			COUNT(*) FILTER (WHERE EXTRACT(HOUR FROM appointment_time) >= 17 AND EXTRACT(HOUR FROM appointment_time) < 20)
		FROM appointments
		WHERE doctor_id = $1 AND appointment_time >= $2 AND appointment_time < $3
	`

	var morning, day, evening int
	err := r.db.QueryRow(ctx, query, doctorID, from, to).Scan(&morning, &day, &evening)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("ошибка подсчёта записей по времени суток: %w", err)
	}

	return morning, day, evening, nil
}

func (r *AppointmentRepo) PopularServices(ctx context.Context, doctorID int64, from, to time.Time, limit int) ([]domain.ServiceCount, error) {
	query := `
		SELECT s.id, s.name, COUNT(*) AS cnt
		FROM appointments a
		JOIN services s ON s.id = a.service_id
		WHERE a.doctor_id = $1 AND a.appointment_time >= $2 AND a.appointment_time < $3
		GROUP BY s.id, s.name
		ORDER BY cnt DESC, s.name
		LIMIT $4
	`

	rows, err := r.db.Query(ctx, query, doctorID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения популярных услуг: %w", err)
	}
	defer rows.Close()

	result := make([]domain.ServiceCount, 0)
	for rows.Next() {
		var sc domain.ServiceCount
		if err := rows.Scan(&sc.ServiceID, &sc.ServiceName, &sc.Count); err != nil {
			return nil, fmt.Errorf("ошибка сканирования статистики услуг: %w", err)
		}
		result = append(result, sc)
	}

	return result, rows.Err()
}

func appointmentConditions(filter domain.AppointmentFilter) (string, []interface{}) {
	conditions := make([]string, 0)
	args := make([]interface{}, 0)
	argID := 1

	if filter.PatientID != nil {
		conditions = append(conditions, fmt.Sprintf("a.patient_id = $%d", argID))
		args = append(args, *filter.PatientID)
		argID++
	}
	if filter.DoctorID != nil {
		conditions = append(conditions, fmt.Sprintf("a.doctor_id = $%d", argID))
		args = append(args, *filter.DoctorID)
		argID++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("a.appointment_time >= $%d", argID))
		args = append(args, *filter.DateFrom)
		argID++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("a.appointment_time < $%d", argID))
		args = append(args, *filter.DateTo)
		argID++
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}
