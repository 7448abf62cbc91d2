package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clinic/internal/domain"
)

type BookingDraftRepo struct {
	db *pgxpool.Pool
}

func NewBookingDraftRepository(db *pgxpool.Pool) *BookingDraftRepo {
	return &BookingDraftRepo{
		db: db,
	}
}

func (r *BookingDraftRepo) Create(ctx context.Context, draft domain.BookingDraft) error {
	query := `
		INSERT INTO booking_drafts (
			token, patient_id, specialization_id, doctor_id, service_id,
			date, time, symptoms, expires_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
	`

	_, err := r.db.Exec(ctx, query,
		draft.Token,
		draft.PatientID,
		draft.SpecializationID,
		draft.DoctorID,
		draft.ServiceID,
		draft.Date,
		draft.Time,
		draft.Symptoms,
		draft.ExpiresAt,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("ошибка создания черновика записи: %w", err)
	}

	return nil
}

func (r *BookingDraftRepo) GetByToken(ctx context.Context, token string) (*domain.BookingDraft, error) {
	query := `
		SELECT id, token, patient_id, specialization_id, doctor_id, service_id,
			date, time, symptoms, expires_at, created_at, updated_at
		FROM booking_drafts
		WHERE token = $1
	`

	var d domain.BookingDraft
	err := r.db.QueryRow(ctx, query, token).Scan(
		&d.ID,
		&d.Token,
		&d.PatientID,
		&d.SpecializationID,
		&d.DoctorID,
		&d.ServiceID,
		&d.Date,
		&d.Time,
		&d.Symptoms,
		&d.ExpiresAt,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения черновика записи: %w", err)
	}

	return &d, nil
}

func (r *BookingDraftRepo) Update(ctx context.Context, draft domain.BookingDraft) error {
	query := `
		UPDATE booking_drafts
		SET patient_id = $1, specialization_id = $2, doctor_id = $3, service_id = $4,
			date = $5, time = $6, symptoms = $7, updated_at = $8
		WHERE token = $9
	`

	tag, err := r.db.Exec(ctx, query,
		draft.PatientID,
		draft.SpecializationID,
		draft.DoctorID,
		draft.ServiceID,
		draft.Date,
		draft.Time,
		draft.Symptoms,
		time.Now(),
		draft.Token,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления черновика записи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *BookingDraftRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, "DELETE FROM booking_drafts WHERE token = $1", token)
	if err != nil {
		return fmt.Errorf("ошибка удаления черновика записи: %w", err)
	}
	return nil
}

func (r *BookingDraftRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM booking_drafts WHERE expires_at <= $1", now)
	if err != nil {
		return 0, fmt.Errorf("ошибка удаления устаревших черновиков: %w", err)
	}
	return tag.RowsAffected(), nil
}
