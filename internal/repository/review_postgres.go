package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clinic/internal/domain"
)

type ReviewRepo struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) *ReviewRepo {
	return &ReviewRepo{
		db: db,
	}
}

const reviewColumns = `
	r.id, r.patient_id, r.doctor_id, r.rating, r.comment, r.is_published, r.created_at,
	pu.last_name || ' ' || pu.first_name AS patient_name,
	d.last_name || ' ' || d.first_name AS doctor_name
`

const reviewJoins = `
	FROM reviews r
	JOIN patients p ON p.id = r.patient_id
	JOIN users pu ON pu.id = p.user_id
	JOIN doctors d ON d.id = r.doctor_id
`

func (r *ReviewRepo) Create(ctx context.Context, patientID int64, dto domain.CreateReviewDTO) (int64, error) {
	query := `
		INSERT INTO reviews (patient_id, doctor_id, rating, comment, is_published, created_at)
		VALUES ($1, $2, $3, $4, false, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, patientID, dto.DoctorID, dto.Rating, dto.Comment, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания отзыва: %w", err)
	}

	return id, nil
}

func (r *ReviewRepo) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	query := "SELECT " + reviewColumns + reviewJoins + " WHERE r.id = $1"
	return r.scanReview(r.db.QueryRow(ctx, query, id))
}

func (r *ReviewRepo) scanReview(row pgx.Row) (*domain.Review, error) {
	var review domain.Review
	err := row.Scan(
		&review.ID,
		&review.PatientID,
		&review.DoctorID,
		&review.Rating,
		&review.Comment,
		&review.IsPublished,
		&review.CreatedAt,
		&review.PatientName,
		&review.DoctorName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения отзыва: %w", err)
	}
	return &review, nil
}

func (r *ReviewRepo) SetPublished(ctx context.Context, id int64, published bool) error {
	tag, err := r.db.Exec(ctx, "UPDATE reviews SET is_published = $1 WHERE id = $2", published, id)
	if err != nil {
		return fmt.Errorf("ошибка модерации отзыва: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ReviewRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM reviews WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("ошибка удаления отзыва: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ReviewRepo) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error) {
	conditions := make([]string, 0)
	args := make([]interface{}, 0)
	argID := 1

	if filter.DoctorID != nil {
		conditions = append(conditions, fmt.Sprintf("r.doctor_id = $%d", argID))
		args = append(args, *filter.DoctorID)
		argID++
	}
	if filter.OnlyPublished {
		conditions = append(conditions, "r.is_published")
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s %s %s
		ORDER BY r.created_at DESC
		LIMIT $%d OFFSET $%d
	`, reviewColumns, reviewJoins, where, argID, argID+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка отзывов: %w", err)
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		review, err := r.scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *review)
	}

	return reviews, rows.Err()
}

func (r *ReviewRepo) AverageRating(ctx context.Context, doctorID int64) (float64, error) {
	var rating float64
	err := r.db.QueryRow(ctx,
		"SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE doctor_id = $1 AND is_published",
		doctorID,
	).Scan(&rating)
	if err != nil {
		return 0, fmt.Errorf("ошибка вычисления рейтинга: %w", err)
	}

	return rating, nil
}
