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

type SpecializationRepo struct {
	db *pgxpool.Pool
}

func NewSpecializationRepository(db *pgxpool.Pool) *SpecializationRepo {
	return &SpecializationRepo{
		db: db,
	}
}

func (r *SpecializationRepo) Create(ctx context.Context, dto domain.CreateSpecializationDTO) (int64, error) {
	query := `
		INSERT INTO specializations (name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, dto.Name, dto.Description, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания специализации: %w", err)
	}

	return id, nil
}

func (r *SpecializationRepo) GetByID(ctx context.Context, id int64) (*domain.Specialization, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM specializations
		WHERE id = $1
	`

	var specialization domain.Specialization
	err := r.db.QueryRow(ctx, query, id).Scan(
		&specialization.ID,
		&specialization.Name,
		&specialization.Description,
		&specialization.CreatedAt,
		&specialization.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения специализации: %w", err)
	}

	return &specialization, nil
}

func (r *SpecializationRepo) Update(ctx context.Context, id int64, dto domain.UpdateSpecializationDTO) error {
	setValues := make([]string, 0)
	args := make([]interface{}, 0)
	argID := 1

	if dto.Name != nil {
		setValues = append(setValues, fmt.Sprintf("name = $%d", argID))
		args = append(args, *dto.Name)
		argID++
	}
	if dto.Description != nil {
		setValues = append(setValues, fmt.Sprintf("description = $%d", argID))
		args = append(args, *dto.Description)
		argID++
	}

	setValues = append(setValues, fmt.Sprintf("updated_at = $%d", argID))
	args = append(args, time.Now())
	argID++

	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE specializations
		SET %s
		WHERE id = $%d
	`, strings.Join(setValues, ", "), argID)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления специализации: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *SpecializationRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM specializations WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("ошибка удаления специализации: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *SpecializationRepo) List(ctx context.Context, filter domain.SpecializationFilter) ([]domain.Specialization, error) {
	where, args := specializationConditions(filter)
	argID := len(args) + 1

	query := fmt.Sprintf(`
		SELECT id, name, description, created_at, updated_at
		FROM specializations
		%s
		ORDER BY name
		LIMIT $%d OFFSET $%d
	`, where, argID, argID+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка специализаций: %w", err)
	}
	defer rows.Close()

	specializations := make([]domain.Specialization, 0)
	for rows.Next() {
		var s domain.Specialization
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования специализации: %w", err)
		}
		specializations = append(specializations, s)
	}

	return specializations, rows.Err()
}

func (r *SpecializationRepo) CountByFilter(ctx context.Context, filter domain.SpecializationFilter) (int, error) {
	where, args := specializationConditions(filter)

	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM specializations "+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта специализаций: %w", err)
	}

	return count, nil
}

func specializationConditions(filter domain.SpecializationFilter) (string, []interface{}) {
	if filter.Search == "" {
		return "", nil
	}
	return "WHERE name ILIKE $1", []interface{}{"%" + filter.Search + "%"}
}
