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

type SliderRepo struct {
	db *pgxpool.Pool
}

func NewSliderRepository(db *pgxpool.Pool) *SliderRepo {
	return &SliderRepo{
		db: db,
	}
}

func (r *SliderRepo) Create(ctx context.Context, dto domain.CreateSlideDTO, imageURL string) (int64, error) {
	query := `
		INSERT INTO slides (title, subtitle, image_url, button_text, button_link, is_active, display_order, created_at)
		VALUES ($1, $2, $3, $4, $5, true, 0, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		dto.Title, dto.Subtitle, imageURL, dto.ButtonText, dto.ButtonLink, time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания слайда: %w", err)
	}

	return id, nil
}

func (r *SliderRepo) GetByID(ctx context.Context, id int64) (*domain.Slide, error) {
	query := `
		SELECT id, title, subtitle, image_url, button_text, button_link, is_active, display_order, created_at
		FROM slides
		WHERE id = $1
	`

	var s domain.Slide
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Title, &s.Subtitle, &s.ImageURL, &s.ButtonText, &s.ButtonLink,
		&s.IsActive, &s.DisplayOrder, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения слайда: %w", err)
	}

	return &s, nil
}

func (r *SliderRepo) Update(ctx context.Context, id int64, dto domain.UpdateSlideDTO) error {
	setValues := make([]string, 0)
	args := make([]interface{}, 0)
	argID := 1

	add := func(column string, value interface{}) {
		setValues = append(setValues, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if dto.Title != nil {
		add("title", *dto.Title)
	}
	if dto.Subtitle != nil {
		add("subtitle", *dto.Subtitle)
	}
	if dto.ButtonText != nil {
		add("button_text", *dto.ButtonText)
	}
	if dto.ButtonLink != nil {
		add("button_link", *dto.ButtonLink)
	}
	if dto.IsActive != nil {
		add("is_active", *dto.IsActive)
	}
	if dto.DisplayOrder != nil {
		add("display_order", *dto.DisplayOrder)
	}

	if len(setValues) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE slides
		SET %s
		WHERE id = $%d
	`, strings.Join(setValues, ", "), argID)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления слайда: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *SliderRepo) UpdateImage(ctx context.Context, id int64, imageURL string) error {
	tag, err := r.db.Exec(ctx, "UPDATE slides SET image_url = $1 WHERE id = $2", imageURL, id)
	if err != nil {
		return fmt.Errorf("ошибка обновления изображения слайда: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *SliderRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM slides WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("ошибка удаления слайда: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *SliderRepo) List(ctx context.Context, onlyActive bool) ([]domain.Slide, error) {
	query := `
		SELECT id, title, subtitle, image_url, button_text, button_link, is_active, display_order, created_at
		FROM slides
	`
	if onlyActive {
		query += " WHERE is_active"
	}
	query += " ORDER BY display_order, id"

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка слайдов: %w", err)
	}
	defer rows.Close()

	slides := make([]domain.Slide, 0)
	for rows.Next() {
		var s domain.Slide
		err := rows.Scan(
			&s.ID, &s.Title, &s.Subtitle, &s.ImageURL, &s.ButtonText, &s.ButtonLink,
			&s.IsActive, &s.DisplayOrder, &s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования слайда: %w", err)
		}
		slides = append(slides, s)
	}

	return slides, rows.Err()
}
