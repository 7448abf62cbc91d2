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

type NewsRepo struct {
	db *pgxpool.Pool
}

func NewNewsRepository(db *pgxpool.Pool) *NewsRepo {
	return &NewsRepo{
		db: db,
	}
}

const newsColumns = `
	n.id, n.title, n.slug, n.preview, n.content, n.image_url, n.author_id,
	n.is_published, n.published_at, n.created_at, n.updated_at,
	u.last_name || ' ' || u.first_name AS author_name
`

const newsJoins = `
	FROM news n
	JOIN users u ON u.id = n.author_id
`

func (r *NewsRepo) Create(ctx context.Context, authorID int64, dto domain.CreateNewsDTO, slug string) (int64, error) {
	query := `
		INSERT INTO news (title, slug, preview, content, author_id, is_published, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id
	`

	now := time.Now()
	var publishedAt *time.Time
	if dto.IsPublished {
		publishedAt = &now
	}

	var id int64
	err := r.db.QueryRow(ctx, query,
		dto.Title,
		slug,
		dto.Preview,
		dto.Content,
		authorID,
		dto.IsPublished,
		publishedAt,
		now,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания новости: %w", err)
	}

	return id, nil
}

func (r *NewsRepo) GetByID(ctx context.Context, id int64) (*domain.News, error) {
	query := "SELECT " + newsColumns + newsJoins + " WHERE n.id = $1"
	return r.scanNews(r.db.QueryRow(ctx, query, id))
}

func (r *NewsRepo) GetBySlug(ctx context.Context, slug string) (*domain.News, error) {
	query := "SELECT " + newsColumns + newsJoins + " WHERE n.slug = $1"
	return r.scanNews(r.db.QueryRow(ctx, query, slug))
}

func (r *NewsRepo) scanNews(row pgx.Row) (*domain.News, error) {
	var n domain.News
	err := row.Scan(
		&n.ID,
		&n.Title,
		&n.Slug,
		&n.Preview,
		&n.Content,
		&n.ImageURL,
		&n.AuthorID,
		&n.IsPublished,
		&n.PublishedAt,
		&n.CreatedAt,
		&n.UpdatedAt,
		&n.AuthorName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения новости: %w", err)
	}
	return &n, nil
}

func (r *NewsRepo) Update(ctx context.Context, id int64, dto domain.UpdateNewsDTO, publishedAt *time.Time) error {
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
	if dto.Preview != nil {
		add("preview", *dto.Preview)
	}
	if dto.Content != nil {
		add("content", *dto.Content)
	}
	if dto.IsPublished != nil {
		add("is_published", *dto.IsPublished)
	}
	if publishedAt != nil {
		add("published_at", *publishedAt)
	}

	if len(setValues) == 0 {
		return nil
	}

	add("updated_at", time.Now())
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE news
		SET %s
		WHERE id = $%d
	`, strings.Join(setValues, ", "), argID)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления новости: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *NewsRepo) UpdateImage(ctx context.Context, id int64, imageURL string) error {
	tag, err := r.db.Exec(ctx, "UPDATE news SET image_url = $1 WHERE id = $2", imageURL, id)
	if err != nil {
		return fmt.Errorf("ошибка обновления изображения новости: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *NewsRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM news WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("ошибка удаления новости: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *NewsRepo) List(ctx context.Context, filter domain.NewsFilter) ([]domain.News, error) {
	where, args := newsConditions(filter)
	argID := len(args) + 1

	query := fmt.Sprintf(`
		SELECT %s %s %s
		ORDER BY COALESCE(n.published_at, n.created_at) DESC
		LIMIT $%d OFFSET $%d
	`, newsColumns, newsJoins, where, argID, argID+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка новостей: %w", err)
	}
	defer rows.Close()

	news := make([]domain.News, 0)
	for rows.Next() {
		n, err := r.scanNews(rows)
		if err != nil {
			return nil, err
		}
		news = append(news, *n)
	}

	return news, rows.Err()
}

func (r *NewsRepo) CountByFilter(ctx context.Context, filter domain.NewsFilter) (int, error) {
	where, args := newsConditions(filter)

	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM news n "+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта новостей: %w", err)
	}

	return count, nil
}

func newsConditions(filter domain.NewsFilter) (string, []interface{}) {
	conditions := make([]string, 0)
	args := make([]interface{}, 0)
	argID := 1

	if filter.OnlyPublished {
		conditions = append(conditions, "n.is_published")
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(n.title ILIKE $%d OR n.preview ILIKE $%d)", argID, argID))
		args = append(args, "%"+filter.Search+"%")
		argID++
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}
