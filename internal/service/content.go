package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"clinic/internal/domain"
	"clinic/internal/repository"
	"clinic/internal/storage"
)

// ContentServiceImpl обслуживает публичный контент: новости, контакты,
// слайдер главной страницы и отзывы с модерацией.
type ContentServiceImpl struct {
	newsRepo    repository.NewsRepository
	contactRepo repository.ContactRepository
	sliderRepo  repository.SliderRepository
	reviewRepo  repository.ReviewRepository
	fileStorage storage.FileStorage
	logger      *zap.Logger
}

func NewContentService(
	newsRepo repository.NewsRepository,
	contactRepo repository.ContactRepository,
	sliderRepo repository.SliderRepository,
	reviewRepo repository.ReviewRepository,
	fileStorage storage.FileStorage,
	logger *zap.Logger,
) *ContentServiceImpl {
	return &ContentServiceImpl{
		newsRepo:    newsRepo,
		contactRepo: contactRepo,
		sliderRepo:  sliderRepo,
		reviewRepo:  reviewRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (s *ContentServiceImpl) CreateNews(ctx context.Context, authorID int64, dto domain.CreateNewsDTO) (int64, error) {
	slug := slugify(dto.Title)
	if slug == "" {
		return 0, errors.New("не удалось построить адрес новости из заголовка")
	}

	// Слаг уникален: при совпадении добавляем числовой суффикс.
	base := slug
	for i := 2; ; i++ {
		if _, err := s.newsRepo.GetBySlug(ctx, slug); errors.Is(err, domain.ErrNotFound) {
			break
		} else if err != nil {
			return 0, err
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}

	return s.newsRepo.Create(ctx, authorID, dto, slug)
}

func (s *ContentServiceImpl) GetNews(ctx context.Context, id int64) (*domain.News, error) {
	return s.newsRepo.GetByID(ctx, id)
}

func (s *ContentServiceImpl) GetNewsBySlug(ctx context.Context, slug string) (*domain.News, error) {
	return s.newsRepo.GetBySlug(ctx, slug)
}

// UpdateNews проставляет published_at при первой публикации.
func (s *ContentServiceImpl) UpdateNews(ctx context.Context, id int64, dto domain.UpdateNewsDTO) error {
	var publishedAt *time.Time
	if dto.IsPublished != nil && *dto.IsPublished {
		news, err := s.newsRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if news.PublishedAt == nil {
			now := time.Now()
			publishedAt = &now
		}
	}

	return s.newsRepo.Update(ctx, id, dto, publishedAt)
}

func (s *ContentServiceImpl) UploadNewsImage(ctx context.Context, id int64, image []byte, filename string) error {
	if s.fileStorage == nil {
		return errors.New("файловое хранилище не настроено")
	}

	news, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	url, err := s.fileStorage.UploadFile(ctx, image, storage.PrefixNews, filename)
	if err != nil {
		s.logger.Error("ошибка загрузки изображения новости", zap.Int64("newsId", id), zap.Error(err))
		return errors.New("ошибка загрузки изображения")
	}

	if news.ImageURL != "" {
		if err := s.fileStorage.DeleteFile(ctx, news.ImageURL); err != nil {
			s.logger.Warn("не удалось удалить старое изображение", zap.String("url", news.ImageURL), zap.Error(err))
		}
	}

	return s.newsRepo.UpdateImage(ctx, id, url)
}

func (s *ContentServiceImpl) DeleteNews(ctx context.Context, id int64) error {
	return s.newsRepo.Delete(ctx, id)
}

func (s *ContentServiceImpl) ListNews(ctx context.Context, filter domain.NewsFilter) ([]domain.News, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	items, err := s.newsRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.newsRepo.CountByFilter(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (s *ContentServiceImpl) CreateContact(ctx context.Context, dto domain.CreateContactDTO) (int64, error) {
	return s.contactRepo.Create(ctx, dto)
}

func (s *ContentServiceImpl) UpdateContact(ctx context.Context, id int64, dto domain.UpdateContactDTO) error {
	return s.contactRepo.Update(ctx, id, dto)
}

func (s *ContentServiceImpl) DeleteContact(ctx context.Context, id int64) error {
	return s.contactRepo.Delete(ctx, id)
}

func (s *ContentServiceImpl) ListContacts(ctx context.Context, onlyActive bool) ([]domain.Contact, error) {
	return s.contactRepo.List(ctx, onlyActive)
}

func (s *ContentServiceImpl) CreateSlide(ctx context.Context, dto domain.CreateSlideDTO, image []byte, filename string) (int64, error) {
	if s.fileStorage == nil {
		return 0, errors.New("файловое хранилище не настроено")
	}

	url, err := s.fileStorage.UploadFile(ctx, image, storage.PrefixSlider, filename)
	if err != nil {
		s.logger.Error("ошибка загрузки изображения слайда", zap.Error(err))
		return 0, errors.New("ошибка загрузки изображения")
	}

	return s.sliderRepo.Create(ctx, dto, url)
}

func (s *ContentServiceImpl) UpdateSlide(ctx context.Context, id int64, dto domain.UpdateSlideDTO) error {
	return s.sliderRepo.Update(ctx, id, dto)
}

func (s *ContentServiceImpl) DeleteSlide(ctx context.Context, id int64) error {
	slide, err := s.sliderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if s.fileStorage != nil && slide.ImageURL != "" {
		if err := s.fileStorage.DeleteFile(ctx, slide.ImageURL); err != nil {
			s.logger.Warn("не удалось удалить изображение слайда", zap.String("url", slide.ImageURL), zap.Error(err))
		}
	}

	return s.sliderRepo.Delete(ctx, id)
}

func (s *ContentServiceImpl) ListSlides(ctx context.Context, onlyActive bool) ([]domain.Slide, error) {
	return s.sliderRepo.List(ctx, onlyActive)
}

func (s *ContentServiceImpl) CreateReview(ctx context.Context, patientID int64, dto domain.CreateReviewDTO) (int64, error) {
	return s.reviewRepo.Create(ctx, patientID, dto)
}

func (s *ContentServiceImpl) PublishReview(ctx context.Context, id int64, published bool) error {
	return s.reviewRepo.SetPublished(ctx, id, published)
}

func (s *ContentServiceImpl) DeleteReview(ctx context.Context, id int64) error {
	return s.reviewRepo.Delete(ctx, id)
}

func (s *ContentServiceImpl) ListReviews(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.reviewRepo.List(ctx, filter)
}

var translit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

// slugify строит URL-адрес из заголовка: транслитерация кириллицы,
// остальное в нижний регистр, разделители в дефисы.
func slugify(title string) string {
	var b strings.Builder
	prevDash := true

	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		case translit[r] != "":
			b.WriteString(translit[r])
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
