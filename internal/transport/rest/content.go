package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic/internal/domain"
)

// @Summary Список новостей
// @Tags Контент
// @Produce json
// @Param search query string false "Поиск по заголовку"
// @Param limit query int false "Лимит (по умолчанию 20)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} paginatedResponse "Список опубликованных новостей"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /news [get]
func (h *Handler) getNewsList(c *gin.Context) {
	filter := domain.NewsFilter{
		OnlyPublished: true,
		Search:        c.Query("search"),
	}

	// Администратор видит и черновики.
	if role, err := getUserRole(c); err == nil && role == domain.UserRoleAdmin {
		filter.OnlyPublished = c.DefaultQuery("only_published", "false") == "true"
	}

	filter.Limit, filter.Offset = parsePagination(c, 20)

	items, total, err := h.services.Content.ListNews(c.Request.Context(), filter)
	if err != nil {
		h.serviceError(c, err, "ошибка получения списка новостей")
		return
	}

	page := filter.Offset/filter.Limit + 1

	paginatedSuccessResponse(c, items, total, page, filter.Limit)
}

// @Summary Получить новость по ID
// @Tags Контент
// @Produce json
// @Param id path int true "ID новости"
// @Success 200 {object} domain.News "Новость"
// @Failure 404 {object} errorResponseBody "Новость не найдена"
// @Router /news/{id} [get]
func (h *Handler) getNewsByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	news, err := h.services.Content.GetNews(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, err, "ошибка получения новости")
		return
	}

	successResponse(c, http.StatusOK, news)
}

// @Summary Получить новость по адресу
// @Tags Контент
// @Produce json
// @Param slug path string true "URL-адрес новости"
// @Success 200 {object} domain.News "Новость"
// @Failure 404 {object} errorResponseBody "Новость не найдена"
// @Router /news/slug/{slug} [get]
func (h *Handler) getNewsBySlug(c *gin.Context) {
	news, err := h.services.Content.GetNewsBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.serviceError(c, err, "ошибка получения новости")
		return
	}

	successResponse(c, http.StatusOK, news)
}

// @Summary Создать новость
// @Tags Контент
// @Accept json
// @Produce json
// @Param input body domain.CreateNewsDTO true "Данные новости"
// @Success 201 {object} map[string]interface{} "ID созданной новости"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Security ApiKeyAuth
// @Router /news [post]
func (h *Handler) createNews(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.CreateNewsDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Content.CreateNews(c.Request.Context(), userID, req)
	if err != nil {
		h.serviceError(c, err, "ошибка создания новости")
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Обновить новость
// @Tags Контент
// @Accept json
// @Produce json
// @Param id path int true "ID новости"
// @Param input body domain.UpdateNewsDTO true "Данные для обновления"
// @Success 200 {object} messageResponseType "Сообщение об успешном обновлении"
// @Failure 404 {object} errorResponseBody "Новость не найдена"
// @Security ApiKeyAuth
// @Router /news/{id} [put]
func (h *Handler) updateNews(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var req domain.UpdateNewsDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Content.UpdateNews(c.Request.Context(), id, req); err != nil {
		h.serviceError(c, err, "ошибка обновления новости")
		return
	}

	messageResponse(c, http.StatusOK, "новость успешно обновлена")
}

// @Summary Загрузить изображение новости
// @Tags Контент
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID новости"
// @Param image formData file true "Файл изображения"
// @Success 200 {object} messageResponseType "Сообщение об успешной загрузке"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Security ApiKeyAuth
// @Router /news/{id}/image [post]
func (h *Handler) uploadNewsImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	data, filename, ok := h.readUploadedFile(c, "image")
	if !ok {
		return
	}

	if err := h.services.Content.UploadNewsImage(c.Request.Context(), id, data, filename); err != nil {
		h.serviceError(c, err, "ошибка загрузки изображения")
		return
	}

	messageResponse(c, http.StatusOK, "изображение успешно загружено")
}

// @Summary Удалить новость
// @Tags Контент
// @Produce json
// @Param id path int true "ID новости"
// @Success 200 {object} messageResponseType "Сообщение об успешном удалении"
// @Failure 404 {object} errorResponseBody "Новость не найдена"
// @Security ApiKeyAuth
// @Router /news/{id} [delete]
func (h *Handler) deleteNews(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Content.DeleteNews(c.Request.Context(), id); err != nil {
		h.serviceError(c, err, "ошибка удаления новости")
		return
	}

	messageResponse(c, http.StatusOK, "новость успешно удалена")
}

// @Summary Контакты клиники
// @Tags Контент
// @Produce json
// @Success 200 {object} successResponseBody "Список контактов"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /contacts [get]
func (h *Handler) getContacts(c *gin.Context) {
	onlyActive := true
	if role, err := getUserRole(c); err == nil && role == domain.UserRoleAdmin {
		onlyActive = false
	}

	contacts, err := h.services.Content.ListContacts(c.Request.Context(), onlyActive)
	if err != nil {
		h.serviceError(c, err, "ошибка получения контактов")
		return
	}

	successResponse(c, http.StatusOK, contacts)
}

// @Summary Создать контакт
// @Tags Контент
// @Accept json
// @Produce json
// @Param input body domain.CreateContactDTO true "Данные контакта"
// @Success 201 {object} map[string]interface{} "ID созданного контакта"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Security ApiKeyAuth
// @Router /contacts [post]
func (h *Handler) createContact(c *gin.Context) {
	var req domain.CreateContactDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Content.CreateContact(c.Request.Context(), req)
	if err != nil {
		h.serviceError(c, err, "ошибка создания контакта")
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Обновить контакт
// @Tags Контент
// @Accept json
// @Produce json
// @Param id path int true "ID контакта"
// @Param input body domain.UpdateContactDTO true "Данные для обновления"
// @Success 200 {object} messageResponseType "Сообщение об успешном обновлении"
// @Failure 404 {object} errorResponseBody "Контакт не найден"
// @Security ApiKeyAuth
// @Router /contacts/{id} [put]
func (h *Handler) updateContact(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var req domain.UpdateContactDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Content.UpdateContact(c.Request.Context(), id, req); err != nil {
		h.serviceError(c, err, "ошибка обновления контакта")
		return
	}

	messageResponse(c, http.StatusOK, "контакт успешно обновлен")
}

// @Summary Удалить контакт
// @Tags Контент
// @Produce json
// @Param id path int true "ID контакта"
// @Success 200 {object} messageResponseType "Сообщение об успешном удалении"
// @Failure 404 {object} errorResponseBody "Контакт не найден"
// @Security ApiKeyAuth
// @Router /contacts/{id} [delete]
func (h *Handler) deleteContact(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Content.DeleteContact(c.Request.Context(), id); err != nil {
		h.serviceError(c, err, "ошибка удаления контакта")
		return
	}

	messageResponse(c, http.StatusOK, "контакт успешно удален")
}

// @Summary Слайды главной страницы
// @Tags Контент
// @Produce json
// @Success 200 {object} successResponseBody "Список активных слайдов"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /slider [get]
func (h *Handler) getSlides(c *gin.Context) {
	onlyActive := true
	if role, err := getUserRole(c); err == nil && role == domain.UserRoleAdmin {
		onlyActive = false
	}

	slides, err := h.services.Content.ListSlides(c.Request.Context(), onlyActive)
	if err != nil {
		h.serviceError(c, err, "ошибка получения слайдов")
		return
	}

	successResponse(c, http.StatusOK, slides)
}

// @Summary Создать слайд
// @Description Создает слайд с изображением, поля передаются формой
// @Tags Контент
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Заголовок"
// @Param subtitle formData string false "Подзаголовок"
// @Param button_text formData string false "Текст кнопки"
// @Param button_link formData string false "Ссылка кнопки"
// @Param image formData file true "Файл изображения"
// @Success 201 {object} map[string]interface{} "ID созданного слайда"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Security ApiKeyAuth
// @Router /slider [post]
func (h *Handler) createSlide(c *gin.Context) {
	dto := domain.CreateSlideDTO{
		Title:      c.PostForm("title"),
		Subtitle:   c.PostForm("subtitle"),
		ButtonText: c.PostForm("button_text"),
		ButtonLink: c.PostForm("button_link"),
	}
	if dto.Title == "" {
		badRequestResponse(c, "необходимо указать заголовок слайда")
		return
	}

	data, filename, ok := h.readUploadedFile(c, "image")
	if !ok {
		return
	}

	id, err := h.services.Content.CreateSlide(c.Request.Context(), dto, data, filename)
	if err != nil {
		h.serviceError(c, err, "ошибка создания слайда")
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Обновить слайд
// @Tags Контент
// @Accept json
// @Produce json
// @Param id path int true "ID слайда"
// @Param input body domain.UpdateSlideDTO true "Данные для обновления"
// @Success 200 {object} messageResponseType "Сообщение об успешном обновлении"
// @Failure 404 {object} errorResponseBody "Слайд не найден"
// @Security ApiKeyAuth
// @Router /slider/{id} [put]
func (h *Handler) updateSlide(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var req domain.UpdateSlideDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Content.UpdateSlide(c.Request.Context(), id, req); err != nil {
		h.serviceError(c, err, "ошибка обновления слайда")
		return
	}

	messageResponse(c, http.StatusOK, "слайд успешно обновлен")
}

// @Summary Удалить слайд
// @Tags Контент
// @Produce json
// @Param id path int true "ID слайда"
// @Success 200 {object} messageResponseType "Сообщение об успешном удалении"
// @Failure 404 {object} errorResponseBody "Слайд не найден"
// @Security ApiKeyAuth
// @Router /slider/{id} [delete]
func (h *Handler) deleteSlide(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Content.DeleteSlide(c.Request.Context(), id); err != nil {
		h.serviceError(c, err, "ошибка удаления слайда")
		return
	}

	messageResponse(c, http.StatusOK, "слайд успешно удален")
}

// @Summary Список отзывов
// @Tags Отзывы
// @Produce json
// @Param doctor_id query int false "ID врача"
// @Param limit query int false "Лимит (по умолчанию 20)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} successResponseBody "Опубликованные отзывы"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /reviews [get]
func (h *Handler) getReviews(c *gin.Context) {
	filter := domain.ReviewFilter{OnlyPublished: true}

	if v := c.Query("doctor_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.DoctorID = &id
		}
	}

	if role, err := getUserRole(c); err == nil && role == domain.UserRoleAdmin {
		filter.OnlyPublished = c.DefaultQuery("only_published", "false") == "true"
	}

	filter.Limit, filter.Offset = parsePagination(c, 20)

	reviews, err := h.services.Content.ListReviews(c.Request.Context(), filter)
	if err != nil {
		h.serviceError(c, err, "ошибка получения отзывов")
		return
	}

	successResponse(c, http.StatusOK, reviews)
}

// @Summary Оставить отзыв
// @Description Создает отзыв о враче, отзыв попадает на модерацию
// @Tags Отзывы
// @Accept json
// @Produce json
// @Param input body domain.CreateReviewDTO true "Данные отзыва"
// @Success 201 {object} map[string]interface{} "ID созданного отзыва"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 404 {object} errorResponseBody "Профиль пациента не найден"
// @Security ApiKeyAuth
// @Router /reviews [post]
func (h *Handler) createReview(c *gin.Context) {
	patient, ok := h.currentPatient(c)
	if !ok {
		return
	}

	var req domain.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Content.CreateReview(c.Request.Context(), patient.ID, req)
	if err != nil {
		h.serviceError(c, err, "ошибка создания отзыва")
		return
	}

	createdResponse(c, gin.H{"id": id})
}

type publishReviewRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// @Summary Модерация отзыва
// @Description Публикует или скрывает отзыв
// @Tags Отзывы
// @Accept json
// @Produce json
// @Param id path int true "ID отзыва"
// @Param input body publishReviewRequest true "Флаг публикации"
// @Success 200 {object} messageResponseType "Сообщение об успешном обновлении"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 404 {object} errorResponseBody "Отзыв не найден"
// @Security ApiKeyAuth
// @Router /reviews/{id}/publish [put]
func (h *Handler) publishReview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var req publishReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Content.PublishReview(c.Request.Context(), id, *req.Published); err != nil {
		h.serviceError(c, err, "ошибка модерации отзыва")
		return
	}

	messageResponse(c, http.StatusOK, "отзыв успешно обновлен")
}

// @Summary Удалить отзыв
// @Tags Отзывы
// @Produce json
// @Param id path int true "ID отзыва"
// @Success 200 {object} messageResponseType "Сообщение об успешном удалении"
// @Failure 404 {object} errorResponseBody "Отзыв не найден"
// @Security ApiKeyAuth
// @Router /reviews/{id} [delete]
func (h *Handler) deleteReview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Content.DeleteReview(c.Request.Context(), id); err != nil {
		h.serviceError(c, err, "ошибка удаления отзыва")
		return
	}

	messageResponse(c, http.StatusOK, "отзыв успешно удален")
}
