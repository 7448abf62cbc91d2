package rest

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic/internal/domain"
)

// @Summary Список врачей
// @Description Возвращает список врачей с фильтрацией по специализации и отделению
// @Tags Врачи
// @Produce json
// @Param specialization_id query int false "ID специализации"
// @Param department_id query int false "ID отделения"
// @Param search query string false "Поиск по ФИО"
// @Param limit query int false "Лимит (по умолчанию 20)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} paginatedResponse "Список врачей с пагинацией"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /doctors [get]
func (h *Handler) getDoctors(c *gin.Context) {
	filter := domain.DoctorFilter{
		OnlyActive: true,
		Search:     c.Query("search"),
	}

	if v := c.Query("specialization_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.SpecializationID = &id
		}
	}
	if v := c.Query("department_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.DepartmentID = &id
		}
	}

	filter.Limit, filter.Offset = parsePagination(c, 20)

	doctors, total, err := h.services.Doctor.List(c.Request.Context(), filter)
	if err != nil {
		h.serviceError(c, err, "ошибка получения списка врачей")
		return
	}

	page := filter.Offset/filter.Limit + 1

	paginatedSuccessResponse(c, doctors, total, page, filter.Limit)
}

// @Summary Получить врача по ID
// @Tags Врачи
// @Produce json
// @Param id path int true "ID врача"
// @Success 200 {object} domain.Doctor "Карточка врача"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Router /doctors/{id} [get]
func (h *Handler) getDoctorByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	doctor, err := h.services.Doctor.GetByID(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, err, "ошибка получения врача")
		return
	}

	successResponse(c, http.StatusOK, doctor)
}

// @Summary Профиль врача
// @Description Возвращает профиль врача текущего пользователя
// @Tags Врачи
// @Produce json
// @Success 200 {object} domain.Doctor "Профиль врача"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Профиль врача не найден"
// @Security ApiKeyAuth
// @Router /doctors/me [get]
func (h *Handler) getMyDoctorProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	doctor, err := h.services.Doctor.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		h.serviceError(c, err, "профиль врача не найден")
		return
	}

	successResponse(c, http.StatusOK, doctor)
}

// @Summary Свободные слоты врача
// @Description Возвращает свободные временные слоты врача на дату
// @Tags Врачи
// @Produce json
// @Param id path int true "ID врача"
// @Param date query string true "Дата (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{} "Список свободных слотов"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /doctors/{id}/free-slots [get]
func (h *Handler) getDoctorFreeSlots(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	date := c.Query("date")
	if date == "" {
		badRequestResponse(c, "необходимо указать дату")
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		badRequestResponse(c, "неверный формат даты, ожидается YYYY-MM-DD")
		return
	}

	slots, err := h.services.Schedule.FreeSlots(c.Request.Context(), id, date)
	if err != nil {
		h.serviceError(c, err, "ошибка получения свободных слотов")
		return
	}

	successResponse(c, http.StatusOK, gin.H{
		"doctor_id":  id,
		"date":       date,
		"free_slots": slots,
	})
}

// @Summary Календарь доступности врача
// @Description Возвращает свободные слоты врача на несколько дней вперёд
// @Tags Врачи
// @Produce json
// @Param id path int true "ID врача"
// @Param from query string false "Начальная дата (YYYY-MM-DD, по умолчанию сегодня)"
// @Param days query int false "Горизонт в днях (по умолчанию из конфигурации)"
// @Success 200 {object} successResponseBody "Календарь {дата, слоты}"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /doctors/{id}/available-days [get]
func (h *Handler) getDoctorAvailableDays(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	from := time.Now()
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			badRequestResponse(c, "неверный формат даты, ожидается YYYY-MM-DD")
			return
		}
		from = parsed
	}

	days := 0
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 60 {
			badRequestResponse(c, "горизонт должен быть от 1 до 60 дней")
			return
		}
		days = parsed
	}

	calendar, err := h.services.Schedule.AvailableDays(c.Request.Context(), id, from, days)
	if err != nil {
		h.serviceError(c, err, "ошибка получения календаря доступности")
		return
	}

	successResponse(c, http.StatusOK, calendar)
}

type createDoctorRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
	domain.CreateDoctorDTO
}

// @Summary Создать врача
// @Description Создает профиль врача для существующего пользователя
// @Tags Врачи
// @Accept json
// @Produce json
// @Param input body createDoctorRequest true "Данные врача"
// @Success 201 {object} map[string]interface{} "ID созданного врача"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Пользователь или специализация не найдены"
// @Security ApiKeyAuth
// @Router /doctors [post]
func (h *Handler) createDoctor(c *gin.Context) {
	var req createDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Doctor.Create(c.Request.Context(), req.UserID, req.CreateDoctorDTO)
	if err != nil {
		h.serviceError(c, err, "ошибка создания врача")
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Обновить врача
// @Tags Врачи
// @Accept json
// @Produce json
// @Param id path int true "ID врача"
// @Param input body domain.UpdateDoctorDTO true "Данные для обновления"
// @Success 200 {object} messageResponseType "Сообщение об успешном обновлении"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Security ApiKeyAuth
// @Router /doctors/{id} [put]
func (h *Handler) updateDoctor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var req domain.UpdateDoctorDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Doctor.Update(c.Request.Context(), id, req); err != nil {
		h.serviceError(c, err, "ошибка обновления врача")
		return
	}

	messageResponse(c, http.StatusOK, "данные врача успешно обновлены")
}

// @Summary Удалить врача
// @Tags Врачи
// @Produce json
// @Param id path int true "ID врача"
// @Success 200 {object} messageResponseType "Сообщение об успешном удалении"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Security ApiKeyAuth
// @Router /doctors/{id} [delete]
func (h *Handler) deleteDoctor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Doctor.Delete(c.Request.Context(), id); err != nil {
		h.serviceError(c, err, "ошибка удаления врача")
		return
	}

	messageResponse(c, http.StatusOK, "врач успешно удален")
}

// @Summary Загрузить фото врача
// @Tags Врачи
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID врача"
// @Param photo formData file true "Файл изображения"
// @Success 200 {object} messageResponseType "Сообщение об успешной загрузке"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /doctors/{id}/photo [post]
func (h *Handler) uploadDoctorPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	data, filename, ok := h.readUploadedFile(c, "photo")
	if !ok {
		return
	}

	if err := h.services.Doctor.UploadPhoto(c.Request.Context(), id, data, filename); err != nil {
		h.serviceError(c, err, "ошибка загрузки фото")
		return
	}

	messageResponse(c, http.StatusOK, "фото успешно загружено")
}

// @Summary Удалить фото врача
// @Tags Врачи
// @Produce json
// @Param id path int true "ID врача"
// @Success 200 {object} messageResponseType "Сообщение об успешном удалении"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /doctors/{id}/photo [delete]
func (h *Handler) deleteDoctorPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Doctor.DeletePhoto(c.Request.Context(), id); err != nil {
		h.serviceError(c, err, "ошибка удаления фото")
		return
	}

	messageResponse(c, http.StatusOK, "фото успешно удалено")
}

const maxUploadSize = 10 << 20 // 10 МБ

// readUploadedFile читает файл из multipart-формы. При ошибке сам пишет
// ответ и возвращает ok=false.
func (h *Handler) readUploadedFile(c *gin.Context, field string) ([]byte, string, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		badRequestResponse(c, "файл не передан")
		return nil, "", false
	}

	if fileHeader.Size > maxUploadSize {
		badRequestResponse(c, "файл слишком большой, максимум 10 МБ")
		return nil, "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("ошибка чтения загруженного файла", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "ошибка чтения файла")
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("ошибка чтения загруженного файла", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "ошибка чтения файла")
		return nil, "", false
	}

	return data, fileHeader.Filename, true
}
