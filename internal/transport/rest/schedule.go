package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic/internal/domain"
)

// @Summary Создать расписание
// @Description Создает рабочий день врача. Врач создает только своё расписание
// @Tags Расписание
// @Accept json
// @Produce json
// @Param input body domain.CreateScheduleDTO true "Данные для создания расписания"
// @Success 201 {object} map[string]interface{} "ID созданного расписания"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 409 {object} errorResponseBody "Расписание на дату уже существует"
// @Security ApiKeyAuth
// @Router /schedules [post]
func (h *Handler) createSchedule(c *gin.Context) {
	var req domain.CreateScheduleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	doctorID, ok := h.resolveDoctorID(c, req.DoctorID)
	if !ok {
		return
	}

	scheduleID, err := h.services.Schedule.Create(c.Request.Context(), doctorID, req)
	if err != nil {
		h.serviceError(c, err, "ошибка создания расписания")
		return
	}

	createdResponse(c, gin.H{"id": scheduleID})
}

// @Summary Получить расписание по ID
// @Tags Расписание
// @Produce json
// @Param id path int true "ID расписания"
// @Success 200 {object} domain.Schedule "Расписание"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 404 {object} errorResponseBody "Расписание не найдено"
// @Router /schedules/{id} [get]
func (h *Handler) getScheduleByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	schedule, err := h.services.Schedule.GetByID(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, err, "ошибка получения расписания")
		return
	}

	successResponse(c, http.StatusOK, schedule)
}

// @Summary Обновить расписание
// @Tags Расписание
// @Accept json
// @Produce json
// @Param id path int true "ID расписания"
// @Param input body domain.UpdateScheduleDTO true "Данные для обновления расписания"
// @Success 200 {object} messageResponseType "Сообщение об успешном обновлении"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Расписание не найдено"
// @Security ApiKeyAuth
// @Router /schedules/{id} [put]
func (h *Handler) updateSchedule(c *gin.Context) {
	schedule, ok := h.ownedSchedule(c)
	if !ok {
		return
	}

	var req domain.UpdateScheduleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Schedule.Update(c.Request.Context(), schedule.ID, req); err != nil {
		h.serviceError(c, err, "ошибка обновления расписания")
		return
	}

	messageResponse(c, http.StatusOK, "расписание успешно обновлено")
}

// @Summary Удалить расписание
// @Tags Расписание
// @Produce json
// @Param id path int true "ID расписания"
// @Success 200 {object} messageResponseType "Сообщение об успешном удалении"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Расписание не найдено"
// @Security ApiKeyAuth
// @Router /schedules/{id} [delete]
func (h *Handler) deleteSchedule(c *gin.Context) {
	schedule, ok := h.ownedSchedule(c)
	if !ok {
		return
	}

	if err := h.services.Schedule.Delete(c.Request.Context(), schedule.ID); err != nil {
		h.serviceError(c, err, "ошибка удаления расписания")
		return
	}

	messageResponse(c, http.StatusOK, "расписание успешно удалено")
}

// @Summary Переключить доступность дня
// @Description Открывает или закрывает запись на день, не трогая расписание
// @Tags Расписание
// @Produce json
// @Param id path int true "ID расписания"
// @Success 200 {object} domain.Schedule "Обновленное расписание"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Расписание не найдено"
// @Security ApiKeyAuth
// @Router /schedules/{id}/availability [patch]
func (h *Handler) toggleScheduleAvailability(c *gin.Context) {
	schedule, ok := h.ownedSchedule(c)
	if !ok {
		return
	}

	updated, err := h.services.Schedule.ToggleAvailability(c.Request.Context(), schedule.ID)
	if err != nil {
		h.serviceError(c, err, "ошибка переключения доступности")
		return
	}

	successResponse(c, http.StatusOK, updated)
}

type ensureScheduleRequest struct {
	DoctorID int64  `json:"doctor_id"`
	Date     string `json:"date" binding:"required"`
}

// @Summary Обеспечить расписание на дату
// @Description Возвращает расписание врача на дату, создавая день с параметрами по умолчанию, если он не настроен
// @Tags Расписание
// @Accept json
// @Produce json
// @Param input body ensureScheduleRequest true "Врач и дата"
// @Success 200 {object} domain.Schedule "Расписание"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Security ApiKeyAuth
// @Router /schedules/ensure [post]
func (h *Handler) ensureSchedule(c *gin.Context) {
	var req ensureScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		badRequestResponse(c, "неверный формат даты, ожидается YYYY-MM-DD")
		return
	}

	doctorID, ok := h.resolveDoctorID(c, req.DoctorID)
	if !ok {
		return
	}

	schedule, err := h.services.Schedule.EnsureSchedule(c.Request.Context(), doctorID, date)
	if err != nil {
		h.serviceError(c, err, "ошибка подготовки расписания")
		return
	}

	successResponse(c, http.StatusOK, schedule)
}

// @Summary Список расписаний
// @Description Возвращает расписания с фильтрацией по врачу и датам
// @Tags Расписание
// @Produce json
// @Param doctor_id query int false "ID врача"
// @Param date_from query string false "Начальная дата (YYYY-MM-DD)"
// @Param date_to query string false "Конечная дата (YYYY-MM-DD)"
// @Param limit query int false "Лимит (по умолчанию 31)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} paginatedResponse "Список расписаний с пагинацией"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Security ApiKeyAuth
// @Router /schedules [get]
func (h *Handler) getSchedules(c *gin.Context) {
	filter := domain.ScheduleFilter{}

	if v := c.Query("doctor_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.DoctorID = &id
		}
	}
	if v := c.Query("date_from"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateFrom = &parsed
		}
	}
	if v := c.Query("date_to"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateTo = &parsed
		}
	}

	filter.Limit, filter.Offset = parsePagination(c, 31)

	schedules, total, err := h.services.Schedule.List(c.Request.Context(), filter)
	if err != nil {
		h.serviceError(c, err, "ошибка получения списка расписаний")
		return
	}

	page := filter.Offset/filter.Limit + 1

	paginatedSuccessResponse(c, schedules, total, page, filter.Limit)
}

// resolveDoctorID выбирает врача, от имени которого выполняется операция:
// врач работает только со своим профилем, администратор с любым.
func (h *Handler) resolveDoctorID(c *gin.Context, requested int64) (int64, bool) {
	role, err := getUserRole(c)
	if err != nil {
		unauthorizedResponse(c)
		return 0, false
	}

	if role == domain.UserRoleAdmin {
		if requested == 0 {
			badRequestResponse(c, "необходимо указать ID врача")
			return 0, false
		}
		return requested, true
	}

	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return 0, false
	}

	doctor, err := h.services.Doctor.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("ошибка при получении данных врача", zap.Error(err))
		notFoundResponse(c, "профиль врача не найден")
		return 0, false
	}

	if requested != 0 && requested != doctor.ID {
		forbiddenResponse(c, "нет доступа к расписанию другого врача")
		return 0, false
	}

	return doctor.ID, true
}

// ownedSchedule загружает расписание из пути и проверяет право доступа.
func (h *Handler) ownedSchedule(c *gin.Context) (*domain.Schedule, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return nil, false
	}

	schedule, err := h.services.Schedule.GetByID(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, err, "ошибка получения расписания")
		return nil, false
	}

	if _, ok := h.resolveDoctorID(c, schedule.DoctorID); !ok {
		return nil, false
	}

	return schedule, true
}
