package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic/internal/domain"
)

// @Summary Создать запись на приём
// @Description Создает запись в статусе pending. Пациент записывает только себя
// @Tags Записи
// @Accept json
// @Produce json
// @Param input body domain.CreateAppointmentDTO true "Данные записи"
// @Success 201 {object} domain.Appointment "Созданная запись с номером"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 409 {object} errorResponseBody "Слот занят или недоступен"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /appointments [post]
func (h *Handler) createAppointment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.CreateAppointmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	role, _ := getUserRole(c)
	if role == domain.UserRolePatient {
		patient, err := h.services.Patient.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			notFoundResponse(c, "профиль пациента не найден, заполните медицинскую карту")
			return
		}
		req.PatientID = patient.ID
	} else if req.PatientID == 0 {
		badRequestResponse(c, "необходимо указать ID пациента")
		return
	}

	appointment, err := h.services.Appointment.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.serviceError(c, err, "ошибка создания записи")
		return
	}

	createdResponse(c, appointment)
}

// @Summary Получить запись по ID
// @Tags Записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} domain.Appointment "Запись на приём"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /appointments/{id} [get]
func (h *Handler) getAppointmentByID(c *gin.Context) {
	appointment, ok := h.accessibleAppointment(c)
	if !ok {
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Обновить запись
// @Description Обновляет жалобы и заметки записи
// @Tags Записи
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param input body domain.UpdateAppointmentDTO true "Данные для обновления"
// @Success 200 {object} messageResponseType "Сообщение об успешном обновлении"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /appointments/{id} [put]
func (h *Handler) updateAppointment(c *gin.Context) {
	appointment, ok := h.accessibleAppointment(c)
	if !ok {
		return
	}

	var req domain.UpdateAppointmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	// Заметки ведёт только персонал.
	role, _ := getUserRole(c)
	if req.Notes != nil && role == domain.UserRolePatient {
		forbiddenResponse(c)
		return
	}

	if err := h.services.Appointment.Update(c.Request.Context(), appointment.ID, req); err != nil {
		h.serviceError(c, err, "ошибка обновления записи")
		return
	}

	messageResponse(c, http.StatusOK, "запись успешно обновлена")
}

// @Summary Сменить статус записи
// @Description Подтверждение, завершение, неявка или отмена. Только для персонала
// @Tags Записи
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param input body domain.ChangeStatusDTO true "Новый статус"
// @Success 200 {object} messageResponseType "Сообщение об успешной смене"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 409 {object} errorResponseBody "Недопустимый переход статуса"
// @Security ApiKeyAuth
// @Router /appointments/{id}/status [put]
func (h *Handler) changeAppointmentStatus(c *gin.Context) {
	role, err := getUserRole(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}
	if role == domain.UserRolePatient {
		forbiddenResponse(c, "пациенту доступна только отмена записи")
		return
	}

	appointment, ok := h.accessibleAppointment(c)
	if !ok {
		return
	}

	var req domain.ChangeStatusDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Appointment.ChangeStatus(c.Request.Context(), appointment.ID, req.Status, role); err != nil {
		h.serviceError(c, err, "ошибка смены статуса записи")
		return
	}

	messageResponse(c, http.StatusOK, "статус записи успешно изменен")
}

// @Summary Отменить запись
// @Description Пациент отменяет свою будущую запись, персонал любую активную
// @Tags Записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} messageResponseType "Сообщение об успешной отмене"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 409 {object} errorResponseBody "Запись нельзя отменить"
// @Security ApiKeyAuth
// @Router /appointments/{id} [delete]
func (h *Handler) cancelAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	role, _ := getUserRole(c)
	if role == domain.UserRolePatient {
		patient, err := h.services.Patient.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			notFoundResponse(c, "профиль пациента не найден")
			return
		}
		if err := h.services.Appointment.CancelByPatient(c.Request.Context(), id, patient.ID); err != nil {
			h.serviceError(c, err, "ошибка отмены записи")
			return
		}
	} else {
		if err := h.services.Appointment.ChangeStatus(c.Request.Context(), id, domain.AppointmentStatusCancelled, role); err != nil {
			h.serviceError(c, err, "ошибка отмены записи")
			return
		}
	}

	messageResponse(c, http.StatusOK, "запись успешно отменена")
}

// @Summary Список записей
// @Description Пациент видит свои записи, врач свои приёмы, администратор все
// @Tags Записи
// @Produce json
// @Param status query string false "Статус записи"
// @Param date_from query string false "Начальная дата (YYYY-MM-DD)"
// @Param date_to query string false "Конечная дата (YYYY-MM-DD)"
// @Param limit query int false "Лимит (по умолчанию 20)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} paginatedResponse "Список записей с пагинацией"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Security ApiKeyAuth
// @Router /appointments [get]
func (h *Handler) getAppointments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	filter := parseAppointmentFilter(c)

	role, _ := getUserRole(c)
	switch role {
	case domain.UserRolePatient:
		patient, err := h.services.Patient.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			notFoundResponse(c, "профиль пациента не найден")
			return
		}
		filter.PatientID = &patient.ID
		filter.DoctorID = nil
	case domain.UserRoleDoctor:
		doctor, err := h.services.Doctor.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			notFoundResponse(c, "профиль врача не найден")
			return
		}
		filter.DoctorID = &doctor.ID
		filter.PatientID = nil
	}

	appointments, total, err := h.services.Appointment.List(c.Request.Context(), filter)
	if err != nil {
		h.serviceError(c, err, "ошибка получения списка записей")
		return
	}

	page := filter.Offset/filter.Limit + 1

	paginatedSuccessResponse(c, appointments, total, page, filter.Limit)
}

// @Summary Приёмы врача
// @Description Возвращает записи к врачу текущего пользователя
// @Tags Врачи
// @Produce json
// @Param status query string false "Статус записи"
// @Param date_from query string false "Начальная дата (YYYY-MM-DD)"
// @Param date_to query string false "Конечная дата (YYYY-MM-DD)"
// @Param limit query int false "Лимит (по умолчанию 20)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} paginatedResponse "Список записей с пагинацией"
// @Failure 404 {object} errorResponseBody "Профиль врача не найден"
// @Security ApiKeyAuth
// @Router /doctors/me/appointments [get]
func (h *Handler) getMyAppointments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	doctor, err := h.services.Doctor.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("ошибка при получении данных врача", zap.Error(err))
		notFoundResponse(c, "профиль врача не найден")
		return
	}

	filter := parseAppointmentFilter(c)
	filter.DoctorID = &doctor.ID

	appointments, total, err := h.services.Appointment.List(c.Request.Context(), filter)
	if err != nil {
		h.serviceError(c, err, "ошибка получения списка записей")
		return
	}

	page := filter.Offset/filter.Limit + 1

	paginatedSuccessResponse(c, appointments, total, page, filter.Limit)
}

// @Summary Статистика врача
// @Description Агрегирует приёмы врача за последние 30 дней
// @Tags Врачи
// @Produce json
// @Success 200 {object} domain.DoctorStatistics "Статистика приёмов"
// @Failure 404 {object} errorResponseBody "Профиль врача не найден"
// @Security ApiKeyAuth
// @Router /doctors/me/statistics [get]
func (h *Handler) getMyStatistics(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	doctor, err := h.services.Doctor.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("ошибка при получении данных врача", zap.Error(err))
		notFoundResponse(c, "профиль врача не найден")
		return
	}

	stats, err := h.services.Appointment.Statistics(c.Request.Context(), doctor.ID)
	if err != nil {
		h.serviceError(c, err, "ошибка получения статистики")
		return
	}

	successResponse(c, http.StatusOK, stats)
}

// accessibleAppointment загружает запись и проверяет, что пациент смотрит
// свою запись, а врач свой приём.
func (h *Handler) accessibleAppointment(c *gin.Context) (*domain.Appointment, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return nil, false
	}

	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, err, "ошибка получения записи")
		return nil, false
	}

	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return nil, false
	}

	role, _ := getUserRole(c)
	switch role {
	case domain.UserRolePatient:
		patient, err := h.services.Patient.GetByUserID(c.Request.Context(), userID)
		if err != nil || patient.ID != appointment.PatientID {
			forbiddenResponse(c)
			return nil, false
		}
	case domain.UserRoleDoctor:
		doctor, err := h.services.Doctor.GetByUserID(c.Request.Context(), userID)
		if err != nil || doctor.ID != appointment.DoctorID {
			forbiddenResponse(c)
			return nil, false
		}
	}

	return appointment, true
}

func parseAppointmentFilter(c *gin.Context) domain.AppointmentFilter {
	filter := domain.AppointmentFilter{}

	if v := c.Query("status"); v != "" {
		status := domain.AppointmentStatus(v)
		filter.Status = &status
	}
	if v := c.Query("date_from"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateFrom = &parsed
		}
	}
	if v := c.Query("date_to"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			parsed = parsed.Add(24 * time.Hour).Add(-time.Second)
			filter.DateTo = &parsed
		}
	}

	filter.Limit, filter.Offset = parsePagination(c, 20)

	return filter
}
