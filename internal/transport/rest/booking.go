package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic/internal/domain"
)

// @Summary Начать запись на приём
// @Description Создает черновик пошагового мастера записи и возвращает его токен
// @Tags Мастер записи
// @Produce json
// @Success 201 {object} domain.BookingDraft "Черновик записи"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Профиль пациента не найден"
// @Security ApiKeyAuth
// @Router /booking [post]
func (h *Handler) startBooking(c *gin.Context) {
	patient, ok := h.currentPatient(c)
	if !ok {
		return
	}

	draft, err := h.services.Booking.Start(c.Request.Context(), patient.ID)
	if err != nil {
		h.serviceError(c, err, "ошибка создания черновика записи")
		return
	}

	createdResponse(c, draft)
}

// @Summary Состояние черновика
// @Description Возвращает черновик записи с текущим шагом мастера
// @Tags Мастер записи
// @Produce json
// @Param token path string true "Токен черновика"
// @Success 200 {object} map[string]interface{} "Черновик и номер шага"
// @Failure 404 {object} errorResponseBody "Черновик не найден"
// @Failure 410 {object} errorResponseBody "Черновик истёк"
// @Security ApiKeyAuth
// @Router /booking/{token} [get]
func (h *Handler) getBookingDraft(c *gin.Context) {
	draft, err := h.services.Booking.Get(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.serviceError(c, err, "ошибка получения черновика")
		return
	}

	successResponse(c, http.StatusOK, gin.H{
		"draft": draft,
		"step":  draft.Step(),
	})
}

// @Summary Шаг 1: специализация
// @Description Выбирает специализацию и сбрасывает зависимые шаги. Вместо специализации первым шагом можно выбрать услугу
// @Tags Мастер записи
// @Accept json
// @Produce json
// @Param token path string true "Токен черновика"
// @Param input body domain.BookingSpecializationDTO true "Выбранная специализация"
// @Success 200 {object} domain.BookingDraft "Обновленный черновик"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 410 {object} errorResponseBody "Черновик истёк"
// @Security ApiKeyAuth
// @Router /booking/{token}/specialization [put]
func (h *Handler) setBookingSpecialization(c *gin.Context) {
	var req domain.BookingSpecializationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	draft, err := h.services.Booking.SetSpecialization(c.Request.Context(), c.Param("token"), req)
	if err != nil {
		h.serviceError(c, err, "ошибка выбора специализации")
		return
	}

	successResponse(c, http.StatusOK, draft)
}

// @Summary Шаг 2: врач
// @Description Выбирает врача выбранной специализации или услуги
// @Tags Мастер записи
// @Accept json
// @Produce json
// @Param token path string true "Токен черновика"
// @Param input body domain.BookingDoctorDTO true "Выбранный врач"
// @Success 200 {object} domain.BookingDraft "Обновленный черновик"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 409 {object} errorResponseBody "Предыдущие шаги не заполнены"
// @Security ApiKeyAuth
// @Router /booking/{token}/doctor [put]
func (h *Handler) setBookingDoctor(c *gin.Context) {
	var req domain.BookingDoctorDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	draft, err := h.services.Booking.SetDoctor(c.Request.Context(), c.Param("token"), req)
	if err != nil {
		h.serviceError(c, err, "ошибка выбора врача")
		return
	}

	successResponse(c, http.StatusOK, draft)
}

// @Summary Шаг 1 или 3: услуга
// @Description Выбирает услугу. Допустим как первый шаг мастера; без услуги приём оформляется как консультация врача
// @Tags Мастер записи
// @Accept json
// @Produce json
// @Param token path string true "Токен черновика"
// @Param input body domain.BookingServiceDTO true "Выбранная услуга"
// @Success 200 {object} domain.BookingDraft "Обновленный черновик"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 409 {object} errorResponseBody "Предыдущие шаги не заполнены"
// @Security ApiKeyAuth
// @Router /booking/{token}/service [put]
func (h *Handler) setBookingService(c *gin.Context) {
	var req domain.BookingServiceDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	draft, err := h.services.Booking.SetService(c.Request.Context(), c.Param("token"), req)
	if err != nil {
		h.serviceError(c, err, "ошибка выбора услуги")
		return
	}

	successResponse(c, http.StatusOK, draft)
}

// @Summary Шаг 3: дата и время
// @Description Выбирает свободный слот врача
// @Tags Мастер записи
// @Accept json
// @Produce json
// @Param token path string true "Токен черновика"
// @Param input body domain.BookingSlotDTO true "Дата и время приёма"
// @Success 200 {object} domain.BookingDraft "Обновленный черновик"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 409 {object} errorResponseBody "Слот занят или шаги не заполнены"
// @Security ApiKeyAuth
// @Router /booking/{token}/slot [put]
func (h *Handler) setBookingSlot(c *gin.Context) {
	var req domain.BookingSlotDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	draft, err := h.services.Booking.SetSlot(c.Request.Context(), c.Param("token"), req)
	if err != nil {
		h.serviceError(c, err, "ошибка выбора времени")
		return
	}

	successResponse(c, http.StatusOK, draft)
}

// @Summary Шаг 4: подтверждение
// @Description Превращает заполненный черновик в запись на приём
// @Tags Мастер записи
// @Accept json
// @Produce json
// @Param token path string true "Токен черновика"
// @Param input body domain.BookingConfirmDTO true "Жалобы (опционально)"
// @Success 201 {object} domain.Appointment "Созданная запись"
// @Failure 403 {object} errorResponseBody "Чужой черновик"
// @Failure 409 {object} errorResponseBody "Шаги не заполнены или слот занят"
// @Failure 410 {object} errorResponseBody "Черновик истёк"
// @Security ApiKeyAuth
// @Router /booking/{token}/confirm [post]
func (h *Handler) confirmBooking(c *gin.Context) {
	patient, ok := h.currentPatient(c)
	if !ok {
		return
	}

	var req domain.BookingConfirmDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	appointment, err := h.services.Booking.Confirm(c.Request.Context(), c.Param("token"), patient.ID, req)
	if err != nil {
		h.serviceError(c, err, "ошибка подтверждения записи")
		return
	}

	createdResponse(c, appointment)
}

func (h *Handler) currentPatient(c *gin.Context) (*domain.Patient, bool) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return nil, false
	}

	patient, err := h.services.Patient.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		notFoundResponse(c, "профиль пациента не найден, заполните медицинскую карту")
		return nil, false
	}

	return patient, true
}
