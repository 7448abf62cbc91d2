package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic/internal/domain"
)

// @Summary Профиль пациента
// @Description Возвращает медицинскую карту текущего пользователя
// @Tags Пациенты
// @Produce json
// @Success 200 {object} domain.Patient "Профиль пациента"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Профиль пациента не найден"
// @Security ApiKeyAuth
// @Router /patients/me [get]
func (h *Handler) getMyPatientProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	patient, err := h.services.Patient.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		h.serviceError(c, err, "профиль пациента не найден")
		return
	}

	successResponse(c, http.StatusOK, patient)
}

// @Summary Создать профиль пациента
// @Description Создает медицинскую карту. Администратор может указать user_id другого пользователя
// @Tags Пациенты
// @Accept json
// @Produce json
// @Param user_id query int false "ID пользователя (только для администратора)"
// @Param input body domain.CreatePatientDTO true "Данные пациента"
// @Success 201 {object} map[string]interface{} "ID созданного профиля"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 409 {object} errorResponseBody "Полис уже зарегистрирован"
// @Security ApiKeyAuth
// @Router /patients [post]
func (h *Handler) createPatient(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	role, _ := getUserRole(c)
	if v := c.Query("user_id"); v != "" {
		if role != domain.UserRoleAdmin {
			forbiddenResponse(c)
			return
		}
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			badRequestResponse(c, "неверный формат user_id")
			return
		}
		userID = id
	}

	var req domain.CreatePatientDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Patient.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.serviceError(c, err, "ошибка создания профиля пациента")
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Обновить профиль пациента
// @Tags Пациенты
// @Accept json
// @Produce json
// @Param id path int true "ID пациента"
// @Param input body domain.UpdatePatientDTO true "Данные для обновления"
// @Success 200 {object} messageResponseType "Сообщение об успешном обновлении"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Пациент не найден"
// @Security ApiKeyAuth
// @Router /patients/{id} [put]
func (h *Handler) updatePatient(c *gin.Context) {
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

	patient, err := h.services.Patient.GetByID(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, err, "ошибка получения пациента")
		return
	}

	role, _ := getUserRole(c)
	if patient.UserID != userID && role != domain.UserRoleAdmin {
		forbiddenResponse(c)
		return
	}

	var req domain.UpdatePatientDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Patient.Update(c.Request.Context(), id, req); err != nil {
		h.serviceError(c, err, "ошибка обновления пациента")
		return
	}

	messageResponse(c, http.StatusOK, "данные пациента успешно обновлены")
}

// @Summary Список пациентов
// @Tags Пациенты
// @Produce json
// @Param limit query int false "Лимит (по умолчанию 20)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} successResponseBody "Список пациентов"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /patients [get]
func (h *Handler) getPatients(c *gin.Context) {
	limit, offset := parsePagination(c, 20)

	patients, err := h.services.Patient.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.serviceError(c, err, "ошибка получения списка пациентов")
		return
	}

	successResponse(c, http.StatusOK, patients)
}

// @Summary Получить пациента по ID
// @Tags Пациенты
// @Produce json
// @Param id path int true "ID пациента"
// @Success 200 {object} domain.Patient "Профиль пациента"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 404 {object} errorResponseBody "Пациент не найден"
// @Security ApiKeyAuth
// @Router /patients/{id} [get]
func (h *Handler) getPatientByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	patient, err := h.services.Patient.GetByID(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, err, "ошибка получения пациента")
		return
	}

	successResponse(c, http.StatusOK, patient)
}
