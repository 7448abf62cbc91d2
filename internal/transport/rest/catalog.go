package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic/internal/domain"
)

// @Summary Список специализаций
// @Tags Справочники
// @Produce json
// @Param search query string false "Поиск по названию"
// @Param limit query int false "Лимит (по умолчанию 50)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} paginatedResponse "Список специализаций"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /specializations [get]
func (h *Handler) getSpecializations(c *gin.Context) {
	filter := domain.SpecializationFilter{Search: c.Query("search")}
	filter.Limit, filter.Offset = parsePagination(c, 50)

	items, total, err := h.services.Catalog.ListSpecializations(c.Request.Context(), filter)
	if err != nil {
		h.serviceError(c, err, "ошибка получения списка специализаций")
		return
	}

	page := filter.Offset/filter.Limit + 1

	paginatedSuccessResponse(c, items, total, page, filter.Limit)
}

// @Summary Получить специализацию по ID
// @Tags Справочники
// @Produce json
// @Param id path int true "ID специализации"
// @Success 200 {object} domain.Specialization "Специализация"
// @Failure 404 {object} errorResponseBody "Специализация не найдена"
// @Router /specializations/{id} [get]
func (h *Handler) getSpecializationByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	item, err := h.services.Catalog.GetSpecialization(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, err, "ошибка получения специализации")
		return
	}

	successResponse(c, http.StatusOK, item)
}

// @Summary Создать специализацию
// @Tags Справочники
// @Accept json
// @Produce json
// @Param input body domain.CreateSpecializationDTO true "Данные специализации"
// @Success 201 {object} map[string]interface{} "ID созданной специализации"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /specializations [post]
func (h *Handler) createSpecialization(c *gin.Context) {
	var req domain.CreateSpecializationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Catalog.CreateSpecialization(c.Request.Context(), req)
	if err != nil {
		h.serviceError(c, err, "ошибка создания специализации")
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Обновить специализацию
// @Tags Справочники
// @Accept json
// @Produce json
// @Param id path int true "ID специализации"
// @Param input body domain.UpdateSpecializationDTO true "Данные для обновления"
// @Success 200 {object} messageResponseType "Сообщение об успешном обновлении"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 404 {object} errorResponseBody "Специализация не найдена"
// @Security ApiKeyAuth
// @Router /specializations/{id} [put]
func (h *Handler) updateSpecialization(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var req domain.UpdateSpecializationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Catalog.UpdateSpecialization(c.Request.Context(), id, req); err != nil {
		h.serviceError(c, err, "ошибка обновления специализации")
		return
	}

	messageResponse(c, http.StatusOK, "специализация успешно обновлена")
}

// @Summary Удалить специализацию
// @Tags Справочники
// @Produce json
// @Param id path int true "ID специализации"
// @Success 200 {object} messageResponseType "Сообщение об успешном удалении"
// @Failure 404 {object} errorResponseBody "Специализация не найдена"
// @Security ApiKeyAuth
// @Router /specializations/{id} [delete]
func (h *Handler) deleteSpecialization(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Catalog.DeleteSpecialization(c.Request.Context(), id); err != nil {
		h.serviceError(c, err, "ошибка удаления специализации")
		return
	}

	messageResponse(c, http.StatusOK, "специализация успешно удалена")
}

// @Summary Список отделений
// @Tags Справочники
// @Produce json
// @Param limit query int false "Лимит (по умолчанию 50)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} successResponseBody "Список отделений"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /departments [get]
func (h *Handler) getDepartments(c *gin.Context) {
	limit, offset := parsePagination(c, 50)

	items, err := h.services.Catalog.ListDepartments(c.Request.Context(), limit, offset)
	if err != nil {
		h.serviceError(c, err, "ошибка получения списка отделений")
		return
	}

	successResponse(c, http.StatusOK, items)
}

// @Summary Получить отделение по ID
// @Tags Справочники
// @Produce json
// @Param id path int true "ID отделения"
// @Success 200 {object} domain.Department "Отделение"
// @Failure 404 {object} errorResponseBody "Отделение не найдено"
// @Router /departments/{id} [get]
func (h *Handler) getDepartmentByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	item, err := h.services.Catalog.GetDepartment(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, err, "ошибка получения отделения")
		return
	}

	successResponse(c, http.StatusOK, item)
}

// @Summary Создать отделение
// @Tags Справочники
// @Accept json
// @Produce json
// @Param input body domain.CreateDepartmentDTO true "Данные отделения"
// @Success 201 {object} map[string]interface{} "ID созданного отделения"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Security ApiKeyAuth
// @Router /departments [post]
func (h *Handler) createDepartment(c *gin.Context) {
	var req domain.CreateDepartmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Catalog.CreateDepartment(c.Request.Context(), req)
	if err != nil {
		h.serviceError(c, err, "ошибка создания отделения")
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Обновить отделение
// @Tags Справочники
// @Accept json
// @Produce json
// @Param id path int true "ID отделения"
// @Param input body domain.UpdateDepartmentDTO true "Данные для обновления"
// @Success 200 {object} messageResponseType "Сообщение об успешном обновлении"
// @Failure 404 {object} errorResponseBody "Отделение не найдено"
// @Security ApiKeyAuth
// @Router /departments/{id} [put]
func (h *Handler) updateDepartment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var req domain.UpdateDepartmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Catalog.UpdateDepartment(c.Request.Context(), id, req); err != nil {
		h.serviceError(c, err, "ошибка обновления отделения")
		return
	}

	messageResponse(c, http.StatusOK, "отделение успешно обновлено")
}

// @Summary Удалить отделение
// @Tags Справочники
// @Produce json
// @Param id path int true "ID отделения"
// @Success 200 {object} messageResponseType "Сообщение об успешном удалении"
// @Failure 404 {object} errorResponseBody "Отделение не найдено"
// @Security ApiKeyAuth
// @Router /departments/{id} [delete]
func (h *Handler) deleteDepartment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Catalog.DeleteDepartment(c.Request.Context(), id); err != nil {
		h.serviceError(c, err, "ошибка удаления отделения")
		return
	}

	messageResponse(c, http.StatusOK, "отделение успешно удалено")
}

// @Summary Список услуг
// @Description Возвращает медицинские услуги с фильтрацией по категории и врачу
// @Tags Справочники
// @Produce json
// @Param category query string false "Категория услуги"
// @Param is_free query bool false "Только бесплатные"
// @Param doctor_id query int false "Услуги конкретного врача"
// @Param search query string false "Поиск по названию"
// @Param limit query int false "Лимит (по умолчанию 50)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} paginatedResponse "Список услуг"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /services [get]
func (h *Handler) getServices(c *gin.Context) {
	filter := domain.ServiceFilter{
		OnlyActive: true,
		Search:     c.Query("search"),
	}

	if v := c.Query("category"); v != "" {
		category := domain.ServiceCategory(v)
		filter.Category = &category
	}
	if v := c.Query("is_free"); v != "" {
		isFree := v == "true"
		filter.IsFree = &isFree
	}
	if v := c.Query("doctor_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.DoctorID = &id
		}
	}

	filter.Limit, filter.Offset = parsePagination(c, 50)

	items, total, err := h.services.Catalog.ListServices(c.Request.Context(), filter)
	if err != nil {
		h.serviceError(c, err, "ошибка получения списка услуг")
		return
	}

	page := filter.Offset/filter.Limit + 1

	paginatedSuccessResponse(c, items, total, page, filter.Limit)
}

// @Summary Получить услугу по ID
// @Tags Справочники
// @Produce json
// @Param id path int true "ID услуги"
// @Success 200 {object} domain.Service "Услуга"
// @Failure 404 {object} errorResponseBody "Услуга не найдена"
// @Router /services/{id} [get]
func (h *Handler) getServiceByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	item, err := h.services.Catalog.GetService(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, err, "ошибка получения услуги")
		return
	}

	successResponse(c, http.StatusOK, item)
}

// @Summary Создать услугу
// @Tags Справочники
// @Accept json
// @Produce json
// @Param input body domain.CreateServiceDTO true "Данные услуги"
// @Success 201 {object} map[string]interface{} "ID созданной услуги"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Security ApiKeyAuth
// @Router /services [post]
func (h *Handler) createService(c *gin.Context) {
	var req domain.CreateServiceDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Catalog.CreateService(c.Request.Context(), req)
	if err != nil {
		h.serviceError(c, err, "ошибка создания услуги")
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Обновить услугу
// @Tags Справочники
// @Accept json
// @Produce json
// @Param id path int true "ID услуги"
// @Param input body domain.UpdateServiceDTO true "Данные для обновления"
// @Success 200 {object} messageResponseType "Сообщение об успешном обновлении"
// @Failure 404 {object} errorResponseBody "Услуга не найдена"
// @Security ApiKeyAuth
// @Router /services/{id} [put]
func (h *Handler) updateService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var req domain.UpdateServiceDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Catalog.UpdateService(c.Request.Context(), id, req); err != nil {
		h.serviceError(c, err, "ошибка обновления услуги")
		return
	}

	messageResponse(c, http.StatusOK, "услуга успешно обновлена")
}

// @Summary Удалить услугу
// @Tags Справочники
// @Produce json
// @Param id path int true "ID услуги"
// @Success 200 {object} messageResponseType "Сообщение об успешном удалении"
// @Failure 404 {object} errorResponseBody "Услуга не найдена"
// @Security ApiKeyAuth
// @Router /services/{id} [delete]
func (h *Handler) deleteService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Catalog.DeleteService(c.Request.Context(), id); err != nil {
		h.serviceError(c, err, "ошибка удаления услуги")
		return
	}

	messageResponse(c, http.StatusOK, "услуга успешно удалена")
}

type setServiceDoctorsRequest struct {
	DoctorIDs []int64 `json:"doctor_ids" binding:"required"`
}

// @Summary Назначить врачей услуге
// @Description Заменяет список врачей, оказывающих услугу
// @Tags Справочники
// @Accept json
// @Produce json
// @Param id path int true "ID услуги"
// @Param input body setServiceDoctorsRequest true "Список ID врачей"
// @Success 200 {object} messageResponseType "Сообщение об успешном обновлении"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 404 {object} errorResponseBody "Услуга не найдена"
// @Security ApiKeyAuth
// @Router /services/{id}/doctors [put]
func (h *Handler) setServiceDoctors(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var req setServiceDoctorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Catalog.SetServiceDoctors(c.Request.Context(), id, req.DoctorIDs); err != nil {
		h.serviceError(c, err, "ошибка назначения врачей")
		return
	}

	messageResponse(c, http.StatusOK, "врачи услуги успешно обновлены")
}
