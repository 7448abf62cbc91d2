package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic/internal/domain"
)

type errorResponseBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

type successResponseBody struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type messageResponseType struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type paginatedResponse struct {
	Data       interface{} `json:"data"`
	TotalCount int         `json:"total_count"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

func successResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, successResponseBody{
		Status: "success",
		Data:   data,
	})
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponseBody{
		Status:  "error",
		Message: message,
		Code:    statusCode,
	})
}

func messageResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, messageResponseType{
		Status:  "success",
		Message: message,
	})
}

func paginatedSuccessResponse(c *gin.Context, data interface{}, totalCount, page, pageSize int) {
	totalPages := totalCount / pageSize
	if totalCount%pageSize > 0 {
		totalPages++
	}

	c.JSON(http.StatusOK, paginatedResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

func createdResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, successResponseBody{
		Status: "success",
		Data:   data,
	})
}

func noContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func badRequestResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusBadRequest, message)
}

func unauthorizedResponse(c *gin.Context) {
	errorResponse(c, http.StatusUnauthorized, "требуется авторизация")
}

func forbiddenResponse(c *gin.Context, message ...string) {
	msg := "доступ запрещен"
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}
	errorResponse(c, http.StatusForbidden, msg)
}

func notFoundResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusNotFound, message)
}

// serviceError переводит доменные ошибки в HTTP-коды. Всё, что не
// распознано, логируется и отдаётся как 500 с сообщением операции.
func (h *Handler) serviceError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		notFoundResponse(c, "не найдено")
	case errors.Is(err, domain.ErrForbidden):
		forbiddenResponse(c)
	case errors.Is(err, domain.ErrSlotTaken):
		errorResponse(c, http.StatusConflict, "это время уже занято")
	case errors.Is(err, domain.ErrSlotUnavailable):
		errorResponse(c, http.StatusConflict, "выбранное время недоступно для записи")
	case errors.Is(err, domain.ErrInvalidStatusChange):
		errorResponse(c, http.StatusConflict, "недопустимая смена статуса записи")
	case errors.Is(err, domain.ErrScheduleExists):
		errorResponse(c, http.StatusConflict, "расписание на эту дату уже существует")
	case errors.Is(err, domain.ErrInvalidSchedule):
		badRequestResponse(c, err.Error())
	case errors.Is(err, domain.ErrEmailTaken), errors.Is(err, domain.ErrPolicyTaken):
		errorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrDraftExpired):
		errorResponse(c, http.StatusGone, "черновик записи истёк, начните заново")
	case errors.Is(err, domain.ErrDraftIncomplete):
		errorResponse(c, http.StatusConflict, "не все шаги записи заполнены")
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidToken):
		errorResponse(c, http.StatusUnauthorized, err.Error())
	default:
		h.logger.Error(message, zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, message)
	}
}
