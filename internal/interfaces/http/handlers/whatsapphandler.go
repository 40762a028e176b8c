package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ta7wila/internal/application/whatsapp"
	"ta7wila/internal/shared/logger"
	"ta7wila/internal/shared/utils"
)

// WhatsAppHandler proxies bridge session control to the dashboard.
type WhatsAppHandler struct {
	service *whatsapp.Service
	logger  logger.Interface
}

func NewWhatsAppHandler(service *whatsapp.Service) *WhatsAppHandler {
	return &WhatsAppHandler{service: service, logger: logger.NewLogger()}
}

func (h *WhatsAppHandler) Status(c *gin.Context) {
	status, err := h.service.GetStatus(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", status)
}

func (h *WhatsAppHandler) Start(c *gin.Context) {
	status, err := h.service.StartSession(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "session starting", status)
}

func (h *WhatsAppHandler) Stop(c *gin.Context) {
	if err := h.service.StopSession(c.Request.Context()); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "session stopped", nil)
}

func (h *WhatsAppHandler) SendMessage(c *gin.Context) {
	var cmd whatsapp.SendMessageCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := h.service.SendMessage(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "message sent", nil)
}
