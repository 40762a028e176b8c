package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ta7wila/internal/application/checkout/usecases"
	"ta7wila/internal/shared/constants"
	"ta7wila/internal/shared/logger"
	"ta7wila/internal/shared/utils"
)

// CheckoutHandler serves the unauthenticated checkout endpoints: the payment
// page data for a store and the "I paid" claim submission.
type CheckoutHandler struct {
	getUC  *usecases.GetCheckoutUseCase
	payUC  *usecases.PublicPayUseCase
	logger logger.Interface
}

func NewCheckoutHandler(getUC *usecases.GetCheckoutUseCase, payUC *usecases.PublicPayUseCase) *CheckoutHandler {
	return &CheckoutHandler{
		getUC:  getUC,
		payUC:  payUC,
		logger: logger.NewLogger(),
	}
}

type CheckoutDestinationResponse struct {
	SID   string `json:"sid"`
	Value string `json:"value"`
}

type CheckoutChannelResponse struct {
	Key          string                        `json:"key"`
	Kind         string                        `json:"kind"`
	DisplayName  string                        `json:"display_name"`
	Destinations []CheckoutDestinationResponse `json:"destinations"`
}

type CheckoutResponse struct {
	StoreName        string                    `json:"store_name"`
	StoreSID         string                    `json:"store_sid"`
	InstructionsHTML string                    `json:"instructions_html,omitempty"`
	Language         string                    `json:"language"`
	Channels         []CheckoutChannelResponse `json:"channels"`
}

func (h *CheckoutHandler) Get(c *gin.Context) {
	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetCheckoutCommand{
		Slug:           c.Param("slug"),
		AcceptLanguage: c.GetHeader(constants.HeaderAcceptLanguage),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := CheckoutResponse{
		StoreName:        result.StoreName,
		StoreSID:         result.StoreSID,
		InstructionsHTML: result.InstructionsHTML,
		Language:         result.Language,
		Channels:         make([]CheckoutChannelResponse, 0, len(result.Channels)),
	}
	for _, ch := range result.Channels {
		out := CheckoutChannelResponse{
			Key:         ch.Key.String(),
			Kind:        ch.Kind,
			DisplayName: ch.DisplayName,
		}
		for _, d := range ch.Destinations {
			out.Destinations = append(out.Destinations, CheckoutDestinationResponse{SID: d.SID, Value: d.Value})
		}
		resp.Channels = append(resp.Channels, out)
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

type PublicPayRequest struct {
	DestinationSID string `json:"destination_sid" binding:"required"`
	SenderValue    string `json:"sender_value" binding:"required"`
	Amount         string `json:"amount" binding:"required"`
}

func (h *CheckoutHandler) Pay(c *gin.Context) {
	var req PublicPayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.payUC.Execute(c.Request.Context(), usecases.PublicPayCommand{
		Slug:           c.Param("slug"),
		DestinationSID: req.DestinationSID,
		SenderValue:    req.SenderValue,
		Amount:         req.Amount,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, ClaimResponse{
		VerificationRef: result.VerificationRef,
		Status:          result.Status,
		Matched:         result.Matched,
	}, "claim submitted")
}
