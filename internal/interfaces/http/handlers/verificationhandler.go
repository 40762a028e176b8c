package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ta7wila/internal/application/verification/usecases"
	"ta7wila/internal/domain/verification"
	"ta7wila/internal/shared/id"
	"ta7wila/internal/shared/logger"
	"ta7wila/internal/shared/utils"
)

type VerificationHandler struct {
	checkUC  *usecases.CheckVerificationUseCase
	decideUC *usecases.DecideVerificationUseCase
	listUC   *usecases.ListVerificationsUseCase
	logger   logger.Interface
}

func NewVerificationHandler(
	checkUC *usecases.CheckVerificationUseCase,
	decideUC *usecases.DecideVerificationUseCase,
	listUC *usecases.ListVerificationsUseCase,
) *VerificationHandler {
	return &VerificationHandler{
		checkUC:  checkUC,
		decideUC: decideUC,
		listUC:   listUC,
		logger:   logger.NewLogger(),
	}
}

type VerificationResponse struct {
	Ref         string               `json:"ref"`
	Channel     string               `json:"channel"`
	SenderValue string               `json:"sender_value"`
	Amount      string               `json:"amount"`
	Status      string               `json:"status"`
	MatchedAt   *time.Time           `json:"matched_at,omitempty"`
	DecidedAt   *time.Time           `json:"decided_at,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

func toVerificationResponse(v *verification.Verification) VerificationResponse {
	return VerificationResponse{
		Ref:         v.Ref(),
		Channel:     v.Channel().String(),
		SenderValue: v.Sender().Value(),
		Amount:      v.Amount().String(),
		Status:      v.Status().String(),
		MatchedAt:   v.MatchedAt(),
		DecidedAt:   v.DecidedAt(),
		CreatedAt:   v.CreatedAt(),
	}
}

// Check is the first review step: it reveals the match state of a claim,
// retrying the match for claims submitted before the provider callback.
func (h *VerificationHandler) Check(c *gin.Context) {
	ref, err := utils.ParseSIDParam(c, "ref", id.PrefixVerification, "verification")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.checkUC.Execute(c.Request.Context(), usecases.CheckVerificationCommand{
		Ref: ref,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := toVerificationResponse(result.Verification)
	if result.Matched != nil {
		tr := toTransactionResponse(result.Matched)
		resp.Transaction = &tr
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

type DecideRequest struct {
	Decision string `json:"decision" binding:"required,oneof=verified rejected"`
}

// Decide is the second review step: it records the verdict on a matched claim.
func (h *VerificationHandler) Decide(c *gin.Context) {
	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ref, err := utils.ParseSIDParam(c, "ref", id.PrefixVerification, "verification")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.decideUC.Execute(c.Request.Context(), usecases.DecideVerificationCommand{
		Ref:        ref,
		Decision:   req.Decision,
		ReviewerID: currentUserID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "decision recorded", toVerificationResponse(result.Verification))
}

// List returns the open review queue, or one store's history when
// application_id is given.
func (h *VerificationHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	var applicationID uint
	if raw := c.Query("application_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid application_id")
			return
		}
		applicationID = uint(parsed)
	}

	var statuses []string
	if raw := c.Query("status"); raw != "" {
		statuses = strings.Split(raw, ",")
	}

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListVerificationsCommand{
		ApplicationID: applicationID,
		Statuses:      statuses,
		Page:          pagination.Page,
		PageSize:      pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]VerificationResponse, 0, len(result.Verifications))
	for _, v := range result.Verifications {
		items = append(items, toVerificationResponse(v))
	}
	utils.ListSuccessResponse(c, items, result.Total, result.Page, result.PageSize)
}
