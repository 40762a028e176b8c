package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	storeUsecases "ta7wila/internal/application/store/usecases"
	transactionUsecases "ta7wila/internal/application/transaction/usecases"
	verificationUsecases "ta7wila/internal/application/verification/usecases"
	vo "ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/domain/transaction"
	"ta7wila/internal/shared/logger"
	"ta7wila/internal/shared/utils"
)

type TransactionHandler struct {
	ingestUC *transactionUsecases.IngestCallbackUseCase
	listUC   *transactionUsecases.ListTransactionsUseCase
	submitUC *verificationUsecases.SubmitClaimUseCase
	getStore *storeUsecases.GetStoreUseCase
	logger   logger.Interface
}

func NewTransactionHandler(
	ingestUC *transactionUsecases.IngestCallbackUseCase,
	listUC *transactionUsecases.ListTransactionsUseCase,
	submitUC *verificationUsecases.SubmitClaimUseCase,
	getStore *storeUsecases.GetStoreUseCase,
) *TransactionHandler {
	return &TransactionHandler{
		ingestUC: ingestUC,
		listUC:   listUC,
		submitUC: submitUC,
		getStore: getStore,
		logger:   logger.NewLogger(),
	}
}

// CallbackRequest is the payload the provider-side forwarder posts when money
// lands on a registered destination.
type CallbackRequest struct {
	Channel          string                 `json:"channel" binding:"required"`
	DestinationValue string                 `json:"destination_value" binding:"required"`
	SenderValue      string                 `json:"sender_value" binding:"required"`
	SenderName       string                 `json:"sender_name"`
	Amount           string                 `json:"amount" binding:"required"`
	OccurredAt       *time.Time             `json:"occurred_at"`
	Metadata         map[string]interface{} `json:"metadata"`
}

type TransactionResponse struct {
	Ref         string    `json:"ref"`
	Channel     string    `json:"channel"`
	SenderValue string    `json:"sender_value"`
	SenderName  string    `json:"sender_name,omitempty"`
	Amount      string    `json:"amount"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func toTransactionResponse(t *transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		Ref:         t.Ref(),
		Channel:     t.Channel().String(),
		SenderValue: t.SenderValue(),
		SenderName:  t.SenderName(),
		Amount:      t.Amount().String(),
		Status:      t.Status().String(),
		OccurredAt:  t.OccurredAt(),
	}
}

// Callback records a provider transaction for later claim matching.
func (h *TransactionHandler) Callback(c *gin.Context) {
	var req CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	occurredAt := time.Time{}
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	result, err := h.ingestUC.Execute(c.Request.Context(), transactionUsecases.IngestCallbackCommand{
		StoreSID:         c.Param("sid"),
		Channel:          req.Channel,
		DestinationValue: req.DestinationValue,
		SenderValue:      req.SenderValue,
		SenderName:       req.SenderName,
		Amount:           req.Amount,
		OccurredAt:       occurredAt,
		Metadata:         req.Metadata,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, toTransactionResponse(result.Transaction), "transaction recorded")
}

func (h *TransactionHandler) List(c *gin.Context) {
	st, err := h.getStore.Execute(c.Request.Context(), storeUsecases.GetStoreCommand{
		StoreSID:     c.Param("sid"),
		ActorID:      currentUserID(c),
		ActorIsAdmin: currentUserIsAdmin(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pagination := utils.ParsePagination(c)
	result, err := h.listUC.Execute(c.Request.Context(), transactionUsecases.ListTransactionsCommand{
		ApplicationID: st.Store.DBID(),
		Page:          pagination.Page,
		PageSize:      pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]TransactionResponse, 0, len(result.Transactions))
	for _, t := range result.Transactions {
		items = append(items, toTransactionResponse(t))
	}
	utils.ListSuccessResponse(c, items, result.Total, result.Page, result.PageSize)
}

// ManualCheckRequest submits an "I received this payment" claim from the
// merchant dashboard.
type ManualCheckRequest struct {
	DestinationSID string `json:"destination_sid" binding:"required"`
	SenderValue    string `json:"sender_value" binding:"required"`
	Amount         string `json:"amount" binding:"required"`
}

type ClaimResponse struct {
	VerificationRef string               `json:"verification_ref"`
	Status          string               `json:"status"`
	Matched         bool                 `json:"matched"`
	Transaction     *TransactionResponse `json:"transaction,omitempty"`
}

// ManualCheck runs the dashboard claim flow with dashboard-level validation.
func (h *TransactionHandler) ManualCheck(c *gin.Context) {
	var req ManualCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	st, err := h.getStore.Execute(c.Request.Context(), storeUsecases.GetStoreCommand{
		StoreSID:     c.Param("sid"),
		ActorID:      currentUserID(c),
		ActorIsAdmin: currentUserIsAdmin(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.submitUC.Execute(c.Request.Context(), verificationUsecases.SubmitClaimCommand{
		ApplicationID:  st.Store.DBID(),
		DestinationSID: req.DestinationSID,
		SenderValue:    req.SenderValue,
		Amount:         req.Amount,
		Trust:          vo.TrustDashboard,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := ClaimResponse{
		VerificationRef: result.Verification.Ref(),
		Status:          result.Verification.Status().String(),
		Matched:         result.Matched != nil,
	}
	if result.Matched != nil {
		tr := toTransactionResponse(result.Matched)
		resp.Transaction = &tr
	}
	utils.CreatedResponse(c, resp, "claim submitted")
}
