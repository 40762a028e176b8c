package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ta7wila/internal/application/store/usecases"
	"ta7wila/internal/domain/payment"
	"ta7wila/internal/domain/store"
	"ta7wila/internal/shared/id"
	"ta7wila/internal/shared/logger"
	"ta7wila/internal/shared/utils"
)

type StoreHandler struct {
	createUC    *usecases.CreateStoreUseCase
	updateUC    *usecases.UpdateStoreUseCase
	getUC       *usecases.GetStoreUseCase
	listUC      *usecases.ListStoresUseCase
	addDestUC   *usecases.AddDestinationUseCase
	listDestUC  *usecases.ListDestinationsUseCase
	setStatusUC *usecases.SetDestinationStatusUseCase
	logger      logger.Interface
}

func NewStoreHandler(
	createUC *usecases.CreateStoreUseCase,
	updateUC *usecases.UpdateStoreUseCase,
	getUC *usecases.GetStoreUseCase,
	listUC *usecases.ListStoresUseCase,
	addDestUC *usecases.AddDestinationUseCase,
	listDestUC *usecases.ListDestinationsUseCase,
	setStatusUC *usecases.SetDestinationStatusUseCase,
) *StoreHandler {
	return &StoreHandler{
		createUC:    createUC,
		updateUC:    updateUC,
		getUC:       getUC,
		listUC:      listUC,
		addDestUC:   addDestUC,
		listDestUC:  listDestUC,
		setStatusUC: setStatusUC,
		logger:      logger.NewLogger(),
	}
}

type CreateStoreRequest struct {
	Name           string   `json:"name" binding:"required"`
	Slug           string   `json:"slug" binding:"required"`
	PaymentOptions []string `json:"payment_options" binding:"required,min=1"`
	Instructions   string   `json:"instructions"`
	WebhookURL     string   `json:"webhook_url"`
}

type UpdateStoreRequest struct {
	Name           *string  `json:"name"`
	Instructions   *string  `json:"instructions"`
	PaymentOptions []string `json:"payment_options"`
	WebhookURL     *string  `json:"webhook_url"`
	Active         *bool    `json:"active"`
}

type StoreResponse struct {
	SID            string    `json:"sid"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Status         string    `json:"status"`
	PaymentOptions []string  `json:"payment_options"`
	Instructions   string    `json:"instructions,omitempty"`
	WebhookURL     string    `json:"webhook_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func toStoreResponse(s *store.Store) StoreResponse {
	options := make([]string, 0, len(s.PaymentOptions()))
	for _, o := range s.PaymentOptions() {
		options = append(options, o.String())
	}
	return StoreResponse{
		SID:            s.SID(),
		Name:           s.Name(),
		Slug:           s.Slug(),
		Status:         string(s.Status()),
		PaymentOptions: options,
		Instructions:   s.Instructions(),
		WebhookURL:     s.WebhookURL(),
		CreatedAt:      s.CreatedAt(),
	}
}

// StoreDetailResponse is the single-store view with its destinations inlined.
type StoreDetailResponse struct {
	StoreResponse
	Destinations []DestinationResponse `json:"destinations"`
}

type DestinationResponse struct {
	SID       string    `json:"sid"`
	Channel   string    `json:"channel"`
	Value     string    `json:"value"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func toDestinationResponse(d *payment.Destination) DestinationResponse {
	return DestinationResponse{
		SID:       d.SID(),
		Channel:   d.Channel().String(),
		Value:     d.Value(),
		Active:    d.IsActive(),
		CreatedAt: d.CreatedAt(),
	}
}

func (h *StoreHandler) Create(c *gin.Context) {
	var req CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateStoreCommand{
		OwnerID:        currentUserID(c),
		Name:           req.Name,
		Slug:           req.Slug,
		PaymentOptions: req.PaymentOptions,
		Instructions:   req.Instructions,
		WebhookURL:     req.WebhookURL,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, toStoreResponse(result.Store), "store created")
}

func (h *StoreHandler) Update(c *gin.Context) {
	var req UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateStoreCommand{
		StoreSID:       c.Param("sid"),
		ActorID:        currentUserID(c),
		ActorIsAdmin:   currentUserIsAdmin(c),
		Name:           req.Name,
		Instructions:   req.Instructions,
		PaymentOptions: req.PaymentOptions,
		WebhookURL:     req.WebhookURL,
		Active:         req.Active,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "store updated", toStoreResponse(result.Store))
}

// Delete deactivates the store. Rows are kept so existing transactions and
// verifications stay resolvable.
func (h *StoreHandler) Delete(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "sid", id.PrefixApplication, "store")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	inactive := false
	_, err = h.updateUC.Execute(c.Request.Context(), usecases.UpdateStoreCommand{
		StoreSID:     sid,
		ActorID:      currentUserID(c),
		ActorIsAdmin: currentUserIsAdmin(c),
		Active:       &inactive,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "store deactivated", nil)
}

func (h *StoreHandler) Get(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "sid", id.PrefixApplication, "store")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetStoreCommand{
		StoreSID:     sid,
		ActorID:      currentUserID(c),
		ActorIsAdmin: currentUserIsAdmin(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	destinations := make([]DestinationResponse, 0, len(result.Destinations))
	for _, d := range result.Destinations {
		destinations = append(destinations, toDestinationResponse(d))
	}
	utils.SuccessResponse(c, http.StatusOK, "", StoreDetailResponse{
		StoreResponse: toStoreResponse(result.Store),
		Destinations:  destinations,
	})
}

func (h *StoreHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	ownerID := currentUserID(c)
	if currentUserIsAdmin(c) {
		ownerID = 0
	}

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListStoresCommand{
		OwnerID:  ownerID,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]StoreResponse, 0, len(result.Stores))
	for _, s := range result.Stores {
		items = append(items, toStoreResponse(s))
	}
	utils.ListSuccessResponse(c, items, result.Total, result.Page, result.PageSize)
}

type AddDestinationRequest struct {
	Channel string `json:"channel" binding:"required"`
	Value   string `json:"value" binding:"required"`
}

func (h *StoreHandler) AddDestination(c *gin.Context) {
	var req AddDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.addDestUC.Execute(c.Request.Context(), usecases.AddDestinationCommand{
		StoreSID:     c.Param("sid"),
		ActorID:      currentUserID(c),
		ActorIsAdmin: currentUserIsAdmin(c),
		Channel:      req.Channel,
		Value:        req.Value,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, toDestinationResponse(result.Destination), "destination added")
}

func (h *StoreHandler) ListDestinations(c *gin.Context) {
	result, err := h.listDestUC.Execute(c.Request.Context(), usecases.ListDestinationsCommand{
		StoreSID:     c.Param("sid"),
		ActorID:      currentUserID(c),
		ActorIsAdmin: currentUserIsAdmin(c),
		Channel:      c.Query("channel"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]DestinationResponse, 0, len(result.Destinations))
	for _, d := range result.Destinations {
		items = append(items, toDestinationResponse(d))
	}
	utils.SuccessResponse(c, http.StatusOK, "", items)
}

type SetDestinationStatusRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (h *StoreHandler) SetDestinationStatus(c *gin.Context) {
	var req SetDestinationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.setStatusUC.Execute(c.Request.Context(), usecases.SetDestinationStatusCommand{
		StoreSID:       c.Param("sid"),
		DestinationSID: c.Param("destination_sid"),
		ActorID:        currentUserID(c),
		ActorIsAdmin:   currentUserIsAdmin(c),
		Active:         *req.Active,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "destination updated", toDestinationResponse(result.Destination))
}
