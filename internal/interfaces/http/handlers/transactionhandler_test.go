package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	storeUsecases "ta7wila/internal/application/store/usecases"
	transactionUsecases "ta7wila/internal/application/transaction/usecases"
	verificationUsecases "ta7wila/internal/application/verification/usecases"
	"ta7wila/internal/domain/payment"
	vo "ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/domain/store"
	"ta7wila/internal/domain/verification"
	"ta7wila/internal/infrastructure/persistence/models"
	"ta7wila/internal/infrastructure/repository"
	"ta7wila/internal/shared/constants"
	"ta7wila/internal/shared/db"
	"ta7wila/internal/shared/logger"
)

type allowAllGuard struct{}

func (allowAllGuard) Acquire(ctx context.Context, destinationID uint, senderValue string, amountCents int64) (bool, error) {
	return true, nil
}

func (allowAllGuard) Release(ctx context.Context, destinationID uint, senderValue string, amountCents int64) error {
	return nil
}

type silentNotifier struct{}

func (silentNotifier) NotifyDecision(ctx context.Context, v *verification.Verification) error {
	return nil
}

type apiFixture struct {
	engine *gin.Engine
	store  *store.Store
	dest   *payment.Destination
}

// newAPIFixture wires the claim flow end to end: real repositories over an
// in-memory database, real use cases, and the production handlers behind a
// stub auth layer acting as the store owner.
func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(
		&models.StoreModel{},
		&models.DestinationModel{},
		&models.TransactionModel{},
		&models.VerificationModel{},
	))

	ctx := context.Background()
	storeRepo := repository.NewStoreRepository(gdb)
	destRepo := repository.NewDestinationRepository(gdb)
	transactionRepo := repository.NewTransactionRepository(gdb)
	verificationRepo := repository.NewVerificationRepository(gdb)
	txManager := db.NewTransactionManager(gdb)
	log := logger.NewLogger()

	st, err := store.NewStore(1, "Corner Shop", "corner-shop",
		[]vo.ChannelKey{vo.ChannelVCash, vo.ChannelInstapay}, "Send then submit.")
	require.NoError(t, err)
	require.NoError(t, storeRepo.Create(ctx, st))

	dest, err := payment.NewDestination(st.DBID(), vo.ChannelVCash, "01012345678")
	require.NoError(t, err)
	require.NoError(t, destRepo.Create(ctx, dest))

	ingestUC := transactionUsecases.NewIngestCallbackUseCase(storeRepo, destRepo, transactionRepo, log, "EGP")
	listUC := transactionUsecases.NewListTransactionsUseCase(transactionRepo, log)
	submitUC := verificationUsecases.NewSubmitClaimUseCase(
		verificationRepo, transactionRepo, destRepo, allowAllGuard{}, txManager, log, "EGP")
	checkUC := verificationUsecases.NewCheckVerificationUseCase(verificationRepo, transactionRepo, txManager, log)
	decideUC := verificationUsecases.NewDecideVerificationUseCase(verificationRepo, silentNotifier{}, log)
	listVerificationsUC := verificationUsecases.NewListVerificationsUseCase(verificationRepo, log)
	getStoreUC := storeUsecases.NewGetStoreUseCase(storeRepo, destRepo, log)

	transactionHandler := NewTransactionHandler(ingestUC, listUC, submitUC, getStoreUC)
	verificationHandler := NewVerificationHandler(checkUC, decideUC, listVerificationsUC)

	asOwner := func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, uint(1))
		c.Set(constants.ContextKeyUserRole, "merchant")
		c.Next()
	}
	asAdmin := func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, uint(9))
		c.Set(constants.ContextKeyUserRole, "admin")
		c.Next()
	}

	engine := gin.New()
	v1 := engine.Group("/api/v1")
	v1.POST("/callbacks/:sid", transactionHandler.Callback)
	v1.POST("/stores/:sid/manual-check", asOwner, transactionHandler.ManualCheck)
	v1.GET("/stores/:sid/transactions", asOwner, transactionHandler.List)
	v1.GET("/verifications/:ref/check", asAdmin, verificationHandler.Check)
	v1.POST("/verifications/:ref/decide", asAdmin, verificationHandler.Decide)
	v1.GET("/verifications", asAdmin, verificationHandler.List)

	return &apiFixture{engine: engine, store: st, dest: dest}
}

func (f *apiFixture) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestManualCheckFlow(t *testing.T) {
	f := newAPIFixture(t)

	// provider reports money landing on the registered wallet
	w := f.request(t, http.MethodPost, "/api/v1/callbacks/"+f.store.SID(), gin.H{
		"channel":           "vcash",
		"destination_value": "01012345678",
		"sender_value":      "01098765432",
		"sender_name":       "Aya Mahmoud",
		"amount":            "150.50",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// the merchant claims the same payment
	w = f.request(t, http.MethodPost, "/api/v1/stores/"+f.store.SID()+"/manual-check", gin.H{
		"destination_sid": f.dest.SID(),
		"sender_value":    "01098765432",
		"amount":          "150.50",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var claim ClaimResponse
	decodeData(t, w, &claim)
	assert.True(t, claim.Matched)
	assert.Contains(t, claim.VerificationRef, "vr_")
	assert.Equal(t, "matched", claim.Status)
	require.NotNil(t, claim.Transaction)
	assert.Equal(t, "Aya Mahmoud", claim.Transaction.SenderName)
	assert.Equal(t, "150.50", claim.Transaction.Amount)

	// phase 1 of the review reveals the matched transaction
	w = f.request(t, http.MethodGet, "/api/v1/verifications/"+claim.VerificationRef+"/check", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var checked VerificationResponse
	decodeData(t, w, &checked)
	assert.Equal(t, "matched", checked.Status)
	require.NotNil(t, checked.Transaction)
	assert.Equal(t, "01098765432", checked.Transaction.SenderValue)

	// phase 2 persists the verdict
	w = f.request(t, http.MethodPost, "/api/v1/verifications/"+claim.VerificationRef+"/decide", gin.H{
		"decision": "verified",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var decided VerificationResponse
	decodeData(t, w, &decided)
	assert.Equal(t, "verified", decided.Status)
	assert.NotNil(t, decided.DecidedAt)
}

func TestManualCheck_NoMatchStaysPending(t *testing.T) {
	f := newAPIFixture(t)

	w := f.request(t, http.MethodPost, "/api/v1/stores/"+f.store.SID()+"/manual-check", gin.H{
		"destination_sid": f.dest.SID(),
		"sender_value":    "01055556666",
		"amount":          "75",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var claim ClaimResponse
	decodeData(t, w, &claim)
	assert.False(t, claim.Matched)
	assert.Equal(t, "pending", claim.Status)
	assert.Nil(t, claim.Transaction)

	// pending claims land in the review queue
	w = f.request(t, http.MethodGet, "/api/v1/verifications", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Items []VerificationResponse `json:"items"`
	}
	decodeData(t, w, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, claim.VerificationRef, list.Items[0].Ref)
}

func TestManualCheck_ValidationErrors(t *testing.T) {
	f := newAPIFixture(t)

	tests := []struct {
		name    string
		body    gin.H
		message string
	}{
		{
			name: "zero amount",
			body: gin.H{
				"destination_sid": f.dest.SID(),
				"sender_value":    "01098765432",
				"amount":          "0",
			},
			message: "greater than zero",
		},
		{
			name: "bad mobile",
			body: gin.H{
				"destination_sid": f.dest.SID(),
				"sender_value":    "01398765432",
				"amount":          "50",
			},
			message: "mobile",
		},
		{
			name: "unknown destination",
			body: gin.H{
				"destination_sid": "pd_missing",
				"sender_value":    "01098765432",
				"amount":          "50",
			},
			message: "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.request(t, http.MethodPost, "/api/v1/stores/"+f.store.SID()+"/manual-check", tt.body)
			assert.GreaterOrEqual(t, w.Code, 400)
			assert.Contains(t, w.Body.String(), tt.message)
		})
	}
}

func TestCallback_RejectsUnregisteredDestination(t *testing.T) {
	f := newAPIFixture(t)

	w := f.request(t, http.MethodPost, "/api/v1/callbacks/"+f.store.SID(), gin.H{
		"channel":           "vcash",
		"destination_value": "01599990000",
		"sender_value":      "01098765432",
		"amount":            "20",
	})
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
}
