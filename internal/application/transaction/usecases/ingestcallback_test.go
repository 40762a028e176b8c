package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ta7wila/internal/domain/payment"
	vo "ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/domain/store"
	"ta7wila/internal/domain/transaction"
	"ta7wila/internal/infrastructure/persistence/models"
	"ta7wila/internal/infrastructure/repository"
	"ta7wila/internal/shared/logger"
)

func setupIngest(t *testing.T) (*IngestCallbackUseCase, *store.Store, *payment.Destination, *gorm.DB) {
	t.Helper()

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
	))

	ctx := context.Background()
	storeRepo := repository.NewStoreRepository(gdb)
	destRepo := repository.NewDestinationRepository(gdb)

	st, err := store.NewStore(1, "Corner Shop", "corner-shop", []vo.ChannelKey{vo.ChannelVCash}, "")
	require.NoError(t, err)
	require.NoError(t, storeRepo.Create(ctx, st))

	dest, err := payment.NewDestination(st.DBID(), vo.ChannelVCash, "01012345678")
	require.NoError(t, err)
	require.NoError(t, destRepo.Create(ctx, dest))

	uc := NewIngestCallbackUseCase(storeRepo, destRepo, repository.NewTransactionRepository(gdb), logger.NewLogger(), "EGP")
	return uc, st, dest, gdb
}

func TestIngestCallbackUseCase_Execute(t *testing.T) {
	uc, st, dest, gdb := setupIngest(t)
	ctx := context.Background()

	result, err := uc.Execute(ctx, IngestCallbackCommand{
		StoreSID:         st.SID(),
		Channel:          "vcash",
		DestinationValue: "+201012345678",
		SenderValue:      "002 010 98765432",
		SenderName:       "Mona A.",
		Amount:           "150.00",
		OccurredAt:       time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		Metadata:         map[string]interface{}{"provider_txn_id": "VC-9912"},
	})
	require.NoError(t, err)

	tx := result.Transaction
	assert.Equal(t, dest.DBID(), tx.DestinationID())
	assert.Equal(t, transaction.StatusUnclaimed, tx.Status())
	// the country-code prefix is stripped before matching
	assert.Equal(t, "01098765432", tx.SenderValue())
	assert.Equal(t, "VC-9912", tx.Metadata()["provider_txn_id"])

	stored, err := repository.NewTransactionRepository(gdb).GetByDBID(ctx, tx.DBID())
	require.NoError(t, err)
	assert.Equal(t, "VC-9912", stored.Metadata()["provider_txn_id"])
}

func TestIngestCallbackUseCase_Rejections(t *testing.T) {
	uc, st, _, _ := setupIngest(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		cmd     IngestCallbackCommand
		wantErr string
	}{
		{
			name: "unknown channel",
			cmd: IngestCallbackCommand{
				StoreSID: st.SID(), Channel: "paypal",
				DestinationValue: "01012345678", SenderValue: "01098765432", Amount: "10",
			},
			wantErr: "invalid payment channel",
		},
		{
			name: "destination not registered",
			cmd: IngestCallbackCommand{
				StoreSID: st.SID(), Channel: "vcash",
				DestinationValue: "01500000000", SenderValue: "01098765432", Amount: "10",
			},
			wantErr: "no active destination",
		},
		{
			name: "zero amount",
			cmd: IngestCallbackCommand{
				StoreSID: st.SID(), Channel: "vcash",
				DestinationValue: "01012345678", SenderValue: "01098765432", Amount: "0",
			},
			wantErr: "greater than zero",
		},
		{
			name: "unknown store",
			cmd: IngestCallbackCommand{
				StoreSID: "app_missing", Channel: "vcash",
				DestinationValue: "01012345678", SenderValue: "01098765432", Amount: "10",
			},
			wantErr: "not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.cmd)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
