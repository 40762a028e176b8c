package usecases

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ta7wila/internal/domain/payment"
	vo "ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/domain/store"
	"ta7wila/internal/infrastructure/channelcatalog"
	"ta7wila/internal/infrastructure/persistence/models"
	"ta7wila/internal/infrastructure/repository"
	"ta7wila/internal/shared/logger"
	"ta7wila/internal/shared/services/markdown"
)

func setupCheckout(t *testing.T) (*GetCheckoutUseCase, *store.Store) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(&models.StoreModel{}, &models.DestinationModel{}))

	ctx := context.Background()
	storeRepo := repository.NewStoreRepository(gdb)
	destRepo := repository.NewDestinationRepository(gdb)

	st, err := store.NewStore(1, "Corner Shop", "corner-shop",
		[]vo.ChannelKey{vo.ChannelVCash, vo.ChannelInstapay}, "## How to pay\n\nSend then submit your number.")
	require.NoError(t, err)
	require.NoError(t, storeRepo.Create(ctx, st))

	for _, seed := range []struct {
		channel vo.ChannelKey
		value   string
	}{
		{vo.ChannelVCash, "01012345678"},
		{vo.ChannelVCash, "01111111111"},
		{vo.ChannelInstapay, "shop@bank"},
	} {
		d, err := payment.NewDestination(st.DBID(), seed.channel, seed.value)
		require.NoError(t, err)
		require.NoError(t, destRepo.Create(ctx, d))
	}

	catalog, err := channelcatalog.Load()
	require.NoError(t, err)

	uc := NewGetCheckoutUseCase(storeRepo, destRepo, catalog, markdown.NewMarkdownService(), logger.NewLogger())
	return uc, st
}

func TestGetCheckoutUseCase_Execute(t *testing.T) {
	uc, st := setupCheckout(t)

	result, err := uc.Execute(context.Background(), GetCheckoutCommand{
		Slug:           "corner-shop",
		AcceptLanguage: "ar-EG,ar;q=0.9,en;q=0.5",
	})
	require.NoError(t, err)

	assert.Equal(t, st.SID(), result.StoreSID)
	assert.Equal(t, "ar", result.Language)
	assert.Contains(t, result.InstructionsHTML, "<h2")
	assert.NotContains(t, result.InstructionsHTML, "<script")

	require.Len(t, result.Channels, 2)
	assert.Equal(t, vo.ChannelVCash, result.Channels[0].Key)
	assert.Len(t, result.Channels[0].Destinations, 2)
	assert.Len(t, result.Channels[1].Destinations, 1)
	// Arabic display name came from the catalog
	assert.NotEmpty(t, result.Channels[0].DisplayName)
}

func TestGetCheckoutUseCase_FallbackLanguage(t *testing.T) {
	uc, _ := setupCheckout(t)

	result, err := uc.Execute(context.Background(), GetCheckoutCommand{Slug: "corner-shop"})
	require.NoError(t, err)
	assert.Equal(t, "en", result.Language)
}

func TestGetCheckoutUseCase_UnknownSlug(t *testing.T) {
	uc, _ := setupCheckout(t)

	_, err := uc.Execute(context.Background(), GetCheckoutCommand{Slug: "missing-store"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
