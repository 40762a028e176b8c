package repository

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
	"ta7wila/internal/domain/verification"
	"ta7wila/internal/infrastructure/persistence/models"
	apperrors "ta7wila/internal/shared/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(
		&models.UserModel{},
		&models.StoreModel{},
		&models.DestinationModel{},
		&models.TransactionModel{},
		&models.VerificationModel{},
		&models.InvoiceModel{},
	))

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return gdb
}

func seedDestination(t *testing.T, gdb *gorm.DB, appID uint, channel vo.ChannelKey, value string) *payment.Destination {
	t.Helper()
	d, err := payment.NewDestination(appID, channel, value)
	require.NoError(t, err)
	require.NoError(t, NewDestinationRepository(gdb).Create(context.Background(), d))
	return d
}

func seedTransaction(t *testing.T, gdb *gorm.DB, destID uint, sender, amount string, occurredAt time.Time) *transaction.Transaction {
	t.Helper()
	money, err := vo.ParseAmount(amount, "")
	require.NoError(t, err)
	tx, err := transaction.NewTransaction(1, destID, vo.ChannelVCash, sender, "Seed Sender", money, occurredAt)
	require.NoError(t, err)
	require.NoError(t, NewTransactionRepository(gdb).Create(context.Background(), tx))
	return tx
}

func TestStoreRepository_CRUD(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewStoreRepository(gdb)
	ctx := context.Background()

	s, err := store.NewStore(1, "Corner Shop", "corner-shop", []vo.ChannelKey{vo.ChannelVCash, vo.ChannelInstapay}, "## Pay us")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, s))
	require.NotZero(t, s.DBID())

	got, err := repo.GetBySlug(ctx, "corner-shop")
	require.NoError(t, err)
	assert.Equal(t, s.SID(), got.SID())
	assert.Equal(t, []vo.ChannelKey{vo.ChannelVCash, vo.ChannelInstapay}, got.PaymentOptions())

	require.NoError(t, got.UpdatePaymentOptions([]vo.ChannelKey{vo.ChannelECash}))
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetBySID(ctx, s.SID())
	require.NoError(t, err)
	assert.Equal(t, []vo.ChannelKey{vo.ChannelECash}, got.PaymentOptions())

	exists, err := repo.ExistsBySlug(ctx, "corner-shop")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.GetBySlug(ctx, "missing")
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestStoreRepository_DuplicateSlug(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewStoreRepository(gdb)
	ctx := context.Background()

	first, err := store.NewStore(1, "Shop", "same-slug", []vo.ChannelKey{vo.ChannelVCash}, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))

	second, err := store.NewStore(2, "Other", "same-slug", []vo.ChannelKey{vo.ChannelVCash}, "")
	require.NoError(t, err)
	err = repo.Create(ctx, second)
	assert.True(t, apperrors.IsConflictError(err))
}

func TestDestinationRepository_ListByApplicationAndChannel(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewDestinationRepository(gdb)
	ctx := context.Background()

	seedDestination(t, gdb, 1, vo.ChannelVCash, "01012345678")
	seedDestination(t, gdb, 1, vo.ChannelInstapay, "shop@bank")
	inactive := seedDestination(t, gdb, 1, vo.ChannelVCash, "01111111111")
	inactive.Deactivate()
	require.NoError(t, repo.Update(ctx, inactive))
	seedDestination(t, gdb, 2, vo.ChannelVCash, "01222222222")

	// channel filter returns active destinations for this app only
	got, err := repo.ListByApplicationAndChannel(ctx, 1, vo.ChannelVCash)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "01012345678", got[0].Value())

	all, err := repo.ListByApplication(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTransactionRepository_FindOldestUnclaimedMatch(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTransactionRepository(gdb)
	ctx := context.Background()

	dest := seedDestination(t, gdb, 1, vo.ChannelVCash, "01012345678")
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	newer := seedTransaction(t, gdb, dest.DBID(), "01055555555", "150", base.Add(time.Hour))
	older := seedTransaction(t, gdb, dest.DBID(), "01055555555", "150", base)
	seedTransaction(t, gdb, dest.DBID(), "01055555555", "200", base) // wrong amount
	seedTransaction(t, gdb, dest.DBID(), "01066666666", "150", base) // wrong sender

	amount, err := vo.ParseAmount("150", "")
	require.NoError(t, err)

	match, err := repo.FindOldestUnclaimedMatch(ctx, dest.DBID(), "01055555555", amount)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, older.Ref(), match.Ref())

	// claiming removes it from the pool; next match is the newer one
	require.NoError(t, match.MarkClaimed("vr_test1234"))
	require.NoError(t, repo.Update(ctx, match))

	match, err = repo.FindOldestUnclaimedMatch(ctx, dest.DBID(), "01055555555", amount)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, newer.Ref(), match.Ref())

	// no match returns nil without error
	require.NoError(t, match.MarkClaimed("vr_test5678"))
	require.NoError(t, repo.Update(ctx, match))

	match, err = repo.FindOldestUnclaimedMatch(ctx, dest.DBID(), "01055555555", amount)
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestVerificationRepository_Lifecycle(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewVerificationRepository(gdb)
	ctx := context.Background()

	sender, err := vo.NewSenderIdentifier("01055555555", vo.ChannelVCash, vo.TrustDashboard)
	require.NoError(t, err)
	amount, err := vo.ParseAmount("150", "")
	require.NoError(t, err)

	v, err := verification.NewVerification(1, 2, sender, amount)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, v))
	require.NotZero(t, v.DBID())

	got, err := repo.GetByRef(ctx, v.Ref())
	require.NoError(t, err)
	assert.Equal(t, verification.StatusPending, got.Status())
	assert.Equal(t, "01055555555", got.Sender().Value())

	require.NoError(t, got.AttachMatch(99))
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByRef(ctx, v.Ref())
	require.NoError(t, err)
	assert.Equal(t, verification.StatusMatched, got.Status())
	require.NotNil(t, got.MatchedTransactionID())
	assert.Equal(t, uint(99), *got.MatchedTransactionID())

	open, total, err := repo.ListOpen(ctx, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, open, 1)

	require.NoError(t, got.Decide(verification.StatusVerified, 7))
	require.NoError(t, repo.Update(ctx, got))

	_, total, err = repo.ListOpen(ctx, 0, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
}
