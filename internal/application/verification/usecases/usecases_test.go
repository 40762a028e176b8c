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
	"ta7wila/internal/domain/transaction"
	"ta7wila/internal/domain/verification"
	"ta7wila/internal/infrastructure/persistence/models"
	"ta7wila/internal/infrastructure/repository"
	"ta7wila/internal/shared/db"
	"ta7wila/internal/shared/logger"
)

type stubClaimGuard struct {
	allow    bool
	acquired int
	released int
}

func (g *stubClaimGuard) Acquire(ctx context.Context, destinationID uint, senderValue string, amountCents int64) (bool, error) {
	g.acquired++
	return g.allow, nil
}

func (g *stubClaimGuard) Release(ctx context.Context, destinationID uint, senderValue string, amountCents int64) error {
	g.released++
	return nil
}

type stubNotifier struct {
	refs []string
}

func (n *stubNotifier) NotifyDecision(ctx context.Context, v *verification.Verification) error {
	n.refs = append(n.refs, v.Ref())
	return nil
}

type fixture struct {
	gdb              *gorm.DB
	verificationRepo *repository.VerificationRepository
	transactionRepo  *repository.TransactionRepository
	destinationRepo  *repository.DestinationRepository
	txManager        *db.TransactionManager
	guard            *stubClaimGuard
	submit           *SubmitClaimUseCase
	check            *CheckVerificationUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(
		&models.DestinationModel{},
		&models.TransactionModel{},
		&models.VerificationModel{},
	))

	f := &fixture{
		gdb:              gdb,
		verificationRepo: repository.NewVerificationRepository(gdb),
		transactionRepo:  repository.NewTransactionRepository(gdb),
		destinationRepo:  repository.NewDestinationRepository(gdb),
		txManager:        db.NewTransactionManager(gdb),
		guard:            &stubClaimGuard{allow: true},
	}
	log := logger.NewLogger()
	f.submit = NewSubmitClaimUseCase(f.verificationRepo, f.transactionRepo, f.destinationRepo, f.guard, f.txManager, log, "EGP")
	f.check = NewCheckVerificationUseCase(f.verificationRepo, f.transactionRepo, f.txManager, log)
	return f
}

func (f *fixture) seedDestination(t *testing.T, appID uint, channel vo.ChannelKey, value string) *payment.Destination {
	t.Helper()
	d, err := payment.NewDestination(appID, channel, value)
	require.NoError(t, err)
	require.NoError(t, f.destinationRepo.Create(context.Background(), d))
	return d
}

func (f *fixture) seedTransaction(t *testing.T, dest *payment.Destination, sender, amount string, occurredAt time.Time) *transaction.Transaction {
	t.Helper()
	money, err := vo.ParseAmount(amount, "EGP")
	require.NoError(t, err)
	tx, err := transaction.NewTransaction(dest.ApplicationID(), dest.DBID(), dest.Channel(), sender, "Provider Sender", money, occurredAt)
	require.NoError(t, err)
	require.NoError(t, f.transactionRepo.Create(context.Background(), tx))
	return tx
}

func TestSubmitClaimUseCase_ImmediateMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dest := f.seedDestination(t, 1, vo.ChannelVCash, "01012345678")
	older := f.seedTransaction(t, dest, "01098765432", "150.00", time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))
	f.seedTransaction(t, dest, "01098765432", "150.00", time.Date(2026, 8, 1, 11, 0, 0, 0, time.UTC))

	result, err := f.submit.Execute(ctx, SubmitClaimCommand{
		ApplicationID:  1,
		DestinationSID: dest.SID(),
		SenderValue:    "01098765432",
		Amount:         "150.00",
		Trust:          vo.TrustDashboard,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Matched)

	// oldest transaction wins
	assert.Equal(t, older.Ref(), result.Matched.Ref())
	assert.Equal(t, verification.StatusMatched, result.Verification.Status())
	assert.Equal(t, 1, f.guard.acquired)
	assert.Equal(t, 1, f.guard.released)

	// the claimed transaction left the pool
	claimed, err := f.transactionRepo.GetByDBID(ctx, older.DBID())
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusClaimed, claimed.Status())
}

func TestSubmitClaimUseCase_NoMatchStaysPending(t *testing.T) {
	f := newFixture(t)
	dest := f.seedDestination(t, 1, vo.ChannelVCash, "01012345678")

	result, err := f.submit.Execute(context.Background(), SubmitClaimCommand{
		ApplicationID:  1,
		DestinationSID: dest.SID(),
		SenderValue:    "01098765432",
		Amount:         "150.00",
		Trust:          vo.TrustDashboard,
	})
	require.NoError(t, err)
	assert.Nil(t, result.Matched)
	assert.Equal(t, verification.StatusPending, result.Verification.Status())
}

func TestSubmitClaimUseCase_Validation(t *testing.T) {
	f := newFixture(t)
	dest := f.seedDestination(t, 1, vo.ChannelVCash, "01012345678")
	instapay := f.seedDestination(t, 1, vo.ChannelInstapay, "shop@bank")

	tests := []struct {
		name    string
		cmd     SubmitClaimCommand
		wantErr string
	}{
		{
			name: "zero amount",
			cmd: SubmitClaimCommand{
				ApplicationID: 1, DestinationSID: dest.SID(),
				SenderValue: "01098765432", Amount: "0", Trust: vo.TrustDashboard,
			},
			wantErr: "amount must be greater than zero",
		},
		{
			name: "bad mobile for wallet channel",
			cmd: SubmitClaimCommand{
				ApplicationID: 1, DestinationSID: dest.SID(),
				SenderValue: "0139999", Amount: "10", Trust: vo.TrustDashboard,
			},
			wantErr: "mobile number",
		},
		{
			name: "short public instapay handle",
			cmd: SubmitClaimCommand{
				ApplicationID: 1, DestinationSID: instapay.SID(),
				SenderValue: "ab@cd", Amount: "10", Trust: vo.TrustPublic,
			},
			wantErr: "at least 6",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.submit.Execute(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSubmitClaimUseCase_DestinationGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	otherApp := f.seedDestination(t, 2, vo.ChannelVCash, "01012345678")
	_, err := f.submit.Execute(ctx, SubmitClaimCommand{
		ApplicationID: 1, DestinationSID: otherApp.SID(),
		SenderValue: "01098765432", Amount: "10", Trust: vo.TrustDashboard,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	inactive := f.seedDestination(t, 1, vo.ChannelVCash, "01011111111")
	inactive.Deactivate()
	require.NoError(t, f.destinationRepo.Update(ctx, inactive))
	_, err = f.submit.Execute(ctx, SubmitClaimCommand{
		ApplicationID: 1, DestinationSID: inactive.SID(),
		SenderValue: "01098765432", Amount: "10", Trust: vo.TrustDashboard,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not active")
}

func TestSubmitClaimUseCase_GuardConflict(t *testing.T) {
	f := newFixture(t)
	f.guard.allow = false
	dest := f.seedDestination(t, 1, vo.ChannelVCash, "01012345678")

	_, err := f.submit.Execute(context.Background(), SubmitClaimCommand{
		ApplicationID: 1, DestinationSID: dest.SID(),
		SenderValue: "01098765432", Amount: "10", Trust: vo.TrustDashboard,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already being processed")
	assert.Equal(t, 0, f.guard.released)
}

func TestCheckVerificationUseCase_MatchesLateTransaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dest := f.seedDestination(t, 1, vo.ChannelVCash, "01012345678")

	submitted, err := f.submit.Execute(ctx, SubmitClaimCommand{
		ApplicationID: 1, DestinationSID: dest.SID(),
		SenderValue: "01098765432", Amount: "75.50", Trust: vo.TrustDashboard,
	})
	require.NoError(t, err)
	require.Nil(t, submitted.Matched)

	// callback arrives after the claim
	late := f.seedTransaction(t, dest, "01098765432", "75.50", time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC))

	checked, err := f.check.Execute(ctx, CheckVerificationCommand{Ref: submitted.Verification.Ref()})
	require.NoError(t, err)
	require.NotNil(t, checked.Matched)
	assert.Equal(t, late.Ref(), checked.Matched.Ref())
	assert.Equal(t, verification.StatusMatched, checked.Verification.Status())
}

func TestDecideVerificationUseCase_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	notifier := &stubNotifier{}
	log := logger.NewLogger()
	decide := NewDecideVerificationUseCase(f.verificationRepo, notifier, log)

	dest := f.seedDestination(t, 1, vo.ChannelVCash, "01012345678")
	pending, err := f.submit.Execute(ctx, SubmitClaimCommand{
		ApplicationID: 1, DestinationSID: dest.SID(),
		SenderValue: "01098765432", Amount: "75.50", Trust: vo.TrustDashboard,
	})
	require.NoError(t, err)

	// deciding an unmatched claim is refused
	_, err = decide.Execute(ctx, DecideVerificationCommand{
		Ref: pending.Verification.Ref(), Decision: "verified", ReviewerID: 9,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before a transaction match")

	f.seedTransaction(t, dest, "01098765432", "75.50", time.Now().UTC())
	_, err = f.check.Execute(ctx, CheckVerificationCommand{Ref: pending.Verification.Ref()})
	require.NoError(t, err)

	decided, err := decide.Execute(ctx, DecideVerificationCommand{
		Ref: pending.Verification.Ref(), Decision: "verified", ReviewerID: 9,
	})
	require.NoError(t, err)
	assert.Equal(t, verification.StatusVerified, decided.Verification.Status())
	assert.Equal(t, []string{pending.Verification.Ref()}, notifier.refs)

	// decisions are final
	_, err = decide.Execute(ctx, DecideVerificationCommand{
		Ref: pending.Verification.Ref(), Decision: "rejected", ReviewerID: 9,
	})
	require.Error(t, err)
}

func TestDecideVerificationUseCase_InvalidDecision(t *testing.T) {
	f := newFixture(t)
	decide := NewDecideVerificationUseCase(f.verificationRepo, nil, logger.NewLogger())

	_, err := decide.Execute(context.Background(), DecideVerificationCommand{
		Ref: "vr_whatever", Decision: "maybe", ReviewerID: 1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verified or rejected")
}
