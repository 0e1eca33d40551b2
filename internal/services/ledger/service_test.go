package ledger

import (
	"context"
	"testing"
	"time"

	"cardbank/internal/models"
	"cardbank/internal/repositories"
	"cardbank/internal/services/authz"
	"cardbank/internal/services/limit"
	"cardbank/internal/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, store *storetest.Store) Service {
	t.Helper()
	svc := NewService(store, limit.DefaultConfig()).(*service)
	svc.now = func() time.Time { return testNow }
	return svc
}

func seedActiveCard(store *storetest.Store, balance string, ownerID uint) uint {
	card := models.Card{
		MaskedCardNumber: "**** **** **** 1234",
		Status:           models.CardStatusActive,
		Balance:          models.MustMoney(balance),
	}
	if ownerID != 0 {
		card.UserID = &ownerID
	}
	return store.SeedCard(card)
}

func seedLimit(store *storetest.Store, cardID uint, kind models.LimitKind, cap, remaining string) uint {
	cfg := limit.DefaultConfig()
	start := testNow.Add(-time.Hour)
	return store.SeedLimit(models.CardLimit{
		CardID:      cardID,
		Kind:        kind,
		Cap:         models.MustMoney(cap),
		Remaining:   models.MustMoney(remaining),
		WindowStart: start,
		WindowEnd:   cfg.WindowEnd(kind, start),
	})
}

func TestDebitHappyPath(t *testing.T) {
	store := storetest.New()
	cardID := seedActiveCard(store, "1000", 1)
	svc := newTestService(t, store)

	txn, err := svc.Debit(context.Background(), cardID, models.MustMoney("100"), "Test")
	require.NoError(t, err)

	assert.True(t, txn.Amount.Equal(models.MustMoney("-100")))
	assert.Equal(t, "Test", txn.Description)
	assert.Equal(t, cardID, txn.CardID)
	assert.Equal(t, testNow, txn.Timestamp)
	assert.NotEmpty(t, txn.Reference)

	card, err := store.GetByID(cardID)
	require.NoError(t, err)
	assert.True(t, card.Balance.Equal(models.MustMoney("900")))
	assert.Equal(t, 1, store.TransactionCount())
}

func TestDebitInsufficientFunds(t *testing.T) {
	store := storetest.New()
	cardID := seedActiveCard(store, "50", 1)
	svc := newTestService(t, store)

	_, err := svc.Debit(context.Background(), cardID, models.MustMoney("100"), "Test")

	var insufficient *InsufficientFundsError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Shortfall.Equal(models.MustMoney("50")))

	card, _ := store.GetByID(cardID)
	assert.True(t, card.Balance.Equal(models.MustMoney("50")))
	assert.Equal(t, 0, store.TransactionCount())
}

func TestDebitLimitExceededLeavesEverythingUnchanged(t *testing.T) {
	store := storetest.New()
	cardID := seedActiveCard(store, "1000", 1)
	limitID := seedLimit(store, cardID, models.LimitKindDay, "500", "200")
	svc := newTestService(t, store)

	_, err := svc.Debit(context.Background(), cardID, models.MustMoney("300"), "Test")

	var exceeded *limit.ExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, models.LimitKindDay, exceeded.Kind)

	card, _ := store.GetByID(cardID)
	assert.True(t, card.Balance.Equal(models.MustMoney("1000")))
	l, ok := store.Limit(limitID)
	require.True(t, ok)
	assert.True(t, l.Remaining.Equal(models.MustMoney("200")))
	assert.Equal(t, 0, store.TransactionCount())
}

func TestDebitSecondLimitFailureRevertsFirst(t *testing.T) {
	// Two limits; DAY covers the amount, MONTH does not. Neither the first
	// limit's reservation nor the balance may survive.
	store := storetest.New()
	cardID := seedActiveCard(store, "1000", 1)
	dayID := seedLimit(store, cardID, models.LimitKindDay, "500", "500")
	monthID := seedLimit(store, cardID, models.LimitKindMonth, "1000", "100")
	svc := newTestService(t, store)

	_, err := svc.Debit(context.Background(), cardID, models.MustMoney("300"), "Test")

	var exceeded *limit.ExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, models.LimitKindMonth, exceeded.Kind)

	day, _ := store.Limit(dayID)
	assert.True(t, day.Remaining.Equal(models.MustMoney("500")))
	month, _ := store.Limit(monthID)
	assert.True(t, month.Remaining.Equal(models.MustMoney("100")))
	card, _ := store.GetByID(cardID)
	assert.True(t, card.Balance.Equal(models.MustMoney("1000")))
	assert.Equal(t, 0, store.TransactionCount())
}

func TestDebitPassingAllLimitsCommitsAll(t *testing.T) {
	store := storetest.New()
	cardID := seedActiveCard(store, "1000", 1)
	dayID := seedLimit(store, cardID, models.LimitKindDay, "500", "500")
	monthID := seedLimit(store, cardID, models.LimitKindMonth, "1000", "800")
	svc := newTestService(t, store)

	_, err := svc.Debit(context.Background(), cardID, models.MustMoney("300"), "Test")
	require.NoError(t, err)

	day, _ := store.Limit(dayID)
	assert.True(t, day.Remaining.Equal(models.MustMoney("200")))
	month, _ := store.Limit(monthID)
	assert.True(t, month.Remaining.Equal(models.MustMoney("500")))
	card, _ := store.GetByID(cardID)
	assert.True(t, card.Balance.Equal(models.MustMoney("700")))
}

func TestDebitRollsExpiredWindowThenEvaluates(t *testing.T) {
	store := storetest.New()
	cardID := seedActiveCard(store, "1000", 1)
	cfg := limit.DefaultConfig()
	start := testNow.Add(-25 * time.Hour) // window ended an hour ago
	limitID := store.SeedLimit(models.CardLimit{
		CardID:      cardID,
		Kind:        models.LimitKindDay,
		Cap:         models.MustMoney("500"),
		Remaining:   models.MustMoney("0"),
		WindowStart: start,
		WindowEnd:   cfg.WindowEnd(models.LimitKindDay, start),
	})
	svc := newTestService(t, store)

	_, err := svc.Debit(context.Background(), cardID, models.MustMoney("400"), "Test")
	require.NoError(t, err)

	l, _ := store.Limit(limitID)
	assert.True(t, l.Remaining.Equal(models.MustMoney("100")))
	assert.Equal(t, testNow, l.WindowStart)
	assert.True(t, l.Cap.Equal(models.MustMoney("500")))
}

func TestDebitValidation(t *testing.T) {
	store := storetest.New()
	cardID := seedActiveCard(store, "1000", 1)
	svc := newTestService(t, store)

	tests := []struct {
		name    string
		cardID  uint
		amount  models.Money
		wantErr error
	}{
		{"zero amount", cardID, models.Zero, ErrInvalidAmount},
		{"negative amount", cardID, models.MustMoney("-5"), ErrInvalidAmount},
		{"missing card", cardID + 99, models.MustMoney("5"), repositories.ErrCardNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Debit(context.Background(), tt.cardID, tt.amount, "Test")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, store.TransactionCount())
		})
	}
}

func TestDebitBlockedCard(t *testing.T) {
	store := storetest.New()
	ownerID := uint(1)
	cardID := store.SeedCard(models.Card{
		Status:  models.CardStatusBlocked,
		Balance: models.MustMoney("1000"),
		UserID:  &ownerID,
	})
	svc := newTestService(t, store)

	_, err := svc.Debit(context.Background(), cardID, models.MustMoney("10"), "Test")
	assert.ErrorIs(t, err, ErrCardBlocked)

	card, _ := store.GetByID(cardID)
	assert.True(t, card.Balance.Equal(models.MustMoney("1000")))
}

func TestDuplicateDebitsAreNotDeduplicated(t *testing.T) {
	store := storetest.New()
	cardID := seedActiveCard(store, "1000", 1)
	svc := newTestService(t, store)

	for i := 0; i < 2; i++ {
		_, err := svc.Debit(context.Background(), cardID, models.MustMoney("100"), "Same call twice")
		require.NoError(t, err)
	}

	card, _ := store.GetByID(cardID)
	assert.True(t, card.Balance.Equal(models.MustMoney("800")))
	assert.Equal(t, 2, store.TransactionCount())
}

func TestCreditIgnoresLimitsAndFloor(t *testing.T) {
	store := storetest.New()
	cardID := seedActiveCard(store, "0", 1)
	limitID := seedLimit(store, cardID, models.LimitKindDay, "500", "0")
	svc := newTestService(t, store)

	txn, err := svc.Credit(context.Background(), cardID, models.MustMoney("250.50"), "Refund")
	require.NoError(t, err)
	assert.True(t, txn.Amount.Equal(models.MustMoney("250.50")))

	card, _ := store.GetByID(cardID)
	assert.True(t, card.Balance.Equal(models.MustMoney("250.50")))
	// Credits never touch limit allowances.
	l, _ := store.Limit(limitID)
	assert.True(t, l.Remaining.IsZero())
}

func TestCreditRejectsNonPositiveAmount(t *testing.T) {
	store := storetest.New()
	cardID := seedActiveCard(store, "0", 1)
	svc := newTestService(t, store)

	_, err := svc.Credit(context.Background(), cardID, models.Zero, "Nope")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestListTransactionsAuthorization(t *testing.T) {
	store := storetest.New()
	cardID := seedActiveCard(store, "1000", 7)
	svc := newTestService(t, store)

	_, err := svc.Debit(context.Background(), cardID, models.MustMoney("100"), "Coffee")
	require.NoError(t, err)

	owner := models.Principal{UserID: 7, Role: models.RoleUser}
	admin := models.Principal{UserID: 99, Role: models.RoleAdmin}
	stranger := models.Principal{UserID: 8, Role: models.RoleUser}

	txns, err := svc.ListTransactions(context.Background(), cardID, owner)
	require.NoError(t, err)
	assert.Len(t, txns, 1)

	_, err = svc.ListTransactions(context.Background(), cardID, admin)
	assert.NoError(t, err)

	_, err = svc.ListTransactions(context.Background(), cardID, stranger)
	assert.ErrorIs(t, err, authz.ErrAccessDenied)
}
