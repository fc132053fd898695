package service

import (
	"context"
	"testing"

	"github.com/AdamBeresnev/beach-volley/internal/revenue"
	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/AdamBeresnev/beach-volley/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevenueNeedsTournamentName(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.revenue.Current(context.Background())
	assert.ErrorIs(t, err, tournament.ErrMissingName)
}

func TestRevenueLedgerLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teams := env.registerTeams(t, 3)

	data, err := env.revenue.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Torneo di Prova", data.Ledger.TournamentName)
	assert.Equal(t, int64(2000), data.Ledger.EntryFeeCents)
	assert.Len(t, data.Payments, 3)
	assert.Equal(t, int64(6000), data.Summary.ExpectedCents)
	assert.Equal(t, int64(6000), data.Summary.OutstandingCents)

	data, err = env.revenue.SetEntryFee(ctx, 2500)
	require.NoError(t, err)
	assert.Equal(t, int64(7500), data.Summary.ExpectedCents)

	data, err = env.revenue.RecordPayment(ctx, PaymentInput{TeamID: teams[0].ID, Paid: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2500), data.Summary.CollectedCents)
	assert.Equal(t, 1, data.Summary.PaidTeams)

	data, err = env.revenue.RecordPayment(ctx, PaymentInput{TeamID: teams[1].ID, Paid: true, AmountCents: utils.Ptr(int64(1000)), Note: "sconto"})
	require.NoError(t, err)
	assert.Equal(t, int64(3500), data.Summary.CollectedCents)
	assert.Equal(t, int64(2500), data.Summary.OutstandingCents)

	history, err := env.revenue.History(ctx)
	require.NoError(t, err)
	require.Len(t, history.Rows, 1)
	assert.Equal(t, int64(3500), history.CollectedCents)
}

func TestRecordPaymentErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teams := env.registerTeams(t, 2)

	_, err := env.revenue.RecordPayment(ctx, PaymentInput{TeamID: uuid.New(), Paid: true})
	assert.ErrorIs(t, err, tournament.ErrTeamNotFound)

	_, err = env.revenue.RecordPayment(ctx, PaymentInput{TeamID: teams[0].ID, AmountCents: utils.Ptr(int64(-5))})
	assert.ErrorIs(t, err, revenue.ErrNegativeAmount)

	_, err = env.revenue.SetEntryFee(ctx, -1)
	assert.ErrorIs(t, err, revenue.ErrNegativeAmount)
}
