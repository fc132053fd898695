package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AdamBeresnev/beach-volley/internal/revenue"
	"github.com/jmoiron/sqlx"
)

const (
	getLedgerQuery    = "SELECT * FROM revenue_ledgers WHERE tournament_name = ?"
	listLedgersQuery  = "SELECT * FROM revenue_ledgers ORDER BY date ASC, created_at ASC"
	getPaymentsQuery  = "SELECT * FROM revenue_payments WHERE tournament_name = ? ORDER BY team_name ASC"
	listPaymentsQuery = "SELECT * FROM revenue_payments ORDER BY tournament_name ASC, team_name ASC"
	createLedgerQuery = `
		INSERT INTO revenue_ledgers (tournament_name, date, entry_fee_cents, created_at)
		VALUES (:tournament_name, :date, :entry_fee_cents, :created_at)
		ON CONFLICT (tournament_name) DO NOTHING
	`
	updateLedgerFeeQuery = "UPDATE revenue_ledgers SET entry_fee_cents = ? WHERE tournament_name = ?"
	upsertPaymentQuery   = `
		INSERT INTO revenue_payments (tournament_name, team_id, team_name, paid, amount_cents, note)
		VALUES (:tournament_name, :team_id, :team_name, :paid, :amount_cents, :note)
		ON CONFLICT (tournament_name, team_id) DO UPDATE SET
			team_name = excluded.team_name,
			paid = excluded.paid,
			amount_cents = excluded.amount_cents,
			note = excluded.note
	`
)

type RevenueStore struct {
	db *sqlx.DB
}

func NewRevenueStore(db *sqlx.DB) *RevenueStore {
	return &RevenueStore{db: db}
}

// EnsureLedger creates the ledger unless one exists for the tournament.
func (s *RevenueStore) EnsureLedger(ctx context.Context, tx *sqlx.Tx, ledger *revenue.Ledger) error {
	_, err := tx.NamedExecContext(ctx, createLedgerQuery, ledger)
	return err
}

func (s *RevenueStore) GetLedgerTx(ctx context.Context, tx *sqlx.Tx, tournamentName string) (*revenue.Ledger, error) {
	var ledger revenue.Ledger
	if err := tx.GetContext(ctx, &ledger, getLedgerQuery, tournamentName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, revenue.ErrLedgerNotFound
		}
		return nil, err
	}

	ledger.Payments = []revenue.Payment{}
	if err := tx.SelectContext(ctx, &ledger.Payments, getPaymentsQuery, tournamentName); err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}
	return &ledger, nil
}

func (s *RevenueStore) UpdateEntryFee(ctx context.Context, tx *sqlx.Tx, tournamentName string, feeCents int64) error {
	res, err := tx.ExecContext(ctx, updateLedgerFeeQuery, feeCents, tournamentName)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return revenue.ErrLedgerNotFound
	}
	return nil
}

func (s *RevenueStore) UpsertPayment(ctx context.Context, tx *sqlx.Tx, payment *revenue.Payment) error {
	_, err := tx.NamedExecContext(ctx, upsertPaymentQuery, payment)
	return err
}

// ListLedgers returns every ledger with its payments, oldest first.
func (s *RevenueStore) ListLedgers(ctx context.Context) ([]revenue.Ledger, error) {
	ledgers := []revenue.Ledger{}
	if err := s.db.SelectContext(ctx, &ledgers, listLedgersQuery); err != nil {
		return nil, fmt.Errorf("failed to list ledgers: %w", err)
	}

	var payments []revenue.Payment
	if err := s.db.SelectContext(ctx, &payments, listPaymentsQuery); err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	byLedger := make(map[string][]revenue.Payment)
	for _, p := range payments {
		byLedger[p.TournamentName] = append(byLedger[p.TournamentName], p)
	}
	for i := range ledgers {
		ledgers[i].Payments = byLedger[ledgers[i].TournamentName]
		if ledgers[i].Payments == nil {
			ledgers[i].Payments = []revenue.Payment{}
		}
	}
	return ledgers, nil
}
