package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AdamBeresnev/beach-volley/internal/revenue"
	"github.com/AdamBeresnev/beach-volley/internal/store"
	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type RevenueService struct {
	db         *sqlx.DB
	store      *store.RevenueStore
	state      *StateManager
	defaultFee int64
	now        func() time.Time
}

func NewRevenueService(db *sqlx.DB, store *store.RevenueStore, state *StateManager, defaultFeeCents int64) *RevenueService {
	return &RevenueService{db: db, store: store, state: state, defaultFee: defaultFeeCents, now: time.Now}
}

type RevenueData struct {
	Ledger   revenue.Ledger    `json:"ledger"`
	Payments []revenue.Payment `json:"payments"`
	Summary  revenue.Summary   `json:"summary"`
}

// Current returns the ledger of the running tournament, creating it with
// the default fee on first access.
func (s *RevenueService) Current(ctx context.Context) (*RevenueData, error) {
	var data *RevenueData
	err := s.withLedger(ctx, func(tx *sqlx.Tx, st *tournament.State, ledger *revenue.Ledger) error {
		data = &RevenueData{
			Ledger:   *ledger,
			Payments: revenue.PaymentsFor(*ledger, st.Teams),
			Summary:  revenue.Summarize(*ledger, st.Teams),
		}
		return nil
	})
	return data, err
}

func (s *RevenueService) SetEntryFee(ctx context.Context, feeCents int64) (*RevenueData, error) {
	if feeCents < 0 {
		return nil, revenue.ErrNegativeAmount
	}
	err := s.withLedger(ctx, func(tx *sqlx.Tx, st *tournament.State, ledger *revenue.Ledger) error {
		return s.store.UpdateEntryFee(ctx, tx, ledger.TournamentName, feeCents)
	})
	if err != nil {
		return nil, err
	}
	return s.Current(ctx)
}

type PaymentInput struct {
	TeamID      uuid.UUID `json:"team_id"`
	Paid        bool      `json:"paid"`
	AmountCents *int64    `json:"amount_cents"`
	Note        string    `json:"note"`
}

// RecordPayment stores the payment state of one registered team. A missing
// amount means the ledger's entry fee.
func (s *RevenueService) RecordPayment(ctx context.Context, in PaymentInput) (*RevenueData, error) {
	err := s.withLedger(ctx, func(tx *sqlx.Tx, st *tournament.State, ledger *revenue.Ledger) error {
		team, err := st.Team(in.TeamID)
		if err != nil {
			return err
		}
		p := revenue.Payment{
			TournamentName: ledger.TournamentName,
			TeamID:         team.ID,
			TeamName:       team.Name,
			Paid:           in.Paid,
			AmountCents:    ledger.EntryFeeCents,
			Note:           in.Note,
		}
		if in.AmountCents != nil {
			p.AmountCents = *in.AmountCents
		}
		if err := p.Validate(); err != nil {
			return err
		}
		return s.store.UpsertPayment(ctx, tx, &p)
	})
	if err != nil {
		return nil, err
	}
	return s.Current(ctx)
}

type RevenueHistory struct {
	Rows           []revenue.HistoryRow `json:"rows"`
	CollectedCents int64                `json:"collected_cents"`
}

func (s *RevenueService) History(ctx context.Context) (*RevenueHistory, error) {
	ledgers, err := s.store.ListLedgers(ctx)
	if err != nil {
		return nil, err
	}
	rows, total := revenue.History(ledgers)
	return &RevenueHistory{Rows: rows, CollectedCents: total}, nil
}

func (s *RevenueService) withLedger(ctx context.Context, fn func(*sqlx.Tx, *tournament.State, *revenue.Ledger) error) error {
	st, err := s.state.Snapshot()
	if err != nil {
		return err
	}
	if st.Config.Name == "" {
		return tournament.ErrMissingName
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = s.store.EnsureLedger(ctx, tx, &revenue.Ledger{
		TournamentName: st.Config.Name,
		Date:           st.Config.Date,
		EntryFeeCents:  s.defaultFee,
		CreatedAt:      s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to create ledger: %w", err)
	}
	ledger, err := s.store.GetLedgerTx(ctx, tx, st.Config.Name)
	if err != nil {
		if errors.Is(err, revenue.ErrLedgerNotFound) {
			return err
		}
		return fmt.Errorf("failed to read ledger: %w", err)
	}

	if err := fn(tx, st, ledger); err != nil {
		return err
	}
	return tx.Commit()
}
