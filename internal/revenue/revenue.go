package revenue

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/google/uuid"
)

const DefaultEntryFeeCents int64 = 2000

var (
	ErrNegativeAmount = fmt.Errorf("%w: amounts cannot be negative", tournament.ErrValidation)
	ErrLedgerNotFound = errors.New("ledger not found")
)

// Ledger holds the entry fee and the payments of one tournament. Teams with
// no payment row owe the full fee.
type Ledger struct {
	TournamentName string    `db:"tournament_name" json:"tournament_name"`
	Date           string    `db:"date" json:"date"`
	EntryFeeCents  int64     `db:"entry_fee_cents" json:"entry_fee_cents"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	Payments       []Payment `db:"-" json:"payments"`
}

type Payment struct {
	TournamentName string    `db:"tournament_name" json:"-"`
	TeamID         uuid.UUID `db:"team_id" json:"team_id"`
	TeamName       string    `db:"team_name" json:"team_name"`
	Paid           bool      `db:"paid" json:"paid"`
	AmountCents    int64     `db:"amount_cents" json:"amount_cents"`
	Note           string    `db:"note" json:"note"`
}

func (p Payment) Validate() error {
	if p.AmountCents < 0 {
		return ErrNegativeAmount
	}
	return nil
}

type Summary struct {
	TeamCount        int     `json:"team_count"`
	ExpectedCents    int64   `json:"expected_cents"`
	CollectedCents   int64   `json:"collected_cents"`
	OutstandingCents int64   `json:"outstanding_cents"`
	PaidTeams        int     `json:"paid_teams"`
	UnpaidTeams      int     `json:"unpaid_teams"`
	CollectedPercent float64 `json:"collected_percent"`
}

// PaymentsFor lists one payment per registered team, filling in the default
// unpaid fee where the ledger has nothing yet.
func PaymentsFor(ledger Ledger, teams []tournament.Team) []Payment {
	byTeam := make(map[uuid.UUID]Payment, len(ledger.Payments))
	for _, p := range ledger.Payments {
		byTeam[p.TeamID] = p
	}

	payments := make([]Payment, 0, len(teams))
	for _, team := range teams {
		p, ok := byTeam[team.ID]
		if !ok {
			p = Payment{
				TournamentName: ledger.TournamentName,
				TeamID:         team.ID,
				AmountCents:    ledger.EntryFeeCents,
			}
		}
		p.TeamName = team.Name
		payments = append(payments, p)
	}
	return payments
}

// Summarize totals the payments of the registered teams. Expected is the fee
// times the number of teams, whatever the single amounts say.
func Summarize(ledger Ledger, teams []tournament.Team) Summary {
	s := Summary{
		TeamCount:     len(teams),
		ExpectedCents: ledger.EntryFeeCents * int64(len(teams)),
	}
	for _, p := range PaymentsFor(ledger, teams) {
		if p.Paid {
			s.PaidTeams++
			s.CollectedCents += p.AmountCents
		} else {
			s.UnpaidTeams++
			s.OutstandingCents += p.AmountCents
		}
	}
	if s.ExpectedCents > 0 {
		percent := float64(s.CollectedCents) / float64(s.ExpectedCents) * 100
		s.CollectedPercent = math.Round(percent*10) / 10
	}
	return s
}

type HistoryRow struct {
	TournamentName   string `json:"tournament_name"`
	Date             string `json:"date"`
	Payments         int    `json:"payments"`
	CollectedCents   int64  `json:"collected_cents"`
	OutstandingCents int64  `json:"outstanding_cents"`
}

// History totals every ledger from its recorded payments only, since past
// team lists are no longer available.
func History(ledgers []Ledger) ([]HistoryRow, int64) {
	rows := make([]HistoryRow, 0, len(ledgers))
	var total int64
	for _, l := range ledgers {
		row := HistoryRow{TournamentName: l.TournamentName, Date: l.Date, Payments: len(l.Payments)}
		for _, p := range l.Payments {
			if p.Paid {
				row.CollectedCents += p.AmountCents
			} else {
				row.OutstandingCents += p.AmountCents
			}
		}
		total += row.CollectedCents
		rows = append(rows, row)
	}
	return rows, total
}

// FormatCents renders an amount as "€ 20.00".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s€ %d.%02d", sign, cents/100, cents%100)
}
