package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/AdamBeresnev/beach-volley/internal/engine"
	"github.com/AdamBeresnev/beach-volley/internal/organizer"
	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/a-h/templ"
	"github.com/google/uuid"
)

func esc(s string) string {
	return templ.EscapeString(s)
}

func layout(title string, o *organizer.Organizer, body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="it"><head><meta charset="utf-8">`)
		fmt.Fprintf(&b, `<title>%s</title></head><body>`, esc(title))
		b.WriteString(`<nav><a href="/">Torneo</a> <a href="/ranking">Classifica</a>`)
		if o != nil {
			fmt.Fprintf(&b, ` <span class="organizer">%s</span>`, esc(o.DisplayName()))
			b.WriteString(`<form method="post" action="/logout"><button>Esci</button></form>`)
		} else {
			b.WriteString(` <a href="/login">Accedi</a>`)
		}
		b.WriteString(`</nav><main>`)
		b.WriteString(body)
		b.WriteString(`</main><script>new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws/tournament").onmessage = () => location.reload();</script></body></html>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func LoginPage() templ.Component {
	return layout("Accedi", nil, `<h1>Accedi</h1>`+
		`<p><a href="/auth/google">Google</a> <a href="/auth/discord">Discord</a></p>`+
		`<form method="post" action="/auth/guest"><button>Entra come ospite</button></form>`)
}

func TournamentPage(state *tournament.State, tables []GroupTable, bracket BracketData, o *organizer.Organizer) templ.Component {
	var b strings.Builder
	name := state.Config.Name
	if name == "" {
		name = "Nuovo torneo"
	}
	fmt.Fprintf(&b, `<h1>%s</h1><p class="phase">%s · %s</p>`, esc(name), esc(string(state.Phase)), esc(state.Config.Date))

	if state.Winner != nil {
		fmt.Fprintf(&b, `<section class="podium"><h2>Podio</h2><ol>`)
		for _, p := range state.Podium {
			fmt.Fprintf(&b, `<li value="%d">%s</li>`, p.Position, esc(bracket.TeamNames[p.TeamID]))
		}
		b.WriteString(`</ol></section>`)
	}

	if len(state.Teams) > 0 && len(tables) == 0 {
		b.WriteString(`<section class="teams"><h2>Squadre</h2><ul>`)
		for _, t := range state.Teams {
			fmt.Fprintf(&b, `<li>%s</li>`, esc(t.Name))
		}
		b.WriteString(`</ul></section>`)
	}

	for _, table := range tables {
		writeGroupTable(&b, table, bracket.TeamNames)
	}

	if len(bracket.RoundNums) > 0 {
		b.WriteString(`<section class="bracket"><h2>Eliminazione diretta</h2>`)
		for _, r := range bracket.RoundNums {
			fmt.Fprintf(&b, `<div class="round"><h3>%s</h3>`, esc(bracket.RoundNames[r]))
			for _, m := range bracket.Rounds[r] {
				writeMatch(&b, m, bracket.TeamNames)
			}
			b.WriteString(`</div>`)
		}
		b.WriteString(`</section>`)
	}

	return layout(name, o, b.String())
}

func writeGroupTable(b *strings.Builder, table GroupTable, names map[uuid.UUID]string) {
	fmt.Fprintf(b, `<section class="group"><h2>%s</h2>`, esc(table.Name))
	b.WriteString(`<table><thead><tr><th>Squadra</th><th>Punti</th><th>V</th><th>P</th><th>Set</th><th>Diff</th></tr></thead><tbody>`)
	for _, t := range table.Standings {
		fmt.Fprintf(b, `<tr><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%d-%d</td><td>%+d</td></tr>`,
			esc(t.Name), t.Points, t.Wins, t.Losses, t.SetsWon, t.SetsLost, t.PointDiff())
	}
	b.WriteString(`</tbody></table>`)
	for _, m := range table.Matches {
		writeMatch(b, m, names)
	}
	b.WriteString(`</section>`)
}

func writeMatch(b *strings.Builder, m tournament.Match, names map[uuid.UUID]string) {
	if m.IsBye {
		fmt.Fprintf(b, `<div class="match bye">%s passa il turno</div>`, esc(names[m.Team1ID]))
		return
	}
	status := "da giocare"
	if m.Confirmed {
		sets := make([]string, len(m.Sets))
		for i, s := range m.Sets {
			sets[i] = fmt.Sprintf("%d-%d", s.A, s.B)
		}
		status = strings.Join(sets, ", ")
	}
	fmt.Fprintf(b, `<div class="match" data-match-id="%s"><a href="/matches/%s">%s vs %s</a> <span>%s</span></div>`,
		esc(m.ID.String()), esc(m.ID.String()), esc(names[m.Team1ID]), esc(names[m.Team2ID]), esc(status))
}

func RankingPage(rows []engine.RankingRow, o *organizer.Organizer) templ.Component {
	var b strings.Builder
	b.WriteString(`<h1>Classifica generale</h1>`)
	if len(rows) == 0 {
		b.WriteString(`<p>Nessun torneo concluso.</p>`)
		return layout("Classifica", o, b.String())
	}

	b.WriteString(`<table><thead><tr><th>#</th><th>Atleta</th><th>Punti</th><th>Tornei</th><th>Oro</th><th>Argento</th><th>Bronzo</th><th>Vittorie %</th></tr></thead><tbody>`)
	for i, r := range rows {
		fmt.Fprintf(&b, `<tr><td>%d</td><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%.1f</td></tr>`,
			i+1, esc(r.Name), r.Points, r.Tournaments, r.Gold, r.Silver, r.Bronze, r.WinRate)
	}
	b.WriteString(`</tbody></table>`)
	return layout("Classifica", o, b.String())
}
