package main

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/AdamBeresnev/beach-volley/internal/httputil"
	"github.com/AdamBeresnev/beach-volley/internal/importer"
	"github.com/AdamBeresnev/beach-volley/internal/service"
	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/AdamBeresnev/beach-volley/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func respond(w http.ResponseWriter, status int, data any) {
	if err := httputil.WriteJSON(w, status, data, nil); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.BadRequest(w, "Invalid id", err)
		return uuid.Nil, false
	}
	return id, true
}

func readBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httputil.ReadJSON(w, r, dst); err != nil {
		httputil.BadRequest(w, err.Error(), err)
		return false
	}
	return true
}

func parseSide(s string) (tournament.Side, bool) {
	switch strings.ToLower(s) {
	case "a":
		return tournament.SideA, true
	case "b":
		return tournament.SideB, true
	}
	return tournament.NoSide, false
}

func (app *application) getState(w http.ResponseWriter, r *http.Request) {
	st, err := app.tournaments.State(r.Context())
	if err != nil {
		httputil.WriteError(w, "Failed to load tournament", err)
		return
	}
	respond(w, http.StatusOK, st)
}

func (app *application) getStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := app.tournaments.Standings(r.Context())
	if err != nil {
		httputil.WriteError(w, "Failed to compute standings", err)
		return
	}
	respond(w, http.StatusOK, standings)
}

func (app *application) getRanking(w http.ResponseWriter, r *http.Request) {
	rows, err := app.rankings.GlobalRanking(r.Context())
	if err != nil {
		httputil.WriteError(w, "Failed to load ranking", err)
		return
	}
	respond(w, http.StatusOK, rows)
}

func (app *application) getAthlete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	profile, err := app.rankings.AthleteProfile(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, "Failed to load athlete", err)
		return
	}
	respond(w, http.StatusOK, profile)
}

func (app *application) getMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	data, err := app.matches.GetMatchViewData(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, "Failed to load match", err)
		return
	}
	respond(w, http.StatusOK, data)
}

func (app *application) getDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := app.dashboard.Load(r.Context())
	if err != nil {
		httputil.WriteError(w, "Failed to load dashboard", err)
		return
	}
	respond(w, http.StatusOK, d)
}

func (app *application) createAthlete(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
	}
	if !readBody(w, r, &in) {
		return
	}
	a, err := app.tournaments.RegisterAthlete(r.Context(), in.Name)
	if err != nil {
		httputil.WriteError(w, "Failed to register athlete", err)
		return
	}
	respond(w, http.StatusCreated, a)
}

// importAthletes accepts either an HTML roster page or a JSON body with a
// pasted list.
func (app *application) importAthletes(w http.ResponseWriter, r *http.Request) {
	var parsed importer.Result
	if strings.HasPrefix(r.Header.Get("Content-Type"), "text/html") {
		var err error
		parsed, err = importer.ParseHTML(http.MaxBytesReader(w, r.Body, 1<<20))
		if err != nil {
			httputil.BadRequest(w, "Invalid roster", err)
			return
		}
	} else {
		var in struct {
			Text string `json:"text"`
		}
		if !readBody(w, r, &in) {
			return
		}
		parsed = importer.ParseLines(in.Text)
	}

	report, err := app.tournaments.ImportAthletes(r.Context(), parsed)
	if err != nil {
		httputil.WriteError(w, "Failed to import athletes", err)
		return
	}
	respond(w, http.StatusCreated, report)
}

func (app *application) createTeam(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name     string    `json:"name"`
		Athlete1 uuid.UUID `json:"athlete1_id"`
		Athlete2 uuid.UUID `json:"athlete2_id"`
	}
	if !readBody(w, r, &in) {
		return
	}
	team, err := app.tournaments.RegisterTeam(r.Context(), in.Name, in.Athlete1, in.Athlete2)
	if err != nil {
		httputil.WriteError(w, "Failed to register team", err)
		return
	}
	respond(w, http.StatusCreated, team)
}

func (app *application) deleteTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := app.tournaments.RemoveTeam(r.Context(), id); err != nil {
		httputil.WriteError(w, "Failed to remove team", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) updateConfig(w http.ResponseWriter, r *http.Request) {
	var cfg tournament.Config
	if !readBody(w, r, &cfg) {
		return
	}
	if err := app.tournaments.UpdateConfig(r.Context(), cfg); err != nil {
		httputil.WriteError(w, "Failed to update config", err)
		return
	}
	app.getState(w, r)
}

func (app *application) setSimulationToRanking(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Enabled bool `json:"enabled"`
	}
	if !readBody(w, r, &in) {
		return
	}
	if err := app.tournaments.SetSimulationToRanking(r.Context(), in.Enabled); err != nil {
		httputil.WriteError(w, "Failed to update setting", err)
		return
	}
	app.getState(w, r)
}

func (app *application) startGroupStage(w http.ResponseWriter, r *http.Request) {
	var in struct {
		GroupCount int `json:"group_count"`
	}
	if r.ContentLength > 0 && !readBody(w, r, &in) {
		return
	}
	if err := app.tournaments.StartGroupStage(r.Context(), in.GroupCount); err != nil {
		httputil.WriteError(w, "Failed to start group stage", err)
		return
	}
	app.getState(w, r)
}

func (app *application) startElimination(w http.ResponseWriter, r *http.Request) {
	dropped, err := app.tournaments.StartElimination(r.Context())
	if err != nil {
		httputil.WriteError(w, "Failed to start elimination", err)
		return
	}
	st, err := app.tournaments.State(r.Context())
	if err != nil {
		httputil.WriteError(w, "Failed to load tournament", err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"state": st, "dropped": dropped})
}

func (app *application) proclaim(w http.ResponseWriter, r *http.Request) {
	st, err := app.tournaments.Proclaim(r.Context())
	if err != nil {
		httputil.WriteError(w, "Failed to proclaim winner", err)
		return
	}
	respond(w, http.StatusOK, st)
}

func (app *application) newTournament(w http.ResponseWriter, r *http.Request) {
	archiveID, err := app.tournaments.NewTournament(r.Context())
	if err != nil {
		httputil.WriteError(w, "Failed to start a new tournament", err)
		return
	}
	resp := map[string]any{"archive_id": nil}
	if archiveID != uuid.Nil {
		resp["archive_id"] = archiveID
	}
	respond(w, http.StatusOK, resp)
}

func (app *application) listArchives(w http.ResponseWriter, r *http.Request) {
	archives, err := app.tournaments.Archives(r.Context())
	if err != nil {
		httputil.WriteError(w, "Failed to list archives", err)
		return
	}
	respond(w, http.StatusOK, archives)
}

func (app *application) getArchive(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	st, err := app.tournaments.ArchivedState(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, "Failed to load archive", err)
		return
	}
	respond(w, http.StatusOK, st)
}

func (app *application) confirmMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in struct {
		Sets []tournament.SetScore `json:"sets"`
	}
	if !readBody(w, r, &in) {
		return
	}
	m, err := app.matches.Confirm(r.Context(), id, in.Sets)
	if err != nil {
		httputil.WriteError(w, "Failed to confirm match", err)
		return
	}
	respond(w, http.StatusOK, m)
}

func (app *application) simulateMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	m, err := app.matches.Simulate(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, "Failed to simulate match", err)
		return
	}
	respond(w, http.StatusOK, m)
}

func (app *application) simulateGroup(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		httputil.BadRequest(w, "Invalid group index", err)
		return
	}
	n, err := app.matches.SimulateGroup(r.Context(), index)
	if err != nil {
		httputil.WriteError(w, "Failed to simulate group", err)
		return
	}
	respond(w, http.StatusOK, map[string]int{"simulated": n})
}

func (app *application) simulateAllGroups(w http.ResponseWriter, r *http.Request) {
	n, err := app.matches.SimulateAllGroups(r.Context())
	if err != nil {
		httputil.WriteError(w, "Failed to simulate groups", err)
		return
	}
	respond(w, http.StatusOK, map[string]int{"simulated": n})
}

func (app *application) simulateBracket(w http.ResponseWriter, r *http.Request) {
	n, err := app.matches.SimulateBracket(r.Context())
	if err != nil {
		httputil.WriteError(w, "Failed to simulate bracket", err)
		return
	}
	respond(w, http.StatusOK, map[string]int{"simulated": n})
}

func (app *application) getScoreboard(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	b, err := app.scoreboards.Board(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, "Failed to load scoreboard", err)
		return
	}
	respond(w, http.StatusOK, b)
}

type sideInput struct {
	Side string `json:"side"`
	Undo bool   `json:"undo"`
}

func (app *application) readSide(w http.ResponseWriter, r *http.Request) (sideInput, tournament.Side, bool) {
	var in sideInput
	if !readBody(w, r, &in) {
		return in, tournament.NoSide, false
	}
	side, ok := parseSide(in.Side)
	if !ok {
		httputil.BadRequest(w, `side must be "a" or "b"`, tournament.ErrInvalidSide)
		return in, tournament.NoSide, false
	}
	return in, side, true
}

func (app *application) scoreboardPoint(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	in, side, ok := app.readSide(w, r)
	if !ok {
		return
	}

	update := app.scoreboards.AddPoint
	if in.Undo {
		update = app.scoreboards.UndoPoint
	}
	b, err := update(r.Context(), id, side)
	if err != nil {
		httputil.WriteError(w, "Failed to update scoreboard", err)
		return
	}
	respond(w, http.StatusOK, b)
}

func (app *application) scoreboardServe(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	_, side, ok := app.readSide(w, r)
	if !ok {
		return
	}
	b, err := app.scoreboards.SetServing(r.Context(), id, side)
	if err != nil {
		httputil.WriteError(w, "Failed to update scoreboard", err)
		return
	}
	respond(w, http.StatusOK, b)
}

func (app *application) scoreboardReset(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	b, err := app.scoreboards.ResetSet(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, "Failed to reset set", err)
		return
	}
	respond(w, http.StatusOK, b)
}

func (app *application) scoreboardSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	m, err := app.scoreboards.Submit(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, "Failed to submit scoreboard", err)
		return
	}
	respond(w, http.StatusOK, m)
}

func (app *application) scoreboardDiscard(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	app.scoreboards.Discard(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) getRevenue(w http.ResponseWriter, r *http.Request) {
	data, err := app.revenue.Current(r.Context())
	if err != nil {
		httputil.WriteError(w, "Failed to load revenue", err)
		return
	}
	respond(w, http.StatusOK, data)
}

func (app *application) setEntryFee(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Amount string `json:"amount"`
	}
	if !readBody(w, r, &in) {
		return
	}
	cents, err := utils.ParseEuroCents(in.Amount)
	if err != nil {
		httputil.BadRequest(w, "Invalid amount", err)
		return
	}
	data, err := app.revenue.SetEntryFee(r.Context(), cents)
	if err != nil {
		httputil.WriteError(w, "Failed to update entry fee", err)
		return
	}
	respond(w, http.StatusOK, data)
}

func (app *application) recordPayment(w http.ResponseWriter, r *http.Request) {
	var in service.PaymentInput
	if !readBody(w, r, &in) {
		return
	}
	data, err := app.revenue.RecordPayment(r.Context(), in)
	if err != nil {
		httputil.WriteError(w, "Failed to record payment", err)
		return
	}
	respond(w, http.StatusOK, data)
}

func (app *application) getRevenueHistory(w http.ResponseWriter, r *http.Request) {
	history, err := app.revenue.History(r.Context())
	if err != nil {
		httputil.WriteError(w, "Failed to load revenue history", err)
		return
	}
	respond(w, http.StatusOK, history)
}
