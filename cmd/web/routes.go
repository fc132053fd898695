package main

import (
	"context"
	"net/http"

	"github.com/AdamBeresnev/beach-volley/internal/httputil"
	"github.com/AdamBeresnev/beach-volley/internal/live"
	"github.com/AdamBeresnev/beach-volley/internal/middleware"
	"github.com/AdamBeresnev/beach-volley/views"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/markbates/goth/gothic"
)

func newRouter(app *application) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(app.sessions.LoadAndSave)
	r.Use(middleware.LoadOrganizer(app.sessions, app.organizers))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		st, err := app.tournaments.State(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to load tournament", err)
			return
		}
		tables, err := views.PrepareGroupTables(st)
		if err != nil {
			httputil.InternalServerError(w, "Failed to compute standings", err)
			return
		}
		views.Render(w, r, views.TournamentPage(st, tables, views.PrepareBracketData(st), views.GetOrganizer(r.Context())))
	})

	r.Get("/ranking", func(w http.ResponseWriter, r *http.Request) {
		rows, err := app.rankings.GlobalRanking(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to load ranking", err)
			return
		}
		views.Render(w, r, views.RankingPage(rows, views.GetOrganizer(r.Context())))
	})

	r.Get("/ws/tournament", app.hub.Handler(app.cfg.AllowedOrigins, func(*http.Request) string {
		return live.RoomTournament
	}))
	r.Get("/ws/scoreboard/{matchID}", app.hub.Handler(app.cfg.AllowedOrigins, func(r *http.Request) string {
		return live.ScoreboardRoom(chi.URLParam(r, "matchID"))
	}))

	r.Get("/login", func(w http.ResponseWriter, r *http.Request) {
		views.Render(w, r, views.LoginPage())
	})

	r.Get("/auth/{provider}", func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")
		r = r.WithContext(context.WithValue(r.Context(), "provider", provider))

		gothic.BeginAuthHandler(w, r)
	})

	r.Get("/auth/{provider}/callback", func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")
		r = r.WithContext(context.WithValue(r.Context(), "provider", provider))

		gothUser, err := gothic.CompleteUserAuth(w, r)
		if err != nil {
			httputil.BadRequest(w, "Authentication failure", err)
			return
		}

		o, err := app.organizers.FindOrCreateByProvider(r.Context(), gothUser)
		if err != nil {
			httputil.InternalServerError(w, "Failed to find or create organizer", err)
			return
		}
		if err := middleware.Login(r.Context(), app.sessions, o.ID); err != nil {
			httputil.InternalServerError(w, "Failed to start session", err)
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
	})

	r.Post("/auth/guest", func(w http.ResponseWriter, r *http.Request) {
		o, err := app.organizers.EnsureGuest(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to login as guest", err)
			return
		}
		if err := middleware.Login(r.Context(), app.sessions, o.ID); err != nil {
			httputil.InternalServerError(w, "Failed to start session", err)
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
	})

	r.Post("/logout", func(w http.ResponseWriter, r *http.Request) {
		if err := app.sessions.Destroy(r.Context()); err != nil {
			httputil.InternalServerError(w, "Failed to logout", err)
			return
		}
		http.Redirect(w, r, "/login", http.StatusFound)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", app.getState)
		r.Get("/standings", app.getStandings)
		r.Get("/ranking", app.getRanking)
		r.Get("/athletes/{id}", app.getAthlete)
		r.Get("/matches/{id}", app.getMatch)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireOrganizer)

			r.Get("/dashboard", app.getDashboard)

			r.Post("/athletes", app.createAthlete)
			r.Post("/athletes/import", app.importAthletes)
			r.Post("/teams", app.createTeam)
			r.Delete("/teams/{id}", app.deleteTeam)
			r.Put("/config", app.updateConfig)
			r.Put("/simulation-to-ranking", app.setSimulationToRanking)

			r.Post("/phase/group-stage", app.startGroupStage)
			r.Post("/phase/elimination", app.startElimination)
			r.Post("/phase/proclamation", app.proclaim)
			r.Post("/tournament/new", app.newTournament)
			r.Get("/archives", app.listArchives)
			r.Get("/archives/{id}", app.getArchive)

			r.Post("/matches/{id}/confirm", app.confirmMatch)
			r.Post("/matches/{id}/simulate", app.simulateMatch)
			r.Post("/groups/simulate", app.simulateAllGroups)
			r.Post("/groups/{index}/simulate", app.simulateGroup)
			r.Post("/bracket/simulate", app.simulateBracket)

			r.Get("/scoreboard/{id}", app.getScoreboard)
			r.Post("/scoreboard/{id}/point", app.scoreboardPoint)
			r.Post("/scoreboard/{id}/serve", app.scoreboardServe)
			r.Post("/scoreboard/{id}/reset", app.scoreboardReset)
			r.Post("/scoreboard/{id}/submit", app.scoreboardSubmit)
			r.Delete("/scoreboard/{id}", app.scoreboardDiscard)

			r.Get("/revenue", app.getRevenue)
			r.Put("/revenue/fee", app.setEntryFee)
			r.Post("/revenue/payments", app.recordPayment)
			r.Get("/revenue/history", app.getRevenueHistory)
		})
	})

	return r
}
