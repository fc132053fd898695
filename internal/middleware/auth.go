package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/AdamBeresnev/beach-volley/internal/config"
	"github.com/AdamBeresnev/beach-volley/internal/httputil"
	"github.com/AdamBeresnev/beach-volley/internal/organizer"
	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/markbates/goth"
	"github.com/markbates/goth/providers/discord"
	"github.com/markbates/goth/providers/google"
)

const sessionOrganizerKey = "organizerID"

// OrganizerGetter loads organizers by id.
type OrganizerGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*organizer.Organizer, error)
}

// InitAuth registers the OAuth providers that have credentials configured.
func InitAuth(cfg *config.Config) {
	var providers []goth.Provider
	if cfg.DiscordKey != "" {
		providers = append(providers, discord.New(cfg.DiscordKey, cfg.DiscordSecret, cfg.DiscordCallbackURL, discord.ScopeIdentify, discord.ScopeEmail))
	}
	if cfg.GoogleKey != "" {
		providers = append(providers, google.New(cfg.GoogleKey, cfg.GoogleSecret, cfg.GoogleCallbackURL, "email", "profile"))
	}
	if len(providers) == 0 {
		slog.Warn("no OAuth provider configured, only guest login is available")
		return
	}
	goth.UseProviders(providers...)
}

// Login binds the organizer to the session under a fresh token.
func Login(ctx context.Context, sessionManager *scs.SessionManager, id uuid.UUID) error {
	if err := sessionManager.RenewToken(ctx); err != nil {
		return err
	}
	sessionManager.Put(ctx, sessionOrganizerKey, id.String())
	return nil
}

// LoadOrganizer puts the logged in organizer, if any, in the request context.
// It must run after the session manager's LoadAndSave.
func LoadOrganizer(sessionManager *scs.SessionManager, organizers OrganizerGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idStr := sessionManager.GetString(r.Context(), sessionOrganizerKey)
			if idStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := uuid.Parse(idStr)
			if err != nil {
				sessionManager.Remove(r.Context(), sessionOrganizerKey)
				next.ServeHTTP(w, r)
				return
			}

			o, err := organizers.Get(r.Context(), id)
			if err != nil {
				slog.Warn("session organizer not found", "organizer_id", id, "error", err)
				sessionManager.Remove(r.Context(), sessionOrganizerKey)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), organizer.Key, o)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOrganizer answers 401 to API calls and redirects pages to the login
// when nobody is logged in.
func RequireOrganizer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetOrganizer(r.Context()) == nil {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				httputil.Unauthorized(w)
				return
			}
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetOrganizer(ctx context.Context) *organizer.Organizer {
	o, _ := ctx.Value(organizer.Key).(*organizer.Organizer)
	return o
}
