package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/AdamBeresnev/beach-volley/internal/organizer"
	"github.com/AdamBeresnev/beach-volley/internal/store"
	"github.com/AdamBeresnev/beach-volley/internal/utils"
	"github.com/google/uuid"
	"github.com/markbates/goth"
)

type OrganizerService struct {
	store *store.OrganizerStore
}

func NewOrganizerService(store *store.OrganizerStore) *OrganizerService {
	return &OrganizerService{store: store}
}

// FindOrCreateByProvider returns the organizer behind an OAuth login,
// refreshing the nickname and avatar when the provider reports new ones.
func (s *OrganizerService) FindOrCreateByProvider(ctx context.Context, gothUser goth.User) (*organizer.Organizer, error) {
	o, err := s.store.GetByProvider(ctx, gothUser.Provider, gothUser.UserID)
	if err == nil {
		nick := utils.FirstNonBlank(gothUser.NickName, o.Username)
		if utils.Deref(o.AvatarURL) != gothUser.AvatarURL || o.Username != nick {
			o.AvatarURL = utils.NonBlank(gothUser.AvatarURL)
			o.Username = nick
			if err := s.store.UpdateProfile(ctx, o); err != nil {
				return nil, err
			}
		}
		return o, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	name := utils.FirstNonBlank(gothUser.Name, gothUser.NickName)
	o = &organizer.Organizer{
		ID:         uuid.New(),
		Email:      gothUser.Email,
		Username:   name,
		CreatedAt:  time.Now().UTC(),
		Provider:   utils.Ptr(gothUser.Provider),
		ProviderID: utils.Ptr(gothUser.UserID),
		AvatarURL:  utils.NonBlank(gothUser.AvatarURL),
	}
	if err := s.store.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrganizerService) EnsureGuest(ctx context.Context) (*organizer.Organizer, error) {
	o, err := s.store.Get(ctx, organizer.GuestID)
	if err == nil {
		return o, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	o = &organizer.Organizer{
		ID:        organizer.GuestID,
		Email:     "guest@beach-volley.local",
		Username:  "Guest",
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrganizerService) Get(ctx context.Context, id uuid.UUID) (*organizer.Organizer, error) {
	return s.store.Get(ctx, id)
}
