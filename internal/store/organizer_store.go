package store

import (
	"context"

	"github.com/AdamBeresnev/beach-volley/internal/organizer"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type OrganizerStore struct {
	db *sqlx.DB
}

const (
	getOrganizerQuery           = "SELECT * FROM users WHERE id = ?"
	getOrganizerByProviderQuery = `
		SELECT * FROM users
		WHERE provider = ?
		AND provider_id = ?
	`
	createOrganizerQuery = `
		INSERT INTO users (id, email, username, provider, provider_id, avatar_url, created_at) VALUES
		(:id, :email, :username, :provider, :provider_id, :avatar_url, :created_at)
	`
	updateOrganizerProfileQuery = `
		UPDATE users SET
		username = :username,
		avatar_url = :avatar_url
		WHERE id = :id
	`
)

func NewOrganizerStore(db *sqlx.DB) *OrganizerStore {
	return &OrganizerStore{db: db}
}

func (s *OrganizerStore) GetByProvider(ctx context.Context, provider string, providerID string) (*organizer.Organizer, error) {
	var o organizer.Organizer
	if err := s.db.GetContext(ctx, &o, getOrganizerByProviderQuery, provider, providerID); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *OrganizerStore) Get(ctx context.Context, id uuid.UUID) (*organizer.Organizer, error) {
	var o organizer.Organizer
	if err := s.db.GetContext(ctx, &o, getOrganizerQuery, id); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *OrganizerStore) Create(ctx context.Context, o *organizer.Organizer) error {
	_, err := s.db.NamedExecContext(ctx, createOrganizerQuery, o)
	return err
}

func (s *OrganizerStore) UpdateProfile(ctx context.Context, o *organizer.Organizer) error {
	_, err := s.db.NamedExecContext(ctx, updateOrganizerProfileQuery, o)
	return err
}
