package views

import (
	"context"

	"github.com/AdamBeresnev/beach-volley/internal/middleware"
	"github.com/AdamBeresnev/beach-volley/internal/organizer"
)

func GetOrganizer(ctx context.Context) *organizer.Organizer {
	return middleware.GetOrganizer(ctx)
}
