package services

import (
	"context"

	"github.com/dmitrijs2005/studydeck/internal/client/api"
	"github.com/dmitrijs2005/studydeck/internal/client/models"
	"github.com/dmitrijs2005/studydeck/internal/logging"
)

const (
	decksEndpoint  = "/decks"
	streakEndpoint = "/users/me/streak"
)

// StudyService serves the non-critical reads of the study screens. Its
// methods never fail: unavailable data degrades to an empty value.
type StudyService struct {
	decks  api.FetchFunc
	streak api.FetchFunc
	log    logging.Logger
}

// Fetchers is the part of the API client StudyService reads through.
type Fetchers interface {
	Fetcher(endpoint string, opts ...api.RequestOption) api.FetchFunc
}

func NewStudyService(client Fetchers, log logging.Logger) *StudyService {
	if log == nil {
		log = logging.Nop()
	}
	return &StudyService{
		decks:  client.Fetcher(decksEndpoint),
		streak: client.Fetcher(streakEndpoint),
		log:    log,
	}
}

// Decks lists the user's decks. Entries that do not look like a deck are
// skipped.
func (s *StudyService) Decks(ctx context.Context) []models.Deck {
	items := api.SafeFetchArray(ctx, s.log, s.decks)

	decks := make([]models.Deck, 0, len(items))
	for _, it := range items {
		var d models.Deck
		if err := api.Convert(it, &d); err != nil {
			s.log.Warn(ctx, "skipping malformed deck", "error", err)
			continue
		}
		decks = append(decks, d)
	}
	return decks
}

// Streak returns the current study streak, or a zero streak when it cannot
// be read.
func (s *StudyService) Streak(ctx context.Context) models.Streak {
	v := api.SafeFetchObject(ctx, s.log, s.streak, nil)
	if v == nil {
		return models.Streak{}
	}

	var st models.Streak
	if err := api.Convert(v, &st); err != nil {
		s.log.Warn(ctx, "malformed streak", "error", err)
		return models.Streak{}
	}
	return st
}
