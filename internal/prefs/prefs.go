package prefs

import (
	"context"

	"github.com/ISABROTHER/DELIVERYAPP/internal/models"
	"github.com/ISABROTHER/DELIVERYAPP/internal/store"
)

// Service is the backend half of the favorite-pickup profile screen.
type Service struct {
	store store.PreferenceStore
}

func NewService(prefStore store.PreferenceStore) *Service {
	return &Service{store: prefStore}
}

// Get returns the user's preferences, an empty row if none were saved.
func (s *Service) Get(ctx context.Context, userID string) (models.UserPreferences, error) {
	return s.store.GetUserPreferences(ctx, userID)
}

// SetFavoriteAgent records the agent preselected on future send flows.
// An empty agentID clears the favorite.
func (s *Service) SetFavoriteAgent(ctx context.Context, userID, agentID string) error {
	return s.store.UpsertUserPreferences(ctx, models.UserPreferences{
		UserID:          userID,
		FavoriteAgentID: agentID,
	})
}
