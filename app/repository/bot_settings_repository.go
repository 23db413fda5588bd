package repository

import (
	"context"

	"github.com/ManuelReschke/VendaBot/app/models"
)

// botSettingsRepository implements the BotSettingsRepository interface
type botSettingsRepository struct {
	s *Store
}

// NewBotSettingsRepository creates a new bot settings repository instance
func NewBotSettingsRepository(s *Store) BotSettingsRepository {
	return &botSettingsRepository{s: s}
}

// Get returns the settings row of a server
func (r *botSettingsRepository) Get(_ context.Context, serverID uint) (*models.BotSettings, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.findLocked(serverID)
	if !ok {
		return nil, ErrRecordNotFound
	}
	row = row.Clone()
	return &row, nil
}

// Upsert replaces the settings blob of a server, creating the row on first write
func (r *botSettingsRepository) Upsert(_ context.Context, serverID uint, settings map[string]any) (*models.BotSettings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.servers.rows[serverID]; !ok {
		return nil, ErrRecordNotFound
	}

	row, ok := r.findLocked(serverID)
	if !ok {
		row = models.BotSettings{ID: r.s.settings.allocate(), ServerID: serverID}
	}
	row.Settings = models.CloneSettings(settings)
	r.s.settings.put(row.ID, row)
	row = row.Clone()
	return &row, nil
}

func (r *botSettingsRepository) findLocked(serverID uint) (models.BotSettings, bool) {
	var (
		found models.BotSettings
		ok    bool
	)
	r.s.settings.each(func(row models.BotSettings) bool {
		if row.ServerID == serverID {
			found, ok = row, true
			return false
		}
		return true
	})
	return found, ok
}
