package repository

import (
	"context"

	"github.com/ManuelReschke/VendaBot/app/models"
)

// serverRepository implements the ServerRepository interface
type serverRepository struct {
	s *Store
}

// NewServerRepository creates a new server repository instance
func NewServerRepository(s *Store) ServerRepository {
	return &serverRepository{s: s}
}

// Create stores a new server; the Discord server id must be unique
func (r *serverRepository) Create(_ context.Context, server *models.Server) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	duplicate := false
	r.s.servers.each(func(existing models.Server) bool {
		duplicate = existing.DiscordServerID == server.DiscordServerID
		return !duplicate
	})
	if duplicate {
		return ErrDuplicate
	}

	server.ID = r.s.servers.allocate()
	r.s.servers.put(server.ID, server.Clone())
	return nil
}

// GetByID retrieves a server by its ID
func (r *serverRepository) GetByID(_ context.Context, id uint) (*models.Server, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	server, ok := r.s.servers.rows[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	server = server.Clone()
	return &server, nil
}

// GetByDiscordID retrieves a server by its Discord guild id
func (r *serverRepository) GetByDiscordID(_ context.Context, discordServerID string) (*models.Server, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found *models.Server
	r.s.servers.each(func(server models.Server) bool {
		if server.DiscordServerID == discordServerID {
			server = server.Clone()
			found = &server
			return false
		}
		return true
	})
	if found == nil {
		return nil, ErrRecordNotFound
	}
	return found, nil
}

// Update applies a partial update to an existing server
func (r *serverRepository) Update(_ context.Context, id uint, patch models.ServerPatch) (*models.Server, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	server, ok := r.s.servers.rows[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	server = server.Clone()
	patch.Apply(&server)
	r.s.servers.put(id, server)
	server = server.Clone()
	return &server, nil
}

// List retrieves all servers ordered by ID
func (r *serverRepository) List(_ context.Context) ([]models.Server, error) {
	return r.filter(func(models.Server) bool { return true }), nil
}

// ListByOwner retrieves the servers owned by a user
func (r *serverRepository) ListByOwner(_ context.Context, ownerID uint) ([]models.Server, error) {
	return r.filter(func(server models.Server) bool {
		return server.OwnerID != nil && *server.OwnerID == ownerID
	}), nil
}

func (r *serverRepository) filter(match func(models.Server) bool) []models.Server {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	servers := make([]models.Server, 0)
	r.s.servers.each(func(server models.Server) bool {
		if match(server) {
			servers = append(servers, server.Clone())
		}
		return true
	})
	return servers
}
