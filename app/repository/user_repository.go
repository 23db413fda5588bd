package repository

import (
	"context"
	"time"

	"github.com/ManuelReschke/VendaBot/app/models"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	s *Store
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(s *Store) UserRepository {
	return &userRepository{s: s}
}

// Create stores the user, assigning ID and CreatedAt on the passed value
func (r *userRepository) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.conflictLocked(0, user.Username, user.DiscordUserID) {
		return ErrDuplicate
	}

	user.ID = r.s.users.allocate()
	user.CreatedAt = r.s.timestamp()
	r.s.users.put(user.ID, user.Clone())
	return nil
}

// conflictLocked reports whether another user already owns the username or discord id.
func (r *userRepository) conflictLocked(self uint, username string, discordID *string) bool {
	conflict := false
	r.s.users.each(func(u models.User) bool {
		if u.ID == self {
			return true
		}
		if u.Username == username {
			conflict = true
		}
		if discordID != nil && u.DiscordUserID != nil && *u.DiscordUserID == *discordID {
			conflict = true
		}
		return !conflict
	})
	return conflict
}

// GetByID retrieves a user by its ID
func (r *userRepository) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users.rows[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	u = u.Clone()
	return &u, nil
}

// GetByUsername retrieves a user by username
func (r *userRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username })
}

// GetByDiscordID retrieves a user by Discord user id
func (r *userRepository) GetByDiscordID(_ context.Context, discordUserID string) (*models.User, error) {
	return r.find(func(u models.User) bool {
		return u.DiscordUserID != nil && *u.DiscordUserID == discordUserID
	})
}

func (r *userRepository) find(match func(models.User) bool) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found *models.User
	r.s.users.each(func(u models.User) bool {
		if match(u) {
			u = u.Clone()
			found = &u
			return false
		}
		return true
	})
	if found == nil {
		return nil, ErrRecordNotFound
	}
	return found, nil
}

// Update applies a partial update to an existing user
func (r *userRepository) Update(_ context.Context, id uint, patch models.UserPatch) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users.rows[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	u = u.Clone()
	patch.Apply(&u)
	if r.conflictLocked(id, u.Username, u.DiscordUserID) {
		return nil, ErrDuplicate
	}
	r.s.users.put(id, u)
	u = u.Clone()
	return &u, nil
}

// List retrieves all users ordered by ID
func (r *userRepository) List(_ context.Context) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]models.User, 0, r.s.users.len())
	r.s.users.each(func(u models.User) bool {
		users = append(users, u.Clone())
		return true
	})
	return users, nil
}

// CountSince counts users created at or after since
func (r *userRepository) CountSince(_ context.Context, since time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	r.s.users.each(func(u models.User) bool {
		if !u.CreatedAt.Before(since) {
			count++
		}
		return true
	})
	return count, nil
}
