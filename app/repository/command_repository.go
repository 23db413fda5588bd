package repository

import (
	"context"
	"sort"

	"github.com/ManuelReschke/VendaBot/app/models"
)

// commandRepository implements the CommandRepository interface
type commandRepository struct {
	s *Store
}

// NewCommandRepository creates a new command repository instance
func NewCommandRepository(s *Store) CommandRepository {
	return &commandRepository{s: s}
}

// Create stores a command; names are unique
func (r *commandRepository) Create(_ context.Context, command *models.Command) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.byNameLocked(command.Name); ok {
		return ErrDuplicate
	}
	command.ID = r.s.commands.allocate()
	r.s.commands.put(command.ID, command.Clone())
	return nil
}

func (r *commandRepository) byNameLocked(name string) (models.Command, bool) {
	var (
		found models.Command
		ok    bool
	)
	r.s.commands.each(func(c models.Command) bool {
		if c.Name == name {
			found, ok = c, true
			return false
		}
		return true
	})
	return found, ok
}

func (r *commandRepository) GetByID(_ context.Context, id uint) (*models.Command, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.commands.rows[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	c = c.Clone()
	return &c, nil
}

func (r *commandRepository) GetByName(_ context.Context, name string) (*models.Command, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.byNameLocked(name)
	if !ok {
		return nil, ErrRecordNotFound
	}
	c = c.Clone()
	return &c, nil
}

func (r *commandRepository) Update(_ context.Context, id uint, patch models.CommandPatch) (*models.Command, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.commands.rows[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	c = c.Clone()
	patch.Apply(&c)
	r.s.commands.put(id, c)
	c = c.Clone()
	return &c, nil
}

// IncrementUsage bumps the usage counter by exactly one under the write lock,
// so concurrent invocations never lose an update.
func (r *commandRepository) IncrementUsage(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.commands.rows[id]
	if !ok {
		return ErrRecordNotFound
	}
	c.UsageCount++
	r.s.commands.put(id, c)
	return nil
}

func (r *commandRepository) List(_ context.Context) ([]models.Command, error) {
	return r.filter(func(models.Command) bool { return true }), nil
}

// ListBySubscriptionLevel returns the active commands available at the given level.
func (r *commandRepository) ListBySubscriptionLevel(_ context.Context, level int) ([]models.Command, error) {
	return r.filter(func(c models.Command) bool { return c.IsActive && c.MinSubscriptionLevel <= level }), nil
}

// Popular returns the most used commands, ties broken by id.
func (r *commandRepository) Popular(_ context.Context, limit int) ([]models.Command, error) {
	commands := r.filter(func(models.Command) bool { return true })
	sort.SliceStable(commands, func(i, j int) bool {
		if commands[i].UsageCount != commands[j].UsageCount {
			return commands[i].UsageCount > commands[j].UsageCount
		}
		return commands[i].ID < commands[j].ID
	})
	if limit >= 0 && len(commands) > limit {
		commands = commands[:limit]
	}
	return commands, nil
}

func (r *commandRepository) filter(match func(models.Command) bool) []models.Command {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	commands := make([]models.Command, 0)
	r.s.commands.each(func(c models.Command) bool {
		if match(c) {
			commands = append(commands, c.Clone())
		}
		return true
	})
	return commands
}
