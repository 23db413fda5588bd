package bot

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/VendaBot/app/models"
	"github.com/ManuelReschke/VendaBot/app/repository"
	"github.com/ManuelReschke/VendaBot/internal/pkg/entitlements"
)

const testGuild = "guild-1"

type recordedEvent struct {
	Type string
	Data any
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeNotifier) Broadcast(eventType string, data any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{Type: eventType, Data: data})
	return nil
}

type fakePoster struct {
	channel string
	msg     *discordgo.MessageSend
}

func (f *fakePoster) PostMessage(channelID string, msg *discordgo.MessageSend) error {
	f.channel = channelID
	f.msg = msg
	return nil
}

type fakeStats struct{ invalidated int }

func (f *fakeStats) Invalidate(context.Context) { f.invalidated++ }

type fixture struct {
	repos      *repository.Repositories
	env        *Env
	notifier   *fakeNotifier
	poster     *fakePoster
	stats      *fakeStats
	dispatcher *Dispatcher
	server     *models.Server
}

// newFixture seeds tiers and commands and registers testGuild. level > 0
// gives the guild an active subscription on the seeded tier of that level.
func newFixture(t *testing.T, level int) *fixture {
	t.Helper()
	ctx := context.Background()
	clock := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	repos := repository.NewRepositories(repository.NewStore(repository.WithClock(func() time.Time { return clock })))
	require.NoError(t, repository.Seed(ctx, repos, SeedCommands()))

	server := &models.Server{DiscordServerID: testGuild, Name: "Loja Teste", Prefix: "!", IsActive: true}
	require.NoError(t, repos.Server.Create(ctx, server))
	if level > 0 {
		require.NoError(t, repos.ServerSubscription.Create(ctx, &models.ServerSubscription{
			ServerID: server.ID, TierID: uint(level), IsActive: true,
		}))
	}

	f := &fixture{
		repos:    repos,
		notifier: &fakeNotifier{},
		poster:   &fakePoster{},
		stats:    &fakeStats{},
		server:   server,
	}
	f.env = &Env{
		Repos:    repos,
		Notifier: f.notifier,
		Poster:   f.poster,
		Stats:    f.stats,
		Location: time.UTC,
		Now:      func() time.Time { return clock },
	}
	f.dispatcher = NewDispatcher(f.env, entitlements.NewGate(repos), Registry())
	return f
}

func (f *fixture) invoke(command string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *Reply {
	return f.dispatcher.Dispatch(context.Background(), &Invocation{
		Command: command,
		GuildID: testGuild,
		User:    &discordgo.User{ID: "u-1", Username: "vendedor"},
		Options: Options(opts),
	})
}

func (f *fixture) usage(t *testing.T, command string) int64 {
	t.Helper()
	c, err := f.repos.Command.GetByName(context.Background(), command)
	require.NoError(t, err)
	return c.UsageCount
}

func fieldValue(embed *discordgo.MessageEmbed, name string) string {
	for _, fl := range embed.Fields {
		if fl.Name == name {
			return fl.Value
		}
	}
	return ""
}
