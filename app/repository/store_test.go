package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/VendaBot/app/models"
)

func newTestRepos(t *testing.T) (*Repositories, *Store) {
	t.Helper()
	store := NewStore(WithClock(func() time.Time {
		return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	}))
	t.Cleanup(func() { _ = store.Close() })
	return NewRepositories(store), store
}

func createServer(t *testing.T, repos *Repositories, discordID string) *models.Server {
	t.Helper()
	in := models.ServerInput{DiscordServerID: discordID, Name: "Loja " + discordID}
	server := in.ToServer()
	require.NoError(t, repos.Server.Create(context.Background(), server))
	return server
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		p := &models.Product{Name: "p", Price: 100, ServerID: 1, IsActive: true}
		require.NoError(t, repos.Product.Create(ctx, p))
		assert.Equal(t, uint(i), p.ID)
	}
}

func TestCreateThenGetReturnsEqualRecord(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	stock := 5
	desc := "Plano mensal"
	p := &models.Product{Name: "VIP", Description: &desc, Price: 4990, ServerID: 1, IsActive: true, Stock: &stock}
	require.NoError(t, repos.Product.Create(ctx, p))

	got, err := repos.Product.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, *p, *got)
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	tier := DefaultTiers()[0]
	require.NoError(t, repos.SubscriptionTier.Create(ctx, &tier))

	got, err := repos.SubscriptionTier.GetByID(ctx, tier.ID)
	require.NoError(t, err)
	got.Features[0] = "changed"
	*got.MaxSales = 1

	again, err := repos.SubscriptionTier.GetByID(ctx, tier.ID)
	require.NoError(t, err)
	assert.Equal(t, "Comandos básicos de vendas", again.Features[0])
	assert.Equal(t, 100, *again.MaxSales)
}

func TestNotFound(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	_, err := repos.User.GetByID(ctx, 42)
	assert.True(t, errors.Is(err, ErrRecordNotFound))
	_, err = repos.Server.GetByDiscordID(ctx, "nope")
	assert.ErrorIs(t, err, ErrRecordNotFound)
	_, err = repos.Sale.Update(ctx, 7, models.SalePatch{})
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.ErrorIs(t, repos.Command.IncrementUsage(ctx, 9), ErrRecordNotFound)
	_, err = repos.BotSettings.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestUserDuplicates(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	discord := "1001"
	require.NoError(t, repos.User.Create(ctx, &models.User{Username: "ana", DiscordUserID: &discord}))
	assert.ErrorIs(t, repos.User.Create(ctx, &models.User{Username: "ana"}), ErrDuplicate)

	other := "1001"
	assert.ErrorIs(t, repos.User.Create(ctx, &models.User{Username: "bia", DiscordUserID: &other}), ErrDuplicate)

	require.NoError(t, repos.User.Create(ctx, &models.User{Username: "bia"}))
	name := "ana"
	_, err := repos.User.Update(ctx, 2, models.UserPatch{Username: &name})
	assert.ErrorIs(t, err, ErrDuplicate)

	byDiscord, err := repos.User.GetByDiscordID(ctx, "1001")
	require.NoError(t, err)
	assert.Equal(t, "ana", byDiscord.Username)
}

func TestServerLookups(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	owner := uint(3)
	s := createServer(t, repos, "g1")
	_, err := repos.Server.Update(ctx, s.ID, models.ServerPatch{OwnerID: &owner})
	require.NoError(t, err)
	createServer(t, repos, "g2")

	assert.ErrorIs(t, repos.Server.Create(ctx, &models.Server{DiscordServerID: "g1"}), ErrDuplicate)

	owned, err := repos.Server.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "g1", owned[0].DiscordServerID)

	all, err := repos.Server.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestIncrementUsageConcurrent(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	cmd := &models.Command{Name: "vender", MinSubscriptionLevel: 2, IsActive: true}
	require.NoError(t, repos.Command.Create(ctx, cmd))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repos.Command.IncrementUsage(ctx, cmd.ID))
		}()
	}
	wg.Wait()

	got, err := repos.Command.GetByName(ctx, "vender")
	require.NoError(t, err)
	assert.Equal(t, int64(50), got.UsageCount)
}

func TestCommandPopularAndLevels(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	for _, c := range []models.Command{
		{Name: "a", MinSubscriptionLevel: 1, UsageCount: 3, IsActive: true},
		{Name: "b", MinSubscriptionLevel: 2, UsageCount: 9, IsActive: true},
		{Name: "c", MinSubscriptionLevel: 3, UsageCount: 3, IsActive: true},
		{Name: "d", MinSubscriptionLevel: 1, UsageCount: 1},
	} {
		c := c
		require.NoError(t, repos.Command.Create(ctx, &c))
	}
	assert.ErrorIs(t, repos.Command.Create(ctx, &models.Command{Name: "a"}), ErrDuplicate)

	popular, err := repos.Command.Popular(ctx, 2)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, "b", popular[0].Name)
	assert.Equal(t, "a", popular[1].Name)

	pro, err := repos.Command.ListBySubscriptionLevel(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, pro, 2)
}

func TestSalesQueries(t *testing.T) {
	clock := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	store := NewStore(WithClock(func() time.Time { return clock }))
	repos := NewRepositories(store)
	ctx := context.Background()

	client := uint(4)
	for i, price := range []int64{1000, 2500, 500} {
		clock = clock.Add(24 * time.Hour)
		sale := &models.Sale{ServerID: 1, Price: price}
		if i != 1 {
			sale.ClientID = &client
		}
		require.NoError(t, repos.Sale.Create(ctx, sale))
		assert.Equal(t, models.SaleStatusPending, sale.Status)
		assert.Equal(t, clock, sale.CreatedAt)
	}
	require.NoError(t, repos.Sale.Create(ctx, &models.Sale{ServerID: 2, Price: 50}))

	stats, err := repos.Sale.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, SalesStats{TotalSales: 4, TotalAmount: 4050}, stats)

	recent, err := repos.Sale.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, uint(4), recent[0].ID)
	assert.Equal(t, uint(3), recent[1].ID)

	byClient, err := repos.Sale.ListByClient(ctx, client)
	require.NoError(t, err)
	require.Len(t, byClient, 2)
	assert.Equal(t, uint(3), byClient[0].ID)

	from := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	between, err := repos.Sale.ListBetween(ctx, 1, from, from.Add(48*time.Hour))
	require.NoError(t, err)
	assert.Len(t, between, 2)

	paid := models.SaleStatusPaid
	updated, err := repos.Sale.Update(ctx, 1, models.SalePatch{Status: &paid})
	require.NoError(t, err)
	assert.Equal(t, paid, updated.Status)
	assert.Equal(t, time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC), updated.CreatedAt)
}

func TestSingleActiveSubscription(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()
	require.NoError(t, Seed(ctx, repos, nil))
	server := createServer(t, repos, "g1")

	first := &models.ServerSubscription{ServerID: server.ID, TierID: 1, IsActive: true}
	require.NoError(t, repos.ServerSubscription.Create(ctx, first))
	second := &models.ServerSubscription{ServerID: server.ID, TierID: 2, IsActive: true}
	require.NoError(t, repos.ServerSubscription.Create(ctx, second))

	active, err := repos.ServerSubscription.GetActive(ctx, server.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	old, err := repos.ServerSubscription.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, old.IsActive)

	on := true
	_, err = repos.ServerSubscription.Update(ctx, first.ID, models.ServerSubscriptionPatch{IsActive: &on})
	require.NoError(t, err)
	active, err = repos.ServerSubscription.GetActive(ctx, server.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)

	err = repos.ServerSubscription.Create(ctx, &models.ServerSubscription{ServerID: server.ID, TierID: 99, IsActive: true})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestGetActivePrefersNewestWhenSeveralAreActive(t *testing.T) {
	repos, store := newTestRepos(t)
	ctx := context.Background()

	// bypass the repository to build a state Create never produces
	store.mu.Lock()
	for _, tier := range []uint{1, 3, 2} {
		id := store.subscriptions.allocate()
		store.subscriptions.put(id, models.ServerSubscription{ID: id, ServerID: 1, TierID: tier, IsActive: true})
	}
	store.mu.Unlock()

	active, err := repos.ServerSubscription.GetActive(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(3), active.ID)
	assert.Equal(t, uint(2), active.TierID)
}

func TestGetActiveNoneActive(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()
	require.NoError(t, Seed(ctx, repos, nil))
	server := createServer(t, repos, "g1")

	require.NoError(t, repos.ServerSubscription.Create(ctx, &models.ServerSubscription{ServerID: server.ID, TierID: 1}))
	_, err := repos.ServerSubscription.GetActive(ctx, server.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestExpireEnded(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()
	require.NoError(t, Seed(ctx, repos, nil))
	g1 := createServer(t, repos, "g1")
	g2 := createServer(t, repos, "g2")

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	require.NoError(t, repos.ServerSubscription.Create(ctx, &models.ServerSubscription{ServerID: g1.ID, TierID: 1, EndDate: &past, IsActive: true}))
	require.NoError(t, repos.ServerSubscription.Create(ctx, &models.ServerSubscription{ServerID: g2.ID, TierID: 2, EndDate: &future, IsActive: true}))

	expired, err := repos.ServerSubscription.ExpireEnded(ctx, now)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, g1.ID, expired[0].ServerID)
	assert.False(t, expired[0].IsActive)

	_, err = repos.ServerSubscription.GetActive(ctx, g1.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	_, err = repos.ServerSubscription.GetActive(ctx, g2.ID)
	assert.NoError(t, err)

	expired, err = repos.ServerSubscription.ExpireEnded(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, expired)
}

func TestBotSettingsUpsert(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()
	server := createServer(t, repos, "g1")

	_, err := repos.BotSettings.Upsert(ctx, 99, map[string]any{"x": true})
	assert.ErrorIs(t, err, ErrRecordNotFound)

	first, err := repos.BotSettings.Upsert(ctx, server.ID, map[string]any{"autoDelivery": true})
	require.NoError(t, err)
	second, err := repos.BotSettings.Upsert(ctx, server.ID, map[string]any{"notifications": false})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := repos.BotSettings.Get(ctx, server.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"notifications": false}, got.Settings)
}

func TestSeedIsIdempotent(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()
	cmds := []models.Command{{Name: "vender", MinSubscriptionLevel: 2}, {Name: "relatorio", MinSubscriptionLevel: 1}}

	require.NoError(t, Seed(ctx, repos, cmds))
	require.NoError(t, Seed(ctx, repos, cmds))

	tiers, err := repos.SubscriptionTier.List(ctx)
	require.NoError(t, err)
	require.Len(t, tiers, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{tiers[0].Level, tiers[1].Level, tiers[2].Level})
	assert.Nil(t, tiers[2].MaxSales)

	commands, err := repos.Command.List(ctx)
	require.NoError(t, err)
	assert.Len(t, commands, 2)
	assert.Zero(t, commands[0].UsageCount)
}
