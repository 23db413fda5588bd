package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/VendaBot/app/models"
	"github.com/ManuelReschke/VendaBot/internal/pkg/entitlements"
)

func TestProTierGatesCommands(t *testing.T) {
	f := newFixture(t, entitlements.LevelPro)

	reply := f.invoke("vender", StringOpt("produto", "VIP"), NumberOpt("valor", 49.9), UserOpt("cliente", "c-1"))
	require.NotNil(t, reply)
	assert.Equal(t, "✅ Venda registrada com sucesso!", reply.Content)
	assert.Equal(t, int64(1), f.usage(t, "vender"))

	reply = f.invoke("config", StringOpt("modulo", ModuleNotifications), BoolOpt("ativar", true))
	require.NotNil(t, reply)
	assert.True(t, reply.Ephemeral)
	assert.Equal(t, "❌ Seu servidor precisa ter o plano Premium para usar este comando.", reply.Content)
	assert.Equal(t, int64(0), f.usage(t, "config"))
}

func TestUnsubscribedServerIsDenied(t *testing.T) {
	f := newFixture(t, 0)

	reply := f.invoke("relatorio", StringOpt("inicio", "01/03/2025"), StringOpt("fim", "10/03/2025"))
	require.NotNil(t, reply)
	assert.Equal(t, "❌ Seu servidor precisa ter pelo menos o plano Básico para usar este comando.", reply.Content)
	assert.Zero(t, f.usage(t, "relatorio"))
}

func TestUsageCountsOnlyAllowedInvocations(t *testing.T) {
	for _, d := range Registry() {
		t.Run(d.Name, func(t *testing.T) {
			below := newFixture(t, d.MinLevel-1)
			reply := below.invoke(d.Name)
			require.NotNil(t, reply)
			assert.Equal(t, entitlements.DenialMessage(d.MinLevel), reply.Content)
			assert.True(t, reply.Ephemeral)
			assert.Zero(t, below.usage(t, d.Name))

			at := newFixture(t, d.MinLevel)
			reply = at.invoke(d.Name)
			require.NotNil(t, reply)
			assert.NotEqual(t, entitlements.DenialMessage(d.MinLevel), reply.Content)
			assert.Equal(t, int64(1), at.usage(t, d.Name))
		})
	}
}

func TestDisabledCommandIsRefused(t *testing.T) {
	f := newFixture(t, entitlements.LevelPremium)
	record, err := f.repos.Command.GetByName(context.Background(), "produto")
	require.NoError(t, err)

	off := false
	_, err = f.repos.Command.Update(context.Background(), record.ID, models.CommandPatch{IsActive: &off})
	require.NoError(t, err)

	reply := f.invoke("produto", SubcommandOpt("listar"))
	require.NotNil(t, reply)
	assert.True(t, reply.Ephemeral)
	assert.Equal(t, "❌ Este comando está desativado.", reply.Content)
	assert.Zero(t, f.usage(t, "produto"))
}

func TestStoredLevelOverridesDescriptor(t *testing.T) {
	f := newFixture(t, entitlements.LevelBasic)
	record, err := f.repos.Command.GetByName(context.Background(), "relatorio")
	require.NoError(t, err)

	level := entitlements.LevelPremium
	_, err = f.repos.Command.Update(context.Background(), record.ID, models.CommandPatch{MinSubscriptionLevel: &level})
	require.NoError(t, err)

	reply := f.invoke("relatorio", StringOpt("inicio", "01/03/2025"), StringOpt("fim", "10/03/2025"))
	require.NotNil(t, reply)
	assert.Equal(t, "❌ Seu servidor precisa ter o plano Premium para usar este comando.", reply.Content)
	assert.Zero(t, f.usage(t, "relatorio"))

	level = entitlements.LevelBasic
	record, err = f.repos.Command.GetByName(context.Background(), "config")
	require.NoError(t, err)
	_, err = f.repos.Command.Update(context.Background(), record.ID, models.CommandPatch{MinSubscriptionLevel: &level})
	require.NoError(t, err)

	reply = f.invoke("config", StringOpt("modulo", ModuleNotifications), BoolOpt("ativar", true))
	require.NotNil(t, reply)
	assert.Equal(t, "✅ Configuração atualizada com sucesso!", reply.Content)
	assert.Equal(t, int64(1), f.usage(t, "config"))
}

func TestUnknownGuildIsDenied(t *testing.T) {
	f := newFixture(t, entitlements.LevelPremium)

	reply := f.dispatcher.Dispatch(context.Background(), &Invocation{Command: "produto", GuildID: "other"})
	require.NotNil(t, reply)
	assert.Contains(t, reply.Content, "plano Básico")
}

func TestUnknownCommandIsDropped(t *testing.T) {
	f := newFixture(t, entitlements.LevelPremium)
	assert.Nil(t, f.invoke("desconhecido"))
}

func TestHandlerFailuresBecomeGenericReply(t *testing.T) {
	f := newFixture(t, entitlements.LevelPremium)
	descriptors := []Descriptor{
		{Name: "falha", MinLevel: entitlements.LevelBasic, Handler: func(context.Context, *Env, *Invocation) (*Reply, error) {
			return nil, errors.New("boom")
		}},
		{Name: "panico", MinLevel: entitlements.LevelBasic, Handler: func(context.Context, *Env, *Invocation) (*Reply, error) {
			panic("boom")
		}},
	}
	f.dispatcher = NewDispatcher(f.env, entitlements.NewGate(f.repos), descriptors)

	for _, name := range []string{"falha", "panico"} {
		reply := f.invoke(name)
		require.NotNil(t, reply, name)
		assert.Equal(t, genericErrorMessage, reply.Content)
		assert.True(t, reply.Ephemeral)
	}
}

func TestMissingUsageRecordIsNotFatal(t *testing.T) {
	f := newFixture(t, entitlements.LevelBasic)
	called := false
	f.dispatcher = NewDispatcher(f.env, entitlements.NewGate(f.repos), []Descriptor{
		{Name: "semregistro", MinLevel: entitlements.LevelBasic, Handler: func(context.Context, *Env, *Invocation) (*Reply, error) {
			called = true
			return &Reply{Content: "ok"}, nil
		}},
	})

	reply := f.invoke("semregistro")
	require.NotNil(t, reply)
	assert.True(t, called)
	assert.Equal(t, "ok", reply.Content)
}

func TestHandlerSeesResolvedDecision(t *testing.T) {
	f := newFixture(t, entitlements.LevelPremium)
	var seen *Invocation
	f.dispatcher = NewDispatcher(f.env, entitlements.NewGate(f.repos), []Descriptor{
		{Name: "eco", MinLevel: entitlements.LevelPro, Handler: func(_ context.Context, _ *Env, inv *Invocation) (*Reply, error) {
			seen = inv
			return &Reply{}, nil
		}},
	})

	f.invoke("eco")
	require.NotNil(t, seen)
	assert.Equal(t, f.server.ID, seen.Decision.Server.ID)
	assert.Equal(t, entitlements.LevelPremium, seen.Decision.Level())
}

func TestRegistryMatchesSeededCommands(t *testing.T) {
	descriptors := Registry()
	seeded := SeedCommands()
	require.Len(t, seeded, 6)

	levels := map[string]int{}
	for i, d := range descriptors {
		assert.Equal(t, d.Name, seeded[i].Name)
		assert.NotNil(t, d.Handler, d.Name)
		assert.Zero(t, seeded[i].UsageCount)
		levels[d.Name] = d.MinLevel
	}
	assert.Equal(t, map[string]int{
		"vender": 2, "relatorio": 1, "config": 3, "produto": 1, "cliente": 2, "painel": 2,
	}, levels)
}
