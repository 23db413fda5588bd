package bot

import (
	"context"
	"runtime/debug"

	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/VendaBot/app/models"
	"github.com/ManuelReschke/VendaBot/internal/pkg/entitlements"
	"github.com/ManuelReschke/VendaBot/internal/pkg/metrics"
)

const (
	genericErrorMessage = "Ocorreu um erro ao executar este comando."
	disabledMessage     = "❌ Este comando está desativado."
)

// Invocation outcomes as recorded in metrics.
const (
	outcomeOK      = "ok"
	outcomeDenied  = "denied"
	outcomeError   = "error"
	outcomeUnknown = "unknown"
)

// Dispatcher routes slash command invocations: one gate check, then the
// usage counter, then the handler.
type Dispatcher struct {
	env      *Env
	gate     *entitlements.Gate
	commands map[string]Descriptor
}

func NewDispatcher(env *Env, gate *entitlements.Gate, descriptors []Descriptor) *Dispatcher {
	commands := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		commands[d.Name] = d
	}
	return &Dispatcher{env: env, gate: gate, commands: commands}
}

// Dispatch runs one invocation. A nil reply means nothing should be sent.
// The stored command record decides whether the command is enabled and which
// plan it needs; the descriptor level applies only when no record exists.
func (d *Dispatcher) Dispatch(ctx context.Context, inv *Invocation) (reply *Reply) {
	cmd, ok := d.commands[inv.Command]
	if !ok {
		fiberlog.Warnf("bot: command %q not found", inv.Command)
		metrics.RecordCommand(inv.Command, outcomeUnknown)
		return nil
	}

	minLevel := cmd.MinLevel
	record, err := d.env.Repos.Command.GetByName(ctx, cmd.Name)
	if err != nil {
		fiberlog.Warnf("bot: command record for /%s: %v", cmd.Name, err)
		record = nil
	}
	if record != nil {
		if !record.IsActive {
			metrics.RecordCommand(cmd.Name, outcomeDenied)
			return ephemeral(disabledMessage)
		}
		minLevel = record.MinSubscriptionLevel
	}

	decision := d.gate.Decide(ctx, inv.GuildID, minLevel)
	if !decision.Allowed {
		metrics.RecordCommand(cmd.Name, outcomeDenied)
		return ephemeral(entitlements.DenialMessage(minLevel))
	}
	inv.Decision = decision

	if record != nil {
		d.incrementUsage(ctx, record)
	}

	defer func() {
		if r := recover(); r != nil {
			fiberlog.Errorf("bot: panic in /%s: %v\n%s", cmd.Name, r, debug.Stack())
			metrics.RecordCommand(cmd.Name, outcomeError)
			reply = ephemeral(genericErrorMessage)
		}
	}()

	reply, err = cmd.Handler(ctx, d.env, inv)
	if err != nil {
		fiberlog.Errorf("bot: executing /%s in guild %s: %v", cmd.Name, inv.GuildID, err)
		metrics.RecordCommand(cmd.Name, outcomeError)
		return ephemeral(genericErrorMessage)
	}
	if reply == nil {
		reply = ephemeral("✅")
	}
	metrics.RecordCommand(cmd.Name, outcomeOK)
	return reply
}

// incrementUsage is best effort; a store failure is only logged.
func (d *Dispatcher) incrementUsage(ctx context.Context, record *models.Command) {
	if err := d.env.Repos.Command.IncrementUsage(ctx, record.ID); err != nil {
		fiberlog.Warnf("bot: usage counter for /%s: %v", record.Name, err)
	}
}
