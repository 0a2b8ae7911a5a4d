package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/akane-bot/akane/internal/command"
	"github.com/akane-bot/akane/pkg/cmd"
	"github.com/akane-bot/akane/pkg/retrylimit"
)

// guildSyncConcurrency bounds how many guilds register commands at once.
const guildSyncConcurrency = 4

// CommandsAPI is the application command surface of Discord.
type CommandsAPI interface {
	ApplicationCommands(appID, guildID string) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand) (*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string) error
}

// HashStore remembers the hash of what was last registered per guild.
type HashStore interface {
	CommandHashes(ctx context.Context, guildID string) (map[string]string, error)
	SetCommandHash(ctx context.Context, guildID, name, hash string) error
	DeleteCommandHash(ctx context.Context, guildID, name string) error
}

// Registrar syncs the slash definitions of a registry with Discord: it
// deletes obsolete commands and (re)creates those whose hash changed.
type Registrar struct {
	api     CommandsAPI
	store   HashStore
	limiter *retrylimit.AdaptiveLimiter
	retry   retrylimit.RetryConfig
	logger  *zap.Logger
}

func NewRegistrar(api CommandsAPI, store HashStore, logger *zap.Logger) *Registrar {
	retry := retrylimit.DefaultRetryConfig()
	retry.MaxAttempts = 5
	retry.Status = restStatus
	retry.Logger = logger
	return &Registrar{
		api:     api,
		store:   store,
		limiter: retrylimit.NewAdaptiveLimiter(20, 1, 40, 1, 0.5),
		retry:   retry,
		logger:  logger,
	}
}

// Definitions returns the slash definitions of every command in r.
func Definitions(r *cmd.Registry) []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	for _, c := range r.GetAll() {
		if def := command.Definition(c); def != nil {
			defs = append(defs, def)
		}
	}
	return defs
}

// SyncAll runs Sync for every guild, a few at a time.
func (r *Registrar) SyncAll(ctx context.Context, appID string, guildIDs []string, defs []*discordgo.ApplicationCommand) error {
	p := pool.New().WithErrors().WithMaxGoroutines(guildSyncConcurrency)
	for _, id := range guildIDs {
		p.Go(func() error {
			return r.Sync(ctx, appID, id, defs)
		})
	}
	return p.Wait()
}

// Sync brings the guild's commands in line with defs.
func (r *Registrar) Sync(ctx context.Context, appID, guildID string, defs []*discordgo.ApplicationCommand) error {
	log := r.logger.With(zap.String("guild", guildID))

	var remote []*discordgo.ApplicationCommand
	err := r.call(ctx, func() (err error) {
		remote, err = r.api.ApplicationCommands(appID, guildID)
		return err
	})
	if err != nil {
		return fmt.Errorf("list commands of %s: %w", guildID, err)
	}
	stored, err := r.store.CommandHashes(ctx, guildID)
	if err != nil {
		return err
	}

	wanted := make(map[string]string, len(defs))
	for _, d := range defs {
		wanted[d.Name] = hashCommand(d)
	}
	registered := make(map[string]bool, len(remote))

	var errs []error
	for _, rc := range remote {
		if _, ok := wanted[rc.Name]; ok {
			registered[rc.Name] = true
			continue
		}
		if err := r.call(ctx, func() error { return r.api.ApplicationCommandDelete(appID, guildID, rc.ID) }); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", rc.Name, err))
			continue
		}
		if err := r.store.DeleteCommandHash(ctx, guildID, rc.Name); err != nil {
			errs = append(errs, err)
		}
		log.Info("Obsolete command deleted", zap.String("command", rc.Name))
	}

	changed := 0
	for _, d := range defs {
		hash := wanted[d.Name]
		if registered[d.Name] && stored[d.Name] == hash {
			continue
		}
		err := r.call(ctx, func() error {
			_, err := r.api.ApplicationCommandCreate(appID, guildID, d)
			return err
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("create %s: %w", d.Name, err))
			continue
		}
		if err := r.store.SetCommandHash(ctx, guildID, d.Name, hash); err != nil {
			errs = append(errs, err)
			continue
		}
		changed++
	}
	if changed > 0 {
		log.Info("Commands registered", zap.Int("changed", changed), zap.Int("total", len(defs)))
	}
	return errors.Join(errs...)
}

func (r *Registrar) call(ctx context.Context, fn func() error) error {
	return retrylimit.WithRetryConfig(ctx, fn, r.limiter, r.retry)
}

func restStatus(err error) int {
	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Response != nil {
		return rest.Response.StatusCode
	}
	return 0
}
