// Package scheduler lifts temporary bans once they expire.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/akane-bot/akane/internal/storage"
	"github.com/akane-bot/akane/pkg/jobmgr"
)

const sweepJob = "unban-sweep"

// API is the Discord call the sweep needs.
type API interface {
	GuildBanDelete(guildID, userID string) error
	BotUserID() string
}

// Store is the persistence the sweep needs.
type Store interface {
	ExpiredBans(ctx context.Context, now time.Time) ([]storage.Punishment, error)
	MarkReverted(ctx context.Context, id int64, at time.Time) error
	UpsertGuild(ctx context.Context, discordID string) (*storage.Guild, error)
	UpsertUser(ctx context.Context, discordID, locale string, guild *storage.Guild) (*storage.User, error)
	CreatePunishment(ctx context.Context, p *storage.Punishment) (int64, error)
}

// Scheduler runs the expired ban sweep on a cron schedule. A tick that
// fires while the previous sweep still runs is skipped.
type Scheduler struct {
	cron   *cron.Cron
	jobs   *jobmgr.Manager
	api    API
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

type Option func(*Scheduler)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

func New(api API, store Store, logger *zap.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		cron:   cron.New(),
		jobs:   jobmgr.NewManager(logger),
		api:    api,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start schedules the sweep with schedule (a cron expression or a descriptor
// such as "@every 1m") and blocks until ctx is done.
func (s *Scheduler) Start(ctx context.Context, schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.jobs.StartAsync(ctx, sweepJob, s.LiftExpiredBans); errors.Is(err, jobmgr.ErrRunning) {
			s.logger.Debug("Skipping unban sweep, previous run still going")
		}
	})
	if err != nil {
		return fmt.Errorf("scheduler: invalid schedule %q: %w", schedule, err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started", zap.String("schedule", schedule))

	<-ctx.Done()
	s.shutdown()
	return nil
}

// shutdown stops the cron, cancels any sweep still running and waits for it.
func (s *Scheduler) shutdown() {
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopping", zap.String("jobs", s.jobs.Status()))
	for _, name := range s.jobs.List() {
		if err := s.jobs.Stop(name); err != nil {
			s.logger.Debug("Job already finished", zap.String("job", name), zap.Error(err))
		}
	}
	s.jobs.Wait()
	s.logger.Info("Scheduler stopped")
}

// LiftExpiredBans unbans every user whose temporary ban expired, marks the
// ban reverted and records the lift. A ban that fails to lift stays pending
// for the next sweep.
func (s *Scheduler) LiftExpiredBans(ctx context.Context) error {
	now := s.now()
	bans, err := s.store.ExpiredBans(ctx, now)
	if err != nil {
		return err
	}

	for _, ban := range bans {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log := s.logger.With(
			zap.Int64("punishment", ban.ID),
			zap.String("guild", ban.GuildDiscordID),
			zap.String("user", ban.UserDiscordID))

		if err := s.api.GuildBanDelete(ban.GuildDiscordID, ban.UserDiscordID); err != nil && !unknownBan(err) {
			log.Warn("Failed to lift expired ban", zap.Error(err))
			continue
		}
		if err := s.record(ctx, ban, now); err != nil {
			log.Error("Failed to record lifted ban", zap.Error(err))
			continue
		}
		log.Info("Expired ban lifted")
	}
	return nil
}

func (s *Scheduler) record(ctx context.Context, ban storage.Punishment, now time.Time) error {
	if err := s.store.MarkReverted(ctx, ban.ID, now); err != nil {
		return err
	}
	guild, err := s.store.UpsertGuild(ctx, ban.GuildDiscordID)
	if err != nil {
		return err
	}
	bot, err := s.store.UpsertUser(ctx, s.api.BotUserID(), "", guild)
	if err != nil {
		return err
	}
	_, err = s.store.CreatePunishment(ctx, &storage.Punishment{
		Type:       storage.PunishmentRevertBan,
		GuildID:    ban.GuildID,
		UserID:     ban.UserID,
		PunisherID: bot.ID,
		CreatedAt:  now,
	})
	return err
}

// unknownBan means someone already lifted the ban by hand.
func unknownBan(err error) bool {
	var rest *discordgo.RESTError
	return errors.As(err, &rest) && rest.Message != nil && rest.Message.Code == discordgo.ErrCodeUnknownBan
}
