package nakama

import (
	"context"
	"database/sql"

	"goita/internal/bot"
	"goita/internal/config"
	"goita/internal/ports"
	"goita/internal/ports/mongostore"
	"goita/internal/ports/natsbus"

	"github.com/heroiclabs/nakama-common/runtime"
)

// BotIdentitiesPath is read relative to the Nakama working directory.
const BotIdentitiesPath = "data/bot_identities.json"

// InitModule wires configuration, sinks, RPCs and the match handler for the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	cfg, err := config.FromRuntimeEnv(env)
	if err != nil {
		logger.Error("InitModule: Invalid game config: %v", err)
		return err
	}
	config.SetGameConfig(cfg)

	loadBots(ctx, logger, nk)
	publisher, archive := connectSinks(ctx, logger, cfg)

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameGoita, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(publisher, archive), nil
	}); err != nil {
		return err
	}

	logger.Info("Goita Go module loaded (bots=%t, level=%s).", cfg.BotsEnabled, cfg.BotLevel)
	return nil
}

// loadBots reads and provisions the bot pool, falling back to generated
// identities when none can be used.
func loadBots(ctx context.Context, logger runtime.Logger, nk runtime.NakamaModule) {
	if err := bot.LoadIdentities(BotIdentitiesPath); err != nil {
		logger.Warn("InitModule: Could not load bot identities: %v", err)
	} else if err := bot.ProvisionBots(ctx, nk, logger); err != nil {
		logger.Warn("InitModule: Could not provision bots: %v", err)
	}
	if len(bot.GetAllBotIDs()) == 0 {
		logger.Info("InitModule: Using %d generated bot identities.", bot.DefaultPoolSize)
		bot.UseDefaultIdentities(bot.DefaultPoolSize)
	}
}

// connectSinks dials the optional move stream and round archive. A sink
// that cannot be reached is logged and left out.
func connectSinks(ctx context.Context, logger runtime.Logger, cfg *config.GameConfig) (ports.MovePublisher, ports.RoundArchive) {
	var publisher ports.MovePublisher
	var archive ports.RoundArchive

	if cfg.NatsURL != "" {
		p, err := natsbus.Connect(cfg.NatsURL, cfg.NatsSubjectPrefix)
		if err != nil {
			logger.Warn("InitModule: Move stream disabled: %v", err)
		} else {
			publisher = p
			logger.Info("InitModule: Publishing moves to %s", p.Subject("*"))
		}
	}

	if cfg.MongoURL != "" {
		a, err := mongostore.Connect(ctx, cfg.MongoURL, cfg.MongoDB, cfg.MongoCollection)
		if err != nil {
			logger.Warn("InitModule: Round archive disabled: %v", err)
		} else {
			archive = a
			logger.Info("InitModule: Archiving rounds to %s.%s", cfg.MongoDB, cfg.MongoCollection)
		}
	}

	return publisher, archive
}
