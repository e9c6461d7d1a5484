package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"goita/internal/app"
	"goita/internal/config"
	"goita/internal/logging"
	"goita/internal/ports"
	"goita/internal/ports/mongostore"
	"goita/internal/ports/natsbus"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

var (
	configFile string
	logLevel   string
	natsURL    string
	mongoURL   string
)

var rootCmd = &cobra.Command{
	Use:   "goitasim",
	Short: "Goita round simulator",
	Long:  `Plays Goita rounds between bots and inspects recorded play.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadGameConfig(configFile); err != nil {
			return err
		}
		cfg := config.GetGameConfig()
		if !cmd.Flags().Changed("logLevel") && cfg.LogLevel != "" {
			logLevel = cfg.LogLevel
		}
		logging.Init("goitasim", logLevel)
		if natsURL == "" {
			natsURL = cfg.NatsURL
		}
		if mongoURL == "" {
			mongoURL = cfg.MongoURL
		}
		return nil
	},
}

var runOpts runOptions

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate rounds with bots in every seat",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg := config.GetGameConfig()
		opts := runOpts
		opts.MaxOnes, opts.Retries = cfg.MaxOnesPerSeat, cfg.DealRetryLimit
		if opts.Dealer < 0 {
			opts.Dealer = cfg.DealerSeat
		}
		if opts.Seed == 0 {
			opts.Seed = time.Now().UnixNano()
		}
		if len(opts.Bots) == 0 {
			opts.Bots = []string{cfg.BotLevel}
		}

		recorder, closeSinks := openSinks(ctx, cfg)
		defer closeSinks()

		logging.Info("simulating %d rounds, seed %d, bots %s", opts.Rounds, opts.Seed, strings.Join(opts.Bots, ","))
		res, err := runBatch(ctx, opts, recorder, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		printTotals(cmd.OutOrStdout(), res)
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print moves published on NATS",
	RunE: func(cmd *cobra.Command, args []string) error {
		if natsURL == "" {
			return fmt.Errorf("watch needs --nats or nats_url")
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		nc, err := nats.Connect(natsURL, nats.Name("goitasim-watch"))
		if err != nil {
			return err
		}
		defer nc.Close()

		out := cmd.OutOrStdout()
		sub, err := natsbus.Watch(nc, config.GetGameConfig().NatsSubjectPrefix, func(rec ports.MoveRecord) {
			fmt.Fprintln(out, formatMove(rec))
		})
		if err != nil {
			return err
		}
		defer sub.Unsubscribe()

		logging.Info("watching %s", sub.Subject)
		<-ctx.Done()
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <round-id>",
	Short: "Print an archived round",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if mongoURL == "" {
			return fmt.Errorf("show needs --mongo or mongo_url")
		}
		cfg := config.GetGameConfig()
		archive, err := mongostore.Connect(cmd.Context(), mongoURL, cfg.MongoDB, cfg.MongoCollection)
		if err != nil {
			return err
		}
		defer archive.Close(context.Background())

		s, err := archive.LoadRound(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatSummary(s))
		return nil
	},
}

// openSinks connects the optional NATS and MongoDB sinks for a run.
func openSinks(ctx context.Context, cfg *config.GameConfig) (*app.Recorder, func()) {
	var publisher ports.MovePublisher
	var archive ports.RoundArchive
	var closers []func()

	if natsURL != "" {
		p, err := natsbus.Connect(natsURL, cfg.NatsSubjectPrefix)
		if err != nil {
			logging.Warn("move stream disabled: %v", err)
		} else {
			publisher = p
			closers = append(closers, func() { _ = p.Close() })
			logging.Info("publishing moves to %s", p.Subject("*"))
		}
	}
	if mongoURL != "" {
		a, err := mongostore.Connect(ctx, mongoURL, cfg.MongoDB, cfg.MongoCollection)
		if err != nil {
			logging.Warn("round archive disabled: %v", err)
		} else {
			archive = a
			closers = append(closers, func() { _ = a.Close(context.Background()) })
			logging.Info("archiving rounds to %s.%s", cfg.MongoDB, cfg.MongoCollection)
		}
	}

	return app.NewRecorder(publisher, archive), func() {
		for _, c := range closers {
			c()
		}
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "logLevel", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&natsURL, "nats", "", "NATS url for the move stream")
	rootCmd.PersistentFlags().StringVar(&mongoURL, "mongo", "", "MongoDB url for the round archive")

	runCmd.Flags().IntVar(&runOpts.Rounds, "rounds", 10, "rounds to play")
	runCmd.Flags().Int64Var(&runOpts.Seed, "seed", 0, "rng seed, 0 picks one from the clock")
	runCmd.Flags().IntVar(&runOpts.Dealer, "dealer", -1, "dealer of the first round, -1 uses the config")
	runCmd.Flags().StringSliceVar(&runOpts.Bots, "bots", nil, "bot level per seat (one value fills every seat)")
	runCmd.Flags().IntVar(&runOpts.MaxSteps, "max-steps", app.DefaultMaxSteps, "move limit per round")
	runCmd.Flags().BoolVar(&runOpts.Rotate, "rotate", true, "the winner deals the next round")

	rootCmd.AddCommand(runCmd, watchCmd, showCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.Error("error happen: %v", err)
		os.Exit(1)
	}
}
