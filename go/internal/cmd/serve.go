package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/pitchside/go/internal/dispatch"
	"github.com/mcdev12/pitchside/go/internal/effects"
	"github.com/mcdev12/pitchside/go/internal/gateway"
	"github.com/mcdev12/pitchside/go/internal/scheduler"
	"github.com/mcdev12/pitchside/go/internal/store/postgres"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the command server, live feed and demand sweeper",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := setupDatabase(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := postgres.Migrate(st.DB()); err != nil {
		return err
	}

	nc, err := effects.Connect(cfg.Process.NATSURL)
	if err != nil {
		return err
	}
	defer nc.Close()

	clock := clockwork.NewRealClock()
	natsDispatcher, err := effects.NewNATSDispatcher(ctx, nc, cfg.League.Effects, clock)
	if err != nil {
		return err
	}
	services := setupServices(st, effects.NewMetricDispatcher(natsDispatcher), clock)

	commands := dispatch.NewServer(nc, dispatch.NewRouter(services), dispatch.ServerConfig{
		Subject:    cfg.League.Commands.Subject,
		QueueGroup: cfg.League.Commands.QueueGroup,
		Timeout:    cfg.League.Commands.Timeout,
	})

	feedConfig := gateway.DefaultConfig()
	feedConfig.JetStreamConfig.StreamName = cfg.League.Effects.StreamName
	feedConfig.JetStreamConfig.SubjectFilter = cfg.League.Effects.SubjectPrefix + ".>"
	feed, err := gateway.NewService(ctx, nc, feedConfig)
	if err != nil {
		return err
	}
	httpServer := gateway.NewServer(cfg.Process.HTTPAddr, gateway.NewHandler(gateway.HandlerOptions{
		WebSocket:      feed.WebSocket(),
		Ready:          st,
		AllowedOrigins: cfg.Process.AllowedOrigins,
	}))

	sched, err := scheduler.New()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	if _, err := scheduler.RegisterDemandSweeper(sched, services.Roster, cfg.League.Sweeper.Cron); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return commands.Run(ctx) })
	g.Go(func() error { return feed.Start(ctx) })
	g.Go(func() error { return gateway.Serve(ctx, httpServer) })
	g.Go(func() error {
		sched.Start()
		<-ctx.Done()
		return sched.Stop()
	})

	log.Info().Str("http_addr", cfg.Process.HTTPAddr).Msg("pitchside started")
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Msg("pitchside stopped")
	return nil
}
