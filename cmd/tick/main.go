// Command tick publishes one lifecycle tick trigger, for use from cron or Cloud Scheduler jobs.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"dropradar/config"
	"dropradar/internal/domain/service"
	logs "dropradar/internal/infra/log"
	"dropradar/internal/infra/pubsub"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type tickFlags struct {
	preset string
}

type publishParams struct {
	fx.In
	fx.Shutdowner

	Ctx       context.Context
	Logger    *slog.Logger
	Publisher service.EventPublisher
	Flags     tickFlags
}

func main() {
	preset := flag.String("preset", "", "Generation preset override (production, develop); empty uses the worker's configuration")
	flag.Parse()

	app := fx.New(
		fx.NopLogger,
		fx.Supply(tickFlags{preset: *preset}),
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
		),
		pubsub.Module,
		fx.Invoke(publishTick),
	)
	if err := app.Err(); err != nil {
		slog.Error("Failed to build tick publisher", slog.Any("error", err))
		os.Exit(1)
	}

	app.Run()
}

func publishTick(params publishParams) error {
	event := &service.TickEvent{
		RequestID: uuid.NewString(),
		TickID:    uuid.NewString(),
		Preset:    params.Flags.preset,
		IssuedAt:  time.Now().UTC(),
	}

	if err := params.Publisher.PublishTickEvent(params.Ctx, event); err != nil {
		return err
	}

	params.Logger.Info("Tick published",
		slog.String("tick_id", event.TickID),
		slog.String("preset", event.Preset),
	)

	return params.Shutdown()
}
