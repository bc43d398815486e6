package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/stackmill/schemawarden/v1/archive"
	"github.com/stackmill/schemawarden/v1/docs"
	"github.com/stackmill/schemawarden/v1/health"
	"github.com/stackmill/schemawarden/v1/kafka"
	"github.com/stackmill/schemawarden/v1/lifecycle"
	"github.com/stackmill/schemawarden/v1/logger"
	"github.com/stackmill/schemawarden/v1/metrics"
	"github.com/stackmill/schemawarden/v1/notify"
	"github.com/stackmill/schemawarden/v1/oplog"
	"github.com/stackmill/schemawarden/v1/registry"
	"github.com/stackmill/schemawarden/v1/server"
	"github.com/stackmill/schemawarden/v1/tracer"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "run the administration server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fx.New(serveOptions()...).Run()
			return nil
		},
	}
}

// serveOptions assembles the fx application: configs from viper, the
// shared zap logger narrowed to each package's local Logger interface,
// and every service module. The Kafka metadata client joins only when
// brokers are configured; the docs generator and the server declare it
// optional and degrade without it.
func serveOptions() []fx.Option {
	options := []fx.Option{
		fx.Provide(
			loggerConfig,
			metricsConfig,
			tracerConfig,
			registryConfig,
			healthConfig,
			serverConfig,
			archiveConfig,
			oplogConfig,
			notifyConfig,
		),
		fx.Provide(
			func(l *logger.Logger) health.Logger { return l },
			func(l *logger.Logger) lifecycle.Logger { return l },
			func(l *logger.Logger) docs.Logger { return l },
			func(l *logger.Logger) archive.Logger { return l },
			func(l *logger.Logger) oplog.Logger { return l },
			func(l *logger.Logger) notify.Logger { return l },
			func(l *logger.Logger) tracer.Logger { return l },
		),
		logger.FXModule,
		metrics.FXModule,
		tracer.FXModule,
		registry.FXModule,
		health.FXModule,
		lifecycle.FXModule,
		docs.FXModule,
		archive.FXModule,
		oplog.FXModule,
		notify.FXModule,
		server.FXModule,
	}

	if len(kafkaBrokers()) > 0 {
		options = append(options,
			fx.Provide(
				kafkaConfig,
				func(l *logger.Logger) kafka.Logger { return l },
				func(c *kafka.MetadataClient) docs.TopicMetadata { return c },
			),
			kafka.FXModule,
		)
	}

	return options
}
