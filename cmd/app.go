package main

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/viper"

	"github.com/Vovarama1992/aigizi-wa-bridge/internal/ai"
	"github.com/Vovarama1992/aigizi-wa-bridge/internal/logutil"
	"github.com/Vovarama1992/aigizi-wa-bridge/internal/metrics"
	"github.com/Vovarama1992/aigizi-wa-bridge/internal/relay"
)

// app holds the process-wide clients. Built once, read-only afterwards.
type app struct {
	logger    *slog.Logger
	registry  *prometheus.Registry
	metrics   *metrics.Metrics
	generator *ai.ReplyGenerator
	outbound  *relay.FonnteOutbound
	service   relay.Service
}

func newAppFromViper() (*app, error) {
	logger, err := logutil.LoggerFromViper()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	providerName := viper.GetString("llm.provider")
	apiKey := resolveAPIKey(providerName, viper.GetString("llm.api_key"))

	provider, err := ai.NewProvider(ai.ProviderConfig{
		Name:    providerName,
		APIKey:  apiKey,
		BaseURL: viper.GetString("llm.base_url"),
		Model:   viper.GetString("llm.model"),
	})
	if err != nil {
		return nil, err
	}
	if apiKey == "" {
		logger.Warn("llm api key not set; every AI reply will be the fallback", "provider", provider.Name())
	}

	generator := ai.NewReplyGenerator(provider, ai.GeneratorConfig{
		Timeout:       viper.GetDuration("llm.timeout"),
		MaxTokens:     viper.GetInt("llm.max_tokens"),
		RatePerMinute: viper.GetInt("llm.rate_per_minute"),
		Logger:        logger.With("component", "ai"),
		Recorder:      m,
	})

	outbound := relay.NewFonnteOutbound(relay.FonnteConfig{
		Token:       viper.GetString("fonnte.token"),
		SendURL:     viper.GetString("fonnte.send_url"),
		CountryCode: viper.GetString("fonnte.country_code"),
		Timeout:     viper.GetDuration("fonnte.timeout"),
		Logger:      logger.With("component", "fonnte"),
	})
	if viper.GetString("fonnte.token") == "" {
		logger.Warn("fonnte token not set; every dispatch will fail")
	}

	service := relay.NewService(generator, outbound, relay.ServiceConfig{
		Logger:        logger.With("component", "relay"),
		Recorder:      m,
		TestRecipient: viper.GetString("webhook.test_recipient"),
	})

	return &app{
		logger:    logger,
		registry:  registry,
		metrics:   m,
		generator: generator,
		outbound:  outbound,
		service:   service,
	}, nil
}
