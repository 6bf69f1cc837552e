package main

import (
	"context"
	"time"

	"screen_navigator/internal/application/config"
	"screen_navigator/internal/http"

	log "github.com/sirupsen/logrus"
)

func main() {
	logInstance := log.New()
	cfg, err := config.NewAppConfig()
	if err != nil {
		logInstance.WithError(err).Fatal(`Failed to load config`)
		return
	}

	//log level
	logLevel, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		logInstance.WithError(err).Fatal(`Failed to parse log level`)
		return
	}
	if cfg.DebugMode {
		logLevel = log.DebugLevel
	}

	logInstance.SetFormatter(&log.JSONFormatter{
		TimestampFormat:   time.RFC3339,
		DisableHTMLEscape: true,
		DisableTimestamp:  false,
	})

	logInstance.SetLevel(logLevel)

	// Get context
	ctx := context.WithoutCancel(context.Background())

	// Init HTTP
	http.Init(ctx, logInstance, cfg)
}
