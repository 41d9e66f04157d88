package config

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func SetupLogger(cfg *Config) {
	log.SetOutput(os.Stdout)

	format := cfg.LogFormat
	if format == "" && cfg.IsProduction() {
		format = "json"
	}
	if format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
