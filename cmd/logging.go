package cmd

import (
	"io"
	"os"

	"github.com/achilleasa/mdlanim/config"
	"github.com/achilleasa/mdlanim/log"
	"github.com/urfave/cli"
)

var logger = log.New("mdlanim")

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Configure the log level and optional log file. The -v and -vv flags take
// precedence over the configured level.
func setupLogging(ctx *cli.Context, cfg *config.Config) io.Closer {
	var closer io.Closer = nopCloser{}
	if cfg.Logging.File != "" {
		closer = log.SetFileSink(os.Stdout, cfg.Logging.File, cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups)
	}

	log.SetLevel(log.ParseLevel(cfg.Logging.Level))

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}

	return closer
}
