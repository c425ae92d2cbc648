// Command mdflat parses Markdown and folds it into flat text elements.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/growler/go-mdflat"
	"github.com/growler/go-mdflat/internal/config"
	"github.com/growler/go-mdflat/internal/logging"
)

const version = "1.0.0"

// CLI defines the command-line interface for mdflat.
var CLI struct {
	// Global flags
	Config    string `name:"config" short:"c" help:"Configuration file path" type:"path"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" help:"Log format (text, json)"`

	Fold    FoldCmd    `cmd:"" help:"Flatten Markdown into text elements"`
	Tree    TreeCmd    `cmd:"" help:"Dump the parsed block tree as JSON"`
	HTML    HTMLCmd    `cmd:"" name:"html" help:"Render Markdown as HTML"`
	Preview PreviewCmd `cmd:"" help:"Render flattened Markdown on the terminal"`
	Check   CheckCmd   `cmd:"" help:"Toggle a task list checkbox"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// env is the state shared by every command.
type env struct {
	cfg  *config.Config
	conf mdflat.Conf
	log  *slog.Logger
	in   io.Reader
	out  io.Writer
}

func setup() (*env, error) {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return nil, err
	}
	if CLI.LogLevel != "" {
		cfg.Log.Level = CLI.LogLevel
	}
	if CLI.LogFormat != "" {
		cfg.Log.Format = CLI.LogFormat
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	logger := logging.Init(level, format)
	logger.Debug("configuration loaded", "path", CLI.Config, "extensions", cfg.Extensions)
	return &env{
		cfg:  cfg,
		conf: cfg.Markdown(),
		log:  logger,
		in:   os.Stdin,
		out:  os.Stdout,
	}, nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("mdflat"),
		kong.Description("Fold CommonMark/GFM documents into flat text elements"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	e, err := setup()
	ctx.FatalIfErrorf(err)
	if err := ctx.Run(e); err != nil {
		e.log.Error("command failed", "command", ctx.Command(), "error", err)
		os.Exit(1)
	}
}
