package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/config"
	"github.com/lox/holdem/internal/render"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config   string `short:"c" default:"holdem.hcl" help:"Path to the HCL config file"`
	LogLevel string `help:"Log level (debug, info, warn, error); overrides the config file"`
	NoColor  bool   `help:"Disable colored output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play hands at a configured table, optionally taking a seat yourself"`
	Simulate SimulateCmd      `cmd:"" help:"Run bot-only hands on every configured table in parallel"`
	Eval     EvalCmd          `cmd:"" help:"Rank one or more hands of 5 to 7 cards"`
	History  HistoryCmd       `cmd:"" help:"Show a PHH hand history file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("Texas Hold'em table engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// load reads the config file and builds a logger at the configured level
func (g *Globals) load() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.Settings.LogLevel
	if g.LogLevel != "" {
		level = g.LogLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	})
	return cfg, logger, nil
}

func (g *Globals) renderer() *render.Renderer {
	return render.New(os.Stdout, !g.NoColor)
}
