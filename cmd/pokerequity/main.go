package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/lox/pokerequity/charts"
	"github.com/lox/pokerequity/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config  string `help:"HCL config file" type:"path" env:"POKEREQUITY_CONFIG"`
	Debug   bool   `help:"Enable debug logging"`
	NoColor bool   `help:"Disable colored output"`
}

type CLI struct {
	Globals

	Version     kong.VersionFlag `short:"v" help:"Show version"`
	Equity      EquityCmd        `cmd:"" help:"Hero equity against an opponent range"`
	RangeEquity RangeEquityCmd   `cmd:"range-equity" help:"Equity of one range against another"`
	Partition   PartitionCmd     `cmd:"" help:"Split a range into strategic buckets on a board"`
	BoardFilter BoardFilterCmd   `cmd:"board-filter" help:"Keep the hands of a range that continue on a board"`
	Filter      FilterCmd        `cmd:"" help:"Reweight a range after an opponent action"`
	Eval        EvalCmd          `cmd:"" help:"Rank a 5 to 7 card hand"`
	Draws       DrawsCmd         `cmd:"" help:"Show the draws a hand holds on a board"`
	Chart       ChartCmd         `cmd:"" help:"Show preflop charts"`
	Serve       ServeCmd         `cmd:"" help:"Run the HTTP API"`
}

// app carries the process environment into command Run methods.
type app struct {
	out     io.Writer
	errOut  io.Writer
	globals *Globals
}

func newParser(cli *CLI, a *app, opts ...kong.Option) (*kong.Kong, error) {
	opts = append([]kong.Option{
		kong.Name("pokerequity"),
		kong.Description("Poker equity and range analysis"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(a),
		kong.Writers(a.out, a.errOut),
	}, opts...)
	return kong.New(cli, opts...)
}

func main() {
	var cli CLI
	a := &app{out: os.Stdout, errOut: os.Stderr, globals: &cli.Globals}
	parser, err := newParser(&cli, a)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

// config loads the config file and environment overrides; --debug raises
// the log level.
func (a *app) config() (*config.Config, error) {
	cfg, err := config.Load(a.globals.Config)
	if err != nil {
		return nil, err
	}
	if a.globals.Debug {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

func (a *app) logger(cfg *config.Config) (zerolog.Logger, error) {
	return setupLogger(cfg.Log, a.errOut, a.globals.NoColor)
}

// console logs user-facing notices such as the seed in use.
func (a *app) console() *log.Logger {
	logger := log.NewWithOptions(a.errOut, log.Options{Prefix: "pokerequity"})
	if a.globals.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	if a.globals.NoColor {
		logger.SetColorProfile(termenv.Ascii)
	}
	return logger
}

func (a *app) styles() styles {
	r := lipgloss.NewRenderer(a.out)
	if a.globals.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return newStyles(r)
}

func (a *app) charts(cfg *config.Config) (*charts.Charts, error) {
	if cfg.ChartsFile == "" {
		return charts.Default(), nil
	}
	return charts.Load(cfg.ChartsFile)
}
