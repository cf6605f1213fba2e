package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/scripts-richard/huectl/internal/app"
	"github.com/scripts-richard/huectl/internal/config"
	"github.com/scripts-richard/huectl/internal/script"
)

const usage = `Usage: huectl [-c config] <command> [args]

Commands:
  info                     Show all lights and their state
  toggle                   Turn everything off if any light is on, else on
  set <light> <color>      Set one light (index or name) to a color
  all <color>              Set every reachable light to a color
  rename <light> <name>    Rename a light
  colors list              List the color palette
  colors set <name> <hex>  Add or replace a palette color
  colors rm <name>         Remove a palette color
  discover                 Find the bridge and print its address
  register                 Pair with the bridge (press its link button first)
  script <file.lua>        Run a Lua script against the bridge

Colors are palette names or #rrggbb literals.
`

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", config.DefaultPath(), "Path to configuration file")
	flag.StringVar(&configPath, "c", config.DefaultPath(), "Path to configuration file (shorthand)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogging(cfg.Log.Level, cfg.Log.UseJSON, cfg.Log.Colors)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, args[0], args[1:]); err != nil {
		log.Fatal().Err(err).Str("command", args[0]).Msg("Command failed")
	}
}

func run(ctx context.Context, cfg *config.Config, command string, args []string) error {
	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	switch command {
	case "info":
		return application.Info(ctx, os.Stdout)

	case "toggle":
		return application.Toggle(ctx)

	case "set":
		if len(args) != 2 {
			return fmt.Errorf("usage: huectl set <light> <color>")
		}
		return application.SetColor(ctx, args[0], args[1])

	case "all":
		if len(args) != 1 {
			return fmt.Errorf("usage: huectl all <color>")
		}
		return application.SetAll(ctx, args[0])

	case "rename":
		if len(args) != 2 {
			return fmt.Errorf("usage: huectl rename <light> <name>")
		}
		return application.Rename(ctx, args[0], args[1])

	case "colors":
		return runColors(application, args)

	case "discover":
		addr, err := application.ResolveBridge(ctx)
		if err != nil {
			return err
		}
		fmt.Println(addr)
		return nil

	case "register":
		return application.Register(ctx)

	case "script":
		if len(args) != 1 {
			return fmt.Errorf("usage: huectl script <file.lua>")
		}
		return script.Run(ctx, application, args[0])

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func runColors(application *app.App, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		return application.ColorsList(os.Stdout)
	case "set":
		if len(args) != 3 {
			return fmt.Errorf("usage: huectl colors set <name> <#rrggbb>")
		}
		return application.ColorsSet(args[1], args[2])
	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("usage: huectl colors rm <name>")
		}
		return application.ColorsRemove(args[1])
	default:
		return fmt.Errorf("unknown colors subcommand %q", args[0])
	}
}

func setupLogging(level string, useJSON bool, colors bool) {
	// ISO 8601 format with timezone
	zerolog.TimeFieldFormat = time.RFC3339

	if useJSON {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "2006-01-02T15:04:05.000Z07:00",
			NoColor:    !colors,
		})
	}

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
