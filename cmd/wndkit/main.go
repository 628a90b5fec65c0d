package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/muesli/termenv"
	"github.com/urfave/cli/v3"

	"github.com/idursun/wndkit/internal/config"
	"github.com/idursun/wndkit/internal/logging"
	"github.com/idursun/wndkit/internal/scenario"
	"github.com/idursun/wndkit/internal/ui/common"
	"github.com/idursun/wndkit/internal/ui/desktop"
)

var version = "dev"

func main() {
	err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args)
	if err == nil {
		return
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintf(os.Stderr, "wndkit: %s\n", msg)
	}
	if exitErr, ok := err.(cli.ExitCoder); ok {
		os.Exit(exitErr.ExitCode())
	}
	os.Exit(1)
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "wndkit",
		Usage:     "draggable and resizable windows in the terminal",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "read configuration from `FILE` instead of the user config",
			},
		},
		Action: runDesktop,
		Commands: []*cli.Command{
			{
				Name:      "replay",
				Usage:     "replay gesture scenarios without a terminal",
				ArgsUsage: "[FILE...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "builtin", Usage: "replay the scenarios shipped with wndkit"},
				},
				Action: runReplay,
			},
		},
		// main turns exit coders into exit codes
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg := config.Current
	if file := cmd.String("config"); file != "" {
		if err := cfg.LoadFile(file); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	data, err := config.LoadConfigFile()
	if err != nil {
		return nil, err
	}
	if data == nil {
		return cfg, nil
	}
	for _, warning := range config.DeprecatedConfigWarnings(string(data)) {
		fmt.Fprintf(cmd.Root().ErrWriter, "wndkit: %s\n", warning)
	}
	if err := cfg.Load(string(data)); err != nil {
		return nil, fmt.Errorf("loading user config: %w", err)
	}
	return cfg, nil
}

func runDesktop(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := logging.Init(cfg.Log, version)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	colors, err := cfg.ResolveColors(termenv.HasDarkBackground())
	if err != nil {
		return fmt.Errorf("resolving colors: %w", err)
	}
	palette := common.NewPalette()
	palette.Update(colors)

	slog.Info("starting desktop")
	p := tea.NewProgram(desktop.New(cfg, palette), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running desktop: %w", err)
	}
	return nil
}

func runReplay(_ context.Context, cmd *cli.Command) error {
	var scenarios []*scenario.Scenario
	if cmd.Bool("builtin") {
		builtin, err := scenario.Builtin()
		if err != nil {
			return err
		}
		scenarios = append(scenarios, builtin...)
	}
	for _, file := range cmd.Args().Slice() {
		s, err := scenario.Load(file)
		if err != nil {
			return err
		}
		scenarios = append(scenarios, s)
	}
	if len(scenarios) == 0 {
		return cli.Exit("replay: give scenario files or --builtin", 2)
	}

	out := cmd.Root().Writer
	failed := 0
	for _, s := range scenarios {
		fmt.Fprintf(out, "# %s\n", s.Name)
		res, err := s.Replay()
		if err != nil {
			return err
		}
		if err := res.Write(out); err != nil {
			return err
		}
		if err := s.Check(res); err != nil {
			failed++
			fmt.Fprintf(cmd.Root().ErrWriter, "FAIL %v\n", err)
		}
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d scenarios failed", failed, len(scenarios)), 1)
	}
	return nil
}
