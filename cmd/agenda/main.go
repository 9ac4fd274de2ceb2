package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"agenda/internal/agenda"
	"agenda/internal/config"
	appLog "agenda/internal/log"
	"agenda/internal/tui"
)

type flagConfig struct {
	configPath string
	debug      bool
}

func main() {
	os.Exit(run())
}

func run() int {
	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		return 1
	}

	level, err := appLog.ParseLevel(conf.LogLevel)
	if err != nil {
		appLog.Error("invalid log level, using info", err, "log_level", conf.LogLevel)
		level = appLog.LevelInfo
	}
	if flags.debug {
		level = appLog.LevelDebug
	}
	// Nothing may be written to the terminal while the UI owns it.
	if err := appLog.Init(appLog.Options{Level: level, File: conf.LogFile, Discard: true}); err != nil {
		appLog.Error("failed to open log file", err, "log_file", conf.LogFile)
		return 1
	}
	defer appLog.Close()

	appLog.Info("agenda starting",
		"config_path", flags.configPath,
		"week_start", conf.WeekStart,
		"export_path", conf.ExportPath,
		"confirm_delete", conf.ShouldConfirmDelete(),
	)

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "agenda: stdin and stdout must be a terminal")
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ui := tui.New(agenda.NewStore(), tui.OptionsFromConfig(conf))
	p := tea.NewProgram(
		ui,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		appLog.Error("ui exited with error", err)
		fmt.Fprintln(os.Stderr, "agenda:", err)
		return 1
	}

	// The session is discarded on exit.
	appLog.Info("agenda exiting", "events", len(ui.Events()))
	return 0
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", config.DefaultPath(), "Path to config file")
	flag.BoolVar(&cfg.debug, "debug", false, "Log at debug level")

	flag.Parse()

	return cfg
}
