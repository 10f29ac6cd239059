package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mwl/internal/services"
	"github.com/desertthunder/mwl/internal/shared"
	"github.com/desertthunder/mwl/internal/tasks"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	watchlist  services.Watchlist
	api        *services.APIService
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	input      io.Reader
	engine     *tasks.Engine

	// injected is set when the caller supplied the watchlist client, so flags never replace it.
	injected bool
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Watchlist  services.Watchlist
	API        *services.APIService
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Config.Server.Timeout()}
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      opts.Input,
		injected:   opts.Watchlist != nil,
	}

	r.api = opts.API
	if r.api == nil {
		r.api = services.NewAPIService(opts.Config.Server.BaseURL, opts.HTTPClient)
	}

	r.watchlist = opts.Watchlist
	if r.watchlist == nil {
		r.watchlist = services.NewWatchlistService(r.api)
	}
	r.engine = tasks.NewEngine(r.watchlist)

	return r
}

// SetLogger replaces the logger used by subsequent commands.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// before loads the configuration named by --config, applies the global flag overrides and rebuilds the clients.
//
// A missing config file falls back to defaults; a malformed one is an error.
func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	if _, err := os.Stat(path); err == nil {
		config, err := shared.LoadConfig(path)
		if err != nil {
			return ctx, err
		}
		r.config = config
		r.configPath = path
	} else if cmd.IsSet("config") {
		r.logger.Warn("config file not found, using defaults", "path", path, "error", shared.ErrMissingConfig)
	}

	if base := strings.TrimSpace(cmd.String("base-url")); base != "" {
		r.config.Server.BaseURL = base
		if err := r.config.Validate(); err != nil {
			return ctx, err
		}
	}

	levelName := r.config.Log.Level
	if cmd.IsSet("log-level") {
		levelName = cmd.String("log-level")
	}
	level, err := shared.ParseLogLevel(levelName)
	if err != nil {
		return ctx, err
	}
	shared.SetLogLevel(r.logger, level)

	if !r.injected {
		r.httpClient.Timeout = r.config.Server.Timeout()
		r.api = services.NewAPIService(r.config.Server.BaseURL, r.httpClient)
		r.watchlist = services.NewWatchlistService(r.api)
		r.engine = tasks.NewEngine(r.watchlist)
	}

	r.logger.Debug("configured", "base_url", r.api.BaseURL(), "config", r.configPath)
	return ctx, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		listCommand, getCommand, addCommand, updateCommand, deleteCommand, metricsCommand, idsCommand, statusCommand,
		exportCommand, importCommand, dumpCommand, previewCommand, openCommand, apiCommand, setupCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// isTerminal reports whether output is an interactive terminal.
func (r *Runner) isTerminal() bool {
	f, ok := r.output.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// drain writes progress messages as they arrive and returns a channel closed once progress is closed and drained.
func (r *Runner) drain(progress <-chan tasks.ProgressUpdate, format func(tasks.ProgressUpdate) string) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			if line := format(update); line != "" {
				r.writePlain("%s\n", line)
			}
		}
	}()
	return done
}
