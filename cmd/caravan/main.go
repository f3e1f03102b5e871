package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/zalando/go-keyring"

	"github.com/lakisicaslt/lakisicaslt/internal/config"
	"github.com/lakisicaslt/lakisicaslt/internal/engine"
	"github.com/lakisicaslt/lakisicaslt/internal/i18n"
	"github.com/lakisicaslt/lakisicaslt/internal/render"
	"github.com/lakisicaslt/lakisicaslt/internal/server"
)

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
// os.Exit() does not run defers, so we must return an integer code first.
func main() {
	os.Exit(runMain())
}

// options carries the parsed CLI flags into run.
type options struct {
	user  string
	trail string
	out   string
	lang  string
	serve bool
	port  string
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
// Returns config.ExitCodeSuccess on success, config.ExitCodeError on failure.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)

	var opts options
	flag.StringVar(&opts.user, config.FlagUser, config.DefaultUser, config.FlagDescUser)
	flag.StringVar(&opts.trail, config.FlagTrail, config.DefaultTrail, config.FlagDescTrail)
	flag.StringVar(&opts.out, config.FlagOut, config.DefaultOutDir, config.FlagDescOut)
	flag.StringVar(&opts.lang, config.FlagLang, config.DefaultLanguage, config.FlagDescLang)
	flag.BoolVar(&opts.serve, config.FlagServe, false, config.FlagDescServe)
	flag.StringVar(&opts.port, config.FlagPort, config.DefaultPort, config.FlagDescPort)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	// We configure structured logging (slog) early to capture startup issues.
	logCloser := setupLogging(*debugMode)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	// Create a root context that cancels on SIGINT (Ctrl+C) or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	if err := run(ctx, opts); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run wires the translator, the engine, and the chosen output mode.
func run(ctx context.Context, opts options) error {
	translator, err := i18n.New(opts.lang)
	if err != nil {
		return err
	}

	gen := &engine.Generator{
		Fetcher:     engine.NewGitHubFetcher(),
		FormatLabel: translator.CellLabel,
		FormatTitle: translator.Title,
		LegendLess:  translator.LegendLess(),
		LegendMore:  translator.LegendMore(),
	}

	runOpts := engine.Options{
		Username:  opts.user,
		Token:     resolveToken(opts.user),
		TrailMode: opts.trail,
	}

	if opts.serve {
		return serveLoop(ctx, gen, runOpts, opts.port)
	}

	outputs, _, err := gen.Run(ctx, runOpts)
	if err != nil {
		return err
	}
	return writeFiles(opts.out, outputs)
}

// resolveToken looks up the GitHub credential: environment first, then the
// OS keyring. An empty result is rejected by the engine before any network
// call is attempted.
func resolveToken(user string) string {
	if token := os.Getenv(config.EnvToken); token != "" {
		slog.Debug(config.MsgTokenFromEnv, config.LogKeyComponent, config.CompMain)
		return token
	}

	token, err := keyring.Get(config.KeyringService, user)
	if err != nil {
		slog.Debug(config.ErrTokenMissing,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return ""
	}
	slog.Debug(config.MsgTokenKeyring, config.LogKeyComponent, config.CompMain)
	return token
}

// writeFiles persists one SVG per theme into the output directory.
func writeFiles(outDir string, outputs map[string][]byte) error {
	if err := os.MkdirAll(outDir, config.DirPermShared); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCreateOutDir, err)
	}

	names := map[string]string{
		render.Dark.Name:  config.OutFileDark,
		render.Light.Name: config.OutFileLight,
	}

	for theme, data := range outputs {
		path := filepath.Join(outDir, names[theme])
		if err := os.WriteFile(path, data, config.FilePermShared); err != nil {
			return fmt.Errorf("%s: %w", config.ErrWriteFile, err)
		}
		slog.Info(config.MsgFilesWritten,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyTheme, theme,
			config.LogKeyFile, path,
			config.LogKeySizeBytes, len(data),
		)
	}
	return nil
}

// serveLoop renders once, publishes the result over HTTP, and refreshes it
// periodically until the context is cancelled. The initial render must
// succeed; later refresh failures keep the previous render.
func serveLoop(ctx context.Context, gen *engine.Generator, runOpts engine.Options, port string) error {
	srv := server.NewSVGServer(port)

	refresh := func() error {
		outputs, _, err := gen.Run(ctx, runOpts)
		if err != nil {
			return err
		}
		for theme, data := range outputs {
			srv.Update(theme, data)
		}
		return nil
	}

	if err := refresh(); err != nil {
		return err
	}

	go func() {
		ticker := time.NewTicker(config.RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				slog.Info(config.MsgWorkerStop, config.LogKeyComponent, config.CompWorker)
				return
			case <-ticker.C:
				slog.Info(config.MsgRefreshStart, config.LogKeyComponent, config.CompWorker)
				if err := refresh(); err != nil {
					slog.Warn(config.MsgRefreshFail,
						config.LogKeyComponent, config.CompWorker,
						config.LogKeyError, err,
					)
				}
			}
		}
	}()

	return srv.Start(ctx)
}

// printVersion outputs the build information to stdout and exits.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger.
func setupLogging(debugMode bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	// 1. Always write to Stdout.
	writers = append(writers, os.Stdout)

	// 2. Attempt to set up a file writer in the user's cache directory.
	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		// Use centralized permission constants for security.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Ensure the directory exists with restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
