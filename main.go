package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sua7dev/qr-generator/api"
	"github.com/sua7dev/qr-generator/config"
	"github.com/sua7dev/qr-generator/download"
	"github.com/sua7dev/qr-generator/qr"
	"github.com/sua7dev/qr-generator/session"
)

var version = "v0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "qr-generator",
		Short: "Styled QR code generator",
	}

	// --- start command -------------------------------------------------------
	var configPath string
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the QR generator web page",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart(configPath)
		},
	}
	startCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to config file")
	root.AddCommand(startCmd)

	// --- generate command ----------------------------------------------------
	var genOpts generateOptions
	def := qr.DefaultStyle()
	generateCmd := &cobra.Command{
		Use:   "generate [text]",
		Short: "Generate a QR code image file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				genOpts.text = args[0]
			} else {
				genOpts.text = config.DefaultText
			}
			return runGenerate(cmd.OutOrStdout(), genOpts)
		},
	}
	generateCmd.Flags().StringVar(&genOpts.style.Foreground, "fg", def.Foreground, "Module color (#RRGGBB)")
	generateCmd.Flags().StringVar(&genOpts.style.Background, "bg", def.Background, "Background color (#RRGGBB)")
	generateCmd.Flags().IntVar(&genOpts.style.ModuleSize, "module-size", def.ModuleSize,
		fmt.Sprintf("Pixels per module (%d-%d)", qr.MinModuleSize, qr.MaxModuleSize))
	generateCmd.Flags().IntVar(&genOpts.style.BorderWidth, "border", def.BorderWidth,
		fmt.Sprintf("Quiet zone width in modules (%d-%d)", qr.MinBorderWidth, qr.MaxBorderWidth))
	generateCmd.Flags().StringVarP(&genOpts.format, "format", "f", "png", "Output format (png or bmp)")
	generateCmd.Flags().StringVarP(&genOpts.out, "out", "o", "", "Output file (default: QR <NNNN> <DD-MM-YYYY>.<format>)")
	root.AddCommand(generateCmd)

	// --- status command ------------------------------------------------------
	var statusAddr string
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Check a running generator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(statusAddr)
		},
	}
	statusCmd.Flags().StringVar(&statusAddr, "addr", "http://localhost:8501", "Generator HTTP address")
	root.AddCommand(statusCmd)

	// --- version command -----------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("qr-generator %s\n", version)
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the process logger for the configured level.
func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// runStart is the main service entrypoint that wires all components together.
func runStart(configPath string) error {
	// 1. Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Setup logger
	log := newLogger(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting qr-generator", "version", version, "port", cfg.Port, "session_ttl", cfg.SessionTTL.Duration)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Session store
	sessions := session.NewStore(
		cfg.SessionTTL.Duration,
		session.Reducer{DefaultText: cfg.DefaultText},
		download.NewPackager(),
		log,
	)
	sessions.StartCleanupLoop(ctx, cfg.CleanupInterval.Duration)

	// 4. Start HTTP server
	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: api.NewRouter(&api.Server{
			Sessions:   sessions,
			CookieName: cfg.CookieName,
			Log:        log,
			Version:    version,
			StartTime:  time.Now(),
		}),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("generator is running", "url", fmt.Sprintf("http://localhost:%d/", cfg.Port))

	// 5. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	log.Info("goodbye")
	return nil
}

type generateOptions struct {
	text   string
	style  qr.Style
	format string
	out    string
}

// runGenerate drives one submit through the same reducer and encoder the
// web page uses and writes the image to a file.
func runGenerate(stdout io.Writer, opts generateOptions) error {
	if opts.format != "png" && opts.format != "bmp" {
		return fmt.Errorf("unsupported format %q (want png or bmp)", opts.format)
	}

	reducer := session.Reducer{DefaultText: config.DefaultText}
	state, _ := reducer.Reduce(session.Default(config.DefaultText), session.StyleChange{Style: opts.style})
	state, effect := reducer.Reduce(state, session.Submit{Text: opts.text})
	if effect != session.EffectEncode {
		return errors.New(state.Warning)
	}

	img, err := qr.Encode(state.Text, state.Style)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	var data []byte
	if opts.format == "bmp" {
		data, err = qr.BMP(img)
	} else {
		data, err = qr.PNG(img)
	}
	if err != nil {
		return err
	}

	out := opts.out
	if out == "" {
		name := download.NewPackager().Filename()
		out = name[:len(name)-len(".png")] + "." + opts.format
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	fmt.Fprintf(stdout, "%s (version %d, %dx%d px)\n", out, img.Version,
		img.Raster.Bounds().Dx(), img.Raster.Bounds().Dy())
	return nil
}

// runStatus queries the generator HTTP status endpoint.
func runStatus(addr string) error {
	resp, err := http.Get(addr + "/status")
	if err != nil {
		return fmt.Errorf("failed to reach generator at %s: %w", addr, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("read status: %w", err)
	}
	fmt.Println(string(body))
	return nil
}
