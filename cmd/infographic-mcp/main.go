package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/ironsheep/indic-infographic-mcp/internal/config"
	"github.com/ironsheep/indic-infographic-mcp/internal/infographic"
	"github.com/ironsheep/indic-infographic-mcp/internal/languages"
	"github.com/ironsheep/indic-infographic-mcp/internal/logging"
	"github.com/ironsheep/indic-infographic-mcp/internal/ocr"
	"github.com/ironsheep/indic-infographic-mcp/internal/server"
	"github.com/ironsheep/indic-infographic-mcp/internal/translate"
	"github.com/ironsheep/indic-infographic-mcp/internal/typeset"
	"github.com/ironsheep/indic-infographic-mcp/internal/web"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	httpMode := false
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("infographic-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		case "--http", "http":
			httpMode = true
		default:
			fmt.Fprintf(os.Stderr, "unknown argument %q, see --help\n", os.Args[1])
			os.Exit(2)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)
	log := logging.For(logging.ComponentStartup)
	log.Info("starting", "version", Version, "commit", GitCommit, "built", BuildTime)

	if err := run(cfg, httpMode, log); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, httpMode bool, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := languages.Validate(languages.All()); err != nil {
		return err
	}

	fonts := typeset.NewFontSet(cfg.FontDir)
	for _, st := range fonts.Status(languages.All()) {
		if !st.Available {
			log.Warn("font unavailable", "language", st.Language, "path", st.Path, "error", st.Error)
		}
	}

	theme, err := infographic.NewTheme(cfg.Theme)
	if err != nil {
		return err
	}
	for _, w := range theme.Warnings() {
		log.Warn("theme", "warning", w)
	}

	renderer := infographic.NewRenderer(fonts, theme)
	canvas := infographic.Canvas{Width: cfg.Canvas.Width, Height: cfg.Canvas.Height, FontSize: cfg.Canvas.FontSize}
	gen := infographic.NewGenerator(newTranslator(cfg.Translator, log), renderer, canvas)

	if httpMode {
		addr := cfg.HTTPAddr
		if addr == "" {
			addr = ":8080"
		}
		gin.SetMode(config.Get("GIN_MODE", gin.ReleaseMode))
		router := web.NewRouter(gen, web.Options{RateLimit: cfg.RateLimit, Version: Version})
		return web.Serve(ctx, addr, router)
	}

	tess := ocr.NewTesseract(cfg.Tessdata)
	info := tess.Info()
	if !info.Available {
		log.Warn("OCR unavailable, verify will check geometry only", "error", info.Error)
	}
	srv := server.New(gen, server.Options{
		OutputDir: cfg.OutputDir,
		Version:   Version,
		OCR:       tess,
		OCRInfo:   info,
	})
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("stopped")
	return nil
}

func newTranslator(cfg config.TranslatorConfig, log *slog.Logger) translate.Translator {
	if cfg.Mode == config.TranslatorPassthrough {
		log.Warn("translation disabled, text is rendered as given")
		return translate.Passthrough{}
	}
	log.Info("translator", "url", cfg.URL, "timeout", cfg.Timeout)
	return translate.NewIndicTrans(cfg.URL, cfg.Timeout,
		translate.WithToken(cfg.Token),
		translate.WithMaxLength(cfg.MaxLength))
}

func printHelp() {
	fmt.Println("infographic-mcp - translate English text into Indic languages and render it as a PNG infographic")
	fmt.Println()
	fmt.Println("Usage: infographic-mcp [--http] [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --http           Serve the HTTP API instead of MCP over stdio")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  INFOGRAPHIC_CONFIG=path.yaml          Optional YAML config file")
	fmt.Println("  INFOGRAPHIC_FONT_DIR=fonts            Directory holding the Noto Sans fonts")
	fmt.Println("  INFOGRAPHIC_OUTPUT_DIR=out            Where saved infographics are written")
	fmt.Println("  INFOGRAPHIC_LOG_LEVEL=debug           Log level (debug, info, warn, error)")
	fmt.Println("  INFOGRAPHIC_TRANSLATOR=indictrans     indictrans or passthrough")
	fmt.Println("  INFOGRAPHIC_TRANSLATOR_URL=...        IndicTrans inference endpoint")
	fmt.Println("  INFOGRAPHIC_TRANSLATOR_TOKEN=...      Bearer token (or _FILE)")
	fmt.Println("  INFOGRAPHIC_HTTP_ADDR=:8080           Listen address in --http mode")
	fmt.Println("  INFOGRAPHIC_RATE_LIMIT=30             API requests per minute per client")
	fmt.Println("  TESSDATA_PREFIX=/usr/share/tessdata   Tesseract language data for verify")
	fmt.Println()
	fmt.Println("Without --http the server communicates via MCP protocol over stdin/stdout.")
}
