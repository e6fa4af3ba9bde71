package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Savings Deck

A page-turning presentation for restaurant owners that ends in a savings
calculator. Figures entered on the form page are saved locally, the
calculator compares them against a subscription plan, and the result can
be exported as a PDF report and shared with the restaurant by message.

Usage:
  %s [options]

Options:
`, os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  %s                           Embedded browser window (default)
  %s -web                      Web server mode (opens external browser)
  %s -web -addr :8080          Web server on specific port
  %s -console                  Terminal mode
  %s -export "Spice Garden"    Write the PDF report for a saved restaurant
  %s -init-config config.yaml  Write the default configuration to a file

Configuration:
  Edit config.yaml to change the brand, pricing plans, slide file, storage
  backend and share settings. SAVINGSDECK_* environment variables (or a
  .env file) override storage, logging and server settings.
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0])
	}

	configFile := flag.String("config", "config.yaml", "Path to YAML configuration file")
	consoleMode := flag.Bool("console", false, "Use console interface instead of GUI (default is GUI)")
	webMode := flag.Bool("web", false, "Start web server mode (opens external browser)")
	uiMode := flag.Bool("ui", false, "Start embedded browser mode (webview window)")
	webAddr := flag.String("addr", "", "Web server address (overrides server.addr; use :0 for auto port)")
	exportName := flag.String("export", "", "Export the PDF report for a saved restaurant and exit")
	tierName := flag.String("tier", "", "Plan to price the report with (default: pricing.default_tier)")
	initConfig := flag.String("init-config", "", "Write the default configuration to this file and exit")
	flag.Parse()

	if *initConfig != "" {
		config, err := LoadDefaultConfig()
		if err == nil {
			err = SaveConfig(config, *initConfig)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Default configuration written to %s\n", *initConfig)
		return
	}

	config, err := LoadConfigWithEnv(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *webAddr != "" {
		config.Server.Addr = *webAddr
	}

	logger := NewLogger(config.Logging.Level, config.Logging.Format)
	defer logger.Sync()

	app, err := NewApp(config, logger, nil)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *tierName != "" {
		if err := app.Session.SelectTier(*tierName); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", UserMessage(err))
			os.Exit(1)
		}
	}

	switch {
	case *exportName != "":
		if err := runExport(ctx, app, *exportName); err != nil {
			fmt.Fprintf(os.Stderr, "Export error: %s\n", UserMessage(err))
			os.Exit(1)
		}

	case *uiMode:
		if err := runEmbeddedUI(app); err != nil {
			fmt.Fprintf(os.Stderr, "Embedded UI error: %v\n", err)
			os.Exit(1)
		}

	case *webMode:
		server := NewWebServer(app, config.Server.Addr)
		if err := server.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Web server error: %v\n", err)
			os.Exit(1)
		}

	case *consoleMode:
		if err := NewConsole(app, os.Stdin, os.Stdout).Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Console error: %v\n", err)
			os.Exit(1)
		}

	default:
		if err := runEmbeddedUI(app); err != nil {
			fmt.Fprintf(os.Stderr, "GUI error: %v\n", err)
			// Fall back to console mode if GUI fails
			fmt.Println("Falling back to console mode...")
			if err := NewConsole(app, os.Stdin, os.Stdout).Run(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Console error: %v\n", err)
				os.Exit(1)
			}
		}
	}
}

// runExport writes the report for a saved restaurant without any UI
func runExport(ctx context.Context, app *App, name string) error {
	app.Session.SetQuery(ctx, name)
	record, found := app.Session.Search(ctx)
	if !found {
		return ErrNoActiveRecord.WithDetails("no saved restaurant named %q", name)
	}
	res, err := app.Download(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Report for %s (%s plan) written to %s\n", record.RestaurantName, app.Session.Tier().Name, res.Location)
	return nil
}
