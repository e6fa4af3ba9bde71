//go:build !console

package main

import (
	"fmt"
	"strings"

	webview "github.com/webview/webview_go"
	"go.uber.org/zap"
)

// Book spread plus the image panel needs a wide window.
const (
	windowWidth  = 1280
	windowHeight = 760
)

// runEmbeddedUI serves the widget on a loopback port and shows it in a
// native window. Closing the window stops the server and detaches the keys.
func runEmbeddedUI(app *App) error {
	ws := NewWebServer(app, "localhost:0")

	url, cleanup, err := ws.StartForEmbedded()
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	defer cleanup()

	// Dev tools only with debug logging
	inspect := strings.EqualFold(app.Config.Logging.Level, "debug")
	w := webview.New(inspect)
	if w == nil {
		return fmt.Errorf("failed to create window")
	}
	defer w.Destroy()

	w.SetTitle(app.Config.Brand.Name)
	w.SetSize(windowWidth, windowHeight, webview.HintNone)
	w.Navigate(url)
	app.Logger.Info("window opened", zap.String("url", url))

	w.Run()
	return nil
}
