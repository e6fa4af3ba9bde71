//go:build console

package main

import "fmt"

// Console-only builds carry no webview dependency.
func runEmbeddedUI(app *App) error {
	return fmt.Errorf("no window support in the console build of %s (use -web or -console)", app.Config.Brand.Name)
}
