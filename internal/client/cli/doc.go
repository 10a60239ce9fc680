// Package cli implements the interactive StorePulse client: a REPL with a
// sign-in screen and a guarded dashboard screen, lipgloss-rendered views, and
// the wiring that connects config, the local store, the session store, the
// HTTP pipeline, and the application services.
package cli
