package cli

import (
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// Run starts the read-eval-print loop. It reads a line, parses the first
// token as the command, and dispatches. The loop exits on EOF or when the
// user types "exit" or "quit".
//
// Commands on the sign-in screen:
//
//	help, register, login, exit | quit
//
// Commands on the dashboard screen (all re-checked against the session store
// before running):
//
//	help, d | dashboard, insights, period <7d|30d|90d>,
//	connect-shopify, connect-google, google-code <code>, set-property,
//	whoami, logout, exit | quit
//
// Errors returned by command handlers are printed by the handlers themselves;
// the loop stays up regardless.
func (a *App) Run(ctx context.Context) {
	printlnFn("StorePulse CLI (type 'help' for commands)")

	// Commands and interactive prompts share a.reader so no buffered input
	// is lost between them.
	for {
		fmt.Fprintf(a.out, "storepulse (%s)> ", a.prompt())
		line, err := a.reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		if !a.dispatch(ctx, parts[0], parts[1:]) {
			printlnFn("Bye!")
			return
		}
		if err != nil {
			return
		}
	}
}

// dispatch executes one command. It returns false when the loop should exit.
func (a *App) dispatch(ctx context.Context, cmd string, args []string) bool {
	switch cmd {
	case "exit", "quit":
		return false

	case "help":
		a.help()
		return true

	case "register":
		_ = a.registerCmd(ctx)
		return true

	case "login":
		_ = a.loginCmd(ctx)
		return true
	}

	// Everything below is dashboard-screen territory.
	if !a.guard() {
		return true
	}

	switch cmd {
	case "d", "dashboard":
		_ = a.dashboardCmd(ctx)

	case "insights":
		_ = a.insightsCmd(ctx)

	case "period":
		a.periodCmd(args)

	case "connect-shopify":
		_ = a.connectShopifyCmd(ctx)

	case "connect-google":
		_ = a.connectGoogleCmd(ctx)

	case "google-code":
		_ = a.googleCodeCmd(ctx, args)

	case "set-property":
		_ = a.setPropertyCmd(ctx)

	case "whoami":
		a.whoamiCmd()

	case "logout":
		_ = a.logoutCmd(ctx)

	default:
		printlnFn("Unknown command:", cmd)
	}
	return true
}

func (a *App) help() {
	if a.screen == screenDashboard && a.sessions.Authenticated() {
		printlnFn("Available commands: (d)ashboard, insights, period <7d|30d|90d>,")
		printlnFn("  connect-shopify, connect-google, google-code <code>, set-property,")
		printlnFn("  whoami, logout, exit")
		return
	}
	printlnFn("Available commands: register, login, exit")
}
