// Command agentauth is the interactive front end to the vault: it
// initializes the store, imports sessions, manages agent identities, and
// exercises the disclosure path the way an agent process would.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/agentauth/agentauth/internal/config"
	"github.com/agentauth/agentauth/internal/domain/model"
)

const usage = `agentauth - local encrypted vault for agent browser sessions

Usage:
  agentauth init                            Initialize the vault with a master password
  agentauth add <domain> [flags]            Store a session for a domain
  agentauth sessions                        List stored sessions
  agentauth create-agent <name> [flags]     Register an agent identity
  agentauth agents                          List registered agents
  agentauth get <agent> <domain>            Release a session to an agent
  agentauth audit [flags]                   Show recent disclosure decisions
  agentauth keyring <set|clear>             Manage the master password in the OS keyring

Run 'agentauth <command> --help' for command flags.
`

func main() {
	os.Exit(run())
}

func run() int {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		return fail(err)
	}

	ctx := context.Background()

	switch args[0] {
	case "init":
		err = cmdInit(ctx, cfg)
	case "add":
		err = cmdAdd(ctx, cfg, args[1:])
	case "sessions":
		err = cmdSessions(ctx, cfg)
	case "create-agent":
		err = cmdCreateAgent(ctx, cfg, args[1:])
	case "agents":
		err = cmdAgents(ctx, cfg)
	case "get":
		err = cmdGet(ctx, cfg, args[1:])
	case "audit":
		err = cmdAudit(ctx, cfg, args[1:])
	case "keyring":
		err = cmdKeyring(cfg, args[1:])
	case "help", "--help", "-h":
		fmt.Print(usage)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", args[0], usage)
		return 1
	}

	if err != nil {
		return fail(err)
	}
	return 0
}

// fail prints a user-facing message and maps the error kind to a distinct
// exit status so scripted callers can tell remediation paths apart.
func fail(err error) int {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)

	switch {
	case errors.Is(err, model.ErrVaultNotInitialized):
		return 2
	case errors.Is(err, model.ErrVaultAuthentication):
		return 3
	case errors.Is(err, model.ErrVaultIntegrity):
		return 4
	case errors.Is(err, model.ErrSessionNotFound):
		return 5
	case errors.Is(err, model.ErrSessionExpired):
		return 6
	case errors.Is(err, model.ErrAgentNotFound):
		return 7
	case errors.Is(err, model.ErrDuplicateAgentName):
		return 8
	case errors.Is(err, model.ErrScopeDenied):
		return 9
	case errors.Is(err, model.ErrInvalidCookies),
		errors.Is(err, model.ErrExpiryNotFuture),
		errors.Is(err, model.ErrInvalidAgent),
		errors.Is(err, model.ErrVaultAlreadyInitialized):
		return 10
	default:
		return 1
	}
}
