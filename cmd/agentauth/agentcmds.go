package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/agentauth/agentauth/internal/application"
	"github.com/agentauth/agentauth/internal/config"
)

func cmdCreateAgent(ctx context.Context, cfg *config.Config, args []string) error {
	flags := pflag.NewFlagSet("create-agent", pflag.ContinueOnError)
	scopesCSV := flags.StringP("scopes", "s", "", "comma-separated domains the agent may access")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return errors.New("usage: agentauth create-agent <name> --scopes a.com,b.com")
	}

	var scopes []string
	for _, s := range strings.Split(*scopesCSV, ",") {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, s)
		}
	}

	reg, err := openRegistry(cfg)
	if err != nil {
		return err
	}
	defer reg.close()

	agent, err := reg.agents.Create(ctx, flags.Arg(0), scopes)
	if err != nil {
		return err
	}

	fmt.Printf("Agent %q created\n", agent.Name)
	fmt.Printf("  ID:     %s\n", agent.ID)
	if len(agent.Scopes) > 0 {
		fmt.Printf("  Scopes: %s\n", strings.Join(agent.Scopes, ", "))
	} else {
		fmt.Println("  Scopes: (none)")
	}
	return nil
}

func cmdAgents(ctx context.Context, cfg *config.Config) error {
	reg, err := openRegistry(cfg)
	if err != nil {
		return err
	}
	defer reg.close()

	names, err := reg.agents.ListNames(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No agents registered.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tID\tSCOPES\tCREATED")
	for _, name := range names {
		agent, err := reg.agents.Load(ctx, name)
		if err != nil {
			return err
		}
		scopes := strings.Join(agent.Scopes, ", ")
		if scopes == "" {
			scopes = "(none)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			agent.Name, agent.ID, scopes, agent.CreatedAt.UTC().Format(time.RFC3339))
	}
	return w.Flush()
}

func cmdGet(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: agentauth get <agent> <domain>")
	}
	agentName, domain := args[0], args[1]

	reg, err := openRegistry(cfg)
	if err != nil {
		return err
	}
	defer reg.close()

	agent, err := reg.agents.Load(ctx, agentName)
	if err != nil {
		return err
	}

	vault, closeVault, err := openVault(cfg)
	if err != nil {
		return err
	}
	defer closeVault()

	password, err := resolvePassword(cfg)
	if err != nil {
		return err
	}

	sessions := application.NewSessionService(vault)
	access := application.NewAccessService(vault, sessions, reg.audit, slog.Default())

	cookies, err := access.GetSession(ctx, agent, domain, password)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(cookies, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cookies: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func cmdAudit(ctx context.Context, cfg *config.Config, args []string) error {
	flags := pflag.NewFlagSet("audit", pflag.ContinueOnError)
	limit := flags.Int("limit", 20, "maximum number of entries to show")
	if err := flags.Parse(args); err != nil {
		return err
	}

	reg, err := openRegistry(cfg)
	if err != nil {
		return err
	}
	defer reg.close()

	entries, err := reg.audit.Recent(ctx, *limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No access log entries.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tAGENT\tDOMAIN\tOUTCOME")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			entry.Timestamp.UTC().Format(time.RFC3339), entry.AgentName, entry.Domain, entry.Outcome)
	}
	return w.Flush()
}
