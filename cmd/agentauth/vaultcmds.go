package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	sqliteadapter "github.com/agentauth/agentauth/internal/adapter/driven/sqlite"
	"github.com/agentauth/agentauth/internal/application"
	"github.com/agentauth/agentauth/internal/config"
	"github.com/agentauth/agentauth/internal/domain/model"
)

func cmdInit(ctx context.Context, cfg *config.Config) error {
	if sqliteadapter.Exists(cfg.VaultPath) {
		fmt.Printf("Vault already initialized at %s\n", cfg.VaultPath)
		return nil
	}

	password, err := promptNewPassword()
	if err != nil {
		return err
	}

	vault, closeVault, err := createVault(cfg)
	if err != nil {
		return err
	}
	defer closeVault()

	if err := vault.Initialize(ctx, password); err != nil {
		return err
	}

	fmt.Printf("Vault initialized at %s\n", cfg.VaultPath)
	return nil
}

func cmdAdd(ctx context.Context, cfg *config.Config, args []string) error {
	flags := pflag.NewFlagSet("add", pflag.ContinueOnError)
	cookiesJSON := flags.String("cookies-json", "", "cookie mapping as a JSON object (prompted for when omitted)")
	expiresIn := flags.Duration("expires-in", 30*24*time.Hour, "session lifetime from now")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return errors.New("usage: agentauth add <domain> [--cookies-json ...] [--expires-in ...]")
	}
	domain := flags.Arg(0)

	raw := *cookiesJSON
	if raw == "" {
		fmt.Println(`Enter cookies as a JSON object, e.g. {"session_id": "abc123"}:`)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("read cookies: %w", err)
		}
		raw = line
	}
	cookies, err := model.CookiesFromJSON([]byte(raw))
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

	handle, err := vault.Unlock(ctx, password)
	if err != nil {
		return err
	}
	defer handle.Zero()

	sessions := application.NewSessionService(vault)
	expiresAt := time.Now().Add(*expiresIn)
	if err := sessions.Store(ctx, handle, domain, cookies, expiresAt); err != nil {
		return err
	}

	fmt.Printf("Session stored for %s (expires %s)\n",
		model.NormalizeDomain(domain), expiresAt.UTC().Format(time.RFC3339))
	return nil
}

func cmdSessions(ctx context.Context, cfg *config.Config) error {
	vault, closeVault, err := openVault(cfg)
	if err != nil {
		return err
	}
	defer closeVault()

	// Listing is enumeration, not disclosure: no password needed.
	infos, err := vault.List(ctx)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Println("No sessions stored.")
		return nil
	}

	now := time.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DOMAIN\tCREATED\tEXPIRES")
	for _, info := range infos {
		expires := info.ExpiresAt.UTC().Format(time.RFC3339)
		if !info.ExpiresAt.After(now) {
			expires += " (EXPIRED)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", info.Domain, info.CreatedAt.UTC().Format(time.RFC3339), expires)
	}
	return w.Flush()
}
