// Command github-agent is an example downstream consumer: an agent process
// that asks the vault for its github.com session and drives the GitHub API
// with the released cookies. It demonstrates how a client adapts the flat
// cookie mapping to its own transport; no vault logic lives here.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"
	"github.com/spf13/pflag"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	sqliteadapter "github.com/agentauth/agentauth/internal/adapter/driven/sqlite"
	"github.com/agentauth/agentauth/internal/application"
	"github.com/agentauth/agentauth/internal/config"
	"github.com/agentauth/agentauth/internal/domain/model"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("github-agent", pflag.ContinueOnError)
	agentName := flags.String("agent", "github-bot", "registered agent identity to act as")
	domain := flags.String("domain", "github.com", "domain to request a session for")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()

	// 1. Load the agent identity from the registry.
	regDB, err := sqliteadapter.NewDB(cfg.RegistryPath)
	if err != nil {
		return err
	}
	defer regDB.Close()
	if err := sqliteadapter.RunRegistryMigrations(regDB.Writer); err != nil {
		return err
	}

	agents := application.NewAgentService(sqliteadapter.NewAgentRepo(regDB))
	agent, err := agents.Load(ctx, *agentName)
	if err != nil {
		return err
	}

	// 2. Request the session through the disclosure gate.
	if !sqliteadapter.Exists(cfg.VaultPath) {
		return fmt.Errorf("%w: run 'agentauth init' first", model.ErrVaultNotInitialized)
	}
	vaultDB, err := sqliteadapter.OpenExisting(cfg.VaultPath)
	if err != nil {
		return err
	}
	defer vaultDB.Close()
	if err := sqliteadapter.RunVaultMigrations(vaultDB.Writer); err != nil {
		return err
	}

	password := os.Getenv("AGENTAUTH_PASSWORD")
	if password == "" {
		return fmt.Errorf("AGENTAUTH_PASSWORD must be set for unattended use")
	}

	vault := application.NewVault(sqliteadapter.NewVaultRepo(vaultDB))
	sessions := application.NewSessionService(vault)
	access := application.NewAccessService(vault, sessions, sqliteadapter.NewAuditRepo(regDB), slog.Default())

	cookies, err := access.GetSession(ctx, agent, *domain, password)
	if err != nil {
		return err
	}
	slog.Info("session released", "agent", agent.Name, "domain", *domain, "cookies", len(cookies))

	// 3. Build the GitHub client with the transport stack:
	//    cookie injection -> httpcache (conditional request caching) ->
	//    go-github-ratelimit (sleeps on secondary rate limits) -> go-github.
	cacheTransport := httpcache.NewMemoryCacheTransport()
	cacheTransport.Transport = &cookieTransport{cookies: cookies, base: http.DefaultTransport}
	client := gh.NewClient(github_ratelimit.NewClient(cacheTransport))

	repos, _, err := client.Repositories.ListByUser(ctx, "golang", nil)
	if err != nil {
		return fmt.Errorf("list repositories: %w", err)
	}
	for _, repo := range repos {
		fmt.Println(repo.GetFullName())
	}
	return nil
}

// cookieTransport attaches the released session cookies to every outgoing
// request. Downstream consumers own this adaptation; the vault only hands
// out flat name/value pairs.
type cookieTransport struct {
	cookies model.Cookies
	base    http.RoundTripper
}

func (t *cookieTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	for name, value := range t.cookies {
		clone.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	return t.base.RoundTrip(clone)
}
