// Package cms parses document manager flags and wires its services.
package cms

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	platformcmd "github.com/john129er/cms-project/internal/platform/cmd"
	"github.com/john129er/cms-project/internal/platform/config"
	"github.com/john129er/cms-project/internal/platform/otel"
	"github.com/john129er/cms-project/internal/services/docs/app"
	"github.com/john129er/cms-project/internal/services/docs/credential"
	credsqlite "github.com/john129er/cms-project/internal/services/docs/credential/sqlite"
	"github.com/john129er/cms-project/internal/services/docs/credential/yamlfile"
	"github.com/john129er/cms-project/internal/services/docs/document"
	"github.com/john129er/cms-project/internal/services/docs/filename"
	"github.com/john129er/cms-project/internal/services/docs/render"
	"github.com/john129er/cms-project/internal/services/docs/storage/filesystem"
	"github.com/john129er/cms-project/internal/services/docs/web"
)

// Credential backends.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Config holds the cms command configuration.
type Config struct {
	HTTPAddr            string        `env:"CMS_HTTP_ADDR" envDefault:"localhost:4567"`
	DataRoot            string        `env:"CMS_DATA_ROOT" envDefault:"data"`
	CredentialsBackend  string        `env:"CMS_CREDENTIALS_BACKEND" envDefault:"yaml"`
	CredentialsPath     string        `env:"CMS_CREDENTIALS_PATH" envDefault:"users.yml"`
	SessionSecret       string        `env:"CMS_SESSION_SECRET"`
	SessionTTL          time.Duration `env:"CMS_SESSION_TTL" envDefault:"24h"`
	TrustForwardedProto bool          `env:"CMS_TRUST_FORWARDED_PROTO"`
	Telemetry           otel.Config
}

// ParseConfig parses the process environment and then flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	return parseFlags(fs, args, cfg)
}

// ParseConfigWithEnvironment is ParseConfig over an explicit environment.
func ParseConfigWithEnvironment(fs *flag.FlagSet, args []string, environment map[string]string) (Config, error) {
	var cfg Config
	if err := config.ParseEnvMap(&cfg, environment); err != nil {
		return Config{}, err
	}
	return parseFlags(fs, args, cfg)
}

func parseFlags(fs *flag.FlagSet, args []string, cfg Config) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("flag parser is required")
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DataRoot, "data-root", cfg.DataRoot, "Directory holding the documents")
	fs.StringVar(&cfg.CredentialsBackend, "credentials-backend", cfg.CredentialsBackend, "Credential store: yaml or sqlite")
	fs.StringVar(&cfg.CredentialsPath, "credentials-path", cfg.CredentialsPath, "Credential file or database path")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Session lifetime")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.CredentialsBackend = strings.ToLower(strings.TrimSpace(cfg.CredentialsBackend))
	switch cfg.CredentialsBackend {
	case BackendYAML, BackendSQLite:
	default:
		return Config{}, fmt.Errorf("unknown credentials backend %q", cfg.CredentialsBackend)
	}
	return cfg, nil
}

// Run serves the document manager until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceCMS, platformcmd.RunOptions{Telemetry: cfg.Telemetry}, func(ctx context.Context) error {
		server, closeAll, err := Build(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeAll()
		if err := server.ListenAndServe(ctx, cfg.HTTPAddr); err != nil {
			return fmt.Errorf("serve cms: %w", err)
		}
		return nil
	})
}

// Build opens the stores named by cfg and returns the web server with a
// function releasing them.
func Build(ctx context.Context, cfg Config) (*web.Server, func(), error) {
	var closers []func() error
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Printf("close cms resource: %v", err)
			}
		}
	}

	namespace, err := filesystem.Open(cfg.DataRoot)
	if err != nil {
		return nil, func() {}, fmt.Errorf("open data root: %w", err)
	}
	closers = append(closers, namespace.Close)

	backend, closeBackend, err := openCredentials(ctx, cfg)
	if err != nil {
		closeAll()
		return nil, func() {}, err
	}
	closers = append(closers, closeBackend)

	policy := filename.NewPolicy()
	docs, err := document.NewStore(namespace, document.WithPolicy(policy))
	if err != nil {
		closeAll()
		return nil, func() {}, err
	}
	registry, err := credential.NewRegistry(backend, nil)
	if err != nil {
		closeAll()
		return nil, func() {}, err
	}
	svc, err := app.New(docs, render.New(policy), registry)
	if err != nil {
		closeAll()
		return nil, func() {}, err
	}
	server, err := web.New(web.Config{
		Service:             svc,
		SessionSecret:       []byte(cfg.SessionSecret),
		SessionTTL:          cfg.SessionTTL,
		TrustForwardedProto: cfg.TrustForwardedProto,
	})
	if err != nil {
		closeAll()
		return nil, func() {}, fmt.Errorf("init web server: %w", err)
	}
	log.Printf("cms ready data_root=%s credentials_backend=%s",
		namespace.Dir(), cfg.CredentialsBackend)
	return server, closeAll, nil
}

func openCredentials(ctx context.Context, cfg Config) (credential.Backend, func() error, error) {
	switch cfg.CredentialsBackend {
	case BackendSQLite:
		store, err := credsqlite.Open(ctx, cfg.CredentialsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open credential db: %w", err)
		}
		log.Printf("credential db path=%s", cfg.CredentialsPath)
		return store, store.Close, nil
	case BackendYAML, "":
		store, err := yamlfile.Open(cfg.CredentialsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open credential file: %w", err)
		}
		log.Printf("credential file path=%s", store.Path())
		return store, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown credentials backend %q", cfg.CredentialsBackend)
	}
}
