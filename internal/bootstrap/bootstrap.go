// Package bootstrap builds the collaborators every EchoNet binary shares:
// configuration, logging, metrics, the signing key and the HTTP app.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	httptransport "github.com/echonet/echonet/internal/api/http"
	"github.com/echonet/echonet/internal/auth"
	"github.com/echonet/echonet/internal/config"
	"github.com/echonet/echonet/internal/observability"
	"github.com/echonet/echonet/internal/persistence"
)

const shutdownTimeout = 10 * time.Second

// Options are the command-line flags accepted by every binary.
type Options struct {
	EnvFile string
	Addr    string
}

// ParseFlags reads the shared flags from args (without the program name).
func ParseFlags(name string, args []string) (Options, error) {
	var opts Options
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.StringVar(&opts.EnvFile, "env-file", "", "path to a .env file loaded before the environment is read")
	flagSet.StringVar(&opts.Addr, "addr", "", "listen address, overrides APP_HOST/APP_PORT")
	if err := flagSet.Parse(args); err != nil {
		return Options{}, err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return Options{}, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	return opts, nil
}

// Base holds process-wide collaborators built once at startup.
type Base struct {
	Name    string
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *observability.Metrics
	Key     auth.SigningKey
	addr    string
}

// New loads configuration, builds the logger and derives the signing key.
// A weak or missing secret stops the process here rather than on first use.
func New(name string, opts Options) (*Base, error) {
	var envFiles []string
	if opts.EnvFile != "" {
		envFiles = append(envFiles, opts.EnvFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logger = logger.With(zap.String("service", name), zap.String("version", cfg.App.Version))

	key, err := auth.NewSigningKey(cfg.Auth.JWTSecret)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("signing key: %w", err)
	}

	addr := cfg.App.Addr()
	if opts.Addr != "" {
		addr = opts.Addr
	}

	return &Base{
		Name:    name,
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewMetrics(),
		Key:     key,
		addr:    addr,
	}, nil
}

// Gate builds the request gate with the configured identity policy, or
// fallback when AUTH_IDENTITY_POLICY is unset.
func (b *Base) Gate(fallback auth.IdentityPolicy) (*auth.Gate, error) {
	policy, err := auth.ParsePolicy(b.Config.Auth.IdentityPolicy, fallback)
	if err != nil {
		return nil, err
	}
	verifier, err := auth.NewVerifier(b.Key, policy)
	if err != nil {
		return nil, err
	}
	b.Logger.Info("request gate ready", zap.String("policy", string(verifier.Policy())))
	return auth.NewGate(verifier, b.Logger, b.Metrics), nil
}

// Postgres connects to the database and applies migrations when enabled.
func (b *Base) Postgres(ctx context.Context) (*persistence.Postgres, error) {
	cfg := b.Config.Postgres
	if cfg.ApplicationName == "" {
		cfg.ApplicationName = b.Name
	}
	pg, err := persistence.NewPostgres(ctx, cfg, b.Logger)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if b.Config.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), b.Logger); err != nil {
			pg.Close()
			return nil, err
		}
	}
	return pg, nil
}

// Redis connects to Redis, naming the connection after the service.
func (b *Base) Redis(ctx context.Context) *persistence.Redis {
	cfg := b.Config.Redis
	if cfg.ClientName == "" {
		cfg.ClientName = b.Name
	}
	return persistence.NewRedis(ctx, cfg, b.Logger)
}

// App returns a Fiber app with the shared middleware chain installed.
func (b *Base) App() *fiber.App {
	app := httptransport.NewApp(b.Name)
	httptransport.RegisterMiddlewares(app, b.Logger, b.Metrics, b.Config.App.RequestTimeout())
	return app
}

// Serve listens until SIGINT/SIGTERM or ctx is done, then shuts the app down.
func (b *Base) Serve(ctx context.Context, app *fiber.App) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		b.Logger.Info("listening", zap.String("addr", b.addr))
		errCh <- app.Listen(b.addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	b.Logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Close flushes the logger.
func (b *Base) Close() {
	_ = b.Logger.Sync()
}
