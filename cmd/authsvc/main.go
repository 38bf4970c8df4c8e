package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	httptransport "github.com/echonet/echonet/internal/api/http"
	"github.com/echonet/echonet/internal/api/http/handlers"
	"github.com/echonet/echonet/internal/auth"
	"github.com/echonet/echonet/internal/bootstrap"
	"github.com/echonet/echonet/internal/events"
	"github.com/echonet/echonet/internal/repository"
	"github.com/echonet/echonet/internal/service"
	"github.com/echonet/echonet/internal/worker"
)

const serviceName = "authsvc"

func main() {
	opts, err := bootstrap.ParseFlags(serviceName, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	base, err := bootstrap.New(serviceName, opts)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer base.Close()
	logger := base.Logger

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := base.Postgres(ctx)
	if err != nil {
		logger.Fatal("failed to prepare postgres", zap.Error(err))
	}
	defer pg.Close()

	issuer, err := auth.NewIssuer(base.Key, base.Config.Auth.TokenTTL())
	if err != nil {
		logger.Fatal("failed to build token issuer", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartActivityWorker(service.NewActivityService(dispatcher, logger, base.Config.Activity))

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:   repository.NewUserRepository(pg.PoolHandle()),
		Issuer:     issuer,
		Hasher:     auth.NewPasswordHasher(base.Config.Auth.BcryptCost),
		Dispatcher: dispatcher,
	})

	app := base.App()
	httptransport.RegisterHealthRoutes(app, handlers.NewHealthHandler(serviceName, base.Config.App.Version,
		map[string]handlers.Pinger{"postgres": pg}, base.Metrics))
	httptransport.RegisterAuthRoutes(app, handlers.NewAuthHandler(authService))

	if err := base.Serve(ctx, app); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
