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

const serviceName = "usersvc"

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

	gate, err := base.Gate(auth.PolicyNumericFirst)
	if err != nil {
		logger.Fatal("failed to build request gate", zap.Error(err))
	}

	pg, err := base.Postgres(ctx)
	if err != nil {
		logger.Fatal("failed to prepare postgres", zap.Error(err))
	}
	defer pg.Close()

	rdb := base.Redis(ctx)
	defer rdb.Close()

	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartActivityWorker(service.NewActivityService(dispatcher, logger, base.Config.Activity))

	userRepo := repository.NewUserRepository(pg.PoolHandle())
	friendService := service.NewFriendService(service.FriendDependencies{
		UserRepo:    userRepo,
		FriendStore: repository.NewFriendStore(rdb.Client, base.Config.Redis.FriendPrefix),
		Dispatcher:  dispatcher,
	})
	profileService := service.NewProfileService(userRepo)

	app := base.App()
	httptransport.RegisterHealthRoutes(app, handlers.NewHealthHandler(serviceName, base.Config.App.Version,
		map[string]handlers.Pinger{"postgres": pg, "redis": rdb}, base.Metrics))
	httptransport.RegisterUserRoutes(app, gate, handlers.NewUsersHandler(friendService, profileService))

	if err := base.Serve(ctx, app); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
