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

const serviceName = "postsvc"

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

	gate, err := base.Gate(auth.PolicyEither)
	if err != nil {
		logger.Fatal("failed to build request gate", zap.Error(err))
	}

	pg, err := base.Postgres(ctx)
	if err != nil {
		logger.Fatal("failed to prepare postgres", zap.Error(err))
	}
	defer pg.Close()
	pool := pg.PoolHandle()

	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartActivityWorker(service.NewActivityService(dispatcher, logger, base.Config.Activity))

	postRepo := repository.NewPostRepository(pool)
	postService := service.NewPostService(postRepo)
	reactionService := service.NewLikeCommentService(service.LikeCommentDependencies{
		PostRepo:    postRepo,
		LikeRepo:    repository.NewLikeRepository(pool),
		CommentRepo: repository.NewCommentRepository(pool),
		Dispatcher:  dispatcher,
	})

	app := base.App()
	httptransport.RegisterHealthRoutes(app, handlers.NewHealthHandler(serviceName, base.Config.App.Version,
		map[string]handlers.Pinger{"postgres": pg}, base.Metrics))
	httptransport.RegisterPostRoutes(app, gate, handlers.NewPostsHandler(postService, reactionService))

	if err := base.Serve(ctx, app); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
