package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"likebar/internal/config"
	"likebar/internal/database"
	"likebar/internal/handler"
	"likebar/internal/identity"
	"likebar/internal/queue"
	"likebar/internal/ratelimit"
	"likebar/internal/realtime"
	redisclient "likebar/internal/redis"
	"likebar/internal/repository"
	"likebar/internal/service"
	"likebar/internal/worker"
)

func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.EnsureSchema(ctx, db); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	pageRepo := repository.NewPageRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	tenantRepo := repository.NewTenantRepository(db)

	hasher := identity.NewHasher(cfg.IPSalt)

	limiter := ratelimit.NewLimiter(ratelimit.Limits{
		Like:    cfg.LikeRateLimit,
		Comment: cfg.CommentRateLimit,
		Window:  time.Duration(cfg.RateWindowSeconds) * time.Second,
	})
	janitorStop := make(chan struct{})
	defer close(janitorStop)
	limiter.StartJanitor(time.Minute, janitorStop)

	hub := realtime.NewHub()

	// With Redis the hub is fed through the stream relay so every instance
	// fans out to its own subscribers; without it events go straight to the
	// local hub.
	var publisher queue.Publisher = queue.NewLocalPublisher(hub)
	if cfg.RedisURL != "" {
		rdb, err := redisclient.NewClient(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to create redis client: %w", err)
		}
		defer rdb.Close()
		if err := rdb.Ping(ctx); err != nil {
			return fmt.Errorf("failed to reach redis: %w", err)
		}

		publisher = queue.NewRedisPublisher(rdb.Client)

		manager := worker.NewManager(
			queue.NewConsumer(rdb.Client),
			worker.NewHandler(hub),
			worker.DefaultManagerConfig(),
		)
		if err := manager.Start(ctx); err != nil {
			return fmt.Errorf("failed to start relay workers: %w", err)
		}
		defer manager.Stop()
	}

	pageService := service.NewPageService(pageRepo, commentRepo, tenantRepo)
	likeService := service.NewLikeService(pageRepo, hasher, limiter, publisher)
	commentService := service.NewCommentService(pageRepo, commentRepo, hasher, limiter, publisher)

	router := NewRouter(RouterConfig{
		PageHandler:     handler.NewPageHandler(pageService),
		LikeHandler:     handler.NewLikeHandler(likeService),
		CommentHandler:  handler.NewCommentHandler(commentService),
		TenantHandler:   handler.NewTenantHandler(tenantRepo),
		RealtimeHandler: realtime.NewHandler(hub),
	})

	server := &stdhttp.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on :%s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Printf("Received %v, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
