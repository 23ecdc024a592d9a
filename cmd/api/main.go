package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"pointage/domain/core"
	"pointage/internal/auth"
	"pointage/internal/config"
	"pointage/internal/container"
	"pointage/internal/logging"
	"pointage/models"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	log := logging.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load configuration: %v", err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error("server exited: %v", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := container.New(cfg, log)
	if err != nil {
		return err
	}
	if err := c.Init(ctx); err != nil {
		return err
	}
	defer c.Shutdown(context.Background())

	if err := bootstrapAdmin(ctx, c, log); err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("listening on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// bootstrapAdmin creates the initial admin account when the user table is
// empty and ADMIN_PASSWORD is set. Without it a fresh install has no way to
// log in.
func bootstrapAdmin(ctx context.Context, c *container.Container, log *logging.Logger) error {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		return nil
	}

	existing, err := c.UserRepo.GetByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now()
	admin := &models.User{
		ID:           core.NewUUID(),
		Username:     username,
		PasswordHash: hash,
		FullName:     "Administrator",
		Role:         models.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := c.UserRepo.Create(ctx, admin); err != nil {
		return err
	}

	log.Info("bootstrapped admin user %q", username)
	return nil
}
