package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/api"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/api/handler"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/service"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/infrastructure/config"
	mongodb "github.com/aaryankakkar3/DevConnect-sub000/internal/infrastructure/db/mongo"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/infrastructure/db/postgres"
	redisdb "github.com/aaryankakkar3/DevConnect-sub000/internal/infrastructure/db/redis"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/infrastructure/identity"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/infrastructure/payment"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/infrastructure/queue"
	"github.com/aaryankakkar3/DevConnect-sub000/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}

func run() error {
	cfg := config.Load()

	logg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})
	logg.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("starting devconnect api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage connections ---
	db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		return fmt.Errorf("postgres schema: %w", err)
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer rdb.Close()

	mongoClient, mdb, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return fmt.Errorf("mongo: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(db)
	projectRepo := postgres.NewProjectRepository(db)
	bidRepo := postgres.NewBidRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	ledgerStore := postgres.NewLedgerStore(db)
	snapshotCache := redisdb.NewSnapshotCache(rdb)
	paymentDedup := redisdb.NewPaymentDedup(rdb)

	conversationRepo := mongodb.NewConversationRepository(mdb)
	if err := conversationRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("mongo indexes: %w", err)
	}

	// --- External clients ---
	sessionValidator := identity.NewClient(identity.Config{
		Issuer:        cfg.Identity.Issuer,
		JWTSecret:     cfg.Identity.JWTSecret,
		IntrospectURL: cfg.Identity.IntrospectURL,
		APIKey:        cfg.Identity.APIKey,
	})
	gateway := payment.NewClient(payment.Config{
		KeyID:     cfg.Payment.KeyID,
		KeySecret: cfg.Payment.KeySecret,
		BaseURL:   cfg.Payment.BaseURL,
	})
	verifier := payment.NewVerifier(cfg.Payment.KeySecret)

	// --- Services ---
	identityService := service.NewIdentityService(sessionValidator, userRepo, snapshotCache, logg)
	ledgerService := service.NewLedgerService(ledgerStore, snapshotCache, logg)
	projectService := service.NewProjectService(projectRepo, ledgerService, cfg.Tokens.ProjectCost, logg)
	bidService := service.NewBidService(bidRepo, projectRepo, ledgerService, cfg.Tokens.BidCost, logg)
	paymentService := service.NewPaymentService(orderRepo, ledgerService, gateway, verifier, paymentDedup, logg)
	verificationService := service.NewVerificationService(userRepo, snapshotCache, logg)
	profileService := service.NewProfileService(userRepo, identityService, snapshotCache, logg)
	conversationService := service.NewConversationService(conversationRepo, projectRepo, logg)

	dispatcher := queue.NewDispatcher(0, paymentService, logg)
	dispatcher.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(identityService, api.Handlers{
		Auth:         handler.NewAuthHandler(identityService),
		Project:      handler.NewProjectHandler(projectService),
		Bid:          handler.NewBidHandler(bidService),
		Token:        handler.NewTokenHandler(paymentService),
		Verification: handler.NewVerificationHandler(verificationService),
		Profile:      handler.NewProfileHandler(profileService),
		Conversation: handler.NewConversationHandler(conversationService),
		Webhook:      handler.NewWebhookHandler(cfg.Payment.WebhookSecret, dispatcher, logg),
		Health:       handler.NewHealthHandler(),
		HealthDeps:   handler.NewHealthDependenciesHandler(db, rdb, mdb),
	}, logg)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logg.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logg.Info().Msg("stopped cleanly")
	return nil
}
