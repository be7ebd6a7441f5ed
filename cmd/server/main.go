package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"citizengw/internal/audit"
	auditkafka "citizengw/internal/audit/kafka"
	"citizengw/internal/citizendata"
	"citizengw/internal/directory"
	"citizengw/internal/operatortoken"
	"citizengw/internal/platform/config"
	"citizengw/internal/platform/httpserver"
	"citizengw/internal/platform/logger"
	"citizengw/internal/platform/postgres"
	redisplatform "citizengw/internal/platform/redis"
	"citizengw/internal/resolver"
	"citizengw/internal/revocation"
	"citizengw/internal/roles"
	"citizengw/internal/supporttoken"
	httptransport "citizengw/internal/transport/http"
)

// main wires the gateway's dependencies and keeps the server lifecycle
// small. Business logic lives in the internal service packages.
func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	verifier, err := supporttoken.NewVerifier(cfg.SupportTokenPublicKey)
	if err != nil {
		log.Error("invalid support token public key", "error", err)
		os.Exit(1)
	}

	redisClient, err := redisplatform.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	db, err := postgres.Open(cfg.Postgres)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	revocations := revocation.NewRedisStore(redisClient.Client)
	roleCache := roles.NewRedisCache(redisClient.Client, cfg.RoleCacheTTL)
	directoryClient := directory.NewGraphClient(directory.Config{
		ClientID:     cfg.Directory.ClientID,
		ClientSecret: cfg.Directory.ClientSecret,
		TenantID:     cfg.Directory.TenantID,
		BaseURL:      cfg.Directory.BaseURL,
		Timeout:      cfg.Directory.Timeout,
	})
	roleService := roles.NewService(directoryClient, roleCache, log)

	citizenResolver := resolver.New(verifier, revocations, roleService, cfg.AdminGroup)

	sink := audit.NewPostgresSink(db, cfg.Audit.TableName)
	var auditorOpts []audit.AuditorOption
	if len(cfg.Audit.KafkaBrokers) > 0 {
		mirror, err := auditkafka.NewPublisher(context.Background(),
			cfg.Audit.KafkaBrokers, cfg.Audit.KafkaTopic, log)
		if err != nil {
			log.Error("kafka mirror connection failed", "error", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mirror.Close(ctx); err != nil {
				log.Warn("kafka mirror close failed", "error", err)
			}
		}()
		auditorOpts = append(auditorOpts, audit.WithMirror(mirror))
	}
	auditor := audit.NewAuditor(sink, log, auditorOpts...)

	dataStore := citizendata.NewPostgresStore(db)
	revoker := tokenRevoker{Verifier: verifier, Store: revocations}

	handler := httptransport.NewHandler(citizenResolver, dataStore, auditor, revoker, log)
	parser := operatortoken.NewParser(cfg.OperatorTokenSigningKey)
	router := httptransport.NewRouter(handler, parser, log,
		httptransport.HealthCheck{Name: "redis", Check: redisClient.Health},
		httptransport.HealthCheck{Name: "postgres", Check: db.PingContext},
	)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting citizengw", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// tokenRevoker joins the verifier and the revocation store into the single
// dependency the blacklist handler needs.
type tokenRevoker struct {
	*supporttoken.Verifier
	revocation.Store
}
