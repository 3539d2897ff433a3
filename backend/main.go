package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"pharmapos/m/internal/api"
	"pharmapos/m/internal/auth"
	"pharmapos/m/internal/cart"
	"pharmapos/m/internal/catalog"
	"pharmapos/m/internal/config"
	"pharmapos/m/internal/database"
	"pharmapos/m/internal/jobs"
	"pharmapos/m/internal/logger"
	"pharmapos/m/internal/migrations"
	"pharmapos/m/internal/pos"
	"pharmapos/m/internal/seed"
	"pharmapos/m/internal/store"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Env, cfg.LogLevel, cfg.LogFile)

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	st := store.New(db)
	cat := catalog.New(st)
	if cfg.SeedCSV != "" {
		if _, err := seed.LoadMedicinesFile(context.Background(), cat, cfg.SeedCSV); err != nil {
			log.Error().Err(err).Str("file", cfg.SeedCSV).Msg("unable to seed medicine catalog")
		}
	}

	scheduler, err := jobs.Start(cfg.LowStockSchedule, st)
	if err != nil {
		log.Fatal().Err(err).Msg("scheduler failed")
	}

	tokens := auth.NewTokens(cfg.Secret)
	handler := api.New(st, cat, pos.New(st, cart.NewRegistry(), cfg.TaxRate), auth.NewUsers(st, tokens), tokens)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("driver", cfg.DatabaseDriver).Msg("PharmaPOS server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	scheduler.Stop(ctx)
	log.Info().Msg("server stopped")
}
