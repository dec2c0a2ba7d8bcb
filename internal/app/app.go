package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/denmor86/cardcredit/internal/config"
	"github.com/denmor86/cardcredit/internal/logger"
	"github.com/denmor86/cardcredit/internal/network/router"
	"github.com/denmor86/cardcredit/internal/storage"
	"github.com/denmor86/cardcredit/internal/worker"
)

func Run(config config.Config) {

	db, err := storage.NewDatabase(config.Server.DatabaseDSN)
	if err != nil {
		logger.Panic("error create database", err.Error())
	}
	if err := db.Initialize(); err != nil {
		logger.Panic("error initialize database", err.Error())
	}
	defer db.Close()

	router := router.NewRouter(config, storage.NewStorage(db))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// восстановление активных резервов после рестарта
	if err := router.Ledger.Restore(ctx); err != nil {
		logger.Panic("error restore reservations", err.Error())
	}

	server := &http.Server{
		Addr:    config.Server.ListenAddr,
		Handler: router.HandleRouter(),
	}
	// Создание и запуск воркера сверки
	worker := worker.NewSettlementWorker(router.Settlement, router.Ledger, config.Hold)
	worker.Start(ctx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info(
			"Starting server config:", config.Server.ListenAddr,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("error listen server", err.Error())
		}
	}()

	<-stop
	logger.Info("Shutdown server")
	worker.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error shutdown server", err.Error())
	}
	logger.Info("Server stopped")
}
