package worker

import (
	"context"
	"sync"
	"time"

	"github.com/denmor86/cardcredit/internal/config"
	"github.com/denmor86/cardcredit/internal/logger"
	"github.com/denmor86/cardcredit/internal/services"
)

// SettlementWorker - фоновый воркер сверки: обрабатывает очередь
// расчётов и снимает резервы с истёкшим окном удержания.
// Работает вне бюджета задержки авторизации.
type SettlementWorker struct {
	Settlement   services.SettlementService
	Ledger       services.LedgerService
	WaitGroup    sync.WaitGroup
	QuitChan     chan struct{}
	BatchSize    int
	PollInterval time.Duration
}

// NewSettlementWorker - конструктор воркера сверки расчётов
func NewSettlementWorker(settlement services.SettlementService, ledger services.LedgerService, cfg config.HoldConfig) *SettlementWorker {
	return &SettlementWorker{
		Settlement:   settlement,
		Ledger:       ledger,
		QuitChan:     make(chan struct{}),
		BatchSize:    cfg.BatchSize,
		PollInterval: cfg.PollInterval,
	}
}

// Start - запускает воркер в фоне
func (w *SettlementWorker) Start(ctx context.Context) {
	w.WaitGroup.Add(1)
	go w.Run(ctx)
}

// Stop - корректно останавливает воркер
func (w *SettlementWorker) Stop() {
	close(w.QuitChan)
	w.WaitGroup.Wait()
}

// Run - основная рабочая логика
func (w *SettlementWorker) Run(ctx context.Context) {
	defer w.WaitGroup.Done()

	ticker := time.NewTicker(w.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.QuitChan:
			logger.Info("SettlementWorker signal stop")
			return
		case <-ticker.C:
			w.ProcessSettlements(ctx)
			w.ExpireHolds(ctx)
		}
	}
}

// ProcessSettlements - обработка пачки событий расчёта
func (w *SettlementWorker) ProcessSettlements(ctx context.Context) {
	processed, err := w.Settlement.ProcessBatch(ctx, w.BatchSize)
	if err != nil {
		logger.Error("error get settlements for processing", err)
		return
	}
	if processed > 0 {
		logger.Info("Settlements processed", "count", processed)
	}
}

// ExpireHolds - снятие резервов с истёкшим сроком удержания
func (w *SettlementWorker) ExpireHolds(ctx context.Context) {
	expired, err := w.Ledger.ExpireHolds(ctx, time.Now())
	if err != nil {
		logger.Error("error expire holds", err)
		return
	}
	if expired > 0 {
		logger.Info("Holds expired", "count", expired)
	}
}
