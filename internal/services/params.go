package services

import (
	"errors"
	"sync"

	"github.com/denmor86/cardcredit/internal/config"
)

var ErrInvalidParams = errors.New("invalid risk parameters")

// Params - параметры риск-политики, изменяемые на лету через
// административный API. Чтения идут с каждого запроса авторизации.
type Params struct {
	mu        sync.RWMutex
	ltvBps    int64
	maxAmount int64
	paused    bool
}

// Создание сервиса
func NewParams(cfg config.RiskConfig) *Params {
	return &Params{ltvBps: cfg.LTVBps, maxAmount: cfg.MaxAmount}
}

// LTVBps - текущая доля стоимости обеспечения в базисных пунктах
func (p *Params) LTVBps() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ltvBps
}

// MaxAmount - лимит одной авторизации, 0 отключает проверку
func (p *Params) MaxAmount() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.maxAmount
}

// Paused - остановлены ли авторизации
func (p *Params) Paused() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.paused
}

// SetParams - обновление LTV и лимита суммы с проверкой границ
func (p *Params) SetParams(ltvBps int64, maxAmount int64) error {
	if ltvBps <= 0 || ltvBps > BpsPrecision || maxAmount < 0 {
		return ErrInvalidParams
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ltvBps = ltvBps
	p.maxAmount = maxAmount
	return nil
}

// SetPaused - остановка/возобновление авторизаций
func (p *Params) SetPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = paused
}
