package doorsim

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	doorstore "github.com/dalemusser/coophub/internal/app/store/doors"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/dalemusser/coophub/internal/domain/models"
	"go.uber.org/zap"
)

// Store is the door persistence the worker needs.
type Store interface {
	List(ctx context.Context) ([]models.DoorState, error)
	SaveTelemetry(ctx context.Context, prevStatus string, d models.DoorState) error
}

// Worker is a background loop that applies Step to every door each interval.
type Worker struct {
	store    Store
	log      *zap.Logger
	interval time.Duration
	cfg      Config
	rng      Rand

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewWorker creates a door simulation worker. A nil rng uses a time-seeded source.
func NewWorker(store Store, logger *zap.Logger, interval time.Duration, cfg Config, rng Rand) *Worker {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Worker{
		store:    store,
		log:      logger,
		interval: interval,
		cfg:      cfg,
		rng:      rng,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background simulation loop.
func (w *Worker) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("door simulation worker started",
		zap.Duration("interval", w.interval),
		zap.Float64("flip_chance", w.cfg.FlipChance),
		zap.Float64("max_drain", w.cfg.MaxDrain))
}

// Stop signals the worker to stop and waits for it to finish. It is safe to call twice.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("door simulation worker stopped")
	})
}

func (w *Worker) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			ctx, cancel := timeouts.WithTimeout(context.Background(), timeouts.Medium(), w.log, "door simulation tick")
			w.Tick(ctx)
			cancel()
		}
	}
}

// Tick advances every door by one step.
func (w *Worker) Tick(ctx context.Context) {
	doors, err := w.store.List(ctx)
	if err != nil {
		w.log.Error("door simulation: list doors failed", zap.Error(err))
		return
	}

	for _, d := range doors {
		next := Step(d, w.rng, w.cfg)
		if err := w.store.SaveTelemetry(ctx, d.Status, next); err != nil {
			if errors.Is(err, doorstore.ErrStatusChanged) {
				w.log.Debug("door changed during tick; skipped", zap.String("farm", d.Farm))
				continue
			}
			w.log.Error("door simulation: save failed", zap.String("farm", d.Farm), zap.Error(err))
			continue
		}
		if next.Status != d.Status {
			w.log.Debug("door flipped", zap.String("farm", d.Farm), zap.String("status", next.Status))
		}
		if next.BatteryLow() && !d.BatteryLow() {
			w.log.Warn("door battery low", zap.String("farm", d.Farm), zap.Float64("battery", next.Battery))
		}
	}
}
