// Package jobs runs periodic background tasks.
package jobs

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"pharmapos/m/domain"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// LowStockLister lists medicines at or below their minimum stock.
type LowStockLister interface {
	ListLowStock(ctx context.Context) ([]domain.Medicine, error)
}

// Scheduler owns the cron runner.
type Scheduler struct {
	cron *cron.Cron
}

// Start schedules the low-stock scan on spec and starts the runner.
func Start(spec string, st LowStockLister) (*Scheduler, error) {
	c := cron.New(cron.WithParser(cronParser), cron.WithChain(cron.Recover(cron.DefaultLogger)))
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := ScanLowStock(ctx, st); err != nil {
			log.Error().Err(err).Msg("low stock scan failed")
		}
	}); err != nil {
		return nil, errors.Wrapf(err, "schedule low stock scan %q", spec)
	}
	c.Start()
	return &Scheduler{cron: c}, nil
}

// Stop halts the runner and waits for a running job to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// ScanLowStock logs a warning for every low-stock medicine and returns them.
func ScanLowStock(ctx context.Context, st LowStockLister) ([]domain.Medicine, error) {
	low, err := st.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range low {
		log.Warn().Int64("medicine_id", m.ID).Str("name", m.Name).Str("strength", m.Strength).
			Int64("stock", m.Stock).Int64("min_stock", m.MinStock).Msg("low stock")
	}
	if len(low) > 0 {
		log.Info().Int("count", len(low)).Msg("low stock scan finished")
	}
	return low, nil
}
