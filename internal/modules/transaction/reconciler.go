package transaction

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const reconcileBatchSize = 50

// Reconciler periodically polls the provider for transactions stuck in
// PENDING, covering webhooks that were lost or never delivered.
type Reconciler struct {
	service  Service
	repo     Repository
	interval time.Duration
	maxAge   time.Duration
	logger   zerolog.Logger
}

func NewReconciler(service Service, repo Repository, interval, maxAge time.Duration, logger zerolog.Logger) *Reconciler {
	return &Reconciler{
		service:  service,
		repo:     repo,
		interval: interval,
		maxAge:   maxAge,
		logger:   logger.With().Str("component", "reconciler").Logger(),
	}
}

// Run blocks until ctx is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Reconciler) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-r.maxAge)
	pending, err := r.repo.ListPendingBefore(ctx, cutoff, reconcileBatchSize)
	if err != nil {
		r.logger.Error().Err(err).Msg("list pending transactions")
		return
	}
	for _, t := range pending {
		resolved, err := r.service.SyncStatus(ctx, t.MidtransOrderID)
		if err != nil {
			r.logger.Warn().Err(err).Str("order_id", t.MidtransOrderID).Msg("sync transaction status")
			continue
		}
		if resolved.Status != StatusPending {
			r.logger.Info().
				Str("order_id", t.MidtransOrderID).
				Str("status", string(resolved.Status)).
				Msg("reconciled stuck transaction")
		}
	}
}
