package bootstrap

import (
	"context"
	"log"
	"time"

	"donation_platform/internal/usecase"
)

// RunReconcileLoop drains the reconciliation queue every interval until ctx is done.
// A non-positive interval disables the loop.
func RunReconcileLoop(ctx context.Context, uc usecase.IReconciliationUseCase, interval time.Duration, batch int) {
	if interval <= 0 {
		log.Printf("[reconcile][loop] disabled")
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("[reconcile][loop] started interval=%s batch=%d", interval, batch)
	for {
		select {
		case <-ctx.Done():
			log.Printf("[reconcile][loop] stopped")
			return
		case <-ticker.C:
			report, err := uc.Drain(ctx, batch)
			if err != nil {
				log.Printf("[reconcile][loop] drain failed err=%v", err)
				continue
			}
			if report.Processed > 0 {
				log.Printf("[reconcile][loop] drained processed=%d resolved=%d failed=%d manual_review=%d", report.Processed, report.Resolved, report.Failed, report.ManualReview)
			}
		}
	}
}
