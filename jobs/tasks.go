package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/gstbill-erp/gstbill/internal/catalog"
	jobmetrics "github.com/gstbill-erp/gstbill/internal/jobs"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeLowStockScan recomputes the low-stock advisory list.
	TaskTypeLowStockScan = "stock:lowscan"
	// TaskTypeCatalogWarmup rebuilds the cached active-product listing.
	TaskTypeCatalogWarmup = "catalog:warmup"
)

// LowStockScanPayload carries the threshold below which a product is
// reported as low on stock.
type LowStockScanPayload struct {
	Threshold    float64   `json:"threshold"`
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewLowStockScanTask constructs an Asynq task for the low-stock scan.
func NewLowStockScanTask(threshold float64, at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(LowStockScanPayload{Threshold: threshold, ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeLowStockScan, body, asynq.Queue(QueueDefault)), nil
}

// NewCatalogWarmupTask constructs an Asynq task that refreshes the product
// list cache.
func NewCatalogWarmupTask() (*asynq.Task, error) {
	return asynq.NewTask(TaskTypeCatalogWarmup, nil, asynq.Queue(QueueDefault)), nil
}

// LowStockScanHandler returns the Asynq handler for TaskTypeLowStockScan.
func LowStockScanHandler(svc *catalog.Service, metrics *jobmetrics.Metrics, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		tracker := metrics.Track("low_stock_scan")
		var payload LowStockScanPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			_ = tracker.End(err)
			return asynq.SkipRetry
		}
		count, err := svc.ScanLowStock(ctx, payload.Threshold)
		if err != nil {
			return tracker.End(err)
		}
		logger.Info("low stock scan finished",
			slog.Float64("threshold", payload.Threshold),
			slog.Int("flagged", count))
		return tracker.End(nil)
	}
}

// CatalogWarmupHandler returns the Asynq handler for TaskTypeCatalogWarmup.
func CatalogWarmupHandler(svc *catalog.Service, metrics *jobmetrics.Metrics, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		tracker := metrics.Track("catalog_warmup")
		if err := svc.RefreshList(ctx); err != nil {
			return tracker.End(err)
		}
		logger.Info("catalog warmup finished")
		return tracker.End(nil)
	}
}
