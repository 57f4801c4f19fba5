package repository

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/skinoai/internal/logging"
)

// PredictionLog represents a persisted prediction request.
type PredictionLog struct {
	ID         uint      `gorm:"primaryKey"`
	RequestID  string    `gorm:"column:request_id;uniqueIndex;size:64"`
	Class      string    `gorm:"column:class;size:128"`
	Confidence float64   `gorm:"column:confidence"`
	Success    bool      `gorm:"column:success"`
	Details    string    `gorm:"column:details;type:text"`
	SHA1Hash   string    `gorm:"column:sha1_hash;index;size:40"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

// TableName overrides the default table name.
func (PredictionLog) TableName() string {
	return "prediction_logs"
}

// MetricsAggregation holds raw aggregates computed by the database.
type MetricsAggregation struct {
	TotalCount        int64
	SuccessCount      int64
	AverageConfidence float64
}

// PredictionRepository provides persistence APIs for prediction logs.
type PredictionRepository struct {
	db             *gorm.DB
	logger         *zap.Logger
	retryAttempts  int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// NewPredictionRepository creates a new repository instance.
func NewPredictionRepository(db *gorm.DB, logger *zap.Logger) *PredictionRepository {
	return &PredictionRepository{
		db:             db,
		logger:         logger.Named("prediction_repository"),
		retryAttempts:  3,
		initialBackoff: 50 * time.Millisecond,
		maxBackoff:     time.Second,
	}
}

// AutoMigrate ensures the schema is available.
func (r *PredictionRepository) AutoMigrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&PredictionLog{})
}

// SaveLog persists a prediction log entry.
func (r *PredictionRepository) SaveLog(ctx context.Context, log *PredictionLog) error {
	return r.executeWithRetry(ctx, "repository.save_log", log.RequestID, func() error {
		return r.db.WithContext(ctx).Create(log).Error
	})
}

// FindByRequestID retrieves a prediction log by its request identifier.
func (r *PredictionRepository) FindByRequestID(ctx context.Context, requestID string) (*PredictionLog, error) {
	var log PredictionLog
	err := r.executeWithRetry(ctx, "repository.find_by_request_id", requestID, func() error {
		return r.db.WithContext(ctx).First(&log, "request_id = ?", requestID).Error
	})
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// AggregateMetrics computes request totals and the average confidence.
func (r *PredictionRepository) AggregateMetrics(ctx context.Context) (*MetricsAggregation, error) {
	var agg MetricsAggregation
	err := r.executeWithRetry(ctx, "repository.aggregate_metrics", "", func() error {
		row := r.db.WithContext(ctx).
			Model(&PredictionLog{}).
			Select("COUNT(*), COALESCE(SUM(CASE WHEN success THEN 1 ELSE 0 END), 0), COALESCE(AVG(confidence), 0)").
			Row()
		return row.Scan(&agg.TotalCount, &agg.SuccessCount, &agg.AverageConfidence)
	})
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

func (r *PredictionRepository) executeWithRetry(ctx context.Context, operation, requestID string, fn func() error) error {
	if r.retryAttempts <= 1 {
		return logging.NewOperationError(operation, requestID, fn())
	}

	backoff := r.initialBackoff
	opLogger := logging.WithOperation(r.logger, operation, requestID)
	var err error
	for attempt := 0; attempt < r.retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return logging.NewOperationError(operation, requestID, ctx.Err())
			case <-time.After(backoff):
			}
			if next := backoff * 2; next <= r.maxBackoff {
				backoff = next
			}
		}

		err = fn()
		if err == nil {
			if attempt > 0 {
				opLogger.Info("database operation succeeded after retry", zap.Int("attempt", attempt+1))
			}
			return nil
		}

		if !isTransientError(err) || attempt == r.retryAttempts-1 {
			opLogger.Error("database operation failed", zap.Error(err), zap.Int("attempt", attempt+1))
			return logging.NewOperationError(operation, requestID, err)
		}

		opLogger.Warn("transient database error", zap.Error(err), zap.Int("attempt", attempt+1))
	}
	return logging.NewOperationError(operation, requestID, err)
}

func isTransientError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var temporary interface{ Temporary() bool }
	if errors.As(err, &temporary) && temporary.Temporary() {
		return true
	}

	return false
}
