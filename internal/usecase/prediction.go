package usecase

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/skinoai/internal/classifier"
	"github.com/example/skinoai/internal/conditions"
	"github.com/example/skinoai/internal/imaging"
	"github.com/example/skinoai/internal/logging"
	"github.com/example/skinoai/internal/repository"
)

// Error kinds surfaced to the HTTP layer. Everything else is internal.
var (
	ErrMalformedInput = errors.New("malformed input")
	ErrUpstream       = errors.New("classification service failed")
)

// PredictionRepository defines the persistence operations needed by the use case.
type PredictionRepository interface {
	SaveLog(ctx context.Context, log *repository.PredictionLog) error
	FindByRequestID(ctx context.Context, requestID string) (*repository.PredictionLog, error)
	AggregateMetrics(ctx context.Context) (*repository.MetricsAggregation, error)
}

// Limits bound what the service accepts before contacting the model.
type Limits struct {
	MaxImageBytes     int
	MaxImageDimension uint
}

// PredictionUseCase encapsulates business logic for the prediction flow.
type PredictionUseCase struct {
	repo           PredictionRepository
	cache          Cache
	model          classifier.Client
	logger         *zap.Logger
	limits         Limits
	retryAttempts  int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// Prediction is the outcome returned to the HTTP layer.
type Prediction struct {
	RequestID   string
	Class       string
	Confidence  float64
	Description string
	Message     string
}

type cachedPrediction struct {
	RequestID  string    `json:"request_id"`
	Class      string    `json:"class"`
	Confidence float64   `json:"confidence"`
	Success    bool      `json:"success"`
	Details    string    `json:"details"`
	Hash       string    `json:"sha1_hash"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewPredictionUseCase constructs a new use case instance.
func NewPredictionUseCase(repo PredictionRepository, cache Cache, model classifier.Client, logger *zap.Logger, limits Limits) *PredictionUseCase {
	return &PredictionUseCase{
		repo:           repo,
		cache:          cache,
		model:          model,
		logger:         logger.Named("prediction_usecase"),
		limits:         limits,
		retryAttempts:  3,
		initialBackoff: 50 * time.Millisecond,
		maxBackoff:     time.Second,
	}
}

// Predict decodes the base64 payload, delegates classification to the
// hosted model, and enriches the label with catalog advice. Persistence and
// caching of the outcome are best-effort: the classification itself is the
// product, so their failures are logged but never fail the request.
func (uc *PredictionUseCase) Predict(ctx context.Context, encoded string) (*Prediction, error) {
	requestID := uuid.NewString()
	opLogger := logging.WithOperation(uc.logger, "usecase.predict", requestID)

	raw, err := decodeImagePayload(encoded)
	if err != nil {
		return nil, err
	}
	if uc.limits.MaxImageBytes > 0 && len(raw) > uc.limits.MaxImageBytes {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", ErrMalformedInput, uc.limits.MaxImageBytes)
	}

	normalized, err := imaging.Normalize(raw, uc.limits.MaxImageDimension)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	result, err := uc.model.Classify(ctx, normalized)
	if err != nil {
		wrapped := logging.NewOperationError("usecase.classify", requestID, err)
		opLogger.Error("classification failed", zap.Error(wrapped))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	prediction := &Prediction{
		RequestID:  requestID,
		Class:      result.Class,
		Confidence: result.Confidence,
		Message:    "Prediction successful",
	}
	if description, ok := conditions.Describe(result.Class); ok {
		prediction.Description = description
	} else {
		opLogger.Warn("no catalog description for predicted class", zap.String("class", result.Class))
	}

	uc.recordOutcome(ctx, opLogger, requestID, raw, result)

	return prediction, nil
}

func (uc *PredictionUseCase) recordOutcome(ctx context.Context, opLogger *zap.Logger, requestID string, imageBytes []byte, result *classifier.Result) {
	hash := sha1.Sum(imageBytes)
	hashHex := hex.EncodeToString(hash[:])

	log := &repository.PredictionLog{
		RequestID:  requestID,
		Class:      result.Class,
		Confidence: result.Confidence,
		Success:    true,
		Details:    fmt.Sprintf("class:%s confidence:%f hash:%s", result.Class, result.Confidence, hashHex),
		SHA1Hash:   hashHex,
		CreatedAt:  time.Now().UTC(),
	}
	if err := uc.repo.SaveLog(ctx, log); err != nil {
		opLogger.Warn("failed to persist prediction log", zap.Error(err))
	}

	cached := cachedPrediction{
		RequestID:  requestID,
		Class:      log.Class,
		Confidence: log.Confidence,
		Success:    log.Success,
		Details:    log.Details,
		Hash:       log.SHA1Hash,
		CreatedAt:  log.CreatedAt,
	}
	serialized, err := json.Marshal(cached)
	if err != nil {
		opLogger.Warn("failed to serialize prediction for cache", zap.Error(err))
		return
	}
	cacheKey := fmt.Sprintf("prediction:%s", requestID)
	if err := uc.withRedisRetry(ctx, requestID, "cache.set.result", func() error {
		return uc.cache.Set(ctx, cacheKey, string(serialized), 5*time.Minute)
	}); err != nil {
		opLogger.Warn("failed to cache prediction", zap.Error(err))
	}
}

// GetResult retrieves a cached prediction outcome or loads from persistence.
func (uc *PredictionUseCase) GetResult(ctx context.Context, requestID string) (*repository.PredictionLog, error) {
	cacheKey := fmt.Sprintf("prediction:%s", requestID)
	if cached, err := uc.withRedisGet(ctx, requestID, "cache.get.result", cacheKey); err == nil {
		var payload cachedPrediction
		if err := json.Unmarshal([]byte(cached), &payload); err != nil {
			logging.WithOperation(uc.logger, "usecase.get_result", requestID).Warn("failed to decode cached result", zap.Error(err))
		} else {
			log := &repository.PredictionLog{
				RequestID:  requestID,
				Class:      payload.Class,
				Confidence: payload.Confidence,
				Success:    payload.Success,
				Details:    payload.Details,
				SHA1Hash:   payload.Hash,
				CreatedAt:  payload.CreatedAt,
			}
			if payload.RequestID != "" {
				log.RequestID = payload.RequestID
			}
			return log, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		logging.WithOperation(uc.logger, "usecase.get_result", requestID).Warn("failed to read cache", zap.Error(err))
	}

	return uc.repo.FindByRequestID(ctx, requestID)
}

func decodeImagePayload(encoded string) ([]byte, error) {
	trimmed := strings.TrimSpace(encoded)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: image data is required", ErrMalformedInput)
	}

	// Mobile clients sometimes send a data URL rather than the bare payload.
	if strings.HasPrefix(trimmed, "data:") {
		if idx := strings.Index(trimmed, ","); idx >= 0 {
			trimmed = trimmed[idx+1:]
		}
	}

	raw, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 image data", ErrMalformedInput)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: image data is empty", ErrMalformedInput)
	}
	return raw, nil
}

func (uc *PredictionUseCase) withRedisRetry(ctx context.Context, requestID, operation string, fn func() error) error {
	if uc.retryAttempts <= 1 {
		return logging.NewOperationError(operation, requestID, fn())
	}

	backoff := uc.initialBackoff
	opLogger := logging.WithOperation(uc.logger, operation, requestID)
	var err error
	for attempt := 0; attempt < uc.retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return logging.NewOperationError(operation, requestID, ctx.Err())
			case <-time.After(backoff):
			}
			if next := backoff * 2; next <= uc.maxBackoff {
				backoff = next
			}
		}

		err = fn()
		if err == nil {
			if attempt > 0 {
				opLogger.Info("redis operation succeeded after retry", zap.Int("attempt", attempt+1))
			}
			return nil
		}

		if !isTransientError(err) || attempt == uc.retryAttempts-1 {
			opLogger.Error("redis operation failed", zap.Error(err), zap.Int("attempt", attempt+1))
			return logging.NewOperationError(operation, requestID, err)
		}

		opLogger.Warn("transient redis error", zap.Error(err), zap.Int("attempt", attempt+1))
	}
	return logging.NewOperationError(operation, requestID, err)
}

func (uc *PredictionUseCase) withRedisGet(ctx context.Context, requestID, operation, cacheKey string) (string, error) {
	var result string
	err := uc.withRedisRetry(ctx, requestID, operation, func() error {
		value, err := uc.cache.Get(ctx, cacheKey)
		if err != nil {
			return err
		}
		result = value
		return nil
	})
	if err != nil {
		return "", err
	}
	return result, nil
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
