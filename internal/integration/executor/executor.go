// Package executor runs fallible record-system operations with bounded
// retries and exponential backoff, wrapping every outcome in a result
// envelope and auditing each attempt.
package executor

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/WebQx/webqx-sub005/internal/core/clock"
	"github.com/WebQx/webqx-sub005/internal/core/domain"
	"github.com/WebQx/webqx-sub005/internal/integration/audit"
	"github.com/WebQx/webqx-sub005/internal/integration/metrics"
)

// Config defines retry behavior.
type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	LogRequests bool
}

// DefaultConfig provides sensible defaults.
var DefaultConfig = Config{
	MaxAttempts: 3,
	BaseDelay:   1 * time.Second,
	LogRequests: true,
}

// Executor coordinates retries for outbound operations. Concurrent
// Execute calls proceed independently; only audit appends serialize.
type Executor struct {
	cfg   Config
	log   *audit.Log
	clock clock.Clock
	l     *slog.Logger
}

// New validates the configuration and builds an executor. A nil logger
// falls back to slog.Default().
func New(cfg Config, auditLog *audit.Log, clk clock.Clock, logger *slog.Logger) (*Executor, error) {
	if cfg.MaxAttempts < 1 {
		return nil, fmt.Errorf("executor: max attempts must be >= 1, got %d", cfg.MaxAttempts)
	}
	if cfg.BaseDelay <= 0 {
		return nil, fmt.Errorf("executor: base delay must be positive, got %v", cfg.BaseDelay)
	}
	if auditLog == nil {
		auditLog = audit.NewLog()
	}
	if clk == nil {
		clk = clock.Real{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{cfg: cfg, log: auditLog, clock: clk, l: logger}, nil
}

// AuditLog exposes the executor-owned audit log for read access.
func (ex *Executor) AuditLog() *audit.Log { return ex.log }

// Execute runs work up to MaxAttempts times with exponential backoff
// (BaseDelay * 2^(attempt-1) between attempts). Expected failures never
// escape as Go errors; the caller branches on the returned envelope.
// ctx preempts only the backoff wait; an in-flight attempt always runs
// to completion.
func Execute[T any](
	ctx context.Context,
	ex *Executor,
	op domain.Operation,
	actorID string,
	work func(ctx context.Context) (T, error),
) domain.Result[T] {
	start := ex.clock.Now()

	var lastErr *domain.ErrorRecord
	attemptsMade := 0
	for attempt := 1; attempt <= ex.cfg.MaxAttempts; attempt++ {
		attemptsMade = attempt
		metrics.AttemptsTotal.WithLabelValues(op.Name).Inc()

		attemptStart := ex.clock.Now()
		value, err := work(ctx)
		attemptMs := ex.clock.Now().Sub(attemptStart).Milliseconds()

		if err == nil {
			elapsed := ex.clock.Now().Sub(start).Milliseconds()
			ex.log.Append(audit.Entry{
				Timestamp:  ex.clock.Now(),
				Operation:  op.Name,
				Success:    true,
				DurationMs: attemptMs,
				ActorID:    actorID,
				SubjectID:  op.Subject,
				Metadata: map[string]any{
					"attempt": attempt,
					"target":  op.Target,
					"verb":    string(op.Verb),
				},
			})
			metrics.OperationsTotal.WithLabelValues(op.Name, "success").Inc()
			metrics.OperationDuration.WithLabelValues(op.Name).Observe(float64(elapsed) / 1000)
			return domain.Success(value, attempt, elapsed)
		}

		lastErr = domain.NewErrorRecord(
			domain.CodeRequestFailed,
			fmt.Sprintf("%s failed: %v", op.Name, err),
			op.Name,
			map[string]any{"attempt": attempt, "max_attempts": ex.cfg.MaxAttempts},
		)
		ex.log.Append(audit.Entry{
			Timestamp:  ex.clock.Now(),
			Operation:  op.Name,
			Success:    false,
			DurationMs: attemptMs,
			ActorID:    actorID,
			SubjectID:  op.Subject,
			Error:      lastErr,
			Metadata: map[string]any{
				"attempt": attempt,
				"target":  op.Target,
				"verb":    string(op.Verb),
			},
		})

		if attempt == ex.cfg.MaxAttempts {
			break
		}

		delay := backoffDelay(ex.cfg.BaseDelay, attempt)
		if ex.cfg.LogRequests {
			ex.l.Debug("retrying operation",
				"operation", op.Name, "attempt", attempt, "delay", delay, "error", err)
		}
		if serr := ex.clock.Sleep(ctx, delay); serr != nil {
			// Shutdown during backoff: report the last attempt's error.
			break
		}
	}

	elapsed := ex.clock.Now().Sub(start).Milliseconds()
	metrics.OperationsTotal.WithLabelValues(op.Name, "failure").Inc()
	metrics.OperationDuration.WithLabelValues(op.Name).Observe(float64(elapsed) / 1000)
	if ex.cfg.LogRequests {
		ex.l.Warn("operation failed after retries",
			"operation", op.Name, "max_attempts", ex.cfg.MaxAttempts)
	}
	return domain.Failure[T](lastErr, attemptsMade, elapsed, true)
}

// PreflightFailure builds the envelope for a caller-side validation
// failure that short-circuits before any attempt is made: zero attempts,
// zero elapsed time, attempts not exhausted.
func PreflightFailure[T any](operation, code, message string) domain.Result[T] {
	rec := domain.NewErrorRecord(code, message, operation, nil)
	return domain.Failure[T](rec, 0, 0, false)
}

// backoffDelay returns BaseDelay * 2^(attempt-1); attempt is 1-indexed
// so the first retry waits exactly BaseDelay.
func backoffDelay(base time.Duration, attempt int) time.Duration {
	return time.Duration(float64(base) * math.Pow(2, float64(attempt-1)))
}
