// Package interval computes adaptive resync intervals per data category
// by composing independent multiplicative factors, clamping the result
// to configured bounds, and keeping a bounded per-category decision
// history.
package interval

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/WebQx/webqx-sub005/internal/core/clock"
	"github.com/WebQx/webqx-sub005/internal/core/domain"
	"github.com/WebQx/webqx-sub005/internal/integration/metrics"
)

// historyCap bounds each category's decision history; the oldest entry
// is evicted first (FIFO).
const historyCap = 50

// allCategories is the registry key that acts as a registry-wide
// default before falling back to CriticalityDefault.
const allCategories = "all"

// Config holds calculator settings. Interval values are milliseconds.
// Base intervals should satisfy critical < default and
// critical < non_essential; this is an operator responsibility and is
// not enforced.
type Config struct {
	AdaptiveEnabled bool
	MinIntervalMs   int64
	MaxIntervalMs   int64
	BaseIntervals   map[domain.Criticality]int64
	Criticality     map[string]domain.Criticality // category -> level overrides
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		AdaptiveEnabled: true,
		MinIntervalMs:   30_000,     // 30s
		MaxIntervalMs:   86_400_000, // 24h
		BaseIntervals: map[domain.Criticality]int64{
			domain.CriticalityCritical:     300_000,    // 5m
			domain.CriticalityDefault:      3_600_000,  // 1h
			domain.CriticalityNonEssential: 86_400_000, // 24h
		},
	}
}

// SyncContext carries the situational inputs for one calculation. All
// fields except Category are optional; zero values mean "absent".
type SyncContext struct {
	Category       string
	SystemLoad     float64         // expected in [0,1], passed through unvalidated
	Priority       domain.Priority // "" = absent
	RecentFailures int
	Params         map[string]any // free-form hints, e.g. "urgency", "dataSize"
}

// Factors is the multiplicative breakdown of one decision. Unapplied
// factors stay at the neutral 1.0; custom factors appear only when they
// actually altered the interval.
type Factors struct {
	Base           float64            `json:"base"`
	SystemLoad     float64            `json:"system_load"`
	Priority       float64            `json:"priority"`
	FailureBackoff float64            `json:"failure_backoff"`
	Custom         map[string]float64 `json:"custom,omitempty"`
}

// Decision is the immutable output of one calculation.
type Decision struct {
	Category      string             `json:"category"`
	IntervalMs    int64              `json:"interval_ms"`
	Criticality   domain.Criticality `json:"criticality"`
	Factors       Factors            `json:"factors"`
	Justification string             `json:"justification"`
	ComputedAt    time.Time          `json:"computed_at"`
}

// Calculator owns the criticality registry, base intervals and decision
// history. All state is guarded by a single mutex; Calculate is pure
// computation plus one guarded history append.
type Calculator struct {
	mu          sync.RWMutex
	cfg         Config
	criticality map[string]domain.Criticality
	history     map[string][]Decision
	clock       clock.Clock
	l           *slog.Logger
}

// New validates the configuration and builds a calculator.
func New(cfg Config, clk clock.Clock, logger *slog.Logger) (*Calculator, error) {
	if cfg.MinIntervalMs <= 0 || cfg.MaxIntervalMs <= 0 {
		return nil, fmt.Errorf("interval: bounds must be positive, got min=%d max=%d",
			cfg.MinIntervalMs, cfg.MaxIntervalMs)
	}
	if cfg.MinIntervalMs > cfg.MaxIntervalMs {
		return nil, fmt.Errorf("interval: min bound %d exceeds max bound %d",
			cfg.MinIntervalMs, cfg.MaxIntervalMs)
	}
	if len(cfg.BaseIntervals) == 0 {
		cfg.BaseIntervals = DefaultConfig().BaseIntervals
	}
	if clk == nil {
		clk = clock.Real{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	crit := make(map[string]domain.Criticality, len(cfg.Criticality))
	for cat, lvl := range cfg.Criticality {
		crit[cat] = lvl
	}

	base := make(map[domain.Criticality]int64, len(cfg.BaseIntervals))
	for lvl, ms := range cfg.BaseIntervals {
		base[lvl] = ms
	}
	cfg.BaseIntervals = base

	return &Calculator{
		cfg:         cfg,
		criticality: crit,
		history:     make(map[string][]Decision),
		clock:       clk,
		l:           logger,
	}, nil
}

// Calculate resolves the category's criticality, composes the factor
// chain (load, priority, failure backoff, custom), clamps and rounds
// the result, and appends the decision to the category's history.
func (c *Calculator) Calculate(sc SyncContext) Decision {
	c.mu.Lock()
	defer c.mu.Unlock()

	crit := c.lookupCriticality(sc.Category)
	base := c.baseInterval(crit)

	interval := float64(base)
	f := Factors{Base: 1.0, SystemLoad: 1.0, Priority: 1.0, FailureBackoff: 1.0}
	parts := []string{fmt.Sprintf("base interval %dms for %s criticality", base, crit)}

	if c.cfg.AdaptiveEnabled {
		// Apply in fixed order so justifications are reproducible:
		// load -> priority -> failure backoff -> custom.
		f.SystemLoad = loadFactor(sc.SystemLoad)
		interval *= f.SystemLoad
		if f.SystemLoad != 1.0 {
			parts = append(parts, fmt.Sprintf("system load %.2f applied x%.2f", sc.SystemLoad, f.SystemLoad))
		}

		f.Priority = priorityFactor(sc.Priority)
		interval *= f.Priority
		if f.Priority != 1.0 {
			parts = append(parts, fmt.Sprintf("%s priority applied x%.2f", sc.Priority, f.Priority))
		}

		if sc.RecentFailures > 0 {
			f.FailureBackoff = math.Min(3.0, 1.0+float64(sc.RecentFailures)*0.5)
			interval *= f.FailureBackoff
			parts = append(parts, fmt.Sprintf("%d recent failures applied x%.2f", sc.RecentFailures, f.FailureBackoff))
		}

		for _, cf := range customFactors(sc.Params) {
			if f.Custom == nil {
				f.Custom = make(map[string]float64)
			}
			f.Custom[cf.name] = cf.value
			interval *= cf.value
			parts = append(parts, fmt.Sprintf("%s applied x%.2f", cf.describe, cf.value))
		}
	}

	clamped := interval
	if clamped < float64(c.cfg.MinIntervalMs) {
		clamped = float64(c.cfg.MinIntervalMs)
	}
	if clamped > float64(c.cfg.MaxIntervalMs) {
		clamped = float64(c.cfg.MaxIntervalMs)
	}

	d := Decision{
		Category:      sc.Category,
		IntervalMs:    int64(math.Round(clamped)),
		Criticality:   crit,
		Factors:       f,
		Justification: strings.Join(parts, "; "),
		ComputedAt:    c.clock.Now(),
	}

	h := append(c.history[sc.Category], d)
	if len(h) > historyCap {
		h = h[len(h)-historyCap:]
	}
	c.history[sc.Category] = h

	metrics.SyncInterval.WithLabelValues(sc.Category).Set(float64(d.IntervalMs))
	metrics.SyncCalculationsTotal.WithLabelValues(sc.Category, string(crit)).Inc()
	c.l.Debug("interval computed",
		"category", sc.Category, "criticality", crit, "interval_ms", d.IntervalMs)

	return d
}

// Criticality resolves a category through the fallback chain:
// category entry, then the "all" entry, then the default level.
func (c *Calculator) Criticality(category string) domain.Criticality {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lookupCriticality(category)
}

// SetCriticality overrides a category's criticality for subsequent
// calculations. Last write wins per key.
func (c *Calculator) SetCriticality(category string, level domain.Criticality) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.criticality[category] = level
}

// SetBaseInterval changes the base interval for a criticality level.
// Stored history is never rewritten.
func (c *Calculator) SetBaseInterval(level domain.Criticality, ms int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.BaseIntervals[level] = ms
}

// SetAdaptiveEnabled toggles factor application for subsequent
// calculations.
func (c *Calculator) SetAdaptiveEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.AdaptiveEnabled = enabled
}

// History returns an oldest-first copy of the most recent limit
// decisions for a category.
func (c *Calculator) History(category string, limit int) []Decision {
	c.mu.RLock()
	defer c.mu.RUnlock()

	h := c.history[category]
	if limit > 0 && len(h) > limit {
		h = h[len(h)-limit:]
	}
	out := make([]Decision, len(h))
	copy(out, h)
	return out
}

func (c *Calculator) lookupCriticality(category string) domain.Criticality {
	if lvl, ok := c.criticality[category]; ok {
		return lvl
	}
	if lvl, ok := c.criticality[allCategories]; ok {
		return lvl
	}
	return domain.CriticalityDefault
}

func (c *Calculator) baseInterval(crit domain.Criticality) int64 {
	if ms, ok := c.cfg.BaseIntervals[crit]; ok {
		return ms
	}
	return c.cfg.BaseIntervals[domain.CriticalityDefault]
}
