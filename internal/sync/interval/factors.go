package interval

import (
	"fmt"

	"github.com/WebQx/webqx-sub005/internal/core/domain"
)

// loadFactor maps system load to an interval multiplier.
//
// Piecewise linear:
//   - load <= 0.5: 1.0
//   - 0.5 < load <= 0.8: interpolate 1.0 -> 1.5
//   - load > 0.8: interpolate 1.5 -> 2.0 (load 1.0 gives exactly 2.0)
//
// Out-of-range inputs are passed through the same formula unvalidated.
func loadFactor(load float64) float64 {
	switch {
	case load <= 0.5:
		return 1.0
	case load <= 0.8:
		return 1.0 + (load-0.5)*(0.5/0.3)
	default:
		return 1.5 + (load-0.8)*2.5
	}
}

// priorityFactor maps subject priority to an interval multiplier.
// High-priority subjects sync faster.
func priorityFactor(p domain.Priority) float64 {
	switch p {
	case domain.PriorityHigh:
		return 0.5
	case domain.PriorityMedium:
		return 0.8
	case domain.PriorityLow:
		return 1.2
	default:
		return 1.0
	}
}

type customFactor struct {
	name     string
	describe string
	value    float64
}

// customFactors derives multipliers from free-form context parameters.
// Only factors that actually alter the interval are returned; a no-op
// urgency or dataSize is omitted rather than recorded at 1.0.
func customFactors(params map[string]any) []customFactor {
	if len(params) == 0 {
		return nil
	}

	var out []customFactor

	if u, ok := params["urgency"].(string); ok {
		var v float64
		switch u {
		case "emergency":
			v = 0.2
		case "urgent":
			v = 0.5
		case "routine":
			v = 1.5
		}
		if v != 0 {
			out = append(out, customFactor{
				name:     "urgency",
				describe: fmt.Sprintf("%s urgency", u),
				value:    v,
			})
		}
	}

	if mb, ok := numeric(params["dataSize"]); ok {
		// Two independent threshold checks over the same factor: a
		// payload over 50MB overwrites the over-10MB multiplier.
		var v float64
		if mb > 10 {
			v = 1.5
		}
		if mb > 50 {
			v = 2.0
		}
		if v != 0 {
			out = append(out, customFactor{
				name:     "dataSize",
				describe: fmt.Sprintf("data size %.0fMB", mb),
				value:    v,
			})
		}
	}

	return out
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
