package lexer

import "time"

// TokenTelemetry holds per-kind telemetry
type TokenTelemetry struct {
	Kind      TokenKind
	Count     int
	TotalTime time.Duration
	AvgTime   time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// GetTokenTelemetry returns a copy of the per-kind telemetry, or nil when
// telemetry is off
func (t *Tokenizer) GetTokenTelemetry() map[TokenKind]*TokenTelemetry {
	if t.telemetryMode == TelemetryOff || t.tokenTelemetry == nil {
		return nil
	}

	result := make(map[TokenKind]*TokenTelemetry, len(t.tokenTelemetry))
	for k, v := range t.tokenTelemetry {
		telemetryCopy := *v
		result[k] = &telemetryCopy
	}
	return result
}

// recordTokenTelemetry records one emitted token
func (t *Tokenizer) recordTokenTelemetry(kind TokenKind, elapsed time.Duration) {
	telemetry, exists := t.tokenTelemetry[kind]
	if !exists {
		telemetry = &TokenTelemetry{
			Kind:    kind,
			MinTime: elapsed,
			MaxTime: elapsed,
		}
		t.tokenTelemetry[kind] = telemetry
	}

	telemetry.Count++

	if t.telemetryMode >= TelemetryTiming {
		telemetry.TotalTime += elapsed
		telemetry.AvgTime = telemetry.TotalTime / time.Duration(telemetry.Count)
		if elapsed < telemetry.MinTime {
			telemetry.MinTime = elapsed
		}
		if elapsed > telemetry.MaxTime {
			telemetry.MaxTime = elapsed
		}
	}
}
