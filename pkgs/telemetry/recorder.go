// Package telemetry exports tokenizer activity as Prometheus metrics.
package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/aledsdavies/toto/pkgs/lexer"
)

// Recorder counts tokens and diagnostics per kind. It implements
// lexer.Observer and is safe for concurrent use, so one Recorder can watch
// any number of tokenizers.
type Recorder struct {
	tokens      *prometheus.CounterVec
	diagnostics *prometheus.CounterVec
	scanTime    prometheus.Histogram
}

var _ lexer.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder and registers its collectors with reg
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		tokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "toto_tokens_total",
				Help: "Tokens produced, by token kind",
			}, []string{"kind"},
		),
		diagnostics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "toto_diagnostics_total",
				Help: "Lexical errors reported, by error kind",
			}, []string{"kind"},
		),
		scanTime: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "toto_token_scan_seconds",
				Help:    "Time spent scanning a single token",
				Buckets: prometheus.ExponentialBuckets(100e-9, 4, 8),
			},
		),
	}

	for _, c := range []prometheus.Collector{r.tokens, r.diagnostics, r.scanTime} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering tokenizer metrics: %w", err)
		}
	}
	return r, nil
}

func (r *Recorder) ObserveToken(kind lexer.TokenKind, elapsed time.Duration) {
	r.tokens.WithLabelValues(kind.String()).Inc()
	r.scanTime.Observe(elapsed.Seconds())
}

func (r *Recorder) ObserveDiagnostic(kind lexer.ErrorKind) {
	r.diagnostics.WithLabelValues(kind.String()).Inc()
}

// WriteText writes everything g gathers in the Prometheus text format
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
