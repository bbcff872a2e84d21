package analysis

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"packetfields/internal/models"
	"packetfields/internal/tshark"
)

type options struct {
	Log *zap.SugaredLogger
}

func newOptions() *options {
	return &options{
		Log: zap.NewNop().Sugar(),
	}
}

// RunOption configures Run.
type RunOption func(*options)

// WithLog sets the logger used to report per-pass progress.
func WithLog(log *zap.SugaredLogger) RunOption {
	return func(o *options) {
		o.Log = log
	}
}

// Result is the outcome of one pass.
type Result struct {
	Pass Pass
	// Values are the cleaned, unique values in unspecified order.
	Values []string
}

// Extract collects the values of pass.Fields across every packet of doc.
//
// A packet without the layer, or a layer without one of the fields,
// contributes nothing for that field.
func Extract(doc tshark.Document, pass Pass) *models.ResultSet {
	set := models.NewResultSet()

	for _, pkt := range doc {
		layer, ok := pkt.Layer(pass.Layer)
		if !ok {
			continue
		}
		for _, key := range pass.Fields {
			if v, ok := layer.Field(key); ok {
				set.Insert(tshark.Render(v))
			}
		}
	}

	return set
}

// Run executes the passes concurrently over the shared document.
// Results are returned in the order of passes.
func Run(ctx context.Context, doc tshark.Document, passes []Pass, opts ...RunOption) ([]Result, error) {
	o := newOptions()
	for _, opt := range opts {
		opt(o)
	}
	log := o.Log

	results := make([]Result, len(passes))

	wg, ctx := errgroup.WithContext(ctx)
	for idx, pass := range passes {
		idx, pass := idx, pass
		wg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			startedAt := time.Now()
			set := Extract(doc, pass)
			values := set.Cleaned()
			results[idx] = Result{Pass: pass, Values: values}

			log.Debugw("pass finished",
				zap.String("pass", pass.Name),
				zap.String("layer", pass.Layer),
				zap.Int("raw", set.Len()),
				zap.Int("unique", len(values)),
				zap.Duration("took", time.Since(startedAt)),
			)
			if pass.Name == PassTCP || pass.Name == PassUDP {
				for _, port := range values {
					log.Debugf("%s port %s (%s)", pass.Name, port, ServiceName(port))
				}
			}
			return nil
		})
	}

	if err := wg.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
