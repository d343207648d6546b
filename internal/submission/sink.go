package submission

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kalgen-innolab/dnacare/internal/config"
	"github.com/kalgen-innolab/dnacare/internal/resilience"
)

// Sink names accepted in submissions.sinks.
const (
	SinkStore = "store"
	SinkCSV   = "csv"
	SinkJSON  = "json"
	SinkXLSX  = "xlsx"
	SinkKafka = "kafka"
)

// Sink writes a record somewhere durable.
type Sink interface {
	Name() string
	Write(ctx context.Context, r *Record) error
}

// Saver is the database side of the store sink.
type Saver interface {
	SaveSubmission(ctx context.Context, r *Record) error
}

type storeSink struct{ s Saver }

// StoreSink adapts a Saver.
func StoreSink(s Saver) Sink { return storeSink{s: s} }

func (storeSink) Name() string { return SinkStore }

func (s storeSink) Write(ctx context.Context, r *Record) error {
	return s.s.SaveSubmission(ctx, r)
}

// Build creates the configured sinks in order. saver backs the store sink
// and may be nil when it is not configured.
func Build(cfg *config.Config, saver Saver) ([]Sink, error) {
	sc := cfg.Submissions
	var sinks []Sink
	for _, name := range sc.Sinks {
		switch name {
		case SinkStore:
			if saver == nil {
				return nil, eris.New("submission: store sink configured without a store")
			}
			sinks = append(sinks, StoreSink(saver))
		case SinkCSV:
			sinks = append(sinks, NewCSVSink(sc.CSVPath))
		case SinkJSON:
			sinks = append(sinks, NewJSONDirSink(sc.JSONDir))
		case SinkXLSX:
			sinks = append(sinks, NewXLSXSink(sc.XLSXPath, sc.XLSXSheet))
		case SinkKafka:
			sinks = append(sinks, NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic))
		default:
			return nil, eris.Errorf("submission: unknown sink %q", name)
		}
	}
	return sinks, nil
}

type guardedSink struct {
	Sink
	breaker *resilience.Breaker

	written atomic.Int64
	failed  atomic.Int64
}

// SinkStats are cumulative write outcomes for one sink since the
// dispatcher was created.
type SinkStats struct {
	Name    string `json:"name"`
	Written int64  `json:"written"`
	Failed  int64  `json:"failed"`
	Breaker string `json:"breaker"`
}

// Dispatcher fans a record out to every sink. Each sink write is retried
// on transient errors and guarded by its own breaker.
type Dispatcher struct {
	sinks []*guardedSink
	retry resilience.RetryConfig
}

// NewDispatcher wraps sinks with the retry and breaker settings.
func NewDispatcher(rc config.RetryConfig, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{retry: resilience.FromConfig(rc)}
	for _, s := range sinks {
		d.sinks = append(d.sinks, &guardedSink{
			Sink:    s,
			breaker: resilience.NewBreaker(s.Name(), rc.BreakerThreshold, rc.BreakerCooldown()),
		})
	}
	return d
}

// Names lists the sinks in order.
func (d *Dispatcher) Names() []string {
	names := make([]string, len(d.sinks))
	for i, s := range d.sinks {
		names[i] = s.Name()
	}
	return names
}

// Write sends r to all sinks concurrently. Every sink is attempted; the
// failures are joined into one error.
func (d *Dispatcher) Write(ctx context.Context, r *Record) error {
	errs := make([]error, len(d.sinks))
	var g errgroup.Group
	for i, s := range d.sinks {
		g.Go(func() error {
			start := time.Now()
			cfg := d.retry
			cfg.OnRetry = resilience.RetryLogger(s.Name(), r.ID)
			err := s.breaker.Execute(ctx, func(ctx context.Context) error {
				return resilience.Do(ctx, cfg, func(ctx context.Context) error {
					return s.Write(ctx, r)
				})
			})
			if err != nil {
				s.failed.Add(1)
				errs[i] = eris.Wrapf(err, "submission: sink %s", s.Name())
				zap.L().Error("submission: sink write failed",
					zap.String("sink", s.Name()),
					zap.String("submission_id", r.ID),
					zap.Error(err),
				)
				return nil
			}
			s.written.Add(1)
			zap.L().Debug("submission: written",
				zap.String("sink", s.Name()),
				zap.String("submission_id", r.ID),
				zap.Duration("elapsed", time.Since(start)),
			)
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

// Stats reports per-sink outcomes in sink order.
func (d *Dispatcher) Stats() []SinkStats {
	out := make([]SinkStats, len(d.sinks))
	for i, s := range d.sinks {
		out[i] = SinkStats{
			Name:    s.Name(),
			Written: s.written.Load(),
			Failed:  s.failed.Load(),
			Breaker: s.breaker.State().String(),
		}
	}
	return out
}

// Close closes every sink that holds resources.
func (d *Dispatcher) Close() error {
	var errs []error
	for _, s := range d.sinks {
		if c, ok := s.Sink.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, eris.Wrapf(err, "submission: close %s", s.Name()))
			}
		}
	}
	return errors.Join(errs...)
}

// fileLocks serializes writers of the same path within the process.
var fileLocks sync.Map

func lockFor(path string) *sync.Mutex {
	m, _ := fileLocks.LoadOrStore(path, &sync.Mutex{})
	return m.(*sync.Mutex)
}
