package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kzmarket/productseed/internal/config"
	"github.com/kzmarket/productseed/internal/product"
	"github.com/kzmarket/productseed/internal/store"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultProgressEvery is the number of writes between progress notices
const DefaultProgressEvery = 100

var ErrInvalidCount = errors.New("count must be a positive integer")

// Reporter receives the user-facing notices of a run
type Reporter interface {
	// Progress is called each time the number of writes reaches a multiple of the progress interval
	Progress(written int)
	// Done is called once after the last write of a successful run
	Done(total int)
}

// Result summarizes a run
type Result struct {
	Written int
	Elapsed time.Duration
}

// WriteError is returned when the store rejects a product. Every index
// before Index has been committed.
type WriteError struct {
	Index   int
	Barcode string
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write #%d (%s) failed: %v", e.Index, e.Barcode, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

type Options struct {
	ProgressEvery int
	RateLimit     float64 // writes per second, 0 = unlimited
}

// Seeder upserts generated products one at a time
type Seeder struct {
	store         store.Store
	generator     *product.Generator
	reporter      Reporter
	logger        *zap.Logger
	limiter       *rate.Limiter
	progressEvery int
	now           func() time.Time
}

func New(st store.Store, gen *product.Generator, reporter Reporter, logger *zap.Logger, opts Options) *Seeder {
	if reporter == nil {
		reporter = nopReporter{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = DefaultProgressEvery
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return &Seeder{
		store:         st,
		generator:     gen,
		reporter:      reporter,
		logger:        logger,
		limiter:       limiter,
		progressEvery: opts.ProgressEvery,
		now:           time.Now,
	}
}

// ProvideSeeder creates a seeder configured from the seed section of the config
func ProvideSeeder(st store.Store, gen *product.Generator, reporter Reporter, logger *zap.Logger, cfg *config.Config) *Seeder {
	return New(st, gen, reporter, logger, Options{
		ProgressEvery: cfg.Seed.ProgressEvery,
		RateLimit:     cfg.Seed.RateLimit,
	})
}

// Seed writes products 1..count in order, each write waiting for the
// previous one. The first failure stops the run and no summary is reported.
func (s *Seeder) Seed(ctx context.Context, count int) (Result, error) {
	if count <= 0 {
		return Result{}, fmt.Errorf("%w, got %d", ErrInvalidCount, count)
	}

	start := s.now()
	s.logger.Info("seeding products", zap.Int("count", count))

	for i := 1; i <= count; i++ {
		if err := ctx.Err(); err != nil {
			return s.result(i-1, start), err
		}
		if err := s.limiter.Wait(ctx); err != nil {
			return s.result(i-1, start), err
		}

		p := s.generator.Generate(i)
		if err := s.store.Upsert(ctx, p); err != nil {
			s.logger.Error("product write failed",
				zap.Int("index", i),
				zap.String("barcode", p.Barcode),
				zap.Error(err),
			)
			return s.result(i-1, start), &WriteError{Index: i, Barcode: p.Barcode, Err: err}
		}
		s.logger.Debug("product written", zap.String("barcode", p.Barcode))

		if i%s.progressEvery == 0 {
			s.reporter.Progress(i)
		}
	}

	res := s.result(count, start)
	s.logger.Info("seeding finished", zap.Int("written", res.Written), zap.Duration("elapsed", res.Elapsed))
	s.reporter.Done(count)
	return res, nil
}

func (s *Seeder) result(written int, start time.Time) Result {
	return Result{Written: written, Elapsed: s.now().Sub(start)}
}

type nopReporter struct{}

func (nopReporter) Progress(int) {}
func (nopReporter) Done(int)     {}
