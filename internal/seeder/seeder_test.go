package seeder

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kzmarket/productseed/internal/config"
	"github.com/kzmarket/productseed/internal/product"
	"github.com/kzmarket/productseed/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingReporter captures notices in the order they are emitted
type recordingReporter struct {
	progress []int
	done     []int
	events   []string
}

func (r *recordingReporter) Progress(written int) {
	r.progress = append(r.progress, written)
	r.events = append(r.events, fmt.Sprintf("progress:%d", written))
}

func (r *recordingReporter) Done(total int) {
	r.done = append(r.done, total)
	r.events = append(r.events, fmt.Sprintf("done:%d", total))
}

func newTestSeeder(st store.Store, rep Reporter, opts Options) *Seeder {
	return New(st, product.NewSeededGenerator(11), rep, zap.NewNop(), opts)
}

func TestSeedThreeProducts(t *testing.T) {
	st := store.NewMemoryStore()
	rep := &recordingReporter{}

	res, err := newTestSeeder(st, rep, Options{}).Seed(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Written)
	assert.Equal(t, []string{"barcode_1", "barcode_2", "barcode_3"}, st.Barcodes())

	for i := 1; i <= 3; i++ {
		p, err := st.Get(context.Background(), product.Barcode(i))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("Product %d", i), p.Name)
		assert.Equal(t, fmt.Sprintf("Supplier %d", i), p.Supplier)
		assert.NoError(t, p.Validate())
		assert.False(t, p.CreatedAt.IsZero())
		assert.Equal(t, p.CreatedAt, p.UpdatedAt)
	}

	assert.Empty(t, rep.progress)
	assert.Equal(t, []int{3}, rep.done)
}

func TestSeedProgressNotices(t *testing.T) {
	tests := []struct {
		count    int
		progress []int
	}{
		{count: 99, progress: nil},
		{count: 100, progress: []int{100}},
		{count: 250, progress: []int{100, 200}},
		{count: 300, progress: []int{100, 200, 300}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("count_%d", tt.count), func(t *testing.T) {
			st := store.NewMemoryStore()
			rep := &recordingReporter{}

			res, err := newTestSeeder(st, rep, Options{}).Seed(context.Background(), tt.count)
			require.NoError(t, err)

			assert.Equal(t, tt.progress, rep.progress)
			assert.Equal(t, []int{tt.count}, rep.done)
			assert.Equal(t, tt.count, res.Written)

			n, err := st.Count(context.Background())
			require.NoError(t, err)
			assert.EqualValues(t, tt.count, n)
		})
	}
}

func TestSeedSummaryComesLast(t *testing.T) {
	rep := &recordingReporter{}

	_, err := newTestSeeder(store.NewMemoryStore(), rep, Options{}).Seed(context.Background(), 250)
	require.NoError(t, err)

	assert.Equal(t, []string{"progress:100", "progress:200", "done:250"}, rep.events)
}

func TestSeedCustomProgressInterval(t *testing.T) {
	rep := &recordingReporter{}

	_, err := newTestSeeder(store.NewMemoryStore(), rep, Options{ProgressEvery: 2}).Seed(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 4}, rep.progress)
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	_, err := newTestSeeder(st, nil, Options{}).Seed(ctx, 50)
	require.NoError(t, err)
	_, err = New(st, product.NewSeededGenerator(12), nil, nil, Options{}).Seed(ctx, 50)
	require.NoError(t, err)

	n, err := st.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 50, n)
	assert.Equal(t, 100, st.Writes())

	// A larger run extends the same key space
	_, err = newTestSeeder(st, nil, Options{}).Seed(ctx, 60)
	require.NoError(t, err)
	n, err = st.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 60, n)
}

func TestSeedFailsFast(t *testing.T) {
	boom := errors.New("quota exceeded")
	st := store.NewMemoryStore(store.WithFailure(5, boom))
	rep := &recordingReporter{}

	res, err := newTestSeeder(st, rep, Options{}).Seed(context.Background(), 10)
	require.Error(t, err)

	assert.ErrorIs(t, err, boom)
	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, 5, writeErr.Index)
	assert.Equal(t, "barcode_5", writeErr.Barcode)

	assert.Equal(t, 4, res.Written)
	assert.Equal(t, []string{"barcode_1", "barcode_2", "barcode_3", "barcode_4"}, st.Barcodes())
	assert.Equal(t, 5, st.Writes(), "no write is attempted after the failure")
	assert.Empty(t, rep.done)
}

func TestSeedRejectsInvalidCount(t *testing.T) {
	for _, count := range []int{0, -1} {
		st := store.NewMemoryStore()
		rep := &recordingReporter{}

		_, err := newTestSeeder(st, rep, Options{}).Seed(context.Background(), count)
		assert.ErrorIs(t, err, ErrInvalidCount)
		assert.Zero(t, st.Writes())
		assert.Empty(t, rep.done)
	}
}

// cancellingStore cancels the run after a number of successful writes
type cancellingStore struct {
	*store.MemoryStore
	after  int
	cancel context.CancelFunc
}

func (s *cancellingStore) Upsert(ctx context.Context, p product.Product) error {
	if err := s.MemoryStore.Upsert(ctx, p); err != nil {
		return err
	}
	if s.MemoryStore.Writes() == s.after {
		s.cancel()
	}
	return nil
}

func TestSeedStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st := &cancellingStore{MemoryStore: store.NewMemoryStore(), after: 3, cancel: cancel}
	rep := &recordingReporter{}

	res, err := newTestSeeder(st, rep, Options{}).Seed(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, res.Written)
	assert.Equal(t, 3, st.Writes())
	assert.Empty(t, rep.done)
}

func TestSeedSameSeedSameDocuments(t *testing.T) {
	ctx := context.Background()
	a := store.NewMemoryStore()
	b := store.NewMemoryStore()

	_, err := New(a, product.NewSeededGenerator(5), nil, nil, Options{}).Seed(ctx, 20)
	require.NoError(t, err)
	_, err = New(b, product.NewSeededGenerator(5), nil, nil, Options{}).Seed(ctx, 20)
	require.NoError(t, err)

	for i := 1; i <= 20; i++ {
		pa, err := a.Get(ctx, product.Barcode(i))
		require.NoError(t, err)
		pb, err := b.Get(ctx, product.Barcode(i))
		require.NoError(t, err)

		assert.Equal(t, pa.Quantity, pb.Quantity)
		assert.Equal(t, pa.OwnPrice, pb.OwnPrice)
		assert.Equal(t, pa.Price, pb.Price)
		assert.Equal(t, pa.Unit, pb.Unit)
	}
}

func TestSeedRateLimit(t *testing.T) {
	st := store.NewMemoryStore()

	start := time.Now()
	_, err := newTestSeeder(st, nil, Options{RateLimit: 50}).Seed(context.Background(), 6)
	require.NoError(t, err)

	// First token is available immediately, the remaining five wait 20ms each
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	assert.Equal(t, 6, st.Writes())
}

func TestProvideSeeder(t *testing.T) {
	cfg := config.Default()
	cfg.Seed.ProgressEvery = 10
	rep := &recordingReporter{}

	s := ProvideSeeder(store.NewMemoryStore(), product.NewSeededGenerator(1), rep, zap.NewNop(), cfg)
	_, err := s.Seed(context.Background(), 25)
	require.NoError(t, err)

	assert.Equal(t, []int{10, 20}, rep.progress)
}
