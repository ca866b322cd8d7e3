package verify

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/kzmarket/productseed/internal/cli/ui"
	"github.com/kzmarket/productseed/internal/product"
	"github.com/kzmarket/productseed/internal/seeder"
	"github.com/kzmarket/productseed/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seeded(t *testing.T, count int) *store.MemoryStore {
	t.Helper()
	st := store.NewMemoryStore()
	_, err := seeder.New(st, product.NewSeededGenerator(4), nil, nil, seeder.Options{}).Seed(context.Background(), count)
	require.NoError(t, err)
	return st
}

func TestVerifyCompleteCollection(t *testing.T) {
	var out bytes.Buffer
	st := seeded(t, 20)
	svc := ProvideVerifyService(st, ui.NewService(strings.NewReader(""), &out), zap.NewNop())

	report, err := svc.Verify(context.Background(), 20)
	require.NoError(t, err)

	assert.True(t, report.OK())
	assert.Equal(t, 20, report.Found)
	assert.EqualValues(t, 20, report.Total)
}

func TestVerifyReportsMissingAndInvalid(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	st := seeded(t, 5)

	require.NoError(t, st.Delete(ctx, "barcode_2"))
	require.NoError(t, st.Upsert(ctx, product.Product{Barcode: "barcode_4", Quantity: 5000, OwnPrice: 10, Price: 10, Unit: "шт"}))

	svc := ProvideVerifyService(st, ui.NewService(strings.NewReader(""), &out), zap.NewNop())
	report, err := svc.Verify(ctx, 6)
	require.NoError(t, err)

	assert.False(t, report.OK())
	assert.Equal(t, []string{"barcode_2", "barcode_6"}, report.Missing)
	require.Len(t, report.Invalid, 1)
	assert.Equal(t, "barcode_4", report.Invalid[0].Barcode)
	assert.Equal(t, 4, report.Found)
	assert.EqualValues(t, 4, report.Total)

	svc.ShowReport(report)
	assert.Contains(t, out.String(), "Missing:")
	assert.Contains(t, out.String(), "  - barcode_6")
	assert.Contains(t, out.String(), "barcode_4: quantity 5000 out of range")
}

func TestVerifyRejectsInvalidCount(t *testing.T) {
	svc := ProvideVerifyService(store.NewMemoryStore(), ui.NewService(strings.NewReader(""), &bytes.Buffer{}), zap.NewNop())

	_, err := svc.Verify(context.Background(), 0)
	assert.ErrorIs(t, err, seeder.ErrInvalidCount)
}
