package clean

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

func TestCleanDeletesSeededProducts(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	_, err := seeder.New(st, product.NewSeededGenerator(1), nil, nil, seeder.Options{}).Seed(ctx, 3)
	require.NoError(t, err)
	require.NoError(t, st.Upsert(ctx, product.Product{Barcode: "manual"}))

	svc := ProvideCleanService(st, ui.NewService(strings.NewReader(""), &bytes.Buffer{}), zap.NewNop())
	deleted, skipped, err := svc.Clean(ctx, 5)
	require.NoError(t, err)

	assert.Equal(t, []string{"barcode_1", "barcode_2", "barcode_3"}, deleted)
	assert.Equal(t, []string{"barcode_4", "barcode_5"}, skipped)
	assert.Equal(t, []string{"manual"}, st.Barcodes())
}

func TestCleanRejectsInvalidCount(t *testing.T) {
	svc := ProvideCleanService(store.NewMemoryStore(), ui.NewService(strings.NewReader(""), &bytes.Buffer{}), zap.NewNop())

	_, _, err := svc.Clean(context.Background(), -3)
	assert.ErrorIs(t, err, seeder.ErrInvalidCount)
}
