package product

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/kzmarket/productseed/internal/config"
	"github.com/shopspring/decimal"
)

// Generator builds product records. Index-derived fields are deterministic,
// the rest are drawn from the generator's random source.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator creates a generator drawing from rnd
func NewGenerator(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd}
}

// NewSeededGenerator creates a generator with a fixed seed. A zero seed
// picks one from the current time.
func NewSeededGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewGenerator(rand.New(rand.NewSource(seed)))
}

// ProvideGenerator creates a generator seeded from seed.random_seed
func ProvideGenerator(cfg *config.Config) *Generator {
	return NewSeededGenerator(cfg.Seed.RandomSeed)
}

// Generate builds the record for index i (1-based). Timestamps are left
// zero so the store assigns them at write time.
func (g *Generator) Generate(i int) Product {
	n := strconv.Itoa(i)

	// Draw order matters for reproducibility with a fixed seed
	quantity := MinQuantity + g.rnd.Intn(MaxQuantity-MinQuantity+1)
	ownPrice := g.price()
	price := g.price()
	unit := Units[g.rnd.Intn(len(Units))]

	return Product{
		Barcode:  Barcode(i),
		Name:     namePrefix + n,
		Quantity: quantity,
		OwnPrice: ownPrice,
		Price:    price,
		Supplier: supplierPrefix + n,
		Unit:     unit,
	}
}

func (g *Generator) price() float64 {
	span := MaxPrice.Sub(MinPrice)
	v := MinPrice.Add(span.Mul(decimal.NewFromFloat(g.rnd.Float64()))).Round(2)
	return v.InexactFloat64()
}
