package product

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinQuantity = 0
	MaxQuantity = 1000

	barcodePrefix  = "barcode_"
	namePrefix     = "Product "
	supplierPrefix = "Supplier "
)

var (
	// MinPrice and MaxPrice bound both ownPrice and price, inclusive.
	MinPrice = decimal.NewFromInt(10)
	MaxPrice = decimal.NewFromInt(500)

	// Units lists the units of measure a product is sold in.
	Units = []string{"кг", "шт", "л"}
)

// Product is a single document of the products collection, keyed by Barcode.
type Product struct {
	Barcode   string    `firestore:"barcode"`
	Name      string    `firestore:"name"`
	Quantity  int       `firestore:"quantity"`
	OwnPrice  float64   `firestore:"ownPrice"`
	Price     float64   `firestore:"price"`
	Supplier  string    `firestore:"supplier"`
	Unit      string    `firestore:"unit"`
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp"`
	UpdatedAt time.Time `firestore:"updatedAt,serverTimestamp"`
}

// Barcode returns the document key of the i-th seeded product.
func Barcode(i int) string {
	return barcodePrefix + strconv.Itoa(i)
}

// Validate reports the first field that falls outside the generation rules
func (p Product) Validate() error {
	if p.Barcode == "" {
		return fmt.Errorf("barcode is empty")
	}
	if p.Quantity < MinQuantity || p.Quantity > MaxQuantity {
		return fmt.Errorf("quantity %d out of range [%d, %d]", p.Quantity, MinQuantity, MaxQuantity)
	}
	if err := validatePrice("ownPrice", p.OwnPrice); err != nil {
		return err
	}
	if err := validatePrice("price", p.Price); err != nil {
		return err
	}
	if !slices.Contains(Units, p.Unit) {
		return fmt.Errorf("unit %q is not one of %v", p.Unit, Units)
	}
	return nil
}

func validatePrice(field string, v float64) error {
	d := decimal.NewFromFloat(v)
	if d.LessThan(MinPrice) || d.GreaterThan(MaxPrice) {
		return fmt.Errorf("%s %s out of range [%s, %s]", field, d.StringFixed(2), MinPrice.StringFixed(2), MaxPrice.StringFixed(2))
	}
	if !d.Equal(d.Round(2)) {
		return fmt.Errorf("%s %s has more than 2 decimal places", field, d.String())
	}
	return nil
}
