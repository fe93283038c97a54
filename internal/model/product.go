package model

// Product is a catalog entry remembered for a barcode so the next scan of the same
// code can prefill the entry form.
type Product struct {
	EAN         string  `db:"ean" json:"ean"`
	Name        string  `db:"name" json:"name"`
	DefaultQty  float64 `db:"default_qty" json:"defaultQty"`
	DefaultUnit Unit    `db:"default_unit" json:"defaultUnit"`
}
