package model

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for expiry dates.
const DateLayout = "2006-01-02"

// ManualEANPrefix marks items entered without scanning.
const ManualEANPrefix = "manual-"

type InventoryItem struct {
	ID         string    `db:"id" json:"id"`
	EAN        string    `db:"ean" json:"ean"`
	Name       string    `db:"name" json:"name"`
	Qty        float64   `db:"qty" json:"qty"`
	Unit       Unit      `db:"unit" json:"unit"`
	ExpiryDate *string   `db:"expiry_date" json:"expiryDate,omitempty"` // Nullable, YYYY-MM-DD
	AddedAt    time.Time `db:"added_at" json:"addedAt"`
}

// NewInventoryItem is an item before the store assigns ID and AddedAt.
type NewInventoryItem struct {
	EAN        string
	Name       string
	Qty        float64
	Unit       Unit
	ExpiryDate *string
}

func (i *InventoryItem) HasExpiry() bool {
	return i.ExpiryDate != nil && *i.ExpiryDate != ""
}

// Expiry parses ExpiryDate in loc. ok is false when the item has no expiry or the
// stored value is not a valid date.
func (i *InventoryItem) Expiry(loc *time.Location) (t time.Time, ok bool) {
	if !i.HasExpiry() {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, *i.ExpiryDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (i *InventoryItem) IsManual() bool {
	return strings.HasPrefix(i.EAN, ManualEANPrefix)
}
