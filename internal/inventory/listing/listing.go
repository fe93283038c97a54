// Package listing derives the displayed inventory list from a full snapshot of
// stored items. Nothing here touches storage; the same inputs always give the same
// rows.
package listing

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/fekuna/fridge-inventory/internal/model"
	"golang.org/x/text/cases"
)

// ExpiringSoonDays is the inclusive horizon of the "expiring soon" filter.
const ExpiringSoonDays = 3

type Level string

const (
	LevelExpired Level = "expired"
	LevelWarning Level = "warning"
	LevelNeutral Level = "neutral"
)

type Badge struct {
	Text  string `json:"text"`
	Level Level  `json:"level"`
}

type Row struct {
	model.InventoryItem
	DaysLeft    *int   `json:"daysLeft,omitempty"`
	Badge       *Badge `json:"badge,omitempty"`
	ExpiryLabel string `json:"expiryLabel,omitempty"` // e.g. "Jan 2"
}

type Options struct {
	Search       string
	ExpiringOnly bool
	Today        time.Time
}

// Build filters, orders and labels items. The input slice is not modified.
func Build(items []model.InventoryItem, opts Options) []Row {
	fold := cases.Fold()
	needle := fold.String(opts.Search)

	kept := make([]model.InventoryItem, 0, len(items))
	for _, item := range items {
		if !strings.Contains(fold.String(item.Name), needle) {
			continue
		}
		if opts.ExpiringOnly {
			days, ok := DaysLeft(&item, opts.Today)
			if !ok || days > ExpiringSoonDays {
				continue
			}
		}
		kept = append(kept, item)
	}
	Sort(kept)

	rows := make([]Row, 0, len(kept))
	for _, item := range kept {
		rows = append(rows, label(item, opts.Today))
	}
	return rows
}

// Sort orders dated items first by ascending expiry, then undated items newest first.
func Sort(items []model.InventoryItem) {
	slices.SortStableFunc(items, Compare)
}

func Compare(a, b model.InventoryItem) int {
	aDated, bDated := a.HasExpiry(), b.HasExpiry()
	switch {
	case aDated && bDated:
		return strings.Compare(*a.ExpiryDate, *b.ExpiryDate)
	case aDated:
		return -1
	case bDated:
		return 1
	}
	return b.AddedAt.Compare(a.AddedAt)
}

// DaysLeft counts calendar days from today's date to the expiry date. Negative
// means expired. ok is false for items without a usable expiry date.
func DaysLeft(item *model.InventoryItem, today time.Time) (days int, ok bool) {
	exp, ok := item.Expiry(time.UTC)
	if !ok {
		return 0, false
	}
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(exp.Sub(start).Hours() / 24), true
}

func BadgeFor(days int) Badge {
	switch {
	case days < 0:
		return Badge{Text: "Expired", Level: LevelExpired}
	case days <= ExpiringSoonDays:
		return Badge{Text: fmt.Sprintf("%d days left", days), Level: LevelWarning}
	default:
		return Badge{Text: fmt.Sprintf("%d days left", days), Level: LevelNeutral}
	}
}

func label(item model.InventoryItem, today time.Time) Row {
	row := Row{InventoryItem: item}
	days, ok := DaysLeft(&item, today)
	if !ok {
		return row
	}
	badge := BadgeFor(days)
	row.DaysLeft = &days
	row.Badge = &badge
	exp, _ := item.Expiry(time.UTC)
	row.ExpiryLabel = exp.Format("Jan 2")
	return row
}
