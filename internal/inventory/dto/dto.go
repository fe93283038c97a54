package dto

import "github.com/fekuna/fridge-inventory/internal/inventory/listing"

type ListFilters struct {
	Search       string // case-insensitive substring of the item name
	ExpiringOnly bool   // only items expiring within listing.ExpiringSoonDays, expired included
}

type ListResponse struct {
	Items []listing.Row `json:"items"`
	Total int           `json:"total"`
}
