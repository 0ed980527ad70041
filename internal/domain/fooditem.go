package domain

import "time"

// FoodItem is a catalog record supplying unit and expiry metadata for a
// food name. Stock can only be added for cataloged names.
type FoodItem struct {
	ID             string
	Name           string
	Category       string
	Unit           string
	Description    string
	ExpirationDate *time.Time
	AddedOn        time.Time
}
