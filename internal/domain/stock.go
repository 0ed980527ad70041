package domain

import "time"

// StockEntry is a quantity of one food item held in a ledger or pool.
type StockEntry struct {
	FoodName string
	Quantity int
}

// StockLedger is the main inventory of a food bank. Entries never hold a
// zero or negative quantity; an entry that reaches zero is pruned.
type StockLedger struct {
	FoodbankID  string
	Entries     []StockEntry
	LastUpdated time.Time
}

// Quantity reports the on-hand amount for a food name, zero when absent.
func (l *StockLedger) Quantity(name string) int {
	for _, e := range l.Entries {
		if e.FoodName == name {
			return e.Quantity
		}
	}
	return 0
}

// Add credits quantity to the entry for name, creating it when absent.
func (l *StockLedger) Add(name string, quantity int) {
	l.Entries = addEntry(l.Entries, name, quantity)
}

// Remove debits quantity from the entry for name. It fails with
// ErrItemNotFound when the entry is absent and ErrInsufficientStock when
// the entry holds less than quantity. Entries reaching zero are pruned.
func (l *StockLedger) Remove(name string, quantity int) error {
	entries, err := removeEntry(l.Entries, name, quantity, ErrInsufficientStock)
	if err != nil {
		return err
	}
	l.Entries = entries
	return nil
}

// EventPool is stock carved out of a food bank ledger for one event.
type EventPool struct {
	EventID     string
	Entries     []StockEntry
	LastUpdated time.Time
}

func (p *EventPool) Quantity(name string) int {
	for _, e := range p.Entries {
		if e.FoodName == name {
			return e.Quantity
		}
	}
	return 0
}

func (p *EventPool) Add(name string, quantity int) {
	p.Entries = addEntry(p.Entries, name, quantity)
}

// Remove debits quantity from the pool, failing with
// ErrInsufficientPoolStock when the pool holds less than quantity.
func (p *EventPool) Remove(name string, quantity int) error {
	entries, err := removeEntry(p.Entries, name, quantity, ErrInsufficientPoolStock)
	if err != nil {
		return err
	}
	p.Entries = entries
	return nil
}

func addEntry(entries []StockEntry, name string, quantity int) []StockEntry {
	for i := range entries {
		if entries[i].FoodName == name {
			entries[i].Quantity += quantity
			return entries
		}
	}
	return append(entries, StockEntry{FoodName: name, Quantity: quantity})
}

func removeEntry(entries []StockEntry, name string, quantity int, insufficient error) ([]StockEntry, error) {
	for i := range entries {
		if entries[i].FoodName != name {
			continue
		}
		if entries[i].Quantity < quantity {
			return nil, insufficient
		}
		entries[i].Quantity -= quantity
		if entries[i].Quantity == 0 {
			return append(entries[:i], entries[i+1:]...), nil
		}
		return entries, nil
	}
	return nil, ErrItemNotFound
}
