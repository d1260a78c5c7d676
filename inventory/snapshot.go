package inventory

import (
	"encoding/json"
	"fmt"
)

// StoreKey is the snapshot name this ledger persists under.
const StoreKey = "inventory-store"

type Snapshot struct {
	Items     []Item        `json:"items"`
	Movements []Movement    `json:"movements"`
	Locations []string      `json:"locations"`
	Costing   CostingMethod `json:"costingMethod"`
}

func (l *Ledger) MarshalSnapshot() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := Snapshot{
		Items:     make([]Item, 0, len(l.itemOrder)),
		Movements: append([]Movement(nil), l.movements...),
		Locations: append([]string(nil), l.locations...),
		Costing:   l.costing,
	}
	for _, id := range l.itemOrder {
		snap.Items = append(snap.Items, *l.items[id])
	}
	return json.Marshal(snap)
}

func (l *Ledger) RestoreSnapshot(data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("malformed inventory snapshot: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = make(map[ItemID]*Item, len(snap.Items))
	l.itemOrder = l.itemOrder[:0]
	for i := range snap.Items {
		item := snap.Items[i]
		l.items[item.ID] = &item
		l.itemOrder = append(l.itemOrder, item.ID)
	}
	l.movements = snap.Movements
	l.locations = snap.Locations
	l.costing = snap.Costing
	return nil
}
