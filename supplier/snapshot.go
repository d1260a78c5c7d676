/*
snapshot.go - serializable view of the supplier ledger
*/
package supplier

import "encoding/json"

// StoreKey is the snapshot name the ledger persists under.
const StoreKey = "supplier-store"

type Snapshot struct {
	Suppliers      []Supplier      `json:"suppliers"`
	PurchaseOrders []PurchaseOrder `json:"purchaseOrders"`
}

func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := Snapshot{
		Suppliers:      make([]Supplier, 0, len(l.supplierOrder)),
		PurchaseOrders: append([]PurchaseOrder(nil), l.orders...),
	}
	for _, id := range l.supplierOrder {
		snap.Suppliers = append(snap.Suppliers, *l.suppliers[id])
	}
	return snap
}

func (l *Ledger) MarshalSnapshot() ([]byte, error) {
	return json.Marshal(l.Snapshot())
}

func (l *Ledger) RestoreSnapshot(data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.suppliers = make(map[SupplierID]*Supplier, len(snap.Suppliers))
	l.supplierOrder = l.supplierOrder[:0]
	for i := range snap.Suppliers {
		s := snap.Suppliers[i]
		l.suppliers[s.ID] = &s
		l.supplierOrder = append(l.supplierOrder, s.ID)
	}
	l.orders = append([]PurchaseOrder(nil), snap.PurchaseOrders...)
	return nil
}
