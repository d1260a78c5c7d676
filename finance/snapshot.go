/*
snapshot.go - serializable view of the bookkeeping ledger
*/
package finance

import "encoding/json"

// StoreKey is the snapshot name the ledger persists under.
const StoreKey = "financial-store"

type Snapshot struct {
	Accounts     []Account     `json:"accounts"`
	Transactions []Transaction `json:"transactions"`
}

func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := Snapshot{
		Accounts:     make([]Account, 0, len(l.accountOrder)),
		Transactions: append([]Transaction(nil), l.transactions...),
	}
	for _, id := range l.accountOrder {
		snap.Accounts = append(snap.Accounts, *l.accounts[id])
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

	l.accounts = make(map[AccountID]*Account, len(snap.Accounts))
	l.accountOrder = l.accountOrder[:0]
	for i := range snap.Accounts {
		a := snap.Accounts[i]
		l.accounts[a.ID] = &a
		l.accountOrder = append(l.accountOrder, a.ID)
	}
	l.transactions = append([]Transaction(nil), snap.Transactions...)
	return nil
}
