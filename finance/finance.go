/*
Package finance is the bookkeeping ledger: accounts and the income/expense
transactions against them. Balances are always derived by replaying
completed transactions; there is no stored balance to drift out of sync.
*/
package finance

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound is returned when a referenced account doesn't exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTransactionNotFound is returned when a referenced transaction doesn't exist.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// =============================================================================
// TYPES
// =============================================================================

type AccountID string
type TransactionID string

type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
)

type Account struct {
	ID   AccountID `json:"id"`
	Name string    `json:"name"`
	Type string    `json:"type"` // cash, bank, card
}

type Transaction struct {
	ID          TransactionID     `json:"id"`
	Account     AccountID         `json:"accountId"`
	Date        time.Time         `json:"date"`
	Description string            `json:"description"`
	Amount      decimal.Decimal   `json:"amount"`
	Type        TransactionType   `json:"type"`
	Category    string            `json:"category"`
	Status      TransactionStatus `json:"status"`
}

// =============================================================================
// LEDGER
// =============================================================================

type Ledger struct {
	mu sync.Mutex

	accounts     map[AccountID]*Account
	accountOrder []AccountID
	transactions []Transaction
}

func NewLedger() *Ledger {
	return &Ledger{accounts: make(map[AccountID]*Account)}
}

// =============================================================================
// ACCOUNTS
// =============================================================================

func (l *Ledger) AddAccount(name, accountType string) Account {
	l.mu.Lock()
	defer l.mu.Unlock()

	a := &Account{ID: AccountID(uuid.NewString()), Name: name, Type: accountType}
	l.accounts[a.ID] = a
	l.accountOrder = append(l.accountOrder, a.ID)
	return *a
}

func (l *Ledger) RemoveAccount(id AccountID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.accounts[id]; !ok {
		return ErrAccountNotFound
	}
	delete(l.accounts, id)
	for i, v := range l.accountOrder {
		if v == id {
			l.accountOrder = append(l.accountOrder[:i], l.accountOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (l *Ledger) Accounts() []Account {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Account, 0, len(l.accountOrder))
	for _, id := range l.accountOrder {
		out = append(out, *l.accounts[id])
	}
	return out
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// NewTransaction carries the caller-supplied fields of a transaction.
type NewTransaction struct {
	Account     AccountID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	Category    string
	Status      TransactionStatus
}

func (l *Ledger) AddTransaction(in NewTransaction) (Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.accounts[in.Account]; !ok {
		return Transaction{}, ErrAccountNotFound
	}
	status := in.Status
	if status == "" {
		status = StatusCompleted
	}
	tx := Transaction{
		ID:          TransactionID(uuid.NewString()),
		Account:     in.Account,
		Date:        in.Date,
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
		Category:    in.Category,
		Status:      status,
	}
	l.transactions = append(l.transactions, tx)
	return tx, nil
}

// SetTransactionStatus flips a transaction between pending and completed.
func (l *Ledger) SetTransactionStatus(id TransactionID, status TransactionStatus) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.transactions {
		if l.transactions[i].ID == id {
			l.transactions[i].Status = status
			return nil
		}
	}
	return ErrTransactionNotFound
}

func (l *Ledger) RemoveTransaction(id TransactionID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.transactions {
		if l.transactions[i].ID == id {
			l.transactions = append(l.transactions[:i], l.transactions[i+1:]...)
			return nil
		}
	}
	return ErrTransactionNotFound
}

func (l *Ledger) Transactions() []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Transaction(nil), l.transactions...)
}

// =============================================================================
// DERIVED FIGURES
// =============================================================================

// Balance replays the account's completed transactions: income adds,
// expense subtracts. Pending transactions don't count.
func (l *Ledger) Balance(account AccountID) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance := decimal.Zero
	for _, tx := range l.transactions {
		if tx.Account != account || tx.Status != StatusCompleted {
			continue
		}
		switch tx.Type {
		case Income:
			balance = balance.Add(tx.Amount)
		case Expense:
			balance = balance.Sub(tx.Amount)
		}
	}
	return balance
}

// CashFlow is net income minus expense over completed transactions dated
// within [from, to], across all accounts.
func (l *Ledger) CashFlow(from, to time.Time) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	flow := decimal.Zero
	for _, tx := range l.transactions {
		if tx.Status != StatusCompleted {
			continue
		}
		if tx.Date.Before(from) || tx.Date.After(to) {
			continue
		}
		switch tx.Type {
		case Income:
			flow = flow.Add(tx.Amount)
		case Expense:
			flow = flow.Sub(tx.Amount)
		}
	}
	return flow
}
