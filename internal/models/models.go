package models

import "errors"

const (
	InitialBalance int64 = 118101
	AdminMarker          = "[ADMIN] "
)

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrNotFound            = errors.New("not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

type Direction string

const (
	DirectionAdd    Direction = "add"
	DirectionDeduct Direction = "deduct"
)

func (d Direction) Valid() bool {
	return d == DirectionAdd || d == DirectionDeduct
}

// Timestamps are milliseconds since the Unix epoch so that persisted
// documents stay compatible with the front-end bundle.
type User struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Phone        string        `json:"phone"`
	Balance      int64         `json:"balance"`
	IsActive     bool          `json:"isActive"`
	RegisteredAt int64         `json:"registeredAt"`
	LastActive   int64         `json:"lastActive"`
	Transactions []Transaction `json:"transactions"`
}

type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      int64           `json:"amount"`
	Description string          `json:"description"`
	Timestamp   int64           `json:"timestamp"`
	AdminName   *string         `json:"adminName"`
}

type Session struct {
	UserID    string `json:"userId"`
	CreatedAt int64  `json:"createdAt"`
}

type Stats struct {
	TotalUsers        int   `json:"totalUsers"`
	ActiveUsers       int   `json:"activeUsers"`
	TotalBalance      int64 `json:"totalBalance"`
	TotalTransactions int   `json:"totalTransactions"`
}

// BalanceView is the projection returned after a ledger operation.
type BalanceView struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Phone        string        `json:"phone"`
	Balance      int64         `json:"balance"`
	Transactions []Transaction `json:"transactions"`
}

// Clone returns a deep copy; callers outside the registry never share
// the transaction slice with the stored record.
func (u User) Clone() User {
	out := u
	out.Transactions = make([]Transaction, len(u.Transactions))
	copy(out.Transactions, u.Transactions)
	return out
}

func (u User) BalanceView() BalanceView {
	return BalanceView{
		ID:           u.ID,
		Name:         u.Name,
		Phone:        u.Phone,
		Balance:      u.Balance,
		Transactions: u.Transactions,
	}
}
