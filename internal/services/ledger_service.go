package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"ledger/internal/metrics"
	"ledger/internal/models"
	"ledger/internal/store"
	"ledger/internal/websocket"

	"go.uber.org/zap"
)

var ErrBalanceOverflow = fmt.Errorf("%w: balance would overflow", models.ErrInvalidRequest)

type UserMutator interface {
	Mutate(id string, fn func(*models.User) error) (models.User, error)
}

type Saver interface {
	Save(ctx context.Context)
}

type BalanceHub interface {
	BroadcastBalance(userID string, update websocket.BalanceUpdate)
}

// LedgerService is the only code path that changes a balance or appends
// to a user's transaction history.
type LedgerService struct {
	users  UserMutator
	saver  Saver
	hub    BalanceHub
	logger *zap.Logger
	now    func() time.Time
}

func NewLedgerService(users UserMutator, saver Saver, hub BalanceHub, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		users:  users,
		saver:  saver,
		hub:    hub,
		logger: logger,
		now:    time.Now,
	}
}

type AdjustRequest struct {
	UserID      string
	Amount      int64
	Description string
	Direction   models.Direction
	AdminName   string
}

func (r AdjustRequest) validate() error {
	if r.Amount <= 0 {
		return fmt.Errorf("%w: amount must be a positive integer", models.ErrInvalidRequest)
	}
	if strings.TrimSpace(r.Description) == "" {
		return fmt.Errorf("%w: description is required", models.ErrInvalidRequest)
	}
	if !r.Direction.Valid() {
		return fmt.Errorf("%w: type must be add or deduct", models.ErrInvalidRequest)
	}
	return nil
}

// AdjustBalance applies one signed change and records it as the newest
// transaction. The balance check and the write happen under the registry
// lock, so concurrent deductions cannot take a balance below zero.
func (s *LedgerService) AdjustBalance(ctx context.Context, req AdjustRequest) (models.User, error) {
	if err := req.validate(); err != nil {
		metrics.RecordAdjustment(string(req.Direction), "invalid")
		return models.User{}, err
	}

	var recorded models.Transaction
	user, err := s.users.Mutate(req.UserID, func(u *models.User) error {
		switch req.Direction {
		case models.DirectionDeduct:
			if req.Amount > u.Balance {
				return models.ErrInsufficientBalance
			}
		case models.DirectionAdd:
			if u.Balance > math.MaxInt64-req.Amount {
				return ErrBalanceOverflow
			}
		}

		now := s.now()
		recorded = newTransaction(now, req)
		if req.Direction == models.DirectionAdd {
			u.Balance += req.Amount
		} else {
			u.Balance -= req.Amount
		}
		u.Transactions = append([]models.Transaction{recorded}, u.Transactions...)
		u.LastActive = now.UnixMilli()
		return nil
	})
	if err != nil {
		metrics.RecordAdjustment(string(req.Direction), outcome(err))
		return models.User{}, err
	}
	metrics.RecordAdjustment(string(req.Direction), "ok")

	s.logger.Info("balance adjusted",
		zap.String("user_id", user.ID),
		zap.String("direction", string(req.Direction)),
		zap.Int64("amount", req.Amount),
		zap.Int64("balance", user.Balance),
		zap.String("transaction_id", recorded.ID),
	)

	s.saver.Save(ctx)
	s.hub.BroadcastBalance(user.ID, websocket.BalanceUpdate{
		UserID:      user.ID,
		Balance:     user.Balance,
		Transaction: recorded,
	})
	return user, nil
}

func newTransaction(now time.Time, req AdjustRequest) models.Transaction {
	tx := models.Transaction{
		ID:          store.NewTransactionID(now),
		Type:        models.TransactionIncome,
		Amount:      req.Amount,
		Description: req.Description,
		Timestamp:   now.UnixMilli(),
	}
	if req.Direction == models.DirectionDeduct {
		tx.Type = models.TransactionExpense
	}
	if req.AdminName != "" {
		admin := req.AdminName
		tx.AdminName = &admin
		tx.Description = models.AdminMarker + req.Description
	}
	return tx
}

func outcome(err error) string {
	switch {
	case errors.Is(err, models.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrInvalidRequest):
		return "invalid"
	default:
		return "error"
	}
}
