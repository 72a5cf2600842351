package handlers

import (
	"context"

	"ledger/internal/models"
	"ledger/internal/services"
)

type UserRegistry interface {
	List() []models.User
	FindByID(id string) (models.User, error)
	FindByPhone(phone string) (models.User, error)
	RegisterOrLogin(name, phone string) (models.User, bool, error)
	SetActive(id string, active bool) (models.User, error)
	Delete(id string) (models.User, error)
	Stats() models.Stats
}

type SessionRegistry interface {
	Create(userID string) (string, models.Session)
	Resolve(id string) (models.Session, models.User, error)
	Delete(id string)
}

type Ledger interface {
	AdjustBalance(ctx context.Context, req services.AdjustRequest) (models.User, error)
}

type Saver interface {
	Save(ctx context.Context)
}
