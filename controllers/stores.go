package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/pulok-thedeveloper/music-spot-server/models"
	"github.com/pulok-thedeveloper/music-spot-server/store"
	"github.com/pulok-thedeveloper/music-spot-server/utils"
	"github.com/rs/zerolog"
)

const requestTimeout = 10 * time.Second

// UserStore is the users collection as the controllers use it
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, role string) ([]models.User, error)
	Create(ctx context.Context, user *models.User) (*models.InsertResult, error)
	SetRole(ctx context.Context, id, role string) (*models.UpdateResult, error)
	SetVerifyStatus(ctx context.Context, id, status string) (*models.UpdateResult, error)
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)
}

type ProductStore interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	ListAdvertised(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.InsertResult, error)
	Advertise(ctx context.Context, id string) (*models.UpdateResult, error)
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)
}

type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
}

type BookingStore interface {
	ListByEmail(ctx context.Context, email string) ([]models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) (*models.InsertResult, error)
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)
}

// Notifier sends the transactional emails. *utils.EmailService satisfies it.
type Notifier interface {
	SendBookingConfirmation(booking models.Booking) error
	SendSellerVerified(user models.User) error
}

// respondStoreError maps a store failure onto the HTTP error tiers
func respondStoreError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		utils.RespondError(w, http.StatusBadRequest, "Invalid id")
	case errors.Is(err, store.ErrNotFound):
		utils.RespondError(w, http.StatusNotFound, "Not found")
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg(action + " failed")
		utils.RespondError(w, http.StatusInternalServerError, "Error "+action)
	}
}

// notify runs send after the response is decided; failures are only logged
func notify(r *http.Request, what string, send func() error) {
	logger := zerolog.Ctx(r.Context())
	go func() {
		if err := send(); err != nil {
			logger.Warn().Err(err).Msg("failed to send " + what)
		}
	}()
}
