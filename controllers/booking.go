package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pulok-thedeveloper/music-spot-server/middleware"
	"github.com/pulok-thedeveloper/music-spot-server/models"
	"github.com/pulok-thedeveloper/music-spot-server/store"
	"github.com/pulok-thedeveloper/music-spot-server/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const msgAlreadyBooked = "You already have a booked this product"

// BookingController handles booking-related requests
type BookingController struct {
	Bookings BookingStore
	Notifier Notifier
}

func NewBookingController(bookings BookingStore, notifier Notifier) *BookingController {
	return &BookingController{Bookings: bookings, Notifier: notifier}
}

// GetBookings lists the caller's own bookings. The email query must match the token.
func (bc *BookingController) GetBookings(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "unauthorized access")
		return
	}

	email := r.URL.Query().Get("email")
	if email != claims.Email {
		utils.RespondError(w, http.StatusForbidden, "forbidden access")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	bookings, err := bc.Bookings.ListByEmail(ctx, email)
	if err != nil {
		respondStoreError(w, r, err, "fetching bookings")
		return
	}
	utils.RespondJSON(w, http.StatusOK, bookings)
}

// CreateBooking books a product for the caller. A repeat (productName, email) pair is acknowledged, not inserted.
func (bc *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "unauthorized access")
		return
	}

	var booking models.Booking
	if err := utils.DecodeAndValidate(r, &booking); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if booking.Email != claims.Email {
		utils.RespondError(w, http.StatusForbidden, "forbidden access")
		return
	}

	booking.ID = primitive.NilObjectID
	booking.BookedAt = time.Now().UTC()

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := bc.Bookings.Create(ctx, &booking)
	if errors.Is(err, store.ErrDuplicate) {
		utils.RespondJSON(w, http.StatusOK, models.Ack{Acknowledged: false, Message: msgAlreadyBooked})
		return
	}
	if err != nil {
		respondStoreError(w, r, err, "creating booking")
		return
	}

	if bc.Notifier != nil {
		notify(r, "booking confirmation", func() error { return bc.Notifier.SendBookingConfirmation(booking) })
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

// DeleteBooking removes a booking by id. Ownership is not checked.
func (bc *BookingController) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := bc.Bookings.Delete(ctx, mux.Vars(r)["id"])
	if err != nil {
		respondStoreError(w, r, err, "deleting booking")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}
