package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pulok-thedeveloper/music-spot-server/models"
	"github.com/pulok-thedeveloper/music-spot-server/store"
	"github.com/pulok-thedeveloper/music-spot-server/utils"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const msgAlreadyRegistered = "You have already Registered"

// UserController handles user-related requests
type UserController struct {
	Users    UserStore
	Notifier Notifier
}

// NewUserController creates a new UserController
func NewUserController(users UserStore, notifier Notifier) *UserController {
	return &UserController{Users: users, Notifier: notifier}
}

// IssueToken signs an access token for a registered email. No credential is checked.
func (uc *UserController) IssueToken(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.RespondJSON(w, http.StatusForbidden, map[string]string{"accessToken": ""})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	_, err := uc.Users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondJSON(w, http.StatusForbidden, map[string]string{"accessToken": ""})
		return
	}
	if err != nil {
		respondStoreError(w, r, err, "looking up user")
		return
	}

	token, err := utils.GenerateJWT(email)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("signing token failed")
		utils.RespondError(w, http.StatusInternalServerError, "Error generating token")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"accessToken": token})
}

// Register handles user registration. A second registration of an email is acknowledged, not inserted.
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := utils.DecodeAndValidate(r, &user); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	user.ID = primitive.NilObjectID
	user.VerifyStatus = models.StatusUnverified

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := uc.Users.Create(ctx, &user)
	if errors.Is(err, store.ErrDuplicate) {
		utils.RespondJSON(w, http.StatusOK, models.Ack{Acknowledged: false, Message: msgAlreadyRegistered})
		return
	}
	if err != nil {
		respondStoreError(w, r, err, "creating user")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

// GetUsers lists users, optionally only those with the role query parameter
func (uc *UserController) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	users, err := uc.Users.List(ctx, r.URL.Query().Get("role"))
	if err != nil {
		respondStoreError(w, r, err, "fetching users")
		return
	}
	utils.RespondJSON(w, http.StatusOK, users)
}

// IsAdmin reports whether the email belongs to an admin
func (uc *UserController) IsAdmin(w http.ResponseWriter, r *http.Request) {
	user, ok := uc.lookup(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"isAdmin": user != nil && user.IsAdmin()})
}

// IsBuyer reports whether the email belongs to a buyer
func (uc *UserController) IsBuyer(w http.ResponseWriter, r *http.Request) {
	user, ok := uc.lookup(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"isBuyer": user != nil && user.Role == models.RoleBuyer})
}

// GetSeller returns the full record for the email, including its role and verifyStatus
func (uc *UserController) GetSeller(w http.ResponseWriter, r *http.Request) {
	user, ok := uc.lookup(w, r)
	if !ok {
		return
	}
	if user == nil {
		utils.RespondError(w, http.StatusNotFound, "User not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, user)
}

// lookup finds the user named by the {email} path variable. A missing user is (nil, true).
func (uc *UserController) lookup(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	user, err := uc.Users.FindByEmail(ctx, mux.Vars(r)["email"])
	if errors.Is(err, store.ErrNotFound) {
		return nil, true
	}
	if err != nil {
		respondStoreError(w, r, err, "looking up user")
		return nil, false
	}
	return user, true
}

// MakeAdmin promotes a user to admin (admins only)
func (uc *UserController) MakeAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := uc.Users.SetRole(ctx, mux.Vars(r)["id"], models.RoleAdmin)
	if err != nil {
		respondStoreError(w, r, err, "updating role")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

// VerifySeller marks a seller as verified (admins only) and notifies them
func (uc *UserController) VerifySeller(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := uc.Users.SetVerifyStatus(ctx, id, models.StatusVerified)
	if err != nil {
		respondStoreError(w, r, err, "verifying seller")
		return
	}

	if uc.Notifier != nil {
		if seller, err := uc.Users.FindByID(ctx, id); err == nil && seller.Email != "" {
			notify(r, "seller verification notice", func() error { return uc.Notifier.SendSellerVerified(*seller) })
		}
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

// DeleteUser removes a user (admins only). Their products and bookings are kept.
func (uc *UserController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := uc.Users.Delete(ctx, mux.Vars(r)["id"])
	if err != nil {
		respondStoreError(w, r, err, "deleting user")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}
