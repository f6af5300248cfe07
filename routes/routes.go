// routes/routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pulok-thedeveloper/music-spot-server/controllers"
	"github.com/pulok-thedeveloper/music-spot-server/middleware"
	"github.com/pulok-thedeveloper/music-spot-server/models"
)

// with wraps h so that mws run in the order given
func with(h http.HandlerFunc, mws ...func(http.Handler) http.Handler) http.Handler {
	var handler http.Handler = h
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	return handler
}

// RegisterRoutes sets up all the routes for the application.
// Role checks go through users on every request.
func RegisterRoutes(router *mux.Router, users middleware.UserFinder, userController *controllers.UserController, productController *controllers.ProductController, categoryController *controllers.CategoryController, bookingController *controllers.BookingController) {
	auth := middleware.AuthMiddleware
	registered := middleware.RequireUser(users)
	seller := middleware.RequireUser(users, models.RoleSeller)
	admin := middleware.RequireUser(users, models.RoleAdmin)

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("musicspot server is running"))
	}).Methods("GET", "HEAD")

	// Public routes
	router.HandleFunc("/categories", categoryController.GetCategories).Methods("GET")
	router.HandleFunc("/advertised", productController.GetAdvertised).Methods("GET")
	router.HandleFunc("/jwt", userController.IssueToken).Methods("GET")
	router.HandleFunc("/users", userController.Register).Methods("POST")
	router.HandleFunc("/users", userController.GetUsers).Methods("GET")
	router.HandleFunc("/users/admin/{email}", userController.IsAdmin).Methods("GET")
	router.HandleFunc("/users/seller/{email}", userController.GetSeller).Methods("GET")
	router.HandleFunc("/users/buyer/{email}", userController.IsBuyer).Methods("GET")

	// Product routes
	router.Handle("/products", with(productController.GetProducts, auth, registered)).Methods("GET")
	router.Handle("/products", with(productController.CreateProduct, auth, seller)).Methods("POST")
	router.Handle("/products/{id}", with(productController.AdvertiseProduct, auth, seller)).Methods("PUT")
	router.Handle("/products/{id}", with(productController.DeleteProduct, auth)).Methods("DELETE")

	// Booking routes, ownership is checked against the token
	router.Handle("/bookings", with(bookingController.GetBookings, auth)).Methods("GET")
	router.Handle("/bookings", with(bookingController.CreateBooking, auth)).Methods("POST")
	router.Handle("/bookings/{id}", with(bookingController.DeleteBooking, auth)).Methods("DELETE")

	// Admin routes
	router.Handle("/users/admin/{id}", with(userController.MakeAdmin, auth, admin)).Methods("PUT")
	router.Handle("/users/seller/{id}", with(userController.VerifySeller, auth, admin)).Methods("PUT")
	router.Handle("/users/{id}", with(userController.DeleteUser, auth, admin)).Methods("DELETE")
}
