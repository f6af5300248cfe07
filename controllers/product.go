package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pulok-thedeveloper/music-spot-server/middleware"
	"github.com/pulok-thedeveloper/music-spot-server/models"
	"github.com/pulok-thedeveloper/music-spot-server/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductController handles product-related requests
type ProductController struct {
	Products ProductStore
}

// NewProductController creates a new ProductController
func NewProductController(products ProductStore) *ProductController {
	return &ProductController{Products: products}
}

// GetProducts lists products, filtered by the optional category and email query parameters
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	filter := models.ProductFilter{
		Category: r.URL.Query().Get("category"),
		Email:    r.URL.Query().Get("email"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	products, err := pc.Products.List(ctx, filter)
	if err != nil {
		respondStoreError(w, r, err, "fetching products")
		return
	}
	utils.RespondJSON(w, http.StatusOK, products)
}

// GetAdvertised lists promoted products for the home page
func (pc *ProductController) GetAdvertised(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	products, err := pc.Products.ListAdvertised(ctx)
	if err != nil {
		respondStoreError(w, r, err, "fetching advertised products")
		return
	}
	utils.RespondJSON(w, http.StatusOK, products)
}

// CreateProduct handles adding a new product (sellers only)
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFrom(r)
	if !ok {
		utils.RespondError(w, http.StatusForbidden, "forbidden access")
		return
	}

	var product models.Product
	if err := utils.DecodeAndValidate(r, &product); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Listings always belong to the seller who posts them
	if product.Email != "" && product.Email != caller.Email {
		utils.RespondError(w, http.StatusForbidden, "forbidden access")
		return
	}

	product.ID = primitive.NilObjectID
	product.Email = caller.Email
	if product.SellerName == "" {
		product.SellerName = caller.Name
	}
	if product.Status == "" {
		product.Status = models.ProductAvailable
	}
	product.IsAdvertise = false
	product.PostedAt = time.Now().UTC()

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := pc.Products.Create(ctx, &product)
	if err != nil {
		respondStoreError(w, r, err, "creating product")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

// AdvertiseProduct marks a product for promoted listing (sellers only)
func (pc *ProductController) AdvertiseProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := pc.Products.Advertise(ctx, mux.Vars(r)["id"])
	if err != nil {
		respondStoreError(w, r, err, "advertising product")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

// DeleteProduct removes a product by id. Ownership is not checked.
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := pc.Products.Delete(ctx, mux.Vars(r)["id"])
	if err != nil {
		respondStoreError(w, r, err, "deleting product")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}
