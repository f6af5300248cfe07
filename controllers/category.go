package controllers

import (
	"context"
	"net/http"

	"github.com/pulok-thedeveloper/music-spot-server/utils"
)

// CategoryController serves the read-only category list
type CategoryController struct {
	Categories CategoryStore
}

func NewCategoryController(categories CategoryStore) *CategoryController {
	return &CategoryController{Categories: categories}
}

// GetCategories returns every category. No authentication.
func (cc *CategoryController) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	categories, err := cc.Categories.List(ctx)
	if err != nil {
		respondStoreError(w, r, err, "fetching categories")
		return
	}
	utils.RespondJSON(w, http.StatusOK, categories)
}
