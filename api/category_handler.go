package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-cms/backend/database"
	"github.com/inkwell-cms/backend/errs"
	"github.com/inkwell-cms/backend/models"
)

type categoryHandler struct {
	responder    Responder
	logger       zerolog.Logger
	categoryRepo *database.CategoryRepo
}

func newCategoryHandler(categoryRepo *database.CategoryRepo) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		categoryRepo: categoryRepo,
	}
}

// getAllCategories retrieves every category.
func (h categoryHandler) getAllCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapRepoError("find categories", "categories", err))
			return
		}

		h.responder.WriteEnvelope(w, http.StatusOK, "Categories retrieved successfully", newCategoryResponses(categories))
	}
}

// createCategory creates a new category. Names are unique.
func (h categoryHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if v := req.validate(); len(v) > 0 {
			h.responder.WriteError(w, v)
			return
		}

		name := strings.TrimSpace(req.Name)

		existing, err := h.categoryRepo.FindByName(name)
		if err != nil {
			h.responder.WriteError(w, wrapRepoError("find category", "category", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.NewAlreadyExists("category"))
			return
		}

		category := models.Category{
			Name:        name,
			Description: req.Description,
		}

		if err := h.categoryRepo.Add(&category); err != nil {
			h.responder.WriteError(w, wrapRepoError("create category", "category", err))
			return
		}

		h.responder.WriteEnvelope(w, http.StatusCreated, "Category created successfully", newCategoryResponse(category))
	}
}

// getCategory retrieves a category by ID.
func (h categoryHandler) getCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uuid.Parse(chi.URLParam(r, "categoryID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid categoryID"))
			return
		}

		category, err := h.categoryRepo.FindByID(categoryID)
		if err != nil {
			h.responder.WriteError(w, wrapRepoError("find category", "category", err))
			return
		}
		if category == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("category"))
			return
		}

		h.responder.WriteEnvelope(w, http.StatusOK, "Category retrieved successfully", newCategoryResponse(*category))
	}
}

// deleteCategory removes a category; posts linked to it only lose the link.
func (h categoryHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uuid.Parse(chi.URLParam(r, "categoryID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid categoryID"))
			return
		}

		category, err := h.categoryRepo.FindByID(categoryID)
		if err != nil {
			h.responder.WriteError(w, wrapRepoError("find category", "category", err))
			return
		}
		if category == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("category"))
			return
		}

		if err := h.categoryRepo.Delete(categoryID); err != nil {
			h.responder.WriteError(w, wrapRepoError("delete category", "category", err))
			return
		}

		h.responder.WriteEnvelope(w, http.StatusOK, "Category deleted successfully", nil)
	}
}
