package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/stockpilot/inventory-api/internal/domain/catalog"
	"github.com/stockpilot/inventory-api/internal/httperr"
	"github.com/stockpilot/inventory-api/internal/httpresp"
	"github.com/stockpilot/inventory-api/internal/models"
	"github.com/stockpilot/inventory-api/internal/policy"
)

type CategoryHandler struct {
	repo domain.Repository
}

func NewCategoryHandler(repo domain.Repository) *CategoryHandler {
	return &CategoryHandler{repo: repo}
}

// --------- Requests ---------

type CategoryRequest struct {
	Name string `json:"name"`
}

func validateCategoryName(name string) *httperr.ValidationError {
	ve := httperr.NewValidation()
	switch {
	case name == "":
		ve.Add("name", "The name field is required.")
	case len(name) > 255:
		ve.Add("name", "The name field must not be greater than 255 characters.")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// --------- Handlers ---------

// List returns the caller's categories plus the global ones, ordered by
// name.
func (h *CategoryHandler) List(c *gin.Context) {
	user := currentUser(c)

	categories, err := h.repo.ListCategories(c.Request.Context(), user.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_categories", "Could not list categories.")
		return
	}

	httpresp.OK(c, gin.H{"categories": categories})
}

// Create stores a category owned by the caller. No duplicate-name
// pre-check here: slug uniqueness is the only guarantee on this surface.
func (h *CategoryHandler) Create(c *gin.Context) {
	user := currentUser(c)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if ve := validateCategoryName(req.Name); ve != nil {
		httperr.Unprocessable(c, ve)
		return
	}

	userID := user.ID
	category := models.Category{
		Name:   req.Name,
		UserID: &userID,
	}

	if err := h.repo.CreateCategory(c.Request.Context(), &category); err != nil {
		httperr.Internal(c, "failed_to_create_category", "Could not create category.")
		return
	}

	httpresp.Created(c, gin.H{"category": category})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	user := currentUser(c)

	category, ok := h.lookup(c)
	if !ok {
		return
	}

	if !policy.CanManageCategory(&user, category) {
		httperr.Forbidden(c, "forbidden", "Unauthorized")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if ve := validateCategoryName(req.Name); ve != nil {
		httperr.Unprocessable(c, ve)
		return
	}

	category.Name = req.Name
	if err := h.repo.UpdateCategory(c.Request.Context(), category); err != nil {
		httperr.Internal(c, "failed_to_update_category", "Could not update category.")
		return
	}

	httpresp.OK(c, gin.H{"category": category})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	user := currentUser(c)

	category, ok := h.lookup(c)
	if !ok {
		return
	}

	if !policy.CanManageCategory(&user, category) {
		httperr.Forbidden(c, "forbidden", "Unauthorized")
		return
	}

	if err := h.repo.DeleteCategory(c.Request.Context(), category); err != nil {
		httperr.Internal(c, "failed_to_delete_category", "Could not delete category.")
		return
	}

	httpresp.OK(c, gin.H{"message": "Category deleted"})
}

func (h *CategoryHandler) lookup(c *gin.Context) (*models.Category, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.NotFound(c, "category_not_found", "Category not found.")
		return nil, false
	}

	category, err := h.repo.GetCategory(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "category_not_found", "Category not found.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_category", "Could not load category.")
		return nil, false
	}
	return category, true
}

// CreateWithNameCheck is the web-surface variant: it rejects a name the
// caller (or the global set) already uses before touching slugs.
func (h *CategoryHandler) CreateWithNameCheck(c *gin.Context) {
	user := currentUser(c)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if ve := validateCategoryName(req.Name); ve != nil {
		httperr.Unprocessable(c, ve)
		return
	}

	exists, err := h.repo.CategoryNameExists(c.Request.Context(), user.ID, req.Name)
	if err != nil {
		httperr.Internal(c, "failed_to_check_category", "Could not create category.")
		return
	}
	if exists {
		ve := httperr.NewValidation()
		ve.Add("name", "A category with this name already exists.")
		httperr.Unprocessable(c, ve)
		return
	}

	userID := user.ID
	category := models.Category{
		Name:   req.Name,
		UserID: &userID,
	}

	if err := h.repo.CreateCategory(c.Request.Context(), &category); err != nil {
		httperr.Internal(c, "failed_to_create_category", "Could not create category.")
		return
	}

	httpresp.Created(c, gin.H{"category": category})
}
