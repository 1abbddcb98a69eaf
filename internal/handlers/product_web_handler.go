package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	domain "github.com/stockpilot/inventory-api/internal/domain/catalog"
	"github.com/stockpilot/inventory-api/internal/dto"
	"github.com/stockpilot/inventory-api/internal/httperr"
	ucProduct "github.com/stockpilot/inventory-api/internal/usecase/product"
)

const productsIndexPath = "/web/products"

// ProductWebHandler serves the server-driven pages: page payloads on GET,
// redirects with flash messages on successful mutation.
type ProductWebHandler struct {
	repo     domain.Repository
	createUC *ucProduct.CreateProduct
	updateUC *ucProduct.UpdateProduct
	getUC    *ucProduct.GetProduct
	listUC   *ucProduct.ListProducts
	deleteUC *ucProduct.DeleteProduct
}

func NewProductWebHandler(
	repo domain.Repository,
	createUC *ucProduct.CreateProduct,
	updateUC *ucProduct.UpdateProduct,
	getUC *ucProduct.GetProduct,
	listUC *ucProduct.ListProducts,
	deleteUC *ucProduct.DeleteProduct,
) *ProductWebHandler {
	return &ProductWebHandler{
		repo:     repo,
		createUC: createUC,
		updateUC: updateUC,
		getUC:    getUC,
		listUC:   listUC,
		deleteUC: deleteUC,
	}
}

// --------- Flash helpers ---------

func flashSuccess(c *gin.Context, message, target string) {
	sess := sessions.Default(c)
	sess.AddFlash(message, "success")
	_ = sess.Save()
	c.Redirect(http.StatusSeeOther, target)
}

func popFlashes(c *gin.Context) []any {
	sess := sessions.Default(c)
	flashes := sess.Flashes("success")
	_ = sess.Save()
	if flashes == nil {
		flashes = []any{}
	}
	return flashes
}

// --------- Pages ---------

func (h *ProductWebHandler) Index(c *gin.Context) {
	user := currentUser(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	out, err := h.listUC.Execute(c.Request.Context(), ucProduct.ListProductsInput{
		Actor: user,
		Page:  page,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_list_products", "Could not list products.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page": "products/Index",
		"props": gin.H{
			"products": gin.H{
				"data":     dto.NewProductList(out.Products),
				"page":     out.Page,
				"per_page": out.PerPage,
				"total":    out.Total,
			},
			"flash": popFlashes(c),
		},
	})
}

func (h *ProductWebHandler) Create(c *gin.Context) {
	user := currentUser(c)

	categories, err := h.repo.ListCategories(c.Request.Context(), user.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_categories", "Could not load form.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page": "products/Create",
		"props": gin.H{
			"categories": categories,
		},
	})
}

func (h *ProductWebHandler) Show(c *gin.Context) {
	user := currentUser(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.NotFound(c, "product_not_found", "Product not found.")
		return
	}

	p, err := h.getUC.Execute(c.Request.Context(), ucProduct.GetProductInput{
		Actor:     user,
		ProductID: id,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page": "products/Show",
		"props": gin.H{
			"product": dto.NewProductDTO(p),
		},
	})
}

func (h *ProductWebHandler) Edit(c *gin.Context) {
	user := currentUser(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.NotFound(c, "product_not_found", "Product not found.")
		return
	}

	p, err := h.getUC.Execute(c.Request.Context(), ucProduct.GetProductInput{
		Actor:     user,
		ProductID: id,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	categories, err := h.repo.ListCategories(c.Request.Context(), user.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_categories", "Could not load form.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page": "products/Edit",
		"props": gin.H{
			"product":    dto.NewProductDTO(p),
			"categories": categories,
		},
	})
}

// --------- Mutations ---------

func (h *ProductWebHandler) Store(c *gin.Context) {
	user := currentUser(c)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	_, err := h.createUC.Execute(c.Request.Context(), ucProduct.CreateProductInput{
		Actor:  user,
		Fields: req.fields(),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	flashSuccess(c, "Product created successfully.", productsIndexPath)
}

func (h *ProductWebHandler) Update(c *gin.Context) {
	user := currentUser(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.NotFound(c, "product_not_found", "Product not found.")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	_, err := h.updateUC.Execute(c.Request.Context(), ucProduct.UpdateProductInput{
		Actor:     user,
		ProductID: id,
		Fields:    req.fields(),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	flashSuccess(c, "Product updated.", productsIndexPath)
}

func (h *ProductWebHandler) Destroy(c *gin.Context) {
	user := currentUser(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.NotFound(c, "product_not_found", "Product not found.")
		return
	}

	err := h.deleteUC.Execute(c.Request.Context(), ucProduct.DeleteProductInput{
		Actor:     user,
		ProductID: id,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	flashSuccess(c, "Product deleted.", productsIndexPath)
}

func (h *ProductWebHandler) writeError(c *gin.Context, err error) {
	if ve, ok := httperr.AsValidation(err); ok {
		httperr.Unprocessable(c, ve)
		return
	}
	if httperr.IsBusiness(err, ucProduct.ErrForbidden) {
		httperr.Forbidden(c, "forbidden", "Unauthorized")
		return
	}
	if httperr.IsBusiness(err, ucProduct.ErrProductNotFound) {
		httperr.NotFound(c, "product_not_found", "Product not found.")
		return
	}
	httperr.Internal(c, "internal_error", "Something went wrong.")
}
