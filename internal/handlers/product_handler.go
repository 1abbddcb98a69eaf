package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stockpilot/inventory-api/internal/dto"
	"github.com/stockpilot/inventory-api/internal/httperr"
	"github.com/stockpilot/inventory-api/internal/models"
	ucProduct "github.com/stockpilot/inventory-api/internal/usecase/product"
)

type ProductHandler struct {
	createUC *ucProduct.CreateProduct
	updateUC *ucProduct.UpdateProduct
	getUC    *ucProduct.GetProduct
	listUC   *ucProduct.ListProducts
	deleteUC *ucProduct.DeleteProduct
}

func NewProductHandler(
	createUC *ucProduct.CreateProduct,
	updateUC *ucProduct.UpdateProduct,
	getUC *ucProduct.GetProduct,
	listUC *ucProduct.ListProducts,
	deleteUC *ucProduct.DeleteProduct,
) *ProductHandler {
	return &ProductHandler{
		createUC: createUC,
		updateUC: updateUC,
		getUC:    getUC,
		listUC:   listUC,
		deleteUC: deleteUC,
	}
}

// --------- Requests ---------

type ProductRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Stock       int            `json:"stock"`
	CategoryIDs []uint         `json:"category_ids"`
	Image       string         `json:"image"`
	Gallery     models.Gallery `json:"gallery"`
}

func (r ProductRequest) fields() ucProduct.Fields {
	return ucProduct.Fields{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		CategoryIDs: r.CategoryIDs,
		Image:       r.Image,
		Gallery:     r.Gallery,
	}
}

// --------- Handlers ---------

func (h *ProductHandler) List(c *gin.Context) {
	user := currentUser(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	out, err := h.listUC.Execute(c.Request.Context(), ucProduct.ListProductsInput{
		Actor:   user,
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_list_products", "Could not list products.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":     out.Page,
		"per_page": out.PerPage,
		"total":    out.Total,
		"products": dto.NewProductList(out.Products),
	})
}

func (h *ProductHandler) Create(c *gin.Context) {
	user := currentUser(c)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	p, err := h.createUC.Execute(c.Request.Context(), ucProduct.CreateProductInput{
		Actor:  user,
		Fields: req.fields(),
	})
	if err != nil {
		h.writeError(c, err, "failed_to_create_product")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully.",
		"product": dto.NewProductDTO(p),
	})
}

func (h *ProductHandler) Show(c *gin.Context) {
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
		h.writeError(c, err, "failed_to_get_product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": dto.NewProductDTO(p)})
}

func (h *ProductHandler) Update(c *gin.Context) {
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

	p, err := h.updateUC.Execute(c.Request.Context(), ucProduct.UpdateProductInput{
		Actor:     user,
		ProductID: id,
		Fields:    req.fields(),
	})
	if err != nil {
		h.writeError(c, err, "failed_to_update_product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully.",
		"product": dto.NewProductDTO(p),
	})
}

func (h *ProductHandler) Delete(c *gin.Context) {
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
		h.writeError(c, err, "failed_to_delete_product")
		return
	}

	c.Status(http.StatusNoContent)
}

// writeError translates use case failures to the wire: per-field bags to
// 422, ownership failures to 403, missing rows to 404, the rest to 500.
func (h *ProductHandler) writeError(c *gin.Context, err error, code string) {
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
	httperr.Internal(c, code, "Something went wrong.")
}
