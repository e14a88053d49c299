package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
	"github.com/weiawesome/wes-storefront-gateway/internal/service"
	"github.com/weiawesome/wes-storefront-gateway/pkg/log"
	"github.com/weiawesome/wes-storefront-gateway/pkg/response"
)

// favoriteError maps favorite list failures.
func favoriteError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrCustomerNotFound):
		response.NotFound(c, "customer not found")
	case errors.Is(err, service.ErrListNotFound):
		response.Error(c, http.StatusNotFound, "LIST_NOT_FOUND", "favorite list not found")
	case errors.Is(err, service.ErrInvalidListName):
		response.BadRequest(c, CodeMissingField, "name is required")
	case upstreamError(c, err):
	default:
		internalError(c, err, msg)
	}
}

// GetLists returns all favorite lists of a customer.
func (h *Handler) GetLists(c *gin.Context) {
	lists, err := h.favoriteService.GetLists(c.Request.Context(), c.Param("id"))
	if err != nil {
		favoriteError(c, err, "failed to get favorite lists")
		return
	}
	response.Success(c, lists)
}

// CreateList creates a favorite list. Creating an existing name returns the
// existing list.
func (h *Handler) CreateList(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}

	list, err := h.favoriteService.CreateList(ctx, c.Param("id"), req.Name)
	if err != nil {
		favoriteError(c, err, "failed to create favorite list")
		return
	}
	response.Success(c, list)
}

// DeleteList deletes a favorite list.
func (h *Handler) DeleteList(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.favoriteService.DeleteList(ctx, c.Param("id"), c.Param("name")); err != nil {
		favoriteError(c, err, "failed to delete favorite list")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListProducts returns the catalog products of a favorite list.
func (h *Handler) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()

	products, err := h.favoriteService.ListProducts(ctx, c.Param("id"), c.Param("name"))
	if err != nil {
		favoriteError(c, err, "failed to list favorite products")
		return
	}
	response.Success(c, products)
}

// AddListProduct adds a product to a favorite list.
func (h *Handler) AddListProduct(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.AddListProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}

	list, err := h.favoriteService.AddProduct(ctx, c.Param("id"), c.Param("name"), req.ProductID)
	if err != nil {
		favoriteError(c, err, "failed to add product to favorite list")
		return
	}

	l := log.Ctx(ctx)
	l.Debug().Str(log.FieldListName, list.Name).Str(log.FieldProductID, req.ProductID).Msg("favorite product added")
	response.Success(c, list)
}

// RemoveListProduct removes a product from a favorite list.
func (h *Handler) RemoveListProduct(c *gin.Context) {
	ctx := c.Request.Context()

	list, err := h.favoriteService.RemoveProduct(ctx, c.Param("id"), c.Param("name"), c.Param("productId"))
	if err != nil {
		favoriteError(c, err, "failed to remove product from favorite list")
		return
	}
	response.Success(c, list)
}
