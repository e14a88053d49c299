package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
	"github.com/weiawesome/wes-storefront-gateway/internal/service"
	"github.com/weiawesome/wes-storefront-gateway/pkg/response"
)

// CreateCustomer handles customer registration.
func (h *Handler) CreateCustomer(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}

	customer, err := h.customerService.Create(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrCustomerExists) {
			response.Conflict(c, "customer already exists")
			return
		}
		internalError(c, err, "failed to create customer")
		return
	}

	response.Created(c, customer)
}

// GetCustomer returns a customer, with favorite lists when include=lists.
func (h *Handler) GetCustomer(c *gin.Context) {
	ctx := c.Request.Context()
	includeLists := c.Query("include") == "lists"

	detail, err := h.customerService.Get(ctx, c.Param("id"), includeLists)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			response.NotFound(c, "customer not found")
			return
		}
		if upstreamError(c, err) {
			return
		}
		internalError(c, err, "failed to get customer")
		return
	}

	response.Success(c, detail)
}

// UpdateCustomer applies a partial update.
func (h *Handler) UpdateCustomer(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}

	customer, err := h.customerService.Update(ctx, c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyUpdate):
			response.BadRequest(c, CodeInvalidBody, "no fields to update")
		case errors.Is(err, service.ErrCustomerNotFound):
			response.NotFound(c, "customer not found")
		default:
			internalError(c, err, "failed to update customer")
		}
		return
	}

	response.Success(c, customer)
}

// DeleteCustomer removes a customer record.
func (h *Handler) DeleteCustomer(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.customerService.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			response.NotFound(c, "customer not found")
			return
		}
		internalError(c, err, "failed to delete customer")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListCustomers lists customers with filtering, sorting and cursor
// pagination.
func (h *Handler) ListCustomers(c *gin.Context) {
	ctx := c.Request.Context()

	var q domain.ListCustomersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		invalidInput(c, err)
		return
	}

	page, err := h.customerService.List(ctx, &q)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCursor) {
			response.BadRequest(c, CodeInvalidCursor, "start_after does not reference an existing customer")
			return
		}
		internalError(c, err, "failed to list customers")
		return
	}

	c.Header("X-Result-Count", strconv.Itoa(len(page.Customers)))
	response.Success(c, page)
}
