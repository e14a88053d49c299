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

// metafieldError maps metafield failures.
func metafieldError(c *gin.Context, err error, msg string) {
	if errors.Is(err, service.ErrInvalidOwner) {
		response.BadRequest(c, CodeInvalidOwner, "owner must be customers or products")
		return
	}
	if upstreamError(c, err) {
		l := log.Ctx(c.Request.Context())
		l.Warn().Err(err).
			Str(log.FieldOwner, c.Param("owner")).
			Str(log.FieldOwnerID, c.Param("ownerId")).
			Msg(msg)
		return
	}
	internalError(c, err, msg)
}

// ListMetafields lists the metafields of an owner, optionally filtered by
// ?namespace=.
func (h *Handler) ListMetafields(c *gin.Context) {
	metafields, err := h.metafieldService.List(c.Request.Context(), c.Param("owner"), c.Param("ownerId"), c.Query("namespace"))
	if err != nil {
		metafieldError(c, err, "failed to list metafields")
		return
	}
	response.Success(c, metafields)
}

// CreateMetafield creates a metafield over REST.
func (h *Handler) CreateMetafield(c *gin.Context) {
	var in domain.MetafieldInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidInput(c, err)
		return
	}

	m, err := h.metafieldService.Create(c.Request.Context(), c.Param("owner"), c.Param("ownerId"), &in)
	if err != nil {
		metafieldError(c, err, "failed to create metafield")
		return
	}
	response.Created(c, m)
}

// SetMetafield upserts a metafield through GraphQL.
func (h *Handler) SetMetafield(c *gin.Context) {
	var in domain.MetafieldInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidInput(c, err)
		return
	}

	m, err := h.metafieldService.Set(c.Request.Context(), c.Param("owner"), c.Param("ownerId"), &in)
	if err != nil {
		metafieldError(c, err, "failed to set metafield")
		return
	}
	response.Success(c, m)
}

// UpdateMetafield updates a metafield over REST.
func (h *Handler) UpdateMetafield(c *gin.Context) {
	var in domain.MetafieldUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidInput(c, err)
		return
	}

	m, err := h.metafieldService.Update(c.Request.Context(), c.Param("owner"), c.Param("ownerId"), c.Param("metafieldId"), &in)
	if err != nil {
		metafieldError(c, err, "failed to update metafield")
		return
	}
	response.Success(c, m)
}

// DeleteMetafield deletes a metafield over REST.
func (h *Handler) DeleteMetafield(c *gin.Context) {
	err := h.metafieldService.Delete(c.Request.Context(), c.Param("owner"), c.Param("ownerId"), c.Param("metafieldId"))
	if err != nil {
		metafieldError(c, err, "failed to delete metafield")
		return
	}
	c.Status(http.StatusNoContent)
}
