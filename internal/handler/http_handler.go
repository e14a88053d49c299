package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
	"github.com/weiawesome/wes-storefront-gateway/internal/service"
	"github.com/weiawesome/wes-storefront-gateway/pkg/log"
	"github.com/weiawesome/wes-storefront-gateway/pkg/response"
)

// Handler handles HTTP requests for the storefront gateway.
type Handler struct {
	searchService    service.SearchService
	customerService  service.CustomerService
	metafieldService service.MetafieldService
	favoriteService  service.FavoriteService
	searchLimiter    gin.HandlerFunc
}

// NewHandler creates a new HTTP handler. searchLimiter guards the search
// routes and may be nil.
func NewHandler(
	searchService service.SearchService,
	customerService service.CustomerService,
	metafieldService service.MetafieldService,
	favoriteService service.FavoriteService,
	searchLimiter gin.HandlerFunc,
) *Handler {
	registerValidators()
	return &Handler{
		searchService:    searchService,
		customerService:  customerService,
		metafieldService: metafieldService,
		favoriteService:  favoriteService,
		searchLimiter:    searchLimiter,
	}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	search := api.Group("/search")
	{
		limited := search.Group("")
		if h.searchLimiter != nil {
			limited.Use(h.searchLimiter)
		}
		limited.GET("", h.Search)
		limited.POST("", h.Search)
		search.GET("/cache", h.SearchCacheStats)
	}

	customers := api.Group("/customers", tagCustomer)
	{
		customers.POST("", h.CreateCustomer)
		customers.GET("", h.ListCustomers)
		customers.GET("/:id", h.GetCustomer)
		customers.PATCH("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)

		customers.GET("/:id/lists", h.GetLists)
		customers.POST("/:id/lists", h.CreateList)
		customers.DELETE("/:id/lists/:name", h.DeleteList)
		customers.GET("/:id/lists/:name/products", h.ListProducts)
		customers.POST("/:id/lists/:name/products", h.AddListProduct)
		customers.DELETE("/:id/lists/:name/products/:productId", h.RemoveListProduct)
	}

	metafields := api.Group("/metafields/:owner/:ownerId")
	{
		metafields.GET("", h.ListMetafields)
		metafields.POST("", h.CreateMetafield)
		metafields.POST("/set", h.SetMetafield)
		metafields.PUT("/:metafieldId", h.UpdateMetafield)
		metafields.DELETE("/:metafieldId", h.DeleteMetafield)
	}
}

// Search handles AI product search. The query comes from ?q= or, for POST,
// from the JSON body.
func (h *Handler) Search(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.SearchRequest
	var err error
	if c.Request.Method == http.MethodPost {
		err = c.ShouldBindJSON(&req)
		if errors.Is(err, io.EOF) {
			err = c.ShouldBindQuery(&req)
		}
	} else {
		err = c.ShouldBindQuery(&req)
	}
	if err != nil {
		l.Warn().Err(err).Msg("invalid search request")
		response.BadRequest(c, CodeInvalidBody, "request body is malformed")
		return
	}

	result, err := h.searchService.Search(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyQuery):
			response.BadRequest(c, CodeMissingQuery, "query is required")
		case errors.Is(err, service.ErrSearchRateLimited):
			l.Warn().Err(err).Str(log.FieldQuery, req.Query).Msg("search rate limited by ai provider")
			response.ServiceUnavailable(c, "AI_RATE_LIMITED", "search is temporarily unavailable, please retry later")
		default:
			l.Error().Err(err).Str(log.FieldQuery, req.Query).Msg("search failed")
			response.InternalError(c, "SEARCH_FAILED", "search failed", err.Error())
		}
		return
	}

	response.Success(c, result)
}

// SearchCacheStats reports the state of the search caches.
func (h *Handler) SearchCacheStats(c *gin.Context) {
	response.Success(c, h.searchService.CacheStats(c.Request.Context()))
}

// tagCustomer adds the customer id to the request logger.
func tagCustomer(c *gin.Context) {
	if id := c.Param("id"); id != "" {
		c.Request = c.Request.WithContext(log.WithStr(c.Request.Context(), log.FieldCustomerID, id))
	}
	c.Next()
}

// internalError logs err and answers 500 with its message as details.
func internalError(c *gin.Context, err error, msg string) {
	l := log.Ctx(c.Request.Context())
	l.Error().Err(err).Msg(msg)
	response.InternalError(c, CodeInternalError, msg, err.Error())
}

// invalidInput answers 400 for a binding failure.
func invalidInput(c *gin.Context, err error) {
	code, msg, details := bindingError(err)
	l := log.Ctx(c.Request.Context())
	l.Warn().Err(err).Str("code", code).Msg("invalid request")
	if details == nil {
		response.BadRequest(c, code, msg)
		return
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, code, msg, details)
}
