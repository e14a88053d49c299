package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/weiawesome/wes-storefront-gateway/internal/shopify"
	"github.com/weiawesome/wes-storefront-gateway/pkg/response"
)

// Upstream error codes.
const (
	CodeUpstreamRejected   = "UPSTREAM_REJECTED"
	CodeUpstreamError      = "UPSTREAM_ERROR"
	CodeUpstreamGraphQL    = "UPSTREAM_GRAPHQL_ERROR"
	CodeUpstreamValidation = "UPSTREAM_VALIDATION"
	CodeInternalError      = "INTERNAL_ERROR"
)

// upstreamError writes the response for an Admin API failure and reports
// whether err was one. Upstream bodies and messages are passed through
// verbatim in details.
func upstreamError(c *gin.Context, err error) bool {
	var (
		userErrs *shopify.UserErrorsError
		gqlErr   *shopify.GraphQLError
		apiErr   *shopify.APIError
		urlErr   *url.Error
	)

	switch {
	case errors.As(err, &userErrs):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, CodeUpstreamValidation,
			"commerce platform rejected the input", userErrs.UserErrors)
	case errors.As(err, &gqlErr):
		response.ErrorWithDetails(c, http.StatusBadGateway, CodeUpstreamGraphQL,
			"commerce platform query failed", gqlErr.Messages)
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			response.ErrorWithDetails(c, apiErr.StatusCode, CodeUpstreamRejected,
				"commerce platform rejected the request", upstreamBody(apiErr.Body))
		} else {
			response.ErrorWithDetails(c, http.StatusBadGateway, CodeUpstreamError,
				"commerce platform request failed", upstreamBody(apiErr.Body))
		}
	case errors.As(err, &urlErr):
		response.ErrorWithDetails(c, http.StatusBadGateway, CodeUpstreamError,
			"commerce platform unreachable", err.Error())
	default:
		return false
	}
	return true
}

// upstreamBody embeds a JSON body as-is and anything else as a string.
func upstreamBody(body string) interface{} {
	if json.Valid([]byte(body)) {
		return json.RawMessage(body)
	}
	return body
}
