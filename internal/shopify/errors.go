package shopify

import (
	"fmt"
	"strings"

	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
)

// APIError is a non-2xx HTTP answer from the Admin API. Body holds the raw
// upstream response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("admin api status %d: %s", e.StatusCode, e.Body)
}

// GraphQLError carries the top-level errors array of a GraphQL response.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "admin graphql error: " + strings.Join(e.Messages, "; ")
}

// UserErrorsError carries the userErrors list of a mutation payload. It is
// reported even when the transport and the GraphQL layer succeeded.
type UserErrorsError struct {
	UserErrors []domain.UserError
}

func (e *UserErrorsError) Error() string {
	msgs := make([]string, 0, len(e.UserErrors))
	for _, ue := range e.UserErrors {
		if len(ue.Field) > 0 {
			msgs = append(msgs, strings.Join(ue.Field, ".")+": "+ue.Message)
		} else {
			msgs = append(msgs, ue.Message)
		}
	}
	return "admin user errors: " + strings.Join(msgs, "; ")
}
