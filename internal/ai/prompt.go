package ai

import (
	"fmt"
	"strings"

	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
)

// MaxMatches bounds the number of titles a resolver returns.
const MaxMatches = 5

const summaryLimit = 100

const promptHeader = `You are a product search assistant for an online store.
Pick the products from the catalog below that best match the customer's request.
Return at most %d product titles, copied exactly as they appear in the catalog.
Respond with only a JSON object of the form {"matches": ["title", ...]} and nothing else.
If nothing matches, respond with {"matches": []}.

Customer request: %q

Catalog (title | price | type | vendor | tags | summary | availability):
`

// BuildPrompt renders the query and one line per capsule.
func BuildPrompt(query string, catalog []domain.ProductCapsule) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, promptHeader, MaxMatches, query)

	for i := range catalog {
		c := &catalog[i]
		availability := "out of stock"
		if c.Available {
			availability = "in stock"
		}
		fmt.Fprintf(&sb, "- %s | %s %s | %s | %s | %s | %s | %s\n",
			c.Title,
			c.Price.StringFixed(2), c.Currency,
			orDash(c.ProductType),
			orDash(c.Vendor),
			orDash(strings.Join(c.Tags, ", ")),
			orDash(oneLine(domain.Truncate(c.Description, summaryLimit))),
			availability,
		)
	}
	return sb.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
