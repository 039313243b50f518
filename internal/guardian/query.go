package guardian

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultEndpoint is the Guardian content search API.
const DefaultEndpoint = "https://content.guardianapis.com/search"

const (
	paramKeyword = "q"
	paramFields  = "show-fields"
	paramOrderBy = "order-by"
	paramAPIKey  = "api-key"

	bylineField = "byline"
)

// SortOrder is the order-by token understood by the search API.
type SortOrder string

const (
	OrderNewest    SortOrder = "newest"
	OrderOldest    SortOrder = "oldest"
	OrderRelevance SortOrder = "relevance"
)

// SortOrders lists the valid orders in the sequence the UI cycles them.
var SortOrders = []SortOrder{OrderNewest, OrderOldest, OrderRelevance}

func ParseSortOrder(s string) (SortOrder, error) {
	for _, o := range SortOrders {
		if string(o) == s {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown sort order %q (valid: newest, oldest, relevance)", s)
}

// Next returns the order following o, wrapping around.
func (o SortOrder) Next() SortOrder {
	for i, v := range SortOrders {
		if v == o {
			return SortOrders[(i+1)%len(SortOrders)]
		}
	}
	return OrderNewest
}

// Query holds the inputs of a single search. Keyword is kept raw and only
// sanitized when the URL is built.
type Query struct {
	Keyword string
	OrderBy SortOrder
	APIKey  string
}

// SanitizeKeyword drops everything outside [A-Za-z0-9] and lowercases the rest.
func SanitizeKeyword(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		}
	}
	return b.String()
}

// BuildURL appends the search parameters to base. Parameter order is fixed:
// keyword, fields, order, key. Any query already on base is kept in front.
func BuildURL(base string, q Query) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint: %w", err)
	}

	params := [][2]string{
		{paramKeyword, SanitizeKeyword(q.Keyword)},
		{paramFields, bylineField},
		{paramOrderBy, string(q.OrderBy)},
		{paramAPIKey, q.APIKey},
	}

	parts := make([]string, 0, len(params)+1)
	if u.RawQuery != "" {
		parts = append(parts, u.RawQuery)
	}
	for _, p := range params {
		parts = append(parts, url.QueryEscape(p[0])+"="+url.QueryEscape(p[1]))
	}
	u.RawQuery = strings.Join(parts, "&")
	u.ForceQuery = false

	return u.String(), nil
}
