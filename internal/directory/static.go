package directory

import (
	"context"
	"sort"
	"strings"

	"taskhub/backend/internal/pagination"
)

const defaultUserPageSize = 10

// StaticClient serves a fixed user list from configuration. It stands in for
// the real identity provider in development and keeps the listing contract
// testable without one.
type StaticClient struct {
	usernames []string
}

func NewStaticClient(usernames []string) *StaticClient {
	sorted := make([]string, len(usernames))
	copy(sorted, usernames)
	sort.Strings(sorted)
	return &StaticClient{usernames: sorted}
}

func (c *StaticClient) ListUsers(ctx context.Context, prefix string, limit int, pageToken string) (Page, error) {
	if limit <= 0 {
		limit = defaultUserPageSize
	}

	after := ""
	if pageToken != "" {
		cursor, err := pagination.Decode(pageToken)
		if err != nil {
			return Page{}, err
		}
		after = cursor.LastID
	}

	var matched []string
	for _, name := range c.usernames {
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		if after != "" && name <= after {
			continue
		}
		matched = append(matched, name)
		if len(matched) > limit {
			break
		}
	}

	page := Page{Usernames: matched}
	if len(matched) > limit {
		page.Usernames = matched[:limit]
		page.NextToken = pagination.Encode(pagination.Cursor{LastID: matched[limit-1]})
	}
	return page, nil
}
