// Package directory is the read side of the identity provider: a paginated,
// prefix-filterable listing of usernames. The provider itself is an external
// system; this package only defines the consumed interface plus a static
// implementation for development and tests.
package directory

import "context"

// Page is one page of usernames. NextToken is empty when the listing is
// exhausted.
type Page struct {
	Usernames []string
	NextToken string
}

type Client interface {
	// ListUsers returns up to limit usernames, optionally restricted to
	// those starting with prefix. pageToken resumes a previous listing.
	ListUsers(ctx context.Context, prefix string, limit int, pageToken string) (Page, error)
}
