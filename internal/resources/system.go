package resources

import "context"

// System defines the resource library reads and the admin create flow.
type System interface {
	Explore(ctx context.Context, filter Filter) (*Listing, error)
	Find(ctx context.Context, slug string) (*Resource, error)
	List(ctx context.Context) ([]Resource, error)
	Create(ctx context.Context, cmd CreateCommand) (*Resource, error)
}

// Listing is a filtered view of the published library with the facets of
// the unfiltered set.
type Listing struct {
	Items  []Resource `json:"items"`
	Total  int        `json:"total"`
	Facets Facets     `json:"facets"`
}
