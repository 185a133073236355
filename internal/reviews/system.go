package reviews

import "context"

// System defines review listing and submission.
type System interface {
	List(ctx context.Context, resourceID string) ([]Review, error)
	Create(ctx context.Context, cmd CreateCommand) (*Review, error)
}
