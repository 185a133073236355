package events

import (
	"context"

	"github.com/testersconnect/site/pkg/pagination"
	"github.com/testersconnect/site/pkg/uploads"
)

// System defines the public catalog reads and the admin mutations for events.
type System interface {
	Page(ctx context.Context, view View, page pagination.PageRequest) (*pagination.PageResult[Event], error)
	Sidebar(ctx context.Context, view View, limit int) ([]Summary, error)
	Published(ctx context.Context) ([]Event, error)
	Find(ctx context.Context, slug string) (*Event, error)

	List(ctx context.Context) ([]Event, error)
	Create(ctx context.Context, cmd CreateCommand) (*Event, error)
	Update(ctx context.Context, slug string, patch Patch) (*Event, error)
	Delete(ctx context.Context, slug string) error
	UploadCover(ctx context.Context, slug string, file *uploads.File) (*CoverUpload, error)
}
