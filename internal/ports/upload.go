package ports

import "context"

// ChannelUploadPort pushes built package artifacts into a channel's
// platform subdirectory.
type ChannelUploadPort interface {
	Upload(ctx context.Context, subdir string) error
}
