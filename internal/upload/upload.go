// Package upload provides the blob-upload collaborator used for chat
// attachments and profile assets.
package upload

import "context"

// File is the value object handed to an Uploader: raw bytes plus the
// metadata needed to store and serve them.
type File struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Uploader stores a blob and returns a public URL for it.
type Uploader interface {
	// Upload stores the file under <category>/<ownerPath>/ and returns the
	// URL it is reachable at.
	Upload(ctx context.Context, file File, category, ownerPath string) (string, error)
}
