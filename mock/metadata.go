package mock

import "github.com/legiblehq/legible"

var _ legible.MetadataReader = (*MetadataReader)(nil)

// MetadataReader is a mock implementation of legible.MetadataReader.
type MetadataReader struct {
	ReadMetadataFn func(html string) (*legible.PageMetadata, error)
}

func (r *MetadataReader) ReadMetadata(html string) (*legible.PageMetadata, error) {
	return r.ReadMetadataFn(html)
}
