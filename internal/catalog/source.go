package catalog

import "context"

// Source provides read access to catalog reference data. Catalogs may be
// edited externally between calls, so consumers load fresh documents per
// computation instead of caching them.
type Source interface {
	// Load returns the catalog document for kind. A missing document is
	// returned as an empty one; a document that fails to parse is an error.
	Load(ctx context.Context, kind Kind) (*Document, error)

	// Requirements returns the per-major degree requirement configuration.
	Requirements(ctx context.Context) (*RequirementsDocument, error)

	// Tags returns the per-major dimension name seeds.
	Tags(ctx context.Context) (*TagsDocument, error)
}
