// internal/emby/directory.go
package emby

import (
	"context"
	"log/slog"
)

// Lister is the slice of the client the directory needs.
type Lister interface {
	MediaFolders(ctx context.Context) ([]MediaLibrary, error)
}

// Directory resolves the libraries known to the Emby server. It exists to
// attach human-readable names; an empty result means "names unknown", never
// "no libraries exist".
type Directory struct {
	api    Lister
	logger *slog.Logger
}

// NewDirectory creates a library directory backed by the given client.
func NewDirectory(api Lister, logger *slog.Logger) *Directory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Directory{api: api, logger: logger}
}

// List fetches the current library listing. On any failure it logs and
// returns an empty slice: name resolution is cosmetic and must never block
// a refresh.
func (d *Directory) List(ctx context.Context) []MediaLibrary {
	if d.api == nil {
		return nil
	}
	libs, err := d.api.MediaFolders(ctx)
	if err != nil {
		d.logger.Warn("library listing unavailable", "error", err)
		return nil
	}
	return libs
}

// Resolve finds a library by exact id, exact normalized name, or fuzzy name
// match, in that order. Used by the CLI and API so users can say "Movies"
// instead of a library id.
func (d *Directory) Resolve(ctx context.Context, idOrName string) (MediaLibrary, bool) {
	libs := d.List(ctx)

	for _, lib := range libs {
		if lib.ID == idOrName {
			return lib, true
		}
	}

	want := normalizeName(idOrName)
	for _, lib := range libs {
		if normalizeName(lib.Name) == want {
			return lib, true
		}
	}

	if i, score := bestNameMatch(idOrName, libs); i >= 0 && score >= nameMatchThreshold {
		return libs[i], true
	}

	return MediaLibrary{}, false
}
