package render

import (
	"fmt"
	"time"

	"github.com/google/renameio/v2"

	"github.com/puigmarti/directesport/internal/catalog"
)

// WriteHTMLFile writes the page atomically: a reader refreshing mid-run
// never sees a partial document. This is the only failure class that may
// fail the whole run.
func WriteHTMLFile(path string, c catalog.Catalog, generatedAt time.Time) error {
	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending page file: %w", err)
	}
	defer pending.Cleanup() //nolint:errcheck // no-op after a successful replace

	if err := WriteHTML(pending, c, generatedAt); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace page file: %w", err)
	}
	return nil
}

// WriteM3UFile writes the playlist atomically.
func WriteM3UFile(path string, c catalog.Catalog, timeOffset time.Duration) error {
	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending playlist file: %w", err)
	}
	defer pending.Cleanup() //nolint:errcheck

	if err := WriteM3U(pending, c, timeOffset); err != nil {
		return fmt.Errorf("render playlist: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace playlist file: %w", err)
	}
	return nil
}
