package testsupport

import (
	"testing"

	"ladle/internal/bookmarks"
	"ladle/internal/config"
)

// MustOpenStore opens the bookmark store for the supplied config and closes it
// when the test finishes.
func MustOpenStore(t testing.TB, cfg *config.Config) *bookmarks.Store {
	t.Helper()

	store, err := bookmarks.Open(cfg.Bookmarks.DBPath)
	if err != nil {
		t.Fatalf("open bookmark store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
