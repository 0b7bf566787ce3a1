package main

import (
	"context"
	"testing"

	"ladle/internal/bookmarks"
	"ladle/internal/config"
	"ladle/internal/recipes"
)

// seedBookmark writes a bookmark directly through the store, releasing the
// file lock before the CLI opens the same database.
func seedBookmark(t *testing.T, configPath, name string) {
	t.Helper()
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	store, err := bookmarks.Open(cfg.Bookmarks.DBPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	err = store.Add(context.Background(), recipes.Recipe{
		Source:   recipes.SourceText,
		FoodName: name,
		Steps:    []string{"Cook."},
	})
	if err != nil {
		t.Fatalf("seed bookmark: %v", err)
	}
}

func TestBookmarksListEmpty(t *testing.T) {
	configPath := writeCLIConfig(t, "http://127.0.0.1:1")

	out, _, err := runCLI(t, configPath, "bookmarks", "list")
	if err != nil {
		t.Fatalf("bookmarks list: %v", err)
	}
	requireContains(t, out, "No bookmarks yet")
}

func TestBookmarksListAndRemove(t *testing.T) {
	configPath := writeCLIConfig(t, "http://127.0.0.1:1")
	seedBookmark(t, configPath, "김치찌개")

	out, _, err := runCLI(t, configPath, "bookmarks", "list")
	if err != nil {
		t.Fatalf("bookmarks list: %v", err)
	}
	requireContains(t, out, "김치찌개")
	requireContains(t, out, "Recipe")

	out, _, err = runCLI(t, configPath, "bookmarks", "remove", "김치찌개")
	if err != nil {
		t.Fatalf("bookmarks remove: %v", err)
	}
	requireContains(t, out, `Removed "김치찌개"`)

	if _, _, err := runCLI(t, configPath, "bookmarks", "remove", "김치찌개"); err == nil {
		t.Fatal("expected removing a missing bookmark to fail")
	}
}

func TestBookmarksListJSON(t *testing.T) {
	configPath := writeCLIConfig(t, "http://127.0.0.1:1")
	seedBookmark(t, configPath, "된장찌개")

	out, _, err := runCLI(t, configPath, "--json", "bookmarks", "list")
	if err != nil {
		t.Fatalf("bookmarks list --json: %v", err)
	}
	requireContains(t, out, `"food_name": "된장찌개"`)
}
