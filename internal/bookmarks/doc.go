// Package bookmarks persists recipes the user chose to keep.
//
// Bookmarks are deliberate, user-initiated saves and are independent of chat
// history, which is never persisted. Recipes are stored in canonical form with
// ingredients and steps as JSON columns; food names are unique and re-saving
// one replaces the older copy. A file lock beside the database keeps
// concurrent ladle invocations from interleaving writes.
package bookmarks
