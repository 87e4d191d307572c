// Package handlers contains HTTP handlers for the read-only posts API.
//
// Handlers read through a posts.Source, so they work the same over a plain
// Loader (every request re-reads the directory) and over a Cache. When the
// source can report a content signature, list and detail responses carry an
// ETag and honour If-None-Match.
package handlers
