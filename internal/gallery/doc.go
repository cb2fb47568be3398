// Package gallery implements the virtual-folder image model on top of a flat
// object store.
//
// Every image is stored under the key "<folder>/<id>" where id is a random
// UUID with a ".jpeg" extension. Folders are not stored: they are the common
// prefixes of those keys, plus one synthetic default folder which is always
// listed even when it holds nothing.
//
// Listings are single bounded backend calls. The continuation token returned
// by the backend is handed to the caller unchanged and must be sent back
// verbatim to fetch the next page; nothing is retained between calls.
package gallery
