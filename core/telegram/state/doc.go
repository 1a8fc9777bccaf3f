// Package state persists per-user dialog sessions as opaque bytes with an
// expiry. Callers own the encoding; backends only store, expire and delete.
package state
