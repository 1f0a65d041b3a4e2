// Package catalogue indexes catalogue roots by type tag.
//
// Entries are non-owning references keyed by a generated UUID. Decay
// products stay owned by their parents and are reached through the roots.
package catalogue
