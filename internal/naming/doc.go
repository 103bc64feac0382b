// Package naming turns descriptions into filenames and renames files
// without ever overwriting an existing entry.
//
// [Transform] is pure: it splits text into words, applies a
// [config.CasingFormat], then trims and caps the result. [Renamer] owns the
// only serialized step of a run: the existence check plus rename pair.
package naming
