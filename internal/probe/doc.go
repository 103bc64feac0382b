// Package probe reads image headers to report format and dimensions
// without decoding pixel data.
//
// Supported formats are the ones the pipeline admits: PNG, JPEG and WebP.
// Probing is informational; callers log failures and carry on.
package probe
