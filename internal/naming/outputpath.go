package naming

import "path/filepath"

// DestinationPath returns the path src is renamed to: same directory,
// name plus src's original extension as written (".JPG" stays ".JPG").
func DestinationPath(src, name string) string {
	return filepath.Join(filepath.Dir(src), name+filepath.Ext(src))
}
