package display

import (
	"fmt"
	"io"

	"github.com/backmassage/picname/internal/term"
)

// PrintBanner prints the ASCII art banner to w; uses Magenta if colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Magenta)
	fmt.Fprint(w, `       _
 _ __ (_) ___ _ __   __ _ _ __ ___   ___
| '_ \| |/ __| '_ \ / _`+"`"+` | '_ `+"`"+` _ \ / _ \
| |_) | | (__| | | | (_| | | | | | |  __/
| .__/|_|\___|_| |_|\__,_|_| |_| |_|\___|
|_|
`)
	if term.Enabled() {
		fmt.Fprintln(w, term.NC)
	}
}
