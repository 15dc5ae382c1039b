//go:build !unix

package terminal

import "github.com/charmbracelet/x/term"

// Cell pixel sizes are not reported here.
func getSizeFromIoctl(fd uintptr) Size {
	w, h, err := term.GetSize(fd)
	if err != nil {
		return Size{}
	}
	return Size{Cols: w, Rows: h}
}
