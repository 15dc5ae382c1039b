package terminal

import (
	"os"
	"strconv"
)

// Size holds terminal dimensions in cells and, when the terminal reports
// them, pixels per cell.
type Size struct {
	Cols  int
	Rows  int
	CellW int // 0 if unknown
	CellH int // 0 if unknown
}

// GetSize returns the size of the terminal attached to stdout or stderr,
// then COLUMNS/LINES, then 80x24.
func GetSize() Size {
	for _, fd := range []uintptr{os.Stdout.Fd(), os.Stderr.Fd()} {
		if s := getSizeFromIoctl(fd); s.Cols > 0 && s.Rows > 0 {
			return s
		}
	}
	return getSizeFromEnv()
}

func getSizeFromEnv() Size {
	return Size{Cols: envInt("COLUMNS", 80), Rows: envInt("LINES", 24)}
}

// envInt reads a positive integer from the environment.
func envInt(name string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(name))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
