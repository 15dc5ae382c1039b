//go:build unix

package terminal

import "golang.org/x/sys/unix"

func getSizeFromIoctl(fd uintptr) Size {
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil {
		return Size{}
	}
	s := Size{Cols: int(ws.Col), Rows: int(ws.Row)}
	if ws.Xpixel > 0 && s.Cols > 0 {
		s.CellW = int(ws.Xpixel) / s.Cols
	}
	if ws.Ypixel > 0 && s.Rows > 0 {
		s.CellH = int(ws.Ypixel) / s.Rows
	}
	return s
}
