package terminal

import (
	"os"
	"strings"
)

// GraphicsProtocol identifies how the pet artwork is drawn.
type GraphicsProtocol int

const (
	ProtocolNone       GraphicsProtocol = iota // text sprite only
	ProtocolKitty                              // kitty graphics protocol
	ProtocolITerm2                             // iTerm2 inline images
	ProtocolSixel                              // DEC sixel
	ProtocolHalfblocks                         // Unicode half blocks with 24-bit color
)

var protocolNames = [...]string{
	ProtocolNone:       "none",
	ProtocolKitty:      "kitty",
	ProtocolITerm2:     "iterm2",
	ProtocolSixel:      "sixel",
	ProtocolHalfblocks: "halfblocks",
}

// String returns the protocol name.
func (p GraphicsProtocol) String() string {
	if p >= 0 && int(p) < len(protocolNames) {
		return protocolNames[p]
	}
	return "unknown"
}

// SelectProtocol returns the best protocol for term. SSH sessions fall back
// to half blocks because image protocols are unreliable over the wire.
func SelectProtocol(term Terminal) GraphicsProtocol {
	if isSSH() {
		return ProtocolHalfblocks
	}
	switch term {
	case TermGhostty, TermKitty, TermWezTerm:
		return ProtocolKitty
	case TermITerm2:
		return ProtocolITerm2
	default:
		return ProtocolHalfblocks
	}
}

// SelectProtocolWithOverride honors a configured protocol name. Empty,
// "auto", or unrecognized values fall back to detection.
func SelectProtocolWithOverride(term Terminal, override string) GraphicsProtocol {
	switch strings.ToLower(override) {
	case "kitty":
		return ProtocolKitty
	case "iterm2":
		return ProtocolITerm2
	case "sixel":
		return ProtocolSixel
	case "halfblocks", "half-blocks", "unicode":
		return ProtocolHalfblocks
	case "none", "off", "disabled":
		return ProtocolNone
	default:
		return SelectProtocol(term)
	}
}

func isSSH() bool {
	return os.Getenv("SSH_TTY") != "" ||
		os.Getenv("SSH_CONNECTION") != "" ||
		os.Getenv("SSH_CLIENT") != ""
}
