package terminal

// Capabilities summarizes what the current terminal can draw.
type Capabilities struct {
	Term     Terminal
	Protocol GraphicsProtocol
	Size     Size
}

// DetectCapabilities inspects the environment and window. protocolOverride
// is the configured image protocol ("auto" or empty to detect).
func DetectCapabilities(protocolOverride string) Capabilities {
	term := Detect()
	return Capabilities{
		Term:     term,
		Protocol: SelectProtocolWithOverride(term, protocolOverride),
		Size:     GetSize(),
	}
}
