// Package ui provides the chrome around the main buffer pane: header,
// footer, and the sidebar listing open buffers.
package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidebarWidth is the fixed width of the buffer list
	SidebarWidth = 24

	// DefaultWrapWidth is the fallback width when the terminal size is unknown
	DefaultWrapWidth = 80
)
