// Package theme defines the color palettes used throughout the UI. The active
// theme is owned by the root model and passed read-only into view code; nothing
// in this package is mutable at runtime.
package theme

import (
	"hash/fnv"
	"sort"
)

// Theme defines a complete color palette for the application.
// Each theme provides colors for all UI elements, ensuring visual consistency.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (used for focus, highlights, headers)
	Primary string
	// Secondary is the secondary accent color
	Secondary string

	// Background colors
	Bg         string // Main background
	BgSelected string // Selected item background (defaults to Primary if empty)

	// Text colors
	Text        string // Primary text
	TextMuted   string // Secondary/muted text
	TextInverse string // Text on colored backgrounds

	// Message colors
	Timestamp string // Message timestamps
	Action    string // /me action messages
	Highlight string // Messages mentioning our nick
	Topic     string // Channel topic banner
	Unread    string // Unread badges in the sidebar

	// Semantic colors
	Warning string
	Error   string
	Info    string

	// Border colors
	Border      string // Default borders
	BorderFocus string // Focused element borders (defaults to Primary if empty)

	// Code block colors (for rendering pasted code)
	Code   string // Inline code
	CodeBg string // Code background

	// NickColors is the pool used to color other users' nicks. A nick is
	// hashed to a stable index so it keeps its color across renders.
	NickColors []string
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// NickColor returns a stable color for a nick, hashed into the theme's pool.
func (t Theme) NickColor(nick string) string {
	if len(t.NickColors) == 0 {
		return t.Text
	}
	h := fnv.New32a()
	h.Write([]byte(nick))
	return t.NickColors[h.Sum32()%uint32(len(t.NickColors))]
}

// Name is a type for theme identifiers
type Name string

// Available theme names
const (
	DarkPurple Name = "dark-purple"
	Nord       Name = "nord"
	Dracula    Name = "dracula"
	Light      Name = "light"
)

// Default is the default theme name
const Default = DarkPurple

// builtin contains all built-in themes
var builtin = map[Name]Theme{
	DarkPurple: {
		Name:        "Dark Purple",
		Primary:     "#7C3AED",
		Secondary:   "#06B6D4",
		Bg:          "#1F2937",
		Text:        "#F9FAFB",
		TextMuted:   "#9CA3AF",
		TextInverse: "#1F2937",
		Timestamp:   "#6B7280",
		Action:      "#C084FC",
		Highlight:   "#F59E0B",
		Topic:       "#93C5FD",
		Unread:      "#F59E0B",
		Warning:     "#F59E0B",
		Error:       "#EF4444",
		Info:        "#06B6D4",
		Border:      "#374151",
		Code:        "#67E8F9",
		CodeBg:      "#1E1E2E",
		NickColors: []string{
			"#A78BFA", "#22D3EE", "#4ADE80", "#F472B6",
			"#FBBF24", "#60A5FA", "#F87171", "#34D399",
		},
	},
	Nord: {
		Name:        "Nord",
		Primary:     "#88C0D0",
		Secondary:   "#81A1C1",
		Bg:          "#2E3440",
		Text:        "#ECEFF4",
		TextMuted:   "#D8DEE9",
		TextInverse: "#2E3440",
		Timestamp:   "#616E88",
		Action:      "#B48EAD",
		Highlight:   "#EBCB8B",
		Topic:       "#81A1C1",
		Unread:      "#EBCB8B",
		Warning:     "#EBCB8B",
		Error:       "#BF616A",
		Info:        "#81A1C1",
		Border:      "#4C566A",
		Code:        "#A3BE8C",
		CodeBg:      "#242933",
		NickColors: []string{
			"#8FBCBB", "#88C0D0", "#81A1C1", "#A3BE8C",
			"#B48EAD", "#EBCB8B", "#D08770", "#5E81AC",
		},
	},
	Dracula: {
		Name:        "Dracula",
		Primary:     "#BD93F9",
		Secondary:   "#8BE9FD",
		Bg:          "#282A36",
		Text:        "#F8F8F2",
		TextMuted:   "#6272A4",
		TextInverse: "#282A36",
		Timestamp:   "#6272A4",
		Action:      "#FF79C6",
		Highlight:   "#FFB86C",
		Topic:       "#8BE9FD",
		Unread:      "#FFB86C",
		Warning:     "#FFB86C",
		Error:       "#FF5555",
		Info:        "#8BE9FD",
		Border:      "#44475A",
		Code:        "#50FA7B",
		CodeBg:      "#21222C",
		NickColors: []string{
			"#FF79C6", "#8BE9FD", "#50FA7B", "#BD93F9",
			"#FFB86C", "#F1FA8C", "#FF5555", "#6272A4",
		},
	},
	Light: {
		Name:        "Light",
		Primary:     "#7C3AED",
		Secondary:   "#0891B2",
		Bg:          "#FFFFFF",
		Text:        "#111827",
		TextMuted:   "#6B7280",
		TextInverse: "#FFFFFF",
		Timestamp:   "#9CA3AF",
		Action:      "#9333EA",
		Highlight:   "#D97706",
		Topic:       "#2563EB",
		Unread:      "#D97706",
		Warning:     "#D97706",
		Error:       "#DC2626",
		Info:        "#0891B2",
		Border:      "#D1D5DB",
		Code:        "#0E7490",
		CodeBg:      "#F3F4F6",
		NickColors: []string{
			"#7C3AED", "#0891B2", "#16A34A", "#DB2777",
			"#D97706", "#2563EB", "#DC2626", "#059669",
		},
	},
}

// Names returns the built-in theme names in sorted order.
func Names() []Name {
	names := make([]Name, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Get returns the theme for a name, falling back to the default for unknown
// names so a stale config value never breaks rendering.
func Get(name Name) Theme {
	if t, ok := builtin[name]; ok {
		return t
	}
	return builtin[Default]
}

// GetByName looks up a theme from a plain string (as stored in config).
func GetByName(name string) Theme {
	if name == "" {
		return builtin[Default]
	}
	return Get(Name(name))
}
