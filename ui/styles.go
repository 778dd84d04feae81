package ui

import "github.com/charmbracelet/lipgloss"

// Color palette. Styled after the Luna-blue desktop the dashboard imitates,
// with light/dark variants so the app reads on both terminal backgrounds.
var (
	// Accent is the title bar and focus color
	Accent = lipgloss.AdaptiveColor{Light: "#0A5BC4", Dark: "#3B82F6"}

	// Border is the default window border color
	Border = lipgloss.AdaptiveColor{Light: "#7A96DF", Dark: "#3C3C5C"}

	// Desktop is the wallpaper color behind the window
	Desktop = lipgloss.AdaptiveColor{Light: "#5A7EDC", Dark: "#1E2A4A"}

	// TextPrimary is the main text color
	TextPrimary = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}

	// TextSecondary is for labels and captions
	TextSecondary = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}

	// TextMuted is for hints
	TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}

	// RateUp colors the hashrate figure and sparkline
	RateUp = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#22C55E"}

	// WorkerStale marks workers that stopped reporting
	WorkerStale = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}
)

// Window chrome glyphs
const (
	GlyphMinimize = "_"
	GlyphMaximize = "□"
	GlyphRestore  = "❐"
	GlyphClose    = "×"
)

// Pre-built styles for the window chrome and desktop
var (
	TitleBarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
			Background(Accent)

	WindowBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Border)

	DesktopStyle = lipgloss.NewStyle().
			Background(Desktop)

	DockStyle = lipgloss.NewStyle().
			Foreground(TextPrimary).
			Background(lipgloss.AdaptiveColor{Light: "#D6E3F8", Dark: "#2A3A5A"})

	StatLabelStyle = lipgloss.NewStyle().Foreground(TextSecondary)
	StatValueStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	RateStyle      = lipgloss.NewStyle().Bold(true).Foreground(RateUp)
	SparkStyle     = lipgloss.NewStyle().Foreground(RateUp)
	HintStyle      = lipgloss.NewStyle().Foreground(TextMuted)
	StaleStyle     = lipgloss.NewStyle().Foreground(WorkerStale)
)
