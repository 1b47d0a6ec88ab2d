package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	HashStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	RefStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	AuthorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00BFFF"))
	DateStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true)
	MessageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))

	// Diff line styles
	AddedLineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	RemovedLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))
	HunkHeaderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF")).Bold(true)
	FileHeaderStyle  = lipgloss.NewStyle().Bold(true)

	// Layout styles
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5F5FFF")).
			PaddingTop(1).
			PaddingBottom(1).
			MarginBottom(1)

	CommitBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F5FFF")).
			Padding(1, 2).
			MarginBottom(1)
)

// Icons
const (
	IconCommit    = "⊚"
	IconAuthor    = "👤"
	IconDate      = "📅"
	IconBranch    = "⎇"
	IconTag       = "◈"
	IconSeparator = "│"
)

// Hash renders an object identity
func Hash(s string) string {
	return HashStyle.Render(s)
}

// Ref renders a reference name
func Ref(s string) string {
	return RefStyle.Render(s)
}

// Header renders a section header banner
func Header(text string) string {
	return HeaderStyle.Render(text)
}

// CommitBox renders one commit's details in a bordered box
func CommitBox(text string) string {
	return CommitBoxStyle.Render(text)
}

// AddedLine renders an insertion line of a diff
func AddedLine(s string) string {
	return AddedLineStyle.Render(s)
}

// RemovedLine renders a deletion line of a diff
func RemovedLine(s string) string {
	return RemovedLineStyle.Render(s)
}

// HunkHeader renders a hunk range line of a diff
func HunkHeader(s string) string {
	return HunkHeaderStyle.Render(s)
}

// FileHeader renders the ---/+++ lines of a diff
func FileHeader(s string) string {
	return FileHeaderStyle.Render(s)
}
