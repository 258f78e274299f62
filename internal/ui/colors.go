package ui

// ANSI color and style constants for CLI output
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2m"

	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorWhite  = "\033[97m"
	ColorRed    = "\033[31m"
)

// Palette applies styles only when Enabled, so the same rendering code can
// write to terminals and to pipes or files
type Palette struct {
	Enabled bool
}

// Style wraps s in the given ANSI codes
func (p Palette) Style(codes, s string) string {
	if !p.Enabled || s == "" {
		return s
	}
	return codes + s + ColorReset
}

func (p Palette) Bold(s string) string    { return p.Style(ColorBold, s) }
func (p Palette) Success(s string) string { return p.Style(ColorGreen, s) }
func (p Palette) Info(s string) string    { return p.Style(ColorDim+ColorYellow, s) }
func (p Palette) Error(s string) string   { return p.Style(ColorRed, s) }
