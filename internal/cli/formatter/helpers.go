package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const avatarBaseURL = "https://trello-avatars.s3.amazonaws.com/"

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title == "" {
		return box.Render(content)
	}
	return box.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// Percent formats a fraction as a percentage. With sigDigits > 0 the value
// is rounded to that many significant digits, so Percent(0.4567, 2) is "46%"
// and Percent(0.05, 2) is "5.0%".
func Percent(value float64, sigDigits int) string {
	v := value * 100
	if sigDigits <= 0 {
		return strconv.FormatFloat(v, 'f', -1, 64) + "%"
	}
	if v == 0 {
		return strconv.FormatFloat(0, 'f', sigDigits-1, 64) + "%"
	}

	exp := int(math.Floor(math.Log10(math.Abs(v))))
	scale := math.Pow(10, float64(sigDigits-1-exp))
	rounded := math.Round(v*scale) / scale
	// Rounding can carry into the next power of ten (99.6 -> 100).
	if r := int(math.Floor(math.Log10(math.Abs(rounded)))); r > exp {
		exp = r
	}

	decimals := sigDigits - 1 - exp
	if decimals < 0 {
		decimals = 0
	}
	return strconv.FormatFloat(rounded, 'f', decimals, 64) + "%"
}

// AvatarURL returns the Trello avatar image for hash, or "" without a hash.
// size defaults to 30.
func AvatarURL(hash string, size int) string {
	if hash == "" {
		return ""
	}
	if size <= 0 {
		size = 30
	}
	return fmt.Sprintf("%s%s/%d.png", avatarBaseURL, hash, size)
}

// FormatPoints prints points without trailing zeros: 3, 2.5, 0.25.
func FormatPoints(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// HumanTimestamp returns a short relative timestamp such as "12s ago".
func HumanTimestamp(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	diff := now.Sub(t)
	switch {
	case diff < time.Second:
		return "just now"
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Local().Format("Jan 2 15:04")
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Truncate shortens s to at most width visible cells, ending in "…".
func Truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
