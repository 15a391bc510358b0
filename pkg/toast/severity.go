package toast

import "strings"

// Severity selects the visual theme of a toast.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityPrimary Severity = "primary"
)

// Severities lists every known severity in display order.
var Severities = []Severity{
	SeveritySuccess,
	SeverityError,
	SeverityWarning,
	SeverityInfo,
	SeverityPrimary,
}

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	_, ok := themes[s]
	return ok
}

// Normalize returns s if it is known and SeverityInfo otherwise.
func (s Severity) Normalize() Severity {
	if s.Valid() {
		return s
	}
	return SeverityInfo
}

// Title is the capitalized severity name shown as the toast heading.
func (s Severity) Title() string {
	name := string(s.Normalize())
	return strings.ToUpper(name[:1]) + name[1:]
}

// Theme is the derived visual configuration of a severity.
type Theme struct {
	Icon      string // icon classes
	Gradient  string // CSS background for the icon badge, title text and progress bar
	Border    string // left border color
	TextClass string // title color where background-clip: text is unsupported
}

var themes = map[Severity]Theme{
	SeveritySuccess: {
		Icon:      "bi bi-check-circle-fill",
		Gradient:  "linear-gradient(135deg, #10b981, #34d399)",
		Border:    "#10b981",
		TextClass: "text-success",
	},
	SeverityError: {
		Icon:      "bi bi-x-circle-fill",
		Gradient:  "linear-gradient(135deg, #ef4444, #f87171)",
		Border:    "#ef4444",
		TextClass: "text-danger",
	},
	SeverityWarning: {
		Icon:      "bi bi-exclamation-triangle-fill",
		Gradient:  "linear-gradient(135deg, #f59e0b, #fbbf24)",
		Border:    "#f59e0b",
		TextClass: "text-warning",
	},
	SeverityInfo: {
		Icon:      "bi bi-info-circle-fill",
		Gradient:  "linear-gradient(135deg, #3b82f6, #60a5fa)",
		Border:    "#3b82f6",
		TextClass: "text-info",
	},
	SeverityPrimary: {
		Icon:      "bi bi-bell-fill",
		Gradient:  "linear-gradient(135deg, #4361ee, #3a0ca3)",
		Border:    "#4361ee",
		TextClass: "text-primary",
	},
}

// ThemeFor returns the theme of s. Unknown severities get the info theme.
func ThemeFor(s Severity) Theme {
	return themes[s.Normalize()]
}
