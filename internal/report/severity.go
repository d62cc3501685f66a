package report

import (
	"fmt"
	"strings"
)

// Severity classifies how important an issue is. The numeric order is the
// comparison order used for both display filtering and the error threshold.
type Severity int

const (
	SeveritySuggestion Severity = iota
	SeverityWarning
	SeverityError
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeveritySuggestion: "Suggestion",
	SeverityWarning:    "Warning",
	SeverityError:      "Error",
	SeverityCritical:   "Critical",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// AtLeast reports whether s meets or exceeds the given threshold.
func (s Severity) AtLeast(threshold Severity) bool {
	return s >= threshold
}

// ParseSeverity converts a severity name to its enum value. Matching is
// case-insensitive so both config values and engine report attributes parse.
func ParseSeverity(name string) (Severity, error) {
	for severity, severityName := range severityNames {
		if strings.EqualFold(name, severityName) {
			return severity, nil
		}
	}
	return 0, fmt.Errorf("unknown severity %q", name)
}

func (s Severity) MarshalText() ([]byte, error) {
	name, ok := severityNames[s]
	if !ok {
		return nil, fmt.Errorf("invalid severity value %d", int(s))
	}
	return []byte(name), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
