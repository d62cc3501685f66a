package gate

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dragonfruitnetwork/codecutter/internal/report"
)

var (
	projectColor  = color.New(color.FgCyan, color.Bold)
	categoryColor = color.New(color.FgYellow, color.Bold)
	passColor     = color.New(color.FgGreen, color.Bold)
	failColor     = color.New(color.FgRed, color.Bold)
)

// Render writes the filtered report and final verdict. Projects without
// issues are still listed so a clean project is visible in CI logs.
func Render(w io.Writer, result *Result) {
	for _, project := range result.Projects {
		fmt.Fprintln(w, projectColor.Sprintf("Project: %s (%d issues)", project.Name, len(project.Issues)))

		for _, category := range project.Categories {
			fmt.Fprintf(w, "  %s\n", categoryColor.Sprint(category.Category))
			for _, fileGroup := range category.Files {
				fmt.Fprintf(w, "    %s\n", fileGroup.File)
				for _, issue := range fileGroup.Issues {
					tag := severityTag(issue.Severity())
					fmt.Fprintf(w, "      %s Line %d: %s\n", tag, issue.Line, issue.Message)
				}
			}
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Issues: %d\n", result.TotalIssues)
	if result.Failed {
		fmt.Fprintln(w, failColor.Sprint("Code Quality Test Failed"))
	} else {
		fmt.Fprintln(w, passColor.Sprint("Code Quality Test Passed"))
	}
}

func severityTag(severity report.Severity) string {
	label := fmt.Sprintf("[%s]", strings.ToUpper(severity.String()))
	if c := severityColor(severity); c != nil {
		return c.Sprint(label)
	}
	return label
}

func severityColor(severity report.Severity) *color.Color {
	switch severity {
	case report.SeverityCritical:
		return color.New(color.FgRed, color.Bold)
	case report.SeverityError:
		return color.New(color.FgRed)
	case report.SeverityWarning:
		return color.New(color.FgYellow)
	case report.SeveritySuggestion:
		return color.New(color.FgBlue)
	default:
		return nil
	}
}
