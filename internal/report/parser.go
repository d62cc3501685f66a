package report

import (
	"encoding/xml"
	"fmt"
	"os"
)

// Parse deserializes an engine report. A structural XML error or a catalog
// entry without an id aborts the run; a partial report is never used.
func Parse(data []byte) (*Report, error) {
	var parsed Report
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse analysis report: %w", err)
	}

	for _, issueType := range parsed.IssueTypes {
		if issueType.ID == "" {
			return nil, fmt.Errorf("analysis report contains an issue type without an id")
		}
	}

	for _, project := range parsed.Projects {
		for _, issue := range project.Issues {
			if issue.TypeID == "" {
				return nil, fmt.Errorf("issue in project %q has no type id", project.Name)
			}
		}
	}

	return &parsed, nil
}

// ParseFile reads and parses the report the engine wrote. A missing file
// means the engine never produced output, which is fatal for the run.
func ParseFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis report %s: %w", path, err)
	}
	return Parse(data)
}
