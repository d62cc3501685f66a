package gate

import (
	"fmt"
	"sort"

	"github.com/dragonfruitnetwork/codecutter/internal/report"
)

// CodeIssue is a raw issue joined with its catalog entry. Its effective
// severity is the one declared by the issue type.
type CodeIssue struct {
	Type    report.IssueType
	File    string
	Line    int
	Message string
}

func (i CodeIssue) Severity() report.Severity {
	return i.Type.Severity
}

// FileGroup holds the issues of one category that share a file.
type FileGroup struct {
	File   string
	Issues []CodeIssue
}

// CategoryGroup holds one category's issues, grouped by file.
type CategoryGroup struct {
	Category string
	Files    []FileGroup
}

// ProjectResult is one project's filtered view: issues sorted by severity
// descending plus the category/file grouping used for rendering.
type ProjectResult struct {
	Name       string
	Issues     []CodeIssue
	Categories []CategoryGroup
}

// Result is the outcome of a whole run. Failed is the accumulated verdict:
// true as soon as any issue in any project meets the error threshold.
type Result struct {
	Projects    []ProjectResult
	TotalIssues int
	Failed      bool
}

// Evaluate joins, filters, sorts and groups a parsed report. Issues below
// displayLevel are dropped; any surviving issue at or above errorLevel
// fails the run. An issue referencing an unknown type id is a consistency
// error in the report and aborts the run.
func Evaluate(rep *report.Report, displayLevel, errorLevel report.Severity) (*Result, error) {
	catalog := rep.TypeCatalog()
	result := &Result{}

	for _, project := range rep.Projects {
		projectResult := ProjectResult{Name: project.Name}

		for _, raw := range project.Issues {
			issueType, ok := catalog[raw.TypeID]
			if !ok {
				return nil, fmt.Errorf("issue in project %q references unknown issue type %q", project.Name, raw.TypeID)
			}

			if !issueType.Severity.AtLeast(displayLevel) {
				continue
			}

			projectResult.Issues = append(projectResult.Issues, CodeIssue{
				Type:    issueType,
				File:    raw.File,
				Line:    raw.Line,
				Message: raw.Message,
			})
		}

		sort.SliceStable(projectResult.Issues, func(a, b int) bool {
			return projectResult.Issues[a].Severity() > projectResult.Issues[b].Severity()
		})

		for _, issue := range projectResult.Issues {
			if issue.Severity().AtLeast(errorLevel) {
				result.Failed = true
			}
		}

		result.TotalIssues += len(projectResult.Issues)
		projectResult.Categories = groupIssues(projectResult.Issues)
		result.Projects = append(result.Projects, projectResult)
	}

	return result, nil
}

// groupIssues partitions issues by category then file, both in first-seen
// order so the grouping is stable with respect to the sorted input.
func groupIssues(issues []CodeIssue) []CategoryGroup {
	var groups []CategoryGroup
	categoryIndex := make(map[string]int)

	for _, issue := range issues {
		idx, ok := categoryIndex[issue.Type.Category]
		if !ok {
			idx = len(groups)
			categoryIndex[issue.Type.Category] = idx
			groups = append(groups, CategoryGroup{Category: issue.Type.Category})
		}

		group := &groups[idx]
		fileIdx := -1
		for i := range group.Files {
			if group.Files[i].File == issue.File {
				fileIdx = i
				break
			}
		}
		if fileIdx == -1 {
			fileIdx = len(group.Files)
			group.Files = append(group.Files, FileGroup{File: issue.File})
		}

		group.Files[fileIdx].Issues = append(group.Files[fileIdx].Issues, issue)
	}

	return groups
}
