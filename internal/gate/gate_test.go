package gate

import (
	"strings"
	"testing"

	"github.com/dragonfruitnetwork/codecutter/internal/report"
)

func testReport() *report.Report {
	return &report.Report{
		IssueTypes: []report.IssueType{
			{ID: "SUG", Category: "Style", Description: "Style nit", Severity: report.SeveritySuggestion},
			{ID: "WRN", Category: "Redundancy", Description: "Redundant code", Severity: report.SeverityWarning},
			{ID: "ERR", Category: "Correctness", Description: "Probable bug", Severity: report.SeverityError},
		},
		Projects: []report.Project{
			{
				Name: "App",
				Issues: []report.Issue{
					{TypeID: "WRN", File: "a.cs", Line: 5, Message: "redundant cast"},
					{TypeID: "ERR", File: "b.cs", Line: 12, Message: "null dereference"},
				},
			},
		},
	}
}

func TestEvaluate_WarningAndErrorFailsGate(t *testing.T) {
	result, err := Evaluate(testReport(), report.SeverityWarning, report.SeverityError)
	if err != nil {
		t.Fatalf("Failed to evaluate report: %v", err)
	}

	if result.TotalIssues != 2 {
		t.Errorf("Expected 2 issues, got %d", result.TotalIssues)
	}
	if !result.Failed {
		t.Error("An Error issue at errorLevel=Error must fail the run")
	}

	// Severity sort: the error comes before the warning.
	issues := result.Projects[0].Issues
	if len(issues) != 2 {
		t.Fatalf("Expected 2 project issues, got %d", len(issues))
	}
	if issues[0].Severity() != report.SeverityError {
		t.Errorf("Expected the Error issue first, got %v", issues[0].Severity())
	}
}

func TestEvaluate_SuggestionOnlyIsFilteredAndPasses(t *testing.T) {
	rep := &report.Report{
		IssueTypes: []report.IssueType{
			{ID: "SUG", Category: "Style", Severity: report.SeveritySuggestion},
		},
		Projects: []report.Project{
			{Name: "App", Issues: []report.Issue{{TypeID: "SUG", File: "a.cs", Line: 1, Message: "nit"}}},
		},
	}

	result, err := Evaluate(rep, report.SeverityWarning, report.SeverityError)
	if err != nil {
		t.Fatalf("Failed to evaluate report: %v", err)
	}

	if result.TotalIssues != 0 {
		t.Errorf("Expected 0 issues after filtering, got %d", result.TotalIssues)
	}
	if result.Failed {
		t.Error("Filtered-out issues must not fail the run")
	}

	// The project is still reported, just with nothing in it.
	if len(result.Projects) != 1 || result.Projects[0].Name != "App" {
		t.Errorf("Expected empty project to remain visible, got %+v", result.Projects)
	}
}

func TestEvaluate_MaxErrorLevelNeverFails(t *testing.T) {
	result, err := Evaluate(testReport(), report.SeveritySuggestion, report.SeverityCritical)
	if err != nil {
		t.Fatalf("Failed to evaluate report: %v", err)
	}

	if result.Failed {
		t.Error("No issue reaches Critical, so the run must pass")
	}
	if result.TotalIssues != 2 {
		t.Errorf("Expected 2 issues reported, got %d", result.TotalIssues)
	}
}

func TestEvaluate_FilteringIsMonotonic(t *testing.T) {
	rep := testReport()
	previous := -1

	for _, level := range []report.Severity{
		report.SeveritySuggestion, report.SeverityWarning, report.SeverityError, report.SeverityCritical,
	} {
		result, err := Evaluate(rep, level, report.SeverityCritical)
		if err != nil {
			t.Fatalf("Failed to evaluate report at %v: %v", level, err)
		}
		if previous != -1 && result.TotalIssues > previous {
			t.Errorf("Raising displayLevel to %v increased issues from %d to %d", level, previous, result.TotalIssues)
		}
		previous = result.TotalIssues
	}
}

func TestEvaluate_VerdictAccumulatesAcrossProjects(t *testing.T) {
	rep := testReport()
	rep.Projects = append(rep.Projects, report.Project{Name: "Clean"})

	result, err := Evaluate(rep, report.SeverityWarning, report.SeverityError)
	if err != nil {
		t.Fatalf("Failed to evaluate report: %v", err)
	}

	// The clean trailing project must not reset the verdict.
	if !result.Failed {
		t.Error("Verdict must accumulate across projects, not reset per project")
	}
}

func TestEvaluate_UnknownTypeIDIsFatal(t *testing.T) {
	rep := &report.Report{
		Projects: []report.Project{
			{Name: "App", Issues: []report.Issue{{TypeID: "MISSING", File: "a.cs", Line: 1, Message: "m"}}},
		},
	}

	if _, err := Evaluate(rep, report.SeveritySuggestion, report.SeverityError); err == nil {
		t.Error("Expected error for issue referencing an unknown type id")
	}
}

func TestGrouping_IsAPartition(t *testing.T) {
	rep := &report.Report{
		IssueTypes: []report.IssueType{
			{ID: "W1", Category: "Redundancy", Severity: report.SeverityWarning},
			{ID: "W2", Category: "Style", Severity: report.SeverityWarning},
			{ID: "E1", Category: "Redundancy", Severity: report.SeverityError},
		},
		Projects: []report.Project{
			{
				Name: "App",
				Issues: []report.Issue{
					{TypeID: "W1", File: "a.cs", Line: 1, Message: "first"},
					{TypeID: "W2", File: "a.cs", Line: 2, Message: "second"},
					{TypeID: "E1", File: "b.cs", Line: 3, Message: "third"},
					{TypeID: "W1", File: "b.cs", Line: 4, Message: "fourth"},
				},
			},
		},
	}

	result, err := Evaluate(rep, report.SeveritySuggestion, report.SeverityCritical)
	if err != nil {
		t.Fatalf("Failed to evaluate report: %v", err)
	}

	project := result.Projects[0]

	// Concatenating the groups in emitted order reproduces every filtered
	// issue exactly once.
	var flattened []CodeIssue
	for _, category := range project.Categories {
		for _, fileGroup := range category.Files {
			flattened = append(flattened, fileGroup.Issues...)
		}
	}

	if len(flattened) != len(project.Issues) {
		t.Fatalf("Groups hold %d issues, filtered set has %d", len(flattened), len(project.Issues))
	}

	seen := make(map[string]bool)
	for _, issue := range flattened {
		key := issue.File + issue.Message
		if seen[key] {
			t.Errorf("Issue %q appears in more than one group", issue.Message)
		}
		seen[key] = true
	}

	// First-seen category order follows the severity-sorted issue list: the
	// Error issue sorts first, so Redundancy leads.
	if project.Categories[0].Category != "Redundancy" {
		t.Errorf("Expected 'Redundancy' first, got %q", project.Categories[0].Category)
	}
}

func TestRender_Output(t *testing.T) {
	result, err := Evaluate(testReport(), report.SeverityWarning, report.SeverityError)
	if err != nil {
		t.Fatalf("Failed to evaluate report: %v", err)
	}

	var out strings.Builder
	Render(&out, result)
	rendered := out.String()

	for _, expected := range []string{
		"Project: App (2 issues)",
		"Correctness",
		"Redundancy",
		"Line 12: null dereference",
		"Line 5: redundant cast",
		"Total Issues: 2",
		"Code Quality Test Failed",
	} {
		if !strings.Contains(rendered, expected) {
			t.Errorf("Output should contain %q, got:\n%s", expected, rendered)
		}
	}
}

func TestRender_PassVerdict(t *testing.T) {
	result, err := Evaluate(testReport(), report.SeverityWarning, report.SeverityCritical)
	if err != nil {
		t.Fatalf("Failed to evaluate report: %v", err)
	}

	var out strings.Builder
	Render(&out, result)

	if !strings.Contains(out.String(), "Code Quality Test Passed") {
		t.Errorf("Output should contain the pass verdict, got:\n%s", out.String())
	}
}
