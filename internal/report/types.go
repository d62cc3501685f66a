package report

import "encoding/xml"

// IssueType is one entry in the engine's rule catalog. Every raw issue
// references exactly one entry by id.
type IssueType struct {
	ID          string   `xml:"Id,attr"`
	Category    string   `xml:"Category,attr"`
	Description string   `xml:"Description,attr"`
	Severity    Severity `xml:"Severity,attr"`
}

// Issue is a single finding as emitted by the engine. Its severity comes
// from the referenced IssueType, not from the issue itself.
type Issue struct {
	TypeID  string `xml:"TypeId,attr"`
	File    string `xml:"File,attr"`
	Line    int    `xml:"Line,attr"`
	Message string `xml:"Message,attr"`
}

// Project groups the issues the engine found in one project of the solution.
type Project struct {
	Name   string  `xml:"Name,attr"`
	Issues []Issue `xml:"Issue"`
}

// Report is the deserialized engine output file.
type Report struct {
	XMLName    xml.Name    `xml:"Report"`
	IssueTypes []IssueType `xml:"IssueTypes>IssueType"`
	Projects   []Project   `xml:"Issues>Project"`
}

// TypeCatalog builds the id -> IssueType lookup used to join issues with
// their metadata. A duplicate id in the source file is last-write-wins.
func (r *Report) TypeCatalog() map[string]IssueType {
	catalog := make(map[string]IssueType, len(r.IssueTypes))
	for _, issueType := range r.IssueTypes {
		catalog[issueType.ID] = issueType
	}
	return catalog
}
