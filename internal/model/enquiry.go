package model

import (
	"strings"
	"time"
)

// Enquiry represents a project enquiry submitted through the public contact
// form. ID and CreatedAt are assigned once at creation and never change.
type Enquiry struct {
	ID          string    `json:"id"`
	ClientName  string    `json:"clientName"`
	ProjectName string    `json:"projectName"`
	Phone       string    `json:"phone"`
	Description string    `json:"description"`
	Budget      float64   `json:"budget"`
	Links       []string  `json:"links"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EnquiryListOptions carries filter and pagination parameters for listing
// enquiries at the repository level.
type EnquiryListOptions struct {
	// Search matches clientName OR projectName as a case-insensitive
	// substring. Empty matches everything.
	Search string
	Limit  int
	Offset int
}

// EnquiryPage is one page of list results plus pagination metadata.
type EnquiryPage struct {
	Enquiries      []*Enquiry `json:"enquiries"`
	TotalPages     int        `json:"totalPages"`
	CurrentPage    int        `json:"currentPage"`
	TotalEnquiries int        `json:"totalEnquiries"`
}

// ParseLinks normalizes a free-text links field into a list: the input is
// split on commas and newlines, each token is trimmed, and empty tokens are
// dropped. Order is preserved.
func ParseLinks(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	links := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := strings.TrimSpace(f); t != "" {
			links = append(links, t)
		}
	}
	return links
}
