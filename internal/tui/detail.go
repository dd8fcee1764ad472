package tui

import (
	"fmt"
	"strings"

	"github.com/devfolio/backend/internal/model"
)

// detailModel shows one enquiry in full, with a delete confirmation step.
type detailModel struct {
	id         string
	enquiry    *model.Enquiry
	loading    bool
	confirming bool
	err        error
}

func newDetailModel(id string) detailModel {
	return detailModel{id: id, loading: true}
}

func (m *detailModel) apply(msg enquiryDetailMsg) {
	m.loading = false
	m.enquiry = msg.enquiry
	m.err = msg.err
}

func (m detailModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Enquiry"))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(subtitleStyle.Render("Loading..."))
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
	case m.enquiry != nil:
		e := m.enquiry
		b.WriteString(labelStyle.Render("Client      ") + e.ClientName + "\n")
		b.WriteString(labelStyle.Render("Project     ") + e.ProjectName + "\n")
		b.WriteString(labelStyle.Render("Phone       ") + e.Phone + "\n")
		b.WriteString(labelStyle.Render("Budget      ") + fmt.Sprintf("%.2f", e.Budget) + "\n")
		b.WriteString(labelStyle.Render("Received    ") + formatWhen(e.CreatedAt) + "\n")
		b.WriteString("\n" + labelStyle.Render("Description") + "\n")
		b.WriteString(e.Description + "\n")
		if len(e.Links) > 0 {
			b.WriteString("\n" + labelStyle.Render("Links") + "\n")
			for _, link := range e.Links {
				b.WriteString("  " + normalizeLink(link) + "\n")
			}
		}
	}
	b.WriteString("\n")

	if m.confirming {
		b.WriteString(errorStyle.Render("Delete this enquiry permanently?"))
		b.WriteString("\n" + helpStyle.Render("enter confirm • esc cancel"))
	} else {
		b.WriteString(helpStyle.Render("d delete • esc back"))
	}
	return b.String()
}
