package view

import "github.com/dpshade/pocket-debrief/internal/models"

// TemplateListView describes the template management list
type TemplateListView struct {
	Placeholder string
	Items       []TemplateItemView
}

// TemplateItemView is one deletable template row
type TemplateItemView struct {
	Index   int
	Name    string
	Preview string
}

// RenderTemplates describes templates in creation order
func RenderTemplates(templates []models.Template, width int) TemplateListView {
	if len(templates) == 0 {
		return TemplateListView{Placeholder: EmptyTemplatesMessage}
	}

	v := TemplateListView{Items: make([]TemplateItemView, 0, len(templates))}
	for i, t := range templates {
		v.Items = append(v.Items, TemplateItemView{
			Index:   i,
			Name:    Truncate(t.Title(), width),
			Preview: t.Description(),
		})
	}
	return v
}
