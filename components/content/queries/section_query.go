package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	content "github.com/JasirTK/shopifysmartpromo/components/content"
)

type sectionService interface {
	Get(ctx context.Context, key string) (content.ContentSection, error)
	List(ctx context.Context) ([]content.ContentSection, error)
}

// SectionQuery fetches a single section by key.
type SectionQuery struct {
	service sectionService
}

// NewSectionQuery builds the query.
func NewSectionQuery(service sectionService) *SectionQuery {
	return &SectionQuery{service: service}
}

var _ gocommand.Querier[string, content.ContentSection] = (*SectionQuery)(nil)

// Query resolves the section for the key.
func (q *SectionQuery) Query(ctx context.Context, key string) (content.ContentSection, error) {
	return q.service.Get(ctx, key)
}

// ListSectionsInput is the empty input for the list query.
type ListSectionsInput struct{}

// ListSectionsQuery returns every section in canonical order.
type ListSectionsQuery struct {
	service sectionService
}

// NewListSectionsQuery builds the query.
func NewListSectionsQuery(service sectionService) *ListSectionsQuery {
	return &ListSectionsQuery{service: service}
}

var _ gocommand.Querier[ListSectionsInput, []content.ContentSection] = (*ListSectionsQuery)(nil)

// Query lists all sections.
func (q *ListSectionsQuery) Query(ctx context.Context, _ ListSectionsInput) ([]content.ContentSection, error) {
	return q.service.List(ctx)
}

// FormQuery builds the dynamic edit form for a section.
type FormQuery struct {
	service sectionService
}

// NewFormQuery builds the query.
func NewFormQuery(service sectionService) *FormQuery {
	return &FormQuery{service: service}
}

var _ gocommand.Querier[string, content.Form] = (*FormQuery)(nil)

// Query fetches the section and derives its form model.
func (q *FormQuery) Query(ctx context.Context, key string) (content.Form, error) {
	section, err := q.service.Get(ctx, key)
	if err != nil {
		return content.Form{}, err
	}
	return content.BuildForm(section.Key, section.Content)
}
