package services

import (
	"fmt"
	"html"
	"strings"

	"github.com/patternpath/pagepatch/internal/core/domain"
	"github.com/patternpath/pagepatch/internal/markup"
)

// breadcrumbFormat wraps the pattern name in the page breadcrumb.
const breadcrumbFormat = `<span class="text-secondary">%s</span>`

// TemplateLiterals are the master-page strings substituted for each
// generated page.
type TemplateLiterals struct {
	// Title is the document title text, e.g. "Arrays Interview Questions".
	Title string

	// Breadcrumb is the pattern name shown in the breadcrumb.
	Breadcrumb string

	// Heading is the main heading text.
	Heading string

	// Description is the hero description paragraph.
	Description string
}

// DefaultTemplateLiterals returns the literals of the arrays master page.
func DefaultTemplateLiterals() TemplateLiterals {
	return TemplateLiterals{
		Title:      "Arrays Interview Questions",
		Breadcrumb: "Arrays",
		Heading:    "Top Array Interview Questions",
		Description: "A complete roadmap to mastering Array data structures. " +
			"From basic linear iteration to complex two-pointer and sliding window problems seen in FAANG interviews.",
	}
}

// Generator builds brand-new pages from a master document. It bypasses
// extraction: generated pages always start from the placeholder rows.
type Generator struct {
	literals   TemplateLiterals
	dataPrefix string
}

// NewGenerator creates a generator.
func NewGenerator(literals TemplateLiterals, dataPrefix string) *Generator {
	return &Generator{literals: literals, dataPrefix: dataPrefix}
}

// Render produces the page for d from master. masterDesc describes the
// master page itself and may be nil. When the master is already data
// driven, the returned artifact holds the placeholder records the new
// page's render script will import; otherwise it is nil and the
// placeholder rows are written inline.
func (g *Generator) Render(
	master domain.Document,
	masterDesc *domain.PageDescriptor,
	d domain.PageDescriptor,
) (domain.Document, *domain.DataArtifact, error) {
	if d.ID == "" || strings.ContainsAny(d.ID, `/\`) || d.DisplayName == "" {
		return domain.Document{}, nil, fmt.Errorf("%w: descriptor %+v", domain.ErrInvalidInput, d)
	}

	name := html.EscapeString(d.DisplayName)
	content := master.Content
	content = strings.ReplaceAll(content, g.literals.Title, name+" Interview Questions")
	content = strings.ReplaceAll(content,
		fmt.Sprintf(breadcrumbFormat, g.literals.Breadcrumb),
		fmt.Sprintf(breadcrumbFormat, name))
	content = strings.ReplaceAll(content, g.literals.Heading, name+" Interview Questions")
	content = strings.ReplaceAll(content, g.literals.Description,
		fmt.Sprintf("Master the %s pattern. Curated list of problems to master this pattern.", name))
	if masterDesc != nil && masterDesc.CountHint != "" && d.CountHint != "" {
		content = strings.ReplaceAll(content, masterDesc.CountHint, d.CountHint)
	}

	doc := domain.NewDocument(d.FileName(), content)

	if strings.Contains(content, mountMarker) {
		doc.Content = strings.ReplaceAll(content,
			g.dataPrefix+master.PageID+domain.ArtifactExt,
			g.dataPrefix+d.ID+domain.ArtifactExt)
		return doc, &domain.DataArtifact{PageID: d.ID, Problems: domain.PlaceholderRecords()}, nil
	}

	out, err := g.placeholderRows(content)
	if err != nil {
		return domain.Document{}, nil, err
	}
	doc.Content = out
	return doc, nil, nil
}

// placeholderRows replaces the row container's children with skeleton rows.
func (g *Generator) placeholderRows(content string) (string, error) {
	start, ok := markup.Locate(content, rowContainer)
	if !ok {
		return "", fmt.Errorf("%s: %w", rowContainer.Name(), domain.ErrAnchorNotFound)
	}

	var rows strings.Builder
	for _, rec := range domain.PlaceholderRecords() {
		row, err := execute(placeholderRowTmpl, rec)
		if err != nil {
			return "", fmt.Errorf("render placeholder row: %w", err)
		}
		rows.WriteString(row)
	}

	fragment := start.Text(content) + "\n" + rows.String() + "\n            </div>"
	return markup.Inject(content, start, fragment, markup.ReplaceToClosingPair)
}
