// Package rows extracts problem records from inline row markup.
package rows

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/patternpath/pagepatch/internal/core/domain"
	"github.com/patternpath/pagepatch/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.RowExtractor = (*Extractor)(nil)

// DefaultRowStart is the literal that opens every hand-authored row.
const DefaultRowStart = `<div class="grid grid-cols-[auto_1fr_auto_auto_auto_auto_auto]`

// premiumBadges are badge texts that mark a problem as premium.
var premiumBadges = map[string]bool{"Plus": true, "Premium": true}

// Extractor splits documents into rows and parses each row with goquery.
type Extractor struct {
	rowStart string
}

// New creates an extractor splitting on rowStart.
// If rowStart is empty, DefaultRowStart is used.
func New(rowStart string) *Extractor {
	if rowStart == "" {
		rowStart = DefaultRowStart
	}
	return &Extractor{rowStart: rowStart}
}

// Extract splits text on every occurrence of the row start literal; the
// segment before the first occurrence is never a row. Text with no rows
// yields the placeholder records. Any invalid row fails the whole page so
// no partial artifact can be written.
func (e *Extractor) Extract(text string) ([]domain.RowRecord, error) {
	segments := strings.Split(text, e.rowStart)
	if len(segments) < 2 {
		return domain.PlaceholderRecords(), nil
	}

	records := make([]domain.RowRecord, 0, len(segments)-1)
	for i, seg := range segments[1:] {
		rec, err := e.parseRow(e.rowStart + seg)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rec.Index = i
		records = append(records, rec)
	}
	return records, nil
}

// parseRow reads one row segment.
func (e *Extractor) parseRow(segment string) (domain.RowRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(segment))
	if err != nil {
		return domain.RowRecord{}, fmt.Errorf("%w: %v", domain.ErrInvalidRow, err)
	}

	row := doc.Find("div.grid").First()
	if row.Length() == 0 {
		row = doc.Find("body").Children().First()
	}

	titleLink := row.Find("div.pl-2 a").First()
	if titleLink.Length() == 0 {
		titleLink = row.Find("a").First()
	}
	title := ownText(titleLink)
	if title == "" {
		return domain.RowRecord{}, fmt.Errorf("%w: missing title", domain.ErrInvalidRow)
	}

	label := strings.TrimSpace(row.Find("div.text-right span").Last().Text())
	if label == "" {
		label = strings.TrimSpace(row.Find(`span[class*="text-diff-"]`).Last().Text())
	}
	difficulty, err := domain.ParseDifficulty(label)
	if err != nil {
		return domain.RowRecord{}, err
	}

	return domain.RowRecord{
		Title:        title,
		ExternalLink: externalLink(row, titleLink),
		Video:        videoLink(row),
		Difficulty:   difficulty,
		Premium:      hasPremiumBadge(titleLink),
	}, nil
}

// externalLink prefers the title link and falls back to the practice link.
func externalLink(row, titleLink *goquery.Selection) string {
	if href := link(titleLink); href != "" {
		return href
	}
	practice := row.Find("a").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.TrimSpace(s.Text()) == "LC"
	})
	return link(practice.First())
}

func videoLink(row *goquery.Selection) string {
	video := row.Find(`[title="Video Solution"]`).First()
	if v, ok := video.Attr("data-video"); ok {
		return strings.TrimSpace(v)
	}
	if href := link(video); href != "" {
		return href
	}
	return link(video.Find("a").First())
}

func hasPremiumBadge(titleLink *goquery.Selection) bool {
	found := false
	titleLink.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		found = premiumBadges[strings.TrimSpace(s.Text())]
		return !found
	})
	return found
}

// link returns a usable href; "#" placeholders count as empty.
func link(s *goquery.Selection) string {
	href, ok := s.Attr("href")
	href = strings.TrimSpace(href)
	if !ok || href == "#" {
		return ""
	}
	return href
}

// ownText returns the element's direct text, leaving out badge children.
func ownText(s *goquery.Selection) string {
	var b strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if n := c.Get(0); n != nil && n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
	})
	return strings.Join(strings.Fields(b.String()), " ")
}
