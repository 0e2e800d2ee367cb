// Package changeslist decorates rows of a recent-changes list with the
// filter-test annotation: an "examine" link, a match/no-match class and no
// rollback controls.
package changeslist

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/url"
	"sort"
	"strconv"
)

// CSS classes added to rows whose match state is known.
const (
	ClassMatch   = "mw-abusefilter-changeslist-match"
	ClassNoMatch = "mw-abusefilter-changeslist-nomatch"
)

// Row is one change record. Matched is nil when the change was not tested.
type Row struct {
	ID      int64  `json:"id"`
	Title   string `json:"title,omitempty"`
	User    string `json:"user,omitempty"`
	Summary string `json:"summary,omitempty"`
	Matched *bool  `json:"matched"`
}

// Annotation is what the annotator contributes to a row.
type Annotation struct {
	ExtraMarkup      string
	Tags             map[string]struct{}
	SuppressRollback bool
}

// HasTag reports whether class is in a.Tags.
func (a Annotation) HasTag(class string) bool {
	_, ok := a.Tags[class]
	return ok
}

// Annotator builds annotations. TestFilter is the id of the filter under
// test, empty when no test is active.
type Annotator struct {
	Script     string // index.php path, e.g. /w/index.php
	TestFilter string
	LinkText   string
}

// Annotate is pure: it depends only on the row and the annotator fields.
func (a Annotator) Annotate(row Row) Annotation {
	q := url.Values{}
	q.Set("title", "Special:AbuseFilter/examine/"+strconv.FormatInt(row.ID, 10))
	if a.TestFilter != "" {
		q.Set("testfilter", a.TestFilter)
	}
	script := a.Script
	if script == "" {
		script = "/w/index.php"
	}
	text := a.LinkText
	if text == "" {
		text = "examine"
	}
	link := fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(script+"?"+q.Encode()), html.EscapeString(text))

	tags := map[string]struct{}{}
	if row.Matched != nil {
		if *row.Matched {
			tags[ClassMatch] = struct{}{}
		} else {
			tags[ClassNoMatch] = struct{}{}
		}
	}
	return Annotation{
		ExtraMarkup:      " (" + link + ")",
		Tags:             tags,
		SuppressRollback: true,
	}
}

// ReadRows decodes a JSON array of rows.
func ReadRows(r io.Reader) ([]Row, error) {
	var rows []Row
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode change rows: %w", err)
	}
	return rows, nil
}

// Annotated is a row together with its annotation, in output form.
type Annotated struct {
	Row
	ExtraMarkup      string   `json:"extra_markup"`
	Tags             []string `json:"tags"`
	SuppressRollback bool     `json:"suppress_rollback"`
}

// AnnotateAll annotates rows in order. Tags are sorted.
func (a Annotator) AnnotateAll(rows []Row) []Annotated {
	out := make([]Annotated, 0, len(rows))
	for _, r := range rows {
		an := a.Annotate(r)
		tags := make([]string, 0, len(an.Tags))
		for t := range an.Tags {
			tags = append(tags, t)
		}
		sort.Strings(tags)
		out = append(out, Annotated{Row: r, ExtraMarkup: an.ExtraMarkup, Tags: tags, SuppressRollback: an.SuppressRollback})
	}
	return out
}
