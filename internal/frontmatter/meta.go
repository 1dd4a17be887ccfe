package frontmatter

import (
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// PostMeta is the typed front-matter of a blog post.
//
// Absent draft means published; absent tags means untagged. Date is the
// publication timestamp and the only field beside title that is required.
type PostMeta struct {
	Title       string   `yaml:"title"`
	Date        Date     `yaml:"date"`
	Draft       bool     `yaml:"draft"`
	Description string   `yaml:"description,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	Slug        string   `yaml:"slug,omitempty"`
	Lastmod     Date     `yaml:"lastmod,omitempty"`
}

// RecognizedKeys is the set of front-matter keys this blog uses.
var RecognizedKeys = map[string]struct{}{
	"title":       {},
	"date":        {},
	"draft":       {},
	"description": {},
	"tags":        {},
	"slug":        {},
	"lastmod":     {},
}

// Date wraps time.Time to accept both date-only and full timestamp forms.
type Date struct {
	time.Time
}

// Accepted timestamp layouts, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalYAML parses a front-matter date. Parsed values are normalized
// to UTC so ordering does not depend on the author's timezone notation.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized date %q", raw)
}

// MarshalYAML emits the date in the shortest lossless form.
func (d Date) MarshalYAML() (any, error) {
	if d.IsZero() {
		return "", nil
	}
	if d.Hour() == 0 && d.Minute() == 0 && d.Second() == 0 {
		return d.Format("2006-01-02"), nil
	}
	return d.Format(time.RFC3339), nil
}

// DecodeMeta parses raw front-matter into typed PostMeta.
func DecodeMeta(meta []byte) (PostMeta, error) {
	var pm PostMeta
	if err := yaml.Unmarshal(meta, &pm); err != nil {
		return PostMeta{}, err
	}
	return pm, nil
}

// UnknownKeys returns the front-matter keys that are not part of the
// recognized set, sorted for stable reporting.
func UnknownKeys(meta []byte) ([]string, error) {
	fields, err := ParseFields(meta)
	if err != nil {
		return nil, err
	}
	var unknown []string
	for key := range fields {
		if _, ok := RecognizedKeys[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown, nil
}
