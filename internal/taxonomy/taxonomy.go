// Package taxonomy holds the clinic's reference data: the two-level incident
// catalog and the sector, phase and roster lists offered by the intake form.
//
// A Taxonomy is built once at start-up and never mutated afterwards, so it can
// be shared by the server, the intake service and report generation.
package taxonomy

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var defaultDocument []byte

// labelSeparator splits a subcategory label into its numeric code and text.
const labelSeparator = " - "

type Category struct {
	Name   string   `yaml:"name"`
	Labels []string `yaml:"labels"`
}

type document struct {
	Categories  []Category `yaml:"categories"`
	Sectors     []string   `yaml:"sectors"`
	Phases      []string   `yaml:"phases"`
	Responsible []string   `yaml:"responsible"`
}

type Taxonomy struct {
	categories  []Category
	sectors     []string
	phases      []string
	responsible []string

	groupNames map[string]string
}

// Load reads the catalog at path, or the embedded catalog when path is empty.
func Load(path string) (*Taxonomy, error) {
	if path == "" {
		return Parse(defaultDocument)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy file %s: %w", path, err)
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("taxonomy file %s: %w", path, err)
	}

	return t, nil
}

// Default returns the embedded catalog. It panics if the embedded document is
// invalid, which would be a build defect.
func Default() *Taxonomy {
	t, err := Parse(defaultDocument)
	if err != nil {
		panic(fmt.Errorf("embedded taxonomy: %w", err))
	}
	return t
}

func Parse(data []byte) (*Taxonomy, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode taxonomy: %w", err)
	}

	if err := doc.validate(); err != nil {
		return nil, err
	}

	t := &Taxonomy{
		categories:  make([]Category, 0, len(doc.Categories)),
		sectors:     trimAll(doc.Sectors),
		phases:      trimAll(doc.Phases),
		responsible: trimAll(doc.Responsible),
		groupNames:  make(map[string]string),
	}

	for _, c := range doc.Categories {
		cat := Category{Name: strings.TrimSpace(c.Name), Labels: trimAll(c.Labels)}
		t.categories = append(t.categories, cat)

		for _, label := range cat.Labels {
			key := GroupKey(label)
			if _, ok := t.groupNames[key]; !ok {
				t.groupNames[key] = cat.Name
			}
		}
	}

	return t, nil
}

func (d *document) validate() error {
	if len(d.Categories) == 0 {
		return fmt.Errorf("taxonomy has no categories")
	}
	for _, c := range d.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("taxonomy category without a name")
		}
		if len(c.Labels) == 0 {
			return fmt.Errorf("taxonomy category %q has no labels", c.Name)
		}
		for _, l := range c.Labels {
			if strings.TrimSpace(l) == "" {
				return fmt.Errorf("taxonomy category %q has an empty label", c.Name)
			}
		}
	}

	lists := []struct {
		name   string
		values []string
	}{
		{"sectors", d.Sectors},
		{"phases", d.Phases},
		{"responsible", d.Responsible},
	}
	for _, l := range lists {
		if len(l.values) == 0 {
			return fmt.Errorf("taxonomy has no %s", l.name)
		}
		for _, v := range l.values {
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("taxonomy %s contains an empty value", l.name)
			}
		}
	}

	return nil
}

func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{Name: c.Name, Labels: append([]string(nil), c.Labels...)}
	}
	return out
}

func (t *Taxonomy) Sectors() []string {
	return append([]string(nil), t.sectors...)
}

func (t *Taxonomy) Phases() []string {
	return append([]string(nil), t.phases...)
}

func (t *Taxonomy) Responsible() []string {
	return append([]string(nil), t.responsible...)
}

// CategoryName returns the name of the category whose labels carry groupKey,
// or groupKey itself when no category matches.
func (t *Taxonomy) CategoryName(groupKey string) string {
	if name, ok := t.groupNames[groupKey]; ok {
		return name
	}
	return groupKey
}

// LabelCode returns the numeric prefix of a label: "1.12 - X" yields "1.12".
func LabelCode(label string) string {
	code, _, _ := strings.Cut(label, labelSeparator)
	return strings.TrimSpace(code)
}

// GroupKey returns the part of the label code before the first dot:
// "1.12 - X" yields "1".
func GroupKey(label string) string {
	key, _, _ := strings.Cut(LabelCode(label), ".")
	return key
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
