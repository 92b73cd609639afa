// Package content holds the text of the page: the About section and the
// skills table with its category filter.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/cosmic-portfolio/internal/logging"
)

// All is the category that matches every skill.
const All = "all"

// ErrInvalid is returned when the content file is malformed.
var ErrInvalid = errors.New("invalid content")

//go:embed content.yaml
var embedded []byte

type About struct {
	Title      string   `yaml:"title"`
	Heading    string   `yaml:"heading"`
	Paragraphs []string `yaml:"paragraphs"`
}

type Skill struct {
	Name     string `yaml:"name"`
	Level    int    `yaml:"level"`
	Category string `yaml:"category"`
}

// Content is everything the page says.
type Content struct {
	About      About    `yaml:"about"`
	Categories []string `yaml:"categories"`
	Skills     []Skill  `yaml:"skills"`
}

// Default is the content compiled into the binary.
func Default() (*Content, error) { return Parse(embedded) }

// Parse decodes and checks a content document.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, logging.WrapError(err, "failed to parse content")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks levels are percentages and every skill belongs to a
// listed category.
func (c *Content) Validate() error {
	if len(c.Categories) == 0 || c.Categories[0] != All {
		return fmt.Errorf("%w: categories must start with %q", ErrInvalid, All)
	}
	for _, s := range c.Skills {
		if s.Name == "" {
			return fmt.Errorf("%w: skill without a name", ErrInvalid)
		}
		if s.Level < 0 || s.Level > 100 {
			return fmt.Errorf("%w: %s level %d not in [0, 100]", ErrInvalid, s.Name, s.Level)
		}
		if s.Category == All || !slices.Contains(c.Categories, s.Category) {
			return fmt.Errorf("%w: %s has unknown category %q", ErrInvalid, s.Name, s.Category)
		}
	}
	return nil
}

// Filter returns the skills in category, in table order. All matches every
// skill; an unknown category matches none.
func (c *Content) Filter(category string) []Skill {
	if category == All {
		return slices.Clone(c.Skills)
	}
	var out []Skill
	for _, s := range c.Skills {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// Wrap breaks text into lines of at most width characters, splitting on
// spaces. A word longer than width gets a line of its own.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
