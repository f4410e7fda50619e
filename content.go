package main

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/Saicharan2707l/portfolio/internal/page"
)

// Content is everything the page shows: copy, links and colors. One
// Content value describes one variant of the page.
type Content struct {
	Owner        Owner         `yaml:"owner"`
	About        []string      `yaml:"about"`
	Education    []Entry       `yaml:"education"`
	Experience   []Entry       `yaml:"experience"`
	Projects     []Project     `yaml:"projects"`
	Skills       []SkillGroup  `yaml:"skills"`
	Achievements []Achievement `yaml:"achievements"`
	Links        []Link        `yaml:"links"`
	Theme        Theme         `yaml:"theme"`
}

type Owner struct {
	Name      string   `yaml:"name"`
	ShortName string   `yaml:"short_name"`
	Roles     []string `yaml:"roles"`
	Summary   string   `yaml:"summary"`
	Email     string   `yaml:"email"`
	Image     string   `yaml:"image"`
	Resume    string   `yaml:"resume"`
}

// Entry is one education or work history item.
type Entry struct {
	Title        string   `yaml:"title"`
	Organization string   `yaml:"organization"`
	Period       string   `yaml:"period"`
	Detail       string   `yaml:"detail"`
	Highlights   []string `yaml:"highlights"`
}

type Project struct {
	Title      string   `yaml:"title"`
	Period     string   `yaml:"period"`
	Highlights []string `yaml:"highlights"`
	Tags       []string `yaml:"tags"`
	URL        string   `yaml:"url"`
}

type SkillGroup struct {
	Name   string   `yaml:"name"`
	Skills []string `yaml:"skills"`
}

// Achievement is a titled list shown next to the skills, such as coding
// profiles or certifications.
type Achievement struct {
	Title string   `yaml:"title"`
	Items []string `yaml:"items"`
}

type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
	Kind  string `yaml:"kind"`
}

// Palette holds the colors for one theme mode.
type Palette struct {
	Background string `yaml:"background"`
	Surface    string `yaml:"surface"`
	Foreground string `yaml:"foreground"`
	Muted      string `yaml:"muted"`
	Primary    string `yaml:"primary"`
	Secondary  string `yaml:"secondary"`
	Accent     string `yaml:"accent"`
}

type Theme struct {
	Font  string  `yaml:"font"`
	Light Palette `yaml:"light"`
	Dark  Palette `yaml:"dark"`
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// LoadContent reads a content file. An empty path returns the built-in
// content. Missing theme colors are taken from the built-in palette.
func LoadContent(path string) (*Content, error) {
	if path == "" {
		return DefaultContent(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing content %s: %w", path, err)
	}
	c.Theme = mergeTheme(c.Theme, DefaultContent().Theme)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return &c, nil
}

// Validate checks the fields the page cannot render without.
func (c *Content) Validate() error {
	if strings.TrimSpace(c.Owner.Name) == "" {
		return fmt.Errorf("owner.name is required")
	}
	for mode, p := range map[string]Palette{"light": c.Theme.Light, "dark": c.Theme.Dark} {
		for field, color := range p.colors() {
			if !hexColor.MatchString(color) {
				return fmt.Errorf("theme.%s.%s: %q is not a hex color", mode, field, color)
			}
		}
	}
	return nil
}

// Anchors reports which sections the rendered page contains. Sections
// without content are left out of the markup.
func (c *Content) Anchors() map[page.Section]bool {
	return map[page.Section]bool{
		page.SectionHome:       true,
		page.SectionAbout:      len(c.About) > 0,
		page.SectionExperience: len(c.Education) > 0 || len(c.Experience) > 0,
		page.SectionProjects:   len(c.Projects) > 0,
		page.SectionSkills:     len(c.Skills) > 0 || len(c.Achievements) > 0,
		page.SectionContact:    true,
	}
}

// Has reports whether the section named name is rendered.
func (c *Content) Has(name string) bool {
	s, ok := page.ParseSection(name)
	return ok && c.Anchors()[s]
}

// NavSections returns the sections present on the page in page order.
func (c *Content) NavSections() []page.Section {
	anchors := c.Anchors()
	var out []page.Section
	for _, s := range page.Sections {
		if anchors[s] {
			out = append(out, s)
		}
	}
	return out
}

// DisplayName is the short name used in the header, falling back to the
// full name.
func (c *Content) DisplayName() string {
	if c.Owner.ShortName != "" {
		return c.Owner.ShortName
	}
	return c.Owner.Name
}

// outline summarises what a section holds, for the content command.
func (c *Content) outline(s page.Section) string {
	switch s {
	case page.SectionHome:
		return fmt.Sprintf("%d roles, %d links", len(c.Owner.Roles), len(c.Links))
	case page.SectionAbout:
		return fmt.Sprintf("%d paragraphs", len(c.About))
	case page.SectionExperience:
		return fmt.Sprintf("%d education, %d work entries", len(c.Education), len(c.Experience))
	case page.SectionProjects:
		return fmt.Sprintf("%d projects", len(c.Projects))
	case page.SectionSkills:
		return fmt.Sprintf("%d skill groups, %d achievement lists", len(c.Skills), len(c.Achievements))
	case page.SectionContact:
		return fmt.Sprintf("form to %s", c.Owner.Email)
	}
	return ""
}

func (p Palette) colors() map[string]string {
	return map[string]string{
		"background": p.Background,
		"surface":    p.Surface,
		"foreground": p.Foreground,
		"muted":      p.Muted,
		"primary":    p.Primary,
		"secondary":  p.Secondary,
		"accent":     p.Accent,
	}
}

func mergeTheme(t, fallback Theme) Theme {
	if t.Font == "" {
		t.Font = fallback.Font
	}
	t.Light = mergePalette(t.Light, fallback.Light)
	t.Dark = mergePalette(t.Dark, fallback.Dark)
	return t
}

func mergePalette(p, fallback Palette) Palette {
	pick := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return Palette{
		Background: pick(p.Background, fallback.Background),
		Surface:    pick(p.Surface, fallback.Surface),
		Foreground: pick(p.Foreground, fallback.Foreground),
		Muted:      pick(p.Muted, fallback.Muted),
		Primary:    pick(p.Primary, fallback.Primary),
		Secondary:  pick(p.Secondary, fallback.Secondary),
		Accent:     pick(p.Accent, fallback.Accent),
	}
}

// markdown renders copy written in Markdown. Raw HTML in the source is
// escaped by goldmark's default renderer.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// renderInline renders a single Markdown line without the paragraph
// wrapper, for list items and short labels.
func renderInline(src string) template.HTML {
	out := strings.TrimSpace(string(renderMarkdown(src)))
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return template.HTML(out)
}
