package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"go.uber.org/zap"

	"github.com/Saicharan2707l/portfolio/internal/page"
)

// lineUnit is how many scroll units one terminal line stands for, so the
// page's pixel thresholds keep their proportions in the terminal.
const lineUnit = 20.0

const (
	previewChromeLines = 3 // header plus two footer lines
	minPreviewWidth    = 20
)

type lineSpan struct {
	start, end int
}

// preview renders the page in a terminal. It implements page.View, with
// the viewport offset standing in for the browser scroll position.
type preview struct {
	content  *Content
	page     *page.Page
	state    page.State
	viewport viewport.Model
	anchors  map[page.Section]lineSpan
	laidOut  bool // dark mode the document was last laid out for
}

func newPreview(content *Content, logger *zap.Logger) *preview {
	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	m := &preview{
		content:  content,
		viewport: vp,
		anchors:  map[page.Section]lineSpan{},
	}
	m.layout()
	m.page = page.New(m, nil, page.WithLogger(logger))
	return m
}

func (m *preview) HasAnchor(s page.Section) bool {
	_, ok := m.anchors[s]
	return ok
}

func (m *preview) ScrollIntoView(s page.Section) {
	if span, ok := m.anchors[s]; ok {
		m.viewport.SetYOffset(span.start)
	}
}

func (m *preview) ScrollToTop() {
	m.viewport.GotoTop()
}

// ResetForm does nothing; the terminal has no form.
func (m *preview) ResetForm() {}

func (m *preview) Render(st page.State) {
	m.state = st
	if st.Dark != m.laidOut {
		m.layout()
	}
}

func (m *preview) Init() tea.Cmd {
	return nil
}

func (m *preview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-previewChromeLines, 1)
		m.layout()
		m.syncScroll()
		return m, nil

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "t":
			m.page.ToggleTheme()
			return m, nil
		case "m":
			m.page.ToggleMenu()
			return m, nil
		case "g", "home":
			m.page.ScrollToTop()
			m.syncScroll()
			return m, nil
		case "1", "2", "3", "4", "5", "6":
			idx := int(key[0] - '1')
			_ = m.page.Navigate(page.Sections[idx])
			m.syncScroll()
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.viewport.YOffset
	m.viewport, cmd = m.viewport.Update(msg)
	if m.viewport.YOffset != before {
		m.syncScroll()
	}
	return m, cmd
}

// syncScroll reports the current viewport position to the page.
func (m *preview) syncScroll() {
	m.page.Scroll(m.geometry())
}

func (m *preview) geometry() page.Geometry {
	y := m.viewport.YOffset
	g := page.Geometry{
		ScrollY: float64(y) * lineUnit,
		Anchors: make(map[page.Section]page.Rect, len(m.anchors)),
	}
	for s, span := range m.anchors {
		g.Anchors[s] = page.Rect{
			Top:    float64(span.start-y) * lineUnit,
			Bottom: float64(span.end-y) * lineUnit,
		}
	}
	return g
}

func (m *preview) View() string {
	parts := []string{m.headerView()}
	if m.state.MenuOpen {
		parts = append(parts, m.menuView())
	}
	parts = append(parts, m.viewport.View(), m.footerView())
	return strings.Join(parts, "\n")
}

func (m *preview) palette() Palette {
	if m.state.Dark {
		return m.content.Theme.Dark
	}
	return m.content.Theme.Light
}

func (m *preview) headerView() string {
	p := m.palette()
	brand := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Primary)).Render(m.content.DisplayName())
	var links []string
	for _, s := range m.content.NavSections() {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted))
		if s == m.state.Active {
			style = style.Bold(true).Underline(true).Foreground(lipgloss.Color(p.Primary))
		}
		links = append(links, style.Render(s.Label()))
	}
	return brand + "  " + strings.Join(links, " ")
}

func (m *preview) menuView() string {
	p := m.palette()
	var rows []string
	for i, s := range page.Sections {
		if !m.HasAnchor(s) {
			continue
		}
		rows = append(rows, fmt.Sprintf("%d %s", i+1, s.Label()))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.Secondary)).
		Padding(0, 1).
		Render(strings.Join(rows, "\n"))
}

func (m *preview) footerView() string {
	p := m.palette()
	help := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted))
	mode := "light"
	if m.state.Dark {
		mode = "dark"
	}
	status := fmt.Sprintf("%s · %s · %3.f%%", m.state.Active.Label(), mode, m.viewport.ScrollPercent()*100)
	if m.state.ScrollTopVisible {
		status += " · g: back to top"
	}
	return strings.Join([]string{
		lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)).Render(status),
		help.Render("1-6 sections · t theme · m menu · ↑/↓ scroll · q quit"),
	}, "\n")
}

// layout renders the document into the viewport and records where each
// section starts and ends.
func (m *preview) layout() {
	p := m.palette()
	width := max(m.viewport.Width-2, minPreviewWidth)
	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Primary))
	sub := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Secondary))
	body := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Foreground))

	var lines []string
	anchors := map[page.Section]lineSpan{}
	for _, s := range m.content.NavSections() {
		start := len(lines)
		lines = append(lines, heading.Render(strings.ToUpper(s.Label())), "")
		for _, block := range m.content.sectionText(s) {
			style := body
			if strings.HasPrefix(block, "## ") {
				block, style = strings.TrimPrefix(block, "## "), sub
			}
			for _, line := range strings.Split(wordwrap.String(block, width), "\n") {
				lines = append(lines, style.Render(line))
			}
		}
		lines = append(lines, "")
		anchors[s] = lineSpan{start: start, end: len(lines)}
	}

	m.anchors = anchors
	m.laidOut = m.state.Dark
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

// sectionText flattens one section into plain-text blocks. Blocks starting
// with "## " are subheadings.
func (c *Content) sectionText(s page.Section) []string {
	var out []string
	entry := func(e Entry) {
		head := e.Title
		if e.Organization != "" {
			head += " | " + e.Organization
		}
		if e.Period != "" {
			head += " (" + e.Period + ")"
		}
		out = append(out, "## "+head)
		if e.Detail != "" {
			out = append(out, plainText(e.Detail))
		}
		for _, h := range e.Highlights {
			out = append(out, "• "+plainText(h))
		}
	}

	switch s {
	case page.SectionHome:
		out = append(out, "Hi, I'm "+c.DisplayName())
		if len(c.Owner.Roles) > 0 {
			out = append(out, strings.Join(c.Owner.Roles, " | "))
		}
		if c.Owner.Summary != "" {
			out = append(out, plainText(c.Owner.Summary))
		}
	case page.SectionAbout:
		for _, para := range c.About {
			out = append(out, plainText(para), "")
		}
	case page.SectionExperience:
		for _, e := range c.Education {
			entry(e)
		}
		for _, e := range c.Experience {
			entry(e)
		}
	case page.SectionProjects:
		for _, p := range c.Projects {
			out = append(out, "## "+p.Title+" ("+p.Period+")")
			for _, h := range p.Highlights {
				out = append(out, "• "+plainText(h))
			}
			if len(p.Tags) > 0 {
				out = append(out, strings.Join(p.Tags, ", "))
			}
		}
	case page.SectionSkills:
		for _, g := range c.Skills {
			out = append(out, "## "+g.Name, strings.Join(g.Skills, ", "))
		}
		for _, a := range c.Achievements {
			out = append(out, "## "+a.Title)
			for _, item := range a.Items {
				out = append(out, "• "+plainText(item))
			}
		}
	case page.SectionContact:
		for _, l := range c.Links {
			out = append(out, l.Label+": "+l.URL)
		}
		if c.Owner.Email != "" {
			out = append(out, "", "Messages can be sent from the web page or to "+c.Owner.Email+".")
		}
	}
	return out
}

// plainText collapses the whitespace of multi-line copy and drops the
// Markdown emphasis markers the web page renders.
func plainText(s string) string {
	s = strings.NewReplacer("**", "", "__", "", "`", "").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
