package page

import "strings"

// Section identifies one anchored block of the page.
type Section string

const (
	SectionHome       Section = "home"
	SectionAbout      Section = "about"
	SectionExperience Section = "experience"
	SectionProjects   Section = "projects"
	SectionSkills     Section = "skills"
	SectionContact    Section = "contact"
)

// Sections lists every section in page order. Scroll tracking scans in
// this order, so earlier entries win when two anchors overlap the
// activation line.
var Sections = []Section{
	SectionHome,
	SectionAbout,
	SectionExperience,
	SectionProjects,
	SectionSkills,
	SectionContact,
}

// ParseSection returns the section named s, or false if s is not one of
// the fixed identifiers.
func ParseSection(s string) (Section, bool) {
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, true
		}
	}
	return "", false
}

// Valid reports whether s is one of the fixed identifiers.
func (s Section) Valid() bool {
	_, ok := ParseSection(string(s))
	return ok
}

// Label is the navigation text for s: the identifier with its first
// letter upper-cased.
func (s Section) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}
