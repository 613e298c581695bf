package screens

import (
	"fmt"
	"io"
	"strings"
)

// View is the rendered result of a screen action. Error holds the dialog
// text of a failed action; a view with an error may still carry sections.
type View struct {
	Screen    string    `json:"screen"`
	Title     string    `json:"title"`
	Sections  []Section `json:"sections,omitempty"`
	Notice    string    `json:"notice,omitempty"`
	Error     string    `json:"error,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

type Section struct {
	Heading string   `json:"heading"`
	Lines   []string `json:"lines"`
}

func newView(screen, title string) *View {
	return &View{Screen: screen, Title: title}
}

func (v *View) Add(heading string, lines ...string) {
	if lines == nil {
		lines = []string{}
	}
	v.Sections = append(v.Sections, Section{Heading: heading, Lines: lines})
}

func (v *View) Failed() bool { return v.Error != "" }

// Section returns the section with the given heading, if present.
func (v *View) Section(heading string) (Section, bool) {
	for _, s := range v.Sections {
		if s.Heading == heading {
			return s, true
		}
	}
	return Section{}, false
}

// Render writes v as plain text.
func (v *View) Render(w io.Writer) error {
	var b strings.Builder
	b.WriteString(v.Title)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("=", len([]rune(v.Title))))
	b.WriteByte('\n')

	if v.Error != "" {
		fmt.Fprintf(&b, "! %s\n", v.Error)
	}
	if v.Notice != "" {
		b.WriteString(v.Notice)
		b.WriteByte('\n')
	}
	for _, s := range v.Sections {
		b.WriteByte('\n')
		b.WriteString(s.Heading)
		b.WriteByte('\n')
		for _, line := range s.Lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func kv(label string, value any) string {
	return fmt.Sprintf("%s: %v", label, value)
}
