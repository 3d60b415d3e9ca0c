// Package segment splits the linearized text of a gazette into case
// paragraphs and keeps the ones relevant to RPV payments.
package segment

import (
	"strings"
)

// DefaultFooter is the publication notice printed at the bottom of every
// TJSP gazette page.
const DefaultFooter = "Publicação Oficial do Tribunal de Justiça do Estado de São Paulo - Lei Federal nº 11.419/06, art. 4º"

// Config holds the literals that bound and select paragraphs.
type Config struct {
	// StartPrefix opens a paragraph when a line begins with it.
	StartPrefix string
	// EndMarker closes a paragraph when a line contains it.
	EndMarker string
	// Footer closes a paragraph when the following line begins with it.
	Footer string
	// RequiredTerms must all appear, case-insensitively, in a closed paragraph.
	RequiredTerms []string
}

// DefaultConfig returns the markers used by the São Paulo judicial gazette.
func DefaultConfig() Config {
	return Config{
		StartPrefix:   "Processo ",
		EndMarker:     "ADV:",
		Footer:        DefaultFooter,
		RequiredTerms: []string{"rpv", "pagamento pelo inss"},
	}
}

// Paragraph is one closed, relevant case entry joined into a single line.
type Paragraph struct {
	Text string
}

type state int

const (
	idle state = iota
	capturing
)

type marker int

const (
	markOther marker = iota
	markStart
	markEnd
	markStartEnd
)

type action uint8

const (
	actReset action = 1 << iota
	actAppend
	actClose
)

type transition struct {
	next    state
	actions action
}

// transitions is the whole segmenter. A start marker seen while capturing
// resets the buffer, which abandons the unterminated paragraph.
var transitions = map[state]map[marker]transition{
	idle: {
		markOther:    {next: idle},
		markEnd:      {next: idle},
		markStart:    {next: capturing, actions: actReset | actAppend},
		markStartEnd: {next: idle, actions: actReset | actAppend | actClose},
	},
	capturing: {
		markOther:    {next: capturing, actions: actAppend},
		markEnd:      {next: idle, actions: actAppend | actClose},
		markStart:    {next: capturing, actions: actReset | actAppend},
		markStartEnd: {next: idle, actions: actReset | actAppend | actClose},
	},
}

// Segmenter partitions document lines into paragraphs. It keeps no state
// between calls and is safe for concurrent use.
type Segmenter struct {
	cfg   Config
	terms []string
}

// New creates a Segmenter. Zero-valued fields of cfg fall back to DefaultConfig.
func New(cfg Config) *Segmenter {
	def := DefaultConfig()
	if cfg.StartPrefix == "" {
		cfg.StartPrefix = def.StartPrefix
	}
	if cfg.EndMarker == "" {
		cfg.EndMarker = def.EndMarker
	}
	if cfg.Footer == "" {
		cfg.Footer = def.Footer
	}
	if len(cfg.RequiredTerms) == 0 {
		cfg.RequiredTerms = def.RequiredTerms
	}

	terms := make([]string, len(cfg.RequiredTerms))
	for i, t := range cfg.RequiredTerms {
		terms[i] = strings.ToLower(t)
	}
	return &Segmenter{cfg: cfg, terms: terms}
}

// Segment splits text into lines, trims them and segments the result.
func (s *Segmenter) Segment(text string) []Paragraph {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return s.SegmentLines(lines)
}

// SegmentLines runs a single forward pass over already trimmed lines and
// returns the relevant paragraphs in document order. A paragraph still open
// at the end of input is discarded.
func (s *Segmenter) SegmentLines(lines []string) []Paragraph {
	var (
		out []Paragraph
		buf []string
		cur = idle
	)

	for i, line := range lines {
		tr := transitions[cur][s.classify(lines, i)]

		if tr.actions&actReset != 0 {
			buf = buf[:0]
		}
		if tr.actions&actAppend != 0 {
			buf = append(buf, line)
		}
		if tr.actions&actClose != 0 {
			if p, ok := s.close(buf); ok {
				out = append(out, p)
			}
			buf = buf[:0]
		}
		cur = tr.next
	}
	return out
}

func (s *Segmenter) classify(lines []string, i int) marker {
	line := lines[i]
	start := strings.HasPrefix(line, s.cfg.StartPrefix)
	end := strings.Contains(line, s.cfg.EndMarker) ||
		(i+1 < len(lines) && strings.HasPrefix(lines[i+1], s.cfg.Footer))

	switch {
	case start && end:
		return markStartEnd
	case start:
		return markStart
	case end:
		return markEnd
	default:
		return markOther
	}
}

func (s *Segmenter) close(buf []string) (Paragraph, bool) {
	text := strings.TrimSpace(strings.Join(buf, " "))
	if !s.Relevant(text) {
		return Paragraph{}, false
	}
	return Paragraph{Text: text}, true
}

// Relevant reports whether text contains every required term, ignoring case.
func (s *Segmenter) Relevant(text string) bool {
	lower := strings.ToLower(text)
	for _, t := range s.terms {
		if !strings.Contains(lower, t) {
			return false
		}
	}
	return true
}
