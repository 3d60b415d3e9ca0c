package pdftext

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"

	"rpvscraper/internal/normalize"
)

// kerningSpace is the TJ displacement (thousandths of text space) past which
// a gap is read as a word break.
const kerningSpace = -200

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokString
	tokName
	tokArrayStart
	tokArrayEnd
	tokOperator
)

type token struct {
	kind tokenKind
	num  float64
	str  []byte
	op   string
}

type operand struct {
	num   float64
	str   []byte
	isStr bool
	array []operand
}

// lineWriter accumulates shown text and splits it into lines.
type lineWriter struct {
	lines []string
	cur   strings.Builder
	lastY float64
	hasY  bool
}

func (w *lineWriter) text(s string) {
	w.cur.WriteString(s)
}

func (w *lineWriter) space() {
	s := w.cur.String()
	if s != "" && !strings.HasSuffix(s, " ") {
		w.cur.WriteByte(' ')
	}
}

func (w *lineWriter) newline() {
	line := strings.TrimSpace(w.cur.String())
	if line != "" {
		w.lines = append(w.lines, line)
	}
	w.cur.Reset()
}

// ParseContent interprets the text operators of a page content stream and
// returns its lines in stream order. Graphics operators are ignored.
func ParseContent(data []byte) ([]string, error) {
	var (
		w     lineWriter
		stack []operand
		arr   []operand
		inArr bool
	)

	lx := &lexer{data: data}
	for {
		tok, ok, err := lx.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		switch tok.kind {
		case tokNumber:
			o := operand{num: tok.num}
			if inArr {
				arr = append(arr, o)
			} else {
				stack = append(stack, o)
			}
		case tokString:
			o := operand{str: tok.str, isStr: true}
			if inArr {
				arr = append(arr, o)
			} else {
				stack = append(stack, o)
			}
		case tokName:
			stack = append(stack, operand{})
		case tokArrayStart:
			inArr, arr = true, nil
		case tokArrayEnd:
			inArr = false
			stack = append(stack, operand{array: arr})
		case tokOperator:
			if err := apply(&w, tok.op, stack); err != nil {
				return nil, err
			}
			stack = stack[:0]
		}
	}
	w.newline()
	return w.lines, nil
}

func apply(w *lineWriter, op string, stack []operand) error {
	switch op {
	case "ET", "T*":
		w.newline()
	case "Td", "TD":
		if len(stack) >= 2 && stack[len(stack)-1].num != 0 {
			w.newline()
		} else {
			w.space()
		}
	case "Tm":
		if len(stack) >= 6 {
			y := stack[len(stack)-1].num
			if w.hasY && y != w.lastY {
				w.newline()
			} else {
				w.space()
			}
			w.lastY, w.hasY = y, true
		}
	case "Tj":
		return showLast(w, stack)
	case "'":
		w.newline()
		return showLast(w, stack)
	case "\"":
		w.newline()
		return showLast(w, stack)
	case "TJ":
		if len(stack) == 0 {
			return nil
		}
		for _, o := range stack[len(stack)-1].array {
			if o.isStr {
				s, err := decodeString(o.str)
				if err != nil {
					return err
				}
				w.text(s)
			} else if o.num < kerningSpace {
				w.space()
			}
		}
	}
	return nil
}

func showLast(w *lineWriter, stack []operand) error {
	if len(stack) == 0 || !stack[len(stack)-1].isStr {
		return nil
	}
	s, err := decodeString(stack[len(stack)-1].str)
	if err != nil {
		return err
	}
	w.text(s)
	return nil
}

// decodeString decodes a PDF text string: UTF-16BE when it carries a BOM,
// Windows-1252 otherwise. The result is NFC-normalized so accented letters
// compare equal to literals in source code, and no-break spaces become
// plain spaces.
func decodeString(raw []byte) (string, error) {
	if len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF {
		if len(raw)%2 != 0 {
			return "", eris.Wrap(ErrUndecodable, "odd-length UTF-16 string")
		}
		out, err := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Bytes(raw)
		if err != nil {
			return "", eris.Wrapf(ErrUndecodable, "utf-16: %v", err)
		}
		return normalize.Spaces(norm.NFC.String(string(out))), nil
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return "", eris.Wrapf(ErrUndecodable, "windows-1252: %v", err)
	}
	return normalize.Spaces(norm.NFC.String(string(out))), nil
}

type lexer struct {
	data []byte
	pos  int
}

func isWhite(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (l *lexer) next() (token, bool, error) {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch {
		case isWhite(c):
			l.pos++
		case c == '%':
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
		case c == '(':
			s, err := l.literal()
			return token{kind: tokString, str: s}, true, err
		case c == '<':
			if l.pos+1 < len(l.data) && l.data[l.pos+1] == '<' {
				l.pos += 2
				return token{kind: tokName}, true, nil
			}
			s, err := l.hex()
			return token{kind: tokString, str: s}, true, err
		case c == '>':
			// end of a dictionary
			l.pos++
			if l.pos < len(l.data) && l.data[l.pos] == '>' {
				l.pos++
			}
		case c == '[':
			l.pos++
			return token{kind: tokArrayStart}, true, nil
		case c == ']':
			l.pos++
			return token{kind: tokArrayEnd}, true, nil
		case c == '{' || c == '}' || c == ')':
			l.pos++
		case c == '/':
			l.pos++
			l.word()
			return token{kind: tokName}, true, nil
		default:
			w := l.word()
			if w == "" {
				l.pos++
				continue
			}
			if n, err := strconv.ParseFloat(w, 64); err == nil {
				return token{kind: tokNumber, num: n}, true, nil
			}
			if w == "ID" {
				l.skipInlineImage()
				continue
			}
			return token{kind: tokOperator, op: w}, true, nil
		}
	}
	return token{}, false, nil
}

func (l *lexer) word() string {
	start := l.pos
	for l.pos < len(l.data) && !isWhite(l.data[l.pos]) && !isDelim(l.data[l.pos]) {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

// skipInlineImage moves past binary inline image data up to "EI".
func (l *lexer) skipInlineImage() {
	if i := bytes.Index(l.data[l.pos:], []byte("EI")); i >= 0 {
		l.pos += i + 2
		return
	}
	l.pos = len(l.data)
}

func (l *lexer) literal() ([]byte, error) {
	l.pos++ // (
	var out []byte
	depth := 1
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		switch c {
		case '(':
			depth++
			out = append(out, c)
		case ')':
			depth--
			if depth == 0 {
				return out, nil
			}
			out = append(out, c)
		case '\\':
			if l.pos >= len(l.data) {
				return out, nil
			}
			e := l.data[l.pos]
			l.pos++
			switch e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '\r':
				if l.pos < len(l.data) && l.data[l.pos] == '\n' {
					l.pos++
				}
			case '\n':
			default:
				if e >= '0' && e <= '7' {
					v := int(e - '0')
					for k := 0; k < 2 && l.pos < len(l.data) && l.data[l.pos] >= '0' && l.data[l.pos] <= '7'; k++ {
						v = v*8 + int(l.data[l.pos]-'0')
						l.pos++
					}
					out = append(out, byte(v))
				} else {
					out = append(out, e)
				}
			}
		default:
			out = append(out, c)
		}
	}
	return out, nil
}

func (l *lexer) hex() ([]byte, error) {
	l.pos++ // <
	var digits []byte
	for l.pos < len(l.data) && l.data[l.pos] != '>' {
		c := l.data[l.pos]
		l.pos++
		if isWhite(c) {
			continue
		}
		if !isHexDigit(c) {
			return nil, eris.Wrapf(ErrUndecodable, "invalid hex digit %q", c)
		}
		digits = append(digits, c)
	}
	l.pos++ // >
	if len(digits)%2 != 0 {
		digits = append(digits, '0')
	}
	out := make([]byte, len(digits)/2)
	for i := range out {
		v, _ := strconv.ParseUint(string(digits[2*i:2*i+2]), 16, 8)
		out[i] = byte(v)
	}
	return out, nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
