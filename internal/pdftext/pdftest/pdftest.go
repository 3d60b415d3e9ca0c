// Package pdftest builds small uncompressed PDFs for tests.
package pdftest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

// Build returns a PDF with one page per element of pages. Each line is drawn
// with Helvetica in WinAnsiEncoding, one text line below the other.
func Build(pages [][]string) ([]byte, error) {
	const fontObj = 3
	nObjs := 3 + 2*len(pages)

	var b strings.Builder
	offsets := make([]int, nObjs+1)
	object := func(nr int, body string) {
		offsets[nr] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", nr, body)
	}

	b.WriteString("%PDF-1.4\n")
	object(1, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	object(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	object(fontObj, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for i, lines := range pages {
		pageNr, contentNr := 4+2*i, 5+2*i
		stream, err := contentStream(lines)
		if err != nil {
			return nil, err
		}
		object(pageNr, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Contents %d 0 R /Resources << /Font << /F1 %d 0 R >> >> >>",
			contentNr, fontObj))
		object(contentNr, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", nObjs+1)
	for nr := 1; nr <= nObjs; nr++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[nr])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", nObjs+1, xref)
	return []byte(b.String()), nil
}

// WriteFile builds the PDF into dir/name and returns its path.
func WriteFile(t testing.TB, dir, name string, pages [][]string) string {
	t.Helper()
	data, err := Build(pages)
	if err != nil {
		t.Fatalf("build pdf: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	return path
}

func contentStream(lines []string) (string, error) {
	var b strings.Builder
	b.WriteString("BT\n/F1 10 Tf\n72 800 Td\n")
	for i, line := range lines {
		if i > 0 {
			b.WriteString("0 -14 Td\n")
		}
		lit, err := literal(line)
		if err != nil {
			return "", err
		}
		b.WriteString(lit + " Tj\n")
	}
	b.WriteString("ET")
	return b.String(), nil
}

// literal encodes s as a PDF string literal, escaping non-ASCII bytes in octal
// so the content stream stays 7-bit.
func literal(s string) (string, error) {
	raw, err := charmap.Windows1252.NewEncoder().String(s)
	if err != nil {
		return "", fmt.Errorf("encode %q: %w", s, err)
	}
	var b strings.Builder
	b.WriteByte('(')
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '(' || c == ')' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&b, "\\%03o", c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(')')
	return b.String(), nil
}
