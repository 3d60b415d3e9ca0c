package pdftext

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpvscraper/internal/pdftext/pdftest"
)

func TestParseContent_LinesFromTextOperators(t *testing.T) {
	stream := []byte(`BT
/F1 9 Tf
72 720 Td
(Processo 0001234-56.2024.8.26.0053 - Cumprimento) Tj
0 -11 Td
(Expe\347a-se RPV para pagamento pelo INSS.) Tj
T*
[(ADV: JO) 30 (\303O) -250 (SILVA)] TJ
ET`)

	lines, err := ParseContent(stream)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Processo 0001234-56.2024.8.26.0053 - Cumprimento",
		"Expeça-se RPV para pagamento pelo INSS.",
		"ADV: JOÃO SILVA",
	}, lines)
}

func TestParseContent_QuoteOperatorsStartNewLine(t *testing.T) {
	stream := []byte(`BT (primeira) Tj (segunda) ' 1 2 (terceira) " ET`)

	lines, err := ParseContent(stream)

	require.NoError(t, err)
	assert.Equal(t, []string{"primeira", "segunda", "terceira"}, lines)
}

func TestParseContent_HorizontalMoveIsSpace(t *testing.T) {
	stream := []byte(`BT (R$) Tj 5 0 Td (1.000,00) Tj ET`)

	lines, err := ParseContent(stream)

	require.NoError(t, err)
	assert.Equal(t, []string{"R$ 1.000,00"}, lines)
}

func TestParseContent_TextMatrixLines(t *testing.T) {
	stream := []byte(`BT
1 0 0 1 72 700 Tm (linha um) Tj
1 0 0 1 200 700 Tm (continua) Tj
1 0 0 1 72 688 Tm (linha dois) Tj
ET`)

	lines, err := ParseContent(stream)

	require.NoError(t, err)
	assert.Equal(t, []string{"linha um continua", "linha dois"}, lines)
}

func TestParseContent_HexAndUTF16Strings(t *testing.T) {
	// <FEFF00E7> is "ç" in UTF-16BE, <4F4B> is "OK".
	stream := []byte(`BT <FEFF0061 00E7> Tj <4F4B> ' ET`)

	lines, err := ParseContent(stream)

	require.NoError(t, err)
	assert.Equal(t, []string{"aç", "OK"}, lines)
}

func TestParseContent_NestedParensAndComments(t *testing.T) {
	stream := []byte("% comentário\nBT (art. 4\\272 (Lei 11.419)) Tj ET")

	lines, err := ParseContent(stream)

	require.NoError(t, err)
	assert.Equal(t, []string{"art. 4º (Lei 11.419)"}, lines)
}

func TestParseContent_SkipsInlineImages(t *testing.T) {
	stream := []byte("BI /W 2 /H 2 ID \x00\x01\x02\x03 EI BT (depois) Tj ET")

	lines, err := ParseContent(stream)

	require.NoError(t, err)
	assert.Equal(t, []string{"depois"}, lines)
}

func TestParseContent_OddUTF16IsUndecodable(t *testing.T) {
	_, err := ParseContent([]byte(`BT <FEFF006100> Tj ET`))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUndecodable))
}

func TestParseContent_InvalidHexIsUndecodable(t *testing.T) {
	_, err := ParseContent([]byte(`BT <4G> Tj ET`))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUndecodable))
}

func TestParseContent_Empty(t *testing.T) {
	lines, err := ParseContent(nil)

	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestExtractPages_MissingFile(t *testing.T) {
	_, err := New().ExtractPages(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreadable))
}

func TestExtractPages_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("isto não é um PDF"), 0o644))

	_, err := New().ExtractPages(context.Background(), path)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreadable))
}

func TestParseContent_NoBreakSpaceBecomesSpace(t *testing.T) {
	lines, err := ParseContent([]byte(`BT (R$ 1.000,00\240- principal) Tj ET`))

	require.NoError(t, err)
	assert.Equal(t, []string{"R$ 1.000,00 - principal"}, lines)
}

func TestExtractPages_WinAnsiDocument(t *testing.T) {
	path := pdftest.WriteFile(t, t.TempDir(), "caderno.pdf", [][]string{
		{
			"quinta-feira, 18 de dezembro de 2024",
			"Processo 0001234-56.2024.8.26.0053 - Cumprimento de Sentença",
		},
		{},
		{
			"R$ 50,00 - juros moratórios;",
			"ADV: JOÃO SILVA (OAB 123456/SP)",
		},
	})

	pages, err := New().ExtractPages(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, "quinta-feira, 18 de dezembro de 2024\n"+
		"Processo 0001234-56.2024.8.26.0053 - Cumprimento de Sentença", pages[0])
	assert.Empty(t, pages[1])
	assert.Equal(t, "R$ 50,00 - juros moratórios;\nADV: JOÃO SILVA (OAB 123456/SP)", pages[2])
}

func TestExtractPages_Cancelled(t *testing.T) {
	path := pdftest.WriteFile(t, t.TempDir(), "caderno.pdf", [][]string{{"Processo 1"}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().ExtractPages(ctx, path)

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestPageText_BrokenPageIsUnreadable(t *testing.T) {
	data, err := pdftest.Build([][]string{{"Processo 1"}})
	require.NoError(t, err)
	p := New()
	pctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), p.conf)
	require.NoError(t, err)

	text, err := pageText(pctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Processo 1", text)

	_, err = pageText(pctx, pctx.PageCount+1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreadable))
}
