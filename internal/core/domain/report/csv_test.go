package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"evalportal/internal/platform/csvexport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvaluation() Evaluation {
	return Evaluation{
		ID:          1,
		Cycle:       Cycle{ID: 1, Name: "2024.1"},
		Professor:   Professor{ID: 2, Name: "Ana Souza"},
		Discipline:  "Cálculo I",
		ClassCode:   "T01",
		Period:      "2024.1",
		Enrolled:    4,
		Respondents: 2,
		Questions: []Question{
			{Order: 2, Text: "Nota geral", Kind: KindLikert, Values: []int{4, 5}},
			choice(1, "Didática", 0, 0, 0, 1, 1),
			{Order: 3, Text: "Sugestões", Kind: KindFreeText},
		},
		Comments: []string{"<b>Ótima</b> aula"},
	}
}

func TestStripMarkup(t *testing.T) {
	assert.Equal(t, "Ótima aula", StripMarkup("<b>Ótima</b> aula"))
	assert.Equal(t, "a & b", StripMarkup("a &amp; b"))
	assert.Equal(t, "", StripMarkup("<script>alert(1)</script>"))
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 6, 1, 14, 5, 9, 0, time.UTC)

	assert.Equal(t, "relatorio_avaliacoes_20240601_140509.csv", ExportFilename("", "", now))
	assert.Equal(t,
		"relatorio_avaliacoes_ciclo_2024.1_prof_Ana_Souza_20240601_140509.csv",
		ExportFilename("2024.1", "Ana Souza", now),
	)
}

func TestCommentsCell(t *testing.T) {
	comments := []string{"a", "b", "c", "d", "e", "f", "g"}

	assert.Equal(t, "a | b | c | d | e | ... (+2 comentários)", CommentsCell(comments, 5))
	assert.Equal(t, "a | b", CommentsCell(comments[:2], 5))
	assert.Equal(t, "", CommentsCell(nil, 5))
	assert.Equal(t, "'=1+1", CommentsCell([]string{"=1+1"}, 5))
}

func TestRows_PerQuestion(t *testing.T) {
	ev := sampleEvaluation()

	rows := Rows(&ev, 5)

	require.Len(t, rows, 2, "free text questions are left out")
	for _, row := range rows {
		assert.Len(t, row, len(Header))
	}

	first := rows[0]
	assert.Equal(t, "Didática", first[10])
	assert.Equal(t, "Múltipla Escolha", first[11])
	assert.Equal(t, "4.5", first[12])
	assert.Equal(t, "Bom", first[13])
	assert.Equal(t, "Excelente", first[14])
	assert.Equal(t, []string{"0", "0", "0", "1", "1"}, first[15:20])
	assert.Equal(t, "2", first[20])
	assert.Equal(t, "Ótima aula", first[21])

	second := rows[1]
	assert.Equal(t, "Escala Likert", second[11])
	assert.Equal(t, "4.5", second[12])
	assert.Equal(t, "4", second[13])
	assert.Equal(t, []string{"N/A", "N/A", "N/A", "N/A", "N/A", "N/A"}, second[14:20])
	assert.Empty(t, second[21])

	assert.Equal(t, "50", first[7])
	assert.Equal(t, "4.5", first[8])
	assert.Equal(t, "Excelente", first[9])
}

func TestRows_NoQuestions(t *testing.T) {
	ev := Evaluation{Discipline: "=Física", Enrolled: 0, Comments: []string{"x"}}

	rows := Rows(&ev, 5)

	require.Len(t, rows, 1)
	row := rows[0]
	assert.Len(t, row, len(Header))
	assert.Equal(t, "'=Física", row[0])
	assert.Equal(t, "0", row[7])
	assert.Equal(t, NotAvailable, row[8])
	assert.Equal(t, NotAvailable, row[9])
	for _, cell := range row[10:21] {
		assert.Equal(t, NotAvailable, cell)
	}
	assert.Equal(t, "x", row[21])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer

	err := WriteCSV(&buf, []Evaluation{sampleEvaluation()}, 5)
	require.NoError(t, err)

	out := buf.String()
	require.True(t, strings.HasPrefix(out, csvexport.BOM))

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, csvexport.BOM))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, Header, records[0])
	assert.Equal(t, "Ana Souza", records[1][1])
}
