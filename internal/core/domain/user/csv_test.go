package user

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

func TestCSVRecord(t *testing.T) {
	login := time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC)
	u := &User{
		ID:         7,
		Username:   "2023001",
		FirstName:  "Ana",
		LastName:   "Souza",
		Email:      "ana@ifrn.edu.br",
		Role:       RoleCoordenador,
		Professor:  true,
		Active:     true,
		DateJoined: time.Date(2023, 1, 15, 8, 0, 0, 0, time.UTC),
		LastLogin:  &login,
	}

	expected := []string{"7", "Ana Souza", "ana@ifrn.edu.br", "2023001", "Coordenador", "Sim", "Não", "15/01/2023 08:00", "02/03/2024 09:30", "Sim"}
	assert.Equal(t, expected, CSVRecord(u))
}

func TestCSVRecord_NeverLoggedIn(t *testing.T) {
	u := &User{ID: 1, FirstName: "=cmd", Student: true}

	record := CSVRecord(u)

	assert.Equal(t, "'=cmd", record[1])
	assert.Equal(t, "Aluno", record[4])
	assert.Equal(t, "Nunca", record[8])
	assert.Equal(t, "Não", record[9])
}

func TestWriteCSV(t *testing.T) {
	older := &User{ID: 2, FirstName: "Bruno", DateJoined: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := &User{ID: 1, FirstName: "Ana", DateJoined: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)}
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, []*User{newer, older}))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, csvexport.BOM))
	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, csvexport.BOM))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, CSVHeader, records[0])
	assert.Equal(t, "2", records[1][0])
	assert.Equal(t, "1", records[2][0])
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 6, 1, 14, 5, 9, 0, time.UTC)

	assert.Equal(t, "usuarios_20240601_140509.csv", ExportFilename(now))
}
