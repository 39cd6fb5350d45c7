package user

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"evalportal/internal/platform/csvexport"
)

const (
	csvDateLayout  = "02/01/2006 15:04"
	filenamePrefix = "usuarios"
)

var CSVHeader = []string{
	"ID",
	"Nome Completo",
	"Email",
	"Username",
	"Role Principal",
	"É Professor",
	"É Aluno",
	"Data de Cadastro",
	"Último Login",
	"Ativo",
}

func ExportFilename(now time.Time) string {
	return filenamePrefix + "_" + now.Format("20060102_150405") + ".csv"
}

// CSVRecord renders one user as an export row.
func CSVRecord(u *User) []string {
	lastLogin := "Nunca"
	if u.LastLogin != nil {
		lastLogin = u.LastLogin.Format(csvDateLayout)
	}

	return []string{
		strconv.FormatInt(u.ID, 10),
		csvexport.Cell(u.FullName()),
		csvexport.Cell(u.Email),
		csvexport.Cell(u.Username),
		u.PrincipalRole(),
		yesNo(u.Professor),
		yesNo(u.Student),
		u.DateJoined.Format(csvDateLayout),
		lastLogin,
		yesNo(u.Active),
	}
}

// WriteCSV writes every user ordered by registration date, oldest first.
func WriteCSV(w io.Writer, users []*User) error {
	cw, err := csvexport.NewWriter(w, CSVHeader)
	if err != nil {
		return err
	}

	ordered := slices.Clone(users)
	slices.SortStableFunc(ordered, func(a, b *User) int {
		return a.DateJoined.Compare(b.DateJoined)
	})

	for _, u := range ordered {
		if err := cw.Write(CSVRecord(u)); err != nil {
			return fmt.Errorf("write user %d: %w", u.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func yesNo(v bool) string {
	if v {
		return "Sim"
	}
	return "Não"
}
