// Package seed loads a small demo data set into a fresh store.
package seed

import (
	"context"
	"fmt"
	"time"

	"evalportal/internal/core/domain/report"
	"evalportal/internal/core/domain/user"
)

type UserStore interface {
	Save(ctx context.Context, u *user.User) error
}

type EvaluationStore interface {
	Save(ctx context.Context, ev report.Evaluation) error
}

func Users(now time.Time) []*user.User {
	day := 24 * time.Hour
	lastLogin := now.Add(-2 * day)

	return []*user.User{
		{ID: 1, Username: "1000001", FirstName: "Marta", LastName: "Admin", Email: "marta@example.edu.br", Role: user.RoleAdmin, Active: true, DateJoined: now.Add(-400 * day), LastLogin: &lastLogin},
		{ID: 2, Username: "2019010", FirstName: "Ana", LastName: "Souza", Email: "ana.souza@example.edu.br", Role: user.RoleCoordenador, Active: true, Professor: true, SSOLinked: true, RoleManual: true, DateJoined: now.Add(-300 * day), LastLogin: &lastLogin},
		{ID: 3, Username: "2019011", FirstName: "Bruno", LastName: "Lima", Email: "bruno.lima@example.edu.br", Role: user.RoleProfessor, Active: true, Professor: true, SSOLinked: true, DateJoined: now.Add(-280 * day)},
		{ID: 4, Username: "20231001", FirstName: "Carla", LastName: "Conceição", Email: "carla@example.edu.br", Role: user.RoleAluno, Active: true, Student: true, SSOLinked: true, DateJoined: now.Add(-100 * day)},
		{ID: 5, Username: "20231002", FirstName: "Diego", LastName: "Araújo", Email: "diego@example.edu.br", Role: user.RoleAluno, Student: true, DateJoined: now.Add(-90 * day)},
		{ID: 6, Username: "20231003", FirstName: "Elisa", Email: "elisa@example.edu.br", Active: true, DateJoined: now.Add(-10 * day)},
	}
}

func Evaluations() []report.Evaluation {
	c1 := report.Cycle{ID: 1, Name: "2024.1"}
	c2 := report.Cycle{ID: 2, Name: "2024.2"}
	ana := report.Professor{ID: 1, Name: "Ana Souza"}
	bruno := report.Professor{ID: 2, Name: "Bruno Lima"}

	standard := func(counts ...[5]int) []report.Question {
		texts := []string{
			"O professor demonstra domínio do conteúdo?",
			"As aulas são bem organizadas?",
			"O professor esclarece as dúvidas?",
		}
		qs := make([]report.Question, 0, len(counts)+1)
		for i, c := range counts {
			q := report.Question{Order: i + 1, Text: texts[i%len(texts)], Kind: report.KindMultipleChoice, Counts: map[string]int{}}
			for j, n := range c {
				q.Counts[report.Scale[j]] = n
			}
			qs = append(qs, q)
		}
		return qs
	}

	return []report.Evaluation{
		{
			ID: 1, Cycle: c1, Professor: ana, Discipline: "Cálculo I", ClassCode: "CAL1-T01", Period: "2024.1",
			Enrolled: 30, Respondents: 12,
			Questions: append(standard([5]int{0, 1, 2, 5, 4}, [5]int{0, 0, 3, 6, 3}, [5]int{1, 1, 2, 4, 4}),
				report.Question{Order: 4, Text: "Nota geral da disciplina", Kind: report.KindLikert, Values: []int{4, 5, 3, 4, 5, 4}},
				report.Question{Order: 5, Text: "Comentários", Kind: report.KindFreeText},
			),
			Comments: []string{"Ótima didática.", "Poderia disponibilizar mais exercícios.", "<b>Excelente</b> professora!"},
		},
		{
			ID: 2, Cycle: c1, Professor: bruno, Discipline: "Física I", ClassCode: "FIS1-T02", Period: "2024.1",
			Enrolled: 25, Respondents: 8,
			Questions: standard([5]int{1, 2, 3, 2, 0}, [5]int{0, 2, 4, 2, 0}),
			Comments:  []string{"Aulas muito rápidas.", "=HYPERLINK(\"http://example.com\")"},
		},
		{
			ID: 3, Cycle: c2, Professor: ana, Discipline: "Cálculo II", ClassCode: "CAL2-T01", Period: "2024.2",
			Enrolled: 20, Respondents: 15,
			Questions: append(standard([5]int{0, 0, 1, 4, 10}),
				report.Question{Order: 2, Text: "Você recomendaria a disciplina?", Kind: report.KindNPS, Values: []int{9, 10, 8, 10, 7}},
			),
		},
		{
			ID: 4, Cycle: c2, Professor: bruno, Discipline: "Física II", ClassCode: "FIS2-T01", Period: "2024.2",
			Enrolled: 18, Respondents: 0,
		},
	}
}

// Load saves the demo users and evaluations.
func Load(ctx context.Context, users UserStore, evaluations EvaluationStore, now time.Time) error {
	for _, u := range Users(now) {
		if err := users.Save(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}
	for _, ev := range Evaluations() {
		if err := evaluations.Save(ctx, ev); err != nil {
			return fmt.Errorf("seed evaluation %d: %w", ev.ID, err)
		}
	}
	return nil
}
