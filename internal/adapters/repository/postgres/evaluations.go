package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"evalportal/internal/core/domain/report"
)

type EvaluationRepository struct {
	db Connector
}

func NewEvaluationRepository(db Connector) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

func (r *EvaluationRepository) Find(ctx context.Context, filter report.Filter) ([]report.Evaluation, error) {
	q := r.db.Connection().Builder().
		Select(
			"a.id", "a.ciclo_id", "c.nome", "a.professor_id", "p.nome",
			"a.disciplina", "a.turma", "a.periodo_letivo", "a.total_alunos", "a.respondentes",
		).
		From("avaliacoes a").
		Join("ciclos c ON c.id = a.ciclo_id").
		Join("professores p ON p.id = a.professor_id").
		Where("a.respondentes > 0").
		OrderBy("a.id")

	if filter.CycleID != 0 {
		q = q.Where(sq.Eq{"a.ciclo_id": filter.CycleID})
	}
	if filter.ProfessorID != 0 {
		q = q.Where(sq.Eq{"a.professor_id": filter.ProfessorID})
	}
	if filter.Search != "" {
		like := "%" + escapeLike(filter.Search) + "%"
		q = q.Where(sq.Or{
			sq.ILike{"p.nome": like},
			sq.ILike{"a.disciplina": like},
			sq.ILike{"a.turma": like},
		})
	}

	rows, err := q.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	evs := []report.Evaluation{}
	index := map[int64]int{}
	for rows.Next() {
		var ev report.Evaluation
		if err := rows.Scan(
			&ev.ID, &ev.Cycle.ID, &ev.Cycle.Name, &ev.Professor.ID, &ev.Professor.Name,
			&ev.Discipline, &ev.ClassCode, &ev.Period, &ev.Enrolled, &ev.Respondents,
		); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		index[ev.ID] = len(evs)
		evs = append(evs, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(evs) == 0 {
		return evs, nil
	}

	ids := make([]int64, len(evs))
	for i, ev := range evs {
		ids[i] = ev.ID
	}
	if err := r.loadQuestions(ctx, ids, evs, index); err != nil {
		return nil, err
	}
	if err := r.loadComments(ctx, ids, evs, index); err != nil {
		return nil, err
	}
	return evs, nil
}

func (r *EvaluationRepository) loadQuestions(ctx context.Context, ids []int64, evs []report.Evaluation, index map[int64]int) error {
	rows, err := r.db.Connection().Builder().
		Select("avaliacao_id", "ordem", "enunciado", "tipo", "contagens", "valores").
		From("avaliacao_perguntas").
		Where(sq.Eq{"avaliacao_id": ids}).
		OrderBy("avaliacao_id", "ordem").
		QueryContext(ctx)
	if err != nil {
		return fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			evID   int64
			q      report.Question
			kind   string
			counts []byte
			values pq.Int64Array
		)
		if err := rows.Scan(&evID, &q.Order, &q.Text, &kind, &counts, &values); err != nil {
			return fmt.Errorf("scan question: %w", err)
		}

		q.Kind = report.QuestionKind(kind)
		if len(counts) > 0 {
			if err := json.Unmarshal(counts, &q.Counts); err != nil {
				return fmt.Errorf("decode counts of evaluation %d: %w", evID, err)
			}
		}
		for _, v := range values {
			q.Values = append(q.Values, int(v))
		}

		if i, ok := index[evID]; ok {
			evs[i].Questions = append(evs[i].Questions, q)
		}
	}
	return rows.Err()
}

func (r *EvaluationRepository) loadComments(ctx context.Context, ids []int64, evs []report.Evaluation, index map[int64]int) error {
	rows, err := r.db.Connection().Builder().
		Select("avaliacao_id", "texto").
		From("avaliacao_comentarios").
		Where(sq.Eq{"avaliacao_id": ids}).
		Where("texto <> ''").
		OrderBy("avaliacao_id", "id").
		QueryContext(ctx)
	if err != nil {
		return fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			evID int64
			text string
		)
		if err := rows.Scan(&evID, &text); err != nil {
			return fmt.Errorf("scan comment: %w", err)
		}
		if i, ok := index[evID]; ok {
			evs[i].Comments = append(evs[i].Comments, text)
		}
	}
	return rows.Err()
}

// Cycles lists the newest cycle first.
func (r *EvaluationRepository) Cycles(ctx context.Context) ([]report.Cycle, error) {
	rows, err := r.db.Connection().Builder().
		Select("id", "nome").
		From("ciclos").
		OrderBy("id DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query cycles: %w", err)
	}
	defer rows.Close()

	cycles := []report.Cycle{}
	for rows.Next() {
		var c report.Cycle
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		cycles = append(cycles, c)
	}
	return cycles, rows.Err()
}

func (r *EvaluationRepository) Professors(ctx context.Context) ([]report.Professor, error) {
	rows, err := r.db.Connection().Builder().
		Select("id", "nome").
		From("professores").
		OrderBy("nome").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query professors: %w", err)
	}
	defer rows.Close()

	professors := []report.Professor{}
	for rows.Next() {
		var p report.Professor
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		professors = append(professors, p)
	}
	return professors, rows.Err()
}

// Save stores an evaluation with its cycle, professor, questions and
// comments in one transaction. An evaluation id already stored is skipped.
func (r *EvaluationRepository) Save(ctx context.Context, ev report.Evaluation) error {
	return r.db.Connection().WithTx(ctx, func(b sq.StatementBuilderType) error {
		if _, err := b.Insert("ciclos").Columns("id", "nome").
			Values(ev.Cycle.ID, ev.Cycle.Name).
			Suffix("ON CONFLICT (id) DO NOTHING").
			ExecContext(ctx); err != nil {
			return fmt.Errorf("insert cycle %d: %w", ev.Cycle.ID, err)
		}

		if _, err := b.Insert("professores").Columns("id", "nome").
			Values(ev.Professor.ID, ev.Professor.Name).
			Suffix("ON CONFLICT (id) DO NOTHING").
			ExecContext(ctx); err != nil {
			return fmt.Errorf("insert professor %d: %w", ev.Professor.ID, err)
		}

		res, err := b.Insert("avaliacoes").
			Columns("id", "ciclo_id", "professor_id", "disciplina", "turma", "periodo_letivo", "total_alunos", "respondentes").
			Values(ev.ID, ev.Cycle.ID, ev.Professor.ID, ev.Discipline, ev.ClassCode, ev.Period, ev.Enrolled, ev.Respondents).
			Suffix("ON CONFLICT (id) DO NOTHING").
			ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("insert evaluation %d: %w", ev.ID, err)
		}
		if n, err := res.RowsAffected(); err != nil || n == 0 {
			return err
		}

		for _, q := range ev.Questions {
			counts, err := json.Marshal(q.Counts)
			if err != nil {
				return err
			}
			values := make(pq.Int64Array, len(q.Values))
			for i, v := range q.Values {
				values[i] = int64(v)
			}
			if _, err := b.Insert("avaliacao_perguntas").
				Columns("avaliacao_id", "ordem", "enunciado", "tipo", "contagens", "valores").
				Values(ev.ID, q.Order, q.Text, string(q.Kind), string(counts), values).
				ExecContext(ctx); err != nil {
				return fmt.Errorf("insert question %d of evaluation %d: %w", q.Order, ev.ID, err)
			}
		}

		for _, text := range ev.Comments {
			if _, err := b.Insert("avaliacao_comentarios").
				Columns("avaliacao_id", "texto").
				Values(ev.ID, text).
				ExecContext(ctx); err != nil {
				return fmt.Errorf("insert comment of evaluation %d: %w", ev.ID, err)
			}
		}
		return nil
	})
}
