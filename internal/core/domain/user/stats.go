package user

// Stats are the counters shown above the users table.
type Stats struct {
	Total      int `json:"total_usuarios"`
	Active     int `json:"usuarios_ativos"`
	Professors int `json:"professores"`
	Students   int `json:"alunos"`
}

func (s *Stats) Add(u *User) {
	s.Total++
	if u.Active {
		s.Active++
	}
	if u.Professor {
		s.Professors++
	}
	if u.Student {
		s.Students++
	}
}
