package formdom

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalportal/internal/core/domain/user"
	"evalportal/internal/platform/dom"
)

const usersPage = `<html><body>
<div class="section-header"><h2>Lista de Usuários</h2></div>
<table class="data-table"><tbody>
  <tr id="ana" data-nome="Ana Souza" data-email="ana@ifrn.edu.br" data-matricula="2021001" data-role="Professor" data-status="ativo"><td>Ana</td><td>Professor</td></tr>
  <tr id="bruno" data-nome="Bruno Lima" data-email="bruno@ifrn.edu.br" data-matricula="2021002" data-role="Sem role" data-status="inativo"><td>Bruno</td><td>Sem role</td></tr>
  <tr id="carla" data-nome="Carla Dias" data-email="carla@ifrn.edu.br" data-matricula="1999" data-role="Coordenador" data-status="ativo" style="color: gray"><td>Carla</td><td>Coordenador</td></tr>
  <tr class="no-results-row"><td colspan="2">Nenhum usuário encontrado</td></tr>
</tbody></table>
<div class="empty-state" style="display: none">Nada por aqui</div>
<div id="modal-overlay">
  <div id="user-info"><p>antigo</p></div>
  <form method="post" action="/usuarios/role">
    <input type="hidden" id="usuario-id" name="usuario_id" value="">
    <select id="role-select" name="role">
      <option value="">Selecione</option>
      <option value="admin" selected>Admin</option>
    </select>
  </form>
</div>
</body></html>`

func TestFilterUserRows(t *testing.T) {
	tests := []struct {
		name    string
		filter  user.Filter
		visible []string
	}{
		{name: "no filter", filter: user.Filter{}, visible: []string{"ana", "bruno", "carla"}},
		{name: "search is case insensitive", filter: user.Filter{Search: "SOUZA"}, visible: []string{"ana"}},
		{name: "search matches email", filter: user.Filter{Search: "bruno@"}, visible: []string{"bruno"}},
		{name: "search matches registration", filter: user.Filter{Search: "1999"}, visible: []string{"carla"}},
		{name: "role", filter: user.Filter{Role: "professor"}, visible: []string{"ana"}},
		{name: "without role", filter: user.Filter{Role: user.NoRoleFilter}, visible: []string{"bruno"}},
		{name: "status is exact", filter: user.Filter{Status: "ativo"}, visible: []string{"ana", "carla"}},
		{name: "combined", filter: user.Filter{Search: "ifrn", Role: "coordenador", Status: "ativo"}, visible: []string{"carla"}},
		{name: "status case folded", filter: user.NewFilter("", "", "INATIVO"), visible: []string{"bruno"}},
		{name: "unknown status ignored", filter: user.NewFilter("", "", "foo"), visible: []string{"ana", "bruno", "carla"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parsePage(t, usersPage)

			n := FilterUserRows(doc, tt.filter)
			assert.Equal(t, len(tt.visible), n)

			for _, id := range []string{"ana", "bruno", "carla"} {
				row := dom.ByID(doc, id)
				want := ""
				if !contains(tt.visible, id) {
					want = "none"
				}
				assert.Equal(t, want, dom.Style(row, "display"), id)
			}

			title := dom.QueryOne(doc, counterSelector)
			assert.Contains(t, dom.Text(title), "Lista de Usuários (")
			assert.Equal(t, "none", dom.Style(dom.QueryOne(doc, emptyStateSelector), "display"))
			assert.Nil(t, dom.QueryOne(doc, noResultsSelector))
		})
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestFilterUserRows_EmptyState(t *testing.T) {
	doc := parsePage(t, usersPage)

	assert.Equal(t, 0, FilterUserRows(doc, user.Filter{Search: "ninguém"}))
	assert.Equal(t, "\U0001F464 Lista de Usuários (0)", dom.Text(dom.QueryOne(doc, counterSelector)))
	assert.Equal(t, "block", dom.Style(dom.QueryOne(doc, emptyStateSelector), "display"))

	assert.Equal(t, 3, FilterUserRows(doc, user.Filter{}))
	assert.Equal(t, "none", dom.Style(dom.QueryOne(doc, emptyStateSelector), "display"))
	assert.Equal(t, "color: gray", dom.AttrOr(dom.ByID(doc, "carla"), "style", ""))
}

func TestFilterUserRows_MissingTable(t *testing.T) {
	doc := parsePage(t, `<html><body><p>vazio</p></body></html>`)
	assert.Equal(t, 0, FilterUserRows(doc, user.Filter{Search: "x"}))
}

func TestPopulateRoleModal(t *testing.T) {
	doc := parsePage(t, usersPage)

	PopulateRoleModal(doc, &user.User{
		ID:        7,
		Username:  "2021001",
		FirstName: "Ana",
		LastName:  "Souza",
		Role:      user.RoleProfessor,
	})

	info := dom.ByID(doc, "user-info")
	text := dom.Text(info)
	assert.NotContains(t, text, "antigo")
	assert.Contains(t, text, "Dados do Usuário")
	assert.Contains(t, text, "Nome: Ana Souza")
	assert.Contains(t, text, "Matrícula: 2021001")

	badge := dom.QueryOne(info, dom.MustCompile("span.role-badge.role-professor"))
	require.NotNil(t, badge)
	assert.Equal(t, "Professor", dom.Text(badge))

	assert.Equal(t, "7", FieldValue(dom.ByID(doc, "usuario-id")))
	assert.Equal(t, "", FieldValue(dom.ByID(doc, "role-select")))

	PopulateRoleModal(doc, nil)
	assert.Equal(t, "7", FieldValue(dom.ByID(doc, "usuario-id")))
}

func TestSearchBinding(t *testing.T) {
	var (
		mu    sync.Mutex
		terms []string
	)
	s := NewSearchBinding(10*time.Millisecond, func(term string) {
		mu.Lock()
		defer mu.Unlock()
		terms = append(terms, term)
	})
	submitted := func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), terms...)
	}

	s.Input("a")
	s.Input("an")
	s.Input("ana")
	assert.Eventually(t, func() bool { return len(submitted()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"ana"}, submitted())

	s.Input("jo")
	assert.Never(t, func() bool { return len(submitted()) > 1 }, 100*time.Millisecond, 10*time.Millisecond)

	s.Input("")
	assert.Eventually(t, func() bool { return len(submitted()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"ana", ""}, submitted())
}

func TestSearchBinding_DefaultsAndStop(t *testing.T) {
	s := NewSearchBinding(0, nil)
	s.Input("qualquer")
	assert.True(t, s.Stop())
	assert.False(t, s.Stop())

	inert := NewSearchBinding(time.Hour, nil)
	inert.Input("abc")
	assert.NotPanics(t, inert.fire)
	inert.Stop()
}
