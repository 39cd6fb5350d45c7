package formdom

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"evalportal/internal/core/domain/user"
	"evalportal/internal/platform/dom"
)

var (
	userRowSelector    = dom.MustCompile(".data-table tbody tr")
	cellSelector       = dom.MustCompile("td")
	counterSelector    = dom.MustCompile(".section-header h2")
	emptyStateSelector = dom.MustCompile(".empty-state")
	noResultsSelector  = dom.MustCompile(".no-results-row")
)

const counterFormat = "\U0001F464 Lista de Usuários (%d)"

// PopulateRoleModal fills the role change dialog for u and resets the role
// select to its empty choice.
func PopulateRoleModal(doc *html.Node, u *user.User) {
	if u == nil {
		return
	}

	if info := dom.ByID(doc, "user-info"); info != nil {
		dom.RemoveChildren(info)

		title := dom.Element("h4")
		title.AppendChild(dom.TextNode("Dados do Usuário"))
		info.AppendChild(title)

		info.AppendChild(labelled("Nome:", dom.TextNode(u.FullName())))
		info.AppendChild(labelled("Matrícula:", dom.TextNode(u.Username)))

		badge := dom.Element("span", html.Attribute{Key: "class", Val: "role-badge " + u.Role.BadgeClass()})
		badge.AppendChild(dom.TextNode(u.Role.DisplayName()))
		info.AppendChild(labelled("Role Atual:", badge))
	}

	if id := dom.ByID(doc, "usuario-id"); id != nil {
		SetFieldValue(id, strconv.FormatInt(u.ID, 10))
	}

	if sel := dom.ByID(doc, "role-select"); sel != nil {
		SetFieldValue(sel, "")
	}
}

func labelled(label string, value *html.Node) *html.Node {
	p := dom.Element("p")
	strong := dom.Element("strong")
	strong.AppendChild(dom.TextNode(label))
	p.AppendChild(strong)
	p.AppendChild(dom.TextNode(" "))
	p.AppendChild(value)
	return p
}

// FilterUserRows hides the rows of the users table that do not match f and
// returns how many stay visible. Rows with a single cell are placeholders and
// are neither filtered nor counted. The section counter and the empty state
// follow the visible count.
func FilterUserRows(doc *html.Node, f user.Filter) int {
	search := user.Lower(strings.TrimSpace(f.Search))
	role := user.Lower(strings.TrimSpace(f.Role))
	status := ""
	if active := f.ActiveOnly(); active != nil {
		status = user.StatusInactive
		if *active {
			status = user.StatusActive
		}
	}

	visible := 0
	for _, row := range dom.QueryAll(doc, userRowSelector) {
		if len(dom.QueryAll(row, cellSelector)) <= 1 {
			continue
		}
		if rowMatches(row, search, role, status) {
			dom.SetStyle(row, "display", "")
			visible++
		} else {
			dom.SetStyle(row, "display", "none")
		}
	}

	if title := dom.QueryOne(doc, counterSelector); title != nil {
		dom.SetText(title, fmt.Sprintf(counterFormat, visible))
	}

	if empty := dom.QueryOne(doc, emptyStateSelector); empty != nil {
		if visible == 0 {
			dom.SetStyle(empty, "display", "block")
		} else {
			dom.SetStyle(empty, "display", "none")
		}
	}

	dom.Detach(dom.QueryOne(doc, noResultsSelector))

	return visible
}

func rowMatches(row *html.Node, search, role, status string) bool {
	data := func(key string) string {
		return user.Lower(dom.AttrOr(row, "data-"+key, ""))
	}

	if search != "" &&
		!strings.Contains(data("nome"), search) &&
		!strings.Contains(data("email"), search) &&
		!strings.Contains(data("matricula"), search) {
		return false
	}

	if role != "" {
		rowRole := data("role")
		if role == user.NoRoleFilter {
			if rowRole != "sem role" && rowRole != "" {
				return false
			}
		} else if !strings.Contains(rowRole, role) {
			return false
		}
	}

	if status != "" && data("status") != status {
		return false
	}

	return true
}
