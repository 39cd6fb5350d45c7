package users

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/net/html"

	"evalportal/internal/adapters/formdom"
	"evalportal/internal/adapters/http/pages"
	"evalportal/internal/core/domain/fieldcheck"
	"evalportal/internal/core/domain/paging"
	"evalportal/internal/core/domain/user"
	userUsecase "evalportal/internal/core/usecase/user"
	"evalportal/internal/platform/csvexport"
	"evalportal/internal/platform/dom"
	httpErrors "evalportal/internal/platform/http"
	"evalportal/internal/platform/logger"
	"evalportal/internal/platform/validator"
)

const (
	ListPath = "/usuarios"

	paramSearch = "busca"
	paramRole   = "role"
	paramStatus = "status"
	paramPage   = "page"
	paramModal  = "alterar"
	paramNotice = "aviso"
	paramUser   = "usuario"

	exportKind = "usuarios"
	editForm   = "usuario_editar"
	roleForm   = "role"
)

const (
	noticeRoleChanged  = "role-alterada"
	noticeRoleReset    = "role-resetada"
	noticeRoleNotReset = "role-nao-resetada"
	noticeUserUpdated  = "usuario-atualizado"
)

const (
	MsgInvalidForm = "Corrija os erros destacados no formulário."
	MsgInvalidUser = "Usuário inválido."
	MsgUserMissing = "Usuário não encontrado."
)

type Handler struct {
	manager  Manager
	validate validator.Validator
	renderer *pages.Renderer
	metrics  Recorder
	now      func() time.Time
}

func NewHandler(manager Manager, validate validator.Validator, renderer *pages.Renderer, metrics Recorder) *Handler {
	return &Handler{
		manager:  manager,
		validate: validate,
		renderer: renderer,
		metrics:  metrics,
		now:      time.Now,
	}
}

func (h *Handler) mapDomainError(err error) error {
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		return httpErrors.NewNotFound(MsgUserMissing, err)
	case errors.Is(err, user.ErrInvalidUserID):
		return httpErrors.NewNotFound(MsgUserMissing, err)
	case errors.Is(err, user.ErrInvalidRole):
		return httpErrors.NewBadRequest(user.MsgInvalidRole, err)
	case errors.Is(err, user.ErrInvalidProfile):
		return httpErrors.NewBadRequest("A matrícula é obrigatória.", err)
	default:
		var takenErr *user.UsernameTakenError
		if errors.As(err, &takenErr) {
			return httpErrors.NewConflict(takenErr.Error(), err)
		}
		return err
	}
}

type roleOption struct {
	Value    string
	Label    string
	Selected bool
}

type listBody struct {
	*userUsecase.ListResult
	RoleFilters []roleOption
	RoleChoices []roleOption
	PageLinks   map[int]string
}

// List renders the users page. The alterar parameter opens the role dialog
// for that user.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()

	messages := h.notices(r.Context(), q)

	var modal *user.User
	if raw := q.Get(paramModal); raw != "" {
		if id, err := user.ParseID(raw); err == nil {
			u, err := h.manager.GetUser(r.Context(), id)
			switch {
			case err == nil:
				modal = u
			case errors.Is(err, user.ErrUserNotFound):
				messages = append(messages, pages.Message{Level: pages.LevelError, Text: MsgUserMissing})
			default:
				return err
			}
		}
	}

	return h.renderList(w, r, http.StatusOK, messages, func(doc *html.Node) {
		if modal != nil {
			openRoleModal(doc, modal)
		}
	})
}

func (h *Handler) renderList(w http.ResponseWriter, r *http.Request, status int, messages []pages.Message, mutate func(doc *html.Node)) error {
	q := r.URL.Query()
	filter := user.NewFilter(q.Get(paramSearch), q.Get(paramRole), q.Get(paramStatus))

	result, err := h.manager.ListUsers(r.Context(), filter, q.Get(paramPage))
	if err != nil {
		return err
	}

	doc, err := h.renderer.Document(pages.Users, pages.View{
		Title:    "Gerenciar Usuários",
		Nav:      "usuarios",
		Messages: messages,
		Body: listBody{
			ListResult:  result,
			RoleFilters: roleFilters(filter),
			RoleChoices: roleChoices(),
			PageLinks:   pageLinks(r.URL, result.Page),
		},
	})
	if err != nil {
		return err
	}

	formdom.FilterUserRows(doc, filter)
	if mutate != nil {
		mutate(doc)
	}
	return pages.Write(w, status, doc)
}

func openRoleModal(doc *html.Node, u *user.User) {
	formdom.PopulateRoleModal(doc, u)
	dom.SetStyle(dom.ByID(doc, "modal-overlay"), "display", "flex")
}

func roleFilters(f user.Filter) []roleOption {
	selected := f.RoleName()
	var out []roleOption
	for _, r := range append(user.AssignableRoles(), user.RoleNone) {
		out = append(out, roleOption{
			Value:    r.FilterValue(),
			Label:    r.DisplayName(),
			Selected: f.Role != "" && user.Lower(r.DisplayName()) == selected,
		})
	}
	return out
}

func roleChoices() []roleOption {
	var out []roleOption
	for _, r := range user.AssignableRoles() {
		out = append(out, roleOption{Value: string(r), Label: r.Label()})
	}
	return out
}

func pageLinks(current *url.URL, p paging.Page) map[int]string {
	links := make(map[int]string, p.TotalPages)
	for _, n := range p.Numbers() {
		u := *current
		q := u.Query()
		q.Set(paramPage, strconv.Itoa(n))
		q.Del(paramNotice)
		q.Del(paramUser)
		q.Del(paramModal)
		u.RawQuery = q.Encode()
		links[n] = u.String()
	}
	return links
}

// notices turns the aviso and usuario parameters left by a redirect into
// page messages.
func (h *Handler) notices(ctx context.Context, q url.Values) []pages.Message {
	notice := q.Get(paramNotice)
	if notice == "" {
		return nil
	}
	id, err := user.ParseID(q.Get(paramUser))
	if err != nil {
		return nil
	}
	u, err := h.manager.GetUser(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Debug("Notice for unknown user", logger.Int64("user_id", id), logger.Error(err))
		return nil
	}

	switch notice {
	case noticeRoleChanged:
		return []pages.Message{{
			Level: pages.LevelSuccess,
			Text:  fmt.Sprintf("Role de %s alterada para %s com sucesso!", u.Username, u.Role.DisplayName()),
		}}
	case noticeRoleReset:
		return []pages.Message{{
			Level: pages.LevelSuccess,
			Text:  fmt.Sprintf("Flag manual removida para %s. O SUAP voltará a gerenciar automaticamente a role deste usuário.", u.Username),
		}}
	case noticeRoleNotReset:
		return []pages.Message{{
			Level: pages.LevelWarning,
			Text:  fmt.Sprintf("Usuário %s não possui integração com SUAP ou não tem flag manual definida.", u.Username),
		}}
	case noticeUserUpdated:
		return []pages.Message{{
			Level: pages.LevelSuccess,
			Text:  fmt.Sprintf("Usuário '%s' atualizado com sucesso!", u.Username),
		}}
	default:
		return nil
	}
}

func redirectWithNotice(w http.ResponseWriter, r *http.Request, notice string, id int64) {
	q := url.Values{}
	q.Set(paramNotice, notice)
	q.Set(paramUser, strconv.FormatInt(id, 10))
	http.Redirect(w, r, ListPath+"?"+q.Encode(), http.StatusSeeOther)
}

// ChangeRole handles the role dialog. An invalid role re-renders the page
// with the dialog open and the error shown inside it.
func (h *Handler) ChangeRole(w http.ResponseWriter, r *http.Request) error {
	contextLogger := logger.FromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		return httpErrors.NewBadRequest("Formulário inválido.", err)
	}

	id, err := user.ParseID(r.PostFormValue("usuario_id"))
	if err != nil {
		contextLogger.Warn("Role change without a valid user id", logger.String("usuario_id", r.PostFormValue("usuario_id")))
		h.metrics.RecordValidationFailure(r.Context(), roleForm, "usuario_id")
		return h.renderList(w, r, http.StatusBadRequest, []pages.Message{{Level: pages.LevelError, Text: MsgInvalidUser}}, nil)
	}

	rawRole := r.PostFormValue("role")
	u, err := h.manager.ChangeRole(r.Context(), id, rawRole)
	if errors.Is(err, user.ErrInvalidRole) {
		h.metrics.RecordValidationFailure(r.Context(), roleForm, "role")
		target, getErr := h.manager.GetUser(r.Context(), id)
		if getErr != nil {
			return h.mapDomainError(getErr)
		}
		return h.renderList(w, r, http.StatusBadRequest, nil, func(doc *html.Node) {
			openRoleModal(doc, target)
			formdom.ShowFieldErrors(dom.ByID(doc, "role-select"), []string{user.MsgInvalidRole})
			formdom.ShowFormErrorMessage(doc, MsgInvalidForm, "#form-role")
		})
	}
	if err != nil {
		return h.mapDomainError(err)
	}

	redirectWithNotice(w, r, noticeRoleChanged, u.ID)
	return nil
}

func (h *Handler) ResetRole(w http.ResponseWriter, r *http.Request) error {
	id, err := user.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		return h.mapDomainError(err)
	}

	u, reset, err := h.manager.ResetManualRole(r.Context(), id)
	if err != nil {
		return h.mapDomainError(err)
	}

	notice := noticeRoleReset
	if !reset {
		notice = noticeRoleNotReset
	}
	redirectWithNotice(w, r, notice, u.ID)
	return nil
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) error {
	users, err := h.manager.ExportUsers(r.Context())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := user.WriteCSV(&buf, users); err != nil {
		return fmt.Errorf("write users csv: %w", err)
	}

	h.metrics.RecordExport(r.Context(), exportKind)
	csvexport.SetHeaders(w, user.ExportFilename(h.now()))
	w.WriteHeader(http.StatusOK)
	_, err = buf.WriteTo(w)
	return err
}

type editBody struct {
	ID    int64
	Input userUsecase.EditInput
}

var editFields = []formdom.Field{
	{ID: "id_username", Rule: fieldcheck.Labelled("Matrícula", fieldcheck.NumericID(true, 0))},
	{ID: "id_first_name", Rule: fieldcheck.Labelled("Nome", fieldcheck.NameShape(false, 0))},
	{ID: "id_email", Rule: fieldcheck.EmailShape(false)},
	{ID: "id_password", Rule: fieldcheck.Strength()},
}

func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) error {
	id, err := user.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		return h.mapDomainError(err)
	}

	u, err := h.manager.GetUser(r.Context(), id)
	if err != nil {
		return h.mapDomainError(err)
	}

	doc, err := h.editDocument(id, inputOf(u))
	if err != nil {
		return err
	}
	return pages.Write(w, http.StatusOK, doc)
}

// Edit validates the submitted form on the rendered page of an existing user;
// only a clean form reaches the use case.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) error {
	contextLogger := logger.FromContext(r.Context())

	id, err := user.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		return h.mapDomainError(err)
	}
	if _, err := h.manager.GetUser(r.Context(), id); err != nil {
		return h.mapDomainError(err)
	}
	if err := r.ParseForm(); err != nil {
		return httpErrors.NewBadRequest("Formulário inválido.", err)
	}

	in := userUsecase.EditInput{
		Username:  r.PostFormValue("username"),
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Email:     r.PostFormValue("email"),
		Password:  r.PostFormValue("password"),
		Active:    r.PostFormValue("is_active") == "on",
	}

	doc, err := h.editDocument(id, in)
	if err != nil {
		return err
	}

	password := dom.ByID(doc, "id_password")
	formdom.SetFieldValue(password, in.Password)
	valid := formdom.ValidateForm(doc, editFields)
	formdom.SetFieldValue(password, "")

	if !valid {
		var failed []string
		for _, f := range editFields {
			if formdom.HasFieldErrors(dom.ByID(doc, f.ID)) {
				failed = append(failed, f.ID)
				h.metrics.RecordValidationFailure(r.Context(), editForm, f.ID)
			}
		}
		contextLogger.Warn("User edit rejected", logger.Int64("user_id", id), logger.Strings("fields", failed))
		formdom.ShowFormErrorMessage(doc, MsgInvalidForm, "#form-usuario")
		return pages.Write(w, http.StatusBadRequest, doc)
	}

	u, err := h.manager.EditUser(r.Context(), id, in)
	if err != nil {
		mapped := h.mapDomainError(err)
		var httpErr *httpErrors.Error
		if !errors.As(mapped, &httpErr) || httpErr.StatusCode == http.StatusNotFound {
			return mapped
		}

		h.metrics.RecordValidationFailure(r.Context(), editForm, "id_username")
		formdom.ShowFieldErrors(dom.ByID(doc, "id_username"), []string{httpErr.Error()})
		formdom.Focus(doc, dom.ByID(doc, "id_username"))
		formdom.ShowFormErrorMessage(doc, httpErr.Error(), "#form-usuario")
		return pages.Write(w, httpErr.StatusCode, doc)
	}

	redirectWithNotice(w, r, noticeUserUpdated, u.ID)
	return nil
}

func (h *Handler) editDocument(id int64, in userUsecase.EditInput) (*html.Node, error) {
	in.Password = ""
	return h.renderer.Document(pages.UserEdit, pages.View{
		Title: "Editar Usuário",
		Nav:   "usuarios",
		Body:  editBody{ID: id, Input: in},
	})
}

func inputOf(u *user.User) userUsecase.EditInput {
	return userUsecase.EditInput{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Active:    u.Active,
	}
}
