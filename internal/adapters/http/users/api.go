package users

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"evalportal/internal/adapters/http/response"
	"evalportal/internal/core/domain/user"
	userUsecase "evalportal/internal/core/usecase/user"
	"evalportal/internal/platform/logger"
	"evalportal/internal/platform/validator"
)

const apiForm = "api_usuario"

func (h *Handler) ListJSON(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	filter := user.NewFilter(q.Get(paramSearch), q.Get(paramRole), q.Get(paramStatus))

	result, err := h.manager.ListUsers(r.Context(), filter, q.Get(paramPage))
	if err != nil {
		return err
	}

	response.RespondJSON(w, http.StatusOK, result)
	return nil
}

func (h *Handler) GetJSON(w http.ResponseWriter, r *http.Request) error {
	id, err := user.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		return h.mapDomainError(err)
	}

	u, err := h.manager.GetUser(r.Context(), id)
	if err != nil {
		return h.mapDomainError(err)
	}

	response.RespondJSON(w, http.StatusOK, u)
	return nil
}

type ChangeRoleRequest struct {
	Role string `json:"role" label:"Role" validate:"required,role"`
}

func (h *Handler) ChangeRoleJSON(w http.ResponseWriter, r *http.Request) error {
	id, err := user.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		return h.mapDomainError(err)
	}

	var req ChangeRoleRequest
	if !h.decodeAndValidate(w, r, &req) {
		return nil
	}

	u, err := h.manager.ChangeRole(r.Context(), id, req.Role)
	if err != nil {
		return h.mapDomainError(err)
	}

	response.RespondJSON(w, http.StatusOK, u)
	return nil
}

type ResetRoleResponse struct {
	Reset bool       `json:"reset"`
	User  *user.User `json:"usuario"`
}

func (h *Handler) ResetRoleJSON(w http.ResponseWriter, r *http.Request) error {
	id, err := user.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		return h.mapDomainError(err)
	}

	u, reset, err := h.manager.ResetManualRole(r.Context(), id)
	if err != nil {
		return h.mapDomainError(err)
	}

	response.RespondJSON(w, http.StatusOK, ResetRoleResponse{Reset: reset, User: u})
	return nil
}

func (h *Handler) EditJSON(w http.ResponseWriter, r *http.Request) error {
	id, err := user.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		return h.mapDomainError(err)
	}

	var req userUsecase.EditInput
	if !h.decodeAndValidate(w, r, &req) {
		return nil
	}

	u, err := h.manager.EditUser(r.Context(), id, req)
	if err != nil {
		return h.mapDomainError(err)
	}

	response.RespondJSON(w, http.StatusOK, u)
	return nil
}

// decodeAndValidate reads a JSON body into dst. On failure it writes the 400
// response itself and returns false.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	contextLogger := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		contextLogger.Warn("Failed to decode request body", logger.Error(err))
		response.RespondError(w, http.StatusBadRequest, errors.New("invalid request payload"))
		return false
	}

	if err := h.validate.Validate(dst); err != nil {
		var validationErr validator.ValidationError
		if errors.As(err, &validationErr) {
			contextLogger.Warn("Validation failed", logger.Error(err))
			fields := make(map[string][]string)
			for _, fe := range validationErr.Errors {
				h.metrics.RecordValidationFailure(r.Context(), apiForm, fe.Field)
				fields[fe.Field] = append(fields[fe.Field], fe.Message)
			}
			response.RespondFormErrors(w, MsgInvalidForm, fields)
		} else {
			contextLogger.Error("Unexpected validation error", logger.Error(err))
			response.RespondError(w, http.StatusBadRequest, errors.New("invalid request data"))
		}
		return false
	}

	return true
}
