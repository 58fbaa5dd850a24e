package lancamento

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/Jesus-jpg1/GECC-System/internal/auth"
	"github.com/Jesus-jpg1/GECC-System/internal/transport"
	"github.com/Jesus-jpg1/GECC-System/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var dto CreateLancamentoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.Service.Create(user, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, l)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	l, err := h.Service.Get(user, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) Aprovar(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	l, err := h.Service.Aprovar(user, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) Recusar(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var dto RecusarLancamentoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.Service.Recusar(user, id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) Homologar(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	l, err := h.Service.Homologar(user, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) Reverter(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	l, err := h.Service.Reverter(user, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) MeusLancamentos(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	limit, offset := parsePagination(r)
	lancamentos, err := h.Service.MeusLancamentos(user, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.writeList(w, lancamentos, limit, offset)
}

func (h *Handler) PendentesParaAvaliacao(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	limit, offset := parsePagination(r)
	lancamentos, err := h.Service.PendentesParaAvaliacao(user, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.writeList(w, lancamentos, limit, offset)
}

func (h *Handler) Auditoria(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	limit, offset := parsePagination(r)
	query := ListLancamentosQuery{
		Status:  r.URL.Query().Get("status"),
		Limit:   limit,
		Offset:  offset,
		SortBy:  r.URL.Query().Get("sort_by"),
		SortDir: r.URL.Query().Get("sort_dir"),
	}
	if v := r.URL.Query().Get("edital_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			query.EditalID = id
		}
	}

	lancamentos, err := h.Service.Auditoria(user, query)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.writeList(w, lancamentos, limit, offset)
}

func (h *Handler) Saldo(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	editalID, err := strconv.ParseInt(chi.URLParam(r, "editalID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid edital id")
		return
	}

	saldo, err := h.Service.Saldo(user, editalID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, saldo)
}

func (h *Handler) writeList(w http.ResponseWriter, lancamentos []*Lancamento, limit, offset int) {
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"lancamentos": lancamentos,
		"limit":       limit,
		"offset":      offset,
	})
}

func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (*auth.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	return user, true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid lancamento id")
		return 0, false
	}
	return id, true
}

func parsePagination(r *http.Request) (limit, offset int) {
	limit = 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
