package notificacao

import (
	"log/slog"
	"net/http"
	"strconv"

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

func (h *Handler) NaoLidas(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	notificacoes, err := h.Service.NaoLidas(user.ID, limit)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	count, err := h.Service.CountNaoLidas(user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"notificacoes": notificacoes,
		"nao_lidas":    count,
	})
}

func (h *Handler) MarcarTodasLidas(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.Service.MarcarTodasLidas(user.ID); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
