package notificacao

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jesus-jpg1/GECC-System/internal/core/events"
	"github.com/Jesus-jpg1/GECC-System/internal/core/horas"
)

// EventHandler turns workflow events into inbox messages for the affected
// users.
type EventHandler struct {
	service *Service
	logger  *slog.Logger
}

func NewEventHandler(service *Service, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterHandlers subscribes to every workflow event the inbox cares
// about.
func (h *EventHandler) RegisterHandlers(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeLancamentoAprovado, h.handleLancamentoAvaliado)
	bus.Subscribe(events.EventTypeLancamentoRecusado, h.handleLancamentoAvaliado)
	bus.Subscribe(events.EventTypeEditalHomologado, h.handleEditalAvaliado)
	bus.Subscribe(events.EventTypeEditalRecusado, h.handleEditalAvaliado)
}

func (h *EventHandler) handleLancamentoAvaliado(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.LancamentoAvaliadoEvent)
	if !ok {
		h.logger.Error("unexpected payload for lancamento event", "event_type", event.EventType())
		return fmt.Errorf("unexpected event payload: %T", event)
	}

	veredicto := "APROVADAS"
	if event.EventType() == events.EventTypeLancamentoRecusado {
		veredicto = "RECUSADAS"
	}

	mensagem := fmt.Sprintf("Suas %s horas na atividade %q foram %s.",
		horas.Format(e.Horas), e.AtividadeNome, veredicto)
	h.service.Notificar(e.ServidorID, mensagem, fmt.Sprintf("/lancamentos/%d", e.LancamentoID))
	return nil
}

func (h *EventHandler) handleEditalAvaliado(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.EditalAvaliadoEvent)
	if !ok {
		h.logger.Error("unexpected payload for edital event", "event_type", event.EventType())
		return fmt.Errorf("unexpected event payload: %T", event)
	}

	veredicto := "HOMOLOGADO"
	if event.EventType() == events.EventTypeEditalRecusado {
		veredicto = "RECUSADO"
	}

	mensagem := fmt.Sprintf("Seu edital %q foi %s.", e.NumeroEdital, veredicto)
	h.service.Notificar(e.CriadoPorID, mensagem, fmt.Sprintf("/editais/%d", e.EditalID))
	return nil
}
