package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventTypeLancamentoAprovado = "lancamento.aprovado"
	EventTypeLancamentoRecusado = "lancamento.recusado"
	EventTypeEditalHomologado   = "edital.homologado"
	EventTypeEditalRecusado     = "edital.recusado"
)

type LancamentoAvaliadoEvent struct {
	BaseEvent
	LancamentoID  int64           `json:"lancamento_id"`
	ServidorID    int64           `json:"servidor_id"`
	Horas         decimal.Decimal `json:"horas"`
	AtividadeNome string          `json:"atividade_nome"`
}

func newLancamentoAvaliadoEvent(eventType string, lancamentoID, servidorID int64, horas decimal.Decimal, atividadeNome string) *LancamentoAvaliadoEvent {
	return &LancamentoAvaliadoEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"lancamento_id":  lancamentoID,
				"servidor_id":    servidorID,
				"horas":          horas.StringFixed(2),
				"atividade_nome": atividadeNome,
			},
		},
		LancamentoID:  lancamentoID,
		ServidorID:    servidorID,
		Horas:         horas,
		AtividadeNome: atividadeNome,
	}
}

func NewLancamentoAprovadoEvent(lancamentoID, servidorID int64, horas decimal.Decimal, atividadeNome string) *LancamentoAvaliadoEvent {
	return newLancamentoAvaliadoEvent(EventTypeLancamentoAprovado, lancamentoID, servidorID, horas, atividadeNome)
}

func NewLancamentoRecusadoEvent(lancamentoID, servidorID int64, horas decimal.Decimal, atividadeNome string) *LancamentoAvaliadoEvent {
	return newLancamentoAvaliadoEvent(EventTypeLancamentoRecusado, lancamentoID, servidorID, horas, atividadeNome)
}

type EditalAvaliadoEvent struct {
	BaseEvent
	EditalID     int64  `json:"edital_id"`
	NumeroEdital string `json:"numero_edital"`
	CriadoPorID  int64  `json:"criado_por_id"`
}

func newEditalAvaliadoEvent(eventType string, editalID int64, numeroEdital string, criadoPorID int64) *EditalAvaliadoEvent {
	return &EditalAvaliadoEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"edital_id":     editalID,
				"numero_edital": numeroEdital,
				"criado_por_id": criadoPorID,
			},
		},
		EditalID:     editalID,
		NumeroEdital: numeroEdital,
		CriadoPorID:  criadoPorID,
	}
}

func NewEditalHomologadoEvent(editalID int64, numeroEdital string, criadoPorID int64) *EditalAvaliadoEvent {
	return newEditalAvaliadoEvent(EventTypeEditalHomologado, editalID, numeroEdital, criadoPorID)
}

func NewEditalRecusadoEvent(editalID int64, numeroEdital string, criadoPorID int64) *EditalAvaliadoEvent {
	return newEditalAvaliadoEvent(EventTypeEditalRecusado, editalID, numeroEdital, criadoPorID)
}
