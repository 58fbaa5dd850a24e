package edital

import (
	"time"

	"github.com/shopspring/decimal"

	editalDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/edital"
)

// Edital is the domain view of a funding call.
type Edital struct {
	ID                    int64           `json:"id"`
	NumeroEdital          string          `json:"numero_edital"`
	Titulo                string          `json:"titulo"`
	Descricao             string          `json:"descricao"`
	UnidadeDemandanteNome string          `json:"unidade_demandante_nome"`
	DataInicio            time.Time       `json:"data_inicio"`
	DataFim               time.Time       `json:"data_fim"`
	Status                string          `json:"status"`
	ValorEmpenho          decimal.Decimal `json:"valor_empenho"`
	CriadoPorID           int64           `json:"criado_por_id"`
	HomologadoPorID       *int64          `json:"homologado_por_id,omitempty"`
	JustificativaRecusa   string          `json:"justificativa_recusa,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
}

// IsEditavel reports whether field edits are still allowed. Only drafts
// change.
func (e *Edital) IsEditavel() bool {
	return e.Status == editalDatamodel.StatusRascunho
}

// AceitaLancamentos reports whether staff may claim hours against the call.
func (e *Edital) AceitaLancamentos() bool {
	return e.Status == editalDatamodel.StatusHomologado || e.Status == editalDatamodel.StatusAtivo
}

func FromDataModel(e *editalDatamodel.Edital) *Edital {
	return &Edital{
		ID:                    e.ID,
		NumeroEdital:          e.NumeroEdital,
		Titulo:                e.Titulo,
		Descricao:             e.Descricao,
		UnidadeDemandanteNome: e.UnidadeDemandanteNome,
		DataInicio:            e.DataInicio,
		DataFim:               e.DataFim,
		Status:                e.Status,
		ValorEmpenho:          e.ValorEmpenho,
		CriadoPorID:           e.CriadoPorID,
		HomologadoPorID:       e.HomologadoPorID,
		JustificativaRecusa:   e.JustificativaRecusa,
		CreatedAt:             e.CreatedAt,
	}
}
