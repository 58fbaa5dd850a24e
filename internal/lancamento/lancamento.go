package lancamento

import (
	"time"

	"github.com/shopspring/decimal"

	lancamentoDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/lancamento"
	"github.com/Jesus-jpg1/GECC-System/internal/core/horas"
)

// Lancamento is the domain view of an hour log, priced against its
// activity's catalog rate.
type Lancamento struct {
	ID                     int64           `json:"id"`
	ServidorID             int64           `json:"servidor_id"`
	EditalID               int64           `json:"edital_id"`
	AtividadeID            int64           `json:"atividade_id"`
	AtividadeNome          string          `json:"atividade_nome,omitempty"`
	Data                   time.Time       `json:"data"`
	Horas                  decimal.Decimal `json:"horas"`
	HorasFormatadas        string          `json:"horas_formatadas"`
	ValorHora              decimal.Decimal `json:"valor_hora"`
	Custo                  decimal.Decimal `json:"custo"`
	DescricaoJustificativa string          `json:"descricao_justificativa"`
	Status                 string          `json:"status"`
	ComentarioRecusa       string          `json:"comentario_recusa,omitempty"`
	ValidadoPorID          *int64          `json:"validado_por_id,omitempty"`
	ValidadoEm             *time.Time      `json:"validado_em,omitempty"`
	CreatedAt              time.Time       `json:"created_at"`
}

// ComprometeSaldo reports whether the log still holds budget.
func (l *Lancamento) ComprometeSaldo() bool {
	return l.Status != lancamentoDatamodel.StatusRecusado &&
		l.Status != lancamentoDatamodel.StatusRevertido
}

func FromDataModel(l *lancamentoDatamodel.LancamentoHoras) *Lancamento {
	view := &Lancamento{
		ID:                     l.ID,
		ServidorID:             l.ServidorID,
		EditalID:               l.EditalID,
		AtividadeID:            l.AtividadeID,
		Data:                   l.Data,
		Horas:                  l.Horas,
		HorasFormatadas:        horas.Format(l.Horas),
		DescricaoJustificativa: l.DescricaoJustificativa,
		Status:                 l.Status,
		ComentarioRecusa:       l.ComentarioRecusa,
		ValidadoPorID:          l.ValidadoPorID,
		ValidadoEm:             l.ValidadoEm,
		CreatedAt:              l.CreatedAt,
	}
	if l.Atividade != nil && l.Atividade.Tipo != nil {
		view.AtividadeNome = l.Atividade.Tipo.Nome
		view.ValorHora = l.Atividade.Tipo.ValorHora
		view.Custo = Custo(l.Horas, l.Atividade.Tipo.ValorHora)
	}
	return view
}
