package atividade

import (
	"time"

	"github.com/shopspring/decimal"

	atividadeDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/atividade"
)

// TipoAtividade is a catalog view: an activity kind with its hourly rate.
type TipoAtividade struct {
	ID        int64           `json:"id"`
	Grupo     string          `json:"grupo"`
	Nome      string          `json:"nome"`
	ValorHora decimal.Decimal `json:"valor_hora"`
	CreatedAt time.Time       `json:"created_at"`
}

// Atividade is an activity attached to a call, resolved with its catalog
// entry.
type Atividade struct {
	ID        int64          `json:"id"`
	EditalID  int64          `json:"edital_id"`
	Tipo      *TipoAtividade `json:"tipo,omitempty"`
	TipoID    int64          `json:"tipo_id"`
	Descricao string         `json:"descricao"`
	CreatedAt time.Time      `json:"created_at"`
}

// ValorHora resolves the rate that prices hour logs against this activity.
func (a *Atividade) ValorHora() decimal.Decimal {
	if a.Tipo == nil {
		return decimal.Zero
	}
	return a.Tipo.ValorHora
}

func TipoFromDataModel(t *atividadeDatamodel.TipoAtividade) *TipoAtividade {
	return &TipoAtividade{
		ID:        t.ID,
		Grupo:     t.Grupo,
		Nome:      t.Nome,
		ValorHora: t.ValorHora,
		CreatedAt: t.CreatedAt,
	}
}

func FromDataModel(a *atividadeDatamodel.Atividade) *Atividade {
	view := &Atividade{
		ID:        a.ID,
		EditalID:  a.EditalID,
		TipoID:    a.TipoID,
		Descricao: a.Descricao,
		CreatedAt: a.CreatedAt,
	}
	if a.Tipo != nil {
		view.Tipo = TipoFromDataModel(a.Tipo)
	}
	return view
}
