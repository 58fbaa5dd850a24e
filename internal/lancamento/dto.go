package lancamento

import (
	"errors"
	"time"
)

type CreateLancamentoDTO struct {
	AtividadeID            int64  `json:"atividade_id"`
	Data                   string `json:"data"`
	Horas                  string `json:"horas"`
	DescricaoJustificativa string `json:"descricao_justificativa"`
}

func (dto CreateLancamentoDTO) Validate() error {
	if dto.AtividadeID <= 0 {
		return errors.New("atividade_id is required")
	}
	if _, err := time.Parse("2006-01-02", dto.Data); err != nil {
		return errors.New("data must be in YYYY-MM-DD format")
	}
	if dto.Horas == "" {
		return errors.New("horas is required")
	}
	if dto.DescricaoJustificativa == "" {
		return errors.New("descricao_justificativa is required")
	}
	return nil
}

// RecusarLancamentoDTO carries the refusal reason. An empty comment is
// accepted; evaluators are expected to supply one.
type RecusarLancamentoDTO struct {
	Comentario string `json:"comentario"`
}

// ListLancamentosQuery filters the audit listing. Sort requests are mapped
// through a column whitelist.
type ListLancamentosQuery struct {
	Status   string
	EditalID int64
	Limit    int
	Offset   int
	SortBy   string
	SortDir  string
}

var sortableColumns = map[string]string{
	"created_at": "created_at",
	"data":       "data",
	"horas":      "horas",
	"status":     "status",
	"edital_id":  "edital_id",
}

// OrderClause maps the requested sort onto a safe ORDER BY expression.
func (q ListLancamentosQuery) OrderClause() string {
	col, ok := sortableColumns[q.SortBy]
	if !ok {
		return "created_at DESC"
	}
	if q.SortDir == "asc" {
		return col + " ASC"
	}
	return col + " DESC"
}

// SaldoEdital is the ledger snapshot of a call.
type SaldoEdital struct {
	EditalID     int64  `json:"edital_id"`
	ValorEmpenho string `json:"valor_empenho"`
	Comprometido string `json:"comprometido"`
	Saldo        string `json:"saldo"`
}
