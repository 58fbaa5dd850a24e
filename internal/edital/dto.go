package edital

import (
	"errors"
	"time"
)

type CreateEditalDTO struct {
	NumeroEdital          string `json:"numero_edital"`
	Titulo                string `json:"titulo"`
	Descricao             string `json:"descricao"`
	UnidadeDemandanteNome string `json:"unidade_demandante_nome"`
	DataInicio            string `json:"data_inicio"`
	DataFim               string `json:"data_fim"`
	ValorEmpenho          string `json:"valor_empenho"`
}

func (dto CreateEditalDTO) Validate() error {
	if dto.NumeroEdital == "" {
		return errors.New("numero_edital is required")
	}
	if dto.Titulo == "" {
		return errors.New("titulo is required")
	}
	if dto.UnidadeDemandanteNome == "" {
		return errors.New("unidade_demandante_nome is required")
	}
	inicio, err := time.Parse("2006-01-02", dto.DataInicio)
	if err != nil {
		return errors.New("data_inicio must be in YYYY-MM-DD format")
	}
	fim, err := time.Parse("2006-01-02", dto.DataFim)
	if err != nil {
		return errors.New("data_fim must be in YYYY-MM-DD format")
	}
	if fim.Before(inicio) {
		return errors.New("data_fim must not precede data_inicio")
	}
	if dto.ValorEmpenho == "" {
		return errors.New("valor_empenho is required")
	}
	return nil
}

type UpdateEditalDTO struct {
	Titulo                string `json:"titulo"`
	Descricao             string `json:"descricao"`
	UnidadeDemandanteNome string `json:"unidade_demandante_nome"`
	DataInicio            string `json:"data_inicio"`
	DataFim               string `json:"data_fim"`
	ValorEmpenho          string `json:"valor_empenho"`
}

func (dto UpdateEditalDTO) Validate() error {
	return CreateEditalDTO{
		NumeroEdital:          "unchanged",
		Titulo:                dto.Titulo,
		Descricao:             dto.Descricao,
		UnidadeDemandanteNome: dto.UnidadeDemandanteNome,
		DataInicio:            dto.DataInicio,
		DataFim:               dto.DataFim,
		ValorEmpenho:          dto.ValorEmpenho,
	}.Validate()
}

type RecusarEditalDTO struct {
	Justificativa string `json:"justificativa"`
}

func (dto RecusarEditalDTO) Validate() error {
	if dto.Justificativa == "" {
		return errors.New("justificativa is required")
	}
	return nil
}

// ListEditaisQuery carries pagination and a whitelisted sort column.
type ListEditaisQuery struct {
	Limit   int
	Offset  int
	SortBy  string
	SortDir string
}

var sortableColumns = map[string]string{
	"created_at":    "created_at",
	"numero_edital": "numero_edital",
	"titulo":        "titulo",
	"data_inicio":   "data_inicio",
	"valor_empenho": "valor_empenho",
}

// OrderClause maps the requested sort onto a safe ORDER BY expression.
func (q ListEditaisQuery) OrderClause() string {
	col, ok := sortableColumns[q.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if q.SortDir == "asc" {
		dir = "ASC"
	}
	return col + " " + dir
}
