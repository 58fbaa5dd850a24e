package edital

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusRascunho              = "Rascunho"
	StatusAguardandoHomologacao = "Aguardando Homologação"
	StatusHomologado            = "Homologado"
	StatusRecusado              = "Recusado"

	// Legacy lifecycle values kept for calls opened before homologation
	// was introduced.
	StatusAtivo      = "Ativo"
	StatusFinalizado = "Finalizado"
)

type Edital struct {
	ID                    int64           `gorm:"primaryKey"`
	NumeroEdital          string          `gorm:"column:numero_edital;uniqueIndex;not null"`
	Titulo                string          `gorm:"column:titulo;not null"`
	Descricao             string          `gorm:"column:descricao"`
	UnidadeDemandanteNome string          `gorm:"column:unidade_demandante_nome;not null"`
	DataInicio            time.Time       `gorm:"column:data_inicio;type:date;not null"`
	DataFim               time.Time       `gorm:"column:data_fim;type:date;not null"`
	Status                string          `gorm:"column:status;not null;default:Rascunho"`
	ValorEmpenho          decimal.Decimal `gorm:"column:valor_empenho;type:decimal(12,2);not null;default:0"`
	CriadoPorID           int64           `gorm:"column:criado_por_id;not null"`
	HomologadoPorID       *int64          `gorm:"column:homologado_por_id"`
	JustificativaRecusa   string          `gorm:"column:justificativa_recusa"`
	CreatedAt             time.Time       `gorm:"column:created_at;default:now()"`
	UpdatedAt             time.Time       `gorm:"column:updated_at;default:now()"`
}

func (Edital) TableName() string {
	return "editais"
}
