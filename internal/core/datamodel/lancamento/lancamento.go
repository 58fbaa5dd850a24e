package lancamento

import (
	"time"

	"github.com/shopspring/decimal"

	atividadeDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/atividade"
)

const (
	StatusPendente   = "Pendente"
	StatusAprovado   = "Aprovado"
	StatusRecusado   = "Recusado"
	StatusHomologado = "Homologado"
	StatusRevertido  = "Revertido"
)

// LancamentoHoras is a staff member's claimed hours against an Atividade.
// EditalID duplicates Atividade.EditalID for query convenience; the service
// asserts the two agree at write time.
type LancamentoHoras struct {
	ID                     int64                         `gorm:"primaryKey"`
	ServidorID             int64                         `gorm:"column:servidor_id;not null;index"`
	EditalID               int64                         `gorm:"column:edital_id;not null;index"`
	AtividadeID            int64                         `gorm:"column:atividade_id;not null;index"`
	Atividade              *atividadeDatamodel.Atividade `gorm:"foreignKey:AtividadeID"`
	Data                   time.Time                     `gorm:"column:data;type:date;not null"`
	Horas                  decimal.Decimal               `gorm:"column:horas;type:decimal(5,2);not null"`
	DescricaoJustificativa string                        `gorm:"column:descricao_justificativa;not null"`
	Status                 string                        `gorm:"column:status;not null;default:Pendente"`
	ComentarioRecusa       string                        `gorm:"column:comentario_recusa"`
	ValidadoPorID          *int64                        `gorm:"column:validado_por_id"`
	ValidadoEm             *time.Time                    `gorm:"column:validado_em"`
	CreatedAt              time.Time                     `gorm:"column:created_at;default:now()"`
	UpdatedAt              time.Time                     `gorm:"column:updated_at;default:now()"`
}

func (LancamentoHoras) TableName() string {
	return "lancamentos_horas"
}
