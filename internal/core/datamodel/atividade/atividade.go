package atividade

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoAtividade is a catalog row: reference data seeded by migration and
// protected against deletion while referenced.
type TipoAtividade struct {
	ID        int64           `gorm:"primaryKey"`
	Grupo     string          `gorm:"column:grupo;not null"`
	Nome      string          `gorm:"column:nome;uniqueIndex;not null"`
	ValorHora decimal.Decimal `gorm:"column:valor_hora;type:decimal(10,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time       `gorm:"column:updated_at;default:now()"`
}

func (TipoAtividade) TableName() string {
	return "tipos_atividade"
}

// Atividade belongs to exactly one Edital (cascade-deleted with it) and
// references exactly one catalog entry.
type Atividade struct {
	ID        int64          `gorm:"primaryKey"`
	TipoID    int64          `gorm:"column:tipo_id;not null"`
	Tipo      *TipoAtividade `gorm:"foreignKey:TipoID"`
	EditalID  int64          `gorm:"column:edital_id;not null;index"`
	Descricao string         `gorm:"column:descricao"`
	CreatedAt time.Time      `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time      `gorm:"column:updated_at;default:now()"`
}

func (Atividade) TableName() string {
	return "atividades"
}

// AtividadeServidor is the allocation join row between an Atividade and a
// staff user allowed to log hours against it.
type AtividadeServidor struct {
	ID          int64     `gorm:"primaryKey"`
	AtividadeID int64     `gorm:"column:atividade_id;not null;uniqueIndex:idx_atividade_servidor"`
	ServidorID  int64     `gorm:"column:servidor_id;not null;uniqueIndex:idx_atividade_servidor"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
}

func (AtividadeServidor) TableName() string {
	return "atividade_servidores"
}
