package postgres

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	atividadeDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/atividade"
	editalDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/edital"
	lancamentoDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/lancamento"
	"github.com/Jesus-jpg1/GECC-System/internal/lancamento"
)

type LancamentoRepository struct {
	db *gorm.DB
}

func NewLancamentoRepository(db *gorm.DB) lancamento.RepositoryAPI {
	return &LancamentoRepository{db: db}
}

// CreateComValidacaoDeSaldo locks the edital row, recomputes the committed
// total and inserts only while the new cost still fits. The lock serializes
// concurrent submissions against the same call.
func (r *LancamentoRepository) CreateComValidacaoDeSaldo(l *lancamentoDatamodel.LancamentoHoras, custo decimal.Decimal) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var e editalDatamodel.Edital
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", l.EditalID).
			First(&e).Error; err != nil {
			return err
		}

		comprometido, err := sumComprometido(tx, l.EditalID)
		if err != nil {
			return err
		}
		if err := lancamento.ValidarNovoLancamento(e.ValorEmpenho, comprometido, custo); err != nil {
			return err
		}

		return tx.Create(l).Error
	})
}

func (r *LancamentoRepository) GetByID(id int64) (*lancamentoDatamodel.LancamentoHoras, error) {
	var l lancamentoDatamodel.LancamentoHoras
	if err := r.db.Preload("Atividade.Tipo").Where("id = ?", id).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LancamentoRepository) GetAtividade(id int64) (*atividadeDatamodel.Atividade, error) {
	var a atividadeDatamodel.Atividade
	if err := r.db.Preload("Tipo").Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *LancamentoRepository) UpdateStatus(id int64, status string, validadoPorID int64, validadoEm time.Time, comentario string) error {
	updates := map[string]interface{}{
		"status":          status,
		"validado_por_id": validadoPorID,
		"validado_em":     validadoEm,
		"updated_at":      time.Now(),
	}
	if comentario != "" {
		updates["comentario_recusa"] = comentario
	}
	return r.db.Model(&lancamentoDatamodel.LancamentoHoras{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *LancamentoRepository) ListByServidor(servidorID int64, limit, offset int) ([]*lancamentoDatamodel.LancamentoHoras, error) {
	var rows []*lancamentoDatamodel.LancamentoHoras
	err := r.db.Preload("Atividade.Tipo").
		Where("servidor_id = ?", servidorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *LancamentoRepository) ListPendentesPorCriador(criadoPorID int64, limit, offset int) ([]*lancamentoDatamodel.LancamentoHoras, error) {
	var rows []*lancamentoDatamodel.LancamentoHoras
	err := r.db.Preload("Atividade.Tipo").
		Joins("JOIN editais ON editais.id = lancamentos_horas.edital_id").
		Where("editais.criado_por_id = ? AND lancamentos_horas.status = ?",
			criadoPorID, lancamentoDatamodel.StatusPendente).
		Order("lancamentos_horas.created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *LancamentoRepository) List(query lancamento.ListLancamentosQuery) ([]*lancamentoDatamodel.LancamentoHoras, error) {
	q := r.db.Preload("Atividade.Tipo")
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if query.EditalID > 0 {
		q = q.Where("edital_id = ?", query.EditalID)
	}

	var rows []*lancamentoDatamodel.LancamentoHoras
	err := q.Order(query.OrderClause()).
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&rows).Error
	return rows, err
}

func (r *LancamentoRepository) SumComprometido(editalID int64) (decimal.Decimal, error) {
	return sumComprometido(r.db, editalID)
}

func sumComprometido(tx *gorm.DB, editalID int64) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := tx.Model(&lancamentoDatamodel.LancamentoHoras{}).
		Select("SUM(lancamentos_horas.horas * tipos_atividade.valor_hora)").
		Joins("JOIN atividades ON atividades.id = lancamentos_horas.atividade_id").
		Joins("JOIN tipos_atividade ON tipos_atividade.id = atividades.tipo_id").
		Where("lancamentos_horas.edital_id = ?", editalID).
		Where("lancamentos_horas.status NOT IN ?", lancamento.StatusForaDoLedger).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal.Round(2), nil
}
