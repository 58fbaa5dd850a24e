package postgres

import (
	"time"

	"gorm.io/gorm"

	atividadeDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/atividade"
	editalDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/edital"
	lancamentoDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/lancamento"
	"github.com/Jesus-jpg1/GECC-System/internal/edital"
)

type EditalRepository struct {
	db *gorm.DB
}

func NewEditalRepository(db *gorm.DB) edital.RepositoryAPI {
	return &EditalRepository{db: db}
}

func (r *EditalRepository) Create(e *editalDatamodel.Edital) error {
	return r.db.Create(e).Error
}

func (r *EditalRepository) GetByID(id int64) (*editalDatamodel.Edital, error) {
	var e editalDatamodel.Edital
	if err := r.db.Where("id = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EditalRepository) GetByNumero(numero string) (*editalDatamodel.Edital, error) {
	var e editalDatamodel.Edital
	if err := r.db.Where("numero_edital = ?", numero).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EditalRepository) Update(e *editalDatamodel.Edital) error {
	return r.db.Model(&editalDatamodel.Edital{}).
		Where("id = ?", e.ID).
		Updates(map[string]interface{}{
			"titulo":                  e.Titulo,
			"descricao":               e.Descricao,
			"unidade_demandante_nome": e.UnidadeDemandanteNome,
			"data_inicio":             e.DataInicio,
			"data_fim":                e.DataFim,
			"valor_empenho":           e.ValorEmpenho,
			"updated_at":              time.Now(),
		}).Error
}

func (r *EditalRepository) UpdateStatus(id int64, status string, homologadoPorID *int64, justificativa string) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if homologadoPorID != nil {
		updates["homologado_por_id"] = *homologadoPorID
	}
	if justificativa != "" {
		updates["justificativa_recusa"] = justificativa
	}
	return r.db.Model(&editalDatamodel.Edital{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes the call with its activities, allocations and hour logs in
// one transaction.
func (r *EditalRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("edital_id = ?", id).
			Delete(&lancamentoDatamodel.LancamentoHoras{}).Error; err != nil {
			return err
		}
		if err := tx.Where("atividade_id IN (?)",
			tx.Model(&atividadeDatamodel.Atividade{}).Select("id").Where("edital_id = ?", id),
		).Delete(&atividadeDatamodel.AtividadeServidor{}).Error; err != nil {
			return err
		}
		if err := tx.Where("edital_id = ?", id).
			Delete(&atividadeDatamodel.Atividade{}).Error; err != nil {
			return err
		}
		return tx.Delete(&editalDatamodel.Edital{}, id).Error
	})
}

func (r *EditalRepository) ListByCriador(criadoPorID int64, query edital.ListEditaisQuery) ([]*editalDatamodel.Edital, error) {
	return r.list(r.db.Where("criado_por_id = ?", criadoPorID), query)
}

func (r *EditalRepository) ListByStatus(status string, query edital.ListEditaisQuery) ([]*editalDatamodel.Edital, error) {
	return r.list(r.db.Where("status = ?", status), query)
}

func (r *EditalRepository) ListAll(query edital.ListEditaisQuery) ([]*editalDatamodel.Edital, error) {
	return r.list(r.db, query)
}

func (r *EditalRepository) list(q *gorm.DB, query edital.ListEditaisQuery) ([]*editalDatamodel.Edital, error) {
	var editais []*editalDatamodel.Edital
	err := q.Order(query.OrderClause()).
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&editais).Error
	return editais, err
}
