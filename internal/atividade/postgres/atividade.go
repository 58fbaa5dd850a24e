package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/Jesus-jpg1/GECC-System/internal/atividade"
	atividadeDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/atividade"
)

type AtividadeRepository struct {
	db *gorm.DB
}

func NewAtividadeRepository(db *gorm.DB) atividade.RepositoryAPI {
	return &AtividadeRepository{db: db}
}

func (r *AtividadeRepository) ListTipos() ([]*atividadeDatamodel.TipoAtividade, error) {
	var tipos []*atividadeDatamodel.TipoAtividade
	err := r.db.Order("grupo ASC, nome ASC").Find(&tipos).Error
	return tipos, err
}

func (r *AtividadeRepository) GetTipoByID(id int64) (*atividadeDatamodel.TipoAtividade, error) {
	var tipo atividadeDatamodel.TipoAtividade
	if err := r.db.Where("id = ?", id).First(&tipo).Error; err != nil {
		return nil, err
	}
	return &tipo, nil
}

func (r *AtividadeRepository) CreateTipo(tipo *atividadeDatamodel.TipoAtividade) error {
	return r.db.Create(tipo).Error
}

func (r *AtividadeRepository) CountAtividadesPorTipo(tipoID int64) (int64, error) {
	var count int64
	err := r.db.Model(&atividadeDatamodel.Atividade{}).
		Where("tipo_id = ?", tipoID).
		Count(&count).Error
	return count, err
}

func (r *AtividadeRepository) DeleteTipo(id int64) error {
	return r.db.Delete(&atividadeDatamodel.TipoAtividade{}, id).Error
}

func (r *AtividadeRepository) CreateAtividade(a *atividadeDatamodel.Atividade) error {
	return r.db.Create(a).Error
}

func (r *AtividadeRepository) GetAtividadeByID(id int64) (*atividadeDatamodel.Atividade, error) {
	var a atividadeDatamodel.Atividade
	if err := r.db.Preload("Tipo").Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AtividadeRepository) ListAtividadesPorEdital(editalID int64) ([]*atividadeDatamodel.Atividade, error) {
	var atividades []*atividadeDatamodel.Atividade
	err := r.db.Preload("Tipo").
		Where("edital_id = ?", editalID).
		Order("created_at ASC").
		Find(&atividades).Error
	return atividades, err
}

func (r *AtividadeRepository) UpdateAtividade(a *atividadeDatamodel.Atividade) error {
	return r.db.Model(&atividadeDatamodel.Atividade{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"tipo_id":    a.TipoID,
			"descricao":  a.Descricao,
			"updated_at": time.Now(),
		}).Error
}

// DeleteAtividade removes the activity and its allocation rows together.
func (r *AtividadeRepository) DeleteAtividade(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("atividade_id = ?", id).
			Delete(&atividadeDatamodel.AtividadeServidor{}).Error; err != nil {
			return err
		}
		return tx.Delete(&atividadeDatamodel.Atividade{}, id).Error
	})
}

func (r *AtividadeRepository) ReplaceAlocacoes(atividadeID int64, servidorIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("atividade_id = ?", atividadeID).
			Delete(&atividadeDatamodel.AtividadeServidor{}).Error; err != nil {
			return err
		}
		for _, servidorID := range servidorIDs {
			row := &atividadeDatamodel.AtividadeServidor{
				AtividadeID: atividadeID,
				ServidorID:  servidorID,
			}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AtividadeRepository) ListAlocados(atividadeID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&atividadeDatamodel.AtividadeServidor{}).
		Where("atividade_id = ?", atividadeID).
		Order("servidor_id ASC").
		Pluck("servidor_id", &ids).Error
	return ids, err
}

func (r *AtividadeRepository) IsAlocado(atividadeID, servidorID int64) (bool, error) {
	var count int64
	err := r.db.Model(&atividadeDatamodel.AtividadeServidor{}).
		Where("atividade_id = ? AND servidor_id = ?", atividadeID, servidorID).
		Count(&count).Error
	return count > 0, err
}
