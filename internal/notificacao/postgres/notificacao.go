package postgres

import (
	"gorm.io/gorm"

	notificacaoDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/notificacao"
	"github.com/Jesus-jpg1/GECC-System/internal/notificacao"
)

type NotificacaoRepository struct {
	db *gorm.DB
}

func NewNotificacaoRepository(db *gorm.DB) notificacao.RepositoryAPI {
	return &NotificacaoRepository{db: db}
}

func (r *NotificacaoRepository) Create(n *notificacaoDatamodel.Notificacao) error {
	return r.db.Create(n).Error
}

func (r *NotificacaoRepository) ListNaoLidas(usuarioID int64, limit int) ([]*notificacaoDatamodel.Notificacao, error) {
	var rows []*notificacaoDatamodel.Notificacao
	err := r.db.Where("usuario_id = ? AND lida = ?", usuarioID, false).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *NotificacaoRepository) CountNaoLidas(usuarioID int64) (int64, error) {
	var count int64
	err := r.db.Model(&notificacaoDatamodel.Notificacao{}).
		Where("usuario_id = ? AND lida = ?", usuarioID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificacaoRepository) MarcarTodasLidas(usuarioID int64) error {
	return r.db.Model(&notificacaoDatamodel.Notificacao{}).
		Where("usuario_id = ? AND lida = ?", usuarioID, false).
		Update("lida", true).Error
}
