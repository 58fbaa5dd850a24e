package postgres

import (
	"time"

	"gorm.io/gorm"

	servidorDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/servidor"
	"github.com/Jesus-jpg1/GECC-System/internal/servidor"
)

type ServidorRepository struct {
	db *gorm.DB
}

func NewServidorRepository(db *gorm.DB) servidor.Repository {
	return &ServidorRepository{db: db}
}

// CreateUserWithPerfil writes the user and its profile in one transaction so
// a user row never exists without a profile.
func (r *ServidorRepository) CreateUserWithPerfil(user *servidorDatamodel.User, perfil *servidorDatamodel.ServidorProfile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		perfil.UserID = user.ID
		return tx.Create(perfil).Error
	})
}

func (r *ServidorRepository) GetByPerfilID(perfilID int64) (*servidorDatamodel.User, *servidorDatamodel.ServidorProfile, error) {
	var perfil servidorDatamodel.ServidorProfile
	if err := r.db.Where("id = ?", perfilID).First(&perfil).Error; err != nil {
		return nil, nil, err
	}

	var user servidorDatamodel.User
	if err := r.db.Where("id = ?", perfil.UserID).First(&user).Error; err != nil {
		return nil, nil, err
	}
	return &user, &perfil, nil
}

func (r *ServidorRepository) GetByUserID(userID int64) (*servidorDatamodel.User, *servidorDatamodel.ServidorProfile, error) {
	var user servidorDatamodel.User
	if err := r.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, nil, err
	}

	var perfil servidorDatamodel.ServidorProfile
	if err := r.db.Where("user_id = ?", userID).First(&perfil).Error; err != nil {
		return nil, nil, err
	}
	return &user, &perfil, nil
}

func (r *ServidorRepository) ListByStatus(status string, limit, offset int) ([]*servidor.Servidor, error) {
	return r.list(r.db.Where("servidor_profiles.status = ?", status).Limit(limit).Offset(offset))
}

func (r *ServidorRepository) ListByFuncao(funcao string) ([]*servidor.Servidor, error) {
	return r.list(r.db.Where("servidor_profiles.funcao = ?", funcao))
}

func (r *ServidorRepository) list(q *gorm.DB) ([]*servidor.Servidor, error) {
	var perfis []servidorDatamodel.ServidorProfile
	if err := q.Order("servidor_profiles.created_at ASC").Find(&perfis).Error; err != nil {
		return nil, err
	}

	result := make([]*servidor.Servidor, 0, len(perfis))
	for i := range perfis {
		var user servidorDatamodel.User
		if err := r.db.Where("id = ?", perfis[i].UserID).First(&user).Error; err != nil {
			return nil, err
		}
		result = append(result, servidor.FromDataModel(&user, &perfis[i]))
	}
	return result, nil
}

func (r *ServidorRepository) UpdateStatus(perfilID int64, status string) error {
	return r.db.Model(&servidorDatamodel.ServidorProfile{}).
		Where("id = ?", perfilID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}
