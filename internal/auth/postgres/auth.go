package auth

import (
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"github.com/Jesus-jpg1/GECC-System/internal/auth"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetPasswordForEmail(email string) (string, int64, error) {
	var passwordHash string
	var userID int64
	query := `SELECT id, password_hash FROM users WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return "", 0, fmt.Errorf("user not found")
		}
		return "", 0, err
	}
	return passwordHash, userID, nil
}

// GetUserWithPerfil loads the user joined with its servidor profile and
// returns the typed role plus the homologation status.
func (r *Repository) GetUserWithPerfil(userID int64) (*auth.User, string, error) {
	var (
		user        auth.User
		funcaoRaw   string
		perfilStatus string
	)

	query := `SELECT u.id, u.email, u.nome, u.is_superuser, p.funcao, p.status
	          FROM users u
	          JOIN servidor_profiles p ON p.user_id = u.id
	          WHERE u.id = ?`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&user.ID, &user.Email, &user.Nome, &user.IsSuperuser, &funcaoRaw, &perfilStatus); err != nil {
		if err == sql.ErrNoRows {
			return nil, "", fmt.Errorf("user not found")
		}
		return nil, "", err
	}

	funcao, err := auth.ParseFuncao(funcaoRaw)
	if err != nil {
		return nil, "", err
	}
	user.Funcao = funcao

	return &user, perfilStatus, nil
}
