package servidor

import "time"

// Homologation statuses for a staff profile. Only Homologado may
// authenticate (superusers excepted).
const (
	StatusAguardandoHomologacao = "Aguardando Homologação"
	StatusHomologado            = "Homologado"
	StatusRecusado              = "Recusado"
)

type User struct {
	ID           int64     `gorm:"primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	Nome         string    `gorm:"column:nome;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	IsSuperuser  bool      `gorm:"column:is_superuser;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}

// ServidorProfile is the one-to-one staff profile created together with its
// User row. The status column gates authentication.
type ServidorProfile struct {
	ID               int64     `gorm:"primaryKey"`
	UserID           int64     `gorm:"column:user_id;uniqueIndex;not null"`
	Siape            *string   `gorm:"column:siape;uniqueIndex"`
	CPF              *string   `gorm:"column:cpf;uniqueIndex"`
	Setor            string    `gorm:"column:setor"`
	Funcao           string    `gorm:"column:funcao;not null;default:Servidor"`
	Status           string    `gorm:"column:status;not null;default:'Aguardando Homologação'"`
	Telefone         string    `gorm:"column:telefone"`
	LimiteHorasAnual int       `gorm:"column:limite_horas_anual;default:120"`
	HorasUtilizadas  int       `gorm:"column:horas_utilizadas;default:0"`
	CreatedAt        time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt        time.Time `gorm:"column:updated_at;default:now()"`
}

func (ServidorProfile) TableName() string {
	return "servidor_profiles"
}
