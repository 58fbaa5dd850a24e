package servidor

import (
	"time"

	servidorDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/servidor"
)

// Servidor is the domain view of a user joined with its profile.
type Servidor struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	Email            string    `json:"email"`
	Nome             string    `json:"nome"`
	Siape            *string   `json:"siape,omitempty"`
	CPF              *string   `json:"cpf,omitempty"`
	Setor            string    `json:"setor"`
	Funcao           string    `json:"funcao"`
	Status           string    `json:"status"`
	Telefone         string    `json:"telefone"`
	LimiteHorasAnual int       `json:"limite_horas_anual"`
	HorasUtilizadas  int       `json:"horas_utilizadas"`
	CreatedAt        time.Time `json:"created_at"`
}

// HorasDisponiveis is the remaining annual allowance.
func (s *Servidor) HorasDisponiveis() int {
	return s.LimiteHorasAnual - s.HorasUtilizadas
}

func (s *Servidor) PodeAtuar() bool {
	return s.Status == servidorDatamodel.StatusHomologado
}

func FromDataModel(user *servidorDatamodel.User, perfil *servidorDatamodel.ServidorProfile) *Servidor {
	return &Servidor{
		ID:               perfil.ID,
		UserID:           user.ID,
		Email:            user.Email,
		Nome:             user.Nome,
		Siape:            perfil.Siape,
		CPF:              perfil.CPF,
		Setor:            perfil.Setor,
		Funcao:           perfil.Funcao,
		Status:           perfil.Status,
		Telefone:         perfil.Telefone,
		LimiteHorasAnual: perfil.LimiteHorasAnual,
		HorasUtilizadas:  perfil.HorasUtilizadas,
		CreatedAt:        perfil.CreatedAt,
	}
}
