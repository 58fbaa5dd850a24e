package servidor

import "errors"

// RegisterServidorDTO is the payload for creating a user plus its profile in
// one step.
type RegisterServidorDTO struct {
	Email    string  `json:"email"`
	Nome     string  `json:"nome"`
	Password string  `json:"password"`
	Siape    *string `json:"siape,omitempty"`
	CPF      *string `json:"cpf,omitempty"`
	Setor    string  `json:"setor"`
	Funcao   string  `json:"funcao"`
	Telefone string  `json:"telefone"`
}

func (dto RegisterServidorDTO) Validate() error {
	if dto.Email == "" {
		return errors.New("email is required")
	}
	if dto.Nome == "" {
		return errors.New("nome is required")
	}
	if len(dto.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if dto.Funcao == "" {
		return errors.New("funcao is required")
	}
	return nil
}
