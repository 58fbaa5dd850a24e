package atividade

import "errors"

type CreateTipoAtividadeDTO struct {
	Grupo     string `json:"grupo"`
	Nome      string `json:"nome"`
	ValorHora string `json:"valor_hora"`
}

func (dto CreateTipoAtividadeDTO) Validate() error {
	if dto.Grupo == "" {
		return errors.New("grupo is required")
	}
	if dto.Nome == "" {
		return errors.New("nome is required")
	}
	if dto.ValorHora == "" {
		return errors.New("valor_hora is required")
	}
	return nil
}

type CreateAtividadeDTO struct {
	EditalID  int64  `json:"edital_id"`
	TipoID    int64  `json:"tipo_id"`
	Descricao string `json:"descricao"`
}

func (dto CreateAtividadeDTO) Validate() error {
	if dto.EditalID <= 0 {
		return errors.New("edital_id is required")
	}
	if dto.TipoID <= 0 {
		return errors.New("tipo_id is required")
	}
	return nil
}

type UpdateAtividadeDTO struct {
	TipoID    int64  `json:"tipo_id"`
	Descricao string `json:"descricao"`
}

func (dto UpdateAtividadeDTO) Validate() error {
	if dto.TipoID <= 0 {
		return errors.New("tipo_id is required")
	}
	return nil
}

// AlocarServidoresDTO carries the full allocation set: the registry is
// replaced, not appended to.
type AlocarServidoresDTO struct {
	ServidorIDs []int64 `json:"servidor_ids"`
}

func (dto AlocarServidoresDTO) Validate() error {
	seen := make(map[int64]struct{}, len(dto.ServidorIDs))
	for _, id := range dto.ServidorIDs {
		if id <= 0 {
			return errors.New("servidor_ids must be positive")
		}
		if _, dup := seen[id]; dup {
			return errors.New("servidor_ids must not repeat")
		}
		seen[id] = struct{}{}
	}
	return nil
}
