package atividade

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Jesus-jpg1/GECC-System/internal"
	"github.com/Jesus-jpg1/GECC-System/internal/auth"
	atividadeDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/atividade"
	editalDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/edital"
)

type RepositoryAPI interface {
	ListTipos() ([]*atividadeDatamodel.TipoAtividade, error)
	GetTipoByID(id int64) (*atividadeDatamodel.TipoAtividade, error)
	CreateTipo(tipo *atividadeDatamodel.TipoAtividade) error
	CountAtividadesPorTipo(tipoID int64) (int64, error)
	DeleteTipo(id int64) error

	CreateAtividade(a *atividadeDatamodel.Atividade) error
	GetAtividadeByID(id int64) (*atividadeDatamodel.Atividade, error)
	ListAtividadesPorEdital(editalID int64) ([]*atividadeDatamodel.Atividade, error)
	UpdateAtividade(a *atividadeDatamodel.Atividade) error
	DeleteAtividade(id int64) error

	// ReplaceAlocacoes swaps the full allocation set of an activity in one
	// transaction.
	ReplaceAlocacoes(atividadeID int64, servidorIDs []int64) error
	ListAlocados(atividadeID int64) ([]int64, error)
	IsAlocado(atividadeID, servidorID int64) (bool, error)
}

// EditalDirectory resolves ownership and lifecycle state of a call without
// importing the edital module.
type EditalDirectory interface {
	GetOwnerAndStatus(editalID int64) (criadoPorID int64, status string, err error)
}

type Service struct {
	repo    RepositoryAPI
	editais EditalDirectory
	logger  *slog.Logger
}

func NewService(repo RepositoryAPI, editais EditalDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		editais: editais,
		logger:  logger,
	}
}

// ListTipos returns the whole rate catalog. Every authenticated role may
// read it.
func (s *Service) ListTipos() ([]*TipoAtividade, error) {
	tipos, err := s.repo.ListTipos()
	if err != nil {
		s.logger.Error("failed to list tipos de atividade", "error", err)
		return nil, err
	}

	views := make([]*TipoAtividade, 0, len(tipos))
	for _, t := range tipos {
		views = append(views, TipoFromDataModel(t))
	}
	return views, nil
}

func (s *Service) GetTipo(id int64) (*TipoAtividade, error) {
	tipo, err := s.repo.GetTipoByID(id)
	if err != nil {
		return nil, internal.ErrTipoAtividadeNotFound
	}
	return TipoFromDataModel(tipo), nil
}

func (s *Service) CreateTipo(actor *auth.User, dto CreateTipoAtividadeDTO) (*TipoAtividade, error) {
	if !auth.CanGerenciarCatalogo(actor) {
		return nil, internal.ErrAcessoNegado
	}
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	valorHora, err := decimal.NewFromString(dto.ValorHora)
	if err != nil || valorHora.IsNegative() {
		return nil, internal.NewValidationError("valor_hora deve ser um valor monetário não negativo", internal.ErrCodeValidationFailed)
	}

	tipo := &atividadeDatamodel.TipoAtividade{
		Grupo:     dto.Grupo,
		Nome:      dto.Nome,
		ValorHora: valorHora.Round(2),
	}
	if err := s.repo.CreateTipo(tipo); err != nil {
		s.logger.Error("failed to create tipo de atividade", "error", err, "nome", dto.Nome)
		return nil, err
	}

	s.logger.Info("tipo de atividade created", "tipo_id", tipo.ID, "nome", tipo.Nome)
	return TipoFromDataModel(tipo), nil
}

// DeleteTipo removes a catalog entry. Entries referenced by any activity are
// kept so historic hour logs stay priceable.
func (s *Service) DeleteTipo(actor *auth.User, id int64) error {
	if !auth.CanGerenciarCatalogo(actor) {
		return internal.ErrAcessoNegado
	}

	if _, err := s.repo.GetTipoByID(id); err != nil {
		return internal.ErrTipoAtividadeNotFound
	}

	count, err := s.repo.CountAtividadesPorTipo(id)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Warn("tipo de atividade still referenced", "tipo_id", id, "atividades", count)
		return internal.ErrTipoAtividadeEmUso
	}

	return s.repo.DeleteTipo(id)
}

func (s *Service) CreateAtividade(actor *auth.User, dto CreateAtividadeDTO) (*Atividade, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	criadoPorID, status, err := s.editais.GetOwnerAndStatus(dto.EditalID)
	if err != nil {
		return nil, internal.ErrEditalNotFound
	}
	if !auth.CanGerenciarEdital(actor, criadoPorID) {
		return nil, internal.ErrAcessoNegado
	}
	if status != editalDatamodel.StatusRascunho {
		s.logger.Warn("atividade mutation on non-draft edital",
			"edital_id", dto.EditalID,
			"status", status)
		return nil, internal.ErrTransicaoInvalida
	}

	if _, err := s.repo.GetTipoByID(dto.TipoID); err != nil {
		return nil, internal.ErrTipoAtividadeNotFound
	}

	a := &atividadeDatamodel.Atividade{
		TipoID:    dto.TipoID,
		EditalID:  dto.EditalID,
		Descricao: dto.Descricao,
	}
	if err := s.repo.CreateAtividade(a); err != nil {
		s.logger.Error("failed to create atividade", "error", err, "edital_id", dto.EditalID)
		return nil, err
	}

	return s.GetAtividade(actor, a.ID)
}

func (s *Service) GetAtividade(actor *auth.User, id int64) (*Atividade, error) {
	a, err := s.repo.GetAtividadeByID(id)
	if err != nil {
		return nil, internal.ErrAtividadeNotFound
	}

	criadoPorID, _, err := s.editais.GetOwnerAndStatus(a.EditalID)
	if err != nil {
		return nil, internal.ErrEditalNotFound
	}
	if !auth.CanVerEdital(actor, criadoPorID) {
		return nil, internal.ErrAcessoNegado
	}

	return FromDataModel(a), nil
}

func (s *Service) ListPorEdital(actor *auth.User, editalID int64) ([]*Atividade, error) {
	criadoPorID, _, err := s.editais.GetOwnerAndStatus(editalID)
	if err != nil {
		return nil, internal.ErrEditalNotFound
	}
	if !auth.CanVerEdital(actor, criadoPorID) {
		return nil, internal.ErrAcessoNegado
	}

	atividades, err := s.repo.ListAtividadesPorEdital(editalID)
	if err != nil {
		s.logger.Error("failed to list atividades", "error", err, "edital_id", editalID)
		return nil, err
	}

	views := make([]*Atividade, 0, len(atividades))
	for _, a := range atividades {
		views = append(views, FromDataModel(a))
	}
	return views, nil
}

func (s *Service) UpdateAtividade(actor *auth.User, id int64, dto UpdateAtividadeDTO) (*Atividade, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	a, err := s.repo.GetAtividadeByID(id)
	if err != nil {
		return nil, internal.ErrAtividadeNotFound
	}
	if err := s.requireDraftOwner(actor, a.EditalID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetTipoByID(dto.TipoID); err != nil {
		return nil, internal.ErrTipoAtividadeNotFound
	}

	a.TipoID = dto.TipoID
	a.Tipo = nil
	a.Descricao = dto.Descricao
	if err := s.repo.UpdateAtividade(a); err != nil {
		s.logger.Error("failed to update atividade", "error", err, "atividade_id", id)
		return nil, err
	}

	return s.GetAtividade(actor, id)
}

func (s *Service) DeleteAtividade(actor *auth.User, id int64) error {
	a, err := s.repo.GetAtividadeByID(id)
	if err != nil {
		return internal.ErrAtividadeNotFound
	}
	if err := s.requireDraftOwner(actor, a.EditalID); err != nil {
		return err
	}
	return s.repo.DeleteAtividade(id)
}

// AlocarServidores replaces the allocation set of an activity. The creator
// may restaff at any lifecycle stage, so an approved call can still swap
// people in and out.
func (s *Service) AlocarServidores(actor *auth.User, atividadeID int64, dto AlocarServidoresDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	a, err := s.repo.GetAtividadeByID(atividadeID)
	if err != nil {
		return internal.ErrAtividadeNotFound
	}

	criadoPorID, _, err := s.editais.GetOwnerAndStatus(a.EditalID)
	if err != nil {
		return internal.ErrEditalNotFound
	}
	if !auth.CanGerenciarEdital(actor, criadoPorID) {
		return internal.ErrAcessoNegado
	}

	if err := s.repo.ReplaceAlocacoes(atividadeID, dto.ServidorIDs); err != nil {
		s.logger.Error("failed to replace alocações", "error", err, "atividade_id", atividadeID)
		return err
	}

	s.logger.Info("alocações replaced",
		"atividade_id", atividadeID,
		"servidores", len(dto.ServidorIDs))
	return nil
}

func (s *Service) ListAlocados(actor *auth.User, atividadeID int64) ([]int64, error) {
	a, err := s.repo.GetAtividadeByID(atividadeID)
	if err != nil {
		return nil, internal.ErrAtividadeNotFound
	}

	criadoPorID, _, err := s.editais.GetOwnerAndStatus(a.EditalID)
	if err != nil {
		return nil, internal.ErrEditalNotFound
	}
	if !auth.CanVerEdital(actor, criadoPorID) {
		return nil, internal.ErrAcessoNegado
	}

	return s.repo.ListAlocados(atividadeID)
}

// IsAlocado is the membership test other modules use before accepting an
// hour log.
func (s *Service) IsAlocado(atividadeID, servidorID int64) (bool, error) {
	return s.repo.IsAlocado(atividadeID, servidorID)
}

func (s *Service) requireDraftOwner(actor *auth.User, editalID int64) error {
	criadoPorID, status, err := s.editais.GetOwnerAndStatus(editalID)
	if err != nil {
		return internal.ErrEditalNotFound
	}
	if !auth.CanGerenciarEdital(actor, criadoPorID) {
		return internal.ErrAcessoNegado
	}
	if status != editalDatamodel.StatusRascunho {
		return internal.ErrTransicaoInvalida
	}
	return nil
}
