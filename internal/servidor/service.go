package servidor

import (
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Jesus-jpg1/GECC-System/internal"
	"github.com/Jesus-jpg1/GECC-System/internal/auth"
	servidorDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/servidor"
)

// Repository persists users and profiles. CreateUserWithPerfil must write
// both rows in one transaction.
type Repository interface {
	CreateUserWithPerfil(user *servidorDatamodel.User, perfil *servidorDatamodel.ServidorProfile) error
	GetByPerfilID(perfilID int64) (*servidorDatamodel.User, *servidorDatamodel.ServidorProfile, error)
	GetByUserID(userID int64) (*servidorDatamodel.User, *servidorDatamodel.ServidorProfile, error)
	ListByStatus(status string, limit, offset int) ([]*Servidor, error)
	ListByFuncao(funcao string) ([]*Servidor, error)
	UpdateStatus(perfilID int64, status string) error
}

type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates the actor identity and its profile together. The profile
// starts awaiting homologation, so the new servidor cannot authenticate
// until the audit office approves it.
func (s *Service) Register(dto RegisterServidorDTO) (*Servidor, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("servidor registration validation failed", "error", err)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if _, err := auth.ParseFuncao(dto.Funcao); err != nil {
		s.logger.Error("servidor registration with unknown funcao", "funcao", dto.Funcao)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	now := time.Now()
	user := &servidorDatamodel.User{
		Email:        dto.Email,
		Nome:         dto.Nome,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	perfil := &servidorDatamodel.ServidorProfile{
		Siape:            dto.Siape,
		CPF:              dto.CPF,
		Setor:            dto.Setor,
		Funcao:           dto.Funcao,
		Status:           servidorDatamodel.StatusAguardandoHomologacao,
		Telefone:         dto.Telefone,
		LimiteHorasAnual: 120,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.CreateUserWithPerfil(user, perfil); err != nil {
		s.logger.Error("failed to create servidor", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("servidor registered",
		"user_id", user.ID,
		"funcao", perfil.Funcao,
		"status", perfil.Status)

	return FromDataModel(user, perfil), nil
}

// ListPendentes returns profiles awaiting homologation, audit office only.
func (s *Service) ListPendentes(actor *auth.User, limit, offset int) ([]*Servidor, error) {
	if !auth.CanHomologarServidor(actor) {
		s.logger.Warn("list pending servidores denied", "actor_id", actorID(actor))
		return nil, internal.ErrAcessoNegado
	}
	return s.repo.ListByStatus(servidorDatamodel.StatusAguardandoHomologacao, limit, offset)
}

// Homologar approves a pending profile.
func (s *Service) Homologar(actor *auth.User, perfilID int64) error {
	return s.avaliar(actor, perfilID, servidorDatamodel.StatusHomologado)
}

// Recusar rejects a pending profile, blocking authentication.
func (s *Service) Recusar(actor *auth.User, perfilID int64) error {
	return s.avaliar(actor, perfilID, servidorDatamodel.StatusRecusado)
}

func (s *Service) avaliar(actor *auth.User, perfilID int64, novoStatus string) error {
	if !auth.CanHomologarServidor(actor) {
		s.logger.Warn("servidor homologation denied",
			"actor_id", actorID(actor),
			"perfil_id", perfilID)
		return internal.ErrAcessoNegado
	}

	_, perfil, err := s.repo.GetByPerfilID(perfilID)
	if err != nil {
		return internal.ErrServidorNotFound
	}

	if perfil.Status != servidorDatamodel.StatusAguardandoHomologacao {
		s.logger.Warn("servidor profile not pending",
			"perfil_id", perfilID,
			"status", perfil.Status)
		return internal.ErrTransicaoInvalida
	}

	if err := s.repo.UpdateStatus(perfilID, novoStatus); err != nil {
		s.logger.Error("failed to update servidor status", "error", err, "perfil_id", perfilID)
		return err
	}

	s.logger.Info("servidor profile evaluated",
		"perfil_id", perfilID,
		"status", novoStatus,
		"actor_id", actor.ID)
	return nil
}

// ListServidores lists staff-role servidores, used by allocation screens.
func (s *Service) ListServidores() ([]*Servidor, error) {
	return s.repo.ListByFuncao(string(auth.FuncaoServidor))
}

// GetByUserID resolves the profile view for the current user.
func (s *Service) GetByUserID(userID int64) (*Servidor, error) {
	user, perfil, err := s.repo.GetByUserID(userID)
	if err != nil {
		return nil, internal.ErrServidorNotFound
	}
	return FromDataModel(user, perfil), nil
}

func actorID(actor *auth.User) int64 {
	if actor == nil {
		return 0
	}
	return actor.ID
}
