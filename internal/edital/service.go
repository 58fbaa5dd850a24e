package edital

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Jesus-jpg1/GECC-System/internal"
	"github.com/Jesus-jpg1/GECC-System/internal/auth"
	editalDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/edital"
	"github.com/Jesus-jpg1/GECC-System/internal/core/events"
)

type RepositoryAPI interface {
	Create(e *editalDatamodel.Edital) error
	GetByID(id int64) (*editalDatamodel.Edital, error)
	GetByNumero(numero string) (*editalDatamodel.Edital, error)
	Update(e *editalDatamodel.Edital) error
	UpdateStatus(id int64, status string, homologadoPorID *int64, justificativa string) error
	Delete(id int64) error
	ListByCriador(criadoPorID int64, query ListEditaisQuery) ([]*editalDatamodel.Edital, error)
	ListByStatus(status string, query ListEditaisQuery) ([]*editalDatamodel.Edital, error)
	ListAll(query ListEditaisQuery) ([]*editalDatamodel.Edital, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo     RepositoryAPI
	eventBus EventPublisher
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, eventBus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Create opens a call as a draft owned by the acting unit.
func (s *Service) Create(actor *auth.User, dto CreateEditalDTO) (*Edital, error) {
	if !auth.CanCriarEdital(actor) {
		s.logger.Warn("edital creation denied", "actor_id", actorID(actor))
		return nil, internal.ErrAcessoNegado
	}
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	valorEmpenho, err := parseValorEmpenho(dto.ValorEmpenho)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByNumero(dto.NumeroEdital); err == nil && existing != nil {
		return nil, internal.NewValidationError("numero_edital já cadastrado", internal.ErrCodeValidationFailed)
	}

	dataInicio, _ := time.Parse("2006-01-02", dto.DataInicio)
	dataFim, _ := time.Parse("2006-01-02", dto.DataFim)

	e := &editalDatamodel.Edital{
		NumeroEdital:          dto.NumeroEdital,
		Titulo:                dto.Titulo,
		Descricao:             dto.Descricao,
		UnidadeDemandanteNome: dto.UnidadeDemandanteNome,
		DataInicio:            dataInicio,
		DataFim:               dataFim,
		Status:                editalDatamodel.StatusRascunho,
		ValorEmpenho:          valorEmpenho,
		CriadoPorID:           actor.ID,
	}
	if err := s.repo.Create(e); err != nil {
		s.logger.Error("failed to create edital", "error", err, "numero", dto.NumeroEdital)
		return nil, err
	}

	s.logger.Info("edital created",
		"edital_id", e.ID,
		"numero", e.NumeroEdital,
		"valor_empenho", e.ValorEmpenho.StringFixed(2))
	return FromDataModel(e), nil
}

func (s *Service) Get(actor *auth.User, id int64) (*Edital, error) {
	e, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrEditalNotFound
	}
	if !auth.CanVerEdital(actor, e.CriadoPorID) {
		s.logger.Warn("edital detail denied", "actor_id", actorID(actor), "edital_id", id)
		return nil, internal.ErrAcessoNegado
	}
	return FromDataModel(e), nil
}

// Update rewrites the editable fields of a draft.
func (s *Service) Update(actor *auth.User, id int64, dto UpdateEditalDTO) (*Edital, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	e, err := s.editavelPor(actor, id)
	if err != nil {
		return nil, err
	}

	valorEmpenho, err := parseValorEmpenho(dto.ValorEmpenho)
	if err != nil {
		return nil, err
	}

	dataInicio, _ := time.Parse("2006-01-02", dto.DataInicio)
	dataFim, _ := time.Parse("2006-01-02", dto.DataFim)

	e.Titulo = dto.Titulo
	e.Descricao = dto.Descricao
	e.UnidadeDemandanteNome = dto.UnidadeDemandanteNome
	e.DataInicio = dataInicio
	e.DataFim = dataFim
	e.ValorEmpenho = valorEmpenho
	if err := s.repo.Update(e); err != nil {
		s.logger.Error("failed to update edital", "error", err, "edital_id", id)
		return nil, err
	}

	return FromDataModel(e), nil
}

// Delete drops a draft along with its activities.
func (s *Service) Delete(actor *auth.User, id int64) error {
	if _, err := s.editavelPor(actor, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// EnviarParaHomologacao hands a draft over to the audit office.
func (s *Service) EnviarParaHomologacao(actor *auth.User, id int64) (*Edital, error) {
	e, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrEditalNotFound
	}
	if !auth.CanGerenciarEdital(actor, e.CriadoPorID) {
		return nil, internal.ErrAcessoNegado
	}
	if e.Status != editalDatamodel.StatusRascunho {
		s.logger.Warn("edital submission out of draft", "edital_id", id, "status", e.Status)
		return nil, internal.ErrTransicaoInvalida
	}

	if err := s.repo.UpdateStatus(id, editalDatamodel.StatusAguardandoHomologacao, nil, ""); err != nil {
		return nil, err
	}

	s.logger.Info("edital submitted for homologation", "edital_id", id, "actor_id", actor.ID)
	return s.Get(actor, id)
}

// Homologar approves a submitted call, opening it for hour logs.
func (s *Service) Homologar(actor *auth.User, id int64) (*Edital, error) {
	e, err := s.avaliavel(actor, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(id, editalDatamodel.StatusHomologado, &actor.ID, ""); err != nil {
		return nil, err
	}

	event := events.NewEditalHomologadoEvent(e.ID, e.NumeroEdital, e.CriadoPorID)
	s.eventBus.Publish(context.Background(), event)

	s.logger.Info("edital homologado",
		"edital_id", id,
		"numero", e.NumeroEdital,
		"actor_id", actor.ID)
	return s.Get(actor, id)
}

// Recusar rejects a submitted call with a mandatory justification.
func (s *Service) Recusar(actor *auth.User, id int64, dto RecusarEditalDTO) (*Edital, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	e, err := s.avaliavel(actor, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(id, editalDatamodel.StatusRecusado, &actor.ID, dto.Justificativa); err != nil {
		return nil, err
	}

	event := events.NewEditalRecusadoEvent(e.ID, e.NumeroEdital, e.CriadoPorID)
	s.eventBus.Publish(context.Background(), event)

	s.logger.Info("edital recusado",
		"edital_id", id,
		"numero", e.NumeroEdital,
		"actor_id", actor.ID)
	return s.Get(actor, id)
}

// ListMine returns the calls created by the acting unit.
func (s *Service) ListMine(actor *auth.User, query ListEditaisQuery) ([]*Edital, error) {
	rows, err := s.repo.ListByCriador(actor.ID, query)
	if err != nil {
		s.logger.Error("failed to list editais", "error", err, "actor_id", actor.ID)
		return nil, err
	}
	return views(rows), nil
}

// ListParaAvaliacao returns calls waiting on the audit office.
func (s *Service) ListParaAvaliacao(actor *auth.User, query ListEditaisQuery) ([]*Edital, error) {
	if !auth.CanAvaliarEdital(actor) {
		return nil, internal.ErrAcessoNegado
	}
	rows, err := s.repo.ListByStatus(editalDatamodel.StatusAguardandoHomologacao, query)
	if err != nil {
		return nil, err
	}
	return views(rows), nil
}

// ListTodos is the audit office's unfiltered listing.
func (s *Service) ListTodos(actor *auth.User, query ListEditaisQuery) ([]*Edital, error) {
	if !auth.CanAvaliarEdital(actor) {
		return nil, internal.ErrAcessoNegado
	}
	rows, err := s.repo.ListAll(query)
	if err != nil {
		return nil, err
	}
	return views(rows), nil
}

// GetOwnerAndStatus exposes ownership and lifecycle state to sibling
// modules.
func (s *Service) GetOwnerAndStatus(editalID int64) (int64, string, error) {
	e, err := s.repo.GetByID(editalID)
	if err != nil {
		return 0, "", internal.ErrEditalNotFound
	}
	return e.CriadoPorID, e.Status, nil
}

// GetValorEmpenho exposes the committed budget of a call to the ledger.
func (s *Service) GetValorEmpenho(editalID int64) (decimal.Decimal, error) {
	e, err := s.repo.GetByID(editalID)
	if err != nil {
		return decimal.Zero, internal.ErrEditalNotFound
	}
	return e.ValorEmpenho, nil
}

func (s *Service) editavelPor(actor *auth.User, id int64) (*editalDatamodel.Edital, error) {
	e, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrEditalNotFound
	}
	if !auth.CanGerenciarEdital(actor, e.CriadoPorID) {
		return nil, internal.ErrAcessoNegado
	}
	if e.Status != editalDatamodel.StatusRascunho {
		return nil, internal.ErrTransicaoInvalida
	}
	return e, nil
}

func (s *Service) avaliavel(actor *auth.User, id int64) (*editalDatamodel.Edital, error) {
	e, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrEditalNotFound
	}
	if !auth.CanAvaliarEdital(actor) {
		s.logger.Warn("edital evaluation denied", "actor_id", actorID(actor), "edital_id", id)
		return nil, internal.ErrAcessoNegado
	}
	if e.Status != editalDatamodel.StatusAguardandoHomologacao {
		s.logger.Warn("edital not awaiting homologation", "edital_id", id, "status", e.Status)
		return nil, internal.ErrTransicaoInvalida
	}
	return e, nil
}

func parseValorEmpenho(raw string) (decimal.Decimal, error) {
	valor, err := decimal.NewFromString(raw)
	if err != nil || valor.IsNegative() {
		return decimal.Zero, internal.NewValidationError("valor_empenho deve ser um valor monetário não negativo", internal.ErrCodeValidationFailed)
	}
	return valor.Round(2), nil
}

func views(rows []*editalDatamodel.Edital) []*Edital {
	result := make([]*Edital, 0, len(rows))
	for _, e := range rows {
		result = append(result, FromDataModel(e))
	}
	return result
}

func actorID(actor *auth.User) int64 {
	if actor == nil {
		return 0
	}
	return actor.ID
}
