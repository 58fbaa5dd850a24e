package lancamento

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Jesus-jpg1/GECC-System/internal"
	"github.com/Jesus-jpg1/GECC-System/internal/auth"
	atividadeDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/atividade"
	editalDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/edital"
	lancamentoDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/lancamento"
	"github.com/Jesus-jpg1/GECC-System/internal/core/events"
	"github.com/Jesus-jpg1/GECC-System/internal/core/horas"
)

type RepositoryAPI interface {
	// CreateComValidacaoDeSaldo inserts the log after revalidating the
	// call's ledger under a row lock on the edital, so two concurrent
	// submissions cannot both fit into the same remaining budget.
	CreateComValidacaoDeSaldo(l *lancamentoDatamodel.LancamentoHoras, custo decimal.Decimal) error
	GetByID(id int64) (*lancamentoDatamodel.LancamentoHoras, error)
	GetAtividade(id int64) (*atividadeDatamodel.Atividade, error)
	UpdateStatus(id int64, status string, validadoPorID int64, validadoEm time.Time, comentario string) error
	ListByServidor(servidorID int64, limit, offset int) ([]*lancamentoDatamodel.LancamentoHoras, error)
	ListPendentesPorCriador(criadoPorID int64, limit, offset int) ([]*lancamentoDatamodel.LancamentoHoras, error)
	List(query ListLancamentosQuery) ([]*lancamentoDatamodel.LancamentoHoras, error)
	SumComprometido(editalID int64) (decimal.Decimal, error)
}

// EditalDirectory resolves call ownership, lifecycle and budget without
// importing the edital module.
type EditalDirectory interface {
	GetOwnerAndStatus(editalID int64) (criadoPorID int64, status string, err error)
	GetValorEmpenho(editalID int64) (decimal.Decimal, error)
}

// AtividadeDirectory answers the allocation membership test.
type AtividadeDirectory interface {
	IsAlocado(atividadeID, servidorID int64) (bool, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo      RepositoryAPI
	editais   EditalDirectory
	alocacoes AtividadeDirectory
	eventBus  EventPublisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, editais EditalDirectory, alocacoes AtividadeDirectory, eventBus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		editais:   editais,
		alocacoes: alocacoes,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Create submits an hour log. The actor must be allocated to the activity,
// the call must be open for logs, and the priced cost must fit the
// remaining budget.
func (s *Service) Create(actor *auth.User, dto CreateLancamentoDTO) (*Lancamento, error) {
	if !auth.CanLancarHoras(actor) {
		s.logger.Warn("lancamento denied for role", "actor_id", actorID(actor))
		return nil, internal.ErrAcessoNegado
	}
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	horasDecimal, err := horas.Parse(dto.Horas)
	if err != nil {
		return nil, err
	}
	if !horasDecimal.IsPositive() {
		return nil, internal.NewValidationError("horas deve ser maior que zero", internal.ErrCodeValidationFailed)
	}

	a, err := s.repo.GetAtividade(dto.AtividadeID)
	if err != nil {
		return nil, internal.ErrAtividadeNotFound
	}
	if a.Tipo == nil {
		s.logger.Error("atividade sem tipo resolvido", "atividade_id", a.ID)
		return nil, internal.ErrTipoAtividadeNotFound
	}

	_, status, err := s.editais.GetOwnerAndStatus(a.EditalID)
	if err != nil {
		return nil, internal.ErrEditalNotFound
	}
	if status != editalDatamodel.StatusHomologado && status != editalDatamodel.StatusAtivo {
		s.logger.Warn("lancamento against closed edital", "edital_id", a.EditalID, "status", status)
		return nil, internal.ErrTransicaoInvalida
	}

	alocado, err := s.alocacoes.IsAlocado(dto.AtividadeID, actor.ID)
	if err != nil {
		return nil, err
	}
	if !alocado {
		s.logger.Warn("lancamento by unallocated servidor",
			"servidor_id", actor.ID,
			"atividade_id", dto.AtividadeID)
		return nil, internal.ErrServidorNaoAlocado
	}

	data, _ := time.Parse("2006-01-02", dto.Data)
	custo := Custo(horasDecimal, a.Tipo.ValorHora)

	l := &lancamentoDatamodel.LancamentoHoras{
		ServidorID:             actor.ID,
		EditalID:               a.EditalID,
		AtividadeID:            a.ID,
		Data:                   data,
		Horas:                  horasDecimal,
		DescricaoJustificativa: dto.DescricaoJustificativa,
		Status:                 lancamentoDatamodel.StatusPendente,
	}
	if err := s.repo.CreateComValidacaoDeSaldo(l, custo); err != nil {
		s.logger.Warn("lancamento rejected",
			"servidor_id", actor.ID,
			"atividade_id", a.ID,
			"custo", custo.StringFixed(2),
			"error", err)
		return nil, err
	}

	s.logger.Info("lancamento created",
		"lancamento_id", l.ID,
		"servidor_id", actor.ID,
		"horas", horas.Format(horasDecimal),
		"custo", custo.StringFixed(2))
	return s.reload(l.ID)
}

// Aprovar accepts a pending log. Only the creator of the call evaluates.
func (s *Service) Aprovar(actor *auth.User, id int64) (*Lancamento, error) {
	l, err := s.avaliavelPorCriador(actor, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(id, lancamentoDatamodel.StatusAprovado, actor.ID, time.Now(), ""); err != nil {
		return nil, err
	}

	event := events.NewLancamentoAprovadoEvent(l.ID, l.ServidorID, l.Horas, atividadeNome(l))
	s.eventBus.Publish(context.Background(), event)

	s.logger.Info("lancamento aprovado", "lancamento_id", id, "actor_id", actor.ID)
	return s.reload(id)
}

// Recusar refuses a pending log, releasing its cost back to the budget.
func (s *Service) Recusar(actor *auth.User, id int64, dto RecusarLancamentoDTO) (*Lancamento, error) {
	l, err := s.avaliavelPorCriador(actor, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(id, lancamentoDatamodel.StatusRecusado, actor.ID, time.Now(), dto.Comentario); err != nil {
		return nil, err
	}

	event := events.NewLancamentoRecusadoEvent(l.ID, l.ServidorID, l.Horas, atividadeNome(l))
	s.eventBus.Publish(context.Background(), event)

	s.logger.Info("lancamento recusado", "lancamento_id", id, "actor_id", actor.ID)
	return s.reload(id)
}

// Homologar is the audit office's final acceptance of an approved log.
func (s *Service) Homologar(actor *auth.User, id int64) (*Lancamento, error) {
	if err := s.auditavel(actor, id, lancamentoDatamodel.StatusAprovado); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(id, lancamentoDatamodel.StatusHomologado, actor.ID, time.Now(), ""); err != nil {
		return nil, err
	}

	s.logger.Info("lancamento homologado", "lancamento_id", id, "actor_id", actor.ID)
	return s.reload(id)
}

// Reverter undoes an approval or homologation, releasing the log's cost back
// to the budget.
func (s *Service) Reverter(actor *auth.User, id int64) (*Lancamento, error) {
	if err := s.auditavel(actor, id, lancamentoDatamodel.StatusAprovado, lancamentoDatamodel.StatusHomologado); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(id, lancamentoDatamodel.StatusRevertido, actor.ID, time.Now(), ""); err != nil {
		return nil, err
	}

	s.logger.Info("lancamento revertido", "lancamento_id", id, "actor_id", actor.ID)
	return s.reload(id)
}

// MeusLancamentos is the servidor's own submission history.
func (s *Service) MeusLancamentos(actor *auth.User, limit, offset int) ([]*Lancamento, error) {
	rows, err := s.repo.ListByServidor(actor.ID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list lancamentos", "error", err, "servidor_id", actor.ID)
		return nil, err
	}
	return views(rows), nil
}

// PendentesParaAvaliacao lists pending logs across the calls the actor
// created.
func (s *Service) PendentesParaAvaliacao(actor *auth.User, limit, offset int) ([]*Lancamento, error) {
	rows, err := s.repo.ListPendentesPorCriador(actor.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	return views(rows), nil
}

// Auditoria is the audit office's cross-call listing.
func (s *Service) Auditoria(actor *auth.User, query ListLancamentosQuery) ([]*Lancamento, error) {
	if !auth.CanAuditarLancamento(actor) {
		return nil, internal.ErrAcessoNegado
	}
	rows, err := s.repo.List(query)
	if err != nil {
		return nil, err
	}
	return views(rows), nil
}

// Saldo is the ledger snapshot of a call: budget, committed total and what
// is left.
func (s *Service) Saldo(actor *auth.User, editalID int64) (*SaldoEdital, error) {
	criadoPorID, _, err := s.editais.GetOwnerAndStatus(editalID)
	if err != nil {
		return nil, internal.ErrEditalNotFound
	}
	if !auth.CanVerEdital(actor, criadoPorID) {
		return nil, internal.ErrAcessoNegado
	}

	valorEmpenho, err := s.editais.GetValorEmpenho(editalID)
	if err != nil {
		return nil, err
	}
	comprometido, err := s.repo.SumComprometido(editalID)
	if err != nil {
		return nil, err
	}

	return &SaldoEdital{
		EditalID:     editalID,
		ValorEmpenho: valorEmpenho.StringFixed(2),
		Comprometido: comprometido.StringFixed(2),
		Saldo:        SaldoRestante(valorEmpenho, comprometido).StringFixed(2),
	}, nil
}

// Get resolves one log for its owner, the call's creator or the audit
// office.
func (s *Service) Get(actor *auth.User, id int64) (*Lancamento, error) {
	l, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrLancamentoNotFound
	}

	criadoPorID, _, err := s.editais.GetOwnerAndStatus(l.EditalID)
	if err != nil {
		return nil, internal.ErrEditalNotFound
	}
	if actor == nil || (actor.ID != l.ServidorID && !auth.CanVerEdital(actor, criadoPorID)) {
		return nil, internal.ErrAcessoNegado
	}

	return FromDataModel(l), nil
}

func (s *Service) avaliavelPorCriador(actor *auth.User, id int64) (*lancamentoDatamodel.LancamentoHoras, error) {
	l, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrLancamentoNotFound
	}

	criadoPorID, _, err := s.editais.GetOwnerAndStatus(l.EditalID)
	if err != nil {
		return nil, internal.ErrEditalNotFound
	}
	if !auth.CanAvaliarLancamento(actor, criadoPorID) {
		s.logger.Warn("lancamento evaluation denied",
			"actor_id", actorID(actor),
			"lancamento_id", id)
		return nil, internal.ErrAcessoNegado
	}
	if l.Status != lancamentoDatamodel.StatusPendente {
		s.logger.Warn("lancamento not pending", "lancamento_id", id, "status", l.Status)
		return nil, internal.ErrTransicaoInvalida
	}
	return l, nil
}

func (s *Service) auditavel(actor *auth.User, id int64, fromStatuses ...string) error {
	if !auth.CanAuditarLancamento(actor) {
		s.logger.Warn("lancamento audit denied", "actor_id", actorID(actor), "lancamento_id", id)
		return internal.ErrAcessoNegado
	}

	l, err := s.repo.GetByID(id)
	if err != nil {
		return internal.ErrLancamentoNotFound
	}
	for _, status := range fromStatuses {
		if l.Status == status {
			return nil
		}
	}
	s.logger.Warn("lancamento not auditable", "lancamento_id", id, "status", l.Status)
	return internal.ErrTransicaoInvalida
}

func (s *Service) reload(id int64) (*Lancamento, error) {
	l, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrLancamentoNotFound
	}
	return FromDataModel(l), nil
}

func atividadeNome(l *lancamentoDatamodel.LancamentoHoras) string {
	if l.Atividade != nil && l.Atividade.Tipo != nil {
		return l.Atividade.Tipo.Nome
	}
	return ""
}

func views(rows []*lancamentoDatamodel.LancamentoHoras) []*Lancamento {
	result := make([]*Lancamento, 0, len(rows))
	for _, l := range rows {
		result = append(result, FromDataModel(l))
	}
	return result
}

func actorID(actor *auth.User) int64 {
	if actor == nil {
		return 0
	}
	return actor.ID
}
