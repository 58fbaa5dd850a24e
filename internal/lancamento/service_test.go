package lancamento_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/Jesus-jpg1/GECC-System/internal"
	"github.com/Jesus-jpg1/GECC-System/internal/auth"
	atividadeDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/atividade"
	editalDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/edital"
	lancamentoDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/lancamento"
	"github.com/Jesus-jpg1/GECC-System/internal/core/events"
	"github.com/Jesus-jpg1/GECC-System/internal/lancamento"
)

// Mock repository for testing. CreateComValidacaoDeSaldo reproduces the
// ledger revalidation the real repository runs under the edital lock.
type mockLancamentoRepository struct {
	lancamentos  map[int64]*lancamentoDatamodel.LancamentoHoras
	atividades   map[int64]*atividadeDatamodel.Atividade
	valorEmpenho map[int64]decimal.Decimal
	nextID       int64
}

func newMockLancamentoRepository() *mockLancamentoRepository {
	return &mockLancamentoRepository{
		lancamentos:  make(map[int64]*lancamentoDatamodel.LancamentoHoras),
		atividades:   make(map[int64]*atividadeDatamodel.Atividade),
		valorEmpenho: make(map[int64]decimal.Decimal),
		nextID:       1,
	}
}

func (m *mockLancamentoRepository) CreateComValidacaoDeSaldo(l *lancamentoDatamodel.LancamentoHoras, custo decimal.Decimal) error {
	comprometido, err := m.SumComprometido(l.EditalID)
	if err != nil {
		return err
	}
	if err := lancamento.ValidarNovoLancamento(m.valorEmpenho[l.EditalID], comprometido, custo); err != nil {
		return err
	}

	l.ID = m.nextID
	m.nextID++
	l.CreatedAt = time.Now()
	m.lancamentos[l.ID] = l
	return nil
}

func (m *mockLancamentoRepository) GetByID(id int64) (*lancamentoDatamodel.LancamentoHoras, error) {
	l, ok := m.lancamentos[id]
	if !ok {
		return nil, errors.New("lancamento not found")
	}
	l.Atividade = m.atividades[l.AtividadeID]
	return l, nil
}

func (m *mockLancamentoRepository) GetAtividade(id int64) (*atividadeDatamodel.Atividade, error) {
	a, ok := m.atividades[id]
	if !ok {
		return nil, errors.New("atividade not found")
	}
	return a, nil
}

func (m *mockLancamentoRepository) UpdateStatus(id int64, status string, validadoPorID int64, validadoEm time.Time, comentario string) error {
	l, ok := m.lancamentos[id]
	if !ok {
		return errors.New("lancamento not found")
	}
	l.Status = status
	l.ValidadoPorID = &validadoPorID
	l.ValidadoEm = &validadoEm
	if comentario != "" {
		l.ComentarioRecusa = comentario
	}
	return nil
}

func (m *mockLancamentoRepository) ListByServidor(servidorID int64, limit, offset int) ([]*lancamentoDatamodel.LancamentoHoras, error) {
	result := make([]*lancamentoDatamodel.LancamentoHoras, 0)
	for _, l := range m.lancamentos {
		if l.ServidorID == servidorID {
			l.Atividade = m.atividades[l.AtividadeID]
			result = append(result, l)
		}
	}
	return result, nil
}

func (m *mockLancamentoRepository) ListPendentesPorCriador(criadoPorID int64, limit, offset int) ([]*lancamentoDatamodel.LancamentoHoras, error) {
	result := make([]*lancamentoDatamodel.LancamentoHoras, 0)
	for _, l := range m.lancamentos {
		if l.Status == lancamentoDatamodel.StatusPendente {
			l.Atividade = m.atividades[l.AtividadeID]
			result = append(result, l)
		}
	}
	return result, nil
}

func (m *mockLancamentoRepository) List(query lancamento.ListLancamentosQuery) ([]*lancamentoDatamodel.LancamentoHoras, error) {
	result := make([]*lancamentoDatamodel.LancamentoHoras, 0)
	for _, l := range m.lancamentos {
		if query.Status != "" && l.Status != query.Status {
			continue
		}
		l.Atividade = m.atividades[l.AtividadeID]
		result = append(result, l)
	}
	return result, nil
}

func (m *mockLancamentoRepository) SumComprometido(editalID int64) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, l := range m.lancamentos {
		if l.EditalID != editalID {
			continue
		}
		if l.Status == lancamentoDatamodel.StatusRecusado || l.Status == lancamentoDatamodel.StatusRevertido {
			continue
		}
		a := m.atividades[l.AtividadeID]
		total = total.Add(lancamento.Custo(l.Horas, a.Tipo.ValorHora))
	}
	return total, nil
}

// Mock edital directory for testing
type mockEditalDirectory struct {
	owners       map[int64]int64
	statuses     map[int64]string
	valorEmpenho map[int64]decimal.Decimal
}

func (m *mockEditalDirectory) GetOwnerAndStatus(editalID int64) (int64, string, error) {
	owner, ok := m.owners[editalID]
	if !ok {
		return 0, "", errors.New("edital not found")
	}
	return owner, m.statuses[editalID], nil
}

func (m *mockEditalDirectory) GetValorEmpenho(editalID int64) (decimal.Decimal, error) {
	v, ok := m.valorEmpenho[editalID]
	if !ok {
		return decimal.Zero, errors.New("edital not found")
	}
	return v, nil
}

// Mock allocation registry for testing
type mockAtividadeDirectory struct {
	alocados map[int64][]int64
}

func (m *mockAtividadeDirectory) IsAlocado(atividadeID, servidorID int64) (bool, error) {
	for _, id := range m.alocados[atividadeID] {
		if id == servidorID {
			return true, nil
		}
	}
	return false, nil
}

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

var _ = Describe("LancamentoService", func() {
	var (
		svc       *lancamento.Service
		mockRepo  *mockLancamentoRepository
		editais   *mockEditalDirectory
		alocacoes *mockAtividadeDirectory
		bus       *recordingPublisher

		staff   *auth.User
		criador *auth.User
		outraUD *auth.User
		auditor *auth.User
	)

	const (
		editalID    = int64(100)
		atividadeID = int64(200)
	)

	BeforeEach(func() {
		mockRepo = newMockLancamentoRepository()
		bus = &recordingPublisher{}

		staff = &auth.User{ID: 1, Funcao: auth.FuncaoServidor}
		criador = &auth.User{ID: 2, Funcao: auth.FuncaoUnidadeDemandante}
		outraUD = &auth.User{ID: 3, Funcao: auth.FuncaoUnidadeDemandante}
		auditor = &auth.User{ID: 4, Funcao: auth.FuncaoProdgepPropeg}

		valorEmpenho := decimal.RequireFromString("1000.00")
		editais = &mockEditalDirectory{
			owners:       map[int64]int64{editalID: criador.ID},
			statuses:     map[int64]string{editalID: editalDatamodel.StatusHomologado},
			valorEmpenho: map[int64]decimal.Decimal{editalID: valorEmpenho},
		}
		mockRepo.valorEmpenho[editalID] = valorEmpenho
		mockRepo.atividades[atividadeID] = &atividadeDatamodel.Atividade{
			ID:       atividadeID,
			TipoID:   1,
			EditalID: editalID,
			Tipo: &atividadeDatamodel.TipoAtividade{
				ID:        1,
				Grupo:     "Instrutoria",
				Nome:      "Instrutoria em curso de formação",
				ValorHora: decimal.RequireFromString("50.00"),
			},
		}
		alocacoes = &mockAtividadeDirectory{
			alocados: map[int64][]int64{atividadeID: {staff.ID}},
		}

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = lancamento.NewService(mockRepo, editais, alocacoes, bus, logger)
	})

	submit := func(horas string) (*lancamento.Lancamento, error) {
		return svc.Create(staff, lancamento.CreateLancamentoDTO{
			AtividadeID:            atividadeID,
			Data:                   "2026-03-10",
			Horas:                  horas,
			DescricaoJustificativa: "Aulas ministradas",
		})
	}

	Describe("Create", func() {
		It("should accept hours that fit the budget", func() {
			l, err := submit("10:00")

			Expect(err).ToNot(HaveOccurred())
			Expect(l.Status).To(Equal(lancamentoDatamodel.StatusPendente))
			Expect(l.HorasFormatadas).To(Equal("10:00"))
			Expect(l.Custo.StringFixed(2)).To(Equal("500.00"))
			Expect(l.EditalID).To(Equal(editalID))
		})

		It("should refuse hours whose cost exceeds the remaining budget", func() {
			_, err := submit("10:00")
			Expect(err).ToNot(HaveOccurred())
			_, err = submit("10:00")
			Expect(err).ToNot(HaveOccurred())

			// 500 + 500 committed; 1:00 more would cost 50.00
			_, err = submit("01:00")

			var appErr *internal.AppError
			Expect(errors.As(err, &appErr)).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeSaldoExcedido))
		})

		It("should free budget when a log is refused", func() {
			first, err := submit("20:00")
			Expect(err).ToNot(HaveOccurred())

			_, err = submit("01:00")
			Expect(err).To(HaveOccurred())

			_, err = svc.Recusar(criador, first.ID, lancamento.RecusarLancamentoDTO{
				Comentario: "Horas não conferem com a frequência",
			})
			Expect(err).ToNot(HaveOccurred())

			_, err = submit("20:00")
			Expect(err).ToNot(HaveOccurred())
		})

		It("should refuse a servidor not allocated to the activity", func() {
			alocacoes.alocados[atividadeID] = nil

			_, err := submit("02:00")

			Expect(err).To(MatchError(internal.ErrServidorNaoAlocado))
		})

		It("should refuse non-staff roles", func() {
			_, err := svc.Create(criador, lancamento.CreateLancamentoDTO{
				AtividadeID:            atividadeID,
				Data:                   "2026-03-10",
				Horas:                  "02:00",
				DescricaoJustificativa: "x",
			})

			Expect(err).To(MatchError(internal.ErrAcessoNegado))
		})

		It("should refuse a malformed hours field", func() {
			_, err := submit("2:75")

			var appErr *internal.AppError
			Expect(errors.As(err, &appErr)).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidHorasFormat))
		})

		It("should refuse zero hours", func() {
			_, err := submit("00:00")

			Expect(err).To(HaveOccurred())
		})

		It("should refuse logging against a call still in draft", func() {
			editais.statuses[editalID] = editalDatamodel.StatusRascunho

			_, err := submit("02:00")

			Expect(err).To(MatchError(internal.ErrTransicaoInvalida))
		})
	})

	Describe("Aprovar", func() {
		It("should let the call's creator approve and record the evaluator", func() {
			l, err := submit("02:30")
			Expect(err).ToNot(HaveOccurred())

			approved, err := svc.Aprovar(criador, l.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(approved.Status).To(Equal(lancamentoDatamodel.StatusAprovado))
			Expect(approved.ValidadoPorID).ToNot(BeNil())
			Expect(*approved.ValidadoPorID).To(Equal(criador.ID))
		})

		It("should publish the approval event with the formatted hours", func() {
			l, err := submit("02:30")
			Expect(err).ToNot(HaveOccurred())

			_, err = svc.Aprovar(criador, l.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(bus.published).To(HaveLen(1))
			Expect(bus.published[0].EventType()).To(Equal(events.EventTypeLancamentoAprovado))
		})

		It("should deny another unit", func() {
			l, err := submit("02:30")
			Expect(err).ToNot(HaveOccurred())

			_, err = svc.Aprovar(outraUD, l.ID)

			Expect(err).To(MatchError(internal.ErrAcessoNegado))
		})

		It("should allow only one transition out of pending", func() {
			l, err := submit("02:30")
			Expect(err).ToNot(HaveOccurred())
			_, err = svc.Aprovar(criador, l.ID)
			Expect(err).ToNot(HaveOccurred())

			_, err = svc.Recusar(criador, l.ID, lancamento.RecusarLancamentoDTO{Comentario: "c"})

			Expect(err).To(MatchError(internal.ErrTransicaoInvalida))
		})
	})

	Describe("Recusar", func() {
		It("should accept an empty comment", func() {
			l, err := submit("02:30")
			Expect(err).ToNot(HaveOccurred())

			refused, err := svc.Recusar(criador, l.ID, lancamento.RecusarLancamentoDTO{})

			Expect(err).ToNot(HaveOccurred())
			Expect(refused.Status).To(Equal(lancamentoDatamodel.StatusRecusado))
		})

		It("should record the comment and publish the refusal event", func() {
			l, err := submit("02:30")
			Expect(err).ToNot(HaveOccurred())

			refused, err := svc.Recusar(criador, l.ID, lancamento.RecusarLancamentoDTO{
				Comentario: "Atividade não realizada",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(refused.Status).To(Equal(lancamentoDatamodel.StatusRecusado))
			Expect(refused.ComentarioRecusa).To(Equal("Atividade não realizada"))
			Expect(bus.published).To(HaveLen(1))
			Expect(bus.published[0].EventType()).To(Equal(events.EventTypeLancamentoRecusado))
		})
	})

	Describe("Homologar", func() {
		It("should accept an approved log", func() {
			l, err := submit("02:30")
			Expect(err).ToNot(HaveOccurred())
			_, err = svc.Aprovar(criador, l.ID)
			Expect(err).ToNot(HaveOccurred())

			final, err := svc.Homologar(auditor, l.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(final.Status).To(Equal(lancamentoDatamodel.StatusHomologado))
		})

		It("should refuse a pending log", func() {
			l, err := submit("02:30")
			Expect(err).ToNot(HaveOccurred())

			_, err = svc.Homologar(auditor, l.ID)

			Expect(err).To(MatchError(internal.ErrTransicaoInvalida))
		})

		It("should deny the call's creator", func() {
			l, err := submit("02:30")
			Expect(err).ToNot(HaveOccurred())
			_, err = svc.Aprovar(criador, l.ID)
			Expect(err).ToNot(HaveOccurred())

			_, err = svc.Homologar(criador, l.ID)

			Expect(err).To(MatchError(internal.ErrAcessoNegado))
		})
	})

	Describe("Reverter", func() {
		It("should release the budget held by an approved log", func() {
			l, err := submit("20:00")
			Expect(err).ToNot(HaveOccurred())
			_, err = svc.Aprovar(criador, l.ID)
			Expect(err).ToNot(HaveOccurred())

			_, err = svc.Reverter(auditor, l.ID)
			Expect(err).ToNot(HaveOccurred())

			saldo, err := svc.Saldo(criador, editalID)
			Expect(err).ToNot(HaveOccurred())
			Expect(saldo.Saldo).To(Equal("1000.00"))
		})

		It("should also undo a homologated log", func() {
			l, err := submit("20:00")
			Expect(err).ToNot(HaveOccurred())
			_, err = svc.Aprovar(criador, l.ID)
			Expect(err).ToNot(HaveOccurred())
			_, err = svc.Homologar(auditor, l.ID)
			Expect(err).ToNot(HaveOccurred())

			final, err := svc.Reverter(auditor, l.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(final.Status).To(Equal(lancamentoDatamodel.StatusRevertido))

			saldo, err := svc.Saldo(criador, editalID)
			Expect(err).ToNot(HaveOccurred())
			Expect(saldo.Saldo).To(Equal("1000.00"))
		})

		It("should refuse a log still pending evaluation", func() {
			l, err := submit("02:30")
			Expect(err).ToNot(HaveOccurred())

			_, err = svc.Reverter(auditor, l.ID)

			Expect(err).To(MatchError(internal.ErrTransicaoInvalida))
		})
	})

	Describe("Saldo", func() {
		It("should report budget, committed total and remainder", func() {
			_, err := submit("10:00")
			Expect(err).ToNot(HaveOccurred())

			saldo, err := svc.Saldo(criador, editalID)

			Expect(err).ToNot(HaveOccurred())
			Expect(saldo.ValorEmpenho).To(Equal("1000.00"))
			Expect(saldo.Comprometido).To(Equal("500.00"))
			Expect(saldo.Saldo).To(Equal("500.00"))
		})

		It("should deny a unit that does not own the call", func() {
			_, err := svc.Saldo(outraUD, editalID)

			Expect(err).To(MatchError(internal.ErrAcessoNegado))
		})
	})
})
