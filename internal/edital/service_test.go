package edital_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Jesus-jpg1/GECC-System/internal"
	"github.com/Jesus-jpg1/GECC-System/internal/auth"
	editalDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/edital"
	"github.com/Jesus-jpg1/GECC-System/internal/core/events"
	"github.com/Jesus-jpg1/GECC-System/internal/edital"
)

func TestEditalService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Edital Service Suite")
}

// Mock repository for testing
type mockEditalRepository struct {
	editais map[int64]*editalDatamodel.Edital
	nextID  int64
}

func newMockEditalRepository() *mockEditalRepository {
	return &mockEditalRepository{
		editais: make(map[int64]*editalDatamodel.Edital),
		nextID:  1,
	}
}

func (m *mockEditalRepository) Create(e *editalDatamodel.Edital) error {
	e.ID = m.nextID
	m.nextID++
	m.editais[e.ID] = e
	return nil
}

func (m *mockEditalRepository) GetByID(id int64) (*editalDatamodel.Edital, error) {
	e, ok := m.editais[id]
	if !ok {
		return nil, errors.New("edital not found")
	}
	return e, nil
}

func (m *mockEditalRepository) GetByNumero(numero string) (*editalDatamodel.Edital, error) {
	for _, e := range m.editais {
		if e.NumeroEdital == numero {
			return e, nil
		}
	}
	return nil, errors.New("edital not found")
}

func (m *mockEditalRepository) Update(e *editalDatamodel.Edital) error {
	m.editais[e.ID] = e
	return nil
}

func (m *mockEditalRepository) UpdateStatus(id int64, status string, homologadoPorID *int64, justificativa string) error {
	e, ok := m.editais[id]
	if !ok {
		return errors.New("edital not found")
	}
	e.Status = status
	if homologadoPorID != nil {
		e.HomologadoPorID = homologadoPorID
	}
	if justificativa != "" {
		e.JustificativaRecusa = justificativa
	}
	return nil
}

func (m *mockEditalRepository) Delete(id int64) error {
	delete(m.editais, id)
	return nil
}

func (m *mockEditalRepository) ListByCriador(criadoPorID int64, query edital.ListEditaisQuery) ([]*editalDatamodel.Edital, error) {
	result := make([]*editalDatamodel.Edital, 0)
	for _, e := range m.editais {
		if e.CriadoPorID == criadoPorID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockEditalRepository) ListByStatus(status string, query edital.ListEditaisQuery) ([]*editalDatamodel.Edital, error) {
	result := make([]*editalDatamodel.Edital, 0)
	for _, e := range m.editais {
		if e.Status == status {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockEditalRepository) ListAll(query edital.ListEditaisQuery) ([]*editalDatamodel.Edital, error) {
	result := make([]*editalDatamodel.Edital, 0, len(m.editais))
	for _, e := range m.editais {
		result = append(result, e)
	}
	return result, nil
}

// Mock event publisher for testing
type mockEventPublisher struct {
	published []events.Event
}

func (m *mockEventPublisher) Publish(ctx context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

var _ = Describe("EditalService", func() {
	var (
		svc      *edital.Service
		mockRepo *mockEditalRepository
		bus      *mockEventPublisher

		criador *auth.User
		outraUD *auth.User
		staff   *auth.User
		auditor *auth.User
	)

	BeforeEach(func() {
		mockRepo = newMockEditalRepository()
		bus = &mockEventPublisher{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = edital.NewService(mockRepo, bus, logger)

		criador = &auth.User{ID: 1, Funcao: auth.FuncaoUnidadeDemandante}
		outraUD = &auth.User{ID: 2, Funcao: auth.FuncaoUnidadeDemandante}
		staff = &auth.User{ID: 3, Funcao: auth.FuncaoServidor}
		auditor = &auth.User{ID: 4, Funcao: auth.FuncaoProdgepPropeg}
	})

	create := func() *edital.Edital {
		e, err := svc.Create(criador, edital.CreateEditalDTO{
			NumeroEdital:          "01/2026",
			Titulo:                "Curso de Formação Continuada",
			UnidadeDemandanteNome: "PROPEG",
			DataInicio:            "2026-02-01",
			DataFim:               "2026-11-30",
			ValorEmpenho:          "1000.00",
		})
		Expect(err).ToNot(HaveOccurred())
		return e
	}

	Describe("Create", func() {
		It("should open the call as a draft owned by the actor", func() {
			e := create()

			Expect(e.Status).To(Equal(editalDatamodel.StatusRascunho))
			Expect(e.CriadoPorID).To(Equal(criador.ID))
			Expect(e.ValorEmpenho.StringFixed(2)).To(Equal("1000.00"))
		})

		It("should deny staff and the audit office", func() {
			for _, actor := range []*auth.User{staff, auditor} {
				_, err := svc.Create(actor, edital.CreateEditalDTO{
					NumeroEdital:          "02/2026",
					Titulo:                "T",
					UnidadeDemandanteNome: "U",
					DataInicio:            "2026-02-01",
					DataFim:               "2026-11-30",
					ValorEmpenho:          "10.00",
				})
				Expect(err).To(MatchError(internal.ErrAcessoNegado))
			}
		})

		It("should reject a duplicate numero", func() {
			create()

			_, err := svc.Create(criador, edital.CreateEditalDTO{
				NumeroEdital:          "01/2026",
				Titulo:                "Outro",
				UnidadeDemandanteNome: "PROPEG",
				DataInicio:            "2026-02-01",
				DataFim:               "2026-11-30",
				ValorEmpenho:          "10.00",
			})

			Expect(err).To(HaveOccurred())
		})

		It("should reject an end date before the start date", func() {
			_, err := svc.Create(criador, edital.CreateEditalDTO{
				NumeroEdital:          "03/2026",
				Titulo:                "T",
				UnidadeDemandanteNome: "U",
				DataInicio:            "2026-11-30",
				DataFim:               "2026-02-01",
				ValorEmpenho:          "10.00",
			})

			Expect(err).To(HaveOccurred())
		})

		It("should reject a negative budget", func() {
			_, err := svc.Create(criador, edital.CreateEditalDTO{
				NumeroEdital:          "04/2026",
				Titulo:                "T",
				UnidadeDemandanteNome: "U",
				DataInicio:            "2026-02-01",
				DataFim:               "2026-11-30",
				ValorEmpenho:          "-5.00",
			})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Get", func() {
		It("should allow the creator and the audit office", func() {
			e := create()

			_, err := svc.Get(criador, e.ID)
			Expect(err).ToNot(HaveOccurred())

			_, err = svc.Get(auditor, e.ID)
			Expect(err).ToNot(HaveOccurred())
		})

		It("should deny another unit", func() {
			e := create()

			_, err := svc.Get(outraUD, e.ID)

			Expect(err).To(MatchError(internal.ErrAcessoNegado))
		})
	})

	Describe("Update", func() {
		It("should rewrite a draft's fields", func() {
			e := create()

			updated, err := svc.Update(criador, e.ID, edital.UpdateEditalDTO{
				Titulo:                "Título revisado",
				UnidadeDemandanteNome: "PROPEG",
				DataInicio:            "2026-03-01",
				DataFim:               "2026-12-15",
				ValorEmpenho:          "2500.00",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Titulo).To(Equal("Título revisado"))
			Expect(updated.ValorEmpenho.StringFixed(2)).To(Equal("2500.00"))
		})

		It("should refuse once the call left draft", func() {
			e := create()
			_, err := svc.EnviarParaHomologacao(criador, e.ID)
			Expect(err).ToNot(HaveOccurred())

			_, err = svc.Update(criador, e.ID, edital.UpdateEditalDTO{
				Titulo:                "T",
				UnidadeDemandanteNome: "U",
				DataInicio:            "2026-03-01",
				DataFim:               "2026-12-15",
				ValorEmpenho:          "2500.00",
			})

			Expect(err).To(MatchError(internal.ErrTransicaoInvalida))
		})
	})

	Describe("EnviarParaHomologacao", func() {
		It("should move a draft to awaiting homologation", func() {
			e := create()

			sent, err := svc.EnviarParaHomologacao(criador, e.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(sent.Status).To(Equal(editalDatamodel.StatusAguardandoHomologacao))
		})

		It("should deny a non-creator", func() {
			e := create()

			_, err := svc.EnviarParaHomologacao(outraUD, e.ID)

			Expect(err).To(MatchError(internal.ErrAcessoNegado))
		})

		It("should refuse a second submission", func() {
			e := create()
			_, err := svc.EnviarParaHomologacao(criador, e.ID)
			Expect(err).ToNot(HaveOccurred())

			_, err = svc.EnviarParaHomologacao(criador, e.ID)

			Expect(err).To(MatchError(internal.ErrTransicaoInvalida))
		})
	})

	Describe("Homologar", func() {
		It("should approve a submitted call and record the evaluator", func() {
			e := create()
			_, err := svc.EnviarParaHomologacao(criador, e.ID)
			Expect(err).ToNot(HaveOccurred())

			approved, err := svc.Homologar(auditor, e.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(approved.Status).To(Equal(editalDatamodel.StatusHomologado))
			Expect(approved.HomologadoPorID).ToNot(BeNil())
			Expect(*approved.HomologadoPorID).To(Equal(auditor.ID))
		})

		It("should publish the homologation event", func() {
			e := create()
			_, err := svc.EnviarParaHomologacao(criador, e.ID)
			Expect(err).ToNot(HaveOccurred())

			_, err = svc.Homologar(auditor, e.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(bus.published).To(HaveLen(1))
			Expect(bus.published[0].EventType()).To(Equal(events.EventTypeEditalHomologado))
		})

		It("should deny the creator", func() {
			e := create()
			_, err := svc.EnviarParaHomologacao(criador, e.ID)
			Expect(err).ToNot(HaveOccurred())

			_, err = svc.Homologar(criador, e.ID)

			Expect(err).To(MatchError(internal.ErrAcessoNegado))
		})

		It("should refuse a draft", func() {
			e := create()

			_, err := svc.Homologar(auditor, e.ID)

			Expect(err).To(MatchError(internal.ErrTransicaoInvalida))
		})
	})

	Describe("Recusar", func() {
		It("should record the justification and notify the creator", func() {
			e := create()
			_, err := svc.EnviarParaHomologacao(criador, e.ID)
			Expect(err).ToNot(HaveOccurred())

			refused, err := svc.Recusar(auditor, e.ID, edital.RecusarEditalDTO{
				Justificativa: "Dotação orçamentária insuficiente",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(refused.Status).To(Equal(editalDatamodel.StatusRecusado))
			Expect(refused.JustificativaRecusa).To(Equal("Dotação orçamentária insuficiente"))
			Expect(bus.published).To(HaveLen(1))
			Expect(bus.published[0].EventType()).To(Equal(events.EventTypeEditalRecusado))
		})

		It("should require a justification", func() {
			e := create()
			_, err := svc.EnviarParaHomologacao(criador, e.ID)
			Expect(err).ToNot(HaveOccurred())

			_, err = svc.Recusar(auditor, e.ID, edital.RecusarEditalDTO{})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ListParaAvaliacao", func() {
		It("should return only calls awaiting homologation", func() {
			create()
			e2, err := svc.Create(criador, edital.CreateEditalDTO{
				NumeroEdital:          "05/2026",
				Titulo:                "Outro curso",
				UnidadeDemandanteNome: "PROPEG",
				DataInicio:            "2026-02-01",
				DataFim:               "2026-11-30",
				ValorEmpenho:          "500.00",
			})
			Expect(err).ToNot(HaveOccurred())
			_, err = svc.EnviarParaHomologacao(criador, e2.ID)
			Expect(err).ToNot(HaveOccurred())

			pendentes, err := svc.ListParaAvaliacao(auditor, edital.ListEditaisQuery{Limit: 20})

			Expect(err).ToNot(HaveOccurred())
			Expect(pendentes).To(HaveLen(1))
			Expect(pendentes[0].ID).To(Equal(e2.ID))
		})

		It("should deny non-auditors", func() {
			_, err := svc.ListParaAvaliacao(criador, edital.ListEditaisQuery{Limit: 20})

			Expect(err).To(MatchError(internal.ErrAcessoNegado))
		})
	})
})
