package notificacao_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	notificacaoDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/notificacao"
	"github.com/Jesus-jpg1/GECC-System/internal/core/events"
	"github.com/Jesus-jpg1/GECC-System/internal/notificacao"
)

func TestNotificacao(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notificacao Suite")
}

// Mock repository for testing
type mockNotificacaoRepository struct {
	notificacoes []*notificacaoDatamodel.Notificacao
}

func (m *mockNotificacaoRepository) Create(n *notificacaoDatamodel.Notificacao) error {
	n.ID = int64(len(m.notificacoes) + 1)
	m.notificacoes = append(m.notificacoes, n)
	return nil
}

func (m *mockNotificacaoRepository) ListNaoLidas(usuarioID int64, limit int) ([]*notificacaoDatamodel.Notificacao, error) {
	result := make([]*notificacaoDatamodel.Notificacao, 0)
	for _, n := range m.notificacoes {
		if n.UsuarioID == usuarioID && !n.Lida {
			result = append(result, n)
		}
	}
	return result, nil
}

func (m *mockNotificacaoRepository) CountNaoLidas(usuarioID int64) (int64, error) {
	rows, _ := m.ListNaoLidas(usuarioID, 0)
	return int64(len(rows)), nil
}

func (m *mockNotificacaoRepository) MarcarTodasLidas(usuarioID int64) error {
	for _, n := range m.notificacoes {
		if n.UsuarioID == usuarioID {
			n.Lida = true
		}
	}
	return nil
}

var _ = Describe("NotificacaoEventHandler", func() {
	var (
		mockRepo *mockNotificacaoRepository
		svc      *notificacao.Service
		handler  *notificacao.EventHandler
		bus      *events.EventBus
	)

	BeforeEach(func() {
		mockRepo = &mockNotificacaoRepository{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = notificacao.NewService(mockRepo, logger)
		handler = notificacao.NewEventHandler(svc, logger)
		bus = events.NewEventBus(logger)
		handler.RegisterHandlers(bus)
	})

	It("should message the servidor when hours are approved", func() {
		event := events.NewLancamentoAprovadoEvent(7, 42,
			decimal.RequireFromString("2.5"), "Instrutoria em curso de formação")

		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		Expect(mockRepo.notificacoes).To(HaveLen(1))
		n := mockRepo.notificacoes[0]
		Expect(n.UsuarioID).To(Equal(int64(42)))
		Expect(n.Mensagem).To(Equal(`Suas 02:30 horas na atividade "Instrutoria em curso de formação" foram APROVADAS.`))
		Expect(n.Link).To(Equal("/lancamentos/7"))
	})

	It("should message the servidor when hours are refused", func() {
		event := events.NewLancamentoRecusadoEvent(8, 42,
			decimal.RequireFromString("1.33"), "Tutoria")

		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		Expect(mockRepo.notificacoes).To(HaveLen(1))
		Expect(mockRepo.notificacoes[0].Mensagem).To(ContainSubstring("foram RECUSADAS."))
	})

	It("should message the creator when a call is homologated", func() {
		event := events.NewEditalHomologadoEvent(3, "01/2026", 9)

		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		Expect(mockRepo.notificacoes).To(HaveLen(1))
		n := mockRepo.notificacoes[0]
		Expect(n.UsuarioID).To(Equal(int64(9)))
		Expect(n.Mensagem).To(Equal(`Seu edital "01/2026" foi HOMOLOGADO.`))
		Expect(n.Link).To(Equal("/editais/3"))
	})

	It("should message the creator when a call is refused", func() {
		event := events.NewEditalRecusadoEvent(3, "01/2026", 9)

		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		Expect(mockRepo.notificacoes).To(HaveLen(1))
		Expect(mockRepo.notificacoes[0].Mensagem).To(Equal(`Seu edital "01/2026" foi RECUSADO.`))
	})

	Describe("inbox", func() {
		It("should count and clear unread messages", func() {
			svc.Notificar(5, "a", "")
			svc.Notificar(5, "b", "")
			svc.Notificar(6, "c", "")

			count, err := svc.CountNaoLidas(5)
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(Equal(int64(2)))

			Expect(svc.MarcarTodasLidas(5)).To(Succeed())

			count, err = svc.CountNaoLidas(5)
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(BeZero())
		})
	})
})
