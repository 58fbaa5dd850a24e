package notificacao

import (
	"log/slog"
	"time"

	notificacaoDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/notificacao"
)

type RepositoryAPI interface {
	Create(n *notificacaoDatamodel.Notificacao) error
	ListNaoLidas(usuarioID int64, limit int) ([]*notificacaoDatamodel.Notificacao, error)
	CountNaoLidas(usuarioID int64) (int64, error)
	MarcarTodasLidas(usuarioID int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Notificar records a message for one user. Failures are logged and
// swallowed so a broken inbox never blocks the workflow that produced it.
func (s *Service) Notificar(usuarioID int64, mensagem, link string) {
	n := &notificacaoDatamodel.Notificacao{
		UsuarioID: usuarioID,
		Mensagem:  mensagem,
		Link:      link,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(n); err != nil {
		s.logger.Error("failed to create notificação",
			"error", err,
			"usuario_id", usuarioID)
		return
	}
	s.logger.Info("notificação created", "usuario_id", usuarioID)
}

func (s *Service) NaoLidas(usuarioID int64, limit int) ([]*notificacaoDatamodel.Notificacao, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListNaoLidas(usuarioID, limit)
}

func (s *Service) CountNaoLidas(usuarioID int64) (int64, error) {
	return s.repo.CountNaoLidas(usuarioID)
}

func (s *Service) MarcarTodasLidas(usuarioID int64) error {
	return s.repo.MarcarTodasLidas(usuarioID)
}
