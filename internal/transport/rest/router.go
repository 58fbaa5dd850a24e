package rest

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi"

	"github.com/Jesus-jpg1/GECC-System/internal/atividade"
	"github.com/Jesus-jpg1/GECC-System/internal/auth"
	"github.com/Jesus-jpg1/GECC-System/internal/edital"
	"github.com/Jesus-jpg1/GECC-System/internal/lancamento"
	"github.com/Jesus-jpg1/GECC-System/internal/notificacao"
	"github.com/Jesus-jpg1/GECC-System/internal/servidor"
	"github.com/Jesus-jpg1/GECC-System/internal/transport/middleware"
)

// RegisterAllRoutes builds the full route tree. Role groups only pre-filter:
// every service still re-checks its own gate before touching state.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	servidorHandler *servidor.Handler,
	editalHandler *edital.Handler,
	atividadeHandler *atividade.Handler,
	lancamentoHandler *lancamento.Handler,
	notificacaoHandler *notificacao.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
			sr.Post("/logout", authHandler.Logout)
		})

		// Public signup; the profile stays locked until homologated.
		r.Post("/servidores", servidorHandler.Register)

		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Get("/users/me", servidorHandler.Me)

			pr.Route("/notificacoes", func(nr chi.Router) {
				nr.Get("/", notificacaoHandler.NaoLidas)
				nr.Post("/marcar-lidas", notificacaoHandler.MarcarTodasLidas)
			})

			// Catalog reads are open to every role; writes belong to the
			// audit office.
			pr.Route("/tipos-atividade", func(tr chi.Router) {
				tr.Get("/", atividadeHandler.ListTipos)
				tr.Get("/{id}", atividadeHandler.GetTipo)

				tr.Group(func(ar chi.Router) {
					ar.Use(authHandler.RequireFuncao(auth.FuncaoProdgepPropeg))
					ar.Post("/", atividadeHandler.CreateTipo)
					ar.Delete("/{id}", atividadeHandler.DeleteTipo)
				})
			})

			pr.Route("/servidores", func(sr chi.Router) {
				sr.Group(func(ur chi.Router) {
					ur.Use(authHandler.RequireFuncao(auth.FuncaoUnidadeDemandante))
					ur.Get("/", servidorHandler.ListServidores)
				})

				sr.Group(func(ar chi.Router) {
					ar.Use(authHandler.RequireFuncao(auth.FuncaoProdgepPropeg))
					ar.Get("/pendentes", servidorHandler.ListPendentes)
					ar.Patch("/{id}/homologar", servidorHandler.Homologar)
					ar.Patch("/{id}/recusar", servidorHandler.Recusar)
				})
			})

			pr.Route("/editais", func(er chi.Router) {
				er.Get("/{id}", editalHandler.Get)
				er.Get("/{id}/atividades", atividadeHandler.ListPorEdital)
				er.Get("/{editalID}/saldo", lancamentoHandler.Saldo)

				er.Group(func(ur chi.Router) {
					ur.Use(authHandler.RequireFuncao(auth.FuncaoUnidadeDemandante))
					ur.Post("/", editalHandler.Create)
					ur.Get("/", editalHandler.ListMine)
					ur.Put("/{id}", editalHandler.Update)
					ur.Delete("/{id}", editalHandler.Delete)
					ur.Post("/{id}/enviar-homologacao", editalHandler.EnviarParaHomologacao)
				})

				er.Group(func(ar chi.Router) {
					ar.Use(authHandler.RequireFuncao(auth.FuncaoProdgepPropeg))
					ar.Get("/avaliacao", editalHandler.ListParaAvaliacao)
					ar.Get("/todos", editalHandler.ListTodos)
					ar.Patch("/{id}/homologar", editalHandler.Homologar)
					ar.Patch("/{id}/recusar", editalHandler.Recusar)
				})
			})

			pr.Route("/atividades", func(atr chi.Router) {
				atr.Get("/{id}", atividadeHandler.GetAtividade)
				atr.Get("/{id}/alocados", atividadeHandler.ListAlocados)

				atr.Group(func(ur chi.Router) {
					ur.Use(authHandler.RequireFuncao(auth.FuncaoUnidadeDemandante))
					ur.Post("/", atividadeHandler.CreateAtividade)
					ur.Put("/{id}", atividadeHandler.UpdateAtividade)
					ur.Delete("/{id}", atividadeHandler.DeleteAtividade)
					ur.Post("/{id}/alocar", atividadeHandler.AlocarServidores)
				})
			})

			pr.Route("/lancamentos", func(lr chi.Router) {
				lr.Get("/{id}", lancamentoHandler.Get)

				lr.Group(func(sr chi.Router) {
					sr.Use(authHandler.RequireFuncao(auth.FuncaoServidor))
					sr.Post("/", lancamentoHandler.Create)
					sr.Get("/meus", lancamentoHandler.MeusLancamentos)
				})

				lr.Group(func(ur chi.Router) {
					ur.Use(authHandler.RequireFuncao(auth.FuncaoUnidadeDemandante))
					ur.Get("/pendentes", lancamentoHandler.PendentesParaAvaliacao)
					ur.Patch("/{id}/aprovar", lancamentoHandler.Aprovar)
					ur.Patch("/{id}/recusar", lancamentoHandler.Recusar)
				})

				lr.Group(func(ar chi.Router) {
					ar.Use(authHandler.RequireFuncao(auth.FuncaoProdgepPropeg))
					ar.Get("/auditoria", lancamentoHandler.Auditoria)
					ar.Patch("/{id}/homologar", lancamentoHandler.Homologar)
					ar.Patch("/{id}/reverter", lancamentoHandler.Reverter)
				})
			})
		})
	})
}
