package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	servidorDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/servidor"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock UserRepository for testing
type mockUserRepository struct {
	passwords     map[string]string // email -> password hash
	userIDs       map[string]int64  // email -> userID
	usersByID     map[int64]*User   // userID -> resolved user with role
	statusByID    map[int64]string  // userID -> profile homologation status
	returnError   bool
	errorToReturn error
}

func newMockUserRepository() *mockUserRepository {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)

	return &mockUserRepository{
		passwords: map[string]string{
			"demandante@ufac.br": string(hashedPassword),
			"servidor@ufac.br":   string(hashedPassword),
			"prodgep@ufac.br":    string(hashedPassword),
			"pendente@ufac.br":   string(hashedPassword),
			"admin@ufac.br":      string(hashedPassword),
		},
		userIDs: map[string]int64{
			"demandante@ufac.br": 1,
			"servidor@ufac.br":   2,
			"prodgep@ufac.br":    3,
			"pendente@ufac.br":   4,
			"admin@ufac.br":      5,
		},
		usersByID: map[int64]*User{
			1: {ID: 1, Email: "demandante@ufac.br", Funcao: FuncaoUnidadeDemandante},
			2: {ID: 2, Email: "servidor@ufac.br", Funcao: FuncaoServidor},
			3: {ID: 3, Email: "prodgep@ufac.br", Funcao: FuncaoProdgepPropeg},
			4: {ID: 4, Email: "pendente@ufac.br", Funcao: FuncaoServidor},
			5: {ID: 5, Email: "admin@ufac.br", Funcao: FuncaoProdgepPropeg, IsSuperuser: true},
		},
		statusByID: map[int64]string{
			1: servidorDatamodel.StatusHomologado,
			2: servidorDatamodel.StatusHomologado,
			3: servidorDatamodel.StatusHomologado,
			4: servidorDatamodel.StatusAguardandoHomologacao,
			5: servidorDatamodel.StatusAguardandoHomologacao,
		},
	}
}

func (m *mockUserRepository) GetPasswordForEmail(email string) (string, int64, error) {
	if m.returnError {
		return "", 0, m.errorToReturn
	}

	if hash, exists := m.passwords[email]; exists {
		if userID, ok := m.userIDs[email]; ok {
			return hash, userID, nil
		}
	}
	return "", 0, errors.New("user not found")
}

func (m *mockUserRepository) GetUserWithPerfil(userID int64) (*User, string, error) {
	if m.returnError {
		return nil, "", m.errorToReturn
	}

	if user, exists := m.usersByID[userID]; exists {
		return user, m.statusByID[userID], nil
	}
	return nil, "", errors.New("user not found")
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service       *Service
		mockRepo      *mockUserRepository
		tokenGen      *JWTTokenGenerator
		accessSecret  string        = "test-access-secret"
		refreshSecret string        = "test-refresh-secret"
		accessTTL     time.Duration = 15 * time.Minute
		refreshTTL    time.Duration = 24 * time.Hour
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen = NewJWTTokenGenerator(accessSecret, refreshSecret, accessTTL, refreshTTL)
		service = NewService(mockRepo, tokenGen)
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return access and refresh tokens", func() {
				dto := LoginDTO{
					Email:    "demandante@ufac.br",
					Password: "correct_password",
				}

				tokens, err := service.Authenticate(dto)

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.RefreshToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.Equal(tokens.RefreshToken))
			})

			ginkgo.It("should generate valid JWT tokens", func() {
				dto := LoginDTO{
					Email:    "prodgep@ufac.br",
					Password: "correct_password",
				}

				tokens, err := service.Authenticate(dto)

				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := service.ValidateAccessToken(tokens.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.UserID).To(gomega.Equal("3"))
				gomega.Expect(claims.Email).To(gomega.Equal("prodgep@ufac.br"))
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("should return error for unknown email", func() {
				dto := LoginDTO{
					Email:    "nonexistent@ufac.br",
					Password: "any_password",
				}

				tokens, err := service.Authenticate(dto)

				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
				gomega.Expect(tokens.AccessToken).To(gomega.BeEmpty())
				gomega.Expect(tokens.RefreshToken).To(gomega.BeEmpty())
			})

			ginkgo.It("should return error for wrong password", func() {
				dto := LoginDTO{
					Email:    "servidor@ufac.br",
					Password: "wrong_password",
				}

				_, err := service.Authenticate(dto)

				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
			})

			ginkgo.It("should return validation error for empty fields", func() {
				_, err := service.Authenticate(LoginDTO{})

				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err).ToNot(gomega.Equal(ErrInvalidCredentials))
			})
		})

		ginkgo.Context("when the profile is not homologated", func() {
			ginkgo.It("should refuse login even with a correct password", func() {
				dto := LoginDTO{
					Email:    "pendente@ufac.br",
					Password: "correct_password",
				}

				_, err := service.Authenticate(dto)

				gomega.Expect(err).To(gomega.Equal(ErrPerfilNaoHomologado))
			})

			ginkgo.It("should let a superuser in regardless of profile status", func() {
				dto := LoginDTO{
					Email:    "admin@ufac.br",
					Password: "correct_password",
				}

				tokens, err := service.Authenticate(dto)

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())
			})
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		ginkgo.It("should issue a fresh pair from a valid refresh token", func() {
			tokens, err := service.Authenticate(LoginDTO{
				Email:    "servidor@ufac.br",
				Password: "correct_password",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			renewed, err := service.RefreshTokens(tokens.RefreshToken)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(renewed.AccessToken).ToNot(gomega.BeEmpty())
			gomega.Expect(renewed.RefreshToken).ToNot(gomega.BeEmpty())

			claims, err := service.ValidateAccessToken(renewed.AccessToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal("2"))
		})

		ginkgo.It("should reject garbage tokens", func() {
			_, err := service.RefreshTokens("not.a.jwt")

			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})
	})

	ginkgo.Describe("ValidateAccessToken", func() {
		ginkgo.It("should reject an expired token", func() {
			expiredGen := NewJWTTokenGenerator(accessSecret, refreshSecret, -time.Minute, refreshTTL)
			token, err := expiredGen.GenerateAccessToken("1", "demandante@ufac.br")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.ValidateAccessToken(token)

			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should reject a token signed with another secret", func() {
			otherGen := NewJWTTokenGenerator("other-secret", "other-refresh", accessTTL, refreshTTL)
			token, err := otherGen.GenerateAccessToken("1", "demandante@ufac.br")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.ValidateAccessToken(token)

			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})
	})
})

var _ = ginkgo.Describe("ParseFuncao", func() {
	ginkgo.It("should accept the three known roles", func() {
		for _, valor := range []string{"Unidade Demandante", "Servidor", "PRODGEP/PROPEG"} {
			funcao, err := ParseFuncao(valor)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(funcao.String()).To(gomega.Equal(valor))
		}
	})

	ginkgo.It("should reject anything else", func() {
		_, err := ParseFuncao("Reitor")
		gomega.Expect(err).To(gomega.HaveOccurred())
	})
})

var _ = ginkgo.Describe("Authorization gates", func() {
	demandante := &User{ID: 1, Funcao: FuncaoUnidadeDemandante}
	servidor := &User{ID: 2, Funcao: FuncaoServidor}
	auditor := &User{ID: 3, Funcao: FuncaoProdgepPropeg}

	ginkgo.It("should let only the demanding unit open calls", func() {
		gomega.Expect(CanCriarEdital(demandante)).To(gomega.BeTrue())
		gomega.Expect(CanCriarEdital(servidor)).To(gomega.BeFalse())
		gomega.Expect(CanCriarEdital(auditor)).To(gomega.BeFalse())
		gomega.Expect(CanCriarEdital(nil)).To(gomega.BeFalse())
	})

	ginkgo.It("should restrict call management to the creator of record", func() {
		gomega.Expect(CanGerenciarEdital(demandante, 1)).To(gomega.BeTrue())
		gomega.Expect(CanGerenciarEdital(auditor, 1)).To(gomega.BeFalse())
	})

	ginkgo.It("should open call reads to the creator and the audit office", func() {
		gomega.Expect(CanVerEdital(demandante, 1)).To(gomega.BeTrue())
		gomega.Expect(CanVerEdital(auditor, 1)).To(gomega.BeTrue())
		gomega.Expect(CanVerEdital(servidor, 1)).To(gomega.BeFalse())
	})

	ginkgo.It("should reserve audit acts for the audit office", func() {
		gomega.Expect(CanAvaliarEdital(auditor)).To(gomega.BeTrue())
		gomega.Expect(CanAvaliarEdital(demandante)).To(gomega.BeFalse())
		gomega.Expect(CanAuditarLancamento(auditor)).To(gomega.BeTrue())
		gomega.Expect(CanAuditarLancamento(servidor)).To(gomega.BeFalse())
		gomega.Expect(CanHomologarServidor(auditor)).To(gomega.BeTrue())
		gomega.Expect(CanGerenciarCatalogo(auditor)).To(gomega.BeTrue())
		gomega.Expect(CanGerenciarCatalogo(demandante)).To(gomega.BeFalse())
	})

	ginkgo.It("should let only staff log hours", func() {
		gomega.Expect(CanLancarHoras(servidor)).To(gomega.BeTrue())
		gomega.Expect(CanLancarHoras(demandante)).To(gomega.BeFalse())
	})

	ginkgo.It("should route hour-log evaluation to the edital creator", func() {
		gomega.Expect(CanAvaliarLancamento(demandante, 1)).To(gomega.BeTrue())
		gomega.Expect(CanAvaliarLancamento(auditor, 1)).To(gomega.BeFalse())
	})
})
