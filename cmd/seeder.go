package cmd

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			clearTables(db)
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		demandanteID := seedUser(db, string(hash), "demandante@ufac.br", "Ana Demandante", "Unidade Demandante", "PROPEG")
		servidorID := seedUser(db, string(hash), "servidor@ufac.br", "Carlos Servidor", "Servidor", "Centro de Educação")
		seedUser(db, string(hash), "prodgep@ufac.br", "Paula Auditora", "PRODGEP/PROPEG", "PRODGEP")

		editalID := seedEdital(db, demandanteID)
		atividadeID := seedAtividade(db, editalID)
		seedAlocacao(db, atividadeID, servidorID)

		fmt.Println("Seed complete. All users share the password:", password)
	},
}

func clearTables(db *sqlx.DB) {
	tables := []string{
		"notificacoes",
		"lancamentos_horas",
		"atividade_servidores",
		"atividades",
		"editais",
		"servidor_profiles",
		"users",
	}
	for _, table := range tables {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			log.Fatalf("failed to clear %s: %v", table, err)
		}
	}
	fmt.Println("Cleared existing data")
}

func seedUser(db *sqlx.DB, hash, email, nome, funcao, setor string) int64 {
	var id int64
	if err := db.QueryRow("SELECT id FROM users WHERE email = $1", email).Scan(&id); err == nil {
		fmt.Println("user already exists:", email)
		return id
	}

	err := db.QueryRow(
		`INSERT INTO users (email, nome, password_hash, is_superuser, created_at, updated_at)
		 VALUES ($1, $2, $3, false, now(), now()) RETURNING id`,
		email, nome, hash,
	).Scan(&id)
	if err != nil {
		log.Fatalf("failed to insert user %s: %v", email, err)
	}

	_, err = db.Exec(
		`INSERT INTO servidor_profiles (user_id, setor, funcao, status, limite_horas_anual, horas_utilizadas, created_at, updated_at)
		 VALUES ($1, $2, $3, 'Homologado', 120, 0, now(), now())`,
		id, setor, funcao,
	)
	if err != nil {
		log.Fatalf("failed to insert profile for %s: %v", email, err)
	}

	fmt.Println("Seeded user:", email, "("+funcao+")")
	return id
}

func seedEdital(db *sqlx.DB, criadoPorID int64) int64 {
	var id int64
	if err := db.QueryRow("SELECT id FROM editais WHERE numero_edital = '01/2026'").Scan(&id); err == nil {
		fmt.Println("edital 01/2026 already exists")
		return id
	}

	err := db.QueryRow(
		`INSERT INTO editais (numero_edital, titulo, descricao, unidade_demandante_nome, data_inicio, data_fim, status, valor_empenho, criado_por_id, created_at, updated_at)
		 VALUES ('01/2026', 'Curso de Formação Continuada', 'Edital de exemplo', 'PROPEG', '2026-02-01', '2026-11-30', 'Homologado', 1000.00, $1, now(), now()) RETURNING id`,
		criadoPorID,
	).Scan(&id)
	if err != nil {
		log.Fatalf("failed to insert edital: %v", err)
	}

	fmt.Println("Seeded edital 01/2026")
	return id
}

func seedAtividade(db *sqlx.DB, editalID int64) int64 {
	var tipoID int64
	if err := db.QueryRow("SELECT id FROM tipos_atividade ORDER BY id LIMIT 1").Scan(&tipoID); err != nil {
		log.Fatalf("catalog is empty, run migrations first: %v", err)
	}

	var id int64
	if err := db.QueryRow("SELECT id FROM atividades WHERE edital_id = $1 LIMIT 1", editalID).Scan(&id); err == nil {
		return id
	}

	err := db.QueryRow(
		`INSERT INTO atividades (tipo_id, edital_id, descricao, created_at, updated_at)
		 VALUES ($1, $2, 'Aulas do módulo introdutório', now(), now()) RETURNING id`,
		tipoID, editalID,
	).Scan(&id)
	if err != nil {
		log.Fatalf("failed to insert atividade: %v", err)
	}

	fmt.Println("Seeded atividade for edital 01/2026")
	return id
}

func seedAlocacao(db *sqlx.DB, atividadeID, servidorID int64) {
	var exists int
	if err := db.QueryRow(
		"SELECT 1 FROM atividade_servidores WHERE atividade_id = $1 AND servidor_id = $2",
		atividadeID, servidorID,
	).Scan(&exists); err == nil {
		return
	}

	_, err := db.Exec(
		`INSERT INTO atividade_servidores (atividade_id, servidor_id, created_at)
		 VALUES ($1, $2, now())`,
		atividadeID, servidorID,
	)
	if err != nil {
		log.Fatalf("failed to allocate servidor: %v", err)
	}

	fmt.Println("Allocated servidor to the sample atividade")
}
