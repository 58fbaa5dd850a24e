package lancamento

import (
	"github.com/shopspring/decimal"

	"github.com/Jesus-jpg1/GECC-System/internal"
	lancamentoDatamodel "github.com/Jesus-jpg1/GECC-System/internal/core/datamodel/lancamento"
)

// StatusForaDoLedger lists the states whose hours release their cost back to
// the call's budget. A refused or reverted log no longer commits money.
var StatusForaDoLedger = []string{
	lancamentoDatamodel.StatusRecusado,
	lancamentoDatamodel.StatusRevertido,
}

// Custo prices an hour log: hours times the catalog rate, in currency.
func Custo(horas, valorHora decimal.Decimal) decimal.Decimal {
	return horas.Mul(valorHora).Round(2)
}

// SaldoRestante is the budget left after every committed log.
func SaldoRestante(valorEmpenho, comprometido decimal.Decimal) decimal.Decimal {
	return valorEmpenho.Sub(comprometido)
}

// ValidarNovoLancamento accepts a new log only while its cost fits the
// remaining budget. The caller must hold the edital lock so the comparison
// stays true through the insert.
func ValidarNovoLancamento(valorEmpenho, comprometido, custo decimal.Decimal) error {
	saldo := SaldoRestante(valorEmpenho, comprometido)
	if custo.GreaterThan(saldo) {
		return internal.NewSaldoExcedidoError(custo, saldo)
	}
	return nil
}
