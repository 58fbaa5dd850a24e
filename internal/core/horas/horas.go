package horas

import (
	"strconv"
	"strings"

	"github.com/Jesus-jpg1/GECC-System/internal"
	"github.com/shopspring/decimal"
)

const formatoEsperado = "o campo horas deve estar no formato HH:MM (ex: 02:30)"

var sessenta = decimal.NewFromInt(60)

// Parse converts a human-entered "HH:MM" value into decimal hours rounded to
// two places. Hours accept any non-negative integer, minutes must be two
// digits between 00 and 59. Anything else is a format error telling the
// caller to use HH:MM.
func Parse(valor string) (decimal.Decimal, error) {
	valor = strings.TrimSpace(valor)

	hh, mm, found := strings.Cut(valor, ":")
	if !found {
		return decimal.Zero, internal.NewValidationError(formatoEsperado, internal.ErrCodeInvalidHorasFormat)
	}

	// ParseUint rejects signs, so "-1:30" fails here rather than slipping
	// through as a negative quantity.
	horasInt, err := strconv.ParseUint(hh, 10, 32)
	if err != nil {
		return decimal.Zero, internal.NewValidationError(formatoEsperado, internal.ErrCodeInvalidHorasFormat)
	}

	if len(mm) != 2 {
		return decimal.Zero, internal.NewValidationError(formatoEsperado, internal.ErrCodeInvalidHorasFormat)
	}
	minutosInt, err := strconv.ParseUint(mm, 10, 32)
	if err != nil || minutosInt > 59 {
		return decimal.Zero, internal.NewValidationError(formatoEsperado, internal.ErrCodeInvalidHorasFormat)
	}

	dec := decimal.NewFromInt(int64(horasInt)).
		Add(decimal.NewFromInt(int64(minutosInt)).Div(sessenta)).
		Round(2)
	return dec, nil
}

// Format renders decimal hours back as "HH:MM". Total minutes are rounded so
// that Parse followed by Format round-trips at minute granularity.
func Format(horas decimal.Decimal) string {
	totalMinutos := horas.Mul(sessenta).Round(0).IntPart()
	if totalMinutos < 0 {
		totalMinutos = 0
	}

	h := totalMinutos / 60
	m := totalMinutos % 60

	hh := strconv.FormatInt(h, 10)
	if len(hh) < 2 {
		hh = "0" + hh
	}
	mm := strconv.FormatInt(m, 10)
	if len(mm) < 2 {
		mm = "0" + mm
	}
	return hh + ":" + mm
}
