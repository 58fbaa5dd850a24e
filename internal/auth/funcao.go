package auth

import "github.com/Jesus-jpg1/GECC-System/internal"

// Funcao is the closed set of roles an actor can hold. Role strings coming
// from storage go through ParseFuncao so an unrecognized value is an error
// instead of silently falling through permission checks.
type Funcao string

const (
	FuncaoUnidadeDemandante Funcao = "Unidade Demandante"
	FuncaoServidor          Funcao = "Servidor"
	FuncaoProdgepPropeg     Funcao = "PRODGEP/PROPEG"
)

func ParseFuncao(valor string) (Funcao, error) {
	switch Funcao(valor) {
	case FuncaoUnidadeDemandante:
		return FuncaoUnidadeDemandante, nil
	case FuncaoServidor:
		return FuncaoServidor, nil
	case FuncaoProdgepPropeg:
		return FuncaoProdgepPropeg, nil
	default:
		return "", internal.NewValidationError("função desconhecida: "+valor, internal.ErrCodeFuncaoDesconhecida)
	}
}

func (f Funcao) String() string {
	return string(f)
}
