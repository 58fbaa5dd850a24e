package auth

// Authorization gate: each protected workflow operation calls one of these
// pure functions with the acting user before touching any state. A false
// result means the operation is denied without mutation.

// CanCriarEdital: only the requesting unit opens calls.
func CanCriarEdital(actor *User) bool {
	return actor != nil && actor.Funcao == FuncaoUnidadeDemandante
}

// CanGerenciarEdital: field edits, activities and allocations belong to the
// creator of record.
func CanGerenciarEdital(actor *User, criadoPorID int64) bool {
	return actor != nil && actor.ID == criadoPorID
}

// CanVerEdital: detail reads are restricted to the creator or the central
// audit office.
func CanVerEdital(actor *User, criadoPorID int64) bool {
	if actor == nil {
		return false
	}
	return actor.ID == criadoPorID || actor.Funcao == FuncaoProdgepPropeg
}

// CanAvaliarEdital: homologation and refusal of a call are audit-office acts.
func CanAvaliarEdital(actor *User) bool {
	return actor != nil && actor.Funcao == FuncaoProdgepPropeg
}

// CanLancarHoras: only staff submit hour logs. Allocation membership is
// checked separately against the registry.
func CanLancarHoras(actor *User) bool {
	return actor != nil && actor.Funcao == FuncaoServidor
}

// CanAvaliarLancamento: approving or refusing an hour log belongs to the
// creator of its edital.
func CanAvaliarLancamento(actor *User, editalCriadoPorID int64) bool {
	return actor != nil && actor.ID == editalCriadoPorID
}

// CanAuditarLancamento: homologation and reversal of hour logs are
// audit-office acts.
func CanAuditarLancamento(actor *User) bool {
	return actor != nil && actor.Funcao == FuncaoProdgepPropeg
}

// CanGerenciarCatalogo: the activity rate catalog is audit-office reference
// data.
func CanGerenciarCatalogo(actor *User) bool {
	return actor != nil && actor.Funcao == FuncaoProdgepPropeg
}

// CanHomologarServidor: staff profile homologation is an audit-office act.
func CanHomologarServidor(actor *User) bool {
	return actor != nil && actor.Funcao == FuncaoProdgepPropeg
}
