package ast

// PrintingPolicy controls how entities are rendered. It is read-only for
// printers.
type PrintingPolicy struct {
	// FullyQualifiedName prints declarations with their enclosing scopes.
	FullyQualifiedName bool `json:"fullyQualifiedName"`
	// SuppressScope drops enclosing scopes even when FullyQualifiedName is
	// set.
	SuppressScope bool `json:"suppressScope"`
}

// DeclName renders d under the policy.
func (p PrintingPolicy) DeclName(d NamedDecl) string {
	if p.FullyQualifiedName && !p.SuppressScope {
		return QualifiedName(d)
	}
	return d.Name()
}
