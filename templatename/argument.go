package templatename

// ArgumentKind classifies a template argument that names templates.
type ArgumentKind int

const (
	NullArgument ArgumentKind = iota
	TemplateArgument
	PackArgumentKind
)

// Argument is a template template argument or a pack of them.
type Argument struct {
	Kind ArgumentKind
	Name Name
	Pack []Argument
}

// TemplateArg returns an argument naming a template.
func TemplateArg(n Name) Argument {
	return Argument{Kind: TemplateArgument, Name: n}
}

// PackArgument returns a pack of arguments. The slice is copied.
func PackArgument(args []Argument) Argument {
	return Argument{Kind: PackArgumentKind, Pack: append([]Argument(nil), args...)}
}

// Profile mixes the argument into p. Template names are profiled through
// their canonical form in ctx.
func (a Argument) Profile(p *Profiler, ctx *Context) {
	p.AddUint64(uint64(a.Kind))
	switch a.Kind {
	case TemplateArgument:
		p.AddUint64(ctx.CanonicalName(a.Name).OpaqueID())
	case PackArgumentKind:
		p.AddUint64(uint64(len(a.Pack)))
		for _, e := range a.Pack {
			e.Profile(p, ctx)
		}
	}
}
