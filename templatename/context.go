package templatename

import (
	"github.com/broady/metacxx/ast"
)

// Context owns the storage of non-trivial names. Structurally equal names
// obtained from the same Context share storage, so they compare equal with
// ==. Storage is never removed.
//
// A Context is not safe for concurrent use.
type Context struct {
	ast      *ast.Context
	table    map[Key]Storage
	objects  map[any]ast.ID
	profiler *Profiler
	fresh    int
}

// NewContext returns an empty uniquing table allocating identities from c.
func NewContext(c *ast.Context) *Context {
	return &Context{
		ast:      c,
		table:    make(map[Key]Storage),
		objects:  make(map[any]ast.ID),
		profiler: NewProfiler(),
	}
}

// Len returns the number of uniqued storages.
func (c *Context) Len() int { return len(c.table) }

// Allocated returns the number of storages created, including the ones that
// are never uniqued.
func (c *Context) Allocated() int { return len(c.table) + c.fresh }

// objectID returns a stable identity for a node that carries none.
func (c *Context) objectID(x any) ast.ID {
	if id, ok := c.objects[x]; ok {
		return id
	}
	id := c.ast.NextID()
	c.objects[x] = id
	return id
}

func (c *Context) lookupOrInsert(key Key, build func(id ast.ID) Storage) Storage {
	if s, ok := c.table[key]; ok {
		return s
	}
	s := build(c.ast.NextID())
	c.table[key] = s
	return s
}

func (c *Context) profileQualifier(p *Profiler, q *ast.NestedNameSpecifier) {
	for s := q; s != nil; s = s.Prefix {
		p.AddUint64(uint64(s.Kind) + 1)
		switch s.Kind {
		case ast.NamespaceSpecifier:
			p.AddUint64(uint64(s.Namespace.ID()))
		case ast.TypeSpecifier:
			if t, ok := s.Type.(*ast.TagType); ok {
				p.AddUint64(uint64(t.Decl.ID()))
			} else {
				p.AddUint64(uint64(c.objectID(s.Type)))
			}
		case ast.IdentifierSpecifier:
			p.AddString(s.Identifier)
		case ast.SpliceSpecifier:
			p.AddUint64(uint64(c.objectID(s.Splice)))
		}
	}
	p.AddUint64(0)
}

// QualifiedTemplateName returns the name of d referenced through q.
func (c *Context) QualifiedTemplateName(q *ast.NestedNameSpecifier, templateKeyword bool, d *ast.TemplateDecl) Name {
	p := c.profiler
	p.AddUint64(uint64(QualifiedTemplate))
	c.profileQualifier(p, q)
	p.AddBool(templateKeyword)
	p.AddUint64(uint64(d.ID()))
	s := c.lookupOrInsert(p.Sum(), func(id ast.ID) Storage {
		return &QualifiedName{storageBase: storageBase{id}, qualifier: q, templateKeyword: templateKeyword, decl: d}
	})
	return FromStorage(s)
}

// DependentTemplateName returns "q::template identifier".
func (c *Context) DependentTemplateName(q *ast.NestedNameSpecifier, identifier string) Name {
	return c.dependent(q, identifier, ast.OONone)
}

// DependentOperatorTemplateName returns "q::template operator op".
func (c *Context) DependentOperatorTemplateName(q *ast.NestedNameSpecifier, op ast.OverloadedOperatorKind) Name {
	return c.dependent(q, "", op)
}

func (c *Context) dependent(q *ast.NestedNameSpecifier, identifier string, op ast.OverloadedOperatorKind) Name {
	p := c.profiler
	p.AddUint64(uint64(DependentTemplate))
	c.profileQualifier(p, q)
	p.AddString(identifier)
	p.AddUint64(uint64(op))
	s := c.lookupOrInsert(p.Sum(), func(id ast.ID) Storage {
		return &DependentName{storageBase: storageBase{id}, qualifier: q, identifier: identifier, operator: op}
	})
	return FromStorage(s)
}

// OverloadedTemplateName returns a fresh overload set over candidates.
// Overload sets are not uniqued.
func (c *Context) OverloadedTemplateName(candidates []ast.NamedDecl) Name {
	if len(candidates) == 0 {
		panic("templatename: empty overload set")
	}
	c.fresh++
	s := &OverloadSet{candidates: append([]ast.NamedDecl(nil), candidates...)}
	s.id = c.ast.NextID()
	return FromStorage(s)
}

// AssumedTemplateName returns a fresh assumed template name.
func (c *Context) AssumedTemplateName(name ast.DeclarationName) Name {
	c.fresh++
	s := &AssumedName{name: name}
	s.id = c.ast.NextID()
	return FromStorage(s)
}

// SubstTemplateTemplateParm returns the name recording that param was
// replaced by replacement.
func (c *Context) SubstTemplateTemplateParm(param *ast.TemplateDecl, replacement Name) Name {
	p := c.profiler
	p.AddUint64(uint64(SubstTemplateTemplateParm))
	p.AddUint64(uint64(param.ID()))
	p.AddUint64(replacement.OpaqueID())
	s := c.lookupOrInsert(p.Sum(), func(id ast.ID) Storage {
		st := &SubstParam{param: param, replacement: replacement}
		st.id = id
		return st
	})
	return FromStorage(s)
}

// SubstTemplateTemplateParmPack returns the name recording that the pack
// param was replaced by the arguments of pack.
func (c *Context) SubstTemplateTemplateParmPack(param *ast.TemplateDecl, pack Argument) Name {
	if pack.Kind != PackArgumentKind {
		panic("templatename: substituted pack requires a pack argument")
	}
	p := c.profiler
	p.AddUint64(uint64(SubstTemplateTemplateParmPack))
	p.AddUint64(uint64(param.ID()))
	pack.Profile(p, c)
	key := p.Sum()
	s := c.lookupOrInsert(key, func(id ast.ID) Storage {
		st := &SubstParamPack{param: param, args: append([]Argument(nil), pack.Pack...)}
		st.id = id
		return st
	})
	return FromStorage(s)
}

// SplicedTemplateReflection returns the name spliced from refl. designated
// is nil while the reflection is unresolved.
func (c *Context) SplicedTemplateReflection(refl ast.Expr, designated *ast.TemplateDecl) Name {
	p := c.profiler
	p.AddUint64(uint64(SplicedTemplateReflection))
	p.AddUint64(uint64(c.objectID(refl)))
	if designated != nil {
		p.AddUint64(uint64(designated.ID()))
	} else {
		p.AddUint64(0)
	}
	s := c.lookupOrInsert(p.Sum(), func(id ast.ID) Storage {
		st := &SplicedReflection{refl: refl, designated: designated}
		st.id = id
		return st
	})
	return FromStorage(s)
}

// CanonicalName returns the form of n used for structural comparison: the
// first declaration of the template when there is one.
func (c *Context) CanonicalName(n Name) Name {
	if d := n.AsTemplateDecl(); d != nil {
		return FromDecl(d.CanonicalDecl())
	}
	return n
}
