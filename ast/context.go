package ast

// Context owns the declarations of one translation unit and hands out their
// IDs. It is not safe for concurrent use.
type Context struct {
	nextID ID
	tu     *DeclContext
}

// NewContext returns an empty context with a translation unit scope.
func NewContext() *Context {
	return &Context{tu: &DeclContext{Kind: TranslationUnitContext}}
}

// TranslationUnit returns the outermost scope.
func (c *Context) TranslationUnit() *DeclContext { return c.tu }

// NextID allocates a fresh identity.
func (c *Context) NextID() ID {
	c.nextID++
	return c.nextID
}

func (c *Context) base(name string, dc *DeclContext, loc SourceLocation) declBase {
	if dc == nil {
		dc = c.tu
	}
	return declBase{id: c.NextID(), name: name, ctx: dc, loc: loc}
}

// NewNamespace declares a namespace in dc (nil means the translation unit).
func (c *Context) NewNamespace(dc *DeclContext, name string, loc SourceLocation) *NamespaceDecl {
	d := &NamespaceDecl{declBase: c.base(name, dc, loc)}
	d.inner = &DeclContext{Kind: NamespaceContext, Name: name, Parent: d.ctx}
	return d
}

// NewTemplate declares a template that starts a new redeclaration chain.
func (c *Context) NewTemplate(dc *DeclContext, kind TemplateDeclKind, name string, loc SourceLocation) *TemplateDecl {
	d := &TemplateDecl{declBase: c.base(name, dc, loc), kind: kind}
	d.chain = &redeclChain{first: d, latest: d}
	return d
}

// NewFriendTemplate declares a template whose first declaration is a friend
// declaration.
func (c *Context) NewFriendTemplate(dc *DeclContext, kind TemplateDeclKind, name string, loc SourceLocation) *TemplateDecl {
	d := c.NewTemplate(dc, kind, name, loc)
	d.friend = true
	return d
}

// NewTemplateTemplateParm declares a template template parameter.
func (c *Context) NewTemplateTemplateParm(dc *DeclContext, name string, depth, index int, pack bool, loc SourceLocation) *TemplateDecl {
	d := c.NewTemplate(dc, TemplateTemplateParm, name, loc)
	d.depth = depth
	d.index = index
	d.pack = pack
	return d
}

// Redeclare appends a redeclaration of prev to its chain and returns it.
func (c *Context) Redeclare(prev *TemplateDecl, dc *DeclContext, friend bool, loc SourceLocation) *TemplateDecl {
	d := &TemplateDecl{
		declBase: c.base(prev.name, dc, loc),
		kind:     prev.kind,
		friend:   friend,
		pack:     prev.pack,
		depth:    prev.depth,
		index:    prev.index,
		prev:     prev.chain.latest,
		chain:    prev.chain,
	}
	prev.chain.latest = d
	return d
}

// NewType declares a named type. Classes get a member scope.
func (c *Context) NewType(dc *DeclContext, kind TypeDeclKind, name string, loc SourceLocation) *TypeDecl {
	d := &TypeDecl{declBase: c.base(name, dc, loc), kind: kind}
	if kind == ClassType {
		d.inner = &DeclContext{Kind: ClassContext, Name: name, Parent: d.ctx}
	}
	return d
}

// NewTemplateTypeParm declares a template type parameter.
func (c *Context) NewTemplateTypeParm(dc *DeclContext, name string, pack bool, loc SourceLocation) *TypeDecl {
	d := c.NewType(dc, TemplateTypeParm, name, loc)
	d.pack = pack
	return d
}

// NewValue declares a value.
func (c *Context) NewValue(dc *DeclContext, kind ValueDeclKind, name string, typ Type, init Expr, loc SourceLocation) *ValueDecl {
	return &ValueDecl{declBase: c.base(name, dc, loc), kind: kind, Type: typ, Init: init}
}

// NewNonTypeTemplateParm declares a non-type template parameter.
func (c *Context) NewNonTypeTemplateParm(dc *DeclContext, name string, typ Type, pack bool, loc SourceLocation) *ValueDecl {
	d := c.NewValue(dc, NonTypeTemplateParm, name, typ, nil, loc)
	d.pack = pack
	return d
}
