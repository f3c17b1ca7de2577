package parser

// tentativeAction is an open tentative parse. Exactly one of Commit or
// Revert must be called.
type tentativeAction struct {
	p    *Parser
	pos  int
	done bool
}

// beginTentative starts a tentative parse at the current token.
// Diagnostics are held until the parse is committed. It fails when
// tentative parses are already nested MaxTentativeDepth deep.
func (p *Parser) beginTentative() (*tentativeAction, bool) {
	if p.tentativeDepth >= p.opts.MaxTentativeDepth {
		p.logger.Warn("tentative parse depth exceeded",
			"loc", p.tok().Loc.String(),
			"max", p.opts.MaxTentativeDepth)
		return nil, false
	}
	p.tentativeDepth++
	p.diags.Hold()
	return &tentativeAction{p: p, pos: p.pos}, true
}

// Commit keeps the tokens consumed and reports the held diagnostics.
func (t *tentativeAction) Commit() {
	if t.done {
		return
	}
	t.done = true
	t.p.tentativeDepth--
	t.p.diags.Release()
}

// Revert rewinds to where the parse began and discards its diagnostics.
// Annotations made meanwhile survive and are replayed by the next parse.
func (t *tentativeAction) Revert() {
	if t.done {
		return
	}
	t.done = true
	t.p.tentativeDepth--
	t.p.diags.Drop()
	if t.p.pos != t.pos {
		t.p.logger.Debug("tentative parse reverted",
			"from", t.p.toks[t.pos].Loc.String(),
			"tokens", t.p.pos-t.pos)
	}
	t.p.pos = t.pos
}

// tryTentatively runs fn as a tentative parse. It commits when fn reports
// success and reverts otherwise.
func (p *Parser) tryTentatively(fn func() bool) bool {
	ta, ok := p.beginTentative()
	if !ok {
		return false
	}
	if fn() {
		ta.Commit()
		return true
	}
	ta.Revert()
	return false
}

// lookahead runs fn tentatively and always reverts, returning fn's answer.
func (p *Parser) lookahead(fn func() bool) bool {
	ta, ok := p.beginTentative()
	if !ok {
		return false
	}
	defer ta.Revert()
	return fn()
}
