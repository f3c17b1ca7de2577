package diag

// Engine routes diagnostics from the parser and the semantic collaborator to
// a Sink. It can suppress diagnostics outright or hold them while a tentative
// parse decides whether they matter.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	sink       Sink
	suppress   int
	pending    [][]Diagnostic
	errorLimit int
	errors     int
	fatal      bool
}

// NewEngine returns an engine delivering to sink.
func NewEngine(sink Sink) *Engine {
	if sink == nil {
		sink = Discard
	}
	return &Engine{sink: sink}
}

// SetErrorLimit stops delivery after n errors. Zero means no limit.
func (e *Engine) SetErrorLimit(n int) { e.errorLimit = n }

// ErrorCount returns the number of errors delivered to the sink.
func (e *Engine) ErrorCount() int { return e.errors }

// Suppressed reports whether diagnostics are currently dropped.
func (e *Engine) Suppressed() bool { return e.suppress > 0 }

// Suppress drops diagnostics until the returned function is called.
func (e *Engine) Suppress() (restore func()) {
	e.suppress++
	done := false
	return func() {
		if !done {
			done = true
			e.suppress--
		}
	}
}

// Report routes d: dropped when suppressed, held while a tentative region is
// open, delivered otherwise.
func (e *Engine) Report(d Diagnostic) {
	if e.suppress > 0 {
		return
	}
	if n := len(e.pending); n > 0 {
		e.pending[n-1] = append(e.pending[n-1], d)
		return
	}
	e.deliver(d)
}

func (e *Engine) deliver(d Diagnostic) {
	if e.fatal {
		return
	}
	if s := d.Kind.Severity(); s == SeverityError || s == SeverityFatal {
		if e.errorLimit > 0 && e.errors >= e.errorLimit {
			e.fatal = true
			e.sink.Report(New(FatalTooManyErrors, d.Loc))
			return
		}
		e.errors++
	}
	e.sink.Report(d)
}

// Hold opens a tentative region. Diagnostics reported until the matching
// Release or Drop are buffered.
func (e *Engine) Hold() {
	e.pending = append(e.pending, nil)
}

// Release closes the innermost region and passes its diagnostics outward.
func (e *Engine) Release() {
	n := len(e.pending)
	held := e.pending[n-1]
	e.pending = e.pending[:n-1]
	for _, d := range held {
		e.Report(d)
	}
}

// Drop closes the innermost region and discards its diagnostics.
func (e *Engine) Drop() {
	e.pending = e.pending[:len(e.pending)-1]
}

// Depth returns the number of open tentative regions.
func (e *Engine) Depth() int { return len(e.pending) }
