package parser

import (
	"sync"
	"sync/atomic"

	"exporter/internal/core/errors"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ParserPool hands out tree-sitter parsers bound to one dialect's grammar.
// Scans parse many documents of the same dialect back to back, and a fresh
// sitter.Parser per document is wasted allocation on the C side.
type ParserPool struct {
	lang   *sitter.Language
	idle   sync.Pool
	leased atomic.Int64
}

// NewParserPool checks that lang loads into a parser and returns a pool for
// it. An ABI mismatch between the binding and the grammar surfaces here.
func NewParserPool(lang *sitter.Language) (*ParserPool, error) {
	sp := sitter.NewParser()
	if err := sp.SetLanguage(lang); err != nil {
		sp.Close()
		return nil, err
	}

	p := &ParserPool{lang: lang}
	p.idle.New = func() any {
		fresh := sitter.NewParser()
		// Already validated above.
		_ = fresh.SetLanguage(lang)
		return fresh
	}
	p.idle.Put(sp)
	return p, nil
}

// Get leases a parser. Hand it back with Put once the tree is closed.
func (p *ParserPool) Get() *sitter.Parser {
	p.leased.Add(1)
	return p.idle.Get().(*sitter.Parser)
}

// Put clears parse state left over from the last document and returns sp.
func (p *ParserPool) Put(sp *sitter.Parser) {
	if sp == nil {
		return
	}
	p.leased.Add(-1)
	sp.Reset()
	p.idle.Put(sp)
}

// Leased is the number of parsers handed out and not yet returned.
func (p *ParserPool) Leased() int {
	return int(p.leased.Load())
}

var (
	poolsMu sync.Mutex
	pools   = make(map[Dialect]*ParserPool)
)

// PoolFor returns the process-wide pool for d.
func PoolFor(d Dialect) (*ParserPool, error) {
	lang, err := languageFor(d)
	if err != nil {
		return nil, err
	}
	poolsMu.Lock()
	defer poolsMu.Unlock()
	if p, ok := pools[d]; ok {
		return p, nil
	}
	p, err := NewParserPool(lang)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeInternal, "load grammar"), errors.CtxDialect, string(d))
	}
	pools[d] = p
	return p, nil
}
