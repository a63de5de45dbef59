package parser

import (
	"sync"
	"testing"
)

func typescriptPool(t *testing.T) *ParserPool {
	t.Helper()
	lang, err := languageFor(DialectTypeScript)
	if err != nil {
		t.Fatal(err)
	}
	pool, err := NewParserPool(lang)
	if err != nil {
		t.Fatal(err)
	}
	return pool
}

func TestParserPool_GetPut(t *testing.T) {
	pool := typescriptPool(t)

	sp := pool.Get()
	if sp == nil {
		t.Fatal("expected non-nil parser from pool")
	}
	if pool.Leased() != 1 {
		t.Errorf("expected 1 lease, got %d", pool.Leased())
	}

	pool.Put(sp)
	if pool.Leased() != 0 {
		t.Errorf("expected 0 leases after Put, got %d", pool.Leased())
	}
}

func TestParserPool_PutNil(t *testing.T) {
	pool := typescriptPool(t)
	pool.Put(nil)
}

func TestParserPool_ParsesTypeAnnotations(t *testing.T) {
	pool := typescriptPool(t)

	sp := pool.Get()
	defer pool.Put(sp)

	tree := sp.Parse([]byte("interface A { x: number }\nconst a: A = { x: 1 };\n"), nil)
	if tree == nil {
		t.Fatal("expected non-nil parse tree")
	}
	defer tree.Close()

	if root := tree.RootNode(); root.HasError() {
		t.Fatal("expected error-free root node")
	}
}

func TestParserPool_ConcurrentAccess(t *testing.T) {
	pool := typescriptPool(t)

	const goroutines = 20
	const iters = 50

	var wg sync.WaitGroup
	wg.Add(goroutines)

	src := []byte("export function run(): void {}\n")

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iters; j++ {
				sp := pool.Get()
				tree := sp.Parse(src, nil)
				if tree == nil {
					t.Errorf("expected non-nil parse tree")
				} else {
					tree.Close()
				}
				pool.Put(sp)
			}
		}()
	}

	wg.Wait()
	if pool.Leased() != 0 {
		t.Errorf("expected all parsers returned, got %d leased", pool.Leased())
	}
}

func TestPoolFor(t *testing.T) {
	a, err := PoolFor(DialectJavaScript)
	if err != nil {
		t.Fatal(err)
	}
	b, err := PoolFor(DialectJavaScript)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("expected the same pool for repeated lookups")
	}

	if _, err := PoolFor(Dialect("coffeescript")); err == nil {
		t.Error("expected error for unknown dialect")
	}
}
