package driver

import (
	"testing"

	"brace/internal/grammar"
)

func digest(b byte) Digest {
	var d Digest
	for i := range d {
		d[i] = b
	}
	return d
}

func TestCacheKeyDependsOnEveryInput(t *testing.T) {
	data := []byte("int x;\n")
	base := cacheKey(data, grammar.C, false, digest('A'))

	if base != cacheKey(data, grammar.C, false, digest('A')) {
		t.Fatalf("key is not deterministic")
	}
	others := map[string]Digest{
		"content":     cacheKey([]byte("int y;\n"), grammar.C, false, digest('A')),
		"grammar":     cacheKey(data, grammar.Java, false, digest('A')),
		"indent-only": cacheKey(data, grammar.C, true, digest('A')),
		"options":     cacheKey(data, grammar.C, false, digest('B')),
	}
	for name, k := range others {
		if k == base {
			t.Errorf("%s does not change the key", name)
		}
	}
}

func TestCombineDigestOrder(t *testing.T) {
	a := combineDigest([]byte("x"), []byte("1"), []byte("2"))
	b := combineDigest([]byte("x"), []byte("2"), []byte("1"))
	if a == b {
		t.Fatalf("part order must matter")
	}
}
