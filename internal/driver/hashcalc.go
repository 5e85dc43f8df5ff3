package driver

import (
	"crypto/sha256"

	"github.com/vmihailenco/msgpack/v5"

	"brace/internal/grammar"
	"brace/internal/style"
)

// Digest is a SHA-256 sum.
type Digest [sha256.Size]byte

// combineDigest: H(content || part1 || part2 ...). parts уже в детерминированном порядке.
func combineDigest(content []byte, parts ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(content)
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// OptionsFingerprint hashes every exported option; two configurations that
// format identically share a fingerprint.
func OptionsFingerprint(opts *style.Options) (Digest, error) {
	data, err := msgpack.Marshal(opts)
	if err != nil {
		return Digest{}, err
	}
	return combineDigest(data), nil
}

// cacheKey identifies one input under one configuration.
func cacheKey(data []byte, g grammar.Grammar, indentOnly bool, fingerprint Digest) Digest {
	mode := []byte{byte(g), 0, byte(diskCacheSchemaVersion)}
	if indentOnly {
		mode[1] = 1
	}
	return combineDigest(data, mode, fingerprint[:])
}
