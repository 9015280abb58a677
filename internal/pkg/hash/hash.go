package hash

// Hash produces a keyed digest of a secret. Callers that need to compare
// digests do so themselves in constant time.
type Hash interface {
	Hash(str string) ([]byte, error)
}
