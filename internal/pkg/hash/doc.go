// Package hash provides keyed hashing for secrets.
//
// Typical usage is for one-time codes and opaque tokens: store only the
// digest, then compare the digest of user input against the stored one in
// constant time. Implementations (like HMAC-SHA256) live in this package
// behind a small interface.
package hash
