package identity

import "github.com/google/uuid"

// Namespace is the RFC 4122 URL namespace. Every identifier emitted into a
// portable document is derived from it, so changing it would re-key all
// downstream data.
var Namespace = uuid.NameSpaceURL

// ID derives a stable UUIDv5 from a seed string.
func ID(seed string) string {
	return Derive(Namespace, seed)
}

// Derive returns the canonical text form of the UUIDv5 of seed in namespace.
func Derive(namespace uuid.UUID, seed string) string {
	return uuid.NewSHA1(namespace, []byte(seed)).String()
}
