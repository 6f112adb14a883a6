package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// keyVersion changes whenever the cached result layout changes
const keyVersion = "authorscope:v1"

// Cache stores serialized analysis results
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ResultKey identifies one engine's verdict on one text.
// fingerprint covers the engine settings that change the verdict (weights, model, provider).
func ResultKey(engine, fingerprint, content string) string {
	h := sha256.New()
	h.Write([]byte(engine))
	h.Write([]byte{0})
	h.Write([]byte(fingerprint))
	h.Write([]byte{0})
	h.Write([]byte(content))
	return keyVersion + ":" + engine + ":" + hex.EncodeToString(h.Sum(nil))
}
