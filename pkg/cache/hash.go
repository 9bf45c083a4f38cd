package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns "kind:<sha256>" over base and the JSON of opts. Options
// are plain structs, so their JSON encoding is stable.
func hashKey(kind, base string, opts any) string {
	h := sha256.New()
	h.Write([]byte(base))
	h.Write([]byte{0})
	if err := json.NewEncoder(h).Encode(opts); err != nil {
		panic("cache: unencodable key options: " + err.Error())
	}
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}
