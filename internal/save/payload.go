package save

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/jason-s-yu/uno/internal/models"
	"golang.org/x/crypto/blake2b"
)

// Version is the snapshot format version written into metadata.
const Version = "1.0"

// PlayerRecord is one seat in a snapshot.
type PlayerRecord struct {
	Name string         `json:"name"`
	IsAI bool           `json:"is_ai"`
	Hand []*models.Card `json:"hand"`
}

// Payload is the full game state covered by the checksum.
type Payload struct {
	GameID        string         `json:"game_id,omitempty"`
	Difficulty    string         `json:"difficulty"`
	CurrentPlayer int            `json:"current_player"`
	Direction     int            `json:"direction"`
	Scores        map[string]int `json:"scores"`
	Stats         map[string]int `json:"stats"`
	Players       []PlayerRecord `json:"players"`
	DiscardPile   []*models.Card `json:"discard_pile"`
	Achievements  []string       `json:"achievements"`
}

// Metadata describes a snapshot file. It is excluded from the checksum.
type Metadata struct {
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	CreatedAt string `json:"created_at"`
	Checksum  string `json:"checksum"`
}

// Snapshot is the on-disk document: the payload fields with metadata alongside.
type Snapshot struct {
	Payload
	Metadata Metadata `json:"metadata"`
}

// Checksum returns the hex BLAKE2b-256 digest of the payload's JSON encoding.
// encoding/json writes struct fields in declaration order and map keys sorted,
// so equal payloads always hash equally.
func Checksum(p Payload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encoding payload: %w", err)
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
