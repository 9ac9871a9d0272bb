package codec

import (
	"seabattle/internal/merkle"
	"seabattle/internal/zk"
)

// Secret is the defender's private commitment state.
type Secret struct {
	Board   []string     `json:"board" cbor:"board"`
	Tree    *merkle.Tree `json:"tree" cbor:"tree"`
	SaltHex string       `json:"salt_hex" cbor:"salt_hex"`
}

// ShotProofPayload travels from defender to attacker after each shot.
type ShotProofPayload struct {
	Proof  []byte        `json:"proof" cbor:"proof"`
	Public zk.ShotPublic `json:"public" cbor:"public"` // root, cell and revealed hit bit
}
