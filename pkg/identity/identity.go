package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// DeriveSessionKey maps a channel-qualified sender address to a stable,
// one-way session key. The key doubles as the NLU session-continuity token
// and as a log-safe identifier, so the raw address must not be recoverable
// from it.
func DeriveSessionKey(senderID string) string {
	sum := sha256.Sum256([]byte(senderID))
	return "sess-" + hex.EncodeToString(sum[:16])
}

// MaskSender redacts a sender address for logging. It keeps the channel
// prefix and the last three characters of the address so operators can
// still correlate messages by eye.
//
// MaskSender and DeriveSessionKey are deliberately separate: masked
// addresses go to logs, session keys go to the NLU. Mixing them up would
// leak one identifier as the other.
func MaskSender(senderID string) string {
	prefix := ""
	address := senderID
	if idx := strings.Index(senderID, ":"); idx >= 0 {
		prefix = senderID[:idx+1]
		address = senderID[idx+1:]
	}

	if len(address) <= 3 {
		return prefix + strings.Repeat("*", len(address))
	}
	return prefix + strings.Repeat("*", len(address)-3) + address[len(address)-3:]
}
