package hdwallet

import (
	"crypto/sha512"

	"golang.org/x/crypto/pbkdf2"
)

const (
	seedSaltPrefix = "mnemonic"
	seedRounds     = 2048
	seedBytes      = 64
)

// Seed stretches a mnemonic sentence and passphrase into a 64-byte BIP-39
// seed (PBKDF2-HMAC-SHA512, 2048 rounds, salt "mnemonic"+passphrase).
// The mnemonic is assumed to be NFKD-normalized already; English wordlist
// sentences are plain ASCII and need no normalization.
func Seed(mnemonic, passphrase string) []byte {
	return pbkdf2.Key([]byte(mnemonic), []byte(seedSaltPrefix+passphrase), seedRounds, seedBytes, sha512.New)
}
