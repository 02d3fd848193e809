package hdwallet

import (
	"encoding/hex"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nherb/hdifinder/pkg/types"
)

const testMnemonic = "erupt quit sphere taxi air decade vote mixed life elevator mammal search empower rabbit barely indoor crush grid slide correct scatter deal tenant verb"

// TestSeed checks the BIP-39 reference vector (Trezor test suite).
func TestSeed(t *testing.T) {
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	seed := Seed(mnemonic, "TREZOR")
	assert.Equal(t,
		"c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04",
		hex.EncodeToString(seed))
}

func TestNewRejectsInvalidMnemonic(t *testing.T) {
	tests := []struct {
		name     string
		mnemonic string
	}{
		{name: "empty", mnemonic: ""},
		{name: "not words", mnemonic: "definitely not a mnemonic"},
		{name: "bad checksum", mnemonic: "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := New(tt.mnemonic, "")
			assert.ErrorIs(t, err, ErrInvalidMnemonic)
			assert.Nil(t, w)
		})
	}
}

// TestDeriveCandidatesKnownIndex pins the three encodings of the key at
// m/44'/0'/0'/0/5 for the test phrase with an empty passphrase.
func TestDeriveCandidatesKnownIndex(t *testing.T) {
	w, err := New(testMnemonic, "")
	require.NoError(t, err)

	candidates, err := w.DeriveCandidates(5)
	require.NoError(t, err)

	assert.Equal(t, []types.Candidate{
		{Kind: KindP2PKH, Value: "14odE5c1eXuphR24fXMtzDfsXMLCmFTFgK"},
		{Kind: KindP2WPKH, Value: "bc1q9xuuqjdz920rkcs0kvnmqh0t4anmgtk5u60h0y"},
		{Kind: KindP2SHWPKH, Value: "39gFyg2s6bp5AwwqtCrH7iNqRBh664LnZg"},
	}, candidates)
}

func TestDeriveCandidatesDeterministic(t *testing.T) {
	w, err := New(testMnemonic, "")
	require.NoError(t, err)

	first, err := w.DeriveCandidates(123)
	require.NoError(t, err)
	second, err := w.DeriveCandidates(123)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := w.DeriveCandidates(124)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

// TestDeriveCandidatesConcurrent shares one fresh wallet across goroutines
// the way the search pool does. Run with -race: the first derivations must
// not write to the shared account key.
func TestDeriveCandidatesConcurrent(t *testing.T) {
	w, err := New(testMnemonic, "")
	require.NoError(t, err)

	const goroutines = 8
	results := make([][]types.Candidate, goroutines)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		g := g
		wg.Add(1)
		go func() {
			defer wg.Done()
			candidates, derr := w.DeriveCandidates(uint32(g))
			require.NoError(t, derr)
			results[g] = candidates
		}()
	}
	wg.Wait()

	// concurrent results must equal a sequential re-derivation
	for g := 0; g < goroutines; g++ {
		sequential, err := w.DeriveCandidates(uint32(g))
		require.NoError(t, err)
		assert.Equal(t, sequential, results[g])
	}
}

func TestDeriveCandidatesOrder(t *testing.T) {
	w, err := New(testMnemonic, "")
	require.NoError(t, err)

	candidates, err := w.DeriveCandidates(0)
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	assert.Equal(t, KindP2PKH, candidates[0].Kind)
	assert.Equal(t, KindP2WPKH, candidates[1].Kind)
	assert.Equal(t, KindP2SHWPKH, candidates[2].Kind)
}

func TestPassphraseChangesAddresses(t *testing.T) {
	plain, err := New(testMnemonic, "")
	require.NoError(t, err)
	protected, err := New(testMnemonic, "hunter2")
	require.NoError(t, err)

	a, err := plain.DeriveCandidates(0)
	require.NoError(t, err)
	b, err := protected.DeriveCandidates(0)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestAccountChangesAddresses(t *testing.T) {
	account0, err := NewAccount(testMnemonic, "", 0)
	require.NoError(t, err)
	account1, err := NewAccount(testMnemonic, "", 1)
	require.NoError(t, err)

	a, err := account0.DeriveCandidates(0)
	require.NoError(t, err)
	b, err := account1.DeriveCandidates(0)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
