// Package hdwallet derives BIP-44 addresses from a BIP-39 mnemonic. It is
// the derivation collaborator of the search engine: a Wallet is built once
// per search and shared read-only by every worker.
package hdwallet

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	bip39 "github.com/tyler-smith/go-bip39"

	"github.com/nherb/hdifinder/pkg/types"
)

// Candidate encoding kinds, in derivation output order.
const (
	KindP2PKH    = "p2pkh"    // legacy base58 pay-to-pubkey-hash
	KindP2WPKH   = "p2wpkh"   // native segwit v0 (bech32)
	KindP2SHWPKH = "p2shwpkh" // p2wpkh nested in p2sh
)

// purposeBIP44 is the hardened purpose level of the derivation path
// m/44'/0'/account'/0/index.
const purposeBIP44 = 44

// ErrInvalidMnemonic is returned when the mnemonic sentence fails wordlist
// or checksum validation.
var ErrInvalidMnemonic = errors.New("invalid mnemonic phrase")

// Wallet holds the pre-derived external-chain extended key for one
// mnemonic/passphrase/account triple, neutered so it is truly read-only:
// a private extended key lazily caches its compressed public key on first
// use, so sharing one across goroutines would race on that cache. The
// neutered key carries the public key eagerly and is never written again,
// making concurrent child derivation safe without synchronization.
type Wallet struct {
	changeKey *hdkeychain.ExtendedKey // m/44'/0'/account'/0, public only
	params    *chaincfg.Params
}

// New builds a Wallet for the given mnemonic and passphrase on Bitcoin
// mainnet, using BIP-44 account 0.
func New(mnemonic, passphrase string) (*Wallet, error) {
	return NewAccount(mnemonic, passphrase, 0)
}

// NewAccount builds a Wallet rooted at m/44'/0'/account'/0. The expensive
// work (seed stretch, four hardened derivations) happens once here; per
// index derivation is then a single non-hardened step.
func NewAccount(mnemonic, passphrase string, account uint32) (*Wallet, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	params := &chaincfg.MainNetParams
	master, err := hdkeychain.NewMaster(Seed(mnemonic, passphrase), params)
	if err != nil {
		return nil, fmt.Errorf("derive master key: %w", err)
	}

	key := master
	for _, step := range []uint32{
		hdkeychain.HardenedKeyStart + purposeBIP44,
		hdkeychain.HardenedKeyStart + 0, // coin type: bitcoin
		hdkeychain.HardenedKeyStart + account,
		0, // external chain
	} {
		if key, err = key.Derive(step); err != nil {
			return nil, fmt.Errorf("derive account path: %w", err)
		}
	}

	// Address derivation only needs the public branch. Neutering here also
	// forces the public-key computation now, before the key is shared.
	neutered, err := key.Neuter()
	if err != nil {
		return nil, fmt.Errorf("neuter account key: %w", err)
	}

	return &Wallet{changeKey: neutered, params: params}, nil
}

// DeriveCandidates derives the key at the wallet's path for index and
// encodes it as the three supported address kinds, always in the same
// order: p2pkh, p2wpkh, p2shwpkh.
//
// A derivation failure is local to the given index; the caller may skip it
// and continue with the next index.
func (w *Wallet) DeriveCandidates(index uint32) ([]types.Candidate, error) {
	child, err := w.changeKey.Derive(index)
	if err != nil {
		return nil, fmt.Errorf("derive index %d: %w", index, err)
	}
	pub, err := child.ECPubKey()
	if err != nil {
		return nil, fmt.Errorf("public key at index %d: %w", index, err)
	}

	pkHash := btcutil.Hash160(pub.SerializeCompressed())

	p2pkh, err := btcutil.NewAddressPubKeyHash(pkHash, w.params)
	if err != nil {
		return nil, fmt.Errorf("encode p2pkh at index %d: %w", index, err)
	}
	p2wpkh, err := btcutil.NewAddressWitnessPubKeyHash(pkHash, w.params)
	if err != nil {
		return nil, fmt.Errorf("encode p2wpkh at index %d: %w", index, err)
	}
	redeem, err := txscript.NewScriptBuilder().AddOp(txscript.OP_0).AddData(pkHash).Script()
	if err != nil {
		return nil, fmt.Errorf("build witness script at index %d: %w", index, err)
	}
	p2shwpkh, err := btcutil.NewAddressScriptHash(redeem, w.params)
	if err != nil {
		return nil, fmt.Errorf("encode p2shwpkh at index %d: %w", index, err)
	}

	return []types.Candidate{
		{Kind: KindP2PKH, Value: p2pkh.EncodeAddress()},
		{Kind: KindP2WPKH, Value: p2wpkh.EncodeAddress()},
		{Kind: KindP2SHWPKH, Value: p2shwpkh.EncodeAddress()},
	}, nil
}
