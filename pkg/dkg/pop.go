// SPDX-License-Identifier: Apache-2.0
//
// Copyright 2025 The bip-frost-dkg Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dkg

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// PopSize is the size of a proof of possession: a 64-byte BIP-340
// Schnorr signature.
const PopSize = 64

// popMessage is the message a participant signs to prove possession of
// the secret behind its constant-term commitment. The participant index
// is bound into the message so proofs cannot be replayed across indices.
func popMessage(idx int) [32]byte {
	return taggedHashDKG("pop message", be32(idx))
}

// provePossession signs the index-bound proof-of-possession message with
// the dealer's secret constant term.
func provePossession(secret Scalar, idx int) ([]byte, error) {
	b := secret.Bytes()
	priv, _ := btcec.PrivKeyFromBytes(b[:])
	defer priv.Zero()
	ZeroBytes(b[:])

	msg := popMessage(idx)
	sig, err := schnorr.Sign(priv, msg[:])
	if err != nil {
		return nil, err
	}
	return sig.Serialize(), nil
}

// verifyPossession checks a proof of possession against the constant-term
// commitment of the participant at idx.
func verifyPossession(pop []byte, comToSecret *secp256k1.PublicKey, idx int) bool {
	if len(pop) != PopSize || comToSecret == nil {
		return false
	}
	sig, err := schnorr.ParseSignature(pop)
	if err != nil {
		return false
	}
	msg := popMessage(idx)
	return sig.Verify(msg[:], comToSecret)
}
