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
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// EncryptionKeySize is the serialized size of an encryption key or a
	// public nonce: a compressed secp256k1 point.
	EncryptionKeySize = 33

	// SeedSize is the required length of the long-term secret seed.
	SeedSize = 32

	// RandomnessSize is the required length of the fresh per-session
	// randomness supplied to ParticipantStep1.
	RandomnessSize = 32
)

// DecryptionKey is a participant's long-term private key. It is held only
// by its owner and never leaves the participant.
type DecryptionKey = secp256k1.PrivateKey

// GenerateDecryptionKey generates a fresh long-term decryption key using
// crypto/rand.
func GenerateDecryptionKey() (*DecryptionKey, error) {
	return secp256k1.GeneratePrivateKey()
}

// DecryptionKeyFromBytes parses a 32-byte big-endian private scalar as a
// decryption key. The value is reduced mod the group order if necessary.
func DecryptionKeyFromBytes(b []byte) *DecryptionKey {
	return secp256k1.PrivKeyFromBytes(b)
}

// EncryptionKey returns the 33-byte compressed encoding of the public key
// corresponding to deckey. This is the value participants exchange before
// a session starts.
func EncryptionKey(deckey *DecryptionKey) []byte {
	return deckey.PubKey().SerializeCompressed()
}
