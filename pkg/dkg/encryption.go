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

// Multi-recipient encryption of secret shares.
//
// This is the "Hashed ElGamal" multi-recipient KEM of Pinto, Poettering
// and Schuldt ("Multi-recipient encryption, revisited", AsiaCCS 2014):
// one ephemeral nonce is reused across all recipients, which is safe
// because each recipient's index is folded into the hash that derives its
// pad. Pads are scalars added to the share scalars, so ciphertexts from
// different senders can be summed by the coordinator and decrypted as a
// sum by the recipient.

// ecdhPad derives a pad from a Diffie-Hellman exchange between sec and
// peerPub. The two public keys are hashed in sender-then-receiver order
// on both sides: the sender passes its own key first (sending=true), the
// receiver passes the peer's key first (sending=false), so both compute
// byte-identical hash input.
func ecdhPad(sec *Scalar, ownPub, peerPub, context []byte, sending bool) (Scalar, error) {
	peer, err := secp256k1.ParsePubKey(peerPub)
	if err != nil {
		return Scalar{}, err
	}

	shared := scalarMult(*sec, peer)
	if shared == nil {
		return Scalar{}, ErrZeroScalar
	}

	data := make([]byte, 0, 3*EncryptionKeySize+len(context))
	data = append(data, shared.SerializeCompressed()...)
	if sending {
		data = append(data, ownPub...)
		data = append(data, peerPub...)
	} else {
		data = append(data, peerPub...)
		data = append(data, ownPub...)
	}
	data = append(data, context...)
	return scalarFromHash(taggedHashDKG("encpedpop ecdh", data)), nil
}

// selfPad derives the pad a participant uses to encrypt to itself. A
// Diffie-Hellman exchange with oneself would be degenerate and wastes a
// point multiplication, so the pad comes from a PRF keyed with the
// decryption key instead.
func selfPad(deckey *DecryptionKey, context []byte) Scalar {
	seed := deckey.Serialize()
	defer ZeroBytes(seed)
	return scalarFromHash(prf(seed, "encaps_multi self_pad", context))
}

// encapsMulti derives one pad per recipient for a single sender. Each
// pad's hash input is prefixed with the 4-byte big-endian recipient index,
// binding the pad to exactly one recipient position so pads cannot be
// confused or replayed across recipients. Position idx (the sender
// itself) uses the self pad.
//
// An encryption key that fails to decode is reported as a
// FaultyParticipantError naming the key's owner.
func encapsMulti(secnonce *Scalar, pubnonce []byte, deckey *DecryptionKey, enckeys [][]byte, context []byte, idx int) ([]Scalar, error) {
	pads := make([]Scalar, len(enckeys))
	for i, enckey := range enckeys {
		contextI := append(be32(i), context...)
		if i == idx {
			pads[i] = selfPad(deckey, contextI)
			continue
		}
		pad, err := ecdhPad(secnonce, pubnonce, enckey, contextI, true)
		if err != nil {
			zeroScalars(pads)
			return nil, NewFaultyParticipantError(i, "invalid encryption key")
		}
		pads[i] = pad
	}
	return pads, nil
}

// encryptMulti encrypts one share per recipient by masking each share
// with its pad: ciphertexts[i] = messages[i] + pads[i]. The sender
// encrypts to itself as well, keeping the vector dense for aggregation.
func encryptMulti(secnonce *Scalar, pubnonce []byte, deckey *DecryptionKey, enckeys [][]byte, messages []Scalar, context []byte, idx int) ([]Scalar, error) {
	if len(messages) != len(enckeys) {
		return nil, ErrCountMismatch
	}
	pads, err := encapsMulti(secnonce, pubnonce, deckey, enckeys, context, idx)
	if err != nil {
		return nil, err
	}
	ciphertexts := make([]Scalar, len(messages))
	for i := range messages {
		ciphertexts[i] = messages[i].Add(pads[i])
	}
	zeroScalars(pads)
	return ciphertexts, nil
}

// decryptSum recovers the sum of the plaintexts addressed to recipient
// idx from the coordinator's aggregated ciphertext. For every sender it
// recomputes the pad that sender derived for this recipient position
// (reversing roles in the Diffie-Hellman hash input) and subtracts it. The per-recipient context derivation must be
// byte-identical to encapsMulti or decryption silently produces garbage.
func decryptSum(deckey *DecryptionKey, enckey []byte, pubnonces [][]byte, sumCiphertexts Scalar, context []byte, idx int) (Scalar, error) {
	if idx < 0 || idx >= len(pubnonces) {
		return Scalar{}, ErrIndexOutOfRange
	}

	contextI := append(be32(idx), context...)
	sec := Scalar{v: deckey.Key}

	sum := sumCiphertexts
	for i, pubnonce := range pubnonces {
		var pad Scalar
		if i == idx {
			pad = selfPad(deckey, contextI)
		} else {
			var err error
			pad, err = ecdhPad(&sec, enckey, pubnonce, contextI, false)
			if err != nil {
				return Scalar{}, NewFaultyParticipantError(i, "invalid public nonce")
			}
		}
		sum = sum.Sub(pad)
	}
	sec.v.Zero()
	return sum, nil
}
