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
	"testing"

	"github.com/stretchr/testify/require"
)

// testDeckey derives a deterministic decryption key for tests.
func testDeckey(t *testing.T, fill byte) *DecryptionKey {
	t.Helper()
	b := make([]byte, 32)
	for i := range b {
		b[i] = fill
	}
	b[0] = 0
	dk := DecryptionKeyFromBytes(b)
	require.NotNil(t, dk)
	return dk
}

// testNonce derives a deterministic ephemeral nonce pair for tests.
func testNonce(t *testing.T, fill byte) (Scalar, []byte) {
	t.Helper()
	sec := testScalar(t, fill)
	pub := scalarBaseMult(sec)
	require.NotNil(t, pub)
	return sec, pub.SerializeCompressed()
}

func TestECDHPadSymmetry(t *testing.T) {
	secnonce, pubnonce := testNonce(t, 0x21)
	deckey := testDeckey(t, 0x33)
	enckey := EncryptionKey(deckey)
	ctx := []byte("session context")

	senderPad, err := ecdhPad(&secnonce, pubnonce, enckey, ctx, true)
	require.NoError(t, err)

	sec := Scalar{v: deckey.Key}
	receiverPad, err := ecdhPad(&sec, enckey, pubnonce, ctx, false)
	require.NoError(t, err)

	require.True(t, senderPad.Equals(receiverPad))
}

func TestECDHPadBindsContext(t *testing.T) {
	secnonce, pubnonce := testNonce(t, 0x21)
	deckey := testDeckey(t, 0x33)
	enckey := EncryptionKey(deckey)

	a, err := ecdhPad(&secnonce, pubnonce, enckey, []byte("ctx a"), true)
	require.NoError(t, err)
	b, err := ecdhPad(&secnonce, pubnonce, enckey, []byte("ctx b"), true)
	require.NoError(t, err)
	require.False(t, a.Equals(b))
}

func TestECDHPadRejectsGarbageKey(t *testing.T) {
	secnonce, pubnonce := testNonce(t, 0x21)
	garbage := make([]byte, EncryptionKeySize)
	_, err := ecdhPad(&secnonce, pubnonce, garbage, nil, true)
	require.Error(t, err)
}

func TestSelfPadDeterministicAndKeyed(t *testing.T) {
	dk1 := testDeckey(t, 0x11)
	dk2 := testDeckey(t, 0x22)
	ctx := []byte("ctx")

	require.True(t, selfPad(dk1, ctx).Equals(selfPad(dk1, ctx)))
	require.False(t, selfPad(dk1, ctx).Equals(selfPad(dk2, ctx)))
	require.False(t, selfPad(dk1, ctx).Equals(selfPad(dk1, []byte("other"))))
}

func TestEncapsMultiBindsRecipientIndex(t *testing.T) {
	secnonce, pubnonce := testNonce(t, 0x44)
	sender := testDeckey(t, 0x55)
	r1 := testDeckey(t, 0x66)
	r2 := testDeckey(t, 0x77)
	enckeys := [][]byte{EncryptionKey(sender), EncryptionKey(r1), EncryptionKey(r2)}

	pads, err := encapsMulti(&secnonce, pubnonce, sender, enckeys, []byte("ctx"), 0)
	require.NoError(t, err)
	require.Len(t, pads, 3)

	// Same recipient key in a different position derives a different pad.
	swapped := [][]byte{EncryptionKey(sender), EncryptionKey(r2), EncryptionKey(r1)}
	padsSwapped, err := encapsMulti(&secnonce, pubnonce, sender, swapped, []byte("ctx"), 0)
	require.NoError(t, err)
	require.False(t, pads[1].Equals(padsSwapped[2]))
}

func TestEncapsMultiAttributesBadEnckey(t *testing.T) {
	secnonce, pubnonce := testNonce(t, 0x44)
	sender := testDeckey(t, 0x55)
	enckeys := [][]byte{EncryptionKey(sender), make([]byte, EncryptionKeySize)}

	_, err := encapsMulti(&secnonce, pubnonce, sender, enckeys, nil, 0)
	var fpe *FaultyParticipantError
	require.ErrorAs(t, err, &fpe)
	require.Equal(t, 1, fpe.Index)
}

func TestEncryptMultiCountMismatch(t *testing.T) {
	secnonce, pubnonce := testNonce(t, 0x44)
	sender := testDeckey(t, 0x55)
	enckeys := [][]byte{EncryptionKey(sender)}

	_, err := encryptMulti(&secnonce, pubnonce, sender, enckeys, make([]Scalar, 2), nil, 0)
	require.ErrorIs(t, err, ErrCountMismatch)
}

// TestEncryptDecryptSumRoundTrip exercises the homomorphic property: the
// recipient decrypts the summed ciphertexts of all senders and recovers
// the sum of the plaintexts, without ever seeing an individual share.
func TestEncryptDecryptSumRoundTrip(t *testing.T) {
	const n = 3
	ctx := []byte("session context")

	deckeys := make([]*DecryptionKey, n)
	enckeys := make([][]byte, n)
	for i := 0; i < n; i++ {
		deckeys[i] = testDeckey(t, byte(0x10+i))
		enckeys[i] = EncryptionKey(deckeys[i])
	}

	// Every sender encrypts a vector of n shares.
	plaintexts := make([][]Scalar, n)
	ciphertexts := make([][]Scalar, n)
	pubnonces := make([][]byte, n)
	for sender := 0; sender < n; sender++ {
		secnonce, pubnonce := testNonce(t, byte(0x60+sender))
		pubnonces[sender] = pubnonce

		msgs := make([]Scalar, n)
		for i := range msgs {
			msgs[i] = testScalar(t, byte(0x01+sender*n+i))
		}
		plaintexts[sender] = msgs

		cts, err := encryptMulti(&secnonce, pubnonce, deckeys[sender], enckeys, msgs, ctx, sender)
		require.NoError(t, err)
		ciphertexts[sender] = cts
	}

	for recipient := 0; recipient < n; recipient++ {
		var ctSum, ptSum Scalar
		for sender := 0; sender < n; sender++ {
			ctSum = ctSum.Add(ciphertexts[sender][recipient])
			ptSum = ptSum.Add(plaintexts[sender][recipient])
		}

		got, err := decryptSum(deckeys[recipient], enckeys[recipient], pubnonces, ctSum, ctx, recipient)
		require.NoError(t, err)
		require.True(t, got.Equals(ptSum))
	}
}

func TestDecryptSumWrongContextGarbles(t *testing.T) {
	sender := testDeckey(t, 0x11)
	recipient := testDeckey(t, 0x22)
	enckeys := [][]byte{EncryptionKey(sender), EncryptionKey(recipient)}
	secnonce, pubnonce := testNonce(t, 0x33)

	msg := testScalar(t, 0x07)
	cts, err := encryptMulti(&secnonce, pubnonce, sender, enckeys, []Scalar{{}, msg}, []byte("ctx"), 0)
	require.NoError(t, err)

	// Only sender 0 contributed, so the recipient's ciphertext sum is just
	// cts[1] minus the pad the recipient would have added for itself.
	selfCt := selfPad(recipient, append(be32(1), []byte("ctx")...))
	sum := cts[1].Add(selfCt)

	good, err := decryptSum(recipient, enckeys[1], [][]byte{pubnonce, EncryptionKey(recipient)}, sum, []byte("ctx"), 1)
	require.NoError(t, err)
	require.True(t, good.Equals(msg))

	bad, err := decryptSum(recipient, enckeys[1], [][]byte{pubnonce, EncryptionKey(recipient)}, sum, []byte("other ctx"), 1)
	require.NoError(t, err)
	require.False(t, bad.Equals(msg))
}

func TestDecryptSumIndexOutOfRange(t *testing.T) {
	dk := testDeckey(t, 0x11)
	_, err := decryptSum(dk, EncryptionKey(dk), [][]byte{EncryptionKey(dk)}, Scalar{}, nil, 1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestDecryptSumAttributesBadPubnonce(t *testing.T) {
	dk := testDeckey(t, 0x11)
	pubnonces := [][]byte{make([]byte, PubnonceSize), EncryptionKey(dk)}
	_, err := decryptSum(dk, EncryptionKey(dk), pubnonces, Scalar{}, nil, 1)
	var fpe *FaultyParticipantError
	require.ErrorAs(t, err, &fpe)
	require.Equal(t, 0, fpe.Index)
}
