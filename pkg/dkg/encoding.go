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

// Fixed-width wire encodings. All message sizes are fully determined by
// the session parameters (t, n), so the codecs take those as arguments
// instead of embedding lengths in the byte stream.

// PubnonceSize is the length of a serialized public nonce.
const PubnonceSize = 33

// participantMsgSize returns the encoded length of a participant round 1
// message for the given session parameters.
func participantMsgSize(t, n int) int {
	return t*EncryptionKeySize + PopSize + PubnonceSize + n*ScalarSize
}

// coordinatorMsgSize returns the encoded length of a coordinator
// broadcast for the given session parameters.
func coordinatorMsgSize(t, n int) int {
	return n*EncryptionKeySize + (t-1)*EncryptionKeySize + n*PopSize + n*PubnonceSize
}

// Bytes serializes the message as:
//
//	commitment (t*33) || pop (64) || pubnonce (33) || enc_shares (n*32)
func (m *EncPedPopParticipantMsg) Bytes() []byte {
	n := len(m.EncShares)
	t := m.SimplPMsg.Com.Threshold()
	out := make([]byte, 0, participantMsgSize(t, n))
	out = append(out, m.SimplPMsg.Com.Bytes()...)
	out = append(out, m.SimplPMsg.Pop...)
	out = append(out, m.Pubnonce...)
	for _, s := range m.EncShares {
		b := s.Bytes()
		out = append(out, b[:]...)
	}
	return out
}

// ParseEncPedPopParticipantMsg deserializes a round 1 message for a
// session with threshold t and n participants. The identity of the
// malformed sender is the caller's knowledge, so decode failures are
// plain structural errors; the caller attributes them.
func ParseEncPedPopParticipantMsg(b []byte, t, n int) (*EncPedPopParticipantMsg, error) {
	if n < 1 || n > MaxParticipants {
		return nil, ErrInvalidParticipantCount
	}
	if t < MinThreshold || t > n {
		return nil, ErrInvalidThreshold
	}
	if len(b) != participantMsgSize(t, n) {
		return nil, ErrInvalidMessageLength
	}

	off := 0
	com, err := VSSCommitmentFromBytes(b[:t*EncryptionKeySize], t)
	if err != nil {
		return nil, err
	}
	off += t * EncryptionKeySize

	pop := make([]byte, PopSize)
	copy(pop, b[off:off+PopSize])
	off += PopSize

	pubnonce := make([]byte, PubnonceSize)
	copy(pubnonce, b[off:off+PubnonceSize])
	if _, err := secp256k1.ParsePubKey(pubnonce); err != nil {
		return nil, ErrInvalidPointEncoding
	}
	off += PubnonceSize

	encShares := make([]Scalar, n)
	for i := 0; i < n; i++ {
		var sb [ScalarSize]byte
		copy(sb[:], b[off:off+ScalarSize])
		s, ok := NewScalarFromBytes(sb)
		if !ok {
			return nil, ErrInvalidScalarEncoding
		}
		encShares[i] = s
		off += ScalarSize
	}

	return &EncPedPopParticipantMsg{
		SimplPMsg: &SimplPedPopParticipantMsg{Com: com, Pop: pop},
		Pubnonce:  pubnonce,
		EncShares: encShares,
	}, nil
}

// Bytes serializes the broadcast as:
//
//	coms_to_secrets (n*33) || sum_nonconst (t-1 * 33) || pops (n*64) || pubnonces (n*33)
func (m *EncPedPopCoordinatorMsg) Bytes() []byte {
	n := len(m.SimplCMsg.ComsToSecrets)
	t := m.SimplCMsg.threshold()
	out := make([]byte, 0, coordinatorMsgSize(t, n))
	for _, p := range m.SimplCMsg.ComsToSecrets {
		out = append(out, p.SerializeCompressed()...)
	}
	for _, p := range m.SimplCMsg.SumComsToNonconstTerms {
		out = append(out, p.SerializeCompressed()...)
	}
	for _, pop := range m.SimplCMsg.Pops {
		out = append(out, pop...)
	}
	for _, pn := range m.Pubnonces {
		out = append(out, pn...)
	}
	return out
}

// ParseEncPedPopCoordinatorMsg deserializes a coordinator broadcast for a
// session with threshold t and n participants.
func ParseEncPedPopCoordinatorMsg(b []byte, t, n int) (*EncPedPopCoordinatorMsg, error) {
	if n < 1 || n > MaxParticipants {
		return nil, ErrInvalidParticipantCount
	}
	if t < MinThreshold || t > n {
		return nil, ErrInvalidThreshold
	}
	if len(b) != coordinatorMsgSize(t, n) {
		return nil, ErrInvalidMessageLength
	}

	off := 0
	parsePoints := func(count int) ([]*secp256k1.PublicKey, error) {
		points := make([]*secp256k1.PublicKey, count)
		for i := 0; i < count; i++ {
			p, err := secp256k1.ParsePubKey(b[off : off+EncryptionKeySize])
			if err != nil {
				return nil, ErrInvalidPointEncoding
			}
			points[i] = p
			off += EncryptionKeySize
		}
		return points, nil
	}

	comsToSecrets, err := parsePoints(n)
	if err != nil {
		return nil, err
	}
	sumNonconst, err := parsePoints(t - 1)
	if err != nil {
		return nil, err
	}

	pops := make([][]byte, n)
	for i := 0; i < n; i++ {
		pops[i] = make([]byte, PopSize)
		copy(pops[i], b[off:off+PopSize])
		off += PopSize
	}

	pubnonces := make([][]byte, n)
	for i := 0; i < n; i++ {
		pubnonces[i] = make([]byte, PubnonceSize)
		copy(pubnonces[i], b[off:off+PubnonceSize])
		if _, err := secp256k1.ParsePubKey(pubnonces[i]); err != nil {
			return nil, ErrInvalidPointEncoding
		}
		off += PubnonceSize
	}

	return &EncPedPopCoordinatorMsg{
		SimplCMsg: &SimplPedPopCoordinatorMsg{
			ComsToSecrets:          comsToSecrets,
			SumComsToNonconstTerms: sumNonconst,
			Pops:                   pops,
		},
		Pubnonces: pubnonces,
	}, nil
}
