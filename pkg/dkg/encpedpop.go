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
	"bytes"
)

// EncPedPop wraps the secret-sharing core with multi-recipient encrypted
// share delivery, so that an untrusted coordinator can relay and
// aggregate shares without learning them.
//
// The protocol is two rounds: every participant runs ParticipantStep1
// independently, the coordinator runs CoordinatorStep over all n
// messages, and every participant finalizes with ParticipantStep2 after
// receiving the broadcast plus its private aggregated ciphertext.

// EncPedPopParticipantMsg is a participant's round 1 message.
type EncPedPopParticipantMsg struct {
	// SimplPMsg is the secret-sharing core's dealing message.
	SimplPMsg *SimplPedPopParticipantMsg

	// Pubnonce is the participant's ephemeral public nonce (33 bytes).
	Pubnonce []byte

	// EncShares are the encrypted shares, one per recipient including the
	// sender itself, index-aligned with the session's enckeys.
	EncShares []Scalar
}

// EncPedPopCoordinatorMsg is the coordinator's broadcast message.
type EncPedPopCoordinatorMsg struct {
	// SimplCMsg is the secret-sharing core's coordinator message.
	SimplCMsg *SimplPedPopCoordinatorMsg

	// Pubnonces are all participants' public nonces, index-aligned.
	Pubnonces [][]byte
}

// EncPedPopParticipantState is the state a participant keeps between
// Step1 and Step2. It is single-use: Step2 consumes it, and a second
// finalization attempt is rejected.
type EncPedPopParticipantState struct {
	simplState *SimplPedPopParticipantState
	pubnonce   []byte
	enckeys    [][]byte
	idx        int
	consumed   bool
}

// Idx returns this participant's index in the session.
func (s *EncPedPopParticipantState) Idx() int {
	return s.idx
}

// Zeroize discards the session state. The state holds no scalar secrets
// (the secnonce never outlives Step1), so this only severs references.
func (s *EncPedPopParticipantState) Zeroize() {
	if s == nil {
		return
	}
	s.simplState = nil
	s.pubnonce = nil
	s.enckeys = nil
	s.consumed = true
}

// serializeEncContext builds the session context that binds every derived
// value to one DKG run: t (4 bytes big-endian) || enckeys[0] || ... ||
// enckeys[n-1]. Sessions differing in threshold or participant set derive
// disjoint pads, nonces and core seeds.
func serializeEncContext(t int, enckeys [][]byte) []byte {
	out := make([]byte, 0, 4+len(enckeys)*EncryptionKeySize)
	out = append(out, be32(t)...)
	for _, ek := range enckeys {
		out = append(out, ek...)
	}
	return out
}

// deriveSimplSeed derives the seed handed to the secret-sharing core.
// The pubnonce and session context are folded in so the core's seed
// stays distinct from the top-level seed even if an implementation error
// elsewhere reuses the latter.
func deriveSimplSeed(seed, pubnonce, encContext []byte) []byte {
	derived := prf(seed, "encpedpop seed", pubnonce, encContext)
	return derived[:]
}

// EncPedPopParticipantStep1 runs round 1 for one participant.
//
// seed is the participant's long-term secret seed (32 bytes); random is
// 32 bytes of fresh randomness for this session. The secnonce is derived
// from both through a PRF, so an attacker must compromise the randomness
// source and guess the seed to predict it. The secnonce is zeroized
// before the function returns.
//
// enckeys[idx] must be the encryption key belonging to deckey; this is
// checked and violation is a structural error, not a protocol fault.
func EncPedPopParticipantStep1(seed []byte, deckey *DecryptionKey, enckeys [][]byte, t, idx int, random []byte) (*EncPedPopParticipantState, *EncPedPopParticipantMsg, error) {
	if len(seed) != SeedSize {
		return nil, nil, ErrInvalidSeed
	}
	if len(random) != RandomnessSize {
		return nil, nil, ErrInvalidRandomness
	}
	n := len(enckeys)
	if n < 1 || n > MaxParticipants {
		return nil, nil, ErrInvalidParticipantCount
	}
	if t < MinThreshold || t > n {
		return nil, nil, ErrInvalidThreshold
	}
	if idx < 0 || idx >= n {
		return nil, nil, ErrInvalidParticipantIndex
	}
	if !bytes.Equal(enckeys[idx], EncryptionKey(deckey)) {
		return nil, nil, ErrEncryptionKeyMismatch
	}

	encContext := serializeEncContext(t, enckeys)

	// Synthetic ephemeral nonce: fresh randomness hardened with the seed
	// and bound to this session.
	secnonceBytes := prf(seed, "encpedpop secnonce", random, encContext)
	secnonce := scalarFromHash(secnonceBytes)
	ZeroBytes(secnonceBytes[:])
	if secnonce.IsZero() {
		return nil, nil, ErrZeroScalar
	}
	pubnonce := scalarBaseMult(secnonce).SerializeCompressed()

	simplSeed := deriveSimplSeed(seed, pubnonce, encContext)
	simplState, simplPMsg, shares, err := SimplPedPopParticipantStep1(simplSeed, t, n, idx)
	ZeroBytes(simplSeed)
	if err != nil {
		secnonce.v.Zero()
		return nil, nil, err
	}

	encShares, err := encryptMulti(&secnonce, pubnonce, deckey, enckeys, shares, encContext, idx)
	secnonce.v.Zero()
	zeroScalars(shares)
	if err != nil {
		return nil, nil, err
	}

	state := &EncPedPopParticipantState{
		simplState: simplState,
		pubnonce:   pubnonce,
		enckeys:    copyByteSlices(enckeys),
		idx:        idx,
	}
	msg := &EncPedPopParticipantMsg{
		SimplPMsg: simplPMsg,
		Pubnonce:  pubnonce,
		EncShares: encShares,
	}

	Logger.Debug().Int("idx", idx).Int("n", n).Int("t", t).Msg("participant step 1 complete")
	return state, msg, nil
}

// EncPedPopParticipantStep2 finalizes the session for one participant.
//
// cmsg is the coordinator's broadcast; encSecshare is the aggregated
// ciphertext the coordinator addressed to this participant, delivered
// out of band. On success the state is consumed and the participant's
// DKG output is returned together with the equality-check transcript,
// which all honest parties must later compare out of band.
//
// The state is single-use. A second call fails with ErrSessionConsumed
// regardless of the message supplied; replaying finalization with a
// different coordinator message must be rejected, not recomputed.
func EncPedPopParticipantStep2(state *EncPedPopParticipantState, deckey *DecryptionKey, cmsg *EncPedPopCoordinatorMsg, encSecshare Scalar) (*DKGOutput, []byte, error) {
	if state == nil || state.consumed || state.simplState == nil {
		return nil, nil, ErrSessionConsumed
	}
	state.consumed = true

	if cmsg == nil || cmsg.SimplCMsg == nil {
		return nil, nil, NewFaultyCoordinatorError("missing coordinator message")
	}
	if len(cmsg.Pubnonces) != state.simplState.N {
		return nil, nil, NewFaultyCoordinatorError("wrong number of pubnonces")
	}
	if !bytes.Equal(cmsg.Pubnonces[state.idx], state.pubnonce) {
		return nil, nil, NewFaultyCoordinatorError("coordinator replied with wrong pubnonce")
	}

	encContext := serializeEncContext(state.simplState.T, state.enckeys)
	secshare, err := decryptSum(deckey, state.enckeys[state.idx], cmsg.Pubnonces, encSecshare, encContext, state.idx)
	if err != nil {
		return nil, nil, err
	}

	output, eqInput, err := SimplPedPopParticipantStep2(state.simplState, cmsg.SimplCMsg, secshare)
	if err != nil {
		return nil, nil, err
	}

	for _, ek := range state.enckeys {
		eqInput = append(eqInput, ek...)
	}
	for _, pn := range cmsg.Pubnonces {
		eqInput = append(eqInput, pn...)
	}

	Logger.Debug().Int("idx", state.idx).Msg("participant step 2 complete")
	return output, eqInput, nil
}

// EncPedPopCoordinatorStep aggregates round 1 messages from all n
// participants.
//
// Besides forwarding the core's broadcast and all pubnonces, the
// coordinator homomorphically aggregates the encrypted shares: for every
// recipient i it sums the ciphertext each sender addressed to i. Summed
// ciphertexts decrypt to the summed plaintexts once the recipient
// subtracts the matching pads, which is the reason the ciphertexts are
// additive masks rather than a generic cipher.
//
// The aggregated ciphertexts are returned as a side output; delivering
// encSecshares[i] to participant i, and to no one else, is the caller's
// transport concern.
func EncPedPopCoordinatorStep(pmsgs []*EncPedPopParticipantMsg, t int, enckeys [][]byte) (*EncPedPopCoordinatorMsg, *DKGOutput, []byte, []Scalar, error) {
	n := len(enckeys)
	if len(pmsgs) != n {
		return nil, nil, nil, nil, ErrCountMismatch
	}

	simplPMsgs := make([]*SimplPedPopParticipantMsg, n)
	for i, pmsg := range pmsgs {
		if pmsg == nil {
			return nil, nil, nil, nil, NewFaultyParticipantError(i, "missing round 1 message")
		}
		simplPMsgs[i] = pmsg.SimplPMsg
	}

	simplCMsg, output, eqInput, err := SimplPedPopCoordinatorStep(simplPMsgs, t, n)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	pubnonces := make([][]byte, n)
	for i, pmsg := range pmsgs {
		if len(pmsg.EncShares) != n {
			return nil, nil, nil, nil, NewFaultyParticipantError(i, "encrypted share vector has wrong length")
		}
		pubnonces[i] = pmsg.Pubnonce
	}

	encSecshares := make([]Scalar, n)
	for i := 0; i < n; i++ {
		addressed := make([]Scalar, n)
		for sender, pmsg := range pmsgs {
			addressed[sender] = pmsg.EncShares[i]
		}
		encSecshares[i] = ScalarSum(addressed...)
	}

	cmsg := &EncPedPopCoordinatorMsg{
		SimplCMsg: simplCMsg,
		Pubnonces: pubnonces,
	}

	for _, ek := range enckeys {
		eqInput = append(eqInput, ek...)
	}
	for _, pn := range pubnonces {
		eqInput = append(eqInput, pn...)
	}

	Logger.Debug().Int("n", n).Int("t", t).Msg("coordinator step complete")
	return cmsg, output, eqInput, encSecshares, nil
}
