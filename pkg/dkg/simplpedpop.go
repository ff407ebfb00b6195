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

// SimplPedPop is the secret-sharing core of the DKG: a Pedersen-style VSS
// dealing round with proofs of possession, aggregated by an untrusted
// coordinator. It deals in raw (unencrypted) shares; the EncPedPop layer
// wraps it and consumes only the Step1/CoordinatorStep/Step2 surface
// defined here.

// DKGOutput holds the outputs of a completed DKG session.
type DKGOutput struct {
	// Secshare is this participant's share of the threshold secret key.
	// It is nil in the coordinator's output.
	Secshare *Scalar

	// ThresholdPubkey is the group's threshold public key.
	ThresholdPubkey *secp256k1.PublicKey

	// Pubshares are the public key shares of all participants, used to
	// verify partial signatures during later signing.
	Pubshares []*secp256k1.PublicKey
}

// Zeroize clears the secret share. The public values are left intact;
// they are broadcast anyway.
func (o *DKGOutput) Zeroize() {
	if o == nil {
		return
	}
	if o.Secshare != nil {
		o.Secshare.v.Zero()
		o.Secshare = nil
	}
}

// SimplPedPopParticipantMsg is a participant's dealing message: the VSS
// commitment and a proof of possession of the constant term.
type SimplPedPopParticipantMsg struct {
	Com *VSSCommitment
	Pop []byte
}

// SimplPedPopCoordinatorMsg is the coordinator's broadcast. The
// coordinator sums the commitments to the non-constant terms so that
// participants receive t-1 points instead of n*(t-1); the constant-term
// commitments must stay separate because the proofs of possession are
// verified against them individually.
type SimplPedPopCoordinatorMsg struct {
	// ComsToSecrets are the constant-term commitments of all participants.
	ComsToSecrets []*secp256k1.PublicKey

	// SumComsToNonconstTerms is the pointwise sum of all participants'
	// commitments to the non-constant polynomial terms.
	SumComsToNonconstTerms []*secp256k1.PublicKey

	// Pops are the proofs of possession of all participants.
	Pops [][]byte
}

// threshold returns t as implied by the message shape.
func (m *SimplPedPopCoordinatorMsg) threshold() int {
	return len(m.SumComsToNonconstTerms) + 1
}

// eqInputFragment serializes the coordinator message into the transcript
// fragment that every honest party must agree on. Layout:
// t (4) || n (4) || coms-to-secrets || summed nonconst terms || pops.
func (m *SimplPedPopCoordinatorMsg) eqInputFragment() []byte {
	n := len(m.ComsToSecrets)
	out := make([]byte, 0, 8+(n+len(m.SumComsToNonconstTerms))*EncryptionKeySize+n*PopSize)
	out = append(out, be32(m.threshold())...)
	out = append(out, be32(n)...)
	for _, p := range m.ComsToSecrets {
		out = append(out, p.SerializeCompressed()...)
	}
	for _, p := range m.SumComsToNonconstTerms {
		out = append(out, p.SerializeCompressed()...)
	}
	for _, pop := range m.Pops {
		out = append(out, pop...)
	}
	return out
}

// combinedCommitment reconstructs the summed VSS commitment
// [sum C_0, sum C_1, ..., sum C_(t-1)] from the coordinator message.
// Returns nil if the summed constant term is the identity.
func (m *SimplPedPopCoordinatorMsg) combinedCommitment() *VSSCommitment {
	sumSecrets := pointSum(m.ComsToSecrets...)
	if sumSecrets == nil {
		return nil
	}
	coeffs := make([]*secp256k1.PublicKey, 0, m.threshold())
	coeffs = append(coeffs, sumSecrets)
	coeffs = append(coeffs, m.SumComsToNonconstTerms...)
	return &VSSCommitment{Coefficients: coeffs}
}

// SimplPedPopParticipantState is the dealing state a participant keeps
// between Step1 and Step2.
type SimplPedPopParticipantState struct {
	// T is the threshold of the session.
	T int

	// N is the number of participants.
	N int

	// Idx is this participant's index.
	Idx int

	// ComToSecret is this participant's own constant-term commitment,
	// kept to verify the coordinator echoed it unmodified.
	ComToSecret *secp256k1.PublicKey
}

// SimplPedPopParticipantStep1 runs the dealing step for one participant.
//
// The polynomial is derived deterministically from seed, so Step1 is
// idempotent for identical inputs. It returns the participant's state,
// the outgoing dealing message, and the n raw secret shares, one per
// participant (including the dealer's own at position idx). The shares
// are secret; the caller owns their zeroization.
func SimplPedPopParticipantStep1(seed []byte, t, n, idx int) (*SimplPedPopParticipantState, *SimplPedPopParticipantMsg, []Scalar, error) {
	if len(seed) != SeedSize {
		return nil, nil, nil, ErrInvalidSeed
	}
	if n < 1 || n > MaxParticipants {
		return nil, nil, nil, ErrInvalidParticipantCount
	}
	if t < MinThreshold || t > n {
		return nil, nil, nil, ErrInvalidThreshold
	}
	if idx < 0 || idx >= n {
		return nil, nil, nil, ErrInvalidParticipantIndex
	}

	vss, err := GenerateVSS(seed, t)
	if err != nil {
		return nil, nil, nil, err
	}
	defer vss.Zeroize()

	com := vss.Commit()
	shares, err := vss.Secshares(n)
	if err != nil {
		return nil, nil, nil, err
	}

	pop, err := provePossession(vss.Secret(), idx)
	if err != nil {
		zeroScalars(shares)
		return nil, nil, nil, err
	}

	state := &SimplPedPopParticipantState{
		T:           t,
		N:           n,
		Idx:         idx,
		ComToSecret: com.CommitmentToSecret(),
	}
	msg := &SimplPedPopParticipantMsg{
		Com: com,
		Pop: pop,
	}
	return state, msg, shares, nil
}

// SimplPedPopCoordinatorStep aggregates the dealing messages of all n
// participants. It verifies every commitment shape and proof of
// possession, attributing failures to the offending participant index,
// and returns the broadcast message, the coordinator's view of the DKG
// output (without a secret share), and the transcript fragment.
func SimplPedPopCoordinatorStep(pmsgs []*SimplPedPopParticipantMsg, t, n int) (*SimplPedPopCoordinatorMsg, *DKGOutput, []byte, error) {
	if n < 1 || n > MaxParticipants {
		return nil, nil, nil, ErrInvalidParticipantCount
	}
	if t < MinThreshold || t > n {
		return nil, nil, nil, ErrInvalidThreshold
	}
	if len(pmsgs) != n {
		return nil, nil, nil, ErrCountMismatch
	}

	comsToSecrets := make([]*secp256k1.PublicKey, n)
	pops := make([][]byte, n)
	for i, pmsg := range pmsgs {
		if pmsg == nil || pmsg.Com == nil {
			return nil, nil, nil, NewFaultyParticipantError(i, "missing dealing message")
		}
		// A commitment with a different coefficient count would silently
		// change the effective threshold.
		if pmsg.Com.Threshold() != t {
			return nil, nil, nil, NewFaultyParticipantError(i, "commitment has wrong number of coefficients")
		}
		comToSecret := pmsg.Com.CommitmentToSecret()
		if comToSecret == nil {
			return nil, nil, nil, NewFaultyParticipantError(i, "identity commitment to secret")
		}
		if !verifyPossession(pmsg.Pop, comToSecret, i) {
			return nil, nil, nil, NewFaultyParticipantError(i, "invalid proof of possession")
		}
		comsToSecrets[i] = comToSecret
		pops[i] = pmsg.Pop
	}

	sumNonconst := make([]*secp256k1.PublicKey, t-1)
	for j := 0; j < t-1; j++ {
		terms := make([]*secp256k1.PublicKey, n)
		for i, pmsg := range pmsgs {
			terms[i] = pmsg.Com.NonconstTerms()[j]
		}
		sumNonconst[j] = pointSum(terms...)
	}

	cmsg := &SimplPedPopCoordinatorMsg{
		ComsToSecrets:          comsToSecrets,
		SumComsToNonconstTerms: sumNonconst,
		Pops:                   pops,
	}

	combined := cmsg.combinedCommitment()
	if combined == nil {
		return nil, nil, nil, ErrIdentityElementInCommitment
	}
	output, err := outputFromCommitment(combined, nil, n)
	if err != nil {
		return nil, nil, nil, err
	}

	Logger.Debug().Int("n", n).Int("t", t).Msg("aggregated dealing messages")
	return cmsg, output, cmsg.eqInputFragment(), nil
}

// SimplPedPopParticipantStep2 finalizes the dealing for one participant.
// secshareSum is the sum of the shares all n dealers addressed to this
// participant. On success it returns the participant's DKG output and
// the transcript fragment.
func SimplPedPopParticipantStep2(state *SimplPedPopParticipantState, cmsg *SimplPedPopCoordinatorMsg, secshareSum Scalar) (*DKGOutput, []byte, error) {
	if cmsg == nil {
		return nil, nil, NewFaultyCoordinatorError("missing coordinator message")
	}
	if len(cmsg.ComsToSecrets) != state.N || len(cmsg.Pops) != state.N ||
		len(cmsg.SumComsToNonconstTerms) != state.T-1 {
		return nil, nil, NewFaultyCoordinatorError("malformed coordinator message")
	}

	reported := cmsg.ComsToSecrets[state.Idx]
	if reported == nil || !constantTimeEqual(reported.SerializeCompressed(), state.ComToSecret.SerializeCompressed()) {
		return nil, nil, NewFaultyCoordinatorError("coordinator replied with wrong commitment to secret")
	}

	for i, comToSecret := range cmsg.ComsToSecrets {
		if comToSecret == nil {
			return nil, nil, NewFaultyParticipantError(i, "identity commitment to secret")
		}
		if !verifyPossession(cmsg.Pops[i], comToSecret, i) {
			return nil, nil, NewFaultyParticipantError(i, "invalid proof of possession")
		}
	}

	combined := cmsg.combinedCommitment()
	if combined == nil {
		return nil, nil, ErrIdentityElementInCommitment
	}

	pubshare, err := combined.Pubshare(state.Idx)
	if err != nil {
		return nil, nil, err
	}
	if !VerifySecshare(secshareSum, pubshare) {
		// Some dealer sent a share inconsistent with its commitment, or
		// the coordinator tampered with the aggregate; the run cannot
		// distinguish the two without an investigation round.
		return nil, nil, ErrShareVerificationFailed
	}

	output, err := outputFromCommitment(combined, &secshareSum, state.N)
	if err != nil {
		return nil, nil, err
	}

	Logger.Debug().Int("idx", state.Idx).Msg("dealing finalized")
	return output, cmsg.eqInputFragment(), nil
}

// outputFromCommitment derives the DKG output for all n participants from
// the combined commitment. secshare is nil for the coordinator.
func outputFromCommitment(combined *VSSCommitment, secshare *Scalar, n int) (*DKGOutput, error) {
	pubshares := make([]*secp256k1.PublicKey, n)
	for i := 0; i < n; i++ {
		pubshare, err := combined.Pubshare(i)
		if err != nil {
			return nil, err
		}
		pubshares[i] = pubshare
	}
	return &DKGOutput{
		Secshare:        secshare,
		ThresholdPubkey: combined.CommitmentToSecret(),
		Pubshares:       pubshares,
	}, nil
}
