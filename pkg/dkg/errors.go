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

// Package dkg implements a two-round distributed key generation protocol
// for threshold Schnorr signing over secp256k1. Participants deal
// verifiable secret shares through an untrusted coordinator; shares are
// delivered under a multi-recipient encryption layer so the coordinator
// can aggregate them without learning any secret material, and every
// failure is attributed to the misbehaving party where possible.
package dkg

import (
	"errors"
	"fmt"
)

// Validation constants for session parameters.
const (
	// MinThreshold is the minimum allowed threshold value.
	MinThreshold = 1

	// MaxParticipants is the maximum allowed number of participants.
	// This prevents excessive memory allocation from hostile inputs.
	MaxParticipants = 65535
)

// Structural errors. These indicate that a caller supplied inconsistent
// inputs; they are not attributable to any protocol party.
var (
	// ErrInvalidThreshold indicates that the threshold value is invalid.
	// The threshold must satisfy MinThreshold <= t <= n.
	ErrInvalidThreshold = errors.New("dkg: invalid threshold")

	// ErrInvalidParticipantIndex indicates that a participant index is
	// out of the range [0, n).
	ErrInvalidParticipantIndex = errors.New("dkg: invalid participant index")

	// ErrInvalidParticipantCount indicates an invalid number of participants.
	ErrInvalidParticipantCount = errors.New("dkg: invalid participant count")

	// ErrCountMismatch indicates that two per-participant vectors that must
	// be index-aligned have different lengths.
	ErrCountMismatch = errors.New("dkg: mismatched vector lengths")

	// ErrInvalidSeed indicates that the seed has the wrong length.
	ErrInvalidSeed = errors.New("dkg: invalid seed")

	// ErrInvalidRandomness indicates that the caller-supplied randomness
	// has the wrong length.
	ErrInvalidRandomness = errors.New("dkg: invalid randomness")

	// ErrEncryptionKeyMismatch indicates that enckeys[idx] is not the
	// encryption key derived from the caller's own decryption key.
	ErrEncryptionKeyMismatch = errors.New("dkg: own encryption key does not match enckeys[idx]")

	// ErrSessionConsumed indicates that a participant session state was
	// used for a second finalization attempt. Session state is single-use.
	ErrSessionConsumed = errors.New("dkg: session state already consumed")

	// ErrIndexOutOfRange indicates a recipient index beyond the pubnonce
	// vector during decryption. This is an integration bug, not a
	// protocol-level fault.
	ErrIndexOutOfRange = errors.New("dkg: recipient index out of range")
)

// Secret-sharing core errors for polynomial, VSS, and share operations.
var (
	// ErrInvalidPolynomial indicates that a polynomial has no coefficients
	// or invalid structure.
	ErrInvalidPolynomial = errors.New("dkg: invalid polynomial")

	// ErrInvalidCommitmentLength indicates that a serialized VSS commitment
	// has a length other than t * 33 bytes.
	ErrInvalidCommitmentLength = errors.New("dkg: invalid commitment length")

	// ErrMismatchedThreshold indicates that two VSS commitments have
	// different thresholds.
	ErrMismatchedThreshold = errors.New("dkg: mismatched threshold")

	// ErrIdentityElementInCommitment indicates that the constant-term
	// commitment is the identity element, which would correspond to a zero
	// secret and is rejected as a maliciously crafted input.
	ErrIdentityElementInCommitment = errors.New("dkg: identity element in commitment")

	// ErrShareVerificationFailed indicates that the summed secret share
	// does not match the public share derived from the summed commitments.
	// Either a participant or the coordinator deviated; the protocol run
	// must be aborted.
	ErrShareVerificationFailed = errors.New("dkg: secret share verification failed")

	// ErrInvalidMessageLength indicates that a serialized protocol message
	// has an incorrect length.
	ErrInvalidMessageLength = errors.New("dkg: invalid message length")

	// ErrZeroScalar indicates that a scalar is zero in a context where it
	// is not allowed.
	ErrZeroScalar = errors.New("dkg: zero scalar")

	// ErrInvalidPointEncoding indicates that a serialized group element
	// could not be parsed as a point on the curve.
	ErrInvalidPointEncoding = errors.New("dkg: invalid point encoding")

	// ErrInvalidScalarEncoding indicates that 32 serialized bytes are not
	// a canonical scalar, i.e. they exceed the group order.
	ErrInvalidScalarEncoding = errors.New("dkg: invalid scalar encoding")
)

// FaultyParticipantError reports an invalid contribution attributable to a
// specific participant. Index is 0-based and identifies the misbehaving
// party so a higher layer can exclude it and re-run the protocol.
type FaultyParticipantError struct {
	// Index is the index of the misbehaving participant.
	Index int
	// Reason describes the deviation.
	Reason string
}

// Error implements the error interface.
func (e *FaultyParticipantError) Error() string {
	return fmt.Sprintf("dkg: participant %d is faulty: %s", e.Index, e.Reason)
}

// NewFaultyParticipantError creates a new FaultyParticipantError.
func NewFaultyParticipantError(index int, reason string) *FaultyParticipantError {
	return &FaultyParticipantError{
		Index:  index,
		Reason: reason,
	}
}

// FaultyCoordinatorError reports an invalid contribution attributed to the
// coordinator, i.e. relay tampering or misrouting. No participant index is
// carried because the fault does not originate from a participant.
type FaultyCoordinatorError struct {
	Reason string
}

// Error implements the error interface.
func (e *FaultyCoordinatorError) Error() string {
	return fmt.Sprintf("dkg: coordinator is faulty: %s", e.Reason)
}

// NewFaultyCoordinatorError creates a new FaultyCoordinatorError.
func NewFaultyCoordinatorError(reason string) *FaultyCoordinatorError {
	return &FaultyCoordinatorError{
		Reason: reason,
	}
}
