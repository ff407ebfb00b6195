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

// VSS implements verifiable secret sharing over a polynomial.
//
// A dealer shares the constant term of a polynomial f of degree t-1 among
// n participants:
//   - Any t participants can reconstruct the secret.
//   - Fewer than t participants learn nothing about the secret.
//   - The commitment lets every participant verify its share.
//
// Participant i receives f(i+1) as its secret share; f is never evaluated
// at zero.
type VSS struct {
	f *Polynomial
}

// GenerateVSS derives a VSS polynomial deterministically from a seed.
// coeffs[i] = H("simplpedpop coeffs", seed || i) reduced mod the group order.
func GenerateVSS(seed []byte, t int) (*VSS, error) {
	if t < MinThreshold {
		return nil, ErrInvalidThreshold
	}

	coeffs := make([]Scalar, t)
	for i := 0; i < t; i++ {
		coeffs[i] = scalarFromHash(prf(seed, "simplpedpop coeffs", be32(i)))
	}

	f, err := NewPolynomial(coeffs)
	if err != nil {
		return nil, err
	}
	zeroScalars(coeffs)
	return &VSS{f: f}, nil
}

// SecshareFor returns the secret share f(i+1) for participant i (0-based).
func (v *VSS) SecshareFor(i int) (Scalar, error) {
	if i < 0 {
		return Scalar{}, ErrInvalidParticipantIndex
	}
	x := scalarFromUint32(safeUint32(i) + 1)
	return v.f.Eval(x), nil
}

// Secshares returns the secret shares [f(1), ..., f(n)] for participants
// 0..n-1.
func (v *VSS) Secshares(n int) ([]Scalar, error) {
	if n <= 0 {
		return nil, ErrInvalidParticipantCount
	}
	shares := make([]Scalar, n)
	for i := 0; i < n; i++ {
		share, err := v.SecshareFor(i)
		if err != nil {
			return nil, err
		}
		shares[i] = share
	}
	return shares, nil
}

// Secret returns the shared secret f(0).
func (v *VSS) Secret() Scalar {
	return v.f.ConstantTerm()
}

// Commit returns the VSS commitment [f_0*G, f_1*G, ..., f_{t-1}*G].
func (v *VSS) Commit() *VSSCommitment {
	coeffs := make([]*secp256k1.PublicKey, v.f.Threshold())
	for i, c := range v.f.coeffs {
		coeffs[i] = scalarBaseMult(c)
	}
	return &VSSCommitment{Coefficients: coeffs}
}

// Zeroize clears the secret polynomial.
func (v *VSS) Zeroize() {
	if v == nil {
		return
	}
	v.f.Zeroize()
	v.f = nil
}

// VSSCommitment is a vector of curve points committing to the polynomial
// coefficients. It contains no secret data and is broadcast to all
// participants.
type VSSCommitment struct {
	// Coefficients are the commitments [a_0*G, a_1*G, ..., a_{t-1}*G].
	Coefficients []*secp256k1.PublicKey
}

// Threshold returns the threshold t (the number of coefficients).
func (c *VSSCommitment) Threshold() int {
	return len(c.Coefficients)
}

// CommitmentToSecret returns the commitment to the constant term, the
// public key corresponding to the dealer's shared secret.
func (c *VSSCommitment) CommitmentToSecret() *secp256k1.PublicKey {
	if len(c.Coefficients) == 0 {
		return nil
	}
	return c.Coefficients[0]
}

// NonconstTerms returns the commitments to the non-constant coefficients
// [a_1*G, ..., a_{t-1}*G].
func (c *VSSCommitment) NonconstTerms() []*secp256k1.PublicKey {
	if len(c.Coefficients) <= 1 {
		return nil
	}
	return c.Coefficients[1:]
}

// Pubshare computes the public share for participant i:
//
//	pubshare(i) = C_0 + (i+1)*C_1 + (i+1)^2*C_2 + ... + (i+1)^(t-1)*C_(t-1)
//
// This is the public key corresponding to the secret share f(i+1).
func (c *VSSCommitment) Pubshare(i int) (*secp256k1.PublicKey, error) {
	if i < 0 {
		return nil, ErrInvalidParticipantIndex
	}

	x := scalarFromUint32(safeUint32(i) + 1)
	terms := make([]*secp256k1.PublicKey, len(c.Coefficients))
	xPower := scalarFromUint32(1)
	for j, coeff := range c.Coefficients {
		terms[j] = scalarMult(xPower, coeff)
		xPower = xPower.Mul(x)
	}
	return pointSum(terms...), nil
}

// VerifySecshare verifies that secshare*G equals the given public share.
// The comparison is constant time.
func VerifySecshare(secshare Scalar, pubshare *secp256k1.PublicKey) bool {
	actual := scalarBaseMult(secshare)
	if actual == nil || pubshare == nil {
		return false
	}
	return constantTimeEqual(actual.SerializeCompressed(), pubshare.SerializeCompressed())
}

// Bytes serializes the commitment as t concatenated 33-byte compressed
// points.
func (c *VSSCommitment) Bytes() []byte {
	out := make([]byte, 0, len(c.Coefficients)*EncryptionKeySize)
	for _, p := range c.Coefficients {
		out = append(out, p.SerializeCompressed()...)
	}
	return out
}

// VSSCommitmentFromBytes deserializes a commitment of threshold t from
// t * 33 bytes. Every coefficient must decode as a valid curve point; the
// constant term must not be the identity.
func VSSCommitmentFromBytes(b []byte, t int) (*VSSCommitment, error) {
	if t < MinThreshold {
		return nil, ErrInvalidThreshold
	}
	if len(b) != t*EncryptionKeySize {
		return nil, ErrInvalidCommitmentLength
	}

	coeffs := make([]*secp256k1.PublicKey, t)
	for i := 0; i < t; i++ {
		p, err := secp256k1.ParsePubKey(b[i*EncryptionKeySize : (i+1)*EncryptionKeySize])
		if err != nil {
			return nil, err
		}
		coeffs[i] = p
	}
	return &VSSCommitment{Coefficients: coeffs}, nil
}
