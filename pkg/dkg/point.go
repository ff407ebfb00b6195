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

// Point arithmetic helpers over secp256k1. Public keys are the affine
// representation used at package boundaries; all arithmetic happens in
// Jacobian coordinates.

// scalarBaseMult computes s*G as an affine public key.
// Returns nil if s is zero (the result would be the point at infinity,
// which has no compressed encoding).
func scalarBaseMult(s Scalar) *secp256k1.PublicKey {
	if s.IsZero() {
		return nil
	}
	var p secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&s.v, &p)
	p.ToAffine()
	return secp256k1.NewPublicKey(&p.X, &p.Y)
}

// scalarMult computes s*P as an affine public key. Returns nil if s is
// zero; a nonzero scalar times a valid public key is never the point at
// infinity because the group has prime order.
func scalarMult(s Scalar, pub *secp256k1.PublicKey) *secp256k1.PublicKey {
	if s.IsZero() {
		return nil
	}
	var p, r secp256k1.JacobianPoint
	pub.AsJacobian(&p)
	secp256k1.ScalarMultNonConst(&s.v, &p, &r)
	r.ToAffine()
	return secp256k1.NewPublicKey(&r.X, &r.Y)
}

// pointSum sums the given points, returning nil if the sum is the point
// at infinity or the input is empty.
func pointSum(points ...*secp256k1.PublicKey) *secp256k1.PublicKey {
	var acc secp256k1.JacobianPoint
	for _, pub := range points {
		if pub == nil {
			continue
		}
		var p, r secp256k1.JacobianPoint
		pub.AsJacobian(&p)
		secp256k1.AddNonConst(&acc, &p, &r)
		acc = r
	}
	if acc.Z.Normalize().IsZero() {
		return nil
	}
	acc.ToAffine()
	return secp256k1.NewPublicKey(&acc.X, &acc.Y)
}
