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

// ScalarSize is the serialized size of a Scalar in bytes (big-endian).
const ScalarSize = 32

// Scalar is a field element modulo the secp256k1 group order.
//
// Scalar is an immutable value type: arithmetic methods return new values
// and never modify the receiver. The zero value is the zero scalar.
type Scalar struct {
	v secp256k1.ModNScalar
}

// NewScalarFromBytes interprets b as a 32-byte big-endian integer and
// returns it as a Scalar. The second return value is false if the
// integer is not canonical, i.e. it is >= the group order.
func NewScalarFromBytes(b [ScalarSize]byte) (Scalar, bool) {
	var s Scalar
	if s.v.SetBytes(&b) != 0 {
		return Scalar{}, false
	}
	return s, true
}

// scalarFromHash reduces a 32-byte hash output modulo the group order.
func scalarFromHash(h [32]byte) Scalar {
	var s Scalar
	s.v.SetBytes(&h)
	return s
}

// scalarFromUint32 converts a small non-negative integer to a Scalar.
func scalarFromUint32(n uint32) Scalar {
	var s Scalar
	s.v.SetInt(n)
	return s
}

// Add returns s + o mod the group order.
func (s Scalar) Add(o Scalar) Scalar {
	r := s.v
	r.Add(&o.v)
	return Scalar{v: r}
}

// Sub returns s - o mod the group order.
func (s Scalar) Sub(o Scalar) Scalar {
	n := o.v
	n.Negate()
	n.Add(&s.v)
	return Scalar{v: n}
}

// Negate returns -s mod the group order.
func (s Scalar) Negate() Scalar {
	r := s.v
	r.Negate()
	return Scalar{v: r}
}

// Mul returns s * o mod the group order.
func (s Scalar) Mul(o Scalar) Scalar {
	r := s.v
	r.Mul(&o.v)
	return Scalar{v: r}
}

// Equals reports whether two scalars are equal. The comparison is
// constant time.
func (s Scalar) Equals(o Scalar) bool {
	return s.v.Equals(&o.v)
}

// IsZero reports whether the scalar is zero.
func (s Scalar) IsZero() bool {
	return s.v.IsZero()
}

// Bytes returns the 32-byte big-endian encoding of the scalar.
func (s Scalar) Bytes() [ScalarSize]byte {
	return s.v.Bytes()
}

// ScalarSum returns the sum of all given scalars mod the group order.
// The sum of no scalars is zero.
func ScalarSum(scalars ...Scalar) Scalar {
	var acc secp256k1.ModNScalar
	for i := range scalars {
		acc.Add(&scalars[i].v)
	}
	return Scalar{v: acc}
}
