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
	"crypto/subtle"
	"encoding/binary"
)

// safeUint32 safely converts a non-negative int to uint32.
// Returns 0 if the input is negative or exceeds the uint32 range.
func safeUint32(n int) uint32 {
	if n < 0 || uint64(n) > uint64(^uint32(0)) {
		return 0
	}
	return uint32(n)
}

// be32 returns the 4-byte big-endian encoding of n.
func be32(n int) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, safeUint32(n))
	return b
}

// constantTimeEqual compares two byte slices in constant time.
func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// copyByteSlices deep-copies a vector of byte slices so session state
// cannot be mutated through the caller's slices.
func copyByteSlices(in [][]byte) [][]byte {
	out := make([][]byte, len(in))
	for i, b := range in {
		out[i] = make([]byte, len(b))
		copy(out[i], b)
	}
	return out
}
