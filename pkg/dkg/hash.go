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
	"crypto/sha256"
)

// Domain separation prefix for all hash derivations in this protocol.
// Every tag is namespaced under this prefix so that hash outputs cannot
// collide with other protocols using the same tagged-hash construction.
const domainPrefix = "BIP DKG/"

// taggedHash computes the BIP-340 style tagged hash
// sha256(sha256(tag) || sha256(tag) || msg...).
func taggedHash(tag string, msg ...[]byte) [32]byte {
	tagHash := sha256.Sum256([]byte(tag))
	h := sha256.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	for _, m := range msg {
		h.Write(m)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// taggedHashDKG computes a tagged hash with the protocol's domain prefix.
func taggedHashDKG(tag string, msg ...[]byte) [32]byte {
	return taggedHash(domainPrefix+tag, msg...)
}

// prf is a keyed pseudorandom function built from the tagged hash. The seed
// is the key; the tag separates the different derivations that share a seed.
func prf(seed []byte, tag string, extraInput ...[]byte) [32]byte {
	msg := make([][]byte, 0, len(extraInput)+1)
	msg = append(msg, seed)
	msg = append(msg, extraInput...)
	return taggedHashDKG(tag, msg...)
}
