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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaggedHashMatchesManualConstruction(t *testing.T) {
	tag := "test tag"
	msg := []byte("message")

	tagHash := sha256.Sum256([]byte(tag))
	h := sha256.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	h.Write(msg)
	var want [32]byte
	copy(want[:], h.Sum(nil))

	got := taggedHash(tag, msg)
	require.Equal(t, want, got)
}

func TestTaggedHashChunkingIsIrrelevant(t *testing.T) {
	// The hash runs over the concatenation, so how the caller splits the
	// message must not matter.
	a := taggedHash("t", []byte("hello"), []byte("world"))
	b := taggedHash("t", []byte("helloworld"))
	require.Equal(t, a, b)
}

func TestTaggedHashDomainSeparation(t *testing.T) {
	msg := []byte("same message")
	a := taggedHash("tag one", msg)
	b := taggedHash("tag two", msg)
	require.NotEqual(t, a, b)

	// The DKG variant prefixes every tag, so even an identical tag string
	// lands in a different domain than the plain construction.
	c := taggedHash("tag one", msg)
	d := taggedHashDKG("tag one", msg)
	require.NotEqual(t, c, d)
}

func TestPRFSeparatesSeedsAndTags(t *testing.T) {
	seed1 := make([]byte, SeedSize)
	seed2 := make([]byte, SeedSize)
	seed2[0] = 1

	a := prf(seed1, "tag", []byte("extra"))
	b := prf(seed2, "tag", []byte("extra"))
	c := prf(seed1, "other tag", []byte("extra"))
	d := prf(seed1, "tag", []byte("other extra"))

	require.NotEqual(t, a, b)
	require.NotEqual(t, a, c)
	require.NotEqual(t, a, d)

	// Deterministic for fixed inputs.
	require.Equal(t, a, prf(seed1, "tag", []byte("extra")))
}
