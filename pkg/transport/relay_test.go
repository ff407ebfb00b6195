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

package transport

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quapka/bip-frost-dkg/pkg/dkg"
)

const testSession = "test-session"

type testParty struct {
	deckey *dkg.DecryptionKey
	state  *dkg.EncPedPopParticipantState
}

func fixedBytes(fill byte, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = fill
	}
	return b
}

// setupSession runs round 1 for n participants and returns their states
// together with the serialized envelopes they would send.
func setupSession(t *testing.T, threshold, n int) ([]*testParty, [][]byte, [][]byte) {
	t.Helper()

	parties := make([]*testParty, n)
	enckeys := make([][]byte, n)
	for i := 0; i < n; i++ {
		key := fixedBytes(byte(0x20+i), 32)
		key[0] = 0
		deckey := dkg.DecryptionKeyFromBytes(key)
		parties[i] = &testParty{deckey: deckey}
		enckeys[i] = dkg.EncryptionKey(deckey)
	}

	envelopes := make([][]byte, n)
	for i := 0; i < n; i++ {
		state, msg, err := dkg.EncPedPopParticipantStep1(
			fixedBytes(byte(0x40+i), dkg.SeedSize),
			parties[i].deckey, enckeys, threshold, i,
			fixedBytes(byte(0x80+i), dkg.RandomnessSize),
		)
		require.NoError(t, err)
		parties[i].state = state

		env := &Envelope{
			SessionID: testSession,
			Type:      TypeRound1,
			SenderIdx: i,
			Payload:   msg.Bytes(),
		}
		envelopes[i], err = env.Marshal()
		require.NoError(t, err)
	}
	return parties, envelopes, enckeys
}

func TestEnvelopeRoundTrip(t *testing.T) {
	env := &Envelope{
		SessionID: "s1",
		Type:      TypeRound1,
		SenderIdx: 2,
		Payload:   []byte{0xde, 0xad},
	}
	data, err := env.Marshal()
	require.NoError(t, err)

	got, err := UnmarshalEnvelope(data)
	require.NoError(t, err)
	require.Equal(t, env, got)
}

func TestRelayFullSession(t *testing.T) {
	const threshold, n = 2, 3
	parties, envelopes, enckeys := setupSession(t, threshold, n)

	relay, err := NewRelay(testSession, threshold, enckeys)
	require.NoError(t, err)

	for i, data := range envelopes {
		complete, err := relay.Submit(data)
		require.NoError(t, err)
		require.Equal(t, i == n-1, complete)
	}

	broadcast, deliveries, coordEq, coordOutput, err := relay.Aggregate()
	require.NoError(t, err)
	require.Len(t, deliveries, n)
	require.Nil(t, coordOutput.Secshare)

	bEnv, err := UnmarshalEnvelope(broadcast)
	require.NoError(t, err)
	require.Equal(t, TypeCoordinatorBroadcast, bEnv.Type)
	cmsg, err := dkg.ParseEncPedPopCoordinatorMsg(bEnv.Payload, threshold, n)
	require.NoError(t, err)

	for i, party := range parties {
		dEnv, err := UnmarshalEnvelope(deliveries[i])
		require.NoError(t, err)
		require.Equal(t, TypeSecshareDelivery, dEnv.Type)
		require.Equal(t, i, dEnv.SenderIdx)

		var sb [dkg.ScalarSize]byte
		copy(sb[:], dEnv.Payload)
		encSecshare, ok := dkg.NewScalarFromBytes(sb)
		require.True(t, ok)

		out, eq, err := dkg.EncPedPopParticipantStep2(party.state, party.deckey, cmsg, encSecshare)
		require.NoError(t, err)
		require.Equal(t, coordEq, eq)
		require.Equal(t,
			coordOutput.ThresholdPubkey.SerializeCompressed(),
			out.ThresholdPubkey.SerializeCompressed())
	}
}

func TestRelayRejectsDuplicateSubmission(t *testing.T) {
	const threshold, n = 2, 3
	_, envelopes, enckeys := setupSession(t, threshold, n)

	relay, err := NewRelay(testSession, threshold, enckeys)
	require.NoError(t, err)

	_, err = relay.Submit(envelopes[0])
	require.NoError(t, err)
	_, err = relay.Submit(envelopes[0])
	require.Error(t, err)
}

func TestRelayRejectsForeignSession(t *testing.T) {
	const threshold, n = 2, 3
	_, envelopes, enckeys := setupSession(t, threshold, n)

	relay, err := NewRelay("another-session", threshold, enckeys)
	require.NoError(t, err)

	_, err = relay.Submit(envelopes[0])
	require.Error(t, err)
}

func TestRelayRejectsEarlyAggregate(t *testing.T) {
	const threshold, n = 2, 3
	_, envelopes, enckeys := setupSession(t, threshold, n)

	relay, err := NewRelay(testSession, threshold, enckeys)
	require.NoError(t, err)
	_, err = relay.Submit(envelopes[0])
	require.NoError(t, err)

	_, _, _, _, err = relay.Aggregate()
	require.Error(t, err)
}

func TestRelayRejectsMalformedPayload(t *testing.T) {
	const threshold, n = 2, 3
	_, _, enckeys := setupSession(t, threshold, n)

	relay, err := NewRelay(testSession, threshold, enckeys)
	require.NoError(t, err)

	env := &Envelope{
		SessionID: testSession,
		Type:      TypeRound1,
		SenderIdx: 0,
		Payload:   []byte{0x01, 0x02},
	}
	data, err := env.Marshal()
	require.NoError(t, err)

	_, err = relay.Submit(data)
	require.Error(t, err)
}
