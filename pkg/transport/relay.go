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
	"sync"

	"github.com/pkg/errors"

	"github.com/quapka/bip-frost-dkg/pkg/dkg"
)

// Relay is an in-process coordinator transport. Participants submit
// their round 1 envelopes; once all n have arrived, Aggregate runs the
// coordinator step and produces the broadcast envelope plus one private
// delivery envelope per participant.
//
// The relay is untrusted in the protocol sense: it sees only encrypted
// shares and public values. It is safe for concurrent use.
type Relay struct {
	mu        sync.Mutex
	sessionID string
	t         int
	enckeys   [][]byte
	pmsgs     []*dkg.EncPedPopParticipantMsg
	received  int
	done      bool
}

// NewRelay creates a relay for a session with the given threshold and
// participant encryption keys.
func NewRelay(sessionID string, t int, enckeys [][]byte) (*Relay, error) {
	n := len(enckeys)
	if n < 1 {
		return nil, errors.New("no participants")
	}
	if t < 1 || t > n {
		return nil, errors.Errorf("invalid threshold %d for %d participants", t, n)
	}
	return &Relay{
		sessionID: sessionID,
		t:         t,
		enckeys:   enckeys,
		pmsgs:     make([]*dkg.EncPedPopParticipantMsg, n),
	}, nil
}

// Submit accepts a serialized round 1 envelope from a participant.
// Returns true once all participants have submitted.
func (r *Relay) Submit(data []byte) (bool, error) {
	env, err := UnmarshalEnvelope(data)
	if err != nil {
		return false, err
	}
	if env.SessionID != r.sessionID {
		return false, errors.Errorf("envelope for session %q, relay serves %q", env.SessionID, r.sessionID)
	}
	if env.Type != TypeRound1 {
		return false, errors.Errorf("unexpected message type %d", env.Type)
	}

	n := len(r.enckeys)
	if env.SenderIdx < 0 || env.SenderIdx >= n {
		return false, errors.Errorf("sender index %d out of range", env.SenderIdx)
	}

	pmsg, err := dkg.ParseEncPedPopParticipantMsg(env.Payload, r.t, n)
	if err != nil {
		return false, errors.Wrapf(err, "participant %d sent a malformed round 1 message", env.SenderIdx)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return false, errors.New("session already aggregated")
	}
	if r.pmsgs[env.SenderIdx] != nil {
		return false, errors.Errorf("participant %d already submitted", env.SenderIdx)
	}
	r.pmsgs[env.SenderIdx] = pmsg
	r.received++
	return r.received == n, nil
}

// Aggregate runs the coordinator step over the collected messages.
//
// It returns the serialized broadcast envelope, one serialized delivery
// envelope per participant (deliveries[i] must reach participant i and
// no one else), the coordinator's equality-check transcript, and the
// coordinator's own view of the DKG output.
func (r *Relay) Aggregate() (broadcast []byte, deliveries [][]byte, eqInput []byte, output *dkg.DKGOutput, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.enckeys)
	if r.received != n {
		return nil, nil, nil, nil, errors.Errorf("have %d of %d round 1 messages", r.received, n)
	}
	if r.done {
		return nil, nil, nil, nil, errors.New("session already aggregated")
	}

	cmsg, output, eqInput, encSecshares, err := dkg.EncPedPopCoordinatorStep(r.pmsgs, r.t, r.enckeys)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	r.done = true

	broadcastEnv := &Envelope{
		SessionID: r.sessionID,
		Type:      TypeCoordinatorBroadcast,
		Payload:   cmsg.Bytes(),
	}
	broadcast, err = broadcastEnv.Marshal()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	deliveries = make([][]byte, n)
	for i, share := range encSecshares {
		b := share.Bytes()
		env := &Envelope{
			SessionID: r.sessionID,
			Type:      TypeSecshareDelivery,
			SenderIdx: i,
			Payload:   b[:],
		}
		deliveries[i], err = env.Marshal()
		if err != nil {
			return nil, nil, nil, nil, err
		}
	}

	return broadcast, deliveries, eqInput, output, nil
}
