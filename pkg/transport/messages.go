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

// Package transport carries serialized DKG protocol messages between
// participants and the coordinator. Envelopes are CBOR encoded; the
// payloads are the protocol's own fixed-width byte encodings, which the
// transport never interprets.
package transport

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

// MessageType identifies the protocol message carried by an envelope.
type MessageType uint8

const (
	// TypeRound1 is a participant's round 1 message to the coordinator.
	TypeRound1 MessageType = iota + 1

	// TypeCoordinatorBroadcast is the coordinator's message to all
	// participants.
	TypeCoordinatorBroadcast

	// TypeSecshareDelivery carries the aggregated encrypted share
	// addressed to a single participant.
	TypeSecshareDelivery
)

// Envelope is the transport frame wrapping a protocol message.
type Envelope struct {
	// SessionID identifies the DKG run; envelopes from other sessions are
	// rejected by the relay.
	SessionID string `cbor:"session_id"`

	// Type is the protocol message type of the payload.
	Type MessageType `cbor:"type"`

	// SenderIdx is the participant index of the sender, or the recipient
	// index for TypeSecshareDelivery.
	SenderIdx int `cbor:"sender_idx"`

	// Payload is the protocol message in its wire encoding.
	Payload []byte `cbor:"payload"`
}

var encOpts = cbor.CoreDetEncOptions()

// Marshal serializes the envelope with deterministic CBOR encoding.
func (e *Envelope) Marshal() ([]byte, error) {
	mode, err := encOpts.EncMode()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create CBOR encoder")
	}
	data, err := mode.Marshal(e)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal envelope")
	}
	return data, nil
}

// UnmarshalEnvelope deserializes an envelope.
func UnmarshalEnvelope(data []byte) (*Envelope, error) {
	var e Envelope
	if err := cbor.Unmarshal(data, &e); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal envelope")
	}
	return &e, nil
}
