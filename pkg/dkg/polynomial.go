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

// Polynomial represents a scalar polynomial over the secp256k1 group order.
//
// A polynomial f of degree at most t-1 is represented by t coefficients:
// f(x) = coeffs[0] + coeffs[1]*x + ... + coeffs[t-1]*x^(t-1)
//
// The constant term coeffs[0] is the shared secret; evaluating at zero is
// therefore forbidden.
type Polynomial struct {
	coeffs []Scalar
}

// NewPolynomial creates a new polynomial with the given coefficients,
// ordered from the constant term to the highest degree term.
//
// Returns ErrInvalidPolynomial if coeffs is empty.
func NewPolynomial(coeffs []Scalar) (*Polynomial, error) {
	if len(coeffs) == 0 {
		return nil, ErrInvalidPolynomial
	}
	copied := make([]Scalar, len(coeffs))
	copy(copied, coeffs)
	return &Polynomial{coeffs: copied}, nil
}

// Threshold returns the threshold value t (the number of coefficients).
func (p *Polynomial) Threshold() int {
	return len(p.coeffs)
}

// ConstantTerm returns the constant term f(0), the shared secret.
func (p *Polynomial) ConstantTerm() Scalar {
	return p.coeffs[0]
}

// Eval evaluates the polynomial at position x using Horner's method.
//
// Panics if x is zero: evaluating at zero reveals the secret. Use
// ConstantTerm for explicit access.
func (p *Polynomial) Eval(x Scalar) Scalar {
	if x.IsZero() {
		panic("Polynomial.Eval: evaluation at zero would reveal secret - use ConstantTerm()")
	}

	result := p.coeffs[len(p.coeffs)-1]
	for i := len(p.coeffs) - 2; i >= 0; i-- {
		result = result.Mul(x).Add(p.coeffs[i])
	}
	return result
}

// Zeroize clears the polynomial coefficients in place. The coefficients
// contain secret data and must not outlive the dealing step.
func (p *Polynomial) Zeroize() {
	if p == nil {
		return
	}
	zeroScalars(p.coeffs)
	p.coeffs = nil
}
