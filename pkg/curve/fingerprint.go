// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package curve

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a stable identifier for the curve's identity and
// contents, used as the curve half of calculation-cache keys.
//
// # Description
//
// Hashes name, unit and every sample (NaN included, via its canonical bit
// pattern) with xxhash64. Two curves with identical mnemonic, unit and
// samples always fingerprint the same; any sample edit changes the digest.
//
// # Outputs
//
//   - string: 16-character lowercase hex digest.
func (c *Curve) Fingerprint() string {
	h := xxhash.New()
	_, _ = h.WriteString(c.name)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(c.unit)
	_, _ = h.Write([]byte{0})

	var buf [8]byte
	for _, v := range c.samples {
		bits := math.Float64bits(v)
		if math.IsNaN(v) {
			// Canonicalize NaN payloads so equal curves hash equal.
			bits = math.Float64bits(math.NaN())
		}
		binary.LittleEndian.PutUint64(buf[:], bits)
		_, _ = h.Write(buf[:])
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
