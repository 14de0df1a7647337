// Copyright (C) 2025 Lithoscope Authors (maintainers@lithoscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package calc

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ParameterFingerprint digests the parameter fields relevant to one
// calculation type.
//
// # Description
//
// Only the watched fields of the type participate, so editing a porosity
// parameter never changes the shale-volume fingerprint. The digest is the
// parameter half of calculation-cache keys: equal watched fields always
// produce equal fingerprints.
//
// # Outputs
//
//   - string: 16-character lowercase hex digest.
func ParameterFingerprint(t Type, p Parameters) string {
	h := xxhash.New()
	_, _ = h.WriteString(string(t))
	for _, field := range WatchedFields(t) {
		value, _ := p.Field(field)
		_, _ = h.WriteString(field)
		_, _ = h.Write([]byte{'='})
		_, _ = h.WriteString(fmt.Sprintf("%v", value))
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
