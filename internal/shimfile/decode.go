// SPDX-FileCopyrightText: © 2025 Shimworks
// SPDX-License-Identifier: MIT

package shimfile

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeSidecar normalizes the sidecar's encoding to UTF-8. Sidecar files are
// usually plain UTF-8, but tools on the platform also emit UTF-8 with BOM or
// UTF-16 with BOM; the BOM decides, absence of one means UTF-8.
func decodeSidecar(r io.Reader) io.Reader {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return transform.NewReader(r, decoder)
}
