// SPDX-FileCopyrightText: © 2025 Shimworks
// SPDX-License-Identifier: MIT

package shimfile_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/shimworks/shim/internal/shimfile"
)

func writeSidecar(lines ...string) string {
	sidecarPath := filepath.Join(GinkgoT().TempDir(), "app.shim")
	content := strings.Join(lines, "\r\n") + "\r\n"

	Expect(os.WriteFile(sidecarPath, []byte(content), 0o644)).To(Succeed())

	return sidecarPath
}

// utf16le encodes ASCII text as UTF-16 little-endian without BOM.
func utf16le(text string) []byte {
	encoded := make([]byte, 0, len(text)*2)
	for _, b := range []byte(text) {
		encoded = append(encoded, b, 0)
	}
	return encoded
}

var _ = Describe("Locate", func() {
	It("swaps the executable extension for the sidecar extension", func() {
		sidecarPath, err := shimfile.Locate(`c:\tools\bin\kubectl.exe`)

		Expect(err).ToNot(HaveOccurred())
		Expect(sidecarPath).To(Equal(`c:\tools\bin\kubectl.shim`))
	})

	It("appends the sidecar extension when the executable has none", func() {
		sidecarPath, err := shimfile.Locate(`c:\tools\bin\kubectl`)

		Expect(err).ToNot(HaveOccurred())
		Expect(sidecarPath).To(Equal(`c:\tools\bin\kubectl.shim`))
	})

	It("rejects executable paths at or beyond the Win32 path limit", func() {
		longPath := `c:\` + strings.Repeat("a", shimfile.MaxPath) + `.exe`

		_, err := shimfile.Locate(longPath)

		Expect(err).To(MatchError(shimfile.ErrPathTooLong))
	})
})

var _ = Describe("Parse", func() {
	It("yields a config without target path when the sidecar is missing", func() {
		config := shimfile.Parse(filepath.Join(GinkgoT().TempDir(), "missing.shim"))

		Expect(config.HasPath()).To(BeFalse())
	})

	It("reads target path, args and env vars", func() {
		sidecarPath := writeSidecar(
			`path = c:\tools\app\app.exe`,
			`args = --serve`,
			`APP_HOME = c:\tools\app`)

		config := shimfile.Parse(sidecarPath)

		Expect(config.Path).To(Equal(`c:\tools\app\app.exe`))
		Expect(config.Args).To(Equal(`--serve`))
		Expect(config.EnvVars).To(ConsistOf(shimfile.EnvVar{Name: "APP_HOME", Value: `c:\tools\app`}))
	})

	It("quotes a target path containing spaces", func() {
		sidecarPath := writeSidecar(`path = c:\program files\app\app.exe`)

		config := shimfile.Parse(sidecarPath)

		Expect(config.Path).To(Equal(`"c:\program files\app\app.exe"`))
	})

	It("leaves a pre-quoted target path untouched", func() {
		sidecarPath := writeSidecar(`path = "c:\program files\app\app.exe"`)

		config := shimfile.Parse(sidecarPath)

		Expect(config.Path).To(Equal(`"c:\program files\app\app.exe"`))
	})

	It("lets the last occurrence of the target path win", func() {
		sidecarPath := writeSidecar(
			`path = c:\old\app.exe`,
			`path = c:\new\app.exe`)

		config := shimfile.Parse(sidecarPath)

		Expect(config.Path).To(Equal(`c:\new\app.exe`))
	})

	It("expands env placeholders in the target path", func() {
		GinkgoT().Setenv("SHIMTEST_ROOT", `c:\tools`)
		sidecarPath := writeSidecar(`path = %SHIMTEST_ROOT%\app.exe`)

		config := shimfile.Parse(sidecarPath)

		Expect(config.Path).To(Equal(`c:\tools\app.exe`))
	})

	It("replaces the first dir placeholder in args with the sidecar's directory", func() {
		sidecarPath := writeSidecar(`args = --config %~dp0cfg.yaml --log %~dp0log`)

		config := shimfile.Parse(sidecarPath)

		dir := filepath.Dir(sidecarPath)
		Expect(config.Args).To(Equal(`--config ` + dir + `cfg.yaml --log %~dp0log`))
	})

	It("preserves order and duplicates of env vars", func() {
		sidecarPath := writeSidecar(
			`FOO = first`,
			`BAR = middle`,
			`FOO = second`)

		config := shimfile.Parse(sidecarPath)

		Expect(config.EnvVars).To(Equal([]shimfile.EnvVar{
			{Name: "FOO", Value: "first"},
			{Name: "BAR", Value: "middle"},
			{Name: "FOO", Value: "second"},
		}))
	})

	It("skips lines without separator and lines with empty name", func() {
		sidecarPath := writeSidecar(
			`this is no key value pair`,
			` = orphaned value`,
			``,
			`path = c:\tools\app.exe`)

		config := shimfile.Parse(sidecarPath)

		Expect(config.Path).To(Equal(`c:\tools\app.exe`))
		Expect(config.EnvVars).To(BeEmpty())
	})

	It("reads a UTF-8 sidecar with BOM", func() {
		sidecarPath := filepath.Join(GinkgoT().TempDir(), "app.shim")
		content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("path = c:\\tools\\app.exe\r\n")...)
		Expect(os.WriteFile(sidecarPath, content, 0o644)).To(Succeed())

		config := shimfile.Parse(sidecarPath)

		Expect(config.Path).To(Equal(`c:\tools\app.exe`))
	})

	It("reads a UTF-16 sidecar with BOM", func() {
		sidecarPath := filepath.Join(GinkgoT().TempDir(), "app.shim")
		content := append([]byte{0xFF, 0xFE}, utf16le("path = c:\\tools\\app.exe\r\n")...)
		Expect(os.WriteFile(sidecarPath, content, 0o644)).To(Succeed())

		config := shimfile.Parse(sidecarPath)

		Expect(config.Path).To(Equal(`c:\tools\app.exe`))
	})
})

var _ = Describe("Write", func() {
	It("round-trips through Parse", func() {
		sidecarPath := filepath.Join(GinkgoT().TempDir(), "app.shim")
		envVars := []shimfile.EnvVar{
			{Name: "APP_HOME", Value: `c:\tools\app`},
			{Name: "APP_MODE", Value: "production"},
		}

		Expect(shimfile.Write(sidecarPath, `c:\tools\app\app.exe`, `--serve`, envVars)).To(Succeed())

		config := shimfile.Parse(sidecarPath)

		Expect(config.Path).To(Equal(`c:\tools\app\app.exe`))
		Expect(config.Args).To(Equal(`--serve`))
		Expect(config.EnvVars).To(Equal(envVars))
	})

	It("omits the args line when the template is empty", func() {
		content := shimfile.Format(`c:\tools\app.exe`, "", nil)

		Expect(content).To(Equal("path = c:\\tools\\app.exe\r\n"))
	})
})
