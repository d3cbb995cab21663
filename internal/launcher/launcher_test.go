// SPDX-FileCopyrightText: © 2025 Shimworks
// SPDX-License-Identifier: MIT

package launcher_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/shimworks/shim/internal/launcher"
	"github.com/shimworks/shim/internal/shimfile"
)

var _ = Describe("BuildCommandLine", func() {
	It("joins target path and argument text with a single space", func() {
		cmdLine := launcher.BuildCommandLine(`"c:\program files\app\app.exe"`, `--serve --port 8080`)

		Expect(cmdLine).To(Equal(`"c:\program files\app\app.exe" --serve --port 8080`))
	})

	It("keeps the separator even without arguments", func() {
		cmdLine := launcher.BuildCommandLine(`c:\tools\app.exe`, ``)

		Expect(cmdLine).To(Equal(`c:\tools\app.exe `))
	})
})

var _ = Describe("InvocationTail", func() {
	When("the raw command line is unquoted", func() {
		It("returns everything after the program name", func() {
			tail := launcher.InvocationTail(`shim.exe --flag "a b"`, `shim.exe`)

			Expect(tail).To(Equal(` --flag "a b"`))
		})

		It("returns empty for an argument-less invocation", func() {
			tail := launcher.InvocationTail(`shim.exe`, `shim.exe`)

			Expect(tail).To(BeEmpty())
		})
	})

	When("the raw command line is quoted", func() {
		It("skips the surrounding quotes as well", func() {
			tail := launcher.InvocationTail(`"c:\my tools\shim.exe" --flag`, `c:\my tools\shim.exe`)

			Expect(tail).To(Equal(` --flag`))
		})

		It("returns empty for an argument-less invocation", func() {
			tail := launcher.InvocationTail(`"c:\my tools\shim.exe"`, `c:\my tools\shim.exe`)

			Expect(tail).To(BeEmpty())
		})
	})

	It("preserves the caller's exact quoting and spacing", func() {
		tail := launcher.InvocationTail(`shim.exe  -m "it's  spaced"`, `shim.exe`)

		Expect(tail).To(Equal(`  -m "it's  spaced"`))
	})
})

var _ = Describe("StripQuotes", func() {
	It("removes one pair of surrounding quotes", func() {
		Expect(launcher.StripQuotes(`"c:\program files\app.exe"`)).To(Equal(`c:\program files\app.exe`))
	})

	It("leaves unquoted paths untouched", func() {
		Expect(launcher.StripQuotes(`c:\tools\app.exe`)).To(Equal(`c:\tools\app.exe`))
	})

	It("leaves a lone quote untouched", func() {
		Expect(launcher.StripQuotes(`"`)).To(Equal(`"`))
	})
})

var _ = Describe("MergeEnviron", func() {
	It("appends variables that are not in the base environment", func() {
		base := []string{"PATH=c:\\windows", "TEMP=c:\\temp"}
		overrides := []shimfile.EnvVar{{Name: "APP_HOME", Value: "c:\\tools\\app"}}

		merged := launcher.MergeEnviron(base, overrides)

		Expect(merged).To(Equal([]string{"PATH=c:\\windows", "TEMP=c:\\temp", "APP_HOME=c:\\tools\\app"}))
	})

	It("overrides existing variables in place, matching names case-insensitively", func() {
		base := []string{"Path=c:\\windows", "TEMP=c:\\temp"}
		overrides := []shimfile.EnvVar{{Name: "PATH", Value: "c:\\tools"}}

		merged := launcher.MergeEnviron(base, overrides)

		Expect(merged).To(Equal([]string{"PATH=c:\\tools", "TEMP=c:\\temp"}))
	})

	It("applies duplicate overrides in order, so the last one wins", func() {
		base := []string{"FOO=base"}
		overrides := []shimfile.EnvVar{
			{Name: "FOO", Value: "first"},
			{Name: "FOO", Value: "second"},
		}

		merged := launcher.MergeEnviron(base, overrides)

		Expect(merged).To(Equal([]string{"FOO=second"}))
	})

	It("does not modify the base environment", func() {
		base := []string{"FOO=base"}

		launcher.MergeEnviron(base, []shimfile.EnvVar{{Name: "FOO", Value: "changed"}})

		Expect(base).To(Equal([]string{"FOO=base"}))
	})
})
