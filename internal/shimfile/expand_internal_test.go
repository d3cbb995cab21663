// SPDX-FileCopyrightText: © 2025 Shimworks
// SPDX-License-Identifier: MIT

package shimfile

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"
)

type envSourceMock struct {
	mock.Mock
}

func (m *envSourceMock) LookupEnv(name string) (string, bool) {
	args := m.Called(name)

	return args.String(0), args.Bool(1)
}

func newEnvSource(vars map[string]string) *envSourceMock {
	envMock := &envSourceMock{}
	for name, value := range vars {
		envMock.On("LookupEnv", name).Return(value, true)
	}
	envMock.On("LookupEnv", mock.Anything).Return("", false).Maybe()
	return envMock
}

var _ = Describe("expandEnvIn", func() {
	When("text contains no placeholder", func() {
		It("returns the text unchanged", func() {
			actual := expandEnvIn(`c:\tools\app.exe`, newEnvSource(nil))

			Expect(actual).To(Equal(`c:\tools\app.exe`))
		})
	})

	When("a referenced variable is defined", func() {
		It("replaces the placeholder including its delimiters", func() {
			env := newEnvSource(map[string]string{"ROOT": `c:\tools`})

			actual := expandEnvIn(`%ROOT%\app.exe`, env)

			Expect(actual).To(Equal(`c:\tools\app.exe`))
		})

		It("replaces multiple placeholders in one pass", func() {
			env := newEnvSource(map[string]string{"A": "1", "B": "2"})

			actual := expandEnvIn(`%A%-%B%`, env)

			Expect(actual).To(Equal(`1-2`))
		})

		It("does not re-scan the replacement text", func() {
			env := newEnvSource(map[string]string{"OUTER": "%INNER%", "INNER": "oops"})

			actual := expandEnvIn(`%OUTER%`, env)

			Expect(actual).To(Equal(`%INNER%`))
		})
	})

	When("a referenced variable is undefined", func() {
		It("leaves the placeholder completely verbatim", func() {
			actual := expandEnvIn(`%UNDEFINED%\app.exe`, newEnvSource(nil))

			Expect(actual).To(Equal(`%UNDEFINED%\app.exe`))
		})
	})

	When("text contains a double percent sign", func() {
		It("passes it through as literal", func() {
			env := newEnvSource(map[string]string{"A": "1"})

			actual := expandEnvIn(`100%% of %A%`, env)

			Expect(actual).To(Equal(`100%% of 1`))
		})
	})

	When("an opening percent sign has no closing one", func() {
		It("leaves the rest of the text untouched", func() {
			env := newEnvSource(map[string]string{"A": "1"})

			actual := expandEnvIn(`%A% at 100%`, env)

			Expect(actual).To(Equal(`1 at 100%`))
		})

		It("handles a trailing percent sign", func() {
			actual := expandEnvIn(`100%`, newEnvSource(nil))

			Expect(actual).To(Equal(`100%`))
		})
	})
})
