// SPDX-FileCopyrightText: © 2025 Shimworks
// SPDX-License-Identifier: MIT

//go:build windows

package launcher

import (
	"fmt"
	"log/slog"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Job owns a kernel job object configured to kill its members when the job
// handle is closed. It exists purely to guarantee the child terminates if the
// shim process terminates unexpectedly; a missing job degrades gracefully.
type Job struct {
	handle windows.Handle
}

// NewKillOnCloseJob creates the job object and applies the kill-on-close and
// silent-breakaway limits.
func NewKillOnCloseJob() (*Job, error) {
	handle, err := windows.CreateJobObject(nil, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create job object: %w", err)
	}

	info := windows.JOBOBJECT_EXTENDED_LIMIT_INFORMATION{
		BasicLimitInformation: windows.JOBOBJECT_BASIC_LIMIT_INFORMATION{
			LimitFlags: windows.JOB_OBJECT_LIMIT_KILL_ON_JOB_CLOSE |
				windows.JOB_OBJECT_LIMIT_SILENT_BREAKAWAY_OK,
		},
	}

	if _, err := windows.SetInformationJobObject(
		handle,
		windows.JobObjectExtendedLimitInformation,
		uintptr(unsafe.Pointer(&info)),
		uint32(unsafe.Sizeof(info)),
	); err != nil {
		if closeErr := windows.CloseHandle(handle); closeErr != nil {
			slog.Warn("could not close job handle", "error", closeErr)
		}
		return nil, fmt.Errorf("could not configure job object limits: %w", err)
	}

	return &Job{handle: handle}, nil
}

func (j *Job) Assign(process windows.Handle) error {
	if err := windows.AssignProcessToJobObject(j.handle, process); err != nil {
		return fmt.Errorf("could not assign process to job object: %w", err)
	}
	return nil
}

// Close releases the job handle. With kill-on-close set this also terminates
// any still-running members.
func (j *Job) Close() {
	if j.handle == 0 {
		return
	}
	if err := windows.CloseHandle(j.handle); err != nil {
		slog.Warn("could not close job handle", "error", err)
	}
	j.handle = 0
}
