// SPDX-FileCopyrightText: © 2025 Shimworks
// SPDX-License-Identifier: MIT

//go:build windows

package launcher

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32                  = windows.NewLazySystemDLL("kernel32.dll")
	shell32                   = windows.NewLazySystemDLL("shell32.dll")
	procFreeConsole           = kernel32.NewProc("FreeConsole")
	procSetConsoleCtrlHandler = kernel32.NewProc("SetConsoleCtrlHandler")
	procSHGetFileInfoW        = shell32.NewProc("SHGetFileInfoW")
	procShellExecuteExW       = shell32.NewProc("ShellExecuteExW")
)

const (
	seeMaskNoCloseProcess = 0x00000040
	shgfiExeType          = 0x00002000
	swShow                = 5
)

// shellExecuteInfo mirrors SHELLEXECUTEINFOW.
type shellExecuteInfo struct {
	cbSize         uint32
	fMask          uint32
	hwnd           windows.Handle
	lpVerb         *uint16
	lpFile         *uint16
	lpParameters   *uint16
	lpDirectory    *uint16
	nShow          int32
	hInstApp       windows.Handle
	lpIDList       uintptr
	lpClass        *uint16
	hkeyClass      windows.Handle
	dwHotKey       uint32
	hIconOrMonitor windows.Handle
	hProcess       windows.Handle
}

// shFileInfo mirrors SHFILEINFOW.
type shFileInfo struct {
	hIcon         windows.Handle
	iIcon         int32
	dwAttributes  uint32
	szDisplayName [260]uint16
	szTypeName    [80]uint16
}

func shellExecuteEx(info *shellExecuteInfo) error {
	info.cbSize = uint32(unsafe.Sizeof(*info))

	ret, _, err := procShellExecuteExW.Call(uintptr(unsafe.Pointer(info)))
	if ret == 0 {
		return err
	}
	return nil
}

// shGetFileInfoExeType queries the executable-type word of the given file.
// A zero return means the query failed.
func shGetFileInfoExeType(path *uint16) uintptr {
	var info shFileInfo

	ret, _, _ := procSHGetFileInfoW.Call(
		uintptr(unsafe.Pointer(path)),
		uintptr(uint32(0xffffffff)),
		uintptr(unsafe.Pointer(&info)),
		unsafe.Sizeof(info),
		shgfiExeType,
	)
	return ret
}

func setConsoleCtrlHandler(handler uintptr) error {
	ret, _, err := procSetConsoleCtrlHandler.Call(handler, 1)
	if ret == 0 {
		return err
	}
	return nil
}

func freeConsole() error {
	ret, _, err := procFreeConsole.Call()
	if ret == 0 {
		return err
	}
	return nil
}
