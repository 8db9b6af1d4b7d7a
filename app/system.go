package app

import (
	"runtime"

	"deedles.dev/wlui/command"
	"golang.org/x/sys/unix"
)

// systemInformation describes the machine. Fields that can't be found
// are left empty.
func systemInformation(adapter, backend string) command.Information {
	info := command.Information{
		CPUCores:        runtime.NumCPU(),
		GraphicsAdapter: adapter,
		GraphicsBackend: backend,
	}

	var uts unix.Utsname
	if err := unix.Uname(&uts); err == nil {
		info.SystemName = unix.ByteSliceToString(uts.Sysname[:])
		info.SystemKernel = unix.ByteSliceToString(uts.Release[:])
		info.SystemVersion = unix.ByteSliceToString(uts.Version[:])
		info.Hostname = unix.ByteSliceToString(uts.Nodename[:])
	}

	var si unix.Sysinfo_t
	if err := unix.Sysinfo(&si); err == nil {
		unit := max(uint64(si.Unit), 1)
		info.MemoryTotal = uint64(si.Totalram) * unit
		info.MemoryFree = uint64(si.Freeram) * unit
	}

	return info
}
