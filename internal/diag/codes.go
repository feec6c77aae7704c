package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Directive scanning
	DirInfo          Code = 1000
	DirUnknown       Code = 1001 // recognized marker, unrecognized keyword
	DirMalformed     Code = 1002 // recognized keyword, invalid argument shape
	DirGuardedSwitch Code = 1003 // switch declaration behind a guard

	// Switch resolution
	SwInfo            Code = 2000
	SwDuplicateSwitch Code = 2001
	SwUnknownSwitch   Code = 2002

	// I/O
	IOLoadFileError Code = 3001

	// Observability
	ObsInfo    Code = 4000
	ObsTimings Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:       "Unknown error",
	DirInfo:           "Directive information",
	DirUnknown:        "Unknown directive keyword",
	DirMalformed:      "Malformed directive",
	DirGuardedSwitch:  "Switch declaration cannot be guarded",
	SwInfo:            "Switch information",
	SwDuplicateSwitch: "Duplicate switch declaration",
	SwUnknownSwitch:   "Unknown switch",
	IOLoadFileError:   "I/O load file error",
	ObsInfo:           "Observability information",
	ObsTimings:        "Scan timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("DIR%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SW%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

// Fatal reports whether this code aborts the owning file's plan
// synthesis. Per-line directive errors are collected and the file still
// yields a plan; broken switch state never does.
func (c Code) Fatal() bool {
	switch c {
	case SwDuplicateSwitch, SwUnknownSwitch, IOLoadFileError:
		return true
	}
	return false
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
