package audit

import (
	"fmt"
	"strings"
)

// FileSystemRights is a bit-flag set of fine-grained filesystem access rights.
// The bit layout follows the NTFS access mask so that baselines exported from
// Windows tooling carry over without translation tables.
type FileSystemRights uint32

const (
	ReadData                FileSystemRights = 1 << 0
	WriteData               FileSystemRights = 1 << 1
	AppendData              FileSystemRights = 1 << 2
	ReadExtendedAttributes  FileSystemRights = 1 << 3
	WriteExtendedAttributes FileSystemRights = 1 << 4
	ExecuteFile             FileSystemRights = 1 << 5
	DeleteSubdirsAndFiles   FileSystemRights = 1 << 6
	ReadAttributes          FileSystemRights = 1 << 7
	WriteAttributes         FileSystemRights = 1 << 8
	Delete                  FileSystemRights = 1 << 16
	ReadPermissions         FileSystemRights = 1 << 17
	ChangePermissions       FileSystemRights = 1 << 18
	TakeOwnership           FileSystemRights = 1 << 19
	Synchronize             FileSystemRights = 1 << 20

	// FullControl is every object and standard right combined.
	FullControl FileSystemRights = 0x1F01FF
)

// Composite rights, aligned with the generic-rights decode so that a rule
// declared as "Read" reconciles against a live grant made via GENERIC_READ.
const (
	Read           = ReadData | ReadAttributes | ReadExtendedAttributes | ReadPermissions | Synchronize
	Write          = WriteData | AppendData | WriteAttributes | WriteExtendedAttributes | ReadPermissions | Synchronize
	Execute        = ExecuteFile | ReadAttributes | ReadPermissions | Synchronize
	ReadAndExecute = Read | Execute
	Modify         = ReadAndExecute | Write | Delete
)

// rightsByName resolves the symbolic names accepted in baseline and snapshot
// documents. Lookup is case-insensitive.
var rightsByName = map[string]FileSystemRights{
	"none":                         0,
	"readdata":                     ReadData,
	"writedata":                    WriteData,
	"appenddata":                   AppendData,
	"readextendedattributes":       ReadExtendedAttributes,
	"writeextendedattributes":      WriteExtendedAttributes,
	"executefile":                  ExecuteFile,
	"deletesubdirectoriesandfiles": DeleteSubdirsAndFiles,
	"readattributes":               ReadAttributes,
	"writeattributes":              WriteAttributes,
	"delete":                       Delete,
	"readpermissions":              ReadPermissions,
	"changepermissions":            ChangePermissions,
	"takeownership":                TakeOwnership,
	"synchronize":                  Synchronize,
	"read":                         Read,
	"write":                        Write,
	"execute":                      Execute,
	"readandexecute":               ReadAndExecute,
	"modify":                       Modify,
	"fullcontrol":                  FullControl,
}

// namedRights is the display order for String: composites first so the
// shortest spelling wins, then the remaining fine-grained bits.
var namedRights = []struct {
	name   string
	rights FileSystemRights
}{
	{"FullControl", FullControl},
	{"Modify", Modify},
	{"ReadAndExecute", ReadAndExecute},
	{"Read", Read},
	{"Write", Write},
	{"Execute", Execute},
	{"ReadData", ReadData},
	{"WriteData", WriteData},
	{"AppendData", AppendData},
	{"ReadExtendedAttributes", ReadExtendedAttributes},
	{"WriteExtendedAttributes", WriteExtendedAttributes},
	{"ExecuteFile", ExecuteFile},
	{"DeleteSubdirectoriesAndFiles", DeleteSubdirsAndFiles},
	{"ReadAttributes", ReadAttributes},
	{"WriteAttributes", WriteAttributes},
	{"Delete", Delete},
	{"ReadPermissions", ReadPermissions},
	{"ChangePermissions", ChangePermissions},
	{"TakeOwnership", TakeOwnership},
	{"Synchronize", Synchronize},
}

// ParseRights parses a symbolic rights expression: a single name or a
// comma-separated list ("ReadAndExecute", "ReadData, Synchronize").
func ParseRights(s string) (FileSystemRights, error) {
	var rights FileSystemRights
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		r, ok := rightsByName[strings.ToLower(part)]
		if !ok {
			return 0, fmt.Errorf("unknown filesystem right %q", part)
		}
		rights |= r
	}
	return rights, nil
}

// Has reports whether every bit of r is present in f.
func (f FileSystemRights) Has(r FileSystemRights) bool {
	return f&r == r
}

func (f FileSystemRights) IsEmpty() bool {
	return f == 0
}

func (f FileSystemRights) String() string {
	if f == 0 {
		return "None"
	}
	remaining := f
	names := make([]string, 0, 4)
	for _, nr := range namedRights {
		if remaining&nr.rights == nr.rights {
			names = append(names, nr.name)
			remaining &^= nr.rights
		}
		if remaining == 0 {
			break
		}
	}
	if remaining != 0 {
		names = append(names, fmt.Sprintf("0x%X", uint32(remaining)))
	}
	return strings.Join(names, ", ")
}
