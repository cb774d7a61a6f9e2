package audit

import (
	"testing"
)

func Test_MapGenericToFileSystemRights(t *testing.T) {
	tests := []struct {
		name string
		mask uint32
		want FileSystemRights
	}{
		{
			name: "zero mask yields the empty set",
			mask: 0,
			want: 0,
		},
		{
			name: "low bits alone yield the empty set",
			mask: 0x0000FFFF,
			want: 0,
		},
		{
			name: "GENERIC_READ",
			mask: GenericRead,
			want: ReadAttributes | ReadData | ReadExtendedAttributes | ReadPermissions | Synchronize,
		},
		{
			name: "GENERIC_WRITE",
			mask: GenericWrite,
			want: AppendData | WriteAttributes | WriteData | WriteExtendedAttributes | ReadPermissions | Synchronize,
		},
		{
			name: "GENERIC_EXECUTE",
			mask: GenericExecute,
			want: ExecuteFile | ReadPermissions | ReadAttributes | Synchronize,
		},
		{
			name: "GENERIC_ALL alone is exactly FullControl",
			mask: GenericAll,
			want: FullControl,
		},
		{
			name: "GENERIC_READ|GENERIC_EXECUTE equals the ReadAndExecute composite",
			mask: GenericRead | GenericExecute,
			want: ReadAndExecute,
		},
		{
			name: "GENERIC_READ|GENERIC_WRITE is the union of both sets",
			mask: GenericRead | GenericWrite,
			want: Read | Write,
		},
		{
			name: "GENERIC_ALL with other bits still includes FullControl",
			mask: GenericAll | GenericRead | GenericWrite | GenericExecute,
			want: FullControl | Read | Write | Execute,
		},
		{
			name: "generic bits decode regardless of low bits",
			mask: GenericRead | 0x1234,
			want: Read,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MapGenericToFileSystemRights(tc.mask)
			if got != tc.want {
				t.Errorf("MapGenericToFileSystemRights(%#x) = %v, want %v", tc.mask, got, tc.want)
			}
		})
	}
}

func Test_MapGenericToFileSystemRights_Monotonic(t *testing.T) {
	// setting an additional generic bit never removes rights present for the
	// subset mask
	bits := []uint32{GenericAll, GenericExecute, GenericWrite, GenericRead}
	for combo := uint32(0); combo < 16; combo++ {
		var mask uint32
		for i, bit := range bits {
			if combo&(1<<i) != 0 {
				mask |= bit
			}
		}
		base := MapGenericToFileSystemRights(mask)
		for _, bit := range bits {
			if mask&bit != 0 {
				continue
			}
			wider := MapGenericToFileSystemRights(mask | bit)
			if wider&base != base {
				t.Errorf("adding bit %#x to mask %#x removed rights: had %v, got %v", bit, mask, base, wider)
			}
		}
	}
}

func Test_normalizeNumericRights(t *testing.T) {
	tests := []struct {
		name string
		mask uint32
		want FileSystemRights
	}{
		{
			name: "fine-grained mask passes through",
			mask: uint32(ReadAndExecute),
			want: ReadAndExecute,
		},
		{
			name: "generic mask decodes",
			mask: GenericRead | GenericExecute,
			want: ReadAndExecute,
		},
		{
			name: "mixed mask keeps fine bits and decodes generic bits",
			mask: uint32(Delete) | GenericRead,
			want: Delete | Read,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := normalizeNumericRights(tc.mask)
			if got != tc.want {
				t.Errorf("normalizeNumericRights(%#x) = %v, want %v", tc.mask, got, tc.want)
			}
		})
	}
}
