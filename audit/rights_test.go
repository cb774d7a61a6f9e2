package audit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func Test_ParseRights(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    FileSystemRights
		wantErr bool
	}{
		{
			name:  "single composite",
			input: "FullControl",
			want:  FullControl,
		},
		{
			name:  "case-insensitive",
			input: "readandexecute",
			want:  ReadAndExecute,
		},
		{
			name:  "comma-separated list",
			input: "ReadData, Synchronize",
			want:  ReadData | Synchronize,
		},
		{
			name:  "list with composites",
			input: "Read, Write",
			want:  Read | Write,
		},
		{
			name:  "modify",
			input: "Modify",
			want:  ReadAndExecute | Write | Delete,
		},
		{
			name:  "none",
			input: "None",
			want:  0,
		},
		{
			name:    "unknown right",
			input:   "Fly",
			wantErr: true,
		},
		{
			name:    "unknown right in list",
			input:   "ReadData, Fly",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRights(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseRights(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if err == nil && got != tc.want {
				t.Errorf("ParseRights(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func Test_FileSystemRights_String(t *testing.T) {
	tests := []struct {
		rights FileSystemRights
		want   string
	}{
		{0, "None"},
		{FullControl, "FullControl"},
		{Read, "Read"},
		{ReadAndExecute, "ReadAndExecute"},
		{ReadData | Synchronize, "ReadData, Synchronize"},
		{Modify, "Modify"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.rights.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func Test_FileSystemRights_String_RoundTrip(t *testing.T) {
	// every named spelling parses back to the same set
	for name, rights := range rightsByName {
		got, err := ParseRights(rights.String())
		if err != nil {
			t.Errorf("String() of %s produced unparseable %q: %v", name, rights.String(), err)
			continue
		}
		if got != rights {
			t.Errorf("round-trip of %s: %v != %v", name, got, rights)
		}
	}
}

func Test_ParseRawRights(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RawRights
		wantErr bool
	}{
		{
			name:  "positive numeric",
			input: "268435456",
			want:  RawRights{Numeric: true, Mask: GenericAll},
		},
		{
			name:  "negative numeric is a signed 32-bit mask",
			input: "-1610612736",
			want:  RawRights{Numeric: true, Mask: GenericRead | GenericExecute},
		},
		{
			name:  "unsigned 32-bit maximum",
			input: "4294967295",
			want:  RawRights{Numeric: true, Mask: 0xFFFFFFFF},
		},
		{
			name:  "symbolic",
			input: "FullControl",
			want:  RawRights{Symbolic: "FullControl"},
		},
		{
			name:  "symbolic list is not numeric",
			input: "ReadData, Synchronize",
			want:  RawRights{Symbolic: "ReadData, Synchronize"},
		},
		{
			name:    "numeric above unsigned 32-bit range is rejected, not truncated",
			input:   "8589934592",
			wantErr: true,
		},
		{
			name:    "numeric below signed 32-bit range is rejected",
			input:   "-2147483649",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRawRights(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseRawRights(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if err != nil {
				return
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ParseRawRights(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

func Test_ParseEffect(t *testing.T) {
	tests := []struct {
		input   string
		want    Effect
		wantErr bool
	}{
		{input: "Allow", want: Allow},
		{input: "deny", want: Deny},
		{input: " ALLOW ", want: Allow},
		{input: "Audit", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseEffect(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseEffect(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if err == nil && got != tc.want {
				t.Errorf("ParseEffect(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}
