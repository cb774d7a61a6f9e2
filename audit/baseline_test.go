package audit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_BuildBaseline_Grouping(t *testing.T) {
	records := []BaselineRecord{
		{Row: 2, Folder: `D:\Shares\Finance`, Owner: "BUILTIN\\Administrators", IdentityReference: "CORP\\finance", FileSystemRights: "Modify", AccessControlType: "Allow"},
		{Row: 3, Folder: `D:\Shares\Finance`, IdentityReference: "CORP\\auditors", FileSystemRights: "ReadAndExecute", AccessControlType: "Allow"},
		{Row: 4, Folder: `D:\Shares\HR`, Owner: "CORP\\hradmin", IdentityReference: "CORP\\hr", FileSystemRights: "Modify", AccessControlType: "Allow"},
	}

	baseline, rowErrors := BuildBaseline(records)
	require.Empty(t, rowErrors)
	require.Equal(t, 2, baseline.Len())
	assert.Equal(t, []string{`D:\Shares\Finance`, `D:\Shares\HR`}, baseline.Resources())

	finance, ok := baseline.Descriptor(`D:\Shares\Finance`)
	require.True(t, ok)
	assert.Equal(t, "BUILTIN\\Administrators", finance.Owner)
	require.Len(t, finance.Rules, 2)
	assert.Equal(t, "CORP\\finance", finance.Rules[0].Identity)
	assert.Equal(t, Modify, finance.Rules[0].Rights)
	assert.Equal(t, Allow, finance.Rules[0].Effect)
	assert.Equal(t, ReadAndExecute, finance.Rules[1].Rights)
}

func Test_BuildBaseline_FirstOwnerWins(t *testing.T) {
	records := []BaselineRecord{
		{Row: 2, Folder: `D:\Data`, IdentityReference: "CORP\\a", FileSystemRights: "Read", AccessControlType: "Allow"},
		{Row: 3, Folder: `D:\Data`, Owner: "CORP\\first", IdentityReference: "CORP\\b", FileSystemRights: "Read", AccessControlType: "Allow"},
		{Row: 4, Folder: `D:\Data`, Owner: "CORP\\second", IdentityReference: "CORP\\c", FileSystemRights: "Read", AccessControlType: "Allow"},
	}

	baseline, rowErrors := BuildBaseline(records)
	require.Empty(t, rowErrors)

	desc, ok := baseline.Descriptor(`D:\Data`)
	require.True(t, ok)
	// the first non-empty owner establishes the expectation
	assert.Equal(t, "CORP\\first", desc.Owner)
	assert.Len(t, desc.Rules, 3)
}

func Test_BuildBaseline_NumericRightsDecode(t *testing.T) {
	records := []BaselineRecord{
		{Row: 2, Folder: `D:\Data`, IdentityReference: "CORP\\svc", FileSystemRights: "268435456", AccessControlType: "Allow"},
		{Row: 3, Folder: `D:\Data`, IdentityReference: "CORP\\ro", FileSystemRights: "-1610612736", AccessControlType: "Allow"},
	}

	baseline, rowErrors := BuildBaseline(records)
	require.Empty(t, rowErrors)

	desc, _ := baseline.Descriptor(`D:\Data`)
	require.Len(t, desc.Rules, 2)
	assert.Equal(t, FullControl, desc.Rules[0].Rights, "GENERIC_ALL decodes to FullControl")
	assert.Equal(t, ReadAndExecute, desc.Rules[1].Rights, "GENERIC_READ|GENERIC_EXECUTE decodes to ReadAndExecute")
	assert.True(t, desc.Rules[0].Raw.Numeric)
}

func Test_BuildBaseline_MalformedRows(t *testing.T) {
	tests := []struct {
		name    string
		record  BaselineRecord
		wantErr error
	}{
		{
			name:    "missing folder",
			record:  BaselineRecord{Row: 2, IdentityReference: "CORP\\a", FileSystemRights: "Read", AccessControlType: "Allow"},
			wantErr: ErrMalformedRow,
		},
		{
			name:    "missing identity",
			record:  BaselineRecord{Row: 2, Folder: `D:\Data`, FileSystemRights: "Read", AccessControlType: "Allow"},
			wantErr: ErrMalformedRow,
		},
		{
			name:    "unparseable rights",
			record:  BaselineRecord{Row: 2, Folder: `D:\Data`, IdentityReference: "CORP\\a", FileSystemRights: "Levitate", AccessControlType: "Allow"},
			wantErr: ErrMalformedRow,
		},
		{
			name:    "unparseable effect",
			record:  BaselineRecord{Row: 2, Folder: `D:\Data`, IdentityReference: "CORP\\a", FileSystemRights: "Read", AccessControlType: "Audit"},
			wantErr: ErrMalformedRow,
		},
		{
			name:    "numeric rights beyond 32 bits",
			record:  BaselineRecord{Row: 2, Folder: `D:\Data`, IdentityReference: "CORP\\a", FileSystemRights: "8589934592", AccessControlType: "Allow"},
			wantErr: ErrMalformedRow,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			valid := BaselineRecord{Row: 3, Folder: `D:\Other`, IdentityReference: "CORP\\b", FileSystemRights: "Read", AccessControlType: "Allow"}

			baseline, rowErrors := BuildBaseline([]BaselineRecord{tc.record, valid})

			require.Len(t, rowErrors, 1)
			assert.True(t, errors.Is(rowErrors[0], tc.wantErr), "row error should wrap ErrMalformedRow, got %v", rowErrors[0])
			assert.Equal(t, 2, rowErrors[0].Row)

			// the bad row never discards the batch
			require.Equal(t, 1, baseline.Len())
			_, ok := baseline.Descriptor(`D:\Other`)
			assert.True(t, ok)
		})
	}
}
