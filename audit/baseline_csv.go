package audit

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/acldrift/acldrift/internal/input"
)

// Baseline documents are plain CSV with a header row; columns are addressed
// by name, case-insensitively, so exports with extra or reordered columns
// still import.
const (
	columnFolder            = "folder"
	columnOwner             = "owner"
	columnIdentityReference = "identityreference"
	columnFileSystemRights  = "filesystemrights"
	columnAccessControlType = "accesscontroltype"
)

// ReadBaselineFile reads baseline records from a CSV file path ("-" for
// stdin, "~" expansion supported).
func ReadBaselineFile(path string) ([]BaselineRecord, error) {
	reader, err := input.GetReader(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open baseline %s: %w", path, err)
	}
	if closer, ok := reader.(io.Closer); ok {
		defer closer.Close()
	}
	return ReadBaselineCSV(reader)
}

// ReadBaselineCSV reads baseline records from CSV content. The required
// columns are Folder, IdentityReference, FileSystemRights and
// AccessControlType; a missing required column is a structural error. Field
// validation within rows is left to BuildBaseline so a bad row cannot sink
// the batch.
func ReadBaselineCSV(r io.Reader) ([]BaselineRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("unable to read baseline header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{columnFolder, columnIdentityReference, columnFileSystemRights, columnAccessControlType} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("baseline is missing required column %q", required)
		}
	}

	field := func(row []string, column string) string {
		i, ok := columns[column]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]BaselineRecord, 0)
	for rowNum := 2; ; rowNum++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read baseline row %d: %w", rowNum, err)
		}
		records = append(records, BaselineRecord{
			Row:               rowNum,
			Folder:            field(row, columnFolder),
			Owner:             field(row, columnOwner),
			IdentityReference: field(row, columnIdentityReference),
			FileSystemRights:  field(row, columnFileSystemRights),
			AccessControlType: field(row, columnAccessControlType),
		})
	}
	return records, nil
}
