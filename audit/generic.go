package audit

// Generic access rights occupy the four high-order bits of a 32-bit access
// mask. Platforms hand these out as a coarse shorthand that the filesystem
// later maps onto fine-grained rights; baselines exported from such systems
// frequently contain them as raw (often negative) integers.
const (
	GenericAll     uint32 = 1 << 28
	GenericExecute uint32 = 1 << 29
	GenericWrite   uint32 = 1 << 30
	GenericRead    uint32 = 1 << 31
)

// MapGenericToFileSystemRights translates the generic bits of mask into the
// equivalent fine-grained rights set. The function is total: masks with none
// of the four generic bits set map to the empty set, and any combination of
// bits yields the union of the per-bit sets. GenericAll decodes to
// FullControl on its own, independent of the other bits.
func MapGenericToFileSystemRights(mask uint32) FileSystemRights {
	var rights FileSystemRights
	if mask&GenericRead != 0 {
		rights |= ReadAttributes | ReadData | ReadExtendedAttributes | ReadPermissions | Synchronize
	}
	if mask&GenericWrite != 0 {
		rights |= AppendData | WriteAttributes | WriteData | WriteExtendedAttributes | ReadPermissions | Synchronize
	}
	if mask&GenericExecute != 0 {
		rights |= ExecuteFile | ReadPermissions | ReadAttributes | Synchronize
	}
	if mask&GenericAll != 0 {
		rights |= FullControl
	}
	return rights
}

// normalizeNumericRights interprets a raw numeric access mask from a live
// descriptor: any fine-grained bits are kept as-is and any generic bits are
// decoded, so snapshots that export either representation reconcile the same.
func normalizeNumericRights(mask uint32) FileSystemRights {
	return (FileSystemRights(mask) & FullControl) | MapGenericToFileSystemRights(mask)
}
