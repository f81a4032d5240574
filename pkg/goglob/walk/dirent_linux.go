//go:build linux

package walk

import (
	"bytes"
	"encoding/binary"
)

// Linux d_type values (<dirent.h>), stable across architectures regardless
// of byte order.
const (
	dtUnknown = 0
	dtDir     = 4
	dtReg     = 8
	dtLnk     = 10
)

// rawDirent is one decoded linux_dirent64 record.
type rawDirent struct {
	ino   uint64
	dtype uint8
	name  string
}

// parseDirents decodes every linux_dirent64 record packed into buf by a
// getdents64 call. The struct layout (fixed across archs; only the
// trailing name is variable-length) is:
//
//	ino64_t        d_ino;     // offset 0,  8 bytes
//	off64_t        d_off;     // offset 8,  8 bytes
//	unsigned short d_reclen;  // offset 16, 2 bytes
//	unsigned char  d_type;    // offset 18, 1 byte
//	char           d_name[];  // offset 19, NUL-terminated, padded to d_reclen
//
// "." and ".." are dropped here so callers never have to filter them.
func parseDirents(buf []byte, dst []rawDirent) []rawDirent {
	off := 0
	for off+19 <= len(buf) {
		reclen := int(binary.LittleEndian.Uint16(buf[off+16 : off+18]))
		if reclen <= 0 || off+reclen > len(buf) {
			break
		}

		ino := binary.LittleEndian.Uint64(buf[off : off+8])
		dtype := buf[off+18]

		nameBuf := buf[off+19 : off+reclen]
		if idx := bytes.IndexByte(nameBuf, 0); idx >= 0 {
			nameBuf = nameBuf[:idx]
		}
		name := string(nameBuf)

		if name != "." && name != ".." {
			dst = append(dst, rawDirent{ino: ino, dtype: dtype, name: name})
		}
		off += reclen
	}
	return dst
}

func entryTypeFromDT(dtype uint8) EntryType {
	switch dtype {
	case dtDir:
		return TypeDir
	case dtReg:
		return TypeFile
	case dtLnk:
		return TypeSymlink
	default:
		return TypeUnknown
	}
}
