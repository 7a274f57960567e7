// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package xlsx

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
)

// archiveEntry is one named part in the output container.
type archiveEntry struct {
	name string
	data []byte
}

// Fixed DOS timestamp (2020-01-01 00:00:00) written to every entry so that
// encoding the same records twice yields byte-identical archives.
const (
	fixedDOSDate = (2020-1980)<<9 | 1<<5 | 1
	fixedDOSTime = 0
)

const (
	localHeaderSig   = 0x04034b50
	centralHeaderSig = 0x02014b50
	endOfCentralSig  = 0x06054b50

	// Version 2.0: plain stored entries need nothing newer.
	zipVersion = 20

	// Entries are stored uncompressed. A valid container matters here;
	// compression ratio does not.
	methodStored = 0
)

// writeArchive assembles a ZIP container from the entries in order: one
// local file header + data per entry, then the central directory, then the
// end-of-central-directory record. Output depends only on the entries.
func writeArchive(entries []archiveEntry) []byte {
	var buf bytes.Buffer
	offsets := make([]uint32, len(entries))
	crcs := make([]uint32, len(entries))

	for i, e := range entries {
		offsets[i] = uint32(buf.Len())
		crcs[i] = crc32.ChecksumIEEE(e.data)

		writeU32(&buf, localHeaderSig)
		writeU16(&buf, zipVersion)   // version needed to extract
		writeU16(&buf, 0)            // general purpose flags
		writeU16(&buf, methodStored) // compression method
		writeU16(&buf, fixedDOSTime)
		writeU16(&buf, fixedDOSDate)
		writeU32(&buf, crcs[i])
		writeU32(&buf, uint32(len(e.data))) // compressed size
		writeU32(&buf, uint32(len(e.data))) // uncompressed size
		writeU16(&buf, uint16(len(e.name)))
		writeU16(&buf, 0) // extra field length
		buf.WriteString(e.name)
		buf.Write(e.data)
	}

	centralStart := uint32(buf.Len())
	for i, e := range entries {
		writeU32(&buf, centralHeaderSig)
		writeU16(&buf, zipVersion) // version made by
		writeU16(&buf, zipVersion) // version needed to extract
		writeU16(&buf, 0)          // general purpose flags
		writeU16(&buf, methodStored)
		writeU16(&buf, fixedDOSTime)
		writeU16(&buf, fixedDOSDate)
		writeU32(&buf, crcs[i])
		writeU32(&buf, uint32(len(e.data)))
		writeU32(&buf, uint32(len(e.data)))
		writeU16(&buf, uint16(len(e.name)))
		writeU16(&buf, 0) // extra field length
		writeU16(&buf, 0) // comment length
		writeU16(&buf, 0) // disk number start
		writeU16(&buf, 0) // internal attributes
		writeU32(&buf, 0) // external attributes
		writeU32(&buf, offsets[i])
		buf.WriteString(e.name)
	}
	centralSize := uint32(buf.Len()) - centralStart

	writeU32(&buf, endOfCentralSig)
	writeU16(&buf, 0) // this disk
	writeU16(&buf, 0) // central directory disk
	writeU16(&buf, uint16(len(entries)))
	writeU16(&buf, uint16(len(entries)))
	writeU32(&buf, centralSize)
	writeU32(&buf, centralStart)
	writeU16(&buf, 0) // comment length

	return buf.Bytes()
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}
