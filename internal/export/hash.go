package export

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// hashFieldSep terminates each field contribution in the hash payload.
const hashFieldSep = "\x1F"

// HashPayload serializes the canonical values of the selected fields as
// index=value pairs in ascending field order, each terminated by a fixed
// unit separator. Nil selects the core subset. Empty values still
// contribute their index, so field boundaries never shift.
func HashPayload(row Row, fields []Field) string {
	if fields == nil {
		fields = CoreHashFields
	} else {
		fields = append([]Field(nil), fields...)
		sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	}
	var sb strings.Builder
	prev := Field(-1)
	for _, f := range fields {
		if f < 0 || f >= FieldCount || f == prev {
			continue
		}
		prev = f
		sb.WriteString(strconv.Itoa(int(f)))
		sb.WriteByte('=')
		sb.WriteString(row[f].Canonical)
		sb.WriteString(hashFieldSep)
	}
	return sb.String()
}

// RowDigest returns the hex-encoded SHA-256 of the row's hash payload.
// Two rows with the same digest describe the same booked movement even
// when their display formatting differs.
func RowDigest(row Row, fields []Field) string {
	sum := sha256.Sum256([]byte(HashPayload(row, fields)))
	return hex.EncodeToString(sum[:])
}
