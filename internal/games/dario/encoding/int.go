package encoding

import "strconv"

const intBase = 36

// EncodeInt writes n in base 36 using 0-9a-z.
func EncodeInt(n int) string {
	return strconv.FormatInt(int64(n), intBase)
}

// DecodeInt parses a base-36 integer written by EncodeInt.
func DecodeInt(s string) (int, error) {
	if s == "" {
		return 0, decodeErr("int", s, "empty")
	}
	n, err := strconv.ParseInt(s, intBase, 0)
	if err != nil {
		return 0, decodeErr("int", s, "not base 36")
	}
	return int(n), nil
}
