package document

import "bytes"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func decodeText(data []byte) (string, error) {
	return string(bytes.TrimPrefix(data, utf8BOM)), nil
}
