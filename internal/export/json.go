package export

import (
	"io"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
)

// Sorted keys keep repeated exports of the same rows byte-identical.
var jsonAPI = sonic.Config{SortMapKeys: true}.Froze()

// WriteJSON writes rows as a JSON array, one object per row.
func WriteJSON(w io.Writer, rows []map[string]string) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_ = buf.WriteByte('[')
	for i, row := range rows {
		if i > 0 {
			_ = buf.WriteByte(',')
		}
		encoded, err := jsonAPI.Marshal(row)
		if err != nil {
			return crerr.Wrap(err, "encode row")
		}
		_, _ = buf.Write(encoded)
	}
	_ = buf.WriteByte(']')

	if _, err := w.Write(buf.Bytes()); err != nil {
		return crerr.Wrap(err, "write json")
	}
	return nil
}
