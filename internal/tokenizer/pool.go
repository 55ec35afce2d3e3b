package tokenizer

import "sync"

// record is the reusable per-record scratch: the concatenated field bytes
// and the token slice handed out by NextRecord.
type record struct {
	buf    []byte
	tokens []Token
}

var recordPool = sync.Pool{
	New: func() interface{} {
		return &record{
			buf:    make([]byte, 0, 1024),
			tokens: make([]Token, 0, 16),
		}
	},
}

func getRecord() *record {
	return recordPool.Get().(*record)
}

// putRecord returns r to the pool unless its buffer grew past the
// retention cap, to avoid pinning memory from one oversized record.
func putRecord(r *record) {
	const maxRetainedBuf = 64 * 1024
	if cap(r.buf) > maxRetainedBuf {
		return
	}
	r.buf = r.buf[:0]
	r.tokens = r.tokens[:0]
	recordPool.Put(r)
}
