package badger

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Key prefixes for different data types
const (
	uploadRecordPrefix = "uplrec"
	uploadConvPrefix   = "uplconv"
)

// makeUploadKey generates a key for an upload record by Id.
func makeUploadKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", uploadRecordPrefix, id))
}

// makeUploadConvKey generates a composite key for the conversation index.
// Format: prefix:conversationId:createdAt:id
// The timestamp is written in BigEndian order so lexicographic iteration
// returns records in creation order within one conversation.
func makeUploadConvKey(conversationId string, createdAt time.Time, id string) []byte {
	prefix := fmt.Sprintf("%s:%s:", uploadConvPrefix, conversationId)
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8+len(id))
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	offset += 8
	copy(buf[offset:], id)
	return buf
}

// makePartialUploadConvKey generates the iteration prefix for one conversation.
func makePartialUploadConvKey(conversationId string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", uploadConvPrefix, conversationId))
}
