package core

import (
	"time"

	mus "github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// UploadRecordMUS serializes UploadRecord values using the MUS format.
// Timestamps are stored as Unix microseconds in UTC.
var UploadRecordMUS = uploadRecordMUS{}

type uploadRecordMUS struct{}

var _ mus.Serializer[UploadRecord] = uploadRecordMUS{}

func (s uploadRecordMUS) Marshal(r UploadRecord, bs []byte) (n int) {
	n = ord.String.Marshal(r.Id, bs)
	n += ord.String.Marshal(r.ConversationId, bs[n:])
	n += ord.String.Marshal(r.UserId, bs[n:])
	n += varint.Int64.Marshal(r.CreatedAt.UnixMicro(), bs[n:])
	n += ord.String.Marshal(r.RecordType, bs[n:])
	n += ord.Bool.Marshal(r.IsDeleted, bs[n:])
	n += ord.String.Marshal(r.FileName, bs[n:])
	return
}

func (s uploadRecordMUS) Unmarshal(bs []byte) (r UploadRecord, n int, err error) {
	var n1 int
	r.Id, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	r.ConversationId, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.UserId, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var createdAt int64
	createdAt, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.CreatedAt = time.UnixMicro(createdAt).UTC()
	r.RecordType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.IsDeleted, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.FileName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s uploadRecordMUS) Size(r UploadRecord) (size int) {
	size = ord.String.Size(r.Id)
	size += ord.String.Size(r.ConversationId)
	size += ord.String.Size(r.UserId)
	size += varint.Int64.Size(r.CreatedAt.UnixMicro())
	size += ord.String.Size(r.RecordType)
	size += ord.Bool.Size(r.IsDeleted)
	size += ord.String.Size(r.FileName)
	return
}

func (s uploadRecordMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	for i := 0; i < 3; i++ {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.Bool.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}
