// Copyright 2025 Quantum AI contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
)

// vectorMUS serializes embedding vectors as fixed-width little-endian floats.
var vectorMUS = ord.NewSliceSer[float32](raw.Float32)

// IndexRecordMUS is the MUS serializer for IndexRecord values.
var IndexRecordMUS = indexRecordMUS{}

type indexRecordMUS struct{}

func (indexRecordMUS) Marshal(r IndexRecord, bs []byte) (n int) {
	n = ord.String.Marshal(r.ID, bs)
	n += ord.String.Marshal(r.Source, bs[n:])
	n += ord.String.Marshal(r.DocID, bs[n:])
	n += ord.String.Marshal(r.Text, bs[n:])
	n += vectorMUS.Marshal(r.Vector, bs[n:])
	return
}

func (indexRecordMUS) Unmarshal(bs []byte) (r IndexRecord, n int, err error) {
	var n1 int
	r.ID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	r.Source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.DocID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (indexRecordMUS) Size(r IndexRecord) (size int) {
	size = ord.String.Size(r.ID)
	size += ord.String.Size(r.Source)
	size += ord.String.Size(r.DocID)
	size += ord.String.Size(r.Text)
	size += vectorMUS.Size(r.Vector)
	return
}

func (indexRecordMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	for i := 0; i < 4; i++ {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	n1, err = vectorMUS.Skip(bs[n:])
	n += n1
	return
}

// IndexEntryMUS is the MUS serializer for IndexEntry values. Timestamps are
// stored as Unix microseconds.
var IndexEntryMUS = indexEntryMUS{}

type indexEntryMUS struct{}

func (indexEntryMUS) Marshal(e IndexEntry, bs []byte) (n int) {
	n = ord.String.Marshal(e.GroupID, bs)
	n += raw.Int64.Marshal(e.UpdatedAt.UnixMicro(), bs[n:])
	return
}

func (indexEntryMUS) Unmarshal(bs []byte) (e IndexEntry, n int, err error) {
	var n1 int
	e.GroupID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var micros int64
	micros, n1, err = raw.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.UpdatedAt = time.UnixMicro(micros).UTC()
	return
}

func (indexEntryMUS) Size(e IndexEntry) (size int) {
	size = ord.String.Size(e.GroupID)
	size += raw.Int64.Size(e.UpdatedAt.UnixMicro())
	return
}

func (indexEntryMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	n1, err = raw.Int64.Skip(bs[n:])
	n += n1
	return
}
