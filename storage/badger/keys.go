package badger

// Key prefixes for different data types
const (
	blobPrefix         = "blob"
	indexRecordPrefix  = "vecrec"
	recordSourcePrefix = "vecsrc"
	indexEntryPrefix   = "idxent"
)

// keySeparator never appears in bucket names, identity hashes, or source
// URIs, so composite keys stay unambiguous and prefix scans stay exact.
const keySeparator = byte(0)

// compose joins parts with keySeparator under a type prefix.
func compose(prefix string, parts ...string) []byte {
	size := len(prefix)
	for _, p := range parts {
		size += 1 + len(p)
	}
	buf := make([]byte, 0, size)
	buf = append(buf, prefix...)
	for _, p := range parts {
		buf = append(buf, keySeparator)
		buf = append(buf, p...)
	}
	return buf
}

// makeBlobKey generates a key for a blob by bucket and object key.
func makeBlobKey(bucket, key string) []byte {
	return compose(blobPrefix, bucket, key)
}

// makePartialBlobKey generates a prefix for listing a bucket's blobs whose
// object keys start with keyPrefix.
func makePartialBlobKey(bucket, keyPrefix string) []byte {
	return compose(blobPrefix, bucket, keyPrefix)
}

// makeIndexRecordKey generates a key for an index record by identity hash.
func makeIndexRecordKey(id string) []byte {
	return compose(indexRecordPrefix, id)
}

// makeRecordSourceKey generates a composite key for the source index.
// Format: prefix:source:id
func makeRecordSourceKey(source, id string) []byte {
	return compose(recordSourcePrefix, source, id)
}

// makePartialRecordSourceKey generates a partial key for source queries.
func makePartialRecordSourceKey(source string) []byte {
	buf := compose(recordSourcePrefix, source)
	return append(buf, keySeparator)
}

// makeIndexEntryKey generates a key for a record-manager entry by identity hash.
func makeIndexEntryKey(id string) []byte {
	return compose(indexEntryPrefix, id)
}
