package encoding

// PackText copies the leading run of data into dst opaquely, up to
// len(dst) bytes; the "sample" count of a text channel equals its byte
// count. Unused tail bytes of dst are zeroed.
func PackText(dst []byte, data []byte) FixedResult {
	n := copy(dst, data)
	zeroTail(dst, n)

	return FixedResult{BytesWritten: n, SamplesConsumed: n}
}
