package admixplot

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZlib
	DataTypeBZip2
)

func (dt DataType) String() string {
	switch dt {
	case DataTypeNoCompression:
		return "uncompressed"
	case DataTypeGzip:
		return "gzip"
	case DataTypeZip:
		return "zip"
	case DataTypeXZ:
		return "xz"
	case DataTypeZlib:
		return "zlib"
	case DataTypeBZip2:
		return "bzip2"
	}
	return "invalid"
}

type byteCodeSig struct {
	dt  DataType
	sig []byte
}

// Byte code signatures from https://stackoverflow.com/a/19127748/199475 . The
// zlib header is 0x78 followed by one of the standard compression levels.
var byteCodeSigs = []byteCodeSig{
	{DataTypeGzip, []byte{0x1f, 0x8b, 0x08}},
	{DataTypeZip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{DataTypeXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{DataTypeBZip2, []byte{0x42, 0x5a, 0x68}},
	{DataTypeZlib, []byte{0x78, 0x01}},
	{DataTypeZlib, []byte{0x78, 0x5e}},
	{DataTypeZlib, []byte{0x78, 0x9c}},
	{DataTypeZlib, []byte{0x78, 0xda}},
}

// sigLength is the longest signature we need to see.
const sigLength = 6

// DetectDataType attempts to detect the data type of a stream by checking
// against a set of known data types. The stream is not consumed.
func DetectDataType(r *bufio.Reader) (DataType, error) {
	buff, err := r.Peek(sigLength)
	if err != nil && err != io.EOF {
		return DataTypeInvalid, err
	}

	// Match known signatures
	for _, v := range byteCodeSigs {
		if bytes.HasPrefix(buff, v.sig) {
			return v.dt, nil
		}
	}

	return DataTypeNoCompression, nil
}

// MaybeDecompress wraps rc in the decompressor its leading bytes call for.
// Closing the result closes rc.
func MaybeDecompress(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)

	dt, err := DetectDataType(br)
	if err != nil {
		return nil, err
	}

	var r io.Reader
	switch dt {
	case DataTypeGzip:
		r, err = gzip.NewReader(br)
	case DataTypeZip:
		// Only the first member of an archive is read
		zr := zipstream.NewReader(br)
		_, err = zr.Next()
		r = zr
	case DataTypeBZip2:
		r = bzip2.NewReader(br)
	case DataTypeXZ:
		r, err = xz.NewReader(br, 0)
	case DataTypeZlib:
		r, err = zlib.NewReader(br)
	default:
		// No data type detected. For now, we assume this is uncompressed.
		r = br
	}
	if err != nil {
		return nil, err
	}

	return &readCloser{Reader: r, closer: rc}, nil
}

// readCloser reads from the decompressed stream and closes the underlying
// source.
type readCloser struct {
	io.Reader
	closer io.Closer
}

func (c *readCloser) Close() error {
	return c.closer.Close()
}
