//==============================================================================
// marshal: binary serialization of problems
//==============================================================================

// Problems serialize to CBOR with deterministic encoding, so the same model
// always produces the same bytes. A one-byte format version precedes the
// payload so the layout can evolve without breaking stored files.

package mip

import (
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

const marshalVersion = 1

// countWriter tracks bytes written through to the underlying writer.
type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// WriteTo serializes the problem to w and reports the number of bytes
// written.
// In case of failure, function returns an error.
func (p *Problem) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	if _, err := cw.Write([]byte{marshalVersion}); err != nil {
		return cw.n, errors.Wrap(err, "writing format version")
	}
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return cw.n, errors.Wrap(err, "building CBOR encoder")
	}
	if err := em.NewEncoder(cw).Encode(p); err != nil {
		return cw.n, errors.Wrap(err, "encoding problem")
	}
	return cw.n, nil
}

// ReadProblemFrom deserializes a problem written by WriteTo and reports the
// number of bytes consumed.
// In case of failure, function returns an error.
func ReadProblemFrom(r io.Reader) (*Problem, int64, error) {
	var ver [1]byte
	if _, err := io.ReadFull(r, ver[:]); err != nil {
		return nil, 0, errors.Wrap(err, "reading format version")
	}
	if ver[0] != marshalVersion {
		return nil, 1, errors.Wrapf(ErrBadModel, "unsupported format version %d", ver[0])
	}
	dm, err := cbor.DecOptions{
		MaxArrayElements: 2147483647,
		MaxMapPairs:      2147483647,
	}.DecMode()
	if err != nil {
		return nil, 1, errors.Wrap(err, "building CBOR decoder")
	}
	dec := dm.NewDecoder(r)
	prob := &Problem{}
	if err := dec.Decode(prob); err != nil {
		return nil, 1 + int64(dec.NumBytesRead()), errors.Wrap(err, "decoding problem")
	}
	if err := prob.validate(); err != nil {
		return nil, 1 + int64(dec.NumBytesRead()), err
	}
	return prob, 1 + int64(dec.NumBytesRead()), nil
}
