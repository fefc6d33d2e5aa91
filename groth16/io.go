package groth16

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// maxCBORElements bounds array/map sizes the decoder will accept, mirroring
// the limit the pack's own R1CS cbor codec uses to avoid an adversarial
// stream forcing an unbounded allocation.
const maxCBORElements = 134217728

func cborEncMode() (cbor.EncMode, error) {
	return cbor.CoreDetEncOptions().EncMode()
}

func cborDecMode() (cbor.DecMode, error) {
	return cbor.DecOptions{
		MaxArrayElements: maxCBORElements,
		MaxMapPairs:      maxCBORElements,
	}.DecMode()
}

// WriteTo encodes pk into w using cbor's deterministic core encoding, so two
// calls against the same key produce byte-identical output.
func (pk *ProvingKey) WriteTo(w io.Writer) (int64, error) {
	return cborEncodeCounted(w, pk)
}

// ReadFrom decodes a ProvingKey previously written by WriteTo.
func (pk *ProvingKey) ReadFrom(r io.Reader) (int64, error) {
	return cborDecodeCounted(r, pk)
}

// WriteTo encodes vk into w using cbor's deterministic core encoding.
func (vk *VerifyingKey) WriteTo(w io.Writer) (int64, error) {
	return cborEncodeCounted(w, vk)
}

// ReadFrom decodes a VerifyingKey previously written by WriteTo.
func (vk *VerifyingKey) ReadFrom(r io.Reader) (int64, error) {
	return cborDecodeCounted(r, vk)
}

// WriteTo encodes proof into w using cbor's deterministic core encoding.
func (proof *Proof) WriteTo(w io.Writer) (int64, error) {
	return cborEncodeCounted(w, proof)
}

// ReadFrom decodes a Proof previously written by WriteTo.
func (proof *Proof) ReadFrom(r io.Reader) (int64, error) {
	return cborDecodeCounted(r, proof)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

func cborEncodeCounted(w io.Writer, v interface{}) (int64, error) {
	mode, err := cborEncMode()
	if err != nil {
		return 0, ErrIO
	}
	cw := &countingWriter{w: w}
	if err := mode.NewEncoder(cw).Encode(v); err != nil {
		return cw.n, ErrIO
	}
	return cw.n, nil
}

func cborDecodeCounted(r io.Reader, v interface{}) (int64, error) {
	mode, err := cborDecMode()
	if err != nil {
		return 0, ErrIO
	}
	decoder := mode.NewDecoder(r)
	if err := decoder.Decode(v); err != nil {
		return int64(decoder.NumBytesRead()), ErrIO
	}
	return int64(decoder.NumBytesRead()), nil
}
