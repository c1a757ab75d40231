// Package codec encodes ops and versions for transport and storage.
//
// MessagePack is the compact default used by the journal; JSON is provided
// for interoperability and debugging.
package codec

import (
	"cmp"
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/nasdf/chronofold"
)

// MarshalOp encodes an op as MessagePack.
func MarshalOp[A cmp.Ordered, T any](op chronofold.Op[A, T]) ([]byte, error) {
	return msgpack.Marshal(op)
}

// UnmarshalOp decodes a MessagePack encoded op.
func UnmarshalOp[A cmp.Ordered, T any](data []byte) (chronofold.Op[A, T], error) {
	var op chronofold.Op[A, T]
	if err := msgpack.Unmarshal(data, &op); err != nil {
		return chronofold.Op[A, T]{}, err
	}
	return op, nil
}

// MarshalOps encodes a batch of ops as MessagePack.
func MarshalOps[A cmp.Ordered, T any](ops []chronofold.Op[A, T]) ([]byte, error) {
	return msgpack.Marshal(ops)
}

// UnmarshalOps decodes a MessagePack encoded batch of ops.
func UnmarshalOps[A cmp.Ordered, T any](data []byte) ([]chronofold.Op[A, T], error) {
	var ops []chronofold.Op[A, T]
	if err := msgpack.Unmarshal(data, &ops); err != nil {
		return nil, err
	}
	return ops, nil
}

// MarshalVersion encodes a version as MessagePack.
func MarshalVersion[A cmp.Ordered](v chronofold.Version[A]) ([]byte, error) {
	return msgpack.Marshal(v)
}

// UnmarshalVersion decodes a MessagePack encoded version.
func UnmarshalVersion[A cmp.Ordered](data []byte) (chronofold.Version[A], error) {
	var v chronofold.Version[A]
	if err := msgpack.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// MarshalOpJSON encodes an op as JSON.
func MarshalOpJSON[A cmp.Ordered, T any](op chronofold.Op[A, T]) ([]byte, error) {
	return json.Marshal(op)
}

// UnmarshalOpJSON decodes a JSON encoded op.
func UnmarshalOpJSON[A cmp.Ordered, T any](data []byte) (chronofold.Op[A, T], error) {
	var op chronofold.Op[A, T]
	if err := json.Unmarshal(data, &op); err != nil {
		return chronofold.Op[A, T]{}, err
	}
	return op, nil
}
