package objects

import (
	"bytes"
	"fmt"
	"strconv"
)

// Canonical object envelope:
//
// ┌─────────────────────────────────────────────┐
// │ "<kind>" SPACE "<payload-length>" NULL payload │
// └─────────────────────────────────────────────┘
//
// Example: "blob 12\0Hello World!"
//
// The identity of an object is the SHA-1 over this exact byte sequence, so
// the encoding must be canonical: identical kind and payload always produce
// identical envelope bytes.

// CreateHeader builds the envelope header for the given kind and payload size
func CreateHeader(objType ObjectType, size int64) []byte {
	return []byte(fmt.Sprintf("%s %d%c", objType, size, NullByte))
}

// WrapPayload builds the full canonical envelope for the given kind and payload
func WrapPayload(objType ObjectType, payload []byte) []byte {
	header := CreateHeader(objType, int64(len(payload)))
	envelope := make([]byte, 0, len(header)+len(payload))
	envelope = append(envelope, header...)
	envelope = append(envelope, payload...)
	return envelope
}

// ParseHeader parses the envelope header from data.
// Returns the object kind, the declared payload size, and the offset where
// the payload starts.
func ParseHeader(data []byte) (ObjectType, int64, int, error) {
	nullIndex := bytes.IndexByte(data, NullByte)
	if nullIndex == -1 {
		return "", 0, 0, fmt.Errorf("invalid object header: missing null byte")
	}

	spaceIndex := bytes.IndexByte(data[:nullIndex], SpaceByte)
	if spaceIndex == -1 {
		return "", 0, 0, fmt.Errorf("invalid object header: missing space")
	}

	objType, err := ParseObjectType(string(data[:spaceIndex]))
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid object type: %w", err)
	}

	size, err := strconv.ParseInt(string(data[spaceIndex+1:nullIndex]), 10, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid size in header: %w", err)
	}
	if size < 0 {
		return "", 0, 0, fmt.Errorf("negative size in header: %d", size)
	}

	return objType, size, nullIndex + 1, nil
}

// ParseContent parses the payload of an envelope whose kind is already known,
// verifying both the kind and the declared size.
func ParseContent(data []byte, ot ObjectType) ([]byte, error) {
	objType, size, contentStart, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	if objType != ot {
		return nil, fmt.Errorf("object type mismatch: expected %s, got %s", ot, objType)
	}

	payload := data[contentStart:]
	if int64(len(payload)) != size {
		return nil, fmt.Errorf("payload size mismatch: expected %d, got %d", size, len(payload))
	}

	return payload, nil
}
