package fsbl

import (
	"encoding/binary"
	"fmt"
)

// ParseHeader decodes the boot header at the start of data.
// The variant is detected from the header version word at VersionOffset.
//
// Returns *MissingMagicError when data is not headed and
// *UnsupportedVersionError for unknown versions.
func ParseHeader(data []byte) (Header, error) {
	if !HasMagic(data) {
		got := data
		if len(got) > MagicSize {
			got = got[:MagicSize]
		}
		return nil, &MissingMagicError{Got: got}
	}

	if len(data) < VersionOffset+4 {
		return nil, fmt.Errorf("header too short: got %d bytes, need at least %d", len(data), VersionOffset+4)
	}

	version := binary.LittleEndian.Uint32(data[VersionOffset:])
	switch version {
	case HeaderVersionMP1:
		h := &HeaderMP1{}
		if err := h.UnmarshalBinary(data); err != nil {
			return nil, err
		}
		return h, nil
	case HeaderVersionMP2:
		h := &HeaderMP2{}
		if err := h.UnmarshalBinary(data); err != nil {
			return nil, err
		}
		return h, nil
	default:
		return nil, &UnsupportedVersionError{Version: version}
	}
}

// Verify parses the header of a stamped image and checks it against the
// payload that follows: the declared length must match exactly and the
// checksum must equal Checksum(payload).
//
// Returns the parsed header and the payload slice on success.
func Verify(image []byte) (Header, []byte, error) {
	h, err := ParseHeader(image)
	if err != nil {
		return nil, nil, err
	}

	payload := image[h.Format().HeaderSize():]
	s := h.Summary()

	if int64(s.PayloadLength) != int64(len(payload)) {
		return h, nil, &PayloadLengthError{Expected: s.PayloadLength, Actual: len(payload)}
	}

	if sum := Checksum(payload); sum != s.Checksum {
		return h, nil, &ChecksumMismatchError{Expected: s.Checksum, Actual: sum}
	}

	return h, payload, nil
}

// UnmarshalBinary decodes an MP1 header from the first HeaderSizeMP1 bytes of data.
// Reserved and padding bytes are skipped.
func (h *HeaderMP1) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSizeMP1 {
		return fmt.Errorf("invalid data length for MP1 header: got %d bytes, expected %d", len(data), HeaderSizeMP1)
	}

	le := binary.LittleEndian
	copy(h.Magic[:], data[0:4])
	copy(h.Signature[:], data[4:68])
	h.Checksum = le.Uint32(data[68:72])
	h.HeaderVersion = le.Uint32(data[72:76])
	h.PayloadLength = le.Uint32(data[76:80])
	h.EntryPoint = le.Uint32(data[80:84])
	// 84:88 reserved
	h.LoadAddress = le.Uint32(data[88:92])
	// 92:96 reserved
	h.ImageVersion = le.Uint32(data[96:100])
	h.OptionFlags = le.Uint32(data[100:104])
	h.ECDSAAlgorithm = le.Uint32(data[104:108])
	copy(h.TrailingSignature[:], data[108:172])
	// 172:255 padding
	h.BinaryType = data[HeaderSizeMP1-1]

	return nil
}

// UnmarshalBinary decodes an MP2 header from the first HeaderSizeMP2 bytes of data.
// Reserved and padding bytes are skipped.
func (h *HeaderMP2) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSizeMP2 {
		return fmt.Errorf("invalid data length for MP2 header: got %d bytes, expected %d", len(data), HeaderSizeMP2)
	}

	le := binary.LittleEndian
	copy(h.Magic[:], data[0:4])
	copy(h.Signature[:], data[4:68])
	h.Checksum = le.Uint32(data[68:72])
	h.HeaderVersion = le.Uint32(data[72:76])
	h.PayloadLength = le.Uint32(data[76:80])
	h.EntryPoint = le.Uint32(data[80:84])
	// 84:96 reserved
	h.ImageVersion = le.Uint32(data[96:100])
	h.OptionFlags = le.Uint32(data[100:104])
	h.ExtensionLength = le.Uint32(data[104:108])
	h.BinaryType = le.Uint32(data[108:112])
	// 112:120 padding
	h.NonSecurePayloadLength = le.Uint32(data[120:124])
	h.NonSecurePayloadHash = le.Uint32(data[124:128])

	return nil
}
