package fsbl

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Build constructs the boot header for a raw FSBL image and returns it
// together with the payload it covers, ready for concatenation.
//
// The payload is everything from PayloadOffset onward; the leading region is
// reserved for a header and is discarded. Inputs shorter than PayloadOffset
// produce an empty payload. The returned payload is a sub-slice of raw and
// must not be modified while raw is in use.
//
// Build refuses inputs that already start with the magic marker and returns
// an *AlreadyHeadedError for them.
//
// Example:
//
//	header, payload, err := fsbl.Build(raw, fsbl.FormatMP2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out := append(header, payload...)
func Build(raw []byte, format Format) (header, payload []byte, err error) {
	if HasMagic(raw) {
		return nil, nil, &AlreadyHeadedError{}
	}

	payload = payloadOf(raw)

	h, err := NewHeader(payload, format)
	if err != nil {
		return nil, nil, err
	}

	header, err = h.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("pack %s header: %w", format, err)
	}

	return header, payload, nil
}

// NewHeader constructs the header record for payload in the given format.
// Signature fields are left zero; images are never signed.
func NewHeader(payload []byte, format Format) (Header, error) {
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("payload length %d exceeds maximum %d bytes", len(payload), uint64(math.MaxUint32))
	}

	checksum := Checksum(payload)
	length := uint32(len(payload))

	switch format {
	case FormatMP1:
		return &HeaderMP1{
			Magic:          Magic,
			Checksum:       checksum,
			HeaderVersion:  HeaderVersionMP1,
			PayloadLength:  length,
			EntryPoint:     EntryPoint,
			LoadAddress:    LoadAddress,
			OptionFlags:    OptionNoSignatureCheck,
			ECDSAAlgorithm: ECDSAP256,
			BinaryType:     BinaryTypeUBoot,
		}, nil
	case FormatMP2:
		return &HeaderMP2{
			Magic:         Magic,
			Checksum:      checksum,
			HeaderVersion: HeaderVersionMP2,
			PayloadLength: length,
			EntryPoint:    EntryPoint,
			BinaryType:    BinaryTypeFSBLM,
		}, nil
	default:
		return nil, &InvalidFormatError{Value: format.String()}
	}
}

// MarshalBinary packs the MP1 header. The result is always HeaderSizeMP1 bytes.
func (h *HeaderMP1) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, HeaderSizeMP1)

	buf = append(buf, h.Magic[:]...)
	buf = append(buf, h.Signature[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, h.Checksum)
	buf = binary.LittleEndian.AppendUint32(buf, h.HeaderVersion)
	buf = binary.LittleEndian.AppendUint32(buf, h.PayloadLength)
	buf = binary.LittleEndian.AppendUint32(buf, h.EntryPoint)
	buf = binary.LittleEndian.AppendUint32(buf, 0) // reserved
	buf = binary.LittleEndian.AppendUint32(buf, h.LoadAddress)
	buf = binary.LittleEndian.AppendUint32(buf, 0) // reserved
	buf = binary.LittleEndian.AppendUint32(buf, h.ImageVersion)
	buf = binary.LittleEndian.AppendUint32(buf, h.OptionFlags)
	buf = binary.LittleEndian.AppendUint32(buf, h.ECDSAAlgorithm)
	buf = append(buf, h.TrailingSignature[:]...)
	buf = append(buf, make([]byte, paddingSizeMP1)...)
	buf = append(buf, h.BinaryType)

	if len(buf) != HeaderSizeMP1 {
		return nil, fmt.Errorf("packed %d bytes, expected %d", len(buf), HeaderSizeMP1)
	}
	return buf, nil
}

// MarshalBinary packs the MP2 header. The result is always HeaderSizeMP2 bytes.
func (h *HeaderMP2) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, HeaderSizeMP2)

	buf = append(buf, h.Magic[:]...)
	buf = append(buf, h.Signature[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, h.Checksum)
	buf = binary.LittleEndian.AppendUint32(buf, h.HeaderVersion)
	buf = binary.LittleEndian.AppendUint32(buf, h.PayloadLength)
	buf = binary.LittleEndian.AppendUint32(buf, h.EntryPoint)
	for i := 0; i < reservedWordsMP2; i++ {
		buf = binary.LittleEndian.AppendUint32(buf, 0)
	}
	buf = binary.LittleEndian.AppendUint32(buf, h.ImageVersion)
	buf = binary.LittleEndian.AppendUint32(buf, h.OptionFlags)
	buf = binary.LittleEndian.AppendUint32(buf, h.ExtensionLength)
	buf = binary.LittleEndian.AppendUint32(buf, h.BinaryType)
	buf = append(buf, make([]byte, paddingSizeMP2)...)
	buf = binary.LittleEndian.AppendUint32(buf, h.NonSecurePayloadLength)
	buf = binary.LittleEndian.AppendUint32(buf, h.NonSecurePayloadHash)

	if len(buf) != HeaderSizeMP2 {
		return nil, fmt.Errorf("packed %d bytes, expected %d", len(buf), HeaderSizeMP2)
	}
	return buf, nil
}

// payloadOf returns raw[PayloadOffset:], or an empty slice for short inputs.
func payloadOf(raw []byte) []byte {
	if len(raw) <= PayloadOffset {
		return raw[len(raw):]
	}
	return raw[PayloadOffset:]
}
