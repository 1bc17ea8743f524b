package fsbl

import (
	"fmt"
	"strings"
)

// Format selects the header variant for a hardware generation.
type Format int

const (
	// FormatMP1 is the STM32MP1x header (256 bytes)
	FormatMP1 Format = iota

	// FormatMP2 is the STM32MP2x header (128 bytes)
	FormatMP2
)

// ParseFormat converts a format name ("mp1" or "mp2") into a Format.
// Matching ignores case and surrounding whitespace.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mp1":
		return FormatMP1, nil
	case "mp2":
		return FormatMP2, nil
	default:
		return 0, &InvalidFormatError{Value: s}
	}
}

func (f Format) String() string {
	switch f {
	case FormatMP1:
		return "mp1"
	case FormatMP2:
		return "mp2"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// HeaderSize returns the packed header size for the format, or 0 if the
// format is unknown.
func (f Format) HeaderSize() int {
	switch f {
	case FormatMP1:
		return HeaderSizeMP1
	case FormatMP2:
		return HeaderSizeMP2
	default:
		return 0
	}
}

// Header is a boot header record for one of the supported variants.
type Header interface {
	// Format reports which variant the header is
	Format() Format

	// MarshalBinary packs the header into its exact on-disk layout
	MarshalBinary() ([]byte, error)

	// Summary returns a variant-independent view of the header fields
	Summary() Summary
}

// HeaderMP1 is the STM32MP1x boot header.
//
// Layout (little-endian, 256 bytes):
//
//	[MAGIC(4)][SIGNATURE(64)][CHECKSUM(4)][VERSION(4)][LENGTH(4)]
//	[ENTRY(4)][RSVD(4)][LOAD(4)][RSVD(4)][IMAGE_VER(4)][OPTIONS(4)]
//	[ECDSA_ALGO(4)][SIGNATURE(64)][PADDING(83)][BINARY_TYPE(1)]
type HeaderMP1 struct {
	Magic             [4]byte
	Signature         [SignatureSize]byte
	Checksum          uint32
	HeaderVersion     uint32
	PayloadLength     uint32
	EntryPoint        uint32
	LoadAddress       uint32
	ImageVersion      uint32
	OptionFlags       uint32
	ECDSAAlgorithm    uint32
	TrailingSignature [SignatureSize]byte
	BinaryType        byte
}

// Format implements Header.
func (h *HeaderMP1) Format() Format { return FormatMP1 }

// Summary implements Header.
func (h *HeaderMP1) Summary() Summary {
	return Summary{
		Format:         FormatMP1.String(),
		HeaderSize:     HeaderSizeMP1,
		HeaderVersion:  h.HeaderVersion,
		Checksum:       h.Checksum,
		PayloadLength:  h.PayloadLength,
		EntryPoint:     h.EntryPoint,
		LoadAddress:    h.LoadAddress,
		ImageVersion:   h.ImageVersion,
		OptionFlags:    h.OptionFlags,
		ECDSAAlgorithm: h.ECDSAAlgorithm,
		BinaryType:     uint32(h.BinaryType),
	}
}

// HeaderMP2 is the STM32MP2x boot header.
//
// Layout (little-endian, 128 bytes):
//
//	[MAGIC(4)][SIGNATURE(64)][CHECKSUM(4)][VERSION(4)][LENGTH(4)]
//	[ENTRY(4)][RSVD(12)][IMAGE_VER(4)][OPTIONS(4)][EXT_LEN(4)]
//	[BINARY_TYPE(4)][PADDING(8)][NS_LENGTH(4)][NS_HASH(4)]
type HeaderMP2 struct {
	Magic                  [4]byte
	Signature              [SignatureSize]byte
	Checksum               uint32
	HeaderVersion          uint32
	PayloadLength          uint32
	EntryPoint             uint32
	ImageVersion           uint32
	OptionFlags            uint32
	ExtensionLength        uint32
	BinaryType             uint32
	NonSecurePayloadLength uint32
	NonSecurePayloadHash   uint32
}

// Format implements Header.
func (h *HeaderMP2) Format() Format { return FormatMP2 }

// Summary implements Header.
func (h *HeaderMP2) Summary() Summary {
	return Summary{
		Format:          FormatMP2.String(),
		HeaderSize:      HeaderSizeMP2,
		HeaderVersion:   h.HeaderVersion,
		Checksum:        h.Checksum,
		PayloadLength:   h.PayloadLength,
		EntryPoint:      h.EntryPoint,
		ImageVersion:    h.ImageVersion,
		OptionFlags:     h.OptionFlags,
		ExtensionLength: h.ExtensionLength,
		BinaryType:      h.BinaryType,
	}
}

// Summary is a flattened view of a header for display and logging.
// Fields that a variant does not carry are left zero.
type Summary struct {
	Format          string `json:"format" yaml:"format"`
	HeaderSize      int    `json:"header_size" yaml:"header_size"`
	HeaderVersion   uint32 `json:"header_version" yaml:"header_version"`
	Checksum        uint32 `json:"checksum" yaml:"checksum"`
	PayloadLength   uint32 `json:"payload_length" yaml:"payload_length"`
	EntryPoint      uint32 `json:"entry_point" yaml:"entry_point"`
	LoadAddress     uint32 `json:"load_address,omitempty" yaml:"load_address,omitempty"`
	ImageVersion    uint32 `json:"image_version" yaml:"image_version"`
	OptionFlags     uint32 `json:"option_flags" yaml:"option_flags"`
	ECDSAAlgorithm  uint32 `json:"ecdsa_algorithm,omitempty" yaml:"ecdsa_algorithm,omitempty"`
	ExtensionLength uint32 `json:"extension_length,omitempty" yaml:"extension_length,omitempty"`
	BinaryType      uint32 `json:"binary_type" yaml:"binary_type"`
}
