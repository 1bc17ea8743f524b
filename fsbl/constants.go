package fsbl

// Magic is the marker the boot ROM expects at offset 0 of every headed image.
var Magic = [4]byte{'S', 'T', 'M', '2'}

// Image layout constants shared by both header variants.
const (
	// PayloadOffset is where the payload starts in a raw input image.
	// The first 0x100 bytes are reserved for a header and are dropped.
	PayloadOffset = 0x100

	// MagicSize is the length of the magic marker in bytes
	MagicSize = 4

	// SignatureSize is the size of an ECDSA signature field (8 x 64-bit words)
	SignatureSize = 64

	// VersionOffset is the offset of the header version word, identical in both variants
	VersionOffset = 72
)

// Memory map of the STM32MP SYSRAM as seen by the boot ROM.
const (
	// SYSRAMBase is the start of SYSRAM
	SYSRAMBase = 0x2FFC0000

	// BootROMDataSize is the SYSRAM area reserved for boot ROM data
	BootROMDataSize = 0x2400

	// LoadAddress is where the boot ROM places the headed image
	LoadAddress = SYSRAMBase + BootROMDataSize

	// EntryPoint skips past the 0x100 byte header at LoadAddress
	EntryPoint = LoadAddress + 0x100
)

// MP1 header constants (STM32MP1x).
const (
	// HeaderSizeMP1 is the packed size of an MP1 header
	HeaderSizeMP1 = 256

	// HeaderVersionMP1 is the header version word for MP1 (v1.0)
	HeaderVersionMP1 = 0x00010000

	// OptionNoSignatureCheck disables signature verification in the boot ROM
	OptionNoSignatureCheck = 0x01

	// ECDSAP256 selects the P-256 NIST curve. Unused while images are unsigned.
	ECDSAP256 = 0x01

	// BinaryTypeUBoot is the MP1 binary type tag for U-Boot
	BinaryTypeUBoot = 0x00

	// paddingSizeMP1 is the reserved run before the MP1 binary type byte
	paddingSizeMP1 = 83
)

// MP2 header constants (STM32MP2x).
const (
	// HeaderSizeMP2 is the packed size of an MP2 header
	HeaderSizeMP2 = 128

	// HeaderVersionMP2 is the header version word for MP2 (v2.2)
	HeaderVersionMP2 = 0x00020200

	// BinaryTypeFSBLM is the MP2 binary type tag for an FSBL-M image
	BinaryTypeFSBLM = 0x00000030

	// reservedWordsMP2 is the number of reserved 32-bit words after the entrypoint
	reservedWordsMP2 = 3

	// paddingSizeMP2 is the unnamed padding before the non-secure payload fields
	paddingSizeMP2 = 8
)
