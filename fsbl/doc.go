// Package fsbl builds and parses STM32MP boot headers for first-stage boot
// loader (FSBL) images.
//
// The STM32MP boot ROM only loads images that start with a fixed-layout
// header carrying the "STM2" magic, a payload checksum, the payload length
// and the entrypoint address. Two hardware generations use different layouts:
//
//	MP1: 256 bytes, header version 0x00010000, load address + options + ECDSA algorithm
//	MP2: 128 bytes, header version 0x00020200, extension length + non-secure payload fields
//
// All fields are little-endian. Signature fields are always zero; this
// package does not sign images.
//
// # Building a header
//
// The raw input reserves its first PayloadOffset (0x100) bytes for a header.
// Build drops them and returns a fresh header for the remaining payload:
//
//	raw, _ := os.ReadFile("u-boot-spl.bin")
//	header, payload, err := fsbl.Build(raw, fsbl.FormatMP1)
//	if fsbl.IsAlreadyHeaded(err) {
//	    // input was stamped before
//	}
//	image := append(header, payload...)
//
// # Checksum
//
// The checksum is the sum of all payload bytes, truncated to 32 bits:
//
//	sum := fsbl.Checksum(payload)
//
// # Verifying a stamped image
//
// Verify parses the header, detects the variant from the header version,
// and checks length and checksum against the payload:
//
//	h, payload, err := fsbl.Verify(image)
//	fmt.Printf("%s header, %d byte payload\n", h.Format(), len(payload))
//
// # Error Handling
//
// Failures are reported with typed errors: AlreadyHeadedError,
// InvalidFormatError, MissingMagicError, UnsupportedVersionError,
// PayloadLengthError and ChecksumMismatchError. Use errors.As or the
// Is* helpers to match them.
package fsbl
