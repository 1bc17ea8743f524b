package fsbl

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stamp builds a complete headed image from raw.
func stamp(t *testing.T, raw []byte, format Format) []byte {
	t.Helper()
	header, payload, err := Build(raw, format)
	require.NoError(t, err)
	return append(header, payload...)
}

func TestParseHeader(t *testing.T) {
	raw := rawImage(PayloadOffset+64, 0x3C)

	t.Run("mp1", func(t *testing.T) {
		h, err := ParseHeader(stamp(t, raw, FormatMP1))
		require.NoError(t, err)

		mp1, ok := h.(*HeaderMP1)
		require.True(t, ok)
		assert.Equal(t, FormatMP1, h.Format())
		assert.Equal(t, Magic, mp1.Magic)
		assert.Equal(t, uint32(64*0x3C), mp1.Checksum)
		assert.Equal(t, uint32(HeaderVersionMP1), mp1.HeaderVersion)
		assert.Equal(t, uint32(64), mp1.PayloadLength)
		assert.Equal(t, uint32(EntryPoint), mp1.EntryPoint)
		assert.Equal(t, uint32(LoadAddress), mp1.LoadAddress)
		assert.Equal(t, uint32(OptionNoSignatureCheck), mp1.OptionFlags)
		assert.Equal(t, uint32(ECDSAP256), mp1.ECDSAAlgorithm)
		assert.Equal(t, byte(BinaryTypeUBoot), mp1.BinaryType)
	})

	t.Run("mp2", func(t *testing.T) {
		h, err := ParseHeader(stamp(t, raw, FormatMP2))
		require.NoError(t, err)

		mp2, ok := h.(*HeaderMP2)
		require.True(t, ok)
		assert.Equal(t, FormatMP2, h.Format())
		assert.Equal(t, uint32(64*0x3C), mp2.Checksum)
		assert.Equal(t, uint32(HeaderVersionMP2), mp2.HeaderVersion)
		assert.Equal(t, uint32(64), mp2.PayloadLength)
		assert.Equal(t, uint32(EntryPoint), mp2.EntryPoint)
		assert.Equal(t, uint32(BinaryTypeFSBLM), mp2.BinaryType)
		assert.Zero(t, mp2.NonSecurePayloadLength)
		assert.Zero(t, mp2.NonSecurePayloadHash)
	})
}

func TestParseHeader_RoundTrip(t *testing.T) {
	for _, format := range []Format{FormatMP1, FormatMP2} {
		t.Run(format.String(), func(t *testing.T) {
			header, _, err := Build(rawImage(PayloadOffset+10, 0x77), format)
			require.NoError(t, err)

			h, err := ParseHeader(header)
			require.NoError(t, err)

			repacked, err := h.MarshalBinary()
			require.NoError(t, err)
			assert.Equal(t, header, repacked)
		})
	}
}

func TestParseHeader_Errors(t *testing.T) {
	unknown := make([]byte, HeaderSizeMP1)
	copy(unknown, "STM2")
	binary.LittleEndian.PutUint32(unknown[VersionOffset:], 0x00030000)

	truncatedMP1 := stamp(t, rawImage(PayloadOffset, 0), FormatMP1)[:HeaderSizeMP1-1]

	tests := []struct {
		name  string
		data  []byte
		check func(t *testing.T, err error)
	}{
		{
			name: "no magic",
			data: make([]byte, HeaderSizeMP1),
			check: func(t *testing.T, err error) {
				var target *MissingMagicError
				require.True(t, errors.As(err, &target))
				assert.Equal(t, []byte{0, 0, 0, 0}, target.Got)
			},
		},
		{
			name: "empty",
			data: nil,
			check: func(t *testing.T, err error) {
				var target *MissingMagicError
				assert.True(t, errors.As(err, &target))
			},
		},
		{
			name: "magic without version",
			data: []byte("STM2"),
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "header too short")
			},
		},
		{
			name: "unknown version",
			data: unknown,
			check: func(t *testing.T, err error) {
				var target *UnsupportedVersionError
				require.True(t, errors.As(err, &target))
				assert.Equal(t, uint32(0x00030000), target.Version)
			},
		},
		{
			name: "truncated mp1",
			data: truncatedMP1,
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "MP1 header")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ParseHeader(tt.data)
			require.Error(t, err)
			assert.Nil(t, h)
			tt.check(t, err)
		})
	}
}

func TestVerify(t *testing.T) {
	raw := rawImage(PayloadOffset+100, 0x01)

	for _, format := range []Format{FormatMP1, FormatMP2} {
		t.Run(format.String(), func(t *testing.T) {
			image := stamp(t, raw, format)

			h, payload, err := Verify(image)
			require.NoError(t, err)
			assert.Equal(t, format, h.Format())
			assert.Equal(t, raw[PayloadOffset:], payload)
			assert.Equal(t, uint32(100), h.Summary().Checksum)
		})
	}
}

func TestVerify_Corrupted(t *testing.T) {
	raw := rawImage(PayloadOffset+100, 0x01)

	t.Run("flipped payload byte", func(t *testing.T) {
		image := stamp(t, raw, FormatMP2)
		image[len(image)-1] = 0x02

		_, _, err := Verify(image)
		var target *ChecksumMismatchError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, uint32(100), target.Expected)
		assert.Equal(t, uint32(101), target.Actual)
	})

	t.Run("truncated payload", func(t *testing.T) {
		image := stamp(t, raw, FormatMP1)
		image = image[:len(image)-10]

		_, _, err := Verify(image)
		var target *PayloadLengthError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, uint32(100), target.Expected)
		assert.Equal(t, 90, target.Actual)
	})

	t.Run("trailing bytes", func(t *testing.T) {
		image := append(stamp(t, raw, FormatMP1), 0x00)

		_, _, err := Verify(image)
		var target *PayloadLengthError
		assert.True(t, errors.As(err, &target))
	})
}

func TestSummary(t *testing.T) {
	h1, err := NewHeader([]byte{1, 2, 3}, FormatMP1)
	require.NoError(t, err)
	s1 := h1.Summary()
	assert.Equal(t, "mp1", s1.Format)
	assert.Equal(t, HeaderSizeMP1, s1.HeaderSize)
	assert.Equal(t, uint32(LoadAddress), s1.LoadAddress)
	assert.Equal(t, uint32(6), s1.Checksum)

	h2, err := NewHeader([]byte{1, 2, 3}, FormatMP2)
	require.NoError(t, err)
	s2 := h2.Summary()
	assert.Equal(t, "mp2", s2.Format)
	assert.Equal(t, HeaderSizeMP2, s2.HeaderSize)
	assert.Zero(t, s2.LoadAddress)
	assert.Equal(t, uint32(BinaryTypeFSBLM), s2.BinaryType)
}
