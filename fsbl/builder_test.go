package fsbl

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawImage returns a raw input of the given size whose payload region
// (from PayloadOffset) is filled with fill.
func rawImage(size int, fill byte) []byte {
	raw := make([]byte, size)
	for i := PayloadOffset; i < size; i++ {
		raw[i] = fill
	}
	return raw
}

func TestBuild_MP2ZeroPayload(t *testing.T) {
	raw := make([]byte, 260)

	header, payload, err := Build(raw, FormatMP2)
	require.NoError(t, err)

	assert.Len(t, header, HeaderSizeMP2)
	assert.Equal(t, []byte{0, 0, 0, 0}, payload)
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(header[68:72]), "checksum")
	assert.Equal(t, uint32(4), binary.LittleEndian.Uint32(header[76:80]), "payload length")
	assert.Equal(t, 132, len(header)+len(payload))
}

func TestBuild_MP1OnesPayload(t *testing.T) {
	raw := rawImage(356, 0x01)

	header, payload, err := Build(raw, FormatMP1)
	require.NoError(t, err)

	assert.Len(t, header, HeaderSizeMP1)
	assert.Equal(t, bytes.Repeat([]byte{0x01}, 100), payload)
	assert.Equal(t, uint32(100), binary.LittleEndian.Uint32(header[68:72]), "checksum")
	assert.Equal(t, uint32(100), binary.LittleEndian.Uint32(header[76:80]), "payload length")
	assert.Equal(t, 356, len(header)+len(payload))
}

func TestBuild_MP2Layout(t *testing.T) {
	raw := rawImage(PayloadOffset+16, 0xA5)

	header, _, err := Build(raw, FormatMP2)
	require.NoError(t, err)

	expected := make([]byte, HeaderSizeMP2)
	copy(expected[0:4], "STM2")
	binary.LittleEndian.PutUint32(expected[68:], 16*0xA5)
	binary.LittleEndian.PutUint32(expected[72:], 0x00020200)
	binary.LittleEndian.PutUint32(expected[76:], 16)
	binary.LittleEndian.PutUint32(expected[80:], 0x2FFC2500)
	binary.LittleEndian.PutUint32(expected[108:], 0x30)

	assert.Equal(t, expected, header)
}

func TestBuild_MP1Layout(t *testing.T) {
	raw := rawImage(PayloadOffset+16, 0xA5)

	header, _, err := Build(raw, FormatMP1)
	require.NoError(t, err)

	expected := make([]byte, HeaderSizeMP1)
	copy(expected[0:4], "STM2")
	binary.LittleEndian.PutUint32(expected[68:], 16*0xA5)
	binary.LittleEndian.PutUint32(expected[72:], 0x00010000)
	binary.LittleEndian.PutUint32(expected[76:], 16)
	binary.LittleEndian.PutUint32(expected[80:], 0x2FFC2500)
	binary.LittleEndian.PutUint32(expected[88:], 0x2FFC2400)
	binary.LittleEndian.PutUint32(expected[100:], 0x01)
	binary.LittleEndian.PutUint32(expected[104:], 0x01)
	expected[255] = 0x00

	assert.Equal(t, expected, header)
}

func TestBuild_PayloadIsTailOfRaw(t *testing.T) {
	raw := make([]byte, 1024)
	for i := range raw {
		raw[i] = byte(i * 7)
	}

	for _, format := range []Format{FormatMP1, FormatMP2} {
		t.Run(format.String(), func(t *testing.T) {
			header, payload, err := Build(raw, format)
			require.NoError(t, err)

			assert.Equal(t, raw[PayloadOffset:], payload)
			assert.Len(t, header, format.HeaderSize())
			assert.Equal(t, Checksum(payload), binary.LittleEndian.Uint32(header[68:72]))
			assert.Equal(t, uint32(len(payload)), binary.LittleEndian.Uint32(header[76:80]))
		})
	}
}

func TestBuild_AlreadyHeaded(t *testing.T) {
	raw := append([]byte("STM2"), make([]byte, 508)...)

	for _, format := range []Format{FormatMP1, FormatMP2} {
		t.Run(format.String(), func(t *testing.T) {
			_, _, err1 := Build(raw, format)
			_, _, err2 := Build(raw, format)

			require.Error(t, err1)
			assert.True(t, IsAlreadyHeaded(err1))
			assert.Equal(t, err1, err2)
			assert.Equal(t, "STM2", string(raw[:4]), "input must not be modified")
		})
	}
}

func TestBuild_ShortInputs(t *testing.T) {
	tests := []struct {
		name       string
		raw        []byte
		wantErr    bool
		wantLength int
	}{
		{name: "nil", raw: nil},
		{name: "three bytes of magic", raw: []byte("STM")},
		{name: "bare magic", raw: []byte("STM2"), wantErr: true},
		{name: "below payload offset", raw: make([]byte, 100)},
		{name: "exactly payload offset", raw: make([]byte, PayloadOffset)},
		{name: "one payload byte", raw: make([]byte, PayloadOffset+1), wantLength: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, payload, err := Build(tt.raw, FormatMP2)
			if tt.wantErr {
				assert.True(t, IsAlreadyHeaded(err))
				return
			}
			require.NoError(t, err)
			assert.Len(t, payload, tt.wantLength)
			assert.Equal(t, uint32(tt.wantLength), binary.LittleEndian.Uint32(header[76:80]))
		})
	}
}

func TestBuild_InvalidFormat(t *testing.T) {
	_, _, err := Build(make([]byte, 300), Format(7))
	require.Error(t, err)
	assert.True(t, IsInvalidFormat(err))
}

func TestNewHeader(t *testing.T) {
	payload := []byte{0x10, 0x20, 0x30}

	h, err := NewHeader(payload, FormatMP1)
	require.NoError(t, err)
	mp1, ok := h.(*HeaderMP1)
	require.True(t, ok)
	assert.Equal(t, Magic, mp1.Magic)
	assert.Equal(t, uint32(0x60), mp1.Checksum)
	assert.Equal(t, uint32(3), mp1.PayloadLength)
	assert.Equal(t, uint32(LoadAddress), mp1.LoadAddress)
	assert.Equal(t, uint32(OptionNoSignatureCheck), mp1.OptionFlags)

	h, err = NewHeader(payload, FormatMP2)
	require.NoError(t, err)
	mp2, ok := h.(*HeaderMP2)
	require.True(t, ok)
	assert.Equal(t, uint32(0x60), mp2.Checksum)
	assert.Equal(t, uint32(BinaryTypeFSBLM), mp2.BinaryType)
	assert.Zero(t, mp2.OptionFlags)
}

func TestEntryPointConstants(t *testing.T) {
	assert.Equal(t, 0x2FFC2400, LoadAddress)
	assert.Equal(t, 0x2FFC2500, EntryPoint)
	assert.Equal(t, EntryPoint-LoadAddress, HeaderSizeMP1)
}

func BenchmarkBuild(b *testing.B) {
	raw := make([]byte, 128*1024)
	for i := range raw {
		raw[i] = byte(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = Build(raw, FormatMP1)
	}
}
