package synth

import (
	"bytes"
	"math/rand/v2"
)

// Silent MP3 streams are MPEG-1 Layer III at 128 kbps and 48 kHz, so every
// frame is exactly 384 bytes and lasts 24 ms.
const (
	MP3SampleRate   = 48000
	MP3BitrateKbps  = 128
	MP3FrameSamples = 1152

	mp3FrameSize      = 384
	mp3SideInfoStereo = 32
	mp3SideInfoMono   = 17
)

// SilentMP3 returns frames of digital silence. Side info is all zero, so
// every granule has no Huffman data and decodes to zero samples.
// With info set, a Xing "Info" header frame comes first, as LAME writes for CBR.
func SilentMP3(frames int, mono, info bool) []byte {
	header := []byte{0xFF, 0xFB, 0x94, 0x00}
	sideInfo := mp3SideInfoStereo

	if mono {
		header[3] = 0xC0
		sideInfo = mp3SideInfoMono
	}

	var out bytes.Buffer

	frame := func(tag string) {
		body := make([]byte, mp3FrameSize)
		copy(body, header)
		copy(body[len(header)+sideInfo:], tag)
		out.Write(body)
	}

	if info {
		frame("Info")
	}

	for range frames {
		frame("")
	}

	return out.Bytes()
}

// ID3v2 builds an ID3v2.4 tag holding one APIC frame with picture as its
// image data. The picture is written as is, without unsynchronisation, which
// is what most taggers do. footer appends the mirrored "3DI" footer.
func ID3v2(picture []byte, footer bool) []byte {
	var apic bytes.Buffer

	apic.WriteByte(0x00) // ISO-8859-1
	apic.WriteString("image/jpeg\x00")
	apic.WriteByte(0x03) // front cover
	apic.WriteByte(0x00) // empty description
	apic.Write(picture)

	var frames bytes.Buffer

	frames.WriteString("APIC")
	frames.Write(syncsafe(apic.Len()))
	frames.Write([]byte{0x00, 0x00})
	frames.Write(apic.Bytes())

	flags := byte(0)
	if footer {
		flags = 0x10
	}

	var tag bytes.Buffer

	tag.WriteString("ID3")
	tag.Write([]byte{0x04, 0x00, flags})
	tag.Write(syncsafe(frames.Len()))
	tag.Write(frames.Bytes())

	if footer {
		tag.WriteString("3DI")
		tag.Write([]byte{0x04, 0x00, flags})
		tag.Write(syncsafe(frames.Len()))
	}

	return tag.Bytes()
}

// Cover returns size bytes of noise standing in for a compressed image. It
// opens with a JPEG marker followed by a valid MPEG-2 Layer III header
// (24 kHz, mono), the kind of accidental frame sync real cover art contains.
func Cover(seed uint64, size int) []byte {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // fixture noise

	out := make([]byte, size)
	for i := range out {
		out[i] = byte(rng.Uint32())
	}

	copy(out, []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0xFF, 0xF3, 0x44, 0xC0})

	return out
}

func syncsafe(n int) []byte {
	return []byte{
		byte(n>>21) & 0x7f,
		byte(n>>14) & 0x7f,
		byte(n>>7) & 0x7f,
		byte(n) & 0x7f,
	}
}
