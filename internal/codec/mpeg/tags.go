package mpeg

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tcolgate/mp3"
)

const (
	id3v2HeaderSize = 10
	id3v2FooterFlag = 0x10
	id3v1Size       = 128
	vbriOffset      = 32
)

var ErrTruncatedTag = errors.New("truncated ID3v2 tag")

// audioStream returns data starting at the first audio frame. Leading ID3v2
// tags, a trailing ID3v1 tag and a Xing, Info or VBRI header frame are cut
// off: none of them carry audio, and tag payloads such as cover art are full
// of bytes that look like frame syncs.
func audioStream(data []byte) ([]byte, error) {
	data, err := skipID3v2(data)
	if err != nil {
		return nil, err
	}

	if len(data) >= id3v1Size && bytes.HasPrefix(data[len(data)-id3v1Size:], []byte("TAG")) {
		data = data[:len(data)-id3v1Size]
	}

	var (
		frame   mp3.Frame
		skipped int
	)

	// Errors are left to the caller, which walks the same bytes again.
	if err = mp3.NewDecoder(bytes.NewReader(data)).Decode(&frame, &skipped); err != nil {
		return data, nil //nolint:nilerr // reported by the real pass
	}

	if isInfoFrame(&frame) {
		return data[skipped+frame.Size():], nil
	}

	return data, nil
}

func skipID3v2(data []byte) ([]byte, error) {
	for len(data) >= id3v2HeaderSize && bytes.HasPrefix(data, []byte("ID3")) {
		size := id3v2HeaderSize + syncsafe(data[6:10])
		if data[5]&id3v2FooterFlag != 0 {
			size += id3v2HeaderSize
		}

		if size > len(data) {
			return nil, fmt.Errorf("%w: %d bytes declared, %d available", ErrTruncatedTag, size, len(data))
		}

		data = data[size:]
	}

	return data, nil
}

// syncsafe decodes the 28-bit big-endian integer ID3v2 stores 7 bits per byte.
func syncsafe(b []byte) int {
	return int(b[0]&0x7f)<<21 | int(b[1]&0x7f)<<14 | int(b[2]&0x7f)<<7 | int(b[3]&0x7f)
}

// isInfoFrame reports whether frame is an encoder header rather than audio.
// Xing and Info sit right after the side info, VBRI at a fixed offset.
func isInfoFrame(frame *mp3.Frame) bool {
	body := frame.SideInfo()

	sideLen, err := frame.SideInfoLength()
	if err == nil && len(body) >= sideLen+4 {
		switch string(body[sideLen : sideLen+4]) {
		case "Xing", "Info":
			return true
		}
	}

	return len(body) >= vbriOffset+4 && string(body[vbriOffset:vbriOffset+4]) == "VBRI"
}
