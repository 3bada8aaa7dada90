package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSniffAudioFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"id3 mp3", append([]byte("ID3"), make([]byte, 16)...), "mp3"},
		{"frame sync mp3", []byte{0xFF, 0xFB, 0x90, 0x00}, "mp3"},
		{"wav", append([]byte("RIFF\x00\x00\x00\x00WAVE"), make([]byte, 8)...), "wav"},
		{"ogg", []byte("OggS\x00\x00"), "ogg"},
		{"flac", []byte("fLaC\x00\x00"), "flac"},
		{"m4a", []byte("\x00\x00\x00\x20ftypM4A \x00\x00\x00\x00"), "m4a"},
		{"webm", []byte{0x1A, 0x45, 0xDF, 0xA3, 0x00}, "webm"},
		{"unknown", []byte("garbage"), "mp3"},
		{"empty", nil, "mp3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SniffAudioFormat(tt.data))
		})
	}
}

func TestSniffImageMIME(t *testing.T) {
	assert.Equal(t, "image/png", SniffImageMIME([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00}))
	assert.Equal(t, "image/jpeg", SniffImageMIME([]byte{0xFF, 0xD8, 0xFF, 0xE0}))
	assert.Equal(t, "image/gif", SniffImageMIME([]byte("GIF89a....")))
	assert.Equal(t, "image/webp", SniffImageMIME([]byte("RIFF\x00\x00\x00\x00WEBPVP8 ")))
	assert.Equal(t, "image/jpeg", SniffImageMIME([]byte("nope")))
}

func TestEncodeImageDataURI(t *testing.T) {
	uri := EncodeImageDataURI([]byte{0x01, 0x02}, "image/png")
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}
