package audio

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
)

const wavHeaderSize = 44

// WAVSize returns the encoded size in bytes of n mono 16-bit samples.
func WAVSize(n int) int64 {
	return int64(wavHeaderSize + 2*n)
}

// EncodeWAV writes samples in [-1, 1] as a mono 16-bit PCM RIFF/WAVE stream.
func EncodeWAV(w io.Writer, samples []float64, sampleRate int) error {
	bw := bufio.NewWriter(w)
	dataLen := uint32(2 * len(samples))

	header := []interface{}{
		[4]byte{'R', 'I', 'F', 'F'},
		uint32(36 + dataLen),
		[4]byte{'W', 'A', 'V', 'E'},
		[4]byte{'f', 'm', 't', ' '},
		uint32(16),             // fmt chunk size
		uint16(1),              // PCM
		uint16(1),              // mono
		uint32(sampleRate),     // sample rate
		uint32(sampleRate * 2), // byte rate
		uint16(2),              // block align
		uint16(16),             // bits per sample
		[4]byte{'d', 'a', 't', 'a'},
		dataLen,
	}
	for _, field := range header {
		if err := binary.Write(bw, binary.LittleEndian, field); err != nil {
			return err
		}
	}

	buf := make([]byte, 2)
	for _, s := range samples {
		s = math.Max(-1, math.Min(1, s))
		binary.LittleEndian.PutUint16(buf, uint16(int16(math.Round(s*math.MaxInt16))))
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
