package sink

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image/jpeg"
	"io"

	"github.com/lixenwraith/taor/render"
)

// RIFF layout of the header block written before the first frame
const (
	headerSize = 224 // through the 'movi' fourcc
	moviStart  = 220 // idx1 offsets are relative to the 'movi' fourcc

	avihFlagHasIndex = 0x10
	indexKeyFrame    = 0x10
)

var errReleased = errors.New("avi writer released")

type mainHeader struct {
	MicroSecPerFrame    uint32
	MaxBytesPerSec      uint32
	PaddingGranularity  uint32
	Flags               uint32
	TotalFrames         uint32
	InitialFrames       uint32
	Streams             uint32
	SuggestedBufferSize uint32
	Width               uint32
	Height              uint32
	Reserved            [4]uint32
}

type streamHeader struct {
	Type                [4]byte
	Handler             [4]byte
	Flags               uint32
	Priority            uint16
	Language            uint16
	InitialFrames       uint32
	Scale               uint32
	Rate                uint32
	Start               uint32
	Length              uint32
	SuggestedBufferSize uint32
	Quality             uint32
	SampleSize          uint32
	Frame               [4]int16
}

type bitmapHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   [4]byte
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

type indexEntry struct {
	ID     [4]byte
	Flags  uint32
	Offset uint32
	Size   uint32
}

// AVIWriter encodes frames as JPEG chunks of a single-stream AVI
// Sizes, frame counts and the index are finalized by Release
type AVIWriter struct {
	dst     io.WriteSeeker
	closer  io.Closer
	w       *bufio.Writer
	fps     int
	width   int
	height  int
	opts    jpeg.Options
	pos     int64
	maxSize uint32
	index   []indexEntry
	jpg     bytes.Buffer
	done    bool
}

// NewAVIWriter writes a provisional header to dst; dst is closed on Release
// when it implements io.Closer
func NewAVIWriter(dst io.WriteSeeker, fps, width, height, quality int) (*AVIWriter, error) {
	a := &AVIWriter{
		dst:    dst,
		w:      bufio.NewWriterSize(dst, 1<<20),
		fps:    fps,
		width:  width,
		height: height,
		opts:   jpeg.Options{Quality: quality},
	}
	if c, ok := dst.(io.Closer); ok {
		a.closer = c
	}
	if _, err := a.w.Write(a.header(0)); err != nil {
		return nil, fmt.Errorf("failed to write AVI header: %w", err)
	}
	a.pos = headerSize
	return a, nil
}

// header renders the RIFF header block for the current frame index
func (a *AVIWriter) header(fileSize int64) []byte {
	frames := uint32(len(a.index))
	var moviSize uint32 = 4
	for _, e := range a.index {
		moviSize += 8 + e.Size + e.Size&1
	}

	var b bytes.Buffer
	le := binary.LittleEndian
	chunk := func(id string, size uint32) {
		b.WriteString(id)
		binary.Write(&b, le, size)
	}

	riffSize := uint32(0)
	if fileSize > 8 {
		riffSize = uint32(fileSize - 8)
	}
	chunk("RIFF", riffSize)
	b.WriteString("AVI ")

	chunk("LIST", 192)
	b.WriteString("hdrl")

	chunk("avih", 56)
	binary.Write(&b, le, mainHeader{
		MicroSecPerFrame:    uint32(1_000_000 / a.fps),
		MaxBytesPerSec:      a.maxSize * uint32(a.fps),
		Flags:               avihFlagHasIndex,
		TotalFrames:         frames,
		Streams:             1,
		SuggestedBufferSize: a.maxSize,
		Width:               uint32(a.width),
		Height:              uint32(a.height),
	})

	chunk("LIST", 116)
	b.WriteString("strl")

	chunk("strh", 56)
	binary.Write(&b, le, streamHeader{
		Type:                [4]byte{'v', 'i', 'd', 's'},
		Handler:             [4]byte{'M', 'J', 'P', 'G'},
		Scale:               1,
		Rate:                uint32(a.fps),
		Length:              frames,
		SuggestedBufferSize: a.maxSize,
		Quality:             0xffffffff,
		Frame:               [4]int16{0, 0, int16(a.width), int16(a.height)},
	})

	chunk("strf", 40)
	binary.Write(&b, le, bitmapHeader{
		Size:        40,
		Width:       int32(a.width),
		Height:      int32(a.height),
		Planes:      1,
		BitCount:    24,
		Compression: [4]byte{'M', 'J', 'P', 'G'},
		SizeImage:   uint32(a.width * a.height * 3),
	})

	chunk("LIST", moviSize)
	b.WriteString("movi")
	return b.Bytes()
}

// Write appends one JPEG chunk
func (a *AVIWriter) Write(f *render.Frame) error {
	if a.done {
		return errReleased
	}
	if f.Width() != a.width || f.Height() != a.height {
		return fmt.Errorf("frame is %dx%d, video is %dx%d", f.Width(), f.Height(), a.width, a.height)
	}

	a.jpg.Reset()
	if err := jpeg.Encode(&a.jpg, f.Image(), &a.opts); err != nil {
		return fmt.Errorf("failed to encode frame %d: %w", len(a.index), err)
	}
	size := uint32(a.jpg.Len())

	var head [8]byte
	copy(head[:4], "00dc")
	binary.LittleEndian.PutUint32(head[4:], size)
	if _, err := a.w.Write(head[:]); err != nil {
		return fmt.Errorf("failed to write frame %d: %w", len(a.index), err)
	}
	if _, err := a.w.Write(a.jpg.Bytes()); err != nil {
		return fmt.Errorf("failed to write frame %d: %w", len(a.index), err)
	}
	if size&1 == 1 {
		if err := a.w.WriteByte(0); err != nil {
			return fmt.Errorf("failed to write frame %d: %w", len(a.index), err)
		}
	}

	a.index = append(a.index, indexEntry{
		ID:     [4]byte{'0', '0', 'd', 'c'},
		Flags:  indexKeyFrame,
		Offset: uint32(a.pos - moviStart),
		Size:   size,
	})
	a.pos += 8 + int64(size) + int64(size&1)
	a.maxSize = max(a.maxSize, size)
	return nil
}

// Frames is the number of frames written so far
func (a *AVIWriter) Frames() int { return len(a.index) }

// Release writes the index, patches the header and closes the destination
func (a *AVIWriter) Release() error {
	if a.done {
		return nil
	}
	a.done = true

	err := a.finish()
	if a.closer != nil {
		if cerr := a.closer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close video file: %w", cerr)
		}
	}
	return err
}

func (a *AVIWriter) finish() error {
	var idx [8]byte
	copy(idx[:4], "idx1")
	binary.LittleEndian.PutUint32(idx[4:], uint32(16*len(a.index)))
	if _, err := a.w.Write(idx[:]); err != nil {
		return fmt.Errorf("failed to write AVI index: %w", err)
	}
	if err := binary.Write(a.w, binary.LittleEndian, a.index); err != nil {
		return fmt.Errorf("failed to write AVI index: %w", err)
	}
	if err := a.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush video: %w", err)
	}

	size := a.pos + 8 + int64(16*len(a.index))
	if _, err := a.dst.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to AVI header: %w", err)
	}
	if _, err := a.dst.Write(a.header(size)); err != nil {
		return fmt.Errorf("failed to patch AVI header: %w", err)
	}
	return nil
}
