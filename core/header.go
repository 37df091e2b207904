package tarprobe

import (
	"bytes"
	"fmt"
	"time"

	"github.com/meigma/tarprobe/core/internal/octal"
	"github.com/meigma/tarprobe/core/internal/sizing"
)

// BlockSize is the size of a header block and the unit of payload alignment.
const BlockSize = sizing.BlockSize

// Magic values stored at offset 257 of a header block.
const (
	magicUSTAR = "ustar\x00"
	magicGNU   = "ustar  \x00" // magic and version fields together
)

// Block is one raw header block as read from the stream.
type Block [BlockSize]byte

func (b *Block) name() []byte      { return b[0:100] }
func (b *Block) mode() []byte      { return b[100:108] }
func (b *Block) uid() []byte       { return b[108:116] }
func (b *Block) gid() []byte       { return b[116:124] }
func (b *Block) size() []byte      { return b[124:136] }
func (b *Block) modTime() []byte   { return b[136:148] }
func (b *Block) chksum() []byte    { return b[148:156] }
func (b *Block) linkName() []byte  { return b[157:257] }
func (b *Block) magic() []byte     { return b[257:263] }
func (b *Block) version() []byte   { return b[263:265] }
func (b *Block) userName() []byte  { return b[265:297] }
func (b *Block) groupName() []byte { return b[297:329] }
func (b *Block) devMajor() []byte  { return b[329:337] }
func (b *Block) devMinor() []byte  { return b[337:345] }
func (b *Block) prefix() []byte    { return b[345:500] }

// IsZero reports whether every byte of the block is zero, which marks the
// end of an archive.
func (b *Block) IsZero() bool {
	return *b == Block{}
}

// ComputeChecksum returns the unsigned sum of all bytes in the block with the
// checksum field itself counted as ASCII spaces.
func (b *Block) ComputeChecksum() int64 {
	var sum int64
	for i, c := range b {
		if 148 <= i && i < 156 {
			c = ' '
		}
		sum += int64(c)
	}
	return sum
}

// SetChecksum stores the block's computed checksum in the layout USTAR
// writers use: six octal digits, a NUL, then a space.
func (b *Block) SetChecksum() {
	field := b.chksum()
	octal.Format(field[:7], b.ComputeChecksum())
	field[7] = ' '
}

// Header is the decoded form of a header block.
//
// String fields are cut at the first NUL and stripped of trailing spaces.
// The ustar-only fields (user and group names, device numbers) are decoded
// only when the block carries a "ustar" magic; Prefix only for the POSIX
// "ustar\0" magic.
type Header struct {
	// Index is the 1-based position of the entry within the archive.
	Index int64

	Name     string
	Mode     int64
	UID      int64
	GID      int64
	Size     int64
	ModTime  time.Time
	Checksum int64
	Typeflag byte
	LinkName string
	Magic    string
	Version  string
	Uname    string
	Gname    string
	DevMajor int64
	DevMinor int64
	Prefix   string
}

// Path returns the entry name joined with the ustar prefix, if any.
func (h *Header) Path() string {
	if h.Prefix == "" {
		return h.Name
	}
	return h.Prefix + "/" + h.Name
}

// DecodeHeader verifies the checksum of b and decodes its fields.
//
// A checksum mismatch or a numeric field containing a non-octal digit is
// reported as a *HeaderError. DecodeHeader does not recognize end-of-archive
// blocks; callers check [Block.IsZero] first.
func DecodeHeader(b *Block) (*Header, error) {
	stored, err := octal.ParseOctal(b.chksum())
	if err != nil {
		return nil, &HeaderError{Field: "chksum", Err: fmt.Errorf("%w: %v", ErrInvalidNumeric, err)}
	}
	if computed := b.ComputeChecksum(); stored != computed {
		return nil, &HeaderError{
			Field: "chksum",
			Err:   fmt.Errorf("%w: stored %d, computed %d", ErrChecksumMismatch, stored, computed),
		}
	}

	var d numericDecoder
	h := &Header{
		Name:     cString(b.name()),
		Mode:     d.field("mode", b.mode()),
		UID:      d.field("uid", b.uid()),
		GID:      d.field("gid", b.gid()),
		Size:     d.field("size", b.size()),
		ModTime:  time.Unix(d.field("mtime", b.modTime()), 0).UTC(),
		Checksum: stored,
		Typeflag: b[156],
		LinkName: cString(b.linkName()),
		Magic:    cString(b.magic()),
		Version:  cString(b.version()),
	}
	if bytes.HasPrefix(b.magic(), []byte("ustar")) {
		h.Uname = cString(b.userName())
		h.Gname = cString(b.groupName())
		h.DevMajor = d.field("devmajor", b.devMajor())
		h.DevMinor = d.field("devminor", b.devMinor())
	}
	if string(b.magic()) == magicUSTAR {
		h.Prefix = cString(b.prefix())
	}
	if d.err != nil {
		return nil, d.err
	}
	if h.Size < 0 {
		return nil, &HeaderError{Field: "size", Err: fmt.Errorf("%w: negative size %d", ErrSizeOverflow, h.Size)}
	}
	return h, nil
}

// numericDecoder keeps the first numeric field failure so a header can be
// decoded field by field without checking after every call.
type numericDecoder struct {
	err error
}

func (d *numericDecoder) field(name string, field []byte) int64 {
	if d.err != nil {
		return 0
	}
	v, err := octal.Parse(field)
	if err != nil {
		d.err = &HeaderError{Field: name, Err: fmt.Errorf("%w: %v", ErrInvalidNumeric, err)}
		return 0
	}
	return v
}

// cString returns the bytes before the first NUL with trailing spaces removed.
func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(bytes.TrimRight(b, " "))
}
