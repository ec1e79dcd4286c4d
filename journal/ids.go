package journal

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

var ErrInvalidID = errors.New("invalid record ID")

// RecordID is a time-ordered snowflake-style identifier: 40 time bits (ms
// since epoch), 8 node bits, 16 sequence bits. IDs generated by one Gen sort
// in generation order, which makes them usable as the journal's primary key.
type RecordID uint64

// epochMs is Jan 1, 2020 GMT, the zero point of RecordID time bits.
const epochMs uint64 = 1577836800_000

const (
	timeBits         = 40
	nodeBits         = 8
	seqBits          = 16
	nodeShift        = seqBits
	timeShift        = nodeBits + seqBits
	timeMask  uint64 = (1 << timeBits) - 1
	nodeMask  uint64 = (1 << nodeBits) - 1
	seqMask   uint64 = (1 << seqBits) - 1
)

func (id RecordID) IsZero() bool {
	return id == 0
}

func (id RecordID) String() string {
	if id == 0 {
		return "0"
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(id))
	return hex.EncodeToString(b[:])
}

func (id RecordID) Time() time.Time {
	ms := uint64(id>>timeShift) + epochMs
	return time.UnixMilli(int64(ms)).UTC()
}

func (id RecordID) LogValue() slog.Value {
	return slog.StringValue(id.String())
}

func ParseRecordID(s string) (RecordID, error) {
	if s == "" || s == "0" {
		return 0, nil
	}
	if len(s) != 16 {
		return 0, ErrInvalidID
	}
	var b [8]byte
	if _, err := hex.Decode(b[:], []byte(s)); err != nil {
		return 0, ErrInvalidID
	}
	return RecordID(binary.BigEndian.Uint64(b[:])), nil
}

func (id RecordID) MarshalText() ([]byte, error) {
	if id == 0 {
		return nil, nil
	}
	return []byte(id.String()), nil
}

func (id *RecordID) UnmarshalText(b []byte) (err error) {
	if len(b) == 0 {
		*id = 0
		return nil
	}
	*id, err = ParseRecordID(string(b))
	return
}

func (id RecordID) EncodeMsgpack(enc *msgpack.Encoder) error {
	if id == 0 {
		return enc.EncodeNil()
	}
	return enc.EncodeUint64(uint64(id))
}

func (id *RecordID) DecodeMsgpack(dec *msgpack.Decoder) error {
	code, err := dec.PeekCode()
	if err != nil {
		return err
	}
	if code == msgpcode.Nil {
		*id = 0
		return dec.DecodeNil()
	}
	n, err := dec.DecodeUint64()
	*id = RecordID(n)
	return err
}

var (
	_ msgpack.CustomEncoder = RecordID(0)
	_ msgpack.CustomDecoder = (*RecordID)(nil)
)

// Gen hands out RecordIDs. Safe for concurrent use; a single Gen never
// returns the same ID twice, even within one millisecond.
type Gen struct {
	node uint64

	lock    sync.Mutex
	lastMs  uint64
	lastSeq uint64
}

func NewGen(node uint64) *Gen {
	if node > nodeMask {
		panic(fmt.Sprintf("node value too large: %d", node))
	}
	return &Gen{node: node, lastSeq: seqMask}
}

func (g *Gen) New() RecordID {
	return g.NewAt(time.Now())
}

func (g *Gen) NewAt(tm time.Time) RecordID {
	ms := uint64(tm.UnixMilli()) - epochMs

	g.lock.Lock()
	defer g.lock.Unlock()
	if ms < g.lastMs {
		ms = g.lastMs
	}
	if ms == g.lastMs && g.lastSeq == seqMask {
		ms++
	}
	if ms != g.lastMs {
		g.lastMs = ms
		g.lastSeq = 0
	} else {
		g.lastSeq++
	}
	if ms > timeMask {
		panic(fmt.Sprintf("time %v is unrepresentable as a RecordID", tm))
	}
	return RecordID((ms << timeShift) | (g.node << nodeShift) | g.lastSeq)
}
