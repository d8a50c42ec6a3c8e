package command

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/crypto/blake2b"
)

// journalMagic prefixes every journal file
var journalMagic = []byte("OPJ1")

var (
	ErrNotJournal     = errors.New("not a journal file")
	ErrCorruptJournal = errors.New("journal digest mismatch")
)

// Header identifies the match a journal belongs to. A replay is only
// faithful with the same seed, tick rate and catalog.
type Header struct {
	ID       string    `msgpack:"id"`
	MatchID  string    `msgpack:"match"`
	Seed     int64     `msgpack:"seed"`
	TickRate float64   `msgpack:"tick_rate"`
	Catalog  [32]byte  `msgpack:"catalog"`
	Created  time.Time `msgpack:"created"`
}

// Journal records the mutating commands of one match
type Journal struct {
	Header   Header    `msgpack:"header"`
	Commands []Command `msgpack:"commands"`
	Ticks    uint64    `msgpack:"ticks"` // length of the recorded match
}

// envelope is what gets compressed: the encoded journal and its digest
type envelope struct {
	Digest  []byte `msgpack:"digest"`
	Payload []byte `msgpack:"payload"`
}

// NewJournal starts an empty journal for a match
func NewJournal(matchID uuid.UUID, seed int64, tickRate float64, catalog [32]byte) *Journal {
	return &Journal{
		Header: Header{
			ID:       uuid.NewString(),
			MatchID:  matchID.String(),
			Seed:     seed,
			TickRate: tickRate,
			Catalog:  catalog,
			Created:  time.Now().UTC(),
		},
	}
}

// Record appends a command. Non-mutating commands are ignored.
func (j *Journal) Record(cmd Command) {
	if !cmd.Mutates() {
		return
	}
	j.Commands = append(j.Commands, cmd)
}

// Schedule pushes every recorded command onto q at its original tick
func (j *Journal) Schedule(q *Queue) {
	for _, c := range j.Commands {
		q.Push(c)
	}
}

// Encode writes the journal as lz4-compressed msgpack with a digest
func (j *Journal) Encode(w io.Writer) error {
	payload, err := msgpack.Marshal(j)
	if err != nil {
		return fmt.Errorf("encode journal: %w", err)
	}
	sum := blake2b.Sum256(payload)
	body, err := msgpack.Marshal(&envelope{Digest: sum[:], Payload: payload})
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	if _, err := w.Write(journalMagic); err != nil {
		return err
	}
	zw := lz4.NewWriter(w)
	if _, err := zw.Write(body); err != nil {
		return fmt.Errorf("compress journal: %w", err)
	}
	return zw.Close()
}

// Decode reads a journal written by Encode and verifies its digest
func Decode(r io.Reader) (*Journal, error) {
	magic := make([]byte, len(journalMagic))
	if _, err := io.ReadFull(r, magic); err != nil || !bytes.Equal(magic, journalMagic) {
		return nil, ErrNotJournal
	}

	body, err := io.ReadAll(lz4.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("decompress journal: %w", err)
	}
	var env envelope
	if err := msgpack.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	sum := blake2b.Sum256(env.Payload)
	if !bytes.Equal(sum[:], env.Digest) {
		return nil, ErrCorruptJournal
	}

	j := &Journal{}
	if err := msgpack.Unmarshal(env.Payload, j); err != nil {
		return nil, fmt.Errorf("decode journal: %w", err)
	}
	return j, nil
}

// Save writes the journal to path
func (j *Journal) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := j.Encode(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write journal: %w", err)
	}
	return f.Close()
}

// Load reads a journal file
func Load(path string) (*Journal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	j, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return j, nil
}
