// Package store persists benchmark datasets and results in an embedded
// key-value engine.
package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when a dataset is not in the store.
var ErrNotFound = errors.New("store: not found")

const (
	Bolt   = "bbolt"
	Badger = "badger"
	Pebble = "pebble"
	Memory = "memory"
)

var (
	datasetPrefix = []byte("dataset/")
	resultPrefix  = []byte("result/")
)

// Record is one timed sort of one dataset.
type Record struct {
	Algorithm    string        `json:"algorithm"`
	DataSize     int           `json:"data_size"`
	StorageType  string        `json:"storage_type"`
	TestRun      int           `json:"test_run"`
	Duration     time.Duration `json:"duration"`
	MemoryUsage  uint64        `json:"memory_usage_bytes"`
	GoroutineNum int           `json:"goroutine_num"`
	Runs         int           `json:"runs,omitempty"`
	Rounds       int           `json:"rounds,omitempty"`
	Sorted       bool          `json:"sorted"`
}

// key orders records by algorithm, size and run.
func (r Record) key() []byte {
	return []byte(fmt.Sprintf("%s%s/%012d/%04d", resultPrefix, r.Algorithm, r.DataSize, r.TestRun))
}

// kv is the minimal surface every engine provides.
type kv interface {
	put(key, value []byte) error
	// get returns ErrNotFound for a missing key. The value is owned by the
	// caller.
	get(key []byte) ([]byte, error)
	// scan visits keys with prefix in ascending order.
	scan(prefix []byte, fn func(key, value []byte) error) error
	close() error
}

// Store keeps datasets and results in one backend.
type Store struct {
	backend string
	kv      kv
}

// Open opens backend at path. The memory backend ignores path.
func Open(backend, path string) (*Store, error) {
	var (
		db  kv
		err error
	)
	switch backend {
	case Bolt:
		db, err = openBolt(path)
	case Badger:
		db, err = openBadger(path)
	case Pebble:
		db, err = openPebble(path)
	case Memory, "":
		backend, db = Memory, newMemory()
	default:
		return nil, errors.Errorf("store: unknown backend %q", backend)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "open %s store at %s", backend, path)
	}
	return &Store{backend: backend, kv: db}, nil
}

func (s *Store) Backend() string { return s.backend }

// PutDataset stores data under name, replacing any previous dataset.
func (s *Store) PutDataset(name string, data []float64) error {
	key := append(append([]byte{}, datasetPrefix...), name...)
	return errors.Wrapf(s.kv.put(key, encodeFloats(data)), "put dataset %s", name)
}

// GetDataset loads the dataset stored under name.
func (s *Store) GetDataset(name string) ([]float64, error) {
	key := append(append([]byte{}, datasetPrefix...), name...)
	buf, err := s.kv.get(key)
	if err != nil {
		return nil, err
	}
	return decodeFloats(buf)
}

func (s *Store) PutResult(r Record) error {
	buf, err := json.Marshal(r)
	if err != nil {
		return errors.Wrap(err, "encode result")
	}
	return errors.Wrapf(s.kv.put(r.key(), buf), "put result %s", r.key())
}

// Results returns every stored record ordered by algorithm, size and run.
func (s *Store) Results() ([]Record, error) {
	var out []Record
	err := s.kv.scan(resultPrefix, func(key, value []byte) error {
		var r Record
		if err := json.Unmarshal(value, &r); err != nil {
			return errors.Wrapf(err, "decode result %s", key)
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

func (s *Store) Close() error {
	return s.kv.close()
}

// encodeFloats writes a count header followed by big-endian IEEE-754
// values, so even an empty dataset has a non-empty encoding.
func encodeFloats(data []float64) []byte {
	buf := make([]byte, 8+8*len(data))
	binary.BigEndian.PutUint64(buf, uint64(len(data)))
	for i, v := range data {
		binary.BigEndian.PutUint64(buf[8+8*i:], math.Float64bits(v))
	}
	return buf
}

func decodeFloats(buf []byte) ([]float64, error) {
	if len(buf) < 8 || len(buf)%8 != 0 {
		return nil, errors.Errorf("store: corrupt dataset of %d bytes", len(buf))
	}
	n := binary.BigEndian.Uint64(buf)
	if n != uint64(len(buf)/8-1) {
		return nil, errors.Errorf("store: dataset header says %d values, found %d", n, len(buf)/8-1)
	}
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Float64frombits(binary.BigEndian.Uint64(buf[8+8*i:]))
	}
	return data, nil
}
