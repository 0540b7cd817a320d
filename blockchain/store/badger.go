package store

import (
	"encoding/binary"

	"github.com/dgraph-io/badger/v2"
	"github.com/pkg/errors"

	"github.com/frgk/poacore/logging"
)

var log = logging.New("store.badger")

// BadgerChainStore persists canonical block blobs in a BadgerDB,
// keyed by the big-endian encoding of the block index. This is the
// durable backend a single-process node uses in place of
// MemoryChainStore.
type BadgerChainStore struct {
	db *badger.DB
}

// OpenBadgerChainStore opens (creating if absent) a Badger database at
// dir. The caller owns the returned store's lifetime and must Close it.
func OpenBadgerChainStore(dir string) (*BadgerChainStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("failed to open chain store")
		return nil, errors.Wrap(err, "open badger chain store")
	}
	log.Info().Str("dir", dir).Msg("opened chain store")
	return &BadgerChainStore{db: db}, nil
}

func (s *BadgerChainStore) Close() error {
	return s.db.Close()
}

func indexKey(index uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, index)
	return key
}

func (s *BadgerChainStore) Put(index uint64, blob []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(indexKey(index), blob)
	})
	if err != nil {
		log.Error().Err(err).Uint64("index", index).Msg("failed to store block")
		return errors.Wrap(err, "put block blob")
	}
	return nil
}

func (s *BadgerChainStore) Get(index uint64) ([]byte, bool, error) {
	var blob []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(indexKey(index))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			blob = append([]byte{}, val...)
			return nil
		})
	})
	if err != nil {
		return nil, false, errors.Wrap(err, "get block blob")
	}
	return blob, blob != nil, nil
}

func (s *BadgerChainStore) Height() (uint64, error) {
	var height uint64
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()
		it.Rewind()
		if !it.Valid() {
			return nil
		}
		key := it.Item().Key()
		height = binary.BigEndian.Uint64(key) + 1
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "compute chain height")
	}
	return height, nil
}
