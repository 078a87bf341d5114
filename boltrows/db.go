// Package boltrows is an embedded relation store on boltdb whose joins
// produce the same fan-out row stream as a SQL join, ready to be folded by
// the rowfold package.
package boltrows

import (
	"io"
	"os"
	"time"

	"github.com/openkvlab/boltdb"

	"github.com/longlodw/rowfold/record"
)

type DB struct {
	db   *boltdb.DB
	maUn record.MarshalUnmarshaler
}

type DBOptions = boltdb.Options

// OpenDB opens or creates the database at path. Row values are encoded with
// maUn; nil selects msgpack.
func OpenDB(maUn record.MarshalUnmarshaler, path string, mode os.FileMode, options *DBOptions) (*DB, error) {
	bdb, err := boltdb.Open(path, mode, options)
	if err != nil {
		return nil, err
	}
	if maUn == nil {
		maUn = record.MsgpackMaUn
	}
	return &DB{db: bdb, maUn: maUn}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Begin(writable bool) (*Tx, error) {
	tx, err := d.db.Begin(writable)
	if err != nil {
		return nil, err
	}
	return newTx(tx, d.maUn, false), nil
}

func (d *DB) View(fn func(*Tx) error) error {
	return d.db.View(func(btx *boltdb.Tx) error {
		return fn(newTx(btx, d.maUn, true))
	})
}

func (d *DB) Update(fn func(*Tx) error) error {
	return d.db.Update(func(btx *boltdb.Tx) error {
		return fn(newTx(btx, d.maUn, true))
	})
}

func (d *DB) Batch(fn func(*Tx) error) error {
	return d.db.Batch(func(btx *boltdb.Tx) error {
		return fn(newTx(btx, d.maUn, true))
	})
}

// Snapshot writes a consistent copy of the database to w.
func (d *DB) Snapshot(w io.Writer) (int64, error) {
	var n int64
	err := d.db.View(func(btx *boltdb.Tx) error {
		var err error
		n, err = btx.WriteTo(w)
		return err
	})
	return n, err
}

func (d *DB) SetMaxBatchDelay(delay time.Duration) {
	d.db.MaxBatchDelay = delay
}

func (d *DB) SetMaxBatchSize(size int) {
	d.db.MaxBatchSize = size
}

func (d *DB) SetAllocSize(size int) {
	d.db.AllocSize = size
}

func (d *DB) MaxBatchDelay() time.Duration {
	return d.db.MaxBatchDelay
}

func (d *DB) MaxBatchSize() int {
	return d.db.MaxBatchSize
}

func (d *DB) AllocSize() int {
	return d.db.AllocSize
}
