package boltrows

import (
	"errors"

	"github.com/openkvlab/boltdb"
	boltdb_errors "github.com/openkvlab/boltdb/errors"

	"github.com/longlodw/rowfold/record"
)

type Tx struct {
	tx        *boltdb.Tx
	maUn      record.MarshalUnmarshaler
	managed   bool
	relations map[string]*Relation
}

func newTx(tx *boltdb.Tx, maUn record.MarshalUnmarshaler, managed bool) *Tx {
	return &Tx{
		tx:        tx,
		maUn:      maUn,
		managed:   managed,
		relations: make(map[string]*Relation),
	}
}

func (tx *Tx) Commit() error {
	if tx.managed {
		panic("cannot commit a managed transaction")
	}
	return tx.tx.Commit()
}

func (tx *Tx) Rollback() error {
	if tx.managed {
		panic("cannot rollback a managed transaction")
	}
	return tx.tx.Rollback()
}

func (tx *Tx) ID() int {
	return tx.tx.ID()
}

func (tx *Tx) Writable() bool {
	return tx.tx.Writable()
}

// CreateRelation creates a relation with the given columns. Columns listed in
// indexed get an index so that Lookup and Join on them avoid a full scan.
func (tx *Tx) CreateRelation(name string, columns []string, indexed ...string) (*Relation, error) {
	if tx.tx.Bucket([]byte(name)) != nil {
		return nil, ErrRelationExists(name)
	}
	rel, err := createRelation(tx.tx, name, columns, indexed, tx.maUn)
	if err != nil {
		return nil, err
	}
	tx.relations[name] = rel
	return rel, nil
}

func (tx *Tx) Relation(name string) (*Relation, error) {
	if rel, ok := tx.relations[name]; ok {
		return rel, nil
	}
	rel, err := loadRelation(tx.tx, name, tx.maUn)
	if err != nil {
		return nil, err
	}
	tx.relations[name] = rel
	return rel, nil
}

func (tx *Tx) DeleteRelation(name string) error {
	if err := tx.tx.DeleteBucket([]byte(name)); err != nil {
		if errors.Is(err, boltdb_errors.ErrBucketNotFound) {
			return ErrRelationNotFound(name)
		}
		return err
	}
	delete(tx.relations, name)
	return nil
}

// Insert is shorthand for loading relation and inserting value into it.
func (tx *Tx) Insert(relation string, value map[string]any) error {
	rel, err := tx.Relation(relation)
	if err != nil {
		return err
	}
	return rel.Insert(value)
}
