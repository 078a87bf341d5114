package boltrows

import (
	"bytes"
	"iter"
	"slices"

	"github.com/openkvlab/boltdb"

	"github.com/longlodw/rowfold/record"
)

var (
	metaBucketName  = []byte("meta")
	dataBucketName  = []byte("data")
	indexBucketName = []byte("index")
	columnsKey      = []byte("columns")
	indexedKey      = []byte("indexed")
)

// Relation is a table of rows keyed by an insertion sequence.
type Relation struct {
	name    string
	bucket  *boltdb.Bucket
	columns []string
	indexed []string
	maUn    record.MarshalUnmarshaler
}

func createRelation(
	tnx *boltdb.Tx,
	name string,
	columns []string,
	indexed []string,
	maUn record.MarshalUnmarshaler,
) (*Relation, error) {
	for _, col := range indexed {
		if !slices.Contains(columns, col) {
			return nil, ErrColumnNotFound(col)
		}
	}
	bucket, err := tnx.CreateBucket([]byte(name))
	if err != nil {
		return nil, err
	}
	metaBucket, err := bucket.CreateBucket(metaBucketName)
	if err != nil {
		return nil, err
	}
	columnsBytes, err := maUn.Marshal(columns)
	if err != nil {
		return nil, err
	}
	if err := metaBucket.Put(columnsKey, columnsBytes); err != nil {
		return nil, err
	}
	indexedBytes, err := maUn.Marshal(indexed)
	if err != nil {
		return nil, err
	}
	if err := metaBucket.Put(indexedKey, indexedBytes); err != nil {
		return nil, err
	}
	if _, err := bucket.CreateBucket(dataBucketName); err != nil {
		return nil, err
	}
	idxBucket, err := bucket.CreateBucket(indexBucketName)
	if err != nil {
		return nil, err
	}
	for _, col := range indexed {
		if _, err := idxBucket.CreateBucketIfNotExists([]byte(col)); err != nil {
			return nil, err
		}
	}
	return &Relation{
		name:    name,
		bucket:  bucket,
		columns: columns,
		indexed: indexed,
		maUn:    maUn,
	}, nil
}

func loadRelation(
	tnx *boltdb.Tx,
	name string,
	maUn record.MarshalUnmarshaler,
) (*Relation, error) {
	bucket := tnx.Bucket([]byte(name))
	if bucket == nil {
		return nil, ErrRelationNotFound(name)
	}
	metaBucket := bucket.Bucket(metaBucketName)
	if metaBucket == nil {
		return nil, ErrMetadataNotFound
	}
	var columns []string
	if err := maUn.Unmarshal(metaBucket.Get(columnsKey), &columns); err != nil {
		return nil, err
	}
	var indexed []string
	if err := maUn.Unmarshal(metaBucket.Get(indexedKey), &indexed); err != nil {
		return nil, err
	}
	return &Relation{
		name:    name,
		bucket:  bucket,
		columns: columns,
		indexed: indexed,
		maUn:    maUn,
	}, nil
}

func (r *Relation) Name() string {
	return r.name
}

func (r *Relation) Columns() []string {
	return r.columns
}

func (r *Relation) dataBucket() *boltdb.Bucket {
	return r.bucket.Bucket(dataBucketName)
}

func (r *Relation) indexBucket(col string) *boltdb.Bucket {
	return r.bucket.Bucket(indexBucketName).Bucket([]byte(col))
}

// Insert stores value, which must hold exactly the relation's columns.
func (r *Relation) Insert(value map[string]any) error {
	if len(value) != len(r.columns) {
		return ErrFieldCountMismatch(len(r.columns), len(value))
	}
	for _, col := range r.columns {
		if _, ok := value[col]; !ok {
			return ErrObjectMissingField(col)
		}
	}
	data := r.dataBucket()
	seq, err := data.NextSequence()
	if err != nil {
		return err
	}
	id := idKey(seq)
	valueBytes, err := r.maUn.Marshal(value)
	if err != nil {
		return err
	}
	if err := data.Put(id, valueBytes); err != nil {
		return err
	}
	for _, col := range r.indexed {
		key, err := toKey(value[col])
		if err != nil {
			return err
		}
		if err := r.indexBucket(col).Put(append(key, id...), id); err != nil {
			return err
		}
	}
	return nil
}

// Scan yields every row in insertion order.
func (r *Relation) Scan() iter.Seq2[record.Row, error] {
	return func(yield func(record.Row, error) bool) {
		c := r.dataBucket().Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			row, err := r.decode(v)
			if !yield(row, err) || err != nil {
				return
			}
		}
	}
}

// Lookup yields the rows whose column equals value, in insertion order. It
// uses the column's index when there is one and scans the relation otherwise.
// A nil value matches nothing.
func (r *Relation) Lookup(column string, value any) iter.Seq2[record.Row, error] {
	return func(yield func(record.Row, error) bool) {
		if !slices.Contains(r.columns, column) {
			yield(nil, ErrColumnNotFound(column))
			return
		}
		if value == nil {
			return
		}
		want, err := toKey(value)
		if err != nil {
			yield(nil, err)
			return
		}
		if slices.Contains(r.indexed, column) {
			r.lookupIndexed(column, want, yield)
			return
		}
		for row, err := range r.Scan() {
			if err != nil {
				yield(nil, err)
				return
			}
			v, _ := row.Get(column)
			if v == nil {
				continue
			}
			got, err := toKey(v)
			if err != nil {
				yield(nil, err)
				return
			}
			if bytes.Equal(got, want) && !yield(row, nil) {
				return
			}
		}
	}
}

func (r *Relation) lookupIndexed(column string, prefix []byte, yield func(record.Row, error) bool) {
	idx := r.indexBucket(column)
	if idx == nil {
		yield(nil, ErrIndexNotFound(column))
		return
	}
	data := r.dataBucket()
	c := idx.Cursor()
	for k, id := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, id = c.Next() {
		row, err := r.decode(data.Get(id))
		if !yield(row, err) || err != nil {
			return
		}
	}
}

func (r *Relation) decode(v []byte) (record.Row, error) {
	var value map[string]any
	if err := r.maUn.Unmarshal(v, &value); err != nil {
		return nil, err
	}
	return record.Values(value), nil
}
