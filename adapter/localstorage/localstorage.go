// Package localstorage runs the SingleModelCrud and Sorting recipes on an embedded bolt key/value file.
package localstorage

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/gob"
	"time"

	"github.com/boltdb/bolt"
	"github.com/ormcookbook/recipes/port/hr"
	"go.llib.dev/frameless/pkg/errorkit"
)

const ErrUniqueName errorkit.Error = "employee classification name is already taken"

var (
	bucketClassification     = []byte("employee_classification")
	bucketClassificationName = []byte("employee_classification_name")
	bucketEmployee           = []byte("employee")
)

// keyOffset shifts the bucket sequence, so generated keys start at 1000 and never collide with the seed rows.
const keyOffset = 999

func Open(path string) (*Local, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	l := &Local{DB: db}
	if err := l.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return l, nil
}

type Local struct {
	DB *bolt.DB
}

// Close the Local database and release the file lock
func (l *Local) Close() error {
	return l.DB.Close()
}

func (l *Local) migrate() error {
	return l.DB.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketClassification, bucketClassificationName, bucketEmployee} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		for _, ec := range hr.SeedClassifications {
			if tx.Bucket(bucketClassification).Get(keyToBytes(ec.Key)) != nil {
				continue
			}
			if err := putClassification(tx, ec); err != nil {
				return err
			}
		}
		return nil
	})
}

func (l *Local) update(ctx context.Context, fn func(tx *bolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return l.DB.Update(fn)
}

func (l *Local) view(ctx context.Context, fn func(tx *bolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return l.DB.View(fn)
}

func nextKey(b *bolt.Bucket) (int, error) {
	seq, err := b.NextSequence()
	if err != nil {
		return 0, err
	}
	return int(seq) + keyOffset, nil
}

// keyToBytes returns an 8-byte big endian representation of the key,
// which keeps the bucket cursor in key order.
func keyToBytes(key int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(key))
	return b
}

func encode(v any) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte, ptr any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(ptr)
}

// nullString keeps an empty string apart from a missing one, since gob drops zero values.
type nullString struct {
	Valid  bool
	String string
}

func toNullString(p *string) nullString {
	if p == nil {
		return nullString{}
	}
	return nullString{Valid: true, String: *p}
}

func (n nullString) ptr() *string {
	if !n.Valid {
		return nil
	}
	v := n.String
	return &v
}

// employeeRow is the stored form of hr.EmployeeSimple.
type employeeRow struct {
	Key               int
	FirstName         string
	MiddleName        nullString
	LastName          string
	Title             nullString
	OfficePhone       nullString
	CellPhone         nullString
	ClassificationKey int
}

func newEmployeeRow(e hr.EmployeeSimple) employeeRow {
	return employeeRow{
		Key:               e.Key,
		FirstName:         e.FirstName,
		MiddleName:        toNullString(e.MiddleName),
		LastName:          e.LastName,
		Title:             toNullString(e.Title),
		OfficePhone:       toNullString(e.OfficePhone),
		CellPhone:         toNullString(e.CellPhone),
		ClassificationKey: e.ClassificationKey,
	}
}

func (r employeeRow) model() *hr.EmployeeSimple {
	return &hr.EmployeeSimple{
		Key:               r.Key,
		FirstName:         r.FirstName,
		MiddleName:        r.MiddleName.ptr(),
		LastName:          r.LastName,
		Title:             r.Title.ptr(),
		OfficePhone:       r.OfficePhone.ptr(),
		CellPhone:         r.CellPhone.ptr(),
		ClassificationKey: r.ClassificationKey,
	}
}

func getClassification(tx *bolt.Tx, key int) (hr.EmployeeClassification, bool, error) {
	var ec hr.EmployeeClassification
	data := tx.Bucket(bucketClassification).Get(keyToBytes(key))
	if data == nil {
		return ec, false, nil
	}
	return ec, true, decode(data, &ec)
}

// putClassification writes the row and keeps the name index in sync.
func putClassification(tx *bolt.Tx, ec hr.EmployeeClassification) error {
	names := tx.Bucket(bucketClassificationName)
	if owner := names.Get([]byte(ec.Name)); owner != nil && !bytes.Equal(owner, keyToBytes(ec.Key)) {
		return ErrUniqueName.F("%q", ec.Name)
	}
	prev, found, err := getClassification(tx, ec.Key)
	if err != nil {
		return err
	}
	if found && prev.Name != ec.Name {
		if err := names.Delete([]byte(prev.Name)); err != nil {
			return err
		}
	}
	data, err := encode(ec)
	if err != nil {
		return err
	}
	if err := tx.Bucket(bucketClassification).Put(keyToBytes(ec.Key), data); err != nil {
		return err
	}
	return names.Put([]byte(ec.Name), keyToBytes(ec.Key))
}

func deleteClassification(tx *bolt.Tx, key int) (bool, error) {
	ec, found, err := getClassification(tx, key)
	if err != nil || !found {
		return false, err
	}
	if err := tx.Bucket(bucketClassificationName).Delete([]byte(ec.Name)); err != nil {
		return false, err
	}
	return true, tx.Bucket(bucketClassification).Delete(keyToBytes(key))
}
