// Package journal records allowed form submissions in a local bbolt database
// for later inspection. It is observability only: the guard writes to it
// through an observer hook and never reads it back, so the journal has no say
// in whether a submission is allowed.
package journal

import (
	"log"
	"path/filepath"
	"time"

	"github.com/andreyvit/edb"
)

type Record struct {
	ID         RecordID  `msgpack:"-"`
	FormID     string    `msgpack:"f"`
	Serialized string    `msgpack:"s"`
	FieldCount int       `msgpack:"n,omitempty"`
	Time       time.Time `msgpack:"t"`
}

var (
	schema = &edb.Schema{
		Name: "submitguard",
	}

	submissionsTable = edb.AddTable(schema, "submissions", 1, func(row *Record, ib *edb.IndexBuilder) {
		ib.Add(submissionsByForm, row.FormID)
	}, func(tx *edb.Tx, row *Record, oldVer uint64) {
	}, []*edb.Index{
		submissionsByForm,
	})
	submissionsByForm = edb.AddIndex[string]("by_form")
)

type Options struct {
	Logf    func(format string, args ...any)
	Verbose bool

	// Node distinguishes ID generators when several processes share a
	// journal directory. Zero is fine for a single process.
	Node uint64
}

type Journal struct {
	db   *edb.DB
	gen  *Gen
	logf func(format string, args ...any)
}

// Open opens (creating if needed) the journal database in dataDir.
func Open(dataDir string, opt Options) (*Journal, error) {
	if opt.Logf == nil {
		opt.Logf = log.Printf
	}
	db, err := edb.Open(filepath.Join(dataDir, "journal.db"), schema, edb.Options{
		Logf:    opt.Logf,
		Verbose: opt.Verbose,
	})
	if err != nil {
		return nil, err
	}
	return &Journal{
		db:   db,
		gen:  NewGen(opt.Node),
		logf: opt.Logf,
	}, nil
}

func (j *Journal) Close() {
	j.db.Close()
}

// Append records an allowed submission and returns its ID. IDs are
// time-ordered, so iteration order over the table is chronological.
func (j *Journal) Append(formID, serialized string, fieldCount int) (RecordID, error) {
	rec := &Record{
		ID:         j.gen.New(),
		FormID:     formID,
		Serialized: serialized,
		FieldCount: fieldCount,
		Time:       time.Now().UTC(),
	}
	err := j.db.Tx(true, func(tx *edb.Tx) error {
		edb.Put(tx, rec)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

// Recent returns up to limit records for the given form, newest first.
func (j *Journal) Recent(formID string, limit int) ([]*Record, error) {
	var matched []*Record
	err := j.db.Tx(false, func(tx *edb.Tx) error {
		for c := edb.FullIndexScan[Record](tx, submissionsByForm); c.Next(); {
			row := c.Row()
			if row.FormID == formID {
				matched = append(matched, row)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(matched) > limit {
		matched = matched[len(matched)-limit:]
	}
	for a, b := 0, len(matched)-1; a < b; a, b = a+1, b-1 {
		matched[a], matched[b] = matched[b], matched[a]
	}
	return matched, nil
}
