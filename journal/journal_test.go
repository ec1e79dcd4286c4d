package journal

import (
	"testing"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(t.TempDir(), Options{Logf: t.Logf})
	if err != nil {
		t.Fatalf("** Open failed: %v", err)
	}
	t.Cleanup(j.Close)
	return j
}

func TestJournalAppendRecent(t *testing.T) {
	j := openTestJournal(t)

	id1 := mustAppend(t, j, "signup", "name=Alice&email=a%40x.com", 2)
	id2 := mustAppend(t, j, "signup", "name=Alice&email=b%40x.com", 2)
	mustAppend(t, j, "profile", "bio=hello", 1)

	recs, err := j.Recent("signup", 10)
	if err != nil {
		t.Fatalf("** Recent failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("** Recent(signup) returned %d records, wanted 2", len(recs))
	}
	if recs[0].ID != id2 || recs[1].ID != id1 {
		t.Errorf("** Recent order is %v, %v; wanted newest first (%v, %v)", recs[0].ID, recs[1].ID, id2, id1)
	}
	if recs[0].Serialized != "name=Alice&email=b%40x.com" {
		t.Errorf("** newest record serialization = %q", recs[0].Serialized)
	}
	if recs[0].FieldCount != 2 {
		t.Errorf("** newest record field count = %d", recs[0].FieldCount)
	}
}

func TestJournalRecentLimit(t *testing.T) {
	j := openTestJournal(t)

	var last RecordID
	for i := 0; i < 5; i++ {
		last = mustAppend(t, j, "signup", "n=1", 1)
	}

	recs, err := j.Recent("signup", 2)
	if err != nil {
		t.Fatalf("** Recent failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("** Recent returned %d records, wanted 2", len(recs))
	}
	if recs[0].ID != last {
		t.Errorf("** Recent[0] = %v, wanted the latest record %v", recs[0].ID, last)
	}
}

func TestJournalFormIsolation(t *testing.T) {
	j := openTestJournal(t)

	mustAppend(t, j, "signup", "a=1", 1)
	recs, err := j.Recent("profile", 10)
	if err != nil {
		t.Fatalf("** Recent failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("** Recent(profile) returned %d records, wanted none", len(recs))
	}
}

func mustAppend(t *testing.T, j *Journal, formID, serialized string, n int) RecordID {
	t.Helper()
	id, err := j.Append(formID, serialized, n)
	if err != nil {
		t.Fatalf("** Append failed: %v", err)
	}
	if id.IsZero() {
		t.Fatalf("** Append returned zero ID")
	}
	return id
}
