package accessdetail

import (
	"path/filepath"
	"testing"
)

func tempRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	r, err := OpenAt(filepath.Join(t.TempDir(), "access.db"))
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestUpsert_Insert(t *testing.T) {
	r := tempRepo(t)

	rec := &Record{
		ServerID:   42,
		SiteID:     512,
		SSHUser:    "alice",
		DBName:     "blog_example_com",
		DBUser:     "blog_example_com",
		DBPassword: "s3cret",
		DBHost:     "1.2.3.4",
		DBPort:     3306,
	}
	if err := r.Upsert(rec); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if rec.ID == 0 {
		t.Error("expected ID to be assigned after insert")
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	got, err := r.Get(512)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected a record")
	}
	if got.DBPassword != "s3cret" || got.SSHUser != "alice" || got.ServerID != 42 {
		t.Errorf("got %+v, want stored fields back", got)
	}
}

func TestUpsert_EmptyFieldsNeverClobber(t *testing.T) {
	r := tempRepo(t)

	if err := r.Upsert(&Record{
		SiteID:     512,
		ServerID:   42,
		DBName:     "blog_example_com",
		DBPassword: "s3cret",
		DBPort:     3306,
	}); err != nil {
		t.Fatalf("initial Upsert failed: %v", err)
	}

	// A later sync learns the host but no longer sees the password.
	if err := r.Upsert(&Record{
		SiteID: 512,
		DBHost: "1.2.3.4",
	}); err != nil {
		t.Fatalf("merge Upsert failed: %v", err)
	}

	got, err := r.Get(512)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.DBPassword != "s3cret" {
		t.Errorf("DBPassword = %q, want preserved password", got.DBPassword)
	}
	if got.DBHost != "1.2.3.4" {
		t.Errorf("DBHost = %q, want newly learned host", got.DBHost)
	}
	if got.ServerID != 42 || got.DBPort != 3306 {
		t.Errorf("got %+v, want zero incoming numbers to keep stored values", got)
	}
}

func TestUpsert_NonEmptyFieldsWin(t *testing.T) {
	r := tempRepo(t)

	if err := r.Upsert(&Record{SiteID: 512, DBHost: "localhost", DBPort: 3306}); err != nil {
		t.Fatalf("initial Upsert failed: %v", err)
	}
	if err := r.Upsert(&Record{SiteID: 512, DBHost: "10.0.0.9", DBPort: 3307}); err != nil {
		t.Fatalf("merge Upsert failed: %v", err)
	}

	got, err := r.Get(512)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.DBHost != "10.0.0.9" || got.DBPort != 3307 {
		t.Errorf("got host %q port %d, want remote values to win", got.DBHost, got.DBPort)
	}
}

func TestGet_Missing(t *testing.T) {
	r := tempRepo(t)

	got, err := r.Get(999)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil for missing site", got)
	}
}

func TestMerge(t *testing.T) {
	base := &Record{SiteID: 512, DBName: "blog", DBPassword: "s3cret", DBPort: 3306}
	base.Merge(&Record{SiteID: 512, DBName: "blog2", DBHost: "1.2.3.4"})

	if base.DBName != "blog2" {
		t.Errorf("DBName = %q, want incoming non-empty value", base.DBName)
	}
	if base.DBPassword != "s3cret" || base.DBPort != 3306 {
		t.Errorf("record = %+v, want empty incoming fields ignored", base)
	}
	if base.DBHost != "1.2.3.4" {
		t.Errorf("DBHost = %q, want merged host", base.DBHost)
	}
}
