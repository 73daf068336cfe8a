package sqlutil

import (
	"database/sql"
	"testing"
)

type terms struct {
	Salary string `json:"salary"`
}

func TestNullJSONRoundTrip(t *testing.T) {
	in := &terms{Salary: "500k"}
	raw, err := ToNullJSON(in)
	if err != nil {
		t.Fatalf("ToNullJSON: %v", err)
	}
	if !raw.Valid {
		t.Fatalf("expected valid raw message")
	}
	out, err := FromNullJSON[terms](raw)
	if err != nil {
		t.Fatalf("FromNullJSON: %v", err)
	}
	if out == nil || out.Salary != "500k" {
		t.Fatalf("got %+v, want salary 500k", out)
	}
}

func TestNullJSONNil(t *testing.T) {
	raw, err := ToNullJSON[terms](nil)
	if err != nil {
		t.Fatalf("ToNullJSON: %v", err)
	}
	if raw.Valid {
		t.Fatalf("expected NULL for nil input")
	}
	out, err := FromNullJSON[terms](raw)
	if err != nil || out != nil {
		t.Fatalf("FromNullJSON(NULL) = %v, %v; want nil, nil", out, err)
	}
}

func TestSqlStringPointers(t *testing.T) {
	if v := ToSqlString(nil); v.Valid {
		t.Errorf("ToSqlString(nil) should be invalid")
	}
	s := "u1"
	if got := FromSqlStringPtr(ToSqlString(&s)); got == nil || *got != "u1" {
		t.Errorf("round trip = %v, want u1", got)
	}
	if got := FromSqlStringPtr(sql.NullString{}); got != nil {
		t.Errorf("FromSqlStringPtr(NULL) = %v, want nil", *got)
	}
}
