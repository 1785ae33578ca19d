package ctxutil

import (
	"context"
	"testing"
)

func TestTraceDataRoundTrip(t *testing.T) {
	ctx := WithTraceData(context.Background(), &TraceData{RequestID: "r1", TraceID: "t1"})
	td := GetTraceData(ctx)
	if td == nil || td.RequestID != "r1" || td.TraceID != "t1" {
		t.Fatalf("unexpected trace data: %#v", td)
	}
	if GetStaffData(ctx) != nil {
		t.Fatalf("staff data should be absent")
	}
}

func TestLogFieldsSkipsEmpty(t *testing.T) {
	var nilTD *TraceData
	if nilTD.LogFields() != nil {
		t.Fatalf("nil trace data should yield no fields")
	}
	got := (&TraceData{RequestID: "r1"}).LogFields()
	if len(got) != 2 || got[0] != "request_id" || got[1] != "r1" {
		t.Fatalf("unexpected fields: %#v", got)
	}
}

func TestStaffDataRoundTrip(t *testing.T) {
	ctx := WithStaffData(context.Background(), &StaffData{Username: "alice"})
	if sd := GetStaffData(ctx); sd == nil || sd.Username != "alice" {
		t.Fatalf("unexpected staff data: %#v", sd)
	}
}
