package postgres

import (
	"strings"
	"testing"
)

func TestSchemaIsIdempotent(t *testing.T) {
	s := Schema()
	for _, table := range []string{"users", "drivers", "rides", "ride_requests"} {
		if !strings.Contains(s, "CREATE TABLE IF NOT EXISTS "+table+" (") {
			t.Errorf("schema has no idempotent CREATE TABLE for %s", table)
		}
	}
	if strings.Contains(s, "CREATE TABLE "+"users") || strings.Contains(s, "DROP ") {
		t.Error("schema must only create missing objects")
	}
}

func TestSchemaStatusConstraints(t *testing.T) {
	s := Schema()
	for _, status := range []string{"'PENDING'", "'ACCEPTED'", "'REJECTED'", "'CANCELLED'", "'IN_PROGRESS'", "'COMPLETED'", "'In Progress'"} {
		if !strings.Contains(s, status) {
			t.Errorf("status %s not allowed by schema", status)
		}
	}
}
