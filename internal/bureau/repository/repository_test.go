package repository

import (
	"strings"
	"testing"
)

func TestProfileColumnsCoalesceBirthDate(t *testing.T) {
	// date_of_birth is nullable and scans into a plain string.
	if !strings.Contains(strings.ToLower(profileColumns), "coalesce(to_char(date_of_birth, 'yyyy-mm-dd'), '')") {
		t.Fatal("profile read must coalesce a NULL birth date")
	}
}

func TestCreateProfileQueryAcceptsEmptyBirthDate(t *testing.T) {
	query := strings.ToLower(createProfileQuery)

	// An empty birth date must store NULL instead of failing the date cast.
	if !strings.Contains(query, "nullif($12, '')::date") {
		t.Fatal("profile insert must map an empty birth date to NULL")
	}
	if !strings.Contains(query, "on conflict (client_id) do nothing") {
		t.Fatal("profile insert must keep first-write-wins semantics")
	}
}
