// Package model holds the domain entities of the contacts service.
//
// Entities here are plain data: they know nothing about HTTP views or SQL
// rows. The repository layer converts rows into these types and the handler
// layer projects them into summary/detail views.
package model

import (
	"fmt"

	"cloud.google.com/go/civil"
)

// Column limits enforced by the contacts table.
const (
	MaxNameLength    = 50
	MaxAddressLength = 100
	MaxEmailLength   = 100
)

// Kind is a string-based enum classifying a contact.
//
// It is stored as text in the database and travels as the same text on the wire.
type Kind string

const (
	KindWork     Kind = "Work"
	KindPersonal Kind = "Personal"
	KindFamily   Kind = "Family"
)

// DefaultKind is applied when a request does not name a kind.
const DefaultKind = KindWork

// Kinds lists every valid kind in declaration order.
var Kinds = []Kind{KindWork, KindPersonal, KindFamily}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindWork, KindPersonal, KindFamily:
		return true
	}
	return false
}

// ParseKind converts raw text into a Kind.
//
// An empty string yields DefaultKind; anything else must match a known kind exactly.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return DefaultKind, nil
	}
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown contact kind %q", s)
	}
	return k, nil
}

// Contact is a person the service keeps track of.
//
// ID is assigned by the store on insert and never changes afterwards.
// Optional fields are pointers so "absent" is distinguishable from "empty".
type Contact struct {
	ID        int
	Name      string
	Address   *string
	BirthDate *civil.Date
	Email     *string
	Kind      Kind
}
