package storage

import "fmt"

// Type selects the catalog backend.
type Type string

const (
	ES    Type = "es"
	PG    Type = "pg"
	InMem Type = "in_mem"
)

var Types = []Type{ES, PG, InMem}

func ParseType(s string) (Type, error) {
	for _, t := range Types {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unsupported storage type %q, expected one of %v", s, Types)
}
