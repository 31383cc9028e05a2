// Package pagination implements offset cursors for collections that have no server-side
// total count. A page is fetched with one extra row; the extra row proves a following
// page exists and is trimmed before the page is returned.
package pagination

import (
	"strconv"
	"strings"
)

const DefaultLimit = 25

// Request is the shape handed to a pager for one fetch.
type Request struct {
	Limit        int
	RequestLimit int
	Offset       int
	HasOffset    bool
}

// Page is a trimmed result page. An empty NextCursor means there is nothing more.
type Page[T any] struct {
	Items      []T
	HasMore    bool
	NextCursor string
}

// ParseCursorOffset reads the leading integer of cursor. Empty, negative or non-numeric
// cursors report false.
func ParseCursorOffset(cursor string) (int, bool) {
	s := strings.TrimSpace(cursor)
	if s == "" {
		return 0, false
	}

	negative := false
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		negative = true
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	if negative && n != 0 {
		return 0, false
	}
	return n, true
}

// BuildOffsetRequest coerces limit (<=0 uses defaultLimit, never below 1) and asks for
// one extra row.
func BuildOffsetRequest(limit int, cursor string, defaultLimit int) Request {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	offset, ok := ParseCursorOffset(cursor)
	return Request{
		Limit:        limit,
		RequestLimit: limit + 1,
		Offset:       offset,
		HasOffset:    ok,
	}
}

// FinalizeOffset trims an over-fetched page and computes the next cursor.
func FinalizeOffset[T any](data []T, limit, offset int) Page[T] {
	if limit < 1 {
		limit = 1
	}
	if offset < 0 {
		offset = 0
	}
	if len(data) <= limit {
		return Page[T]{Items: data}
	}
	return Page[T]{
		Items:      data[:limit],
		HasMore:    true,
		NextCursor: strconv.Itoa(offset + limit),
	}
}

// FromServerCursor wraps a page whose continuation token came from the server.
func FromServerCursor[T any](items []T, next string) Page[T] {
	next = strings.TrimSpace(next)
	return Page[T]{Items: items, HasMore: next != "", NextCursor: next}
}

// Window applies offset/limit+1 to a fully materialized collection, for endpoints that
// return everything in one response.
func Window[T any](all []T, req Request) []T {
	start := req.Offset
	if start > len(all) {
		start = len(all)
	}
	end := start + req.RequestLimit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}
