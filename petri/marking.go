// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package petri

import "strings"

// Marking is a marking of a 1-safe net, indexed by place order.
type Marking []bool

// Key returns a string of '0' and '1', one for each place, that can be used
// as a key in a map.
func (m Marking) Key() string {
	var sb strings.Builder
	sb.Grow(len(m))
	for _, v := range m {
		if v {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func (m Marking) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for k, v := range m {
		if k > 0 {
			sb.WriteString(", ")
		}
		if v {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	sb.WriteString(")")
	return sb.String()
}

// Clone returns a copy of m.
func (m Marking) Clone() Marking {
	res := make(Marking, len(m))
	copy(res, m)
	return res
}

// Tokens returns the number of marked places.
func (m Marking) Tokens() int {
	count := 0
	for _, v := range m {
		if v {
			count++
		}
	}
	return count
}

// Equal reports whether m and o are the same marking.
func (m Marking) Equal(o Marking) bool {
	if len(m) != len(o) {
		return false
	}
	for k := range m {
		if m[k] != o[k] {
			return false
		}
	}
	return true
}
