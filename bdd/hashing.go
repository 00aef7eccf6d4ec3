// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// Hash functions

func _TRIPLE(a, b, c, len int) int {
	return int(_PAIR64(uint64(c), _PAIR(a, b, len), uint64(len)))
}

// _PAIR is a mapping function that maps (bijectively) a pair of integer (a, b)
// into a unique integer, that we take modulo len.
func _PAIR(a, b, len int) uint64 {
	return (((uint64(a+b) * uint64(a+b+1)) / 2) + uint64(a)) % uint64(len)
}

func _PAIR64(a, b, len uint64) uint64 {
	return (((((a + b) % len) * ((a + b + 1) % len)) / 2) + a) % len
}

// ************************************************************

// The hash function for operation Not(n) is simply n.

func (b *BDD) matchnot(n int) int {
	entry := b.applycache.table[n%len(b.applycache.table)]
	if entry.a == n && entry.c == int(op_not) {
		return b.hit(entry.res)
	}
	return b.miss()
}

func (b *BDD) setnot(n int, res int) int {
	b.applycache.table[n%len(b.applycache.table)] = cacheData{
		a:   n,
		b:   -1,
		c:   int(op_not),
		res: res,
	}
	return res
}

// ************************************************************

// The hash function for Apply is #(left, right, op).

func (b *BDD) matchapply(left, right int, op Operator) int {
	entry := b.applycache.table[_TRIPLE(left, right, int(op), len(b.applycache.table))]
	if entry.a == left && entry.b == right && entry.c == int(op) {
		return b.hit(entry.res)
	}
	return b.miss()
}

func (b *BDD) setapply(left, right int, op Operator, res int) int {
	b.applycache.table[_TRIPLE(left, right, int(op), len(b.applycache.table))] = cacheData{
		a:   left,
		b:   right,
		c:   int(op),
		res: res,
	}
	return res
}

// ************************************************************

// The hash function for ITE is #(f,g,h).

func (b *BDD) matchite(f, g, h int) int {
	entry := b.itecache.table[_TRIPLE(f, g, h, len(b.itecache.table))]
	if entry.a == f && entry.b == g && entry.c == h {
		return b.hit(entry.res)
	}
	return b.miss()
}

func (b *BDD) setite(f, g, h, res int) int {
	b.itecache.table[_TRIPLE(f, g, h, len(b.itecache.table))] = cacheData{
		a:   f,
		b:   g,
		c:   h,
		res: res,
	}
	return res
}

// ************************************************************

// The hash function for quantification is #(n, id) where id identifies both
// the variable set and the kind of quantification.

func (b *BDD) matchquant(n, id int) int {
	entry := b.quantcache.table[_PAIR(n, id, len(b.quantcache.table))]
	if entry.a == n && entry.c == id {
		return b.hit(entry.res)
	}
	return b.miss()
}

func (b *BDD) setquant(n, id, res int) int {
	b.quantcache.table[_PAIR(n, id, len(b.quantcache.table))] = cacheData{
		a:   n,
		c:   id,
		res: res,
	}
	return res
}

// ************************************************************

// The hash function for AppEx is #(left, right, id) where id encodes the
// variable set and the operator.

func (b *BDD) matchappex(left, right, id int) int {
	entry := b.appexcache.table[_TRIPLE(left, right, id, len(b.appexcache.table))]
	if entry.a == left && entry.b == right && entry.c == id {
		return b.hit(entry.res)
	}
	return b.miss()
}

func (b *BDD) setappex(left, right, id, res int) int {
	b.appexcache.table[_TRIPLE(left, right, id, len(b.appexcache.table))] = cacheData{
		a:   left,
		b:   right,
		c:   id,
		res: res,
	}
	return res
}

// ************************************************************

// The hash function for operation Replace(n) is #(n, id) where id is the
// identifier of the Replacer.

func (b *BDD) matchreplace(n, id int) int {
	entry := b.replacecache.table[_PAIR(n, id, len(b.replacecache.table))]
	if entry.a == n && entry.c == id {
		return b.hit(entry.res)
	}
	return b.miss()
}

func (b *BDD) setreplace(n, id, res int) int {
	b.replacecache.table[_PAIR(n, id, len(b.replacecache.table))] = cacheData{
		a:   n,
		c:   id,
		res: res,
	}
	return res
}

// ************************************************************

// The hash function for Restrict is #(n, cube).

func (b *BDD) matchrestrict(n, cube int) int {
	entry := b.restrictcache.table[_PAIR(n, cube, len(b.restrictcache.table))]
	if entry.a == n && entry.b == cube && entry.c == cacheid_RESTRICT {
		return b.hit(entry.res)
	}
	return b.miss()
}

func (b *BDD) setrestrict(n, cube, res int) int {
	b.restrictcache.table[_PAIR(n, cube, len(b.restrictcache.table))] = cacheData{
		a:   n,
		b:   cube,
		c:   cacheid_RESTRICT,
		res: res,
	}
	return res
}
