// Package directory maps clue text to the suspect it implicates.
//
// The table has a fixed number of buckets and resolves collisions by
// chaining. It is filled once while the scenario is seeded and only read
// during play.
package directory

// BucketCount is prime to spread djb2 values evenly.
const BucketCount = 101

const djb2Seed = 5381

type entry struct {
	clue    string
	suspect string
	next    *entry
}

type Directory struct {
	buckets [BucketCount]*entry
	size    int
}

func New() *Directory {
	return &Directory{}
}

// Hash is djb2 over the key's bytes with wrapping 64-bit arithmetic.
func Hash(key string) uint64 {
	hash := uint64(djb2Seed)
	for i := 0; i < len(key); i++ {
		hash = hash*33 + uint64(key[i])
	}
	return hash
}

// Index returns the bucket a key lands in.
func Index(key string) int {
	return int(Hash(key) % BucketCount)
}

// Insert prepends the pair to its bucket. Keys are not checked for
// duplicates; a later insert shadows an earlier one for Lookup.
func (d *Directory) Insert(clue, suspect string) {
	i := Index(clue)
	d.buckets[i] = &entry{clue: clue, suspect: suspect, next: d.buckets[i]}
	d.size++
}

func (d *Directory) Lookup(clue string) (string, bool) {
	for e := d.buckets[Index(clue)]; e != nil; e = e.next {
		if e.clue == clue {
			return e.suspect, true
		}
	}
	return "", false
}

// Len counts inserted entries, shadowed ones included.
func (d *Directory) Len() int {
	return d.size
}

// Chain returns the keys stored in one bucket, newest first.
func (d *Directory) Chain(bucket int) []string {
	if bucket < 0 || bucket >= BucketCount {
		return nil
	}
	var keys []string
	for e := d.buckets[bucket]; e != nil; e = e.next {
		keys = append(keys, e.clue)
	}
	return keys
}
