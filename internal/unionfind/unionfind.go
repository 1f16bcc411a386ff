// Package unionfind implements the union-find structure the static
// builder variant uses for cycle rejection: two vertices already in
// the same set cannot be joined by a new edge without closing a cycle.
package unionfind

// DSU is a disjoint-set-union with path compression and union by rank.
type DSU struct {
	parent []int
	rank   []int
}

// AddVertex appends one new singleton set and returns its index.
func (d *DSU) AddVertex() int {
	idx := len(d.parent)
	d.parent = append(d.parent, idx)
	d.rank = append(d.rank, 0)
	return idx
}

// Size reports the number of vertices ever added.
func (d *DSU) Size() int { return len(d.parent) }

// Find returns the representative of v's set.
func (d *DSU) Find(v int) int {
	if d.parent[v] != v {
		d.parent[v] = d.Find(d.parent[v])
	}
	return d.parent[v]
}

// Union merges the sets containing v1 and v2 and reports whether they
// were previously distinct (false means v1 and v2 were already
// connected, i.e. this union would have closed a cycle).
func (d *DSU) Union(v1, v2 int) bool {
	r1, r2 := d.Find(v1), d.Find(v2)
	if r1 == r2 {
		return false
	}
	switch {
	case d.rank[r1] < d.rank[r2]:
		d.parent[r1] = r2
	case d.rank[r1] > d.rank[r2]:
		d.parent[r2] = r1
	default:
		d.parent[r2] = r1
		d.rank[r1]++
	}
	return true
}

// Connected reports whether v1 and v2 are in the same set.
func (d *DSU) Connected(v1, v2 int) bool {
	return d.Find(v1) == d.Find(v2)
}
