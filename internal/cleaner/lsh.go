package cleaner

import (
	"encoding/binary"
	"sort"
)

// grouper buckets MinHash signatures with banded LSH and resolves bucket
// co-membership into duplicate groups. Records sharing any band bucket are
// candidate-similar; groups are the connected components of the candidate
// graph, so chains A~B~C collapse into one group (recall-favoring).
type grouper struct {
	bands int
	rows  int
}

func newGrouper(bands, rows int) *grouper {
	return &grouper{bands: bands, rows: rows}
}

// Groups partitions signature indexes into duplicate groups. Each returned
// group lists member indexes in ascending order; singleton groups are
// included so the caller sees a full partition.
func (g *grouper) Groups(signatures [][]uint64) [][]int {
	uf := newUnionFind(len(signatures))
	buckets := make(map[string]int, len(signatures)*g.bands)

	for idx, sig := range signatures {
		for band := 0; band < g.bands; band++ {
			key := bandKey(band, sig[band*g.rows:(band+1)*g.rows])
			if first, ok := buckets[key]; ok {
				uf.union(first, idx)
			} else {
				buckets[key] = idx
			}
		}
	}

	members := make(map[int][]int)
	for i := range signatures {
		root := uf.find(i)
		members[root] = append(members[root], i)
	}

	groups := make([][]int, 0, len(members))
	for _, grp := range members {
		groups = append(groups, grp)
	}
	// Map iteration order is random; order groups by their first member.
	sort.Slice(groups, func(i, j int) bool { return groups[i][0] < groups[j][0] })
	return groups
}

// bandKey builds an exact bucket key from the band index and the raw band
// slots, so two records land in the same bucket iff the band sub-signatures
// are identical.
func bandKey(band int, slots []uint64) string {
	buf := make([]byte, 4+8*len(slots))
	binary.LittleEndian.PutUint32(buf, uint32(band))
	for i, s := range slots {
		binary.LittleEndian.PutUint64(buf[4+i*8:], s)
	}
	return string(buf)
}

// unionFind is a disjoint-set forest with union by size and path halving.
type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	size := make([]int, n)
	for i := range parent {
		parent[i] = i
		size[i] = 1
	}
	return &unionFind{parent: parent, size: size}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.size[ra] < u.size[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	u.size[ra] += u.size[rb]
}
