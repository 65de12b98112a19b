package occluder

import (
	"math"
	"sort"

	"chosenoffset.com/penumbra/internal/core/shadows"
)

// DefaultBucketSize is the world-unit edge length of one index bucket.
const DefaultBucketSize = 64.0

// SpatialIndex is a uniform grid over a Set's bounds mapping buckets to the
// indices of segments whose extent overlaps them. It is a broad-phase filter
// for ray casting: it may return segments a ray misses but never omits one it
// could hit, so filtered visibility results are identical to unfiltered ones.
// An index is valid only for the Set (and Version) it was built from.
type SpatialIndex struct {
	version    uint64
	bucketSize float64
	minX, minY float64
	cols, rows int
	buckets    [][]int
}

// NewSpatialIndex builds an index over the set's segments. bucketSize <= 0
// selects DefaultBucketSize.
func NewSpatialIndex(set *Set, bucketSize float64) *SpatialIndex {
	if bucketSize <= 0 {
		bucketSize = DefaultBucketSize
	}

	idx := &SpatialIndex{
		version:    set.Version,
		bucketSize: bucketSize,
		minX:       set.MinX,
		minY:       set.MinY,
	}
	if len(set.Segments) == 0 {
		return idx
	}

	idx.cols = int(math.Floor((set.MaxX-set.MinX)/bucketSize)) + 1
	idx.rows = int(math.Floor((set.MaxY-set.MinY)/bucketSize)) + 1
	idx.buckets = make([][]int, idx.cols*idx.rows)

	for i, seg := range set.Segments {
		minCol, minRow := idx.bucketAt(math.Min(seg.A.X, seg.B.X), math.Min(seg.A.Y, seg.B.Y))
		maxCol, maxRow := idx.bucketAt(math.Max(seg.A.X, seg.B.X), math.Max(seg.A.Y, seg.B.Y))
		for row := minRow; row <= maxRow; row++ {
			for col := minCol; col <= maxCol; col++ {
				bucket := row*idx.cols + col
				idx.buckets[bucket] = append(idx.buckets[bucket], i)
			}
		}
	}
	return idx
}

// Version reports the occluder set version the index was built from.
func (idx *SpatialIndex) Version() uint64 {
	return idx.version
}

// bucketAt clamps a world position into bucket coordinates.
func (idx *SpatialIndex) bucketAt(x, y float64) (int, int) {
	col := int(math.Floor((x - idx.minX) / idx.bucketSize))
	row := int(math.Floor((y - idx.minY) / idx.bucketSize))
	if col < 0 {
		col = 0
	}
	if col >= idx.cols {
		col = idx.cols - 1
	}
	if row < 0 {
		row = 0
	}
	if row >= idx.rows {
		row = idx.rows - 1
	}
	return col, row
}

// CandidatesAlongRay steps from origin along (dx, dy) in bucket-sized
// increments up to maxDist, gathering segment indices from each visited
// bucket and its ring of neighbors (the ring tolerates rays grazing bucket
// borders). Indices come back sorted so downstream iteration order matches
// the unindexed path.
func (idx *SpatialIndex) CandidatesAlongRay(origin shadows.Point, dx, dy, maxDist float64) []int {
	if idx.cols == 0 || idx.rows == 0 {
		return nil
	}

	seenBuckets := make(map[int]struct{})
	seenSegments := make(map[int]struct{})
	var candidates []int

	steps := int(math.Ceil(maxDist/idx.bucketSize)) + 1
	for step := 0; step <= steps; step++ {
		d := float64(step) * idx.bucketSize
		if d > maxDist {
			d = maxDist
		}
		col, row := idx.bucketAt(origin.X+dx*d, origin.Y+dy*d)

		for nRow := row - 1; nRow <= row+1; nRow++ {
			for nCol := col - 1; nCol <= col+1; nCol++ {
				if nCol < 0 || nCol >= idx.cols || nRow < 0 || nRow >= idx.rows {
					continue
				}
				bucket := nRow*idx.cols + nCol
				if _, ok := seenBuckets[bucket]; ok {
					continue
				}
				seenBuckets[bucket] = struct{}{}

				for _, segIdx := range idx.buckets[bucket] {
					if _, ok := seenSegments[segIdx]; ok {
						continue
					}
					seenSegments[segIdx] = struct{}{}
					candidates = append(candidates, segIdx)
				}
			}
		}
	}

	sort.Ints(candidates)
	return candidates
}

// Filter adapts the index into a shadows.CandidateFilter for one light.
func (idx *SpatialIndex) Filter(origin shadows.Point, radius float64) shadows.CandidateFilter {
	return func(dx, dy float64) []int {
		return idx.CandidatesAlongRay(origin, dx, dy, radius)
	}
}
