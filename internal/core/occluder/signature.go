package occluder

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sort"
)

// signatureOf digests the identity and pose of every occluding instance.
// Per-instance digests are sorted and folded through one hash: sorting makes
// the signature independent of instance order, and the sequential fold keeps
// repeated instances from canceling each other out (XOR-combining would make
// any duplicated pair invisible to the signature). Any moved, reposed, added,
// or removed occluder changes it and forces a rebuild.
func signatureOf(instances []PlacedInstance) uint64 {
	digests := make([]uint64, 0, len(instances))
	for _, inst := range instances {
		if !inst.IsOccluder {
			continue
		}
		digests = append(digests, instanceDigest(inst))
	}
	if len(digests) == 0 {
		return 0
	}
	sort.Slice(digests, func(i, j int) bool { return digests[i] < digests[j] })

	h := fnv.New64a()
	var buf [8]byte
	for _, digest := range digests {
		binary.LittleEndian.PutUint64(buf[:], digest)
		h.Write(buf[:])
	}
	return h.Sum64()
}

func instanceDigest(inst PlacedInstance) uint64 {
	h := fnv.New64a()
	h.Write([]byte(inst.SpriteID))

	var buf [8]byte
	writeFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	writeBool := func(v bool) {
		if v {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	}

	writeFloat(inst.CellX)
	writeFloat(inst.CellY)
	writeBool(inst.HasCenter)
	if inst.HasCenter {
		writeFloat(inst.CenterX)
		writeFloat(inst.CenterY)
	}
	buf[0] = byte(inst.Rotation & 3)
	h.Write(buf[:1])
	writeBool(inst.MirrorX)
	writeBool(inst.MirrorY)
	writeFloat(inst.Scale)
	writeFloat(inst.BaseWidth)
	writeFloat(inst.BaseHeight)

	return h.Sum64()
}
