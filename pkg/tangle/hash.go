package tangle

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// structuralHash computes the 64-bit FNV-1a streaming mix over a term's
// tag, length, and body (spec.md §4.1 "Hash"). Reference-typed fields
// contribute the *already-computed* hash of the child (every child is
// initialized, and therefore hashed, before its parent can reference it —
// the term graph is a DAG by construction), not a re-traversal of the
// child's own structure; scalar fields contribute their raw bytes.
func (h *Heap) structuralHash(addr Address) uint64 {
	s := &h.slots[addr]
	sum := fnv.New64a()
	var buf [8]byte

	writeByte := func(b byte) { sum.Write([]byte{b}) }
	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		sum.Write(buf[:])
	}

	writeByte(byte(s.tag))
	writeU64(uint64(s.length))

	switch s.tag {
	case TagNil:
		// unit: tag+length alone identify it
	case TagBool:
		if s.boolVal {
			writeByte(1)
		} else {
			writeByte(0)
		}
	case TagInt:
		writeU64(uint64(s.intVal))
	case TagFloat:
		writeU64(math.Float64bits(s.floatVal))
	case TagString:
		sum.Write([]byte(s.stringVal))
	case TagSymbol:
		writeU64(uint64(s.symbolVal))
	case TagBuiltin:
		writeU64(uint64(s.builtinID))
	case TagConstructor:
		for _, k := range s.keys {
			writeU64(h.slots[h.resolve(k)].hash)
		}
	case TagVariable:
		writeU64(uint64(s.intVal)) // de Bruijn index stored in intVal
	case TagCondition:
		sum.Write([]byte(s.conditionKind))
		for _, f := range s.fields {
			writeU64(h.slots[h.resolve(f)].hash)
		}
		if s.conditionToken != NoAddress {
			writeU64(h.slots[h.resolve(s.conditionToken)].hash)
		}
	case TagRecord:
		for i := range s.fields {
			writeU64(h.slots[h.resolve(s.keys[i])].hash)
			writeU64(h.slots[h.resolve(s.fields[i])].hash)
		}
	case TagHashmap, TagHashset:
		for _, b := range s.hmBuckets {
			if !b.occupied {
				continue
			}
			writeU64(h.slots[h.resolve(b.key)].hash)
			if s.tag == TagHashmap {
				writeU64(h.slots[h.resolve(b.value)].hash)
			}
		}
	default:
		for _, f := range s.fields {
			if f == NoAddress {
				writeByte(0xff)
				continue
			}
			writeU64(h.slots[h.resolve(f)].hash)
		}
		if s.tag == TagLambda {
			writeU64(uint64(s.arity))
		}
	}

	return sum.Sum64()
}
