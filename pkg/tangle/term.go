package tangle

// Address identifies a term on the heap. It is an index into Heap.slots
// rather than a pointer: the arena-plus-indices storage model spec.md §9
// allows as an alternative to pointer-and-redirect storage, while still
// supporting redirects (a slot can be rewritten in place to point at a new
// address without invalidating any Address held by a caller).
type Address int

// NoAddress is never a valid term address; it is used as a sentinel in
// optional fields (e.g. an absent Condition token).
const NoAddress Address = -1

// Tag identifies a term's variant. Tags double as the index into the
// tagNames table below; operations dispatch on Tag with switch statements.
type Tag uint8

const (
	TagRedirect Tag = iota

	TagNil
	TagBool
	TagInt
	TagFloat
	TagString
	TagSymbol

	TagList
	TagRecord
	TagHashmap
	TagHashset
	TagConstructor

	TagLambda
	TagPartial
	TagApplication
	TagVariable
	TagBuiltin

	TagEffect
	TagSignal
	TagCondition
	TagTree

	TagCell

	TagIteratorEmpty
	TagIteratorOnce
	TagIteratorRange
	TagIteratorRepeat
	TagIteratorIntegers
	TagIteratorMap
	TagIteratorFilter
	TagIteratorFlatten
	TagIteratorZip
	TagIteratorTake
	TagIteratorSkip
	TagIteratorIntersperse
	TagIteratorIndexedAccessor
	TagIteratorHashmapKeys
	TagIteratorHashmapValues

	tagCount
)

// String gives a short lowercase name for a tag, used by Format and by test
// failure messages. It is not part of the canonical formatting grammar.
func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

var tagNames = [...]string{
	TagRedirect:                "redirect",
	TagNil:                     "nil",
	TagBool:                    "bool",
	TagInt:                     "int",
	TagFloat:                   "float",
	TagString:                  "string",
	TagSymbol:                  "symbol",
	TagList:                    "list",
	TagRecord:                  "record",
	TagHashmap:                 "hashmap",
	TagHashset:                 "hashset",
	TagConstructor:             "constructor",
	TagLambda:                  "lambda",
	TagPartial:                 "partial",
	TagApplication:             "application",
	TagVariable:                "variable",
	TagBuiltin:                 "builtin",
	TagEffect:                  "effect",
	TagSignal:                  "signal",
	TagCondition:               "condition",
	TagTree:                    "tree",
	TagCell:                    "cell",
	TagIteratorEmpty:           "empty_iterator",
	TagIteratorOnce:            "once_iterator",
	TagIteratorRange:           "range_iterator",
	TagIteratorRepeat:          "repeat_iterator",
	TagIteratorIntegers:        "integers_iterator",
	TagIteratorMap:             "map_iterator",
	TagIteratorFilter:          "filter_iterator",
	TagIteratorFlatten:         "flatten_iterator",
	TagIteratorZip:             "zip_iterator",
	TagIteratorTake:            "take_iterator",
	TagIteratorSkip:            "skip_iterator",
	TagIteratorIntersperse:     "intersperse_iterator",
	TagIteratorIndexedAccessor: "indexed_accessor_iterator",
	TagIteratorHashmapKeys:     "hashmap_keys_iterator",
	TagIteratorHashmapValues:   "hashmap_values_iterator",
}

func isIteratorTag(t Tag) bool {
	return t >= TagIteratorEmpty && t < tagCount
}

// slot is the physical representation of one heap-resident term. It is a
// single flexible struct rather than a Go interface per variant: the heap
// owns a flat []slot arena (no per-term allocation, no GC pressure beyond
// slice growth), and every operation dispatches on tag rather than on Go's
// dynamic type switch. Unused fields for a given tag are simply zero.
type slot struct {
	tag    Tag
	hash   uint64
	length int
	init   bool

	// scalar payloads
	boolVal   bool
	intVal    int64
	floatVal  float64
	stringVal string
	symbolVal uint32

	// reference-typed children, meaning depends on tag:
	//   List: item addresses (len == length, cap(fields) == capacity)
	//   Record: value addresses parallel to keys
	//   Hashmap/Hashset: unused (entries live in hmBuckets, see hashmap.go)
	//   Constructor: nothing (keys carries the field names)
	//   Lambda: fields[0] == body
	//   Partial: fields[0] == function, fields[1:] == captured args
	//   Application: fields[0] == function, fields[1:] == args
	//   Effect: fields[0] == condition
	//   Signal: fields == the Signal's Condition addresses (Tree.Members order)
	//   Condition: fields == payload terms
	//   Tree: no slot is allocated with this tag; dependency sets are
	//     Go-level *Tree values (see condition.go)
	//   Cell: arbitrary mutable scratch slots
	//   iterator combinators: source iterator(s) and transformer terms
	fields []Address

	// keys carries Record field names / Constructor field names, parallel
	// to fields (Record) or standalone (Constructor).
	keys []Address

	// lookup mirrors keys->index for Records with length >= recordHashThreshold;
	// hmBuckets is the open-addressed bucket array of a Hashmap/Hashset (see
	// hashmap.go).
	lookup map[uint64][]int
	hmBuckets []hmBucket

	arity     int
	variadic  bool
	builtinID BuiltinID

	conditionKind  string
	conditionToken Address

	redirectTo Address
}
