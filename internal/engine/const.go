package engine

// MaxPlies bounds the node stack depth; exceeding it is a design fault
// that Search stops at, not a runtime error to recover from.
const MaxPlies = 100

// Infinity is the sentinel score magnitude; mate scores are reported
// as Infinity minus the mating ply so that closer mates always
// outscore farther ones.
const Infinity = 32000

// MateThreshold marks scores close enough to Infinity that they must
// be treated as forced mate, not ordinary material/positional scores.
const MateThreshold = Infinity - MaxPlies
