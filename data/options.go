package data

// Options are parser configuration flags accepted by the top-level
// decode entry points.
type Options uint32

const (
	// Strict makes unmatched elements an error even when their
	// namespace belongs to no loaded module.
	Strict Options = 1 << iota
	// Destruct permits consuming the source XML forest as it is
	// walked, releasing each element once decoded.
	Destruct
	// Edit enables insert/value directive parsing and defers
	// reference-target resolution.
	Edit
	// Filter permits empty leaf values (selection nodes) and makes
	// content-hook pruning non-fatal.
	Filter
	// Get marks a read-only projection of operational data; reference
	// resolution is relaxed as for Edit.
	Get
	// GetConfig marks a read-only projection of configuration data;
	// reference resolution is relaxed as for Edit.
	GetConfig
)

// relaxed reports whether reference-target lookup is deferred rather
// than required to succeed during decoding.
func (o Options) relaxed() bool {
	return o&(Edit|Filter|Get|GetConfig) != 0
}
