// Package trace provides the structured event log produced by a simulation
// run. This package has no dependencies on sim/ — it stores pure data types
// and their JSON persistence, shared read-only with replay consumers.
package trace

// RecordType discriminates the event log's tagged union.
type RecordType string

const (
	// RecordInitial captures a mobile node's starting cluster at setup time.
	RecordInitial RecordType = "INITIAL"
	// RecordMove captures one relocation of a mobile node between clusters.
	RecordMove RecordType = "MOVE"
	// RecordRekey captures one rekeying round (seed and derived key).
	RecordRekey RecordType = "REKEY"
)

// Record is a single timestamped event log entry. Only the fields belonging
// to the record's type are populated; the rest marshal away via omitempty,
// so the persisted shape matches the record type exactly.
type Record struct {
	Time float64    `json:"time"`
	Type RecordType `json:"type"`

	// INITIAL and MOVE
	Node string `json:"node,omitempty"`

	// INITIAL
	Location string `json:"location,omitempty"`

	// MOVE
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Status string `json:"status,omitempty"`

	// REKEY
	Seed string `json:"seed,omitempty"`
	Key  string `json:"key,omitempty"`
}

// NewInitialRecord builds an INITIAL record for a mobile node placed at a
// cluster during topology setup.
func NewInitialRecord(time float64, node, location string) Record {
	return Record{Time: time, Type: RecordInitial, Node: node, Location: location}
}

// NewMoveRecord builds a MOVE record for one mobility monitor relocation.
func NewMoveRecord(time float64, node, from, to, status string) Record {
	return Record{Time: time, Type: RecordMove, Node: node, From: from, To: to, Status: status}
}

// NewRekeyRecord builds a REKEY record for one rekeying round.
func NewRekeyRecord(time float64, seed, key string) Record {
	return Record{Time: time, Type: RecordRekey, Seed: seed, Key: key}
}
