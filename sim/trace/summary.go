package trace

import "sort"

// NodeState is the reconstructed position and status of one mobile node at
// some point in the replay.
type NodeState struct {
	Location string
	Status   string
}

// Summary aggregates statistics from an EventLog.
type Summary struct {
	TotalRecords  int
	InitialCount  int
	MoveCount     int
	RekeyCount    int
	AttackerMoves int
	FinalStates   map[string]NodeState // node ID → state after the last record
}

// Summarize replays a log in ascending time order and reconstructs the final
// location and status of every node from the cumulative event history, the
// same way a visualization consumer does. Safe for nil or empty logs.
func Summarize(l *EventLog) *Summary {
	s := &Summary{FinalStates: make(map[string]NodeState)}
	if l == nil {
		return s
	}

	replay := make([]Record, len(l.records))
	copy(replay, l.records)
	sort.SliceStable(replay, func(i, j int) bool {
		return replay[i].Time < replay[j].Time
	})

	s.TotalRecords = len(replay)
	for _, r := range replay {
		switch r.Type {
		case RecordInitial:
			s.InitialCount++
			s.FinalStates[r.Node] = NodeState{Location: r.Location, Status: "NORMAL"}
		case RecordMove:
			s.MoveCount++
			if r.Status == "ATTACKER" {
				s.AttackerMoves++
			}
			s.FinalStates[r.Node] = NodeState{Location: r.To, Status: r.Status}
		case RecordRekey:
			s.RekeyCount++
		}
	}
	return s
}
