package cmd

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fogsim/fogsim/sim/trace"
)

var replayInput string

// replayCmd reads a persisted event log and replays it frame by frame in
// ascending time order, the way a dashboard consumer renders it. The log is
// self-sufficient: node positions and statuses are reconstructed purely from
// the cumulative event history.
var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a persisted event log frame by frame",
	Run: func(cmd *cobra.Command, args []string) {
		log, err := trace.ReadFile(replayInput)
		if err != nil {
			logrus.Fatalf("Failed to read event log: %v", err)
		}

		frames := append([]trace.Record(nil), log.Records()...)
		sort.SliceStable(frames, func(i, j int) bool { return frames[i].Time < frames[j].Time })
		for _, r := range frames {
			switch r.Type {
			case trace.RecordInitial:
				fmt.Printf("[%8.2f] %-7s %s starts at %s\n", r.Time, r.Type, r.Node, r.Location)
			case trace.RecordMove:
				fmt.Printf("[%8.2f] %-7s %s %s -> %s (%s)\n", r.Time, r.Type, r.Node, r.From, r.To, r.Status)
			case trace.RecordRekey:
				fmt.Printf("[%8.2f] %-7s seed=%s key=%s\n", r.Time, r.Type, r.Seed, r.Key)
			default:
				logrus.Warnf("unknown record type %q at time %.2f", r.Type, r.Time)
			}
		}

		s := trace.Summarize(log)
		fmt.Printf("\n%d records: %d initial, %d moves (%d flagged), %d rekeyings\n",
			s.TotalRecords, s.InitialCount, s.MoveCount, s.AttackerMoves, s.RekeyCount)
		fmt.Println("Final node states:")
		for _, ns := range sortedStates(s.FinalStates) {
			fmt.Printf("  %-10s at %-10s [%s]\n", ns.node, ns.state.Location, ns.state.Status)
		}
	},
}

type namedState struct {
	node  string
	state trace.NodeState
}

// sortedStates flattens the final-state map into node ID order for stable
// output.
func sortedStates(states map[string]trace.NodeState) []namedState {
	out := make([]namedState, 0, len(states))
	for node, state := range states {
		out = append(out, namedState{node: node, state: state})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].node < out[j].node })
	return out
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "simulation_log.json", "Event log file to replay")

	rootCmd.AddCommand(replayCmd)
}
