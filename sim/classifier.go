package sim

import "github.com/sirupsen/logrus"

// NodeStatus is the classifier's verdict on a node's movement pattern.
type NodeStatus string

const (
	StatusNormal   NodeStatus = "NORMAL"
	StatusAttacker NodeStatus = "ATTACKER"
)

const (
	// movementWindow is the trailing window, in time units, over which moves
	// are counted.
	movementWindow = 300.0
	// suspicionThreshold is the move count above which (strictly) a node is
	// flagged.
	suspicionThreshold = 3
)

// AnomalyClassifier labels node movements as normal or suspicious based on
// movement frequency. It stands in for a trained model: the fixed rule flags
// a node that moves more than suspicionThreshold times within the trailing
// movementWindow. Given an identical sequence of (nodeID, time) calls it
// produces an identical sequence of verdicts.
type AnomalyClassifier struct {
	history map[string][]float64 // node ID → move timestamps, pruned per call
}

// NewAnomalyClassifier creates a classifier with empty movement history.
func NewAnomalyClassifier() *AnomalyClassifier {
	return &AnomalyClassifier{history: make(map[string][]float64)}
}

// Classify records a movement of nodeID at time now and returns the verdict.
// The node's history is pruned to moves strictly within the trailing window
// before counting.
func (c *AnomalyClassifier) Classify(nodeID string, now float64) NodeStatus {
	timestamps := append(c.history[nodeID], now)

	recent := timestamps[:0]
	for _, t := range timestamps {
		if now-t < movementWindow {
			recent = append(recent, t)
		}
	}
	c.history[nodeID] = recent

	if len(recent) > suspicionThreshold {
		logrus.Warnf("[tick %.2f] classifier: node %s movement is SUSPICIOUS (%d moves in window)", now, nodeID, len(recent))
		return StatusAttacker
	}
	logrus.Infof("[tick %.2f] classifier: node %s movement is NORMAL", now, nodeID)
	return StatusNormal
}

// HistoryLen returns the number of in-window moves currently retained for a
// node. Intended for tests and diagnostics.
func (c *AnomalyClassifier) HistoryLen(nodeID string) int {
	return len(c.history[nodeID])
}
