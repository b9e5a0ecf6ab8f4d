package definition

import (
	"fmt"

	"github.com/vitaehq/converse/pkg/domain"
)

// Validate checks the structural integrity of a flow before execution. It
// gathers every problem instead of stopping at the first. Callers must not
// execute a definition whose result has IsValid false.
func Validate(def *domain.FlowDefinition) ValidationResult {
	var errs []Error

	nodes := make(map[string]*domain.Node, len(def.Nodes))
	for i := range def.Nodes {
		n := &def.Nodes[i]
		if _, dup := nodes[n.ID]; dup {
			errs = append(errs, Error{
				Code:    CodeDuplicateNodeID,
				NodeID:  n.ID,
				Message: "node id declared more than once",
			})
			continue
		}
		nodes[n.ID] = n
	}

	var starts []*domain.Node
	for _, n := range nodes {
		if n.Type == domain.NodeTypeStart {
			starts = append(starts, n)
		}
	}
	switch {
	case len(starts) == 0:
		errs = append(errs, Error{
			Code:    CodeNoStartNode,
			Message: "flow must declare exactly one start node",
		})
	case len(starts) > 1:
		for _, n := range starts {
			errs = append(errs, Error{
				Code:    CodeMultipleStartNodes,
				NodeID:  n.ID,
				Message: "flow must declare exactly one start node",
			})
		}
	}

	incoming := make(map[string]int)
	outgoing := make(map[string][]domain.Edge)
	for _, e := range def.Edges {
		if _, ok := nodes[e.Source]; !ok {
			errs = append(errs, Error{
				Code:    CodeDanglingEdge,
				EdgeID:  e.ID,
				Message: fmt.Sprintf("edge source %q is not a declared node", e.Source),
			})
		}
		if _, ok := nodes[e.Target]; !ok {
			errs = append(errs, Error{
				Code:    CodeDanglingEdge,
				EdgeID:  e.ID,
				Message: fmt.Sprintf("edge target %q is not a declared node", e.Target),
			})
		}
		incoming[e.Target]++
		outgoing[e.Source] = append(outgoing[e.Source], e)
	}

	for _, n := range nodes {
		switch n.Type {
		case domain.NodeTypeStart:
			if incoming[n.ID] > 0 {
				errs = append(errs, Error{
					Code:    CodeStartHasIncoming,
					NodeID:  n.ID,
					Message: "start node must not have incoming edges",
				})
			}
		case domain.NodeTypeEnd:
			continue
		}
		if n.Type != domain.NodeTypeEnd && len(outgoing[n.ID]) == 0 {
			errs = append(errs, Error{
				Code:    CodeNoOutgoingEdge,
				NodeID:  n.ID,
				Message: "node has no outgoing edge and is not an end node",
			})
			continue
		}
		errs = append(errs, checkBranches(n, outgoing[n.ID])...)
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// checkBranches verifies that branching nodes have an edge for every
// outcome the engine can produce at runtime.
func checkBranches(n *domain.Node, edges []domain.Edge) []Error {
	handles := make(map[string]bool, len(edges))
	for _, e := range edges {
		handles[e.SourceHandle] = true
	}

	var errs []Error
	missing := func(handle string) {
		errs = append(errs, Error{
			Code:    CodeMissingBranch,
			NodeID:  n.ID,
			Message: fmt.Sprintf("missing edge for %q handle", handle),
		})
	}

	switch data := n.Data.(type) {
	case domain.ConditionData:
		if data.Condition.IsMultiOutput() {
			for _, out := range data.Condition.Outputs {
				if !handles[out.Value] {
					missing(out.Value)
				}
			}
		} else {
			if !handles[domain.HandleTrue] {
				missing(domain.HandleTrue)
			}
			if !handles[domain.HandleFalse] {
				missing(domain.HandleFalse)
			}
		}
	case domain.APICallData, domain.WebhookData:
		if !handles[domain.HandleSuccess] && !handles[""] {
			missing(domain.HandleSuccess)
		}
	}
	return errs
}
