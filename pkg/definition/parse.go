// Package definition loads and validates flow definitions from their JSON
// and YAML wire forms.
package definition

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/vitaehq/converse/pkg/domain"
)

// wireNode mirrors the editor export: node data arrives as an untyped
// object and is narrowed into the tagged union by decodeData.
type wireNode struct {
	ID       string          `json:"id"`
	Type     domain.NodeType `json:"type"`
	Position domain.Position `json:"position"`
	Data     map[string]any  `json:"data"`
}

type wireDefinition struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Version     string            `json:"version"`
	Nodes       []wireNode        `json:"nodes"`
	Edges       []domain.Edge     `json:"edges"`
	Variables   []domain.Variable `json:"variables"`
	Settings    domain.Settings   `json:"settings"`
}

// Parse decodes a JSON flow export into a typed FlowDefinition. Unknown
// node types are a parse error: the traversal engine dispatches on a closed
// set and refuses to guess.
func Parse(data []byte) (*domain.FlowDefinition, error) {
	var wire wireDefinition
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("parsing flow definition: %w", err)
	}

	def := &domain.FlowDefinition{
		ID:          wire.ID,
		Name:        wire.Name,
		Description: wire.Description,
		Version:     wire.Version,
		Edges:       wire.Edges,
		Variables:   wire.Variables,
		Settings:    wire.Settings,
	}

	def.Nodes = make([]domain.Node, 0, len(wire.Nodes))
	for _, wn := range wire.Nodes {
		nd, err := decodeData(wn.Type, wn.Data)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", wn.ID, err)
		}
		def.Nodes = append(def.Nodes, domain.Node{
			ID:       wn.ID,
			Type:     wn.Type,
			Position: wn.Position,
			Data:     nd,
		})
	}
	return def, nil
}

// ParseYAML accepts the same document shape in YAML. The document is
// normalized through JSON so both wire forms share one decode path.
func ParseYAML(data []byte) (*domain.FlowDefinition, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing flow YAML: %w", err)
	}
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("normalizing flow YAML: %w", err)
	}
	return Parse(jsonBytes)
}

// Marshal serializes a definition back to its JSON wire form. Round-trips
// through Parse preserve branch decisions, though not necessarily byte
// layout.
func Marshal(def *domain.FlowDefinition) ([]byte, error) {
	return json.MarshalIndent(def, "", "  ")
}

func decodeData(t domain.NodeType, raw map[string]any) (domain.NodeData, error) {
	var target domain.NodeData
	switch t {
	case domain.NodeTypeStart:
		return domain.StartData{}, nil
	case domain.NodeTypeMessage:
		target = &domain.MessageData{}
	case domain.NodeTypeQuestion:
		target = &domain.QuestionData{}
	case domain.NodeTypeCondition:
		target = &domain.ConditionData{}
	case domain.NodeTypeAction:
		target = &domain.ActionData{}
	case domain.NodeTypeWait:
		target = &domain.WaitData{}
	case domain.NodeTypeAPICall:
		target = &domain.APICallData{}
	case domain.NodeTypeWebhook:
		target = &domain.WebhookData{}
	case domain.NodeTypeEnd:
		target = &domain.EndData{}
	default:
		return nil, fmt.Errorf("unknown node type %q", t)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding %s data: %w", t, err)
	}
	return deref(target), nil
}

// deref flattens the decode targets back to value types so node data
// compares and copies like plain data.
func deref(nd domain.NodeData) domain.NodeData {
	switch v := nd.(type) {
	case *domain.MessageData:
		return *v
	case *domain.QuestionData:
		return *v
	case *domain.ConditionData:
		return *v
	case *domain.ActionData:
		return *v
	case *domain.WaitData:
		return *v
	case *domain.APICallData:
		return *v
	case *domain.WebhookData:
		return *v
	case *domain.EndData:
		return *v
	default:
		return nd
	}
}
