/*
Package converse is a deterministic flow engine for branching conversations:
onboarding scripts, support intake, survey bots and other dialogue-shaped
workflows.

A conversation is described once as a FlowDefinition (a directed graph of
typed nodes) and executed one user answer at a time. The engine walks the
graph forward from the current position, emitting messages, evaluating
conditions and invoking external actions, until it either needs the next
answer or reaches an end node. Between answers the engine holds no state:
it receives a FlowState snapshot and returns an updated one, which is what
makes sessions storable, resumable and horizontally scalable.

# Key Features

  - Deterministic Execution: the same definition and answer sequence always
    produces the same transcript, variables and completion flag.
  - Hexagonal Architecture: the traversal core is decoupled from adapters
    (storage, HTTP transport, MCP, outbound webhooks).
  - State Persistence: built-in memory, Redis and SQLite stores behind one
    StateStore port, with distributed locking for multi-replica setups.
  - Strict Contracts: definitions are structurally validated before any
    execution; unknown node types are rejected at parse time.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"
		"os"

		"github.com/vitaehq/converse"
		"github.com/vitaehq/converse/pkg/definition"
	)

	func main() {
		data, err := os.ReadFile("flow.json")
		if err != nil {
			log.Fatal(err)
		}
		def, err := definition.Parse(data)
		if err != nil {
			log.Fatal(err)
		}

		eng, err := converse.New(def)
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		res, err := eng.Initialize(ctx)
		if err != nil {
			log.Fatal(err)
		}

		for !res.IsComplete {
			fmt.Println(res.NextQuestion.ID)
			res, err = eng.ProcessUserResponse(ctx, res.State, "some answer")
			if err != nil {
				log.Fatal(err)
			}
		}
	}

For an interactive terminal loop, see Runner. For serving flows over HTTP
or MCP, see pkg/adapters/httpapi and pkg/adapters/mcp.
*/
package converse
