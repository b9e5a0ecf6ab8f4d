/*
Package domain contains the core data model for the Converse flow engine.

It defines the fundamental entities of the dialogue state machine: the
immutable FlowDefinition (nodes, edges, variables), the session-scoped
FlowState, and the ExecutionResult contract returned by every engine entry
point. This package is kept pure and free of external dependencies like I/O
or persistence, following Hexagonal Architecture principles.

# Key Entities

  - FlowDefinition: Immutable, directed, branching dialogue graph.
  - Node: A typed vertex. Node data is a tagged union (one struct per type).
  - Edge: A directed connection, optionally qualified by a source handle.
  - Condition / Rule: Boolean combination or ordered multi-output selection.
  - FlowState: Runtime snapshot of a session (variables, position, transcript).
  - ActionCall / ActionResult: The engine's sole I/O boundary contract.
*/
package domain
