/*
Package ports defines the driven ports (interfaces) for the Converse engine.

These interfaces decouple the core logic from external implementations,
allowing the engine to work with various storage backends and HTTP transports.

# Key Interfaces

  - StateStore: Responsible for persisting and loading session FlowState.
  - ActionInvoker: Executes external calls for api-call, webhook and action nodes.
  - DistributedLocker: Provides distributed locking for handling concurrent session access.
*/
package ports
