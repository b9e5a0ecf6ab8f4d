/*
Package session orchestrates concurrent access to stored conversations.

The Manager serializes per-session operations with reference-counted local
locks and, optionally, a distributed locker for multi-replica deployments.
The Service composes a FlowEngine with a Manager into the operations the
transports expose: start, respond, inspect, reset, delete.
*/
package session
