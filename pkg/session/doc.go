/*
Package session provides safe concurrent access to per-session state.

The Manager serializes all operations on a given session via reference
counted in-process locks, and optionally coordinates across replicas with
a DistributedLocker. Two sessions never share state: each owns an
independent State instance in the store.
*/
package session
