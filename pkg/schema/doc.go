/*
Package schema defines the typed payloads stored in the shared session state.

Each workflow writes well-known keys (see pkg/domain/keys.go) whose values
are the structs below. Because state values survive JSON round-trips through
the store adapters, they may come back as generic maps; Decode rehydrates
them into their typed form using mapstructure.
*/
package schema
