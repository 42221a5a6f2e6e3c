// Package rediscache keeps PokeAPI responses in Redis so repeated lookups,
// including the agent's pokemon_info tool calls, skip the upstream round trip.
package rediscache
