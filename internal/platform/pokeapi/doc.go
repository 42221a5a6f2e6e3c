// Package pokeapi is a small read-only client for the public PokeAPI
// (https://pokeapi.co). It backs the /pokemon proxy routes and the agent's
// pokemon_info tool.
package pokeapi
