// meta/meta.go
package meta

// MaxTurns caps the turns of a match before it is abandoned without a winner.
const MaxTurns = 1500

// Players defines the number of players in a training match.
const Players = 4

// PoolSize defines the number of genomes in the genetic pool.
const PoolSize = 150

// RankingIterations defines the number of rounds of matches per generation.
const RankingIterations = 12

// Generations defines the number of generations a training run evolves.
const Generations = 10

// Workers defines the number of matches played concurrently.
const Workers = 1
