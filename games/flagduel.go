package games

// Two players are matched from a shared queue and shown the same sequence of ten flags
// Each flag stays up for a fixed time; the first player to type the right country name scores
// A wrong answer only tells the player who sent it; the round stays open for both
// If nobody gets it before the timer, the answer is revealed and play moves straight on
// After a correct answer there is a short pause so both players can see who scored
// Leaving mid-game forfeits: the other player is told and final scores are sent

// Answer handling:
// Accents and punctuation shouldn't matter ("Cote d'Ivoire" == "Côte d'Ivoire")
// Common short forms should count ("UK", "USA", "Holland")
// Partial answers count if they're a whole word of the real name ("Kingdom" for "United Kingdom")
// Very short fragments shouldn't match by accident ("us" inside other names)

// Implementation details:
// - One websocket per player into a single shared lobby
// - The lobby goroutine owns all state; timers post events back into it
// - Flag images come from an external flag API keyed by ISO country code
