// Package game runs tables of Texas Hold'em.
//
// A Table seats players, posts blinds, deals, enforces the betting rules and
// settles the pots. It is driven entirely by calls from its host: nothing
// happens between calls, and every accepted action is published to the
// table's EventBus before the call returns.
//
// # Basic Usage
//
//	t, _ := game.NewTable(game.Config{
//		SmallBlind: 10, BigBlind: 20,
//		MinPlayers: 2, MaxPlayers: 6,
//		MinBuyIn: 200, MaxBuyIn: 2000,
//	})
//	t.AddPlayer("alice", 1000)
//	t.AddPlayer("bob", 1000) // the first hand is dealt here
//	t.Seat("alice").Call()
//	t.Seat("bob").Check()
//
// # Deterministic Testing
//
// WithSeed makes shuffles reproducible and WithDecks stacks the deck for a
// given hand:
//
//	t, _ := game.NewTable(cfg, game.WithDecks(func(n int, rng *rand.Rand) *poker.Deck {
//		d, _ := poker.NewStackedDeck(rng, poker.MustParseCards("As Kd Ah Kc")...)
//		return d
//	}))
//
// # Architecture
//
// Table delegates to smaller pieces:
//   - BettingRound validates and applies actions and decides when a street closes
//   - SidePots and Settle split the committed chips and pay the winners
//   - poker.Deck and poker.BestHand deal and rank the cards
//   - Engine asks Agents for decisions until a hand completes
package game
