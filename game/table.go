package game

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem/internal/randutil"
	"github.com/lox/holdem/poker"
)

// State is the lifecycle state of a table
type State int

const (
	WaitingForPlayers State = iota
	HandInProgress
	HandComplete
)

func (s State) String() string {
	switch s {
	case WaitingForPlayers:
		return "waiting"
	case HandInProgress:
		return "in progress"
	case HandComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// hand is the state of one deal, from the blinds to settlement
type hand struct {
	id      string
	number  int
	players []*Player // dealt in, in seat order
	button  int       // index into players
	sb, bb  int
	deck    *poker.Deck
	board   []poker.Card
	pot     int // collected from finished streets and folds
	round   *BettingRound
}

func (h *hand) index(name string) int {
	return slices.IndexFunc(h.players, func(p *Player) bool { return p.Name == name })
}

func (h *hand) contenders() int {
	n := 0
	for _, p := range h.players {
		if !p.Folded {
			n++
		}
	}
	return n
}

// Table seats players and runs hands of hold'em between them. A Table is not
// safe for concurrent use; see the shotclock package for a synchronised wrapper.
type Table struct {
	cfg        Config
	seats      []*Player // indexed by seat, nil when empty
	buttonSeat int
	joining    []*Player
	leaving    []string
	hand       *hand
	state      State
	handCount  int
	last       *HandResult

	rng         *rand.Rand
	deck        *poker.Deck
	logger      *log.Logger
	clock       quartz.Clock
	bus         EventBus
	newID       func() string
	deckFor     func(hand int, rng *rand.Rand) *poker.Deck
	autoNext    bool
	manualStart bool
}

// NewTable creates an empty table
func NewTable(cfg Config, opts ...Option) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.rng == nil {
		o.rng = randutil.New(randutil.Seed())
	}
	if o.bus == nil {
		o.bus = NewEventBus()
	}

	logger := o.logger
	if cfg.Name != "" {
		logger = logger.With("table", cfg.Name)
	}

	return &Table{
		cfg:         cfg,
		seats:       make([]*Player, cfg.MaxPlayers),
		buttonSeat:  -1,
		rng:         o.rng,
		deck:        poker.NewDeck(o.rng),
		logger:      logger,
		clock:       o.clock,
		bus:         o.bus,
		newID:       o.newID,
		deckFor:     o.deckFor,
		autoNext:    o.autoNext,
		manualStart: o.manualStart,
	}, nil
}

// Config returns the table configuration
func (t *Table) Config() Config {
	return t.cfg
}

// EventBus returns the bus the table publishes to
func (t *Table) EventBus() EventBus {
	return t.bus
}

// Subscribe registers a subscriber for table events
func (t *Table) Subscribe(sub EventSubscriber) (unsubscribe func()) {
	return t.bus.Subscribe(sub)
}

func (t *Table) publish(event GameEvent) {
	t.bus.Publish(event)
}

// AddPlayer seats a player with a buy-in. While a hand is running the player
// is queued and seated when it ends. The first hand starts automatically once
// enough players are seated, unless WithManualStart was given.
func (t *Table) AddPlayer(name string, chips int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: player name must not be empty", ErrConfig)
	}
	if chips < t.cfg.MinBuyIn || chips > t.cfg.MaxBuyIn {
		return fmt.Errorf("%w: %d is outside [%d, %d]", ErrBuyIn, chips, t.cfg.MinBuyIn, t.cfg.MaxBuyIn)
	}
	if t.find(name) != nil || t.pending(name) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicatePlayer, name)
	}
	if t.seated()+len(t.joining) >= t.cfg.MaxPlayers {
		return fmt.Errorf("%w: %d seats taken", ErrTableFull, t.cfg.MaxPlayers)
	}

	p := &Player{Name: name, Seat: -1, Chips: chips}
	if t.state == HandInProgress {
		t.joining = append(t.joining, p)
		t.logger.Debug("Player queued to join", "player", name, "chips", chips)
		return nil
	}

	t.sit(p)
	if t.state == WaitingForPlayers && !t.manualStart && t.seated() >= t.cfg.MinPlayers {
		return t.NextRound()
	}
	return nil
}

// RemovePlayer stands a player up. A player in the running hand keeps playing
// it and leaves when it ends.
func (t *Table) RemovePlayer(name string) error {
	if i := t.pending(name); i >= 0 {
		t.joining = slices.Delete(t.joining, i, i+1)
		return nil
	}
	p := t.find(name)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, name)
	}
	if t.state == HandInProgress && t.hand.index(name) >= 0 {
		if !slices.Contains(t.leaving, name) {
			t.leaving = append(t.leaving, name)
		}
		t.logger.Debug("Player queued to leave", "player", name)
		return nil
	}
	t.stand(p, LeftVoluntarily)
	return nil
}

// AddChips tops up a player's stack between hands
func (t *Table) AddChips(name string, amount int) error {
	p := t.find(name)
	if p == nil {
		if i := t.pending(name); i >= 0 {
			p = t.joining[i]
		}
	}
	if p == nil {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, name)
	}
	if t.state == HandInProgress && t.hand.index(name) >= 0 {
		return fmt.Errorf("%w: %s is in a hand", ErrHandInProgress, name)
	}
	if amount <= 0 || p.Chips+amount > t.cfg.MaxBuyIn {
		return fmt.Errorf("%w: cannot add %d to %d, max is %d", ErrBuyIn, amount, p.Chips, t.cfg.MaxBuyIn)
	}
	p.Chips += amount
	return nil
}

// StartGame starts the first hand. It fails unless enough players are seated.
func (t *Table) StartGame() error {
	return t.NextRound()
}

// NextRound moves the button and deals a new hand
func (t *Table) NextRound() error {
	if t.state == HandInProgress {
		return ErrHandInProgress
	}

	players := t.players()
	if len(players) < t.cfg.MinPlayers {
		t.state = WaitingForPlayers
		return fmt.Errorf("%w: %d seated, need %d", ErrNotEnoughPlayers, len(players), t.cfg.MinPlayers)
	}

	t.handCount++
	button := 0
	for i, p := range players {
		if t.buttonSeat >= 0 && p.Seat > t.buttonSeat {
			button = i
			break
		}
	}
	return t.deal(players, button)
}

// deal posts the blinds and deals hole cards
func (t *Table) deal(players []*Player, button int) error {
	n := len(players)
	h := &hand{
		id:      t.newID(),
		number:  t.handCount,
		players: players,
		button:  button,
		round:   NewBettingRound(Preflop, n, t.cfg.BigBlind, t.cfg.Limit),
	}
	if t.deckFor != nil {
		h.deck = t.deckFor(h.number, t.rng)
	}
	if h.deck == nil {
		t.deck.Reset()
		h.deck = t.deck
	}

	if n == 2 {
		h.sb, h.bb = button, (button+1)%n
	} else {
		h.sb, h.bb = (button+1)%n, (button+2)%n
	}

	for _, p := range players {
		p.resetHand()
	}
	before := t.playerStates(players, nil, "")

	sb := h.round.post(players[h.sb], h.sb, t.cfg.SmallBlind)
	bb := h.round.post(players[h.bb], h.bb, t.cfg.BigBlind)
	h.round.CurrentBet = t.cfg.BigBlind
	h.round.Raises = 1

	t.hand = h
	t.state = HandInProgress
	t.buttonSeat = players[button].Seat

	t.publish(NewRoundEvent{
		HandID:     h.id,
		HandNumber: h.number,
		Button:     players[button].Name,
		SmallBlind: Blind{Player: players[h.sb].Name, Amount: sb},
		BigBlind:   Blind{Player: players[h.bb].Name, Amount: bb},
		Players:    before,
		Time:       t.clock.Now(),
	})

	dealt := make([]string, n)
	for round := range 2 {
		for k := range n {
			i := (button + 1 + k) % n
			card, err := h.deck.Draw()
			if err != nil {
				return fmt.Errorf("dealing hole cards: %w", err)
			}
			players[i].Hole = append(players[i].Hole, card)
			if round == 0 {
				dealt[k] = players[i].Name
			}
		}
	}
	t.publish(DealEvent{HandID: h.id, Street: Preflop, Dealt: dealt, Time: t.clock.Now()})

	t.logger.Info("Hand started", "hand", h.number, "id", h.id, "button", players[button].Name, "players", n)
	return t.proceed(h.bb)
}

// PerformAction applies an action for the named player. Rejected actions
// leave the table untouched and publish nothing.
func (t *Table) PerformAction(name string, action Action, amount int) error {
	if t.state != HandInProgress {
		if t.find(name) == nil && t.pending(name) < 0 {
			return fmt.Errorf("%w: %s", ErrUnknownPlayer, name)
		}
		return fmt.Errorf("%w: no hand in progress", ErrOutOfTurn)
	}

	h := t.hand
	i := h.index(name)
	if i < 0 {
		if t.find(name) == nil && t.pending(name) < 0 {
			return fmt.Errorf("%w: %s", ErrUnknownPlayer, name)
		}
		return fmt.Errorf("%w: %s is not in this hand", ErrOutOfTurn, name)
	}
	if i != h.round.Turn {
		return fmt.Errorf("%w: %s acted, waiting on %s", ErrOutOfTurn, name, h.players[h.round.Turn].Name)
	}

	res, err := h.round.Apply(h.players, i, action, amount)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	h.pot += res.Folded

	event := PlayerActionEvent{
		HandID:    h.id,
		Player:    name,
		Seat:      h.players[i].Seat,
		Street:    h.round.Street,
		Action:    res.Action,
		Requested: res.Requested,
		Added:     res.Added,
		Total:     res.Total,
		PotAfter:  h.pot + sum(h.round.Bets),
		Time:      t.clock.Now(),
	}
	if res.Raise {
		event.BetName = BetName(res.BetNumber)
	}
	t.publish(event)
	t.logger.Debug("Player action", "player", name, "street", h.round.Street, "action", res.Action, "total", res.Total)

	return t.proceed(i)
}

// proceed moves play on after player last acted: to the next player, the
// next street, or settlement.
func (t *Table) proceed(last int) error {
	h := t.hand
	if h.contenders() <= 1 {
		return t.finish()
	}
	for h.round.IsClosed(h.players) {
		if err := t.nextStreet(); err != nil {
			return err
		}
		if h.round.Street == Showdown {
			return t.finish()
		}
		last = h.button
	}

	h.round.Turn = h.round.NextTurn(h.players, last)
	p := h.players[h.round.Turn]
	t.publish(TurnEvent{
		HandID:       h.id,
		Player:       p.Name,
		Street:       h.round.Street,
		ToCall:       h.round.ToCall(h.round.Turn),
		ValidActions: h.round.ValidActions(h.players, h.round.Turn),
		Time:         t.clock.Now(),
	})
	return nil
}

// nextStreet collects the bets and deals the next street's cards
func (t *Table) nextStreet() error {
	h := t.hand
	h.pot += h.round.Collect(h.players)
	street := h.round.Street + 1
	h.round = NewBettingRound(street, len(h.players), t.cfg.BigBlind, t.cfg.Limit)
	if street == Showdown {
		return nil
	}

	count := 1
	if street == Flop {
		count = 3
	}
	if err := h.deck.Burn(); err != nil {
		return fmt.Errorf("burning before %s: %w", street, err)
	}
	cards, err := h.deck.Deal(count)
	if err != nil {
		return fmt.Errorf("dealing %s: %w", street, err)
	}
	h.board = append(h.board, cards...)

	t.publish(DealEvent{
		HandID: h.id,
		Street: street,
		Cards:  cards,
		Board:  slices.Clone(h.board),
		Time:   t.clock.Now(),
	})
	t.logger.Debug("Dealt street", "street", street, "board", poker.FormatCards(h.board))
	return nil
}

// finish settles the pots, publishes the result and handles seating changes
func (t *Table) finish() error {
	h := t.hand
	h.pot += h.round.Collect(h.players)
	h.round.Street = Showdown
	h.round.Turn = -1

	n := len(h.players)
	order := make([]string, n)
	for k := range n {
		order[k] = h.players[(h.button+1+k)%n].Name
	}

	showdown := h.contenders() > 1
	result := HandResult{
		HandID:     h.id,
		HandNumber: h.number,
		Board:      slices.Clone(h.board),
		Showdown:   showdown,
		Stacks:     make(map[string]int, n),
	}

	stakes := make([]Stake, n)
	best := make(map[string][]poker.Card)
	for i, p := range h.players {
		stakes[i] = Stake{Name: p.Name, Committed: p.TotalBet, Folded: p.Folded, AllIn: p.AllIn}
		if !showdown || p.Folded {
			continue
		}
		five, rank, err := poker.BestHand(append(slices.Clone(p.Hole), h.board...))
		if err != nil {
			return fmt.Errorf("evaluating %s: %w", p.Name, err)
		}
		stakes[i].Rank = rank
		best[p.Name] = five
	}

	result.Pots = Settle(stakes, order)
	won := make(map[string]int)
	awarded := 0
	for _, pot := range result.Pots {
		for i, name := range pot.Winners {
			h.players[h.index(name)].Chips += pot.Shares[i]
			won[name] += pot.Shares[i]
			awarded += pot.Shares[i]
		}
	}
	if awarded != h.pot {
		t.logger.Error("Pot mismatch", "hand", h.number, "pot", h.pot, "awarded", awarded)
	}

	for _, name := range order {
		p := h.players[h.index(name)]
		result.Stacks[name] = p.Chips
		rank := stakes[h.index(name)].Rank
		if showdown && !p.Folded {
			result.Hands = append(result.Hands, ShownHand{Name: name, Hole: slices.Clone(p.Hole), Rank: rank, Best: best[name]})
		}
		if won[name] > 0 {
			result.Winners = append(result.Winners, Winner{Name: name, Amount: won[name], Rank: rank, Best: best[name]})
		} else {
			result.Losers = append(result.Losers, name)
		}
	}

	t.last = &result
	t.state = HandComplete
	t.publish(GameOverEvent{Result: result, Time: t.clock.Now()})
	t.logger.Info("Hand complete", "hand", h.number, "pot", h.pot, "showdown", showdown, "winners", winnerNames(result.Winners))

	t.betweenHands()
	if t.seated() < t.cfg.MinPlayers {
		t.state = WaitingForPlayers
		return nil
	}
	if t.autoNext {
		return t.NextRound()
	}
	return nil
}

// betweenHands removes busted and departing players and seats queued ones
func (t *Table) betweenHands() {
	for _, p := range t.seats {
		if p != nil && p.Chips == 0 {
			t.stand(p, LeftBusted)
		}
	}
	for _, name := range t.leaving {
		if p := t.find(name); p != nil {
			t.stand(p, LeftVoluntarily)
		}
	}
	t.leaving = nil

	joining := t.joining
	t.joining = nil
	for _, p := range joining {
		t.sit(p)
	}
}

func (t *Table) sit(p *Player) {
	seat := slices.Index(t.seats, nil)
	p.Seat = seat
	t.seats[seat] = p
	t.publish(PlayerJoinedEvent{Player: p.Name, Seat: seat, Chips: p.Chips, Time: t.clock.Now()})
	t.logger.Info("Player joined", "player", p.Name, "seat", seat, "chips", p.Chips)
}

func (t *Table) stand(p *Player, reason string) {
	t.seats[p.Seat] = nil
	t.publish(PlayerLeftEvent{Player: p.Name, Seat: p.Seat, Chips: p.Chips, Reason: reason, Time: t.clock.Now()})
	t.logger.Info("Player left", "player", p.Name, "seat", p.Seat, "chips", p.Chips, "reason", reason)
}

func (t *Table) find(name string) *Player {
	for _, p := range t.seats {
		if p != nil && p.Name == name {
			return p
		}
	}
	return nil
}

func (t *Table) pending(name string) int {
	return slices.IndexFunc(t.joining, func(p *Player) bool { return p.Name == name })
}

func (t *Table) seated() int {
	n := 0
	for _, p := range t.seats {
		if p != nil {
			n++
		}
	}
	return n
}

// players returns the seated players with chips, in seat order
func (t *Table) players() []*Player {
	var out []*Player
	for _, p := range t.seats {
		if p != nil && p.Chips > 0 {
			out = append(out, p)
		}
	}
	return out
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func winnerNames(winners []Winner) string {
	names := make([]string, len(winners))
	for i, w := range winners {
		names[i] = w.Name
	}
	return strings.Join(names, ",")
}
