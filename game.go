package main

import (
	"crypto/rand"
	"fmt"
	"time"
)

type answerEvent struct {
	client *Client
	text   string
}

type timeoutEvent struct {
	matchID string
	round   int
}

// round is the per-round context: the question being raced, the
// single-resolution gate, and the armed timeout. Exactly one of
// handleAnswer and handleRoundTimeout resolves it.
type round struct {
	num      int // index into match.questions
	question Country
	resolved bool
	timer    *time.Timer
}

type match struct {
	id        string
	players   [2]*Client // order fixed at pairing time, indexes scores
	scores    [2]int
	questions []Country
	current   int         // reaching len(questions) ends the match
	round     *round      // nil between rounds and once the match is over
	advance   *time.Timer // pending grace-delay timer, if any
}

func (m *match) indexOf(c *Client) int {
	for i, p := range m.players {
		if p == c {
			return i
		}
	}
	return -1
}

// broadcast sends msg to both players in the match.
func (m *match) broadcast(msg any) {
	for _, p := range m.players {
		p.emit(msg)
	}
}

// Lobby owns the matchmaking queue, the match registry, and every live
// match. The run goroutine is the only code that touches them; everything
// else communicates over the channels, so round resolution needs no locks.
type Lobby struct {
	cfg *Config

	joins    chan *Client
	answers  chan answerEvent
	parts    chan *Client
	timeouts chan timeoutEvent
	advances chan string

	queue    []*Client         // FIFO of waiting connections
	matches  map[string]*match // live matches by id
	byPlayer map[*Client]*match
}

func newLobby(cfg *Config) *Lobby {
	return &Lobby{
		cfg:      cfg,
		joins:    make(chan *Client),
		answers:  make(chan answerEvent),
		parts:    make(chan *Client),
		timeouts: make(chan timeoutEvent, 16),
		advances: make(chan string, 16),
		matches:  make(map[string]*match),
		byPlayer: make(map[*Client]*match),
	}
}

func (l *Lobby) run() {
	for {
		select {
		case c := <-l.joins:
			l.handleJoin(c)
		case ev := <-l.answers:
			l.handleAnswer(ev.client, ev.text)
		case c := <-l.parts:
			l.handleDisconnect(c)
		case ev := <-l.timeouts:
			l.handleRoundTimeout(ev.matchID, ev.round)
		case id := <-l.advances:
			l.handleAdvance(id)
		}
	}
}

// handleJoin appends the connection to the queue unless it is already
// queued or playing, then pairs the two oldest waiters if possible.
func (l *Lobby) handleJoin(c *Client) {
	if _, playing := l.byPlayer[c]; playing {
		return
	}
	for _, q := range l.queue {
		if q == c {
			return
		}
	}

	l.queue = append(l.queue, c)

	if len(l.queue) < 2 {
		c.emit(eventMessage{Type: "waitingForOpponent"})
		return
	}

	p0, p1 := l.queue[0], l.queue[1]
	l.queue = l.queue[2:]
	l.createMatch(p0, p1)
}

func (l *Lobby) createMatch(p0, p1 *Client) {
	m := &match{
		id:        l.newMatchID(),
		players:   [2]*Client{p0, p1},
		questions: pickQuestions(countries, l.cfg.rounds),
	}

	l.matches[m.id] = m
	l.byPlayer[p0] = m
	l.byPlayer[p1] = m

	p0.emit(gameStartMessage{Type: "gameStart", GameID: m.id, OpponentID: p1.id})
	p1.emit(gameStartMessage{Type: "gameStart", GameID: m.id, OpponentID: p0.id})

	logf(l.cfg, "DUEL: Match %s started (%s vs %s)", m.id, p0.id, p1.id)

	l.startRound(m)
}

// startRound announces the current question and arms its timeout, or
// finalizes the match once all questions have been played.
func (l *Lobby) startRound(m *match) {
	if m.current >= len(m.questions) {
		l.finalize(m.id)
		return
	}

	r := &round{num: m.current, question: m.questions[m.current]}
	m.round = r

	m.broadcast(newQuestionMessage{
		Type:        "newQuestion",
		FlagURL:     fmt.Sprintf(l.cfg.flagURL, r.question.Code),
		QuestionNum: m.current + 1,
	})

	matchID, num := m.id, r.num
	r.timer = time.AfterFunc(l.cfg.roundTimeout, func() {
		l.timeouts <- timeoutEvent{matchID: matchID, round: num}
	})
}

// handleAnswer evaluates an answer against the active round. Answers for
// finished matches, between rounds, or after resolution are silent no-ops.
func (l *Lobby) handleAnswer(c *Client, text string) {
	m := l.byPlayer[c]
	if m == nil || m.round == nil || m.round.resolved {
		return
	}
	idx := m.indexOf(c)
	if idx < 0 {
		return
	}

	r := m.round
	if !isCorrect(text, r.question.Name) {
		c.emit(eventMessage{Type: "wrongAnswer"})
		return
	}

	r.resolved = true
	r.timer.Stop()
	m.round = nil

	m.scores[idx]++
	m.broadcast(correctAnswerMessage{Type: "correctAnswer", PlayerID: c.id, Correct: r.question.Name})
	m.current++

	// Grace delay so both clients can render the result before the next
	// question lands.
	matchID := m.id
	m.advance = time.AfterFunc(l.cfg.graceDelay, func() {
		l.advances <- matchID
	})
}

// handleRoundTimeout fires when a round timer expires. Stale timers (the
// match is gone, the round already resolved, or play moved on) are no-ops.
func (l *Lobby) handleRoundTimeout(matchID string, num int) {
	m := l.matches[matchID]
	if m == nil {
		return
	}
	r := m.round
	if r == nil || r.num != num || r.resolved {
		return
	}

	r.resolved = true
	m.round = nil

	m.broadcast(timeUpMessage{Type: "timeUp", Correct: r.question.Name})
	m.current++
	l.startRound(m)
}

// handleAdvance starts the next round once the grace delay has elapsed.
func (l *Lobby) handleAdvance(matchID string) {
	m := l.matches[matchID]
	if m == nil {
		return
	}
	m.advance = nil
	l.startRound(m)
}

// handleDisconnect removes the connection from wherever it is waiting or
// playing. A disconnect mid-match tears the match down.
func (l *Lobby) handleDisconnect(c *Client) {
	for i, q := range l.queue {
		if q == c {
			l.queue = append(l.queue[:i], l.queue[i+1:]...)
			break
		}
	}

	if m := l.byPlayer[c]; m != nil {
		logf(l.cfg, "DUEL: Player %s disconnected from match %s", c.id, m.id)
		m.broadcast(eventMessage{Type: "opponentDisconnected"})
		l.finalize(m.id)
	}

	close(c.send)
}

// finalize reports both players' final scores and removes the match from
// the registry. Idempotent: a missing match is a no-op.
func (l *Lobby) finalize(matchID string) {
	m := l.matches[matchID]
	if m == nil {
		return
	}

	if m.round != nil {
		m.round.resolved = true
		m.round.timer.Stop()
		m.round = nil
	}
	if m.advance != nil {
		m.advance.Stop()
		m.advance = nil
	}

	m.broadcast(gameEndMessage{
		Type:    "gameEnd",
		Player1: playerResult{ID: m.players[0].id, Score: m.scores[0]},
		Player2: playerResult{ID: m.players[1].id, Score: m.scores[1]},
	})

	delete(l.matches, matchID)
	delete(l.byPlayer, m.players[0])
	delete(l.byPlayer, m.players[1])

	logf(l.cfg, "DUEL: Match %s ended %d-%d", m.id, m.scores[0], m.scores[1])
}

// newMatchID generates a crypto-random match ID and ensures it doesn't
// collide with a live match.
func (l *Lobby) newMatchID() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	for {
		buf := make([]byte, 9)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		out := make([]byte, 9)
		for i := range out {
			out[i] = letters[int(buf[i])%len(letters)]
		}
		id := string(out)

		if _, exists := l.matches[id]; !exists {
			return id
		}
	}
}
