package runtime

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"conclave/agent"
	"conclave/ai"
	"conclave/contract"
	"conclave/domain"
	"conclave/domain/event"
	"conclave/errors"
	"conclave/game"
	"conclave/moderation"
	"conclave/runtime/workers"
)

// handle binds one session to its agents, random source and timers.
// Everything behind mu; the lock is the per-session serialization the
// whole engine relies on.
type handle struct {
	mu      sync.Mutex
	session *domain.Session
	agents  map[string]*agent.Agent
	rng     *rand.Rand

	roundTimer    *time.Timer // one-shot: round expiry, reused for the cooldown
	voteTimer     *time.Timer // one-shot: autonomous vote delay
	cadenceCancel context.CancelFunc
	closed        bool
}

// stopTimers revokes every timer kind synchronously. Must run before
// the handle leaves the registry so nothing fires into an empty room.
func (h *handle) stopTimers() {
	if h.roundTimer != nil {
		h.roundTimer.Stop()
	}
	if h.voteTimer != nil {
		h.voteTimer.Stop()
	}
	if h.cadenceCancel != nil {
		h.cadenceCancel()
		h.cadenceCancel = nil
	}
}

// Machine is the session state machine. Every operation funnels
// through apply, which serializes mutations per session and flushes
// the event outbox inside the same critical section, so broadcast
// order always matches mutation order.
//
// Known, deliberate risk: the Voting phase has no deadline. The tally
// fires only once every living participant has voted, so a human who
// never votes stalls the round indefinitely.
type Machine struct {
	log        *slog.Logger
	registry   *Registry
	narrator   ai.Narrator
	moderator  *moderation.Moderator
	supervisor contract.ISupervisor
	events     chan<- event.DomainEvent
	timings    Timings

	baseCtx context.Context
	now     func() time.Time
	seed    func() int64
}

func NewMachine(
	log *slog.Logger,
	registry *Registry,
	narrator ai.Narrator,
	moderator *moderation.Moderator,
	supervisor contract.ISupervisor,
	events chan<- event.DomainEvent,
	timings Timings,
) *Machine {
	return &Machine{
		log:        log,
		registry:   registry,
		narrator:   narrator,
		moderator:  moderator,
		supervisor: supervisor,
		events:     events,
		timings:    timings,
		baseCtx:    context.Background(),
		now:        time.Now,
		seed:       func() int64 { return time.Now().UnixNano() },
	}
}

// Start binds per-session background work (discourse cadence,
// narration calls) to the engine's lifetime context.
func (m *Machine) Start(ctx context.Context) {
	m.baseCtx = ctx
}

// UseSeed fixes the per-session random source so tests can assert
// exact role assignments and agent picks.
func (m *Machine) UseSeed(seed int64) {
	m.seed = func() int64 { return seed }
}

// UseClock replaces the wall clock, for deterministic round end times.
func (m *Machine) UseClock(now func() time.Time) {
	m.now = now
}

// apply runs fn under the session's exclusive serialization and
// flushes the resulting events in order. Timer callbacks re-enter
// through here as well; no mutation bypasses it.
func (m *Machine) apply(sessionID string, fn func(h *handle) error) error {
	h, ok := m.registry.lookup(sessionID)
	if !ok {
		return errors.ErrSessionNotFound
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return errors.ErrSessionNotFound
	}
	err := fn(h)
	m.flush(h)
	return err
}

// flush forwards the outbox in emission order. A saturated engine
// channel drops whole events rather than blocking every session behind
// a stalled fanout: delivered events stay ordered, but consumers must
// tolerate gaps once the buffer overflows.
func (m *Machine) flush(h *handle) {
	for _, evt := range h.session.FlushEvents() {
		select {
		case m.events <- evt:
		default:
			m.log.Warn("event channel full, dropping event", "session", evt.SessionID())
		}
	}
}

// Create opens a new session in Lobby with the initiator as its first
// human participant. An id collision is retried, never user-visible.
func (m *Machine) Create(initiatorName string) (sessionID, participantID string) {
	for {
		h := &handle{
			session: domain.NewSession(uuid.NewString(), m.now()),
			agents:  make(map[string]*agent.Agent),
			rng:     rand.New(rand.NewSource(m.seed())),
		}
		if !m.registry.add(h) {
			continue
		}
		participantID = uuid.NewString()
		h.mu.Lock()
		h.session.AddParticipant(&domain.Participant{
			ID:       participantID,
			Name:     initiatorName,
			JoinedAt: m.now(),
		})
		h.session.EmitSnapshot()
		m.flush(h)
		sessionID = h.session.ID
		h.mu.Unlock()
		return sessionID, participantID
	}
}

// Join admits a human participant while the session is still in Lobby.
func (m *Machine) Join(sessionID, name string) (string, error) {
	var participantID string
	err := m.apply(sessionID, func(h *handle) error {
		if h.session.Phase != domain.PhaseLobby {
			return errors.ErrInvalidPhase
		}
		if h.session.HasName(name) {
			return errors.ErrNameTaken
		}
		participantID = uuid.NewString()
		h.session.AddParticipant(&domain.Participant{
			ID:       participantID,
			Name:     name,
			JoinedAt: m.now(),
		})
		h.session.EmitSnapshot()
		return nil
	})
	return participantID, err
}

func (m *Machine) SetReady(sessionID, participantID string, ready bool) error {
	return m.apply(sessionID, func(h *handle) error {
		if h.session.Phase != domain.PhaseLobby {
			return errors.ErrInvalidPhase
		}
		p, ok := h.session.Participant(participantID)
		if !ok {
			return errors.ErrParticipantNotFound
		}
		p.Ready = ready
		h.session.Emit(event.ParticipantReady{Session: sessionID, Participant: participantID, Ready: ready})
		h.session.EmitSnapshot()
		return nil
	})
}

// Start requires every human ready and at least one human present. It
// appends the autonomous participants, assigns roles over the full
// set, opens round 1 and arms both timer kinds.
func (m *Machine) StartSession(sessionID string) error {
	return m.apply(sessionID, func(h *handle) error {
		s := h.session
		if s.Phase != domain.PhaseLobby {
			return errors.ErrInvalidPhase
		}
		humans, ready := s.HumanCount()
		if humans < game.MinHumans || ready < humans {
			return errors.ErrNotReady
		}

		taken := lo.Map(s.Participants, func(p *domain.Participant, _ int) string { return p.Name })
		for _, name := range agent.Names(h.rng, game.AutonomousCount, taken) {
			botID := uuid.NewString()
			s.AddParticipant(&domain.Participant{
				ID:         botID,
				Name:       name,
				Autonomous: true,
				JoinedAt:   m.now(),
			})
			h.agents[botID] = agent.New(botID, h.rng)
		}

		if err := game.AssignRoles(h.rng, s.Participants); err != nil {
			m.defect(s, err)
			return err
		}

		s.Phase = domain.PhaseInProgress
		s.StartedAt = m.now()
		m.openRound(h)
		s.EmitSnapshot()

		cadenceCtx, cancel := context.WithCancel(m.baseCtx)
		h.cadenceCancel = cancel
		m.supervisor.Start(cadenceCtx, workers.NewCadence(
			m.log, sessionID, m.timings.CadenceInterval,
			func(ctx context.Context) { m.tickDiscourse(ctx, sessionID) },
		))
		return nil
	})
}

// openRound archives the previous round, opens the next one and arms
// the round-expiry timer. Caller holds the session lock.
func (m *Machine) openRound(h *handle) {
	now := m.now()
	round := h.session.OpenRound(now, now.Add(m.timings.RoundDuration))
	sessionID, number := h.session.ID, round.Number
	h.roundTimer = time.AfterFunc(m.timings.RoundDuration, func() {
		m.expireRound(sessionID, number)
	})
}

// expireRound is the round-expiry timer callback. The round-number
// check makes stale firings harmless.
func (m *Machine) expireRound(sessionID string, number int) {
	_ = m.apply(sessionID, func(h *handle) error {
		s := h.session
		if s.Phase != domain.PhaseInProgress || s.Current == nil || s.Current.Number != number {
			return nil
		}
		s.Phase = domain.PhaseVoting
		s.EmitSnapshot()
		h.voteTimer = time.AfterFunc(m.timings.VoteDelay, func() {
			m.castAutonomousVotes(sessionID, number)
		})
		return nil
	})
}

func (m *Machine) CastVote(sessionID, voterID, targetID string) error {
	return m.apply(sessionID, func(h *handle) error {
		return m.castVote(h, voterID, targetID)
	})
}

// castVote records or overwrites a vote and triggers the tally
// synchronously once every living participant has voted. Caller holds
// the session lock.
func (m *Machine) castVote(h *handle, voterID, targetID string) error {
	s := h.session
	if s.Phase != domain.PhaseVoting || s.Current == nil || s.Current.Closed {
		return errors.ErrInvalidPhase
	}
	voter, ok := s.Participant(voterID)
	if !ok {
		return errors.ErrParticipantNotFound
	}
	if voter.Eliminated {
		return errors.ErrDeadParticipant
	}
	target, ok := s.Participant(targetID)
	if !ok {
		return errors.ErrParticipantNotFound
	}
	if target.Eliminated {
		return errors.ErrDeadParticipant
	}

	s.Current.Votes[voterID] = targetID
	s.Emit(event.VoteCast{Session: s.ID, Voter: voterID, HasVoted: true})

	if len(s.Current.Votes) == s.LivingCount() {
		return m.tally(h)
	}
	return nil
}

// castAutonomousVotes is the autonomous-vote timer callback.
func (m *Machine) castAutonomousVotes(sessionID string, number int) {
	_ = m.apply(sessionID, func(h *handle) error {
		s := h.session
		if s.Phase != domain.PhaseVoting || s.Current == nil || s.Current.Number != number || s.Current.Closed {
			return nil
		}
		for _, p := range s.Living() {
			// The last vote can close the round mid-loop.
			if s.Phase != domain.PhaseVoting || s.Current == nil || s.Current.Closed {
				break
			}
			if !p.Autonomous || p.Eliminated {
				continue
			}
			if _, voted := s.Current.Votes[p.ID]; voted {
				continue
			}
			ag, ok := h.agents[p.ID]
			if !ok {
				continue
			}
			targetID := ag.PickTarget(p, s.Living())
			if targetID == "" {
				continue
			}
			if err := m.castVote(h, p.ID, targetID); err != nil {
				m.log.Debug("autonomous vote rejected", "session", sessionID, "voter", p.ID, "error", err)
			}
		}
		return nil
	})
}

// tally closes the round, applies the elimination, evaluates the win
// condition and either finishes the session or schedules the cooldown
// before the next round. Caller holds the session lock.
func (m *Machine) tally(h *handle) error {
	s := h.session
	if s.Current == nil || s.Current.Closed {
		err := errors.Invariantf("tally invoked without an open round (session %s)", s.ID)
		m.defect(s, err)
		return err
	}

	round := s.Current
	round.Closed = true

	outcome := game.Tally(round.Votes)
	ended := event.RoundEnded{Session: s.ID, Number: round.Number}
	if outcome.Eliminated {
		if p, ok := s.Participant(outcome.EliminatedID); ok {
			p.Eliminated = true
			round.EliminatedID = p.ID
			id, name := p.ID, p.Name
			ended.EliminatedID = &id
			ended.EliminatedName = &name
		}
	}
	s.Emit(ended)

	if verdict := game.EvaluateWin(s.Participants); verdict.Decided {
		m.finish(h, verdict)
		return nil
	}

	sessionID, number := s.ID, round.Number
	h.roundTimer = time.AfterFunc(m.timings.Cooldown, func() {
		m.nextRound(sessionID, number)
	})
	return nil
}

// finish moves the session to its terminal phase, cancels every timer
// and broadcasts the full role reveal.
func (m *Machine) finish(h *handle, verdict game.Verdict) {
	s := h.session
	s.Phase = domain.PhaseGameOver
	s.EndedAt = m.now()
	s.ArchiveRound()
	h.stopTimers()
	s.Emit(event.SessionOver{
		Session: s.ID,
		Winner:  verdict.Winner.String(),
		Winners: verdict.Winners,
		Roles:   s.RevealRoles(),
	})
	s.EmitSnapshot()
}

// nextRound is the cooldown timer callback.
func (m *Machine) nextRound(sessionID string, previous int) {
	_ = m.apply(sessionID, func(h *handle) error {
		s := h.session
		if s.Phase != domain.PhaseVoting || s.Current == nil || s.Current.Number != previous || !s.Current.Closed {
			return nil
		}
		s.Phase = domain.PhaseInProgress
		m.openRound(h)
		s.EmitSnapshot()
		return nil
	})
}

// PostChat appends and broadcasts a message from a living participant
// in any non-terminal phase. Content passes the censor first.
func (m *Machine) PostChat(sessionID, authorID, text string) error {
	return m.apply(sessionID, func(h *handle) error {
		s := h.session
		if s.Phase.Terminal() {
			return errors.ErrInvalidPhase
		}
		author, ok := s.Participant(authorID)
		if !ok {
			return errors.ErrParticipantNotFound
		}
		if author.Eliminated {
			return errors.ErrDeadParticipant
		}

		content := strings.TrimSpace(text)
		if m.moderator != nil {
			content = m.moderator.Censor(content)
		}
		s.AppendMessage(domain.ChatMessage{
			ID:         uuid.New(),
			AuthorID:   author.ID,
			AuthorName: author.Name,
			Content:    content,
			CreatedAt:  m.now(),
		})
		return nil
	})
}

// Remove models a disconnect: allowed in any phase. The last
// participant leaving tears the session down, timers first.
func (m *Machine) Remove(sessionID, participantID string) error {
	return m.apply(sessionID, func(h *handle) error {
		s := h.session
		if !s.RemoveParticipant(participantID) {
			return errors.ErrParticipantNotFound
		}
		delete(h.agents, participantID)
		m.registry.Unsubscribe(sessionID, participantID)

		if len(s.Participants) == 0 {
			m.teardown(h)
			return nil
		}
		s.EmitSnapshot()

		// A disconnect must not wedge a round: tally if it is now fully
		// voted, otherwise re-arm the autonomous-vote timer so a bot
		// whose vote was discarded with the leaver casts again.
		if s.Phase == domain.PhaseVoting && s.Current != nil && !s.Current.Closed {
			if s.LivingCount() > 0 && len(s.Current.Votes) >= s.LivingCount() {
				return m.tally(h)
			}
			number := s.Current.Number
			if h.voteTimer != nil {
				h.voteTimer.Stop()
			}
			h.voteTimer = time.AfterFunc(m.timings.VoteDelay, func() {
				m.castAutonomousVotes(sessionID, number)
			})
		}
		return nil
	})
}

// teardown cancels both timer kinds synchronously before the session
// leaves the registry, so a stale firing can never observe it.
func (m *Machine) teardown(h *handle) {
	h.closed = true
	h.stopTimers()
	m.registry.remove(h.session.ID)
	m.log.Info("session torn down", "session", h.session.ID)
}

type plannedUtterance struct {
	participant string
	fallback    string
	req         ai.NarrationRequest
}

// tickDiscourse runs on every cadence tick. Planning (who speaks, with
// which fallback) happens under the session lock; the narration call
// itself is fire-and-forget per agent and re-enters through PostChat.
func (m *Machine) tickDiscourse(ctx context.Context, sessionID string) {
	var planned []plannedUtterance
	_ = m.apply(sessionID, func(h *handle) error {
		s := h.session
		if s.Phase != domain.PhaseInProgress {
			return nil
		}
		living := s.Living()
		for _, p := range living {
			if !p.Autonomous {
				continue
			}
			ag, ok := h.agents[p.ID]
			if !ok {
				continue
			}
			if !ag.ShouldSpeak(m.timings.SpeakProbability) {
				continue
			}
			self := p
			others := lo.FilterMap(living, func(o *domain.Participant, _ int) (string, bool) {
				return o.Name, o.ID != self.ID
			})
			planned = append(planned, plannedUtterance{
				participant: p.ID,
				fallback:    ag.FallbackLine(p.Role, others),
				req: ai.NarrationRequest{
					Role:       p.Role.String(),
					Traits:     ag.Traits,
					Self:       p.Name,
					Others:     others,
					Transcript: s.RecentMessages(m.timings.TranscriptWindow),
				},
			})
		}
		return nil
	})

	for _, u := range planned {
		go m.speak(ctx, sessionID, u)
	}
}

// speak calls the narration backend with a bounded timeout. A slow or
// failed call degrades to the prepared fallback line and never delays
// timers or other participants.
func (m *Machine) speak(ctx context.Context, sessionID string, u plannedUtterance) {
	callCtx, cancel := context.WithTimeout(ctx, m.timings.NarrationTimeout)
	defer cancel()

	text, err := m.narrator.Generate(callCtx, u.req)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			m.log.Debug("narration fallback", "session", sessionID, "error", err)
		}
		text = u.fallback
	}
	if err := m.PostChat(sessionID, u.participant, text); err != nil {
		// The speaker died or the session ended while we were generating.
		m.log.Debug("autonomous message dropped", "session", sessionID, "error", err)
	}
}

// defect records an invariant violation: logged at Error level and
// broadcast as an error event so it is never silently swallowed.
func (m *Machine) defect(s *domain.Session, err error) {
	m.log.Error("engine defect", "session", s.ID, "error", err)
	s.Emit(event.Error{Session: s.ID, Message: err.Error(), Kind: string(errors.KindInternal)})
}
