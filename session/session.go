// Package session carries state between rounds: who is still in, scores and upgrades.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/arena/input"
	"github.com/zucenko/arena/logger"
)

var (
	ErrPlayers    = errors.New("player count out of range")
	ErrUnknownMod = errors.New("unknown mod")
	ErrMaxLevel   = errors.New("mod already at max level")
)

// Result is what a finished round hands to the scoreboard. Kills has one
// entry per session slot, victims in elimination order.
type Result struct {
	RoundID    uuid.UUID
	Round      int
	Players    int
	Kills      [][]input.Slot
	Eliminated []input.Slot
}

// Session is passed explicitly into every round instead of living in globals.
type Session struct {
	ID      uuid.UUID
	Players int
	Round   int
	Scores  []int

	eliminated []bool
	levels     []Levels
}

func New(players int) (*Session, error) {
	if players < 1 || players > input.MaxSlots {
		return nil, fmt.Errorf("%d: %w", players, ErrPlayers)
	}
	s := &Session{
		ID:         uuid.New(),
		Players:    players,
		Scores:     make([]int, players),
		eliminated: make([]bool, players),
		levels:     make([]Levels, players),
	}
	for i := range s.levels {
		s.levels[i] = Levels{}
	}
	return s, nil
}

func (s *Session) has(slot input.Slot) bool {
	return slot >= 0 && int(slot) < s.Players
}

// Eligible lists the slots that may spawn next round, in slot order.
func (s *Session) Eligible() []input.Slot {
	out := make([]input.Slot, 0, s.Players)
	for i, gone := range s.eliminated {
		if !gone {
			out = append(out, input.Slot(i))
		}
	}
	return out
}

func (s *Session) IsEliminated(slot input.Slot) bool {
	return s.has(slot) && s.eliminated[slot]
}

func (s *Session) Eliminate(slot input.Slot) {
	if s.has(slot) {
		s.eliminated[slot] = true
	}
}

// Over is true once a single player, or nobody, is left.
func (s *Session) Over() bool {
	return len(s.Eligible()) <= 1
}

func (s *Session) Levels(slot input.Slot) Levels {
	if !s.has(slot) {
		return Levels{}
	}
	return s.levels[slot]
}

// Upgrade raises a mod by one level and returns the new level.
func (s *Session) Upgrade(slot input.Slot, m Mod) (int, error) {
	if !s.has(slot) {
		return 0, fmt.Errorf("slot %d: %w", slot, input.ErrInvalidSlot)
	}
	info, ok := Catalog[m]
	if !ok {
		return 0, fmt.Errorf("%s: %w", m, ErrUnknownMod)
	}
	l := s.levels[slot]
	if l[m] >= info.MaxLevel {
		return l[m], fmt.Errorf("%s level %d: %w", m, l[m], ErrMaxLevel)
	}
	l[m]++
	logger.Log.WithFields(log.Fields{"slot": slot, "mod": m, "level": l[m]}).Info("mod upgraded")
	return l[m], nil
}

// Record books a finished round: every defeated opponent scores a point plus the
// attacker's Score Boost level, and the round's eliminated slots stay out.
func (s *Session) Record(res Result) {
	for attacker, victims := range res.Kills {
		if attacker >= s.Players {
			break
		}
		for _, v := range victims {
			if int(v) == attacker {
				continue
			}
			s.Scores[attacker] += 1 + s.levels[attacker].Of(ScoreBoost)
		}
	}
	for _, slot := range res.Eliminated {
		s.Eliminate(slot)
	}
	s.Round = res.Round
	logger.Log.WithFields(log.Fields{
		"session": s.ID,
		"round":   s.Round,
		"scores":  s.Scores,
		"left":    len(s.Eligible()),
	}).Info("round recorded")
}
