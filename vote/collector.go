// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

// Package vote collects signed round-based consensus messages (proposals,
// prevotes, precommits) the same way the request batch collects request
// outputs: by fingerprint, deduplicated, with an authenticity signal on
// conflict. Grounded directly on Parity's
// ethcore/src/engines/vote_collector.rs.
package vote

import (
	"sort"
	"sync"

	"github.com/erigontech/odr/common"
)

// Signature is the fixed-width signature shape carried by every message
// (65 bytes: the recoverable-signature convention used throughout the
// Ethereum ecosystem).
type Signature [65]byte

// Message is anything the collector can accept a vote for: a proposal, a
// prevote, or a precommit, each tagged with the round it was cast in.
type Message interface {
	Signature() Signature
	// BlockHash returns the block the message refers to, and false if the
	// message does not commit to any block (an abstain / "nil" vote).
	BlockHash() (common.Hash, bool)
	Round() uint64
	// Broadcastable reports whether GetUpTo should rebroadcast this
	// message to peers catching up.
	Broadcastable() bool
	// Encode returns the canonical wire encoding used both as the
	// message's dedup fingerprint and as GetUpTo's rebroadcast payload.
	Encode() []byte
}

// SealSignatures is the proposal signature plus the set of commit
// signatures needed to seal a block, returned by SealSignatures.
type SealSignatures struct {
	Proposal Signature
	Votes    []Signature
}

type blockKey struct {
	hash common.Hash
	ok   bool
}

func keyOf(m Message) blockKey {
	h, ok := m.BlockHash()
	return blockKey{hash: h, ok: ok}
}

// stepCollector holds everything voted at a single round: which addresses
// have voted, the per-block signature-to-address map, and the set of
// distinct messages seen (keyed by their wire encoding).
type stepCollector struct {
	voted      map[common.Address]struct{}
	blockVotes map[blockKey]map[Signature]common.Address
	messages   map[string]Message
}

func newStepCollector() *stepCollector {
	return &stepCollector{
		voted:      make(map[common.Address]struct{}),
		blockVotes: make(map[blockKey]map[Signature]common.Address),
		messages:   make(map[string]Message),
	}
}

// insert records message as cast by address. It returns nil unless address
// has already voted this round with a different message, in which case it
// returns address as the double-voting signal.
func (s *stepCollector) insert(message Message, address common.Address) *common.Address {
	fp := string(message.Encode())
	if _, known := s.messages[fp]; known {
		return nil
	}
	s.messages[fp] = message
	if _, voted := s.voted[address]; voted {
		return &address
	}
	s.voted[address] = struct{}{}
	key := keyOf(message)
	m, ok := s.blockVotes[key]
	if !ok {
		m = make(map[Signature]common.Address)
		s.blockVotes[key] = m
	}
	m[message.Signature()] = address
	return nil
}

func (s *stepCollector) countBlock(key blockKey) int {
	return len(s.blockVotes[key])
}

func (s *stepCollector) count() int {
	total := 0
	for _, m := range s.blockVotes {
		total += len(m)
	}
	return total
}

// Collector stores every proposal, prevote, and precommit seen so far,
// keyed by round. The round map is guarded by a read/write lock: Insert
// and ThrowOutOld take the exclusive lock; every other method takes the
// shared one, and SealSignatures only upgrades to exclusive after its
// read phase has already succeeded.
type Collector struct {
	mu     sync.RWMutex
	steps  map[uint64]*stepCollector
	rounds []uint64 // kept sorted ascending, mirrors the source's BTreeMap ordering
}

// New returns an empty collector.
func New() *Collector {
	return &Collector{steps: make(map[uint64]*stepCollector)}
}

func (c *Collector) stepOrCreateLocked(round uint64) *stepCollector {
	if s, ok := c.steps[round]; ok {
		return s
	}
	s := newStepCollector()
	c.steps[round] = s
	i := sort.Search(len(c.rounds), func(i int) bool { return c.rounds[i] >= round })
	c.rounds = append(c.rounds, 0)
	copy(c.rounds[i+1:], c.rounds[i:])
	c.rounds[i] = round
	return s
}

// Insert records a vote, returning the voter's address when it is a
// double-voting signal (the voter already signed a different message this
// round).
func (c *Collector) Insert(message Message, address common.Address) *common.Address {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stepOrCreateLocked(message.Round()).insert(message, address)
}

// IsOldOrKnown reports whether message should be ignored: either it has
// already been seen this round, or its round is not newer than the oldest
// round the collector still tracks.
func (c *Collector) IsOldOrKnown(message Message) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if s, ok := c.steps[message.Round()]; ok {
		if _, known := s.messages[string(message.Encode())]; known {
			return true
		}
	}
	if len(c.rounds) == 0 {
		return true
	}
	return message.Round() <= c.rounds[0]
}

// ThrowOutOld drops every round strictly older than round, keeping round
// itself (and anything newer) as the new oldest boundary. Implemented as
// a split at the cutoff key, matching BTreeMap::split_off.
func (c *Collector) ThrowOutOld(round uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.throwOutOldLocked(round)
}

func (c *Collector) throwOutOldLocked(round uint64) {
	i := sort.Search(len(c.rounds), func(i int) bool { return c.rounds[i] >= round })
	for _, r := range c.rounds[:i] {
		delete(c.steps, r)
	}
	kept := make([]uint64, len(c.rounds[i:]))
	copy(kept, c.rounds[i:])
	c.rounds = kept
}

// SealSignatures returns the proposal signature and commit signatures for
// blockHash, if both a proposal at proposalRound and at least one commit
// at commitRound exist for it. On success it prunes every round strictly
// older than commitRound, since a sealed block makes them irrelevant.
func (c *Collector) SealSignatures(proposalRound, commitRound uint64, blockHash common.Hash) (*SealSignatures, bool) {
	key := blockKey{hash: blockHash, ok: true}

	seal, ok := func() (*SealSignatures, bool) {
		c.mu.RLock()
		defer c.mu.RUnlock()

		proposals, ok := c.steps[proposalRound]
		if !ok {
			return nil, false
		}
		proposalSigs, ok := proposals.blockVotes[key]
		if !ok || len(proposalSigs) == 0 {
			return nil, false
		}
		proposal := firstSignature(proposalSigs)

		var votes []Signature
		if commits, ok := c.steps[commitRound]; ok {
			if commitSigs, ok := commits.blockVotes[key]; ok {
				for sig := range commitSigs {
					votes = append(votes, sig)
				}
			}
		}
		if len(votes) == 0 {
			return nil, false
		}
		return &SealSignatures{Proposal: proposal, Votes: votes}, true
	}()
	if !ok {
		return nil, false
	}

	c.mu.Lock()
	c.throwOutOldLocked(commitRound)
	c.mu.Unlock()
	return seal, true
}

// firstSignature picks a deterministic representative out of a map whose
// iteration order Go leaves unspecified; callers only rely on there being
// exactly one live proposal signature per round in well-formed use.
func firstSignature(m map[Signature]common.Address) Signature {
	sigs := make([]Signature, 0, len(m))
	for sig := range m {
		sigs = append(sigs, sig)
	}
	sort.Slice(sigs, func(i, j int) bool {
		for k := range sigs[i] {
			if sigs[i][k] != sigs[j][k] {
				return sigs[i][k] < sigs[j][k]
			}
		}
		return false
	})
	return sigs[0]
}

// CountAlignedVotes counts the votes collected so far that agree with
// message's round and block hash.
func (c *Collector) CountAlignedVotes(message Message) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.steps[message.Round()]
	if !ok {
		return 0
	}
	return s.countBlock(keyOf(message))
}

// CountRoundVotes counts every vote collected for round, across every
// block hash.
func (c *Collector) CountRoundVotes(round uint64) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.steps[round]
	if !ok {
		return 0
	}
	return s.count()
}

// GetUpTo returns the wire encoding of every broadcastable message at or
// before round, in ascending round order — the payload a peer catching up
// is resent.
func (c *Collector) GetUpTo(round uint64) [][]byte {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out [][]byte
	for _, r := range c.rounds {
		if r > round {
			break
		}
		for _, m := range c.steps[r].messages {
			if m.Broadcastable() {
				out = append(out, m.Encode())
			}
		}
	}
	return out
}

// Get returns the address that cast message, if the collector has seen a
// vote from anyone for that exact (round, block hash, signature) triple.
func (c *Collector) Get(message Message) (common.Address, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.steps[message.Round()]
	if !ok {
		return common.Address{}, false
	}
	m, ok := s.blockVotes[keyOf(message)]
	if !ok {
		return common.Address{}, false
	}
	addr, ok := m[message.Signature()]
	return addr, ok
}

// Rounds reports how many distinct rounds the collector currently tracks,
// mirroring the source's test-only len().
func (c *Collector) Rounds() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rounds)
}
