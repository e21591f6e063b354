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

package verify

import (
	"github.com/ethereum/go-ethereum/ethdb"

	"github.com/erigontech/odr/common"
	"github.com/erigontech/odr/request"
)

// NodeLookup resolves a trie-node or code hash to its bytes out of a
// response's witness, loaded into a short-lived content-addressed store in
// place of a pointer-graph representation.
type NodeLookup interface {
	Get(hash common.Hash) ([]byte, bool)
}

type witnessStore struct{ db ethdb.KeyValueStore }

func (w witnessStore) Get(hash common.Hash) ([]byte, bool) {
	v, err := w.db.Get(hash.Bytes())
	if err != nil {
		return nil, false
	}
	return v, true
}

// Executed is the successful outcome of a transaction-execution proof:
// the engine re-ran the transaction against the supplied witness and it
// completed, successfully or not, without needing any node the witness
// lacked.
type Executed struct {
	GasUsed     uint64
	GasRefunded uint64
	Output      []byte
	// ExecutionError is non-nil when the transaction itself failed
	// on-chain (insufficient balance, revert, out-of-gas, ...). The
	// proof was still valid; this is surfaced to the caller verbatim
	// and never treated as BadProof.
	ExecutionError error
}

// Engine is the narrow capability interface the execution verifier
// invokes to re-run a transaction against a witness. It is an injected
// value specifically to break the cyclic module dependency between the
// consensus engine and the on-demand core.
type Engine interface {
	ExecuteWithWitness(env EnvInfo, tx request.ExecutionComplete, lookup NodeLookup) (Executed, error)
}

// EnvInfo is the subset of block environment the execution engine needs:
// the header the state root and gas limit are drawn from.
type EnvInfo struct {
	Header common.Header
}

// ErrWitnessIncomplete is returned by an Engine implementation when the
// supplied witness lacked a node the execution needed to visit. It is
// the only Engine outcome the Execution verifier treats as BadProof;
// every other error is a genuine execution failure and is surfaced
// verbatim.
var ErrWitnessIncomplete = missingNode("execution witness missing a required trie node or code blob")

// Execution loads resp.Witness into a short-lived node store, builds an
// environment rooted at header.StateRoot(), and invokes engine to
// re-execute req against the witness.
func Execution(engine Engine, header common.Header, req request.ExecutionComplete, resp request.ExecutionResponse) (Executed, error) {
	store := proofNodeStore(resp.Witness)
	lookup := witnessStore{db: store}
	executed, err := engine.ExecuteWithWitness(EnvInfo{Header: header}, req, lookup)
	if err == ErrWitnessIncomplete {
		return Executed{}, ErrWitnessIncomplete
	}
	if err != nil {
		// Any other Engine error is a genuine on-chain execution
		// failure, not a bad proof; surface it verbatim.
		return Executed{}, err
	}
	return executed, nil
}
