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
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/odr/request"
)

type fakeEngine struct {
	executed *Executed
	err      error
}

func (e fakeEngine) ExecuteWithWitness(env EnvInfo, tx request.ExecutionComplete, lookup NodeLookup) (Executed, error) {
	if e.err != nil {
		return Executed{}, e.err
	}
	return *e.executed, nil
}

func TestExecutionSurfacesOnChainFailureVerbatim(t *testing.T) {
	onChainErr := errors.New("reverted")
	engine := fakeEngine{err: onChainErr}
	header := testHeader{}
	_, err := Execution(engine, header, request.ExecutionComplete{}, request.ExecutionResponse{})
	require.ErrorIs(t, err, onChainErr)
}

func TestExecutionTreatsWitnessIncompleteAsBadProof(t *testing.T) {
	engine := fakeEngine{err: ErrWitnessIncomplete}
	header := testHeader{}
	_, err := Execution(engine, header, request.ExecutionComplete{}, request.ExecutionResponse{})
	require.ErrorIs(t, err, ErrWitnessIncomplete)
	var badProof *BadProofError
	require.ErrorAs(t, err, &badProof)
}

func TestExecutionSucceeds(t *testing.T) {
	want := Executed{GasUsed: 21000, Output: []byte("ok")}
	engine := fakeEngine{executed: &want}
	header := testHeader{}
	got, err := Execution(engine, header, request.ExecutionComplete{}, request.ExecutionResponse{})
	require.NoError(t, err)
	require.Equal(t, want, got)
}
