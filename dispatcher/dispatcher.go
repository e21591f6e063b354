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

package dispatcher

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/erigontech/odr/cht"
	"github.com/erigontech/odr/common"
	"github.com/erigontech/odr/config"
	"github.com/erigontech/odr/metrics"
	"github.com/erigontech/odr/request"
	"github.com/erigontech/odr/verify"
)

// ErrPrematurelyCancelled is returned to a caller awaiting a batch that
// was cancelled before every response arrived.
var ErrPrematurelyCancelled = errors.New("batch cancelled before completion")

// ErrUnsupportedKind is returned by Verify for a request kind this
// dispatcher build does not (yet) route to a verifier.
type ErrUnsupportedKind struct{ Kind request.Kind }

func (e *ErrUnsupportedKind) Error() string {
	return fmt.Sprintf("dispatcher: no verifier wired for request kind %v", e.Kind)
}

// Verified is the payload a successful Verify call hands back to the
// caller: the reusable outputs (if any) this response produces, ready to
// be folded into the batch via FoldOutputs.
type Verified struct {
	Outputs []request.Output
}

// Dispatcher is the caller-facing facade over the on-demand core: it
// builds batches, verifies individual responses against a trusted
// header, and folds verified outputs back in. It owns no long-lived
// state beyond its root cache, config, logger, metrics, and the
// storage roots remembered from verified Account responses; the caller's
// HeaderSource owns everything durable.
type Dispatcher struct {
	source HeaderSource
	cfg    config.Config
	roots  *cht.RootCache
	log    *zap.SugaredLogger
	m      *metrics.Metrics

	// storageRoots remembers the storage_root exposed as reusable output
	// 1 by each verified Account response, keyed by (block hash, address
	// hash). The wire protocol's StorageComplete carries only block_hash,
	// address_hash, and key_hash (mod.rs's storage::Complete), never the
	// storage root itself, so the dispatcher — not the request type — is
	// what threads an Account verification's output into a same-batch
	// Storage verification.
	storageRoots map[common.Hash]map[common.Hash]common.Hash
}

// New constructs a Dispatcher over source, configured by cfg, logging
// through log and recording to m.
func New(source HeaderSource, cfg config.Config, log *zap.SugaredLogger, m *metrics.Metrics) (*Dispatcher, error) {
	roots, err := cht.NewRootCache(cfg.CacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "constructing CHT root cache")
	}
	return &Dispatcher{
		source:       source,
		cfg:          cfg,
		roots:        roots,
		log:          log,
		m:            m,
		storageRoots: make(map[common.Hash]map[common.Hash]common.Hash),
	}, nil
}

// Build starts a new batch.
func (d *Dispatcher) Build() *request.Builder { return request.NewBuilder() }

// Append validates and records req against the batch under construction.
// Wraps Builder.Append so the dispatcher can count and log appends at
// the single boundary this package uses for observability — builder and
// verifier internals stay silent.
func (d *Dispatcher) Append(b *request.Builder, req request.IncompleteRequest) error {
	if err := b.Append(req); err != nil {
		d.log.Debugw("request rejected", "kind", req.Kind(), "error", err)
		return err
	}
	if d.m != nil {
		d.m.RequestsAppended.Inc()
	}
	return nil
}

// Finish closes out the batch, returning an error instead of the batch
// when it holds more requests than the configured maximum size.
func (d *Dispatcher) Finish(b *request.Builder) (*request.Batch, error) {
	batch := b.Finish()
	if batch.Len() > d.cfg.MaxBatch {
		return nil, fmt.Errorf("dispatcher: batch of %d requests exceeds configured maximum %d", batch.Len(), d.cfg.MaxBatch)
	}
	if d.m != nil {
		d.m.BatchesBuilt.Inc()
	}
	return batch, nil
}

// Verify checks a single response against its completed request and the
// trusted header it refers to, returning the reusable outputs the
// response produces on success. This is the single point every routed
// request kind's verifier goes through; Headers requests are not routed
// and yield ErrUnsupportedKind. Logging and metrics live here, not
// inside the pure verify package functions.
func (d *Dispatcher) Verify(req request.CompleteRequest, responseRaw []byte) (Verified, error) {
	outcome := "ok"
	start := time.Now()
	defer func() {
		if d.m != nil {
			d.m.VerifyOutcomes.WithLabelValues(req.Kind().String(), outcome).Inc()
			d.m.VerifyLatency.WithLabelValues(req.Kind().String()).Observe(time.Since(start).Seconds())
		}
	}()

	v, err := d.verify(req, responseRaw)
	if err != nil {
		outcome = errorClass(err)
		d.log.Debugw("verification failed", "kind", req.Kind(), "outcome", outcome, "error", err)
	}
	return v, err
}

func (d *Dispatcher) verify(req request.CompleteRequest, responseRaw []byte) (Verified, error) {
	switch r := req.(type) {
	case *request.HeaderProofComplete:
		var resp request.HeaderProofResponse
		if err := request.DecodeResponse(responseRaw, request.KindHeaderProof, &resp); err != nil {
			return Verified{}, err
		}
		chtNumber, ok := cht.BlockToCHTNumber(r.Num, d.cfg.CHT.WindowSize)
		if !ok {
			return Verified{}, &verify.BadProofError{Reason: "header proof for genesis block"}
		}
		root, ok := d.roots.Get(chtNumber)
		if !ok {
			root, ok = d.source.CHTRoot(chtNumber)
			if !ok {
				return Verified{}, &verify.BadProofError{Reason: "no CHT root for requested window"}
			}
			d.roots.Put(chtNumber, root)
		}
		result, err := verify.HeaderProof(*r, resp, root, chtNumber, d.cfg.CHT.WindowSize)
		if err != nil {
			return Verified{}, err
		}
		return Verified{Outputs: []request.Output{result.Output()}}, nil

	case *request.ReceiptsComplete:
		var resp request.ReceiptsResponse
		if err := request.DecodeResponse(responseRaw, request.KindReceipts, &resp); err != nil {
			return Verified{}, err
		}
		header, ok := d.source.Header(r.BlockHash)
		if !ok {
			return Verified{}, &verify.BadProofError{Reason: "unknown block hash"}
		}
		if err := verify.Receipts(header, resp); err != nil {
			return Verified{}, err
		}
		return Verified{}, nil

	case *request.BodyComplete:
		var resp request.BodyResponse
		if err := request.DecodeResponse(responseRaw, request.KindBody, &resp); err != nil {
			return Verified{}, err
		}
		header, ok := d.source.Header(r.BlockHash)
		if !ok {
			return Verified{}, &verify.BadProofError{Reason: "unknown block hash"}
		}
		if _, err := verify.Body(header, resp); err != nil {
			return Verified{}, err
		}
		return Verified{}, nil

	case *request.AccountComplete:
		var resp request.AccountResponse
		if err := request.DecodeResponse(responseRaw, request.KindAccount, &resp); err != nil {
			return Verified{}, err
		}
		header, ok := d.source.Header(r.BlockHash)
		if !ok {
			return Verified{}, &verify.BadProofError{Reason: "unknown block hash"}
		}
		verified, err := verify.Account(header.StateRoot(), r.AddressHash, resp)
		if err != nil {
			return Verified{}, err
		}
		outs := verify.AccountOutputs(verified)
		if byAddress, ok := d.storageRoots[r.BlockHash]; ok {
			byAddress[r.AddressHash] = verified.StorageRoot
		} else {
			d.storageRoots[r.BlockHash] = map[common.Hash]common.Hash{r.AddressHash: verified.StorageRoot}
		}
		return Verified{Outputs: outs[:]}, nil

	case *request.StorageComplete:
		var resp request.StorageResponse
		if err := request.DecodeResponse(responseRaw, request.KindStorage, &resp); err != nil {
			return Verified{}, err
		}
		storageRoot, ok := d.storageRoots[r.BlockHash][r.AddressHash]
		if !ok {
			return Verified{}, &verify.BadProofError{Reason: "no prior account verification supplied a storage root"}
		}
		verified, err := verify.Storage(storageRoot, r.KeyHash, resp)
		if err != nil {
			return Verified{}, err
		}
		return Verified{Outputs: []request.Output{verify.StorageOutput(verified)}}, nil

	case *request.CodeComplete:
		var resp request.CodeResponse
		if err := request.DecodeResponse(responseRaw, request.KindCode, &resp); err != nil {
			return Verified{}, err
		}
		if err := verify.Code(r.CodeHash, resp.Code); err != nil {
			return Verified{}, err
		}
		return Verified{}, nil

	case *request.ExecutionComplete:
		var resp request.ExecutionResponse
		if err := request.DecodeResponse(responseRaw, request.KindExecution, &resp); err != nil {
			return Verified{}, err
		}
		header, ok := d.source.Header(r.BlockHash)
		if !ok {
			return Verified{}, &verify.BadProofError{Reason: "unknown block hash"}
		}
		if _, err := verify.Execution(d.source.Engine(), header, *r, resp); err != nil {
			return Verified{}, err
		}
		return Verified{}, nil

	default:
		return Verified{}, &ErrUnsupportedKind{Kind: req.Kind()}
	}
}

// FoldOutputs records a verified response's outputs and fills every
// still-pending later request that referenced them, delegating to
// Resolver.FoldOutputs. A request at index k is never dispatched until
// every response r < k it references has been folded in this way.
func (d *Dispatcher) FoldOutputs(r *request.Resolver, reqIdx int, v Verified) {
	r.FoldOutputs(reqIdx, v.Outputs)
}

func errorClass(err error) string {
	switch err.(type) {
	case *request.DecodeError:
		return "decode"
	case *verify.BadProofError:
		return "bad_proof"
	case *request.NoSuchOutputError:
		return "no_such_output"
	case *request.WrongKindError:
		return "wrong_kind"
	default:
		return "unexpected"
	}
}
