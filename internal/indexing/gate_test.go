package indexing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/blog-indexer/internal/domain"
	"github.com/jonesrussell/blog-indexer/internal/indexing"
	"github.com/jonesrussell/blog-indexer/internal/logger"
)

const testURL = "https://example.blogspot.com/2024/06/post.html"

// scriptedPublisher replies with the scripted errors in order, repeating
// the last one when the script runs out.
type scriptedPublisher struct {
	script []error
	calls  int
}

func (p *scriptedPublisher) Publish(context.Context, string) error {
	idx := p.calls
	if idx >= len(p.script) {
		idx = len(p.script) - 1
	}
	p.calls++
	return p.script[idx]
}

// newScriptedGate builds a gate whose factory hands out the shared
// publisher and counts constructions.
func newScriptedGate(pub *scriptedPublisher) (*indexing.Gate, *int) {
	factoryCalls := 0
	factory := func(context.Context) (indexing.Publisher, error) {
		factoryCalls++
		return pub, nil
	}
	return indexing.NewGate(factory, logger.NewNoOp()), &factoryCalls
}

func TestGate_Submit_Success(t *testing.T) {
	t.Parallel()

	pub := &scriptedPublisher{script: []error{nil}}
	gate, factoryCalls := newScriptedGate(pub)

	result := gate.Submit(context.Background(), testURL)

	assert.Equal(t, domain.OutcomeSubmitted, result.Outcome)
	assert.Equal(t, testURL, result.URL)
	assert.Equal(t, 1, pub.calls)
	assert.Equal(t, 1, *factoryCalls)
}

func TestGate_Submit_AlreadyProcessed(t *testing.T) {
	t.Parallel()

	pub := &scriptedPublisher{script: []error{errors.New("url already processed")}}
	gate, _ := newScriptedGate(pub)

	result := gate.Submit(context.Background(), testURL)

	assert.Equal(t, domain.OutcomeAlreadyIndexed, result.Outcome)
	assert.Equal(t, 1, pub.calls)
}

func TestGate_Submit_QuotaExceeded(t *testing.T) {
	t.Parallel()

	pub := &scriptedPublisher{script: []error{errors.New("quota exceeded for publish requests")}}
	gate, _ := newScriptedGate(pub)

	result := gate.Submit(context.Background(), testURL)

	assert.Equal(t, domain.OutcomeQuotaExceeded, result.Outcome)
	assert.Contains(t, result.Detail, "quota")
	// Quota is terminal, never retried.
	assert.Equal(t, 1, pub.calls)
}

func TestGate_Submit_TransientThenSuccess(t *testing.T) {
	t.Parallel()

	pub := &scriptedPublisher{script: []error{
		errors.New("ssl handshake failure"),
		errors.New("connection reset by peer"),
		nil,
	}}
	gate, factoryCalls := newScriptedGate(pub)

	result := gate.Submit(context.Background(), testURL)

	assert.Equal(t, domain.OutcomeSubmitted, result.Outcome)
	// Three remote attempts, and a fresh publisher after each transient
	// failure.
	assert.Equal(t, 3, pub.calls)
	assert.Equal(t, 3, *factoryCalls)
}

func TestGate_Submit_TransientRetriesExhausted(t *testing.T) {
	t.Parallel()

	pub := &scriptedPublisher{script: []error{errors.New("tls handshake timeout")}}
	gate, _ := newScriptedGate(pub)

	result := gate.Submit(context.Background(), testURL)

	assert.Equal(t, domain.OutcomeFailed, result.Outcome)
	assert.Contains(t, result.Detail, "tls")
	assert.Equal(t, 3, pub.calls)
}

func TestGate_Submit_OtherFailureIsTerminal(t *testing.T) {
	t.Parallel()

	pub := &scriptedPublisher{script: []error{errors.New("permission denied")}}
	gate, _ := newScriptedGate(pub)

	result := gate.Submit(context.Background(), testURL)

	assert.Equal(t, domain.OutcomeFailed, result.Outcome)
	assert.Equal(t, "permission denied", result.Detail)
	assert.Equal(t, 1, pub.calls)
}

func TestGate_Submit_IdempotentSkip(t *testing.T) {
	t.Parallel()

	pub := &scriptedPublisher{script: []error{nil}}
	gate, _ := newScriptedGate(pub)

	first := gate.Submit(context.Background(), testURL)
	require.Equal(t, domain.OutcomeSubmitted, first.Outcome)

	second := gate.Submit(context.Background(), testURL)

	// The second call makes no remote call and returns a non-failing
	// outcome.
	assert.Equal(t, domain.OutcomeSkipped, second.Outcome)
	assert.Equal(t, 1, pub.calls)
}

func TestGate_Submit_FactoryFailure(t *testing.T) {
	t.Parallel()

	factory := func(context.Context) (indexing.Publisher, error) {
		return nil, errors.New("invalid private key")
	}
	gate := indexing.NewGate(factory, logger.NewNoOp())

	result := gate.Submit(context.Background(), testURL)

	assert.Equal(t, domain.OutcomeFailed, result.Outcome)
	assert.Contains(t, result.Detail, "invalid private key")
}
