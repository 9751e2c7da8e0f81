// Package moderation implements the content-safety gate. Free text submitted
// for publication is classified by an external model; the gate translates the
// verdict into an allow/deny decision for the mutation flow.
package moderation

import (
	"context"
	"log/slog"
	"strings"
)

// Classifier submits text to an external model and returns its raw verdict token.
type Classifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

const unsafeToken = "UNSAFE"

// RejectionReason is surfaced to the user when content is denied.
const RejectionReason = "Content was flagged as potentially unsafe by our AI moderation system. Please revise and try again."

// Verdict is the gate's decision for one piece of content.
type Verdict struct {
	Safe   bool
	Reason string
}

// Gate wraps a Classifier with the service's moderation policy. The gate
// fails open: an unconfigured or unreachable classifier allows the content,
// and only a literal unsafe verdict denies it. Availability of the publishing
// flow is prioritized over strict moderation; this is a deliberate policy
// choice. No retries, no verdict caching.
type Gate struct {
	classifier Classifier
	logger     *slog.Logger
}

// NewGate creates a Gate over the given classifier. A nil classifier is
// valid and produces an always-allow gate.
func NewGate(classifier Classifier, logger *slog.Logger) *Gate {
	return &Gate{
		classifier: classifier,
		logger:     logger.With("system", "moderation"),
	}
}

// Moderate classifies text and returns the gate's verdict. Empty or
// whitespace-only input is safe without an external call. Moderate never
// returns an error; every failure mode resolves to an allow verdict.
func (g *Gate) Moderate(ctx context.Context, text string) Verdict {
	if strings.TrimSpace(text) == "" {
		return Verdict{Safe: true}
	}

	if g.classifier == nil {
		g.logger.Warn("classifier not configured, moderation skipped")
		return Verdict{Safe: true}
	}

	token, err := g.classifier.Classify(ctx, text)
	if err != nil {
		g.logger.Error("classifier call failed, allowing content", "error", err)
		return Verdict{Safe: true}
	}

	if strings.ToUpper(strings.TrimSpace(token)) == unsafeToken {
		return Verdict{Safe: false, Reason: RejectionReason}
	}

	return Verdict{Safe: true}
}
