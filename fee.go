package hooks

import (
	"context"

	"github.com/pkg/errors"
)

// EstimateFee computes the network fee for tx. It works on a clone: the
// draft gets a zero fee and an empty signing key so the estimate reflects
// an unsigned, unpriced transaction, then the client completes derived
// fields, encodes the draft to wire hex, and queries the fee service.
// The caller's transaction is never mutated. Errors propagate; estimation
// is not retried.
func EstimateFee(ctx context.Context, client Client, tx *Transaction) (string, error) {
	draft := tx.Clone()
	draft.Fee = "0"
	draft.SigningPubKey = ""

	filled, err := client.Autofill(ctx, draft)
	if err != nil {
		return "", errors.Wrap(err, "autofill draft")
	}

	blob, err := client.Encode(filled)
	if err != nil {
		return "", errors.Wrap(err, "encode draft")
	}

	fee, err := client.FeeEstimate(ctx, blob)
	if err != nil {
		return "", errors.Wrap(err, "estimate fee")
	}

	return fee, nil
}
