package hooks

import (
	"context"
	"encoding/hex"
	"testing"
)

// fakeClient is a canned-response Client for tests. It records every draft
// and submission it sees.
type fakeClient struct {
	wallet    *Wallet
	walletErr error

	autofillErr error
	autofillFn  func(tx *Transaction) *Transaction

	encodeErr error

	fee    string
	feeErr error

	submitResult *SubmitResult
	submitErrs   []error // consumed one per attempt; nil entry = success

	autofilled []*Transaction
	encoded    []*Transaction
	feeBlobs   []string
	submitted  []*Transaction
	submitOpts []SubmitOptions
	attempts   int
}

var _ Client = (*fakeClient)(nil)

func (f *fakeClient) Autofill(_ context.Context, tx *Transaction) (*Transaction, error) {
	f.autofilled = append(f.autofilled, tx.Clone())
	if f.autofillErr != nil {
		return nil, f.autofillErr
	}
	if f.autofillFn != nil {
		return f.autofillFn(tx), nil
	}
	return tx, nil
}

func (f *fakeClient) Encode(tx *Transaction) (string, error) {
	f.encoded = append(f.encoded, tx.Clone())
	if f.encodeErr != nil {
		return "", f.encodeErr
	}
	return EncodeTransaction(tx)
}

func (f *fakeClient) FeeEstimate(_ context.Context, txBlob string) (string, error) {
	f.feeBlobs = append(f.feeBlobs, txBlob)
	if f.feeErr != nil {
		return "", f.feeErr
	}
	return f.fee, nil
}

func (f *fakeClient) SubmitAndWait(_ context.Context, tx *Transaction, opts SubmitOptions) (*SubmitResult, error) {
	f.submitted = append(f.submitted, tx.Clone())
	f.submitOpts = append(f.submitOpts, opts)
	f.attempts++
	if f.attempts <= len(f.submitErrs) {
		if err := f.submitErrs[f.attempts-1]; err != nil {
			return nil, err
		}
	}
	if f.submitResult != nil {
		return f.submitResult, nil
	}
	return &SubmitResult{EngineResult: "tesSUCCESS", Accepted: true}, nil
}

func (f *fakeClient) WalletFromSeed(_ context.Context, seed string) (*Wallet, error) {
	if f.walletErr != nil {
		return nil, f.walletErr
	}
	if f.wallet != nil {
		return f.wallet, nil
	}
	return &Wallet{Address: testAccountHex, Seed: seed}, nil
}

// testAccountHex is a hex-form account ID usable by the wire codec.
const testAccountHex = "090A708604BC3BB4459F01E50AC0023FE682D2AD"

func mustHexBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}
