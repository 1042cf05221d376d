package hooks

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	log "github.com/xlab/suplog"
)

// Wallet identifies the signing account for a submission. It is an opaque
// carrier: key derivation happens on the node (wallet_propose), never in
// this library.
type Wallet struct {
	Address   string
	PublicKey string
	Seed      string
}

// SubmitOptions control how a transaction is submitted.
type SubmitOptions struct {
	// Wallet signs the transaction. Required.
	Wallet *Wallet

	// FailHard rejects the transaction outright instead of queueing it
	// when validation fails deterministically.
	FailHard bool

	// Autofill lets the client complete remaining required fields
	// (sequence, ledger bounds) before submission.
	Autofill bool
}

// SubmitResult is the network's verdict on a submission.
type SubmitResult struct {
	EngineResult string
	Message      string
	TxHash       string
	Accepted     bool
}

// Client is the network collaborator for fee estimation and submission.
// Implementations must be safe for sequential reuse across an
// estimate-then-submit pair within one deployment.
type Client interface {
	// Autofill returns a copy of tx with required derived fields
	// (sequence, ledger bounds) completed.
	Autofill(ctx context.Context, tx *Transaction) (*Transaction, error)

	// Encode serializes tx to the canonical wire hex.
	Encode(tx *Transaction) (string, error)

	// FeeEstimate asks the fee service for the drops required by the
	// wire-encoded draft.
	FeeEstimate(ctx context.Context, txBlob string) (string, error)

	// SubmitAndWait submits tx and blocks until the network accepts or
	// rejects it.
	SubmitAndWait(ctx context.Context, tx *Transaction, opts SubmitOptions) (*SubmitResult, error)

	// WalletFromSeed derives the signing identity for a seed.
	WalletFromSeed(ctx context.Context, seed string) (*Wallet, error)
}

// ledgerWindow is how many ledgers past the current one a submitted
// transaction stays valid during autofill.
const ledgerWindow = 20

// submitPollInterval paces the wait for a submitted transaction to appear
// in a validated ledger.
const submitPollInterval = 2 * time.Second

// RPCClient implements Client over the node's JSON-RPC interface.
type RPCClient struct {
	rpc *rpc.Client
}

var _ Client = (*RPCClient)(nil)

// Dial connects to a node's JSON-RPC endpoint.
func Dial(ctx context.Context, url string) (*RPCClient, error) {
	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, errors.Wrap(err, "dial node rpc")
	}
	return &RPCClient{rpc: c}, nil
}

// Close releases the underlying connection.
func (c *RPCClient) Close() {
	c.rpc.Close()
}

type accountInfoRequest struct {
	Account     string `json:"account"`
	LedgerIndex string `json:"ledger_index"`
}

type accountInfoResult struct {
	AccountData struct {
		Sequence uint32 `json:"Sequence"`
	} `json:"account_data"`
}

type ledgerCurrentResult struct {
	LedgerCurrentIndex uint32 `json:"ledger_current_index"`
}

// Autofill completes sequence and ledger bounds on a copy of tx. Fee and
// signing key are left untouched.
func (c *RPCClient) Autofill(ctx context.Context, tx *Transaction) (*Transaction, error) {
	filled := tx.Clone()

	if filled.Sequence == 0 {
		var info accountInfoResult
		req := accountInfoRequest{Account: filled.Account, LedgerIndex: "current"}
		if err := c.rpc.CallContext(ctx, &info, "account_info", req); err != nil {
			return nil, errors.Wrap(err, "account_info")
		}
		filled.Sequence = info.AccountData.Sequence
	}

	if filled.LastLedgerSequence == 0 {
		var ledger ledgerCurrentResult
		if err := c.rpc.CallContext(ctx, &ledger, "ledger_current"); err != nil {
			return nil, errors.Wrap(err, "ledger_current")
		}
		filled.LastLedgerSequence = ledger.LedgerCurrentIndex + ledgerWindow
	}

	return filled, nil
}

// Encode serializes tx with the canonical wire codec.
func (c *RPCClient) Encode(tx *Transaction) (string, error) {
	return EncodeTransaction(tx)
}

type feeRequest struct {
	TxBlob string `json:"tx_blob"`
}

type feeResult struct {
	Drops struct {
		BaseFee       string `json:"base_fee"`
		OpenLedgerFee string `json:"open_ledger_fee"`
	} `json:"drops"`
}

// FeeEstimate queries the fee service with a wire-encoded draft and
// returns the required drops.
func (c *RPCClient) FeeEstimate(ctx context.Context, txBlob string) (string, error) {
	var fee feeResult
	if err := c.rpc.CallContext(ctx, &fee, "fee", feeRequest{TxBlob: txBlob}); err != nil {
		return "", errors.Wrap(err, "fee")
	}
	if fee.Drops.OpenLedgerFee != "" {
		return fee.Drops.OpenLedgerFee, nil
	}
	return fee.Drops.BaseFee, nil
}

type submitRequest struct {
	TxJSON   *Transaction `json:"tx_json"`
	Secret   string       `json:"secret"`
	FailHard bool         `json:"fail_hard"`
}

type submitResult struct {
	EngineResult        string `json:"engine_result"`
	EngineResultMessage string `json:"engine_result_message"`
	TxJSON              struct {
		Hash string `json:"hash"`
	} `json:"tx_json"`
}

type txRequest struct {
	Transaction string `json:"transaction"`
}

type txResult struct {
	Validated bool `json:"validated"`
}

// SubmitAndWait submits tx under the wallet in opts and polls until the
// transaction is validated or ctx is done. A non-success engine result is
// returned as an error so the submitter's retry policy applies uniformly.
func (c *RPCClient) SubmitAndWait(ctx context.Context, tx *Transaction, opts SubmitOptions) (*SubmitResult, error) {
	if opts.Wallet == nil {
		return nil, ErrMissingWallet
	}

	submitted := tx
	if opts.Autofill {
		filled, err := c.Autofill(ctx, tx)
		if err != nil {
			return nil, err
		}
		submitted = filled
	}

	var res submitResult
	req := submitRequest{TxJSON: submitted, Secret: opts.Wallet.Seed, FailHard: opts.FailHard}
	if err := c.rpc.CallContext(ctx, &res, "submit", req); err != nil {
		return nil, errors.Wrap(err, "submit")
	}
	if res.EngineResult != "tesSUCCESS" {
		return nil, errors.Errorf("engine result %s: %s", res.EngineResult, res.EngineResultMessage)
	}

	log.WithField("hash", res.TxJSON.Hash).Infoln("submitted, waiting for validation")
	if err := c.waitValidated(ctx, res.TxJSON.Hash); err != nil {
		return nil, err
	}

	return &SubmitResult{
		EngineResult: res.EngineResult,
		Message:      res.EngineResultMessage,
		TxHash:       res.TxJSON.Hash,
		Accepted:     true,
	}, nil
}

// waitValidated polls the transaction until it appears in a validated
// ledger.
func (c *RPCClient) waitValidated(ctx context.Context, hash string) error {
	ticker := time.NewTicker(submitPollInterval)
	defer ticker.Stop()

	for {
		var res txResult
		err := c.rpc.CallContext(ctx, &res, "tx", txRequest{Transaction: hash})
		if err == nil && res.Validated {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

type walletProposeRequest struct {
	Seed string `json:"seed"`
}

type walletProposeResult struct {
	AccountID string `json:"account_id"`
	PublicKey string `json:"public_key_hex"`
}

// WalletFromSeed derives the signing identity for seed via the node's
// wallet_propose method.
func (c *RPCClient) WalletFromSeed(ctx context.Context, seed string) (*Wallet, error) {
	var res walletProposeResult
	if err := c.rpc.CallContext(ctx, &res, "wallet_propose", walletProposeRequest{Seed: seed}); err != nil {
		return nil, errors.Wrap(err, "wallet_propose")
	}
	return &Wallet{
		Address:   res.AccountID,
		PublicKey: res.PublicKey,
		Seed:      seed,
	}, nil
}
