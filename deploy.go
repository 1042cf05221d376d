package hooks

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/xlab/suplog"
)

// Deployer installs a built hook payload on the network: it derives the
// signing identity, wraps the payload in a SetHook transaction, prices it
// via EstimateFee, and submits through a retrying Submitter with fail-hard
// and autofill semantics.
type Deployer struct {
	client    Client
	submitter *Submitter
}

// NewDeployer creates a Deployer over client with a default Submitter.
func NewDeployer(client Client, opts ...DeployerOption) *Deployer {
	d := &Deployer{
		client:    client,
		submitter: NewSubmitter(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Deploy installs payload under the account derived from seed. The payload
// must carry compiled code. Returns the submitter's result or its terminal
// error.
func (d *Deployer) Deploy(ctx context.Context, seed string, payload SetHookPayload) (*SubmitResult, error) {
	if !payload.HasCode() {
		return nil, ErrNoCreateCode
	}

	wallet, err := d.client.WalletFromSeed(ctx, seed)
	if err != nil {
		return nil, errors.Wrap(err, "derive wallet")
	}

	tx := NewSetHookTransaction(wallet.Address, payload)

	fee, err := EstimateFee(ctx, d.client, tx)
	if err != nil {
		return nil, err
	}
	tx.Fee = fee

	log.WithField("account", wallet.Address).
		WithField("fee", fee).
		WithField("namespace", payload.Namespace).
		Infoln("deploying hook")

	return d.submitter.Submit(ctx, d.client, tx, SubmitOptions{
		Wallet:   wallet,
		FailHard: true,
		Autofill: true,
	})
}
