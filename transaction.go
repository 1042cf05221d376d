package hooks

// Transaction type names understood by the wire codec.
const (
	TypePayment = "Payment"
	TypeSetHook = "SetHook"
	TypeInvoke  = "Invoke"
)

// txnTypeCodes maps transaction type names to their numeric wire codes.
var txnTypeCodes = map[string]uint16{
	TypePayment: 0,
	TypeSetHook: 22,
	TypeInvoke:  99,
}

// HookEntry wraps a SetHookPayload for the Hooks array of a SetHook
// transaction.
type HookEntry struct {
	Hook SetHookPayload `json:"Hook"`
}

// Transaction is the network transaction embedding a hook payload. Only
// the fields this library reads or writes are modelled; the node completes
// the rest during autofill.
type Transaction struct {
	TransactionType     string      `json:"TransactionType"`
	Account             string      `json:"Account,omitempty"`
	Destination         string      `json:"Destination,omitempty"`
	Fee                 string      `json:"Fee,omitempty"`
	Flags               uint32      `json:"Flags,omitempty"`
	Sequence            uint32      `json:"Sequence,omitempty"`
	SourceTag           uint32      `json:"SourceTag,omitempty"`
	DestinationTag      uint32      `json:"DestinationTag,omitempty"`
	FirstLedgerSequence uint32      `json:"FirstLedgerSequence,omitempty"`
	LastLedgerSequence  uint32      `json:"LastLedgerSequence,omitempty"`
	Amount              string      `json:"Amount,omitempty"`
	SigningPubKey       string      `json:"SigningPubKey,omitempty"`
	NetworkID           uint32      `json:"NetworkID,omitempty"`
	Hooks               []HookEntry `json:"Hooks,omitempty"`
}

// NewSetHookTransaction builds the install-hook transaction for a single
// payload under the given account.
func NewSetHookTransaction(account string, payload SetHookPayload) *Transaction {
	return &Transaction{
		TransactionType: TypeSetHook,
		Account:         account,
		Hooks:           []HookEntry{{Hook: payload}},
	}
}

// Clone returns a deep copy of the transaction. Fee estimation operates on
// a clone so the caller's transaction is never mutated.
func (tx *Transaction) Clone() *Transaction {
	clone := *tx
	if tx.Hooks != nil {
		clone.Hooks = make([]HookEntry, len(tx.Hooks))
		for i, entry := range tx.Hooks {
			clone.Hooks[i] = HookEntry{Hook: entry.Hook.clone()}
		}
	}
	return &clone
}
