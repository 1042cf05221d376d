package hooks

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEncodeTransactionTypeField(t *testing.T) {
	tests := []struct {
		txnType string
		want    string
	}{
		{TypePayment, "120000"},
		{TypeSetHook, "120016"},
		{TypeInvoke, "120063"},
	}

	for _, tt := range tests {
		t.Run(tt.txnType, func(t *testing.T) {
			blob, err := EncodeTransaction(&Transaction{TransactionType: tt.txnType})
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if !strings.HasPrefix(blob, tt.want) {
				t.Errorf("Expected prefix %s, got %s", tt.want, blob[:6])
			}
		})
	}
}

func TestEncodeTransactionUnknownType(t *testing.T) {
	_, err := EncodeTransaction(&Transaction{TransactionType: "NoSuchType"})
	if !errors.Is(err, ErrUnknownTransactionType) {
		t.Errorf("Expected ErrUnknownTransactionType, got %v", err)
	}
	var encErr *EncodeError
	if !errors.As(err, &encErr) {
		t.Fatal("Expected an EncodeError")
	}
	if encErr.Field != "TransactionType" {
		t.Errorf("Expected field TransactionType, got %s", encErr.Field)
	}
}

// TestEncodePaymentDraft pins the encoding against the reference unsigned
// payment layout: type, flags, tags, sequence, ledger bounds, amount,
// zero fee, null signing key, then both accounts.
func TestEncodePaymentDraft(t *testing.T) {
	tx := &Transaction{
		TransactionType:     TypePayment,
		Flags:               0x80000000,
		FirstLedgerSequence: 0x0065D303,
		LastLedgerSequence:  0x0065D307,
		Amount:              "1000",
		Account:             "090A708604BC3BB4459F01E50AC0023FE682D2AD",
		Destination:         "A8B7F78C0AE9FD42183EE45170D05F92F7F74239",
	}

	blob, err := EncodeTransaction(tx)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	want := "120000" + // Payment
		"2280000000" + // Flags (canonical)
		"2300000000" + // SourceTag
		"2400000000" + // Sequence
		"2E00000000" + // DestinationTag
		"201A0065D303" + // FirstLedgerSequence
		"201B0065D307" + // LastLedgerSequence
		"6140000000000003E8" + // Amount: 1000 drops
		"684000000000000000" + // Fee: zero (draft)
		"7321" + strings.Repeat("00", 33) + // null SigningPubKey
		"8114090A708604BC3BB4459F01E50AC0023FE682D2AD" + // Account
		"8314A8B7F78C0AE9FD42183EE45170D05F92F7F74239" // Destination

	if blob != want {
		t.Errorf("Draft mismatch:\nwant %s\ngot  %s", want, blob)
	}
}

func TestEncodeFeeDrops(t *testing.T) {
	tx := &Transaction{TransactionType: TypePayment, Fee: "12"}
	blob, err := EncodeTransaction(tx)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// 0x68, 0x40 | high six bits, then the value.
	if !strings.Contains(blob, "68400000000000000C") {
		t.Errorf("Expected fee field 68400000000000000C in %s", blob)
	}
}

func TestEncodeSetHookCodeBlob(t *testing.T) {
	payload := BuildPayload(BuildOptions{}).WithCode("DEADBEEF")
	tx := NewSetHookTransaction("090A708604BC3BB4459F01E50AC0023FE682D2AD", payload)

	blob, err := EncodeTransaction(tx)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// Blob field 11, VL length 4, then the code bytes.
	if !strings.Contains(blob, "7B04DEADBEEF") {
		t.Errorf("Expected hook code blob 7B04DEADBEEF in %s", blob)
	}
}

func TestEncodeRejectsBadFields(t *testing.T) {
	tests := []struct {
		name  string
		tx    *Transaction
		field string
	}{
		{
			name:  "non-numeric fee",
			tx:    &Transaction{TransactionType: TypePayment, Fee: "lots"},
			field: "Fee",
		},
		{
			name:  "non-numeric amount",
			tx:    &Transaction{TransactionType: TypePayment, Amount: "1.5"},
			field: "Amount",
		},
		{
			name: "short signing key",
			tx: &Transaction{
				TransactionType: TypePayment,
				SigningPubKey:   "ABCD",
			},
			field: "SigningPubKey",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeTransaction(tt.tx)
			var encErr *EncodeError
			if !errors.As(err, &encErr) {
				t.Fatalf("Expected EncodeError, got %v", err)
			}
			if encErr.Field != tt.field {
				t.Errorf("Expected field %s, got %s", tt.field, encErr.Field)
			}
		})
	}
}

func TestVLLength(t *testing.T) {
	tests := []struct {
		n    int
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{192, []byte{0xC0}},
		{193, []byte{0xC1, 0x00}},
		{300, []byte{0xC1, 0x6B}},
		{12480, []byte{0xF0, 0xFF}},
		{12481, []byte{0xF1, 0x00, 0x00}},
	}

	for _, tt := range tests {
		got := vlLength(tt.n)
		if !bytes.Equal(got, tt.want) {
			t.Errorf("vlLength(%d): expected %X, got %X", tt.n, tt.want, got)
		}
	}
}

func TestDecodeAccountID(t *testing.T) {
	t.Run("zero account address", func(t *testing.T) {
		id, err := DecodeAccountID("rrrrrrrrrrrrrrrrrrrrrhoLvTp")
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if id != [20]byte{} {
			t.Errorf("Expected zero account ID, got %X", id)
		}
	})

	t.Run("genesis address", func(t *testing.T) {
		id, err := DecodeAccountID("rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh")
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		var want [20]byte
		copy(want[:], mustHexBytes(t, "B5F762798A53D543A014CAF8B297CFF8F2F937E8"))
		if id != want {
			t.Errorf("Expected %X, got %X", want, id)
		}
	})

	t.Run("hex account ID", func(t *testing.T) {
		id, err := DecodeAccountID("B5F762798A53D543A014CAF8B297CFF8F2F937E8")
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if id[0] != 0xB5 || id[19] != 0xE8 {
			t.Errorf("Unexpected decode: %X", id)
		}
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		// Last character altered.
		_, err := DecodeAccountID("rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTj")
		var addrErr *AddressError
		if !errors.As(err, &addrErr) {
			t.Errorf("Expected AddressError, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := DecodeAccountID("not an address"); err == nil {
			t.Error("Expected an error")
		}
	})
}
