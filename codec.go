package hooks

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"

	"github.com/mr-tron/base58"
)

// Wire field prefixes. A field header is the type prefix OR'd with the
// field code when the code fits in the low nibble; larger codes follow the
// bare prefix as a second byte.
const (
	prefixTransactionType = 0x12
	prefixUInt32          = 0x20
	prefixAmount          = 0x60
	prefixBlob            = 0x70
	prefixAccountID       = 0x80
)

// UInt32 field codes.
const (
	fieldFlags          = 0x02
	fieldSourceTag      = 0x03
	fieldSequence       = 0x04
	fieldDestinationTag = 0x0E
	fieldFirstLedgerSeq = 0x1A
	fieldLastLedgerSeq  = 0x1B
)

// Amount field codes.
const (
	fieldAmount = 0x01
	fieldFee    = 0x08
)

// Blob field codes.
const (
	fieldSigningPubKey = 0x03
	fieldCreateCode    = 0x0B
)

// AccountID field codes.
const (
	fieldAccount     = 0x01
	fieldDestination = 0x03
)

// signingPubKeyLength is the byte length of a signing public key field.
// An unsigned draft carries 33 zero bytes.
const signingPubKeyLength = 33

// dropsValueMask keeps the low 62 bits of a native amount; the top byte of
// the encoding carries 0x40 plus the high six value bits.
const dropsValueMask = uint64(1)<<62 - 1

// EncodeTransaction serializes a transaction to the canonical wire hex the
// fee service accepts for a draft. Field order is fixed: transaction type,
// UInt32 fields by ascending code, amounts, blobs (the signing key, then
// each hook's code), then account fields. Absent Fee and SigningPubKey are
// encoded as zero drops and a null key, matching the unsigned-draft shape
// whose fee slot the network fills in.
func EncodeTransaction(tx *Transaction) (string, error) {
	code, ok := txnTypeCodes[tx.TransactionType]
	if !ok {
		return "", &EncodeError{Field: "TransactionType", Err: ErrUnknownTransactionType}
	}

	var buf txnBuffer
	buf.encodeTxnType(code)

	buf.encodeUint32(fieldFlags, tx.Flags)
	buf.encodeUint32(fieldSourceTag, tx.SourceTag)
	buf.encodeUint32(fieldSequence, tx.Sequence)
	buf.encodeUint32(fieldDestinationTag, tx.DestinationTag)
	if tx.FirstLedgerSequence != 0 {
		buf.encodeUint32(fieldFirstLedgerSeq, tx.FirstLedgerSequence)
	}
	if tx.LastLedgerSequence != 0 {
		buf.encodeUint32(fieldLastLedgerSeq, tx.LastLedgerSequence)
	}

	if tx.Amount != "" {
		drops, err := parseDrops(tx.Amount)
		if err != nil {
			return "", &EncodeError{Field: "Amount", Err: err}
		}
		buf.encodeDrops(fieldAmount, drops)
	}

	fee := uint64(0)
	if tx.Fee != "" {
		parsed, err := parseDrops(tx.Fee)
		if err != nil {
			return "", &EncodeError{Field: "Fee", Err: err}
		}
		fee = parsed
	}
	buf.encodeDrops(fieldFee, fee)

	if err := buf.encodeSigningPubKey(tx.SigningPubKey); err != nil {
		return "", err
	}

	for _, entry := range tx.Hooks {
		if !entry.Hook.HasCode() {
			continue
		}
		blob, err := hex.DecodeString(entry.Hook.CreateCode)
		if err != nil {
			return "", &EncodeError{Field: "CreateCode", Err: err}
		}
		buf.encodeBlob(fieldCreateCode, blob)
	}

	if tx.Account != "" {
		id, err := DecodeAccountID(tx.Account)
		if err != nil {
			return "", err
		}
		buf.encodeAccountID(fieldAccount, id)
	}
	if tx.Destination != "" {
		id, err := DecodeAccountID(tx.Destination)
		if err != nil {
			return "", err
		}
		buf.encodeAccountID(fieldDestination, id)
	}

	return strings.ToUpper(hex.EncodeToString(buf.bytes())), nil
}

// txnBuffer accumulates canonical field encodings in order.
type txnBuffer struct {
	buf bytes.Buffer
}

func (b *txnBuffer) bytes() []byte {
	return b.buf.Bytes()
}

// encodeTxnType writes the transaction type as a big-endian uint16.
func (b *txnBuffer) encodeTxnType(code uint16) {
	b.buf.WriteByte(prefixTransactionType)
	b.buf.WriteByte(byte(code >> 8))
	b.buf.WriteByte(byte(code))
}

// encodeUint32 writes a UInt32 field. Codes below 16 pack into the header
// byte; larger codes follow the bare prefix.
func (b *txnBuffer) encodeUint32(code uint8, v uint32) {
	if code < 0x10 {
		b.buf.WriteByte(prefixUInt32 | code)
	} else {
		b.buf.WriteByte(prefixUInt32)
		b.buf.WriteByte(code)
	}
	b.buf.WriteByte(byte(v >> 24))
	b.buf.WriteByte(byte(v >> 16))
	b.buf.WriteByte(byte(v >> 8))
	b.buf.WriteByte(byte(v))
}

// encodeDrops writes a native amount field: eight value bytes whose top
// byte carries 0x40 plus the high six bits of the drops value.
func (b *txnBuffer) encodeDrops(code uint8, drops uint64) {
	drops &= dropsValueMask
	b.buf.WriteByte(prefixAmount | code)
	b.buf.WriteByte(byte(0x40 | drops>>56))
	b.buf.WriteByte(byte(drops >> 48))
	b.buf.WriteByte(byte(drops >> 40))
	b.buf.WriteByte(byte(drops >> 32))
	b.buf.WriteByte(byte(drops >> 24))
	b.buf.WriteByte(byte(drops >> 16))
	b.buf.WriteByte(byte(drops >> 8))
	b.buf.WriteByte(byte(drops))
}

// encodeSigningPubKey writes the signing key blob. An empty key encodes as
// 33 zero bytes, the null key of an unsigned draft.
func (b *txnBuffer) encodeSigningPubKey(keyHex string) error {
	key := make([]byte, signingPubKeyLength)
	if keyHex != "" {
		decoded, err := hex.DecodeString(keyHex)
		if err != nil {
			return &EncodeError{Field: "SigningPubKey", Err: err}
		}
		if len(decoded) != signingPubKeyLength {
			return &EncodeError{
				Field: "SigningPubKey",
				Err:   errors.New("key must be 33 bytes"),
			}
		}
		key = decoded
	}
	b.encodeBlob(fieldSigningPubKey, key)
	return nil
}

// encodeBlob writes a variable-length field: header, VL length, bytes.
func (b *txnBuffer) encodeBlob(code uint8, data []byte) {
	if code < 0x10 {
		b.buf.WriteByte(prefixBlob | code)
	} else {
		b.buf.WriteByte(prefixBlob)
		b.buf.WriteByte(code)
	}
	b.buf.Write(vlLength(len(data)))
	b.buf.Write(data)
}

// encodeAccountID writes a 20-byte account field. Account fields are
// always length-prefixed with 0x14.
func (b *txnBuffer) encodeAccountID(code uint8, id [20]byte) {
	b.buf.WriteByte(prefixAccountID | code)
	b.buf.WriteByte(0x14)
	b.buf.Write(id[:])
}

// vlLength encodes a variable-length prefix per the canonical rules:
// one byte up to 192, two bytes up to 12480, three bytes beyond.
func vlLength(n int) []byte {
	switch {
	case n <= 192:
		return []byte{byte(n)}
	case n <= 12480:
		n -= 193
		return []byte{byte(193 + n>>8), byte(n)}
	default:
		n -= 12481
		return []byte{byte(241 + n>>16), byte(n >> 8), byte(n)}
	}
}

// parseDrops parses a decimal drops string.
func parseDrops(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

// addressAlphabet is the base58 dictionary used for classic account
// addresses.
var addressAlphabet = base58.NewAlphabet("rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz")

// DecodeAccountID decodes an account identifier to its 20 raw bytes.
// Both classic base58 addresses (version byte 0, four checksum bytes) and
// 40-character hex IDs are accepted.
func DecodeAccountID(address string) ([20]byte, error) {
	var id [20]byte

	if len(address) == 40 && isHexString(address) {
		decoded, err := hex.DecodeString(address)
		if err != nil {
			return id, &AddressError{Address: address, Err: err}
		}
		copy(id[:], decoded)
		return id, nil
	}

	decoded, err := base58.FastBase58DecodingAlphabet(address, addressAlphabet)
	if err != nil {
		return id, &AddressError{Address: address, Err: err}
	}
	if len(decoded) != 25 || decoded[0] != 0x00 {
		return id, &AddressError{Address: address, Err: errors.New("malformed account address")}
	}
	first := sha256.Sum256(decoded[:21])
	second := sha256.Sum256(first[:])
	if !bytes.Equal(second[:4], decoded[21:]) {
		return id, &AddressError{Address: address, Err: errors.New("checksum mismatch")}
	}
	copy(id[:], decoded[1:21])
	return id, nil
}
