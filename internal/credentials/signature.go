package credentials

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"strings"
)

// Sign concatenates fields in the given order, appends secret and returns the
// lowercase hex SHA-256 of the result.
func Sign(secret string, fields ...string) string {
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(f)
	}
	b.WriteString(secret)

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// SignPayment signs a payment notification. Field order is
// account_id, amount, transaction_id, user_id. amount is the decimal text
// exactly as the sender serialized it.
func SignPayment(secret string, accountID int64, amount, transactionID string, userID int64) string {
	return Sign(secret,
		strconv.FormatInt(accountID, 10),
		amount,
		transactionID,
		strconv.FormatInt(userID, 10),
	)
}

// VerifySignature compares two hex signatures in constant time.
func VerifySignature(expected, claimed string) bool {
	return subtle.ConstantTimeCompare([]byte(expected), []byte(claimed)) == 1
}
