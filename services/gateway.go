package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Package-level gateway clients, initialized once at process start so the
// credentials are read from the environment in exactly one place.
var (
	MoMo    *MoMoClient
	ZaloPay *ZaloPayClient
)

func InitializePaymentGateways() {
	MoMo = NewMoMoClientFromEnv()
	ZaloPay = NewZaloPayClientFromEnv()
}

// signHMACSHA256 hex-encodes the HMAC-SHA256 of message under key; both
// gateways sign their create-payment requests this way.
func signHMACSHA256(message, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}
