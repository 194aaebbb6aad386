package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func hmacHex(message, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestMoMoCreatePaymentSignsRequest(t *testing.T) {
	const secret = "test-secret"
	var received map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"resultCode":0,"payUrl":"https://pay.example/abc"}`)
	}))
	defer server.Close()

	client := &MoMoClient{
		PartnerCode: "PARTNER",
		AccessKey:   "ACCESS",
		SecretKey:   secret,
		Endpoint:    server.URL,
		RedirectURL: "https://app.example/return",
		IPNURL:      "https://app.example/ipn",
		HTTPClient:  &http.Client{Timeout: time.Second},
	}

	body, err := client.CreatePayment("50000")
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}
	if !strings.Contains(string(body), "payUrl") {
		t.Errorf("expected gateway body passed through, got %s", body)
	}

	// Recompute the signature from the fields the gateway received.
	expected := hmacHex(fmt.Sprintf(
		"accessKey=%s&amount=%s&extraData=%s&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s&requestType=%s",
		"ACCESS", "50000", received["extraData"], "https://app.example/ipn",
		received["orderId"], received["orderInfo"], "PARTNER",
		"https://app.example/return", received["requestId"], received["requestType"],
	), secret)
	if received["signature"] != expected {
		t.Errorf("signature mismatch: got %v want %v", received["signature"], expected)
	}
	if received["requestType"] != "captureWallet" {
		t.Errorf("expected captureWallet request type, got %v", received["requestType"])
	}
}

func TestMoMoCreatePaymentGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"downstream broken"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	client := &MoMoClient{
		Endpoint:   server.URL,
		HTTPClient: &http.Client{Timeout: time.Second},
	}
	if _, err := client.CreatePayment("1000"); err == nil {
		t.Fatal("expected error on gateway 500")
	}
}

func TestMoMoCreatePaymentUnreachable(t *testing.T) {
	client := &MoMoClient{
		Endpoint:   "http://127.0.0.1:1",
		HTTPClient: &http.Client{Timeout: 200 * time.Millisecond},
	}
	if _, err := client.CreatePayment("1000"); err == nil {
		t.Fatal("expected error when the gateway is unreachable")
	}
}

func TestZaloPayCreateOrderSignsRequest(t *testing.T) {
	const key1 = "zalo-key1"
	var form map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parsing form: %v", err)
		}
		form = map[string]string{}
		for k := range r.PostForm {
			form[k] = r.PostForm.Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"return_code":1,"order_url":"https://qr.example/xyz"}`)
	}))
	defer server.Close()

	client := &ZaloPayClient{
		AppID:      "2553",
		Key1:       key1,
		Endpoint:   server.URL,
		AppUser:    "travelapp",
		HTTPClient: &http.Client{Timeout: time.Second},
	}

	body, err := client.CreateOrder("75000")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if !strings.Contains(string(body), "order_url") {
		t.Errorf("expected gateway body passed through, got %s", body)
	}

	expected := hmacHex(fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s",
		"2553", form["app_trans_id"], "travelapp", "75000",
		form["app_time"], form["embed_data"], form["item"],
	), key1)
	if form["mac"] != expected {
		t.Errorf("mac mismatch: got %v want %v", form["mac"], expected)
	}

	// app_trans_id carries the yymmdd prefix the gateway requires.
	prefix := time.Now().Format("060102") + "_"
	if !strings.HasPrefix(form["app_trans_id"], prefix) {
		t.Errorf("app_trans_id %q missing %q prefix", form["app_trans_id"], prefix)
	}
}

func TestZaloPayCreateOrderGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	client := &ZaloPayClient{
		Endpoint:   server.URL,
		HTTPClient: &http.Client{Timeout: time.Second},
	}
	if _, err := client.CreateOrder("1000"); err == nil {
		t.Fatal("expected error on gateway 502")
	}
}
