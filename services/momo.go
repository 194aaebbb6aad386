package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

// MoMoClient builds signed create-payment requests for the MoMo wallet
// gateway and forwards them over HTTPS. Calls are not retried.
type MoMoClient struct {
	PartnerCode string
	AccessKey   string
	SecretKey   string
	Endpoint    string
	RedirectURL string
	IPNURL      string
	HTTPClient  *http.Client
}

func NewMoMoClientFromEnv() *MoMoClient {
	return &MoMoClient{
		PartnerCode: os.Getenv("MOMO_PARTNER_CODE"),
		AccessKey:   os.Getenv("MOMO_ACCESS_KEY"),
		SecretKey:   os.Getenv("MOMO_SECRET_KEY"),
		Endpoint:    os.Getenv("MOMO_ENDPOINT"),
		RedirectURL: os.Getenv("MOMO_REDIRECT_URL"),
		IPNURL:      os.Getenv("MOMO_IPN_URL"),
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// CreatePayment signs and forwards a create-payment request for the given
// amount and returns the gateway's raw JSON response.
func (c *MoMoClient) CreatePayment(amount string) ([]byte, error) {
	orderID := uuid.New().String()
	requestID := uuid.New().String()
	orderInfo := "Travel service booking payment"
	requestType := "captureWallet"
	extraData := ""

	// Field order of the raw signature string is fixed by the gateway.
	rawSignature := fmt.Sprintf(
		"accessKey=%s&amount=%s&extraData=%s&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s&requestType=%s",
		c.AccessKey, amount, extraData, c.IPNURL, orderID, orderInfo,
		c.PartnerCode, c.RedirectURL, requestID, requestType,
	)
	signature := signHMACSHA256(rawSignature, c.SecretKey)

	payload, err := json.Marshal(map[string]interface{}{
		"partnerCode": c.PartnerCode,
		"accessKey":   c.AccessKey,
		"requestId":   requestID,
		"amount":      amount,
		"orderId":     orderID,
		"orderInfo":   orderInfo,
		"redirectUrl": c.RedirectURL,
		"ipnUrl":      c.IPNURL,
		"extraData":   extraData,
		"requestType": requestType,
		"signature":   signature,
		"lang":        "vi",
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("momo request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("momo response read failed: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("momo returned status %d: %s", res.StatusCode, string(body))
	}
	return body, nil
}
