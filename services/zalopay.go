package services

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ZaloPayClient builds signed create-order requests for the ZaloPay gateway.
type ZaloPayClient struct {
	AppID      string
	Key1       string
	Endpoint   string
	AppUser    string
	HTTPClient *http.Client
}

func NewZaloPayClientFromEnv() *ZaloPayClient {
	return &ZaloPayClient{
		AppID:      os.Getenv("ZALOPAY_APP_ID"),
		Key1:       os.Getenv("ZALOPAY_KEY1"),
		Endpoint:   os.Getenv("ZALOPAY_ENDPOINT"),
		AppUser:    os.Getenv("ZALOPAY_APP_USER"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateOrder signs and forwards a create-order request for the given amount
// and returns the gateway's raw JSON response.
func (c *ZaloPayClient) CreateOrder(amount string) ([]byte, error) {
	now := time.Now()
	appTime := now.UnixMilli()
	// app_trans_id must be prefixed with the yymmdd of app_time
	appTransID := fmt.Sprintf("%s_%s", now.Format("060102"), strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
	embedData := "{}"
	item := "[]"

	// mac input is a pipe-joined string in gateway-fixed field order.
	macData := fmt.Sprintf("%s|%s|%s|%s|%d|%s|%s",
		c.AppID, appTransID, c.AppUser, amount, appTime, embedData, item)
	mac := signHMACSHA256(macData, c.Key1)

	form := url.Values{}
	form.Set("app_id", c.AppID)
	form.Set("app_user", c.AppUser)
	form.Set("app_time", fmt.Sprintf("%d", appTime))
	form.Set("amount", amount)
	form.Set("app_trans_id", appTransID)
	form.Set("embed_data", embedData)
	form.Set("item", item)
	form.Set("description", "Travel service booking payment "+appTransID)
	form.Set("bank_code", "zalopayapp")
	form.Set("mac", mac)

	req, err := http.NewRequest(http.MethodPost, c.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zalopay request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("zalopay response read failed: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("zalopay returned status %d: %s", res.StatusCode, string(body))
	}
	return body, nil
}
