package storage

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Cloudinary configuration via environment variables:
// CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY, CLOUDINARY_API_SECRET,
// CLOUDINARY_FOLDER (optional).

var cloudinaryClient = &http.Client{Timeout: 30 * time.Second}

// UploadBase64Image performs a signed Cloudinary upload and returns the
// hosted URL, or an error when the upload did not produce one.
func UploadBase64Image(base64ImageSrc string, publicID string) (string, error) {
	if base64ImageSrc == "" {
		return "", fmt.Errorf("empty base64 image")
	}

	payload := base64ImageSrc
	if i := strings.Index(base64ImageSrc, ","); i != -1 {
		payload = base64ImageSrc[i+1:]
	}

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	folder := os.Getenv("CLOUDINARY_FOLDER")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return "", fmt.Errorf("missing Cloudinary credentials")
	}

	endpoint := "https://api.cloudinary.com/v1_1/" + cloudName + "/image/upload"

	finalPublicID := publicID
	if folder != "" {
		finalPublicID = folder + "/" + publicID
	}

	form := url.Values{}
	form.Add("file", "data:image/jpeg;base64,"+payload)
	form.Add("api_key", apiKey)
	if finalPublicID != "" {
		form.Add("public_id", finalPublicID)
	}

	// Signature for signed upload (Cloudinary requires SHA1 here)
	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	form.Add("timestamp", timestamp)
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", finalPublicID, timestamp, apiSecret)
	form.Add("signature", fmt.Sprintf("%x", sha1.Sum([]byte(signatureString))))

	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := cloudinaryClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cloudinary upload failed with status %d: %s", res.StatusCode, string(body))
	}

	var cloudRes struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &cloudRes); err != nil {
		return "", err
	}
	if cloudRes.Error.Message != "" {
		return "", fmt.Errorf("cloudinary error: %s", cloudRes.Error.Message)
	}

	hostedURL := cloudRes.SecureURL
	if hostedURL == "" {
		hostedURL = cloudRes.URL
	}
	if hostedURL == "" {
		return "", fmt.Errorf("no URL returned from Cloudinary")
	}
	return hostedURL, nil
}

// DeleteImage removes a previously uploaded image given its Cloudinary URL.
func DeleteImage(imageURL string) error {
	if !strings.Contains(imageURL, "res.cloudinary.com") {
		return fmt.Errorf("not a Cloudinary URL: %s", imageURL)
	}

	parts := strings.Split(imageURL, "/")
	if len(parts) < 2 {
		return fmt.Errorf("invalid Cloudinary URL: %s", imageURL)
	}
	lastPart := parts[len(parts)-1]
	publicID := strings.Split(lastPart, ".")[0]

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	folder := os.Getenv("CLOUDINARY_FOLDER")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return fmt.Errorf("missing Cloudinary credentials")
	}

	finalPublicID := publicID
	if folder != "" {
		finalPublicID = folder + "/" + publicID
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", finalPublicID, timestamp, apiSecret)

	form := url.Values{}
	form.Add("public_id", finalPublicID)
	form.Add("api_key", apiKey)
	form.Add("timestamp", timestamp)
	form.Add("signature", fmt.Sprintf("%x", sha1.Sum([]byte(signatureString))))

	endpoint := "https://api.cloudinary.com/v1_1/" + cloudName + "/image/destroy"
	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := cloudinaryClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("cloudinary destroy failed with status %d: %s", res.StatusCode, string(body))
	}

	var deleteRes struct {
		Result string `json:"result"`
		Error  struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &deleteRes); err != nil {
		return err
	}
	if deleteRes.Error.Message != "" {
		return fmt.Errorf("cloudinary error: %s", deleteRes.Error.Message)
	}
	if deleteRes.Result != "ok" {
		return fmt.Errorf("cloudinary destroy result: %s", deleteRes.Result)
	}
	return nil
}
