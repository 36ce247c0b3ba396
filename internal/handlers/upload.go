package handlers

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const uploadFolder = "palme-foods-assets"

var uploadHTTPClient = &http.Client{Timeout: 60 * time.Second}

// UploadHandler relays storefront asset uploads to Cloudinary.
type UploadHandler struct {
	cloudName string
	apiKey    string
	apiSecret string
	baseURL   string
}

// NewUploadHandler constructs UploadHandler.
func NewUploadHandler(cloudName, apiKey, apiSecret string) *UploadHandler {
	return &UploadHandler{
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		baseURL:   "https://api.cloudinary.com/v1_1",
	}
}

type cloudinaryResponse struct {
	SecureURL    string `json:"secure_url"`
	ResourceType string `json:"resource_type"`
	Error        struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload accepts a multipart "file" field and streams it to Cloudinary
// with a signed request, returning the hosted URL. Admin only.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	if h.cloudName == "" || h.apiKey == "" || h.apiSecret == "" {
		return fiber.NewError(fiber.StatusServiceUnavailable, "upload is not configured")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "no file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to read file")
	}
	defer file.Close()

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := h.sign("folder=" + uploadFolder + "&timestamp=" + timestamp)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileHeader.Filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}
	_ = writer.WriteField("api_key", h.apiKey)
	_ = writer.WriteField("timestamp", timestamp)
	_ = writer.WriteField("signature", signature)
	_ = writer.WriteField("folder", uploadFolder)
	if err := writer.Close(); err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/%s/auto/upload", h.baseURL, h.cloudName)
	req, err := http.NewRequestWithContext(c.Context(), http.MethodPost, endpoint, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := uploadHTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("cloudinary upload request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var result cloudinaryResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("cloudinary upload unmarshal: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fiber.NewError(fiber.StatusBadGateway, "upload failed: "+result.Error.Message)
	}

	assetType := "image"
	if strings.HasPrefix(result.ResourceType, "video") {
		assetType = "video"
	}

	return c.JSON(fiber.Map{
		"url":     result.SecureURL,
		"type":    assetType,
		"message": "upload successful",
	})
}

func (h *UploadHandler) sign(params string) string {
	digest := sha1.Sum([]byte(params + h.apiSecret))
	return hex.EncodeToString(digest[:])
}
