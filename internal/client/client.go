// Package client is the HTTP wrapper the editing session uses to talk
// to the menu API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"menuforge/internal/models"
)

const defaultTimeout = 30 * time.Second

// MenuClient calls the menu read/write and image upload endpoints
type MenuClient struct {
	httpClient *http.Client
	BaseURL    string
}

// NewMenuClient creates a client for the given API base URL
func NewMenuClient(baseURL string) *MenuClient {
	return &MenuClient{
		httpClient: &http.Client{Timeout: defaultTimeout},
		BaseURL:    baseURL,
	}
}

// CheckHealth checks if the API is up and running
func (c *MenuClient) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status code %d", resp.StatusCode)
	}
	return nil
}

// FetchMenu loads the restaurant's current menu
func (c *MenuClient) FetchMenu(ctx context.Context, restaurantID string) (models.MenuPayload, error) {
	var payload models.MenuPayload

	url := fmt.Sprintf("%s/api/v1/restaurants/%s/menu", c.BaseURL, restaurantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return payload, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return payload, fmt.Errorf("fetch menu: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return payload, fmt.Errorf("fetch menu: %s", readError(resp))
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return payload, fmt.Errorf("decode menu: %w", err)
	}
	return payload, nil
}

// ReplaceMenu submits the full item and customisation lists
func (c *MenuClient) ReplaceMenu(ctx context.Context, restaurantID string, payload models.MenuPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode menu: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/restaurants/%s/menu", c.BaseURL, restaurantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("replace menu: %w", err)
	}
	defer resp.Body.Close()

	var result models.MenuResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("replace menu: status %d", resp.StatusCode)
	}
	if !result.Success {
		return fmt.Errorf("%s", orStatus(result.Error, resp.StatusCode))
	}
	return nil
}

// UploadImage sends a multipart image for a menu item and returns the
// stored file's URL.
func (c *MenuClient) UploadImage(ctx context.Context, restaurantID string, itemID int, filename string, image io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, image); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/api/v1/restaurants/%s/items/%d/image", c.BaseURL, restaurantID, itemID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	var result models.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("upload image: status %d", resp.StatusCode)
	}
	if !result.Success {
		return "", fmt.Errorf("upload image: %s", orStatus(result.Error, resp.StatusCode))
	}
	return result.FileURL, nil
}

func readError(resp *http.Response) string {
	var result models.MenuResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err == nil && result.Error != "" {
		return result.Error
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}

func orStatus(message string, status int) string {
	if message != "" {
		return message
	}
	return fmt.Sprintf("status %d", status)
}
