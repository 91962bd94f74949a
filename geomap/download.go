package geomap

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// Some of the public GeoJSON mirrors reject requests without a browser
// User-Agent, so every fetch sends one.
const downloadUserAgent = "Mozilla/5.0"

var downloadClient = &http.Client{Timeout: 60 * time.Second}

// Download fetches a GeoJSON file to path unless it is already cached
// on disk. If the primary URL fails, the fallback URL is tried before
// giving up; an empty fallback disables the second attempt.
func Download(path, url, fallbackURL string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := fetch(url, path); err != nil {
		if fallbackURL == "" {
			return err
		}
		log.Printf("Primary map source failed (%v), trying fallback URL...", err)
		if err := fetch(fallbackURL, path); err != nil {
			return fmt.Errorf("fallback map source failed: %w", err)
		}
	}
	return nil
}

func fetch(url, path string) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", downloadUserAgent)

	resp, err := downloadClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s: status %d", url, resp.StatusCode)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		// Remove the partial file so the next run retries the download.
		os.Remove(path)
		return err
	}
	return nil
}
