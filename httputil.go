package licspend

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
)

// http plumbing for the external ticketing systems.

// cachingTransport caches GET responses on disk. The cache key includes the
// current day, so entries expire overnight: ticket counts are month-to-date
// figures and one fetch per day is plenty.
type cachingTransport struct {
	base http.RoundTripper
}

func (t *cachingTransport) cachePath(req *http.Request) string {
	key := fmt.Sprintf("%s %s %s", Today(), req.Method, req.URL)
	return filepath.Join(os.TempDir(), fmt.Sprintf("lss-%x", sha1.Sum([]byte(key))))
}

func (t *cachingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	path := t.cachePath(req)
	if content, err := os.ReadFile(path); err == nil {
		return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	content, err := httputil.DumpResponse(resp, true)
	if err == nil {
		err = os.WriteFile(path, content, 0o644)
	}
	if err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// dailyClient returns an http client whose responses are cached for the day.
func dailyClient() *http.Client {
	return &http.Client{Transport: &cachingTransport{http.DefaultTransport}}
}

// jwget GETs addr and unmarshals the JSON response into data.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, data)
}
