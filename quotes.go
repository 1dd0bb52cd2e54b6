package rebalance

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
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// this file contains the http plumbing to refresh holding prices from a
// remote quote service.

// diskCache implements a simple disk cache for HTTP responses.
// The cache key includes the current day, so entries expire daily.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	key := fmt.Sprintf("%s %s %s", time.Now().Format("2006-01-02"), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	if cached, err := c.get(key, req); err == nil {
		return cached, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(os.TempDir(), key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(os.TempDir(), key), content, 0644)
}

// daily returns a client whose responses are cached on disk until midnight.
func daily() *http.Client {
	return &http.Client{Transport: &diskCache{http.DefaultTransport}}
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(content, data)
}

// QuoteService fetches latest prices for identifiers from a JSON quote
// endpoint. URL is a template whose %s receives the (escaped) identifier;
// Path is the JSONPath of the price inside the response.
type QuoteService struct {
	URL    string // e.g. "https://quotes.example.com/v1/latest?symbol=%s"
	Path   string // e.g. "$.quote.last"
	Client *http.Client
}

// Latest returns the latest price for one identifier.
func (q QuoteService) Latest(identifier string) (Money, error) {
	client := q.Client
	if client == nil {
		client = daily()
	}
	addr := fmt.Sprintf(q.URL, url.QueryEscape(identifier))

	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return Money{}, fmt.Errorf("error retrieving quote for %q: %w", identifier, err)
	}
	jval, err := jsonpath.Get(q.Path, jobj)
	if err != nil {
		return Money{}, fmt.Errorf("error plucking %q from quote for %q: %w", q.Path, identifier, err)
	}
	// jsonpath sometimes returns a list of one answer instead of the answer.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	val, ok := jval.(float64)
	if !ok {
		// some quote APIs return the value as a string
		sval, ok := jval.(string)
		if !ok {
			return Money{}, fmt.Errorf("quote for %q is neither a number nor a string: %v", identifier, jval)
		}
		sval = strings.ReplaceAll(strings.ReplaceAll(sval, ",", ""), " ", "")
		val, err = strconv.ParseFloat(sval, 64)
		if err != nil {
			return Money{}, fmt.Errorf("quote for %q is an invalid string %q: %w", identifier, sval, err)
		}
	}
	if val <= 0 {
		return Money{}, fmt.Errorf("empty quote for %q", identifier)
	}
	return M(val), nil
}

// UpdatePrices returns a fresh holdings slice with the latest price for each
// identifier. Identifiers whose quote fails keep their stale price, with a
// logged warning; a price refresh should never lose a position.
func UpdatePrices(holdings []Holding, quotes QuoteService) []Holding {
	prices := make(map[string]Money)
	updated := make([]Holding, 0, len(holdings))
	for _, h := range holdings {
		price, ok := prices[h.Identifier]
		if !ok {
			var err error
			price, err = quotes.Latest(h.Identifier)
			if err != nil {
				log.Printf("keeping stale price for %q: %v", h.Identifier, err)
				price = h.Price
			}
			prices[h.Identifier] = price
		}
		h.Price = price
		updated = append(updated, h)
	}
	return updated
}
