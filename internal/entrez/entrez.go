// Package entrez retrieves sequence records from NCBI E-utilities,
// retrying transient failures with a fixed backoff.
package entrez

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"
)

// BaseURL is the NCBI E-utilities endpoint.
const BaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

var stderr = log.New(os.Stderr, "", 0)

// Client fetches records for search terms: esearch to resolve ids,
// then efetch per id.
type Client struct {
	// contact email NCBI asks for on every request
	Email string

	// the database queried, eg "nuccore"
	DB string

	// maximum ids resolved per term
	RetMax int

	// the format records are fetched in, eg "fasta"
	RetType string

	// base endpoint; overridable for tests
	URL string

	// wait between retries (the original waited 5 seconds)
	Backoff time.Duration

	// attempts per request before giving up
	Retries int

	HTTP *http.Client
}

// NewClient returns a Client with the defaults the original tool used.
func NewClient(email string) *Client {
	return &Client{
		Email:   email,
		DB:      "nuccore",
		RetMax:  1,
		RetType: "fasta",
		URL:     BaseURL,
		Backoff: 5 * time.Second,
		Retries: 5,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Result is one fetched record.
type Result struct {
	ID   string
	Term string
	Data []byte
}

// searchResult is the part of the esearch XML response we read.
type searchResult struct {
	IDs []string `xml:"IdList>Id"`
}

// Fetch resolves each term to record ids and emits every fetched
// record in order. A term with no ids is logged and skipped; transport
// errors are retried with backoff before failing the run.
func (c *Client) Fetch(ctx context.Context, terms []string, emit func(Result) error) error {
	for _, term := range terms {
		stderr.Printf("search term %s", term)

		ids, err := c.search(ctx, term)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			stderr.Printf("term %s not found", term)
			continue
		}

		for _, id := range ids {
			data, err := c.fetch(ctx, id)
			if err != nil {
				return err
			}
			if err := emit(Result{ID: id, Term: term, Data: data}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Client) search(ctx context.Context, term string) ([]string, error) {
	q := url.Values{
		"db":     {c.DB},
		"retmax": {fmt.Sprintf("%d", c.RetMax)},
		"term":   {term},
		"email":  {c.Email},
	}

	body, err := c.get(ctx, c.URL+"/esearch.fcgi?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("esearch %s: %w", term, err)
	}

	var res searchResult
	if err := xml.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("esearch %s: parse response: %w", term, err)
	}
	return res.IDs, nil
}

func (c *Client) fetch(ctx context.Context, id string) ([]byte, error) {
	q := url.Values{
		"db":      {c.DB},
		"id":      {id},
		"rettype": {c.RetType},
		"email":   {c.Email},
	}

	body, err := c.get(ctx, c.URL+"/efetch.fcgi?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("efetch %s: %w", id, err)
	}
	return body, nil
}

// get performs one GET with retries. Non-2xx statuses are retried like
// transport errors.
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.Retries; attempt++ {
		if attempt > 0 {
			stderr.Printf("%v", lastErr)
			stderr.Printf("wait %s to reconnect...", c.Backoff)
			select {
			case <-time.After(c.Backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.HTTP.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("status %s", resp.Status)
			continue
		}
		return body, nil
	}
	return nil, fmt.Errorf("after %d attempts: %w", c.Retries, lastErr)
}
