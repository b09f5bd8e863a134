// Package domains checks whether suggested branding domains are registered,
// using RDAP.
package domains

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/openrdap/rdap"
)

// Availability is the outcome of a lookup.
type Availability string

const (
	Available   Availability = "available"
	Taken       Availability = "taken"
	RateLimited Availability = "rate_limited"
	Unknown     Availability = "unknown"
	Failed      Availability = "error"
)

// Result describes one domain lookup.
type Result struct {
	Domain       string       `json:"domain"`
	Availability Availability `json:"availability"`
	StatusCode   int          `json:"statusCode,omitempty"`
	Message      string       `json:"message,omitempty"`
	Registrar    string       `json:"registrar,omitempty"`
	Expiration   string       `json:"expiration,omitempty"`
	Server       string       `json:"server,omitempty"`
	FromCache    bool         `json:"fromCache,omitempty"`
	CheckedAt    time.Time    `json:"checkedAt"`
}

// Cache stores results between lookups. Get returns nil for a miss.
type Cache interface {
	GetDomainCheck(ctx context.Context, domain string) (*Result, error)
	SetDomainCheck(ctx context.Context, result Result, ttl time.Duration) error
}

var defaultServers = map[string][]string{
	"app": {"https://pubapi.registry.google/rdap"},
	"dev": {"https://pubapi.registry.google/rdap"},
}

// Checker performs RDAP lookups. A TLD without a configured server is
// resolved through the IANA bootstrap registry by the rdap client.
type Checker struct {
	Client   *rdap.Client
	Servers  map[string][]string
	Timeout  time.Duration
	Cache    Cache
	CacheTTL time.Duration
	Clock    func() time.Time

	// OnResult observes every fresh (non-cached) lookup.
	OnResult func(Result)
}

// Check looks up a single domain. Transport problems are reported in the
// Result rather than as an error; the error is reserved for invalid input.
func (c *Checker) Check(ctx context.Context, domain string) (Result, error) {
	name, tld, err := normalize(domain)
	if err != nil {
		return Result{}, err
	}

	if c.Cache != nil {
		if cached, err := c.Cache.GetDomainCheck(ctx, name); err == nil && cached != nil {
			cached.FromCache = true
			return *cached, nil
		}
	}

	result := c.lookup(ctx, name, tld)
	if c.OnResult != nil {
		c.OnResult(result)
	}
	if c.Cache != nil && c.CacheTTL > 0 && cacheable(result.Availability) {
		_ = c.Cache.SetDomainCheck(ctx, result, c.CacheTTL)
	}
	return result, nil
}

// CheckAll looks up every domain concurrently, preserving input order.
func (c *Checker) CheckAll(ctx context.Context, names []string) []Result {
	results := make([]Result, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := c.Check(ctx, name)
			if err != nil {
				r = Result{Domain: name, Availability: Failed, Message: err.Error(), CheckedAt: c.now()}
			}
			results[i] = r
		}()
	}
	wg.Wait()
	return results
}

func (c *Checker) lookup(ctx context.Context, name, tld string) Result {
	client := c.Client
	if client == nil {
		client = &rdap.Client{}
	}

	servers := c.servers(tld)
	if len(servers) == 0 {
		return c.do(ctx, client, rdap.NewDomainRequest(name), name, "")
	}

	var last Result
	for _, base := range servers {
		serverURL, err := url.Parse(base)
		if err != nil {
			last = c.result(name, Failed, 0, fmt.Sprintf("invalid rdap server url: %v", err), base)
			continue
		}
		last = c.do(ctx, client, rdap.NewDomainRequest(name).WithServer(serverURL), name, base)
		switch last.Availability {
		case Available, Taken:
			return last
		}
	}
	return last
}

func (c *Checker) do(ctx context.Context, client *rdap.Client, req *rdap.Request, name, server string) Result {
	if c.Timeout > 0 {
		req.Timeout = c.Timeout
	}
	req = req.WithContext(ctx)

	resp, err := client.Do(req)
	status := statusCode(resp)

	if err != nil {
		switch {
		case isNotFound(err) || status == 404:
			return c.result(name, Available, status, "rdap not found", server)
		case status == 429:
			return c.result(name, RateLimited, status, "rdap rate limited", server)
		case status >= 500:
			return c.result(name, Failed, status, "rdap server error", server)
		default:
			return c.result(name, Failed, status, err.Error(), server)
		}
	}

	domain, ok := resp.Object.(*rdap.Domain)
	if !ok {
		return c.result(name, Unknown, status, "unexpected rdap response", server)
	}
	r := c.result(name, Taken, status, "domain registered", server)
	r.Registrar = registrar(domain)
	for _, event := range domain.Events {
		if event.Action == "expiration" {
			r.Expiration = event.Date
		}
	}
	return r
}

func (c *Checker) result(name string, a Availability, status int, message, server string) Result {
	return Result{
		Domain:       name,
		Availability: a,
		StatusCode:   status,
		Message:      message,
		Server:       server,
		CheckedAt:    c.now(),
	}
}

func (c *Checker) servers(tld string) []string {
	if c.Servers != nil {
		if s, ok := c.Servers[tld]; ok {
			return s
		}
	}
	return defaultServers[tld]
}

func (c *Checker) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now().UTC()
}

func cacheable(a Availability) bool {
	return a == Available || a == Taken
}

func normalize(domain string) (name, tld string, err error) {
	name = strings.ToLower(strings.TrimSpace(domain))
	name = strings.TrimSuffix(name, ".")
	if name == "" {
		return "", "", errors.New("domain is required")
	}
	dot := strings.LastIndex(name, ".")
	if dot <= 0 || dot == len(name)-1 {
		return "", "", fmt.Errorf("domain %q must include a tld", domain)
	}
	return name, name[dot+1:], nil
}

func statusCode(resp *rdap.Response) int {
	if resp == nil || len(resp.HTTP) == 0 || resp.HTTP[0] == nil || resp.HTTP[0].Response == nil {
		return 0
	}
	return resp.HTTP[0].Response.StatusCode
}

func isNotFound(err error) bool {
	var clientErr *rdap.ClientError
	return errors.As(err, &clientErr) && clientErr.Type == rdap.ObjectDoesNotExist
}

func registrar(domain *rdap.Domain) string {
	for _, entity := range domain.Entities {
		for _, role := range entity.Roles {
			if role == "registrar" && entity.VCard != nil {
				return entity.VCard.Name()
			}
		}
	}
	return ""
}
