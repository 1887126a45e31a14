package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ippriv/ippriv/internal/apiclient"
	"github.com/ippriv/ippriv/internal/metrics"
	"github.com/ippriv/ippriv/internal/model"
)

// API is the part of the guarded client the lookup depends on.
type API interface {
	GetIP(ctx context.Context) (*model.IPResponse, error)
	GetGeo(ctx context.Context, ip string) (*model.GeoResponse, error)
	GetDNS(ctx context.Context, ip string) (*model.DNSResponse, error)
	GetSecurity(ctx context.Context, ip string) (*model.SecurityResponse, error)
}

// Service runs composite IP lookups.
type Service struct {
	api     API
	localDB *LocalDB // may be nil
	demoIP  string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLocalDB(db *LocalDB) Option {
	return func(s *Service) {
		s.localDB = db
	}
}

// WithDemoIP sets the address looked up when IP detection reports a
// loopback address, as happens against a local development API.
func WithDemoIP(ip string) Option {
	return func(s *Service) {
		s.demoIP = ip
	}
}

// NewService creates a new service instance.
func NewService(api API, opts ...Option) (*Service, error) {
	if api == nil {
		return nil, errors.New("api client is required")
	}
	s := &Service{
		api:    api,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// LookupSelf detects the caller's address and looks it up. Detection
// failure is fatal: with no address there is nothing to look up.
func (s *Service) LookupSelf(ctx context.Context) (*model.Lookup, error) {
	detected, err := s.api.GetIP(ctx)
	if err != nil {
		return nil, fmt.Errorf("detect IP: %w", err)
	}

	ip := detected.IPv4
	if isLoopback(ip) && s.demoIP != "" {
		s.logger.Info("detected loopback address, using demo IP", "component", "lookup", "detected", ip, "demo_ip", s.demoIP)
		ip = s.demoIP
	}

	result := s.Lookup(ctx, ip)
	result.Timestamp = detected.Timestamp
	return result, nil
}

// Lookup fetches geolocation, DNS and security data for ip concurrently.
// A failed section is left nil and its error kind recorded; Lookup itself
// never fails.
func (s *Service) Lookup(ctx context.Context, ip string) *model.Lookup {
	logger := s.logger.With("component", "lookup", "lookup_id", uuid.NewString(), "ip", ip)
	result := &model.Lookup{IP: ip}

	var mu sync.Mutex
	fail := func(section string, err error) {
		kind := string(apiclient.KindOf(err))
		if kind == "" {
			kind = "error"
		}
		logger.Warn("section unavailable", "section", section, "kind", kind, "error", err)
		s.metrics.IncrementSectionFailure(section, kind)

		mu.Lock()
		defer mu.Unlock()
		if result.Errors == nil {
			result.Errors = make(map[string]string)
		}
		result.Errors[section] = kind
	}

	// Goroutines never return errors: one section failing must not cancel
	// the others.
	var g errgroup.Group

	g.Go(func() error {
		geo, err := s.api.GetGeo(ctx, ip)
		if err != nil {
			fail(model.SectionGeo, err)
			return nil
		}
		result.Geo = geo
		return nil
	})

	g.Go(func() error {
		dns, err := s.api.GetDNS(ctx, ip)
		if err != nil {
			fail(model.SectionDNS, err)
			return nil
		}
		result.DNS = dns
		return nil
	})

	g.Go(func() error {
		sec, err := s.api.GetSecurity(ctx, ip)
		if err != nil {
			fail(model.SectionSecurity, err)
			return nil
		}
		result.Security = s.enrich(ip, sec, logger)
		return nil
	})

	_ = g.Wait()

	if result.Security != nil {
		result.Network = HostingNetwork(result.Security.ASN)
	}

	s.metrics.IncrementLookups()
	logger.Debug("lookup complete", "failed_sections", len(result.Errors))
	return result
}

// enrich fills missing asn/org from the local database. The validated
// response is copied, not modified.
func (s *Service) enrich(ip string, sec *model.SecurityResponse, logger *slog.Logger) *model.SecurityResponse {
	if s.localDB == nil || (sec.ASN != "" && sec.Org != "") {
		return sec
	}
	asn, org, err := s.localDB.LookupASN(ip)
	if err != nil {
		logger.Debug("local ASN lookup failed", "error", err)
		return sec
	}

	out := *sec
	if out.ASN == "" {
		out.ASN = asn
	}
	if out.Org == "" {
		out.Org = org
	}
	return &out
}

// LocalDBLoaded reports whether local ASN enrichment is active.
func (s *Service) LocalDBLoaded() bool {
	return s.localDB != nil
}

// Close cleans up resources.
func (s *Service) Close() {
	s.localDB.Close()
}

func isLoopback(ip string) bool {
	switch ip {
	case "127.0.0.1", "::1", "Unknown":
		return true
	}
	return false
}
