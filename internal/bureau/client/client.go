// Package client provides the XDS credit bureau collaborator. The production
// bureau integration is swapped in behind the same Synthesize call; this
// implementation fabricates a consumer credit enquiry from the client record.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/time/rate"

	clientsrepo "nerve_engine_backend/internal/clients/repository"
	"nerve_engine_backend/platform/config"
	"nerve_engine_backend/platform/logger"
)

const (
	bureauName       = "XDS"
	enquiryReason    = "Credit assessment"
	enquiryType      = "Consumer Credit Enquiry"
	defaultRateLimit = rate.Limit(5)
)

// Enquiry is the bureau response for a single consumer credit enquiry.
type Enquiry struct {
	Bureau        string
	EnquiryReason string
	EnquiryDate   time.Time
	EnquiryType   string

	MaritalStatus string
	Gender        string
	Title         string
	FirstName     string
	SecondName    string
	Surname       string
	IDNumber      string
	DateOfBirth   string
	Cellular      string

	ResidentialAddress string
	PostalAddress      string
	CurrentEmployer    string
	EmploymentStatus   string

	FraudIDVerified      bool
	FraudDeceasedStatus  string
	FraudFoundOnDatabase bool

	PresageScore int
	NLRScore     int

	RawPayload json.RawMessage
}

// Client performs bureau enquiries. One instance is shared across requests;
// randomness goes through the locked top-level math/rand source.
type Client struct {
	cfg     config.BureauConfig
	log     *logger.Logger
	limiter *rate.Limiter
}

// New creates a new bureau client.
func New(cfg config.BureauConfig, log *logger.Logger) *Client {
	limit := rate.Limit(cfg.GetBureauRateLimitRPS())
	if limit <= 0 {
		limit = defaultRateLimit
	}

	return &Client{
		cfg:     cfg,
		log:     log,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Synthesize performs a bureau enquiry for the client and returns the
// enrichment payload. Calls are rate limited against the collaborator.
func (c *Client) Synthesize(ctx context.Context, client clientsrepo.Client) (Enquiry, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Enquiry{}, fmt.Errorf("bureau rate limit wait: %w", err)
	}

	enquiry := Enquiry{
		Bureau:        bureauName,
		EnquiryReason: enquiryReason,
		EnquiryDate:   time.Now().UTC(),
		EnquiryType:   enquiryType,

		MaritalStatus: pick("Single", "Married"),
		Gender:        pick("Male", "Female"),
		Title:         "Mr",
		FirstName:     client.FirstName,
		SecondName:    "",
		Surname:       client.Surname,
		IDNumber:      client.IDNumber,
		DateOfBirth:   client.DateOfBirth,
		Cellular:      c.normalizePhone(client.Phone),

		ResidentialAddress: "Johannesburg",
		PostalAddress:      "Johannesburg",
		CurrentEmployer:    "Private Company",
		EmploymentStatus:   "Employed",

		FraudIDVerified:      true,
		FraudDeceasedStatus:  "Not Deceased",
		FraudFoundOnDatabase: false,

		PresageScore: c.scoreInBand(),
		NLRScore:     c.scoreInBand(),

		RawPayload: json.RawMessage(`{"mock": true}`),
	}

	c.log.Debug("bureau enquiry synthesized",
		"client_id", client.ID, "presage_score", enquiry.PresageScore)

	return enquiry, nil
}

// normalizePhone formats the client cellular number to E.164 so the enquiry
// payload matches what the bureau expects. The raw value is kept when it
// cannot be parsed.
func (c *Client) normalizePhone(raw string) string {
	if raw == "" {
		return raw
	}

	parsed, err := phonenumbers.Parse(raw, c.cfg.GetBureauDefaultRegion())
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return raw
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}

func (c *Client) scoreInBand() int {
	floor := c.cfg.GetBureauScoreFloor()
	ceiling := c.cfg.GetBureauScoreCeiling()
	if ceiling <= floor {
		return floor
	}
	return floor + rand.Intn(ceiling-floor+1)
}

func pick(options ...string) string {
	return options[rand.Intn(len(options))]
}
