package directory

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/vc-sourcer/internal/venture"
)

const (
	StartupsPath   = "/startups"
	PortfoliosPath = "/portfolios"
	PeoplePath     = "/people"

	sourceName = "directory"
)

// SearchParams are startup search filters. Fields are sent as query
// parameters named by the dirparam tag; empty values are omitted.
type SearchParams struct {
	Text       string   `dirparam:"text"`
	Industries []string `dirparam:"industry"`
	Stages     []string `dirparam:"stage"`
	Locations  []string `dirparam:"location"`
	PerPage    int      `dirparam:"per_page"`
	// Limit caps collected items and is not sent.
	Limit int `dirparam:"-"`
}

// SearchStartups returns startups matching params across all pages.
func (c *Client) SearchStartups(ctx context.Context, params *SearchParams) ([]*venture.StartupProfile, error) {
	if params.PerPage <= 0 {
		params.PerPage = defaultPerPage
	}
	if params.Limit > 0 && params.Limit < params.PerPage {
		params.PerPage = params.Limit
	}

	items, err := c.getItems(ctx, c.BaseURL+StartupsPath, buildParams(params), params.Limit)
	if err != nil {
		return nil, fmt.Errorf("search startups %q: %w", params.Text, err)
	}

	var startups []*venture.StartupProfile
	if err := decodeItems(items, &startups); err != nil {
		return nil, fmt.Errorf("decode startups: %w", err)
	}

	now := time.Now().UTC()
	for _, s := range startups {
		if s.Source == "" {
			s.Source = sourceName
		}
		if s.ScrapedAt.IsZero() {
			s.ScrapedAt = now
		}
	}
	return startups, nil
}

// Portfolio lists companies backed by a firm.
func (c *Client) Portfolio(ctx context.Context, firm string, limit int) ([]venture.PortfolioCompany, error) {
	q := url.Values{}
	q.Set("firm", firm)
	perPage := defaultPerPage
	if limit > 0 && limit < perPage {
		perPage = limit
	}
	q.Set("per_page", strconv.Itoa(perPage))

	items, err := c.getItems(ctx, c.BaseURL+PortfoliosPath, q, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch portfolio for %q: %w", firm, err)
	}

	var companies []venture.PortfolioCompany
	if err := decodeItems(items, &companies); err != nil {
		return nil, fmt.Errorf("decode portfolio: %w", err)
	}
	return companies, nil
}

// PeopleParams are talent search filters for one portfolio company.
type PeopleParams struct {
	Text     string `dirparam:"text"`
	Company  string `dirparam:"company"`
	Platform string `dirparam:"platform"`
	PerPage  int    `dirparam:"per_page"`
	Limit    int    `dirparam:"-"`
}

// SearchPeople returns people matching params. Missing company and platform
// fields are taken from the query.
func (c *Client) SearchPeople(ctx context.Context, params *PeopleParams) ([]*venture.TalentProfile, error) {
	if params.PerPage <= 0 {
		params.PerPage = defaultPerPage
	}
	if params.Limit > 0 && params.Limit < params.PerPage {
		params.PerPage = params.Limit
	}

	items, err := c.getItems(ctx, c.BaseURL+PeoplePath, buildParams(params), params.Limit)
	if err != nil {
		return nil, fmt.Errorf("search people for %q: %w", params.Company, err)
	}

	var people []*venture.TalentProfile
	if err := decodeItems(items, &people); err != nil {
		return nil, fmt.Errorf("decode people: %w", err)
	}

	for _, p := range people {
		if p.Company == "" {
			p.Company = params.Company
		}
		if p.Platform == "" {
			p.Platform = params.Platform
		}
	}
	return people, nil
}

func decodeItems(items []Item, out any) error {
	cfg := &mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		Squash:           true,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339),
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return decoder.Decode(items)
}

// buildParams encodes a pointer to a dirparam-tagged struct.
func buildParams(params any) url.Values {
	q := url.Values{}
	v := reflect.ValueOf(params).Elem()

	for _, field := range reflect.VisibleFields(v.Type()) {
		key := field.Tag.Get("dirparam")
		if key == "" || key == "-" {
			continue
		}

		value := v.FieldByIndex(field.Index)
		switch value.Kind() {
		case reflect.Slice:
			for i := 0; i < value.Len(); i++ {
				if s := strings.TrimSpace(fmt.Sprintf("%v", value.Index(i).Interface())); s != "" {
					q.Add(key, s)
				}
			}
		default:
			s := fmt.Sprintf("%v", value.Interface())
			if s != "" && s != "0" {
				q.Set(key, s)
			}
		}
	}

	return q
}
