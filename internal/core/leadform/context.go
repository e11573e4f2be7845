package leadform

import (
	"context"
	"net/url"
	"time"
)

// TimestampLayout is ISO-8601 UTC with millisecond precision
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Location is what the page knew about itself at submit time
type Location struct {
	Query       url.Values
	Referrer    string
	Path        string
	ClientAgent string
}

// EnvironmentReader supplies the current Location, read only
type EnvironmentReader interface {
	Location(ctx context.Context) Location
}

// EnvironmentFunc adapts a function to EnvironmentReader
type EnvironmentFunc func(ctx context.Context) Location

// Location implements EnvironmentReader
func (f EnvironmentFunc) Location(ctx context.Context) Location { return f(ctx) }

// StaticEnvironment always reports the same Location
type StaticEnvironment Location

// Location implements EnvironmentReader
func (s StaticEnvironment) Location(context.Context) Location { return Location(s) }

// BuildContext snapshots loc at now, missing campaign params become empty strings
func BuildContext(loc Location, now time.Time) SubmissionContext {
	q := loc.Query
	if q == nil {
		q = url.Values{}
	}
	return SubmissionContext{
		CampaignSource:   q.Get("utm_source"),
		CampaignMedium:   q.Get("utm_medium"),
		CampaignCampaign: q.Get("utm_campaign"),
		Referrer:         loc.Referrer,
		Timestamp:        now.UTC().Format(TimestampLayout),
		PagePath:         loc.Path,
		ClientAgent:      loc.ClientAgent,
	}
}

// LocationFromURL splits a page URL into path and query; unparsable input yields the raw string as path
func LocationFromURL(pageURL, referrer, clientAgent string) Location {
	loc := Location{Referrer: referrer, ClientAgent: clientAgent, Query: url.Values{}}
	if pageURL == "" {
		return loc
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		loc.Path = pageURL
		return loc
	}
	loc.Path = u.Path
	loc.Query = u.Query()
	return loc
}
