package drs

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// GA4GH DRS URI handling. File events carry drs_uri fields of the form
// drs://<host>/<object_id>; the matching HTTP API lives under
// https://<host>/ga4gh/drs/v1/objects/<object_id>.

const (
	Scheme      = "drs"
	objectsPath = "/ga4gh/drs/v1/objects/"
)

var (
	ErrHostRequired     = errors.New("drs: host is required")
	ErrObjectIDRequired = errors.New("drs: object ID is required")
	ErrObjectIDInvalid  = errors.New("drs: object ID may only contain unreserved characters")
	ErrNotDRSURI        = errors.New("drs: not a DRS URI")
)

// Per the DRS spec, object IDs in URIs are limited to RFC 3986 unreserved
// characters.
var objectIDRegex = regexp.MustCompile(`^[A-Za-z0-9._~-]+$`)

// URI is a parsed DRS URI.
type URI struct {
	Host     string
	ObjectID string
}

// BuildURI assembles a DRS URI for an object hosted on the given server.
func BuildURI(host, objectID string) (string, error) {
	host = strings.TrimSpace(host)
	objectID = strings.TrimSpace(objectID)

	if host == "" {
		return "", ErrHostRequired
	}
	if objectID == "" {
		return "", ErrObjectIDRequired
	}
	if !objectIDRegex.MatchString(objectID) {
		return "", ErrObjectIDInvalid
	}

	u := url.URL{
		Scheme: Scheme,
		Host:   host,
		Path:   "/" + objectID,
	}
	return u.String(), nil
}

// ParseURI splits a DRS URI into its host and object ID.
func ParseURI(rawURI string) (URI, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return URI{}, fmt.Errorf("%w: %v", ErrNotDRSURI, err)
	}
	if u.Scheme != Scheme {
		return URI{}, fmt.Errorf("%w: scheme %q", ErrNotDRSURI, u.Scheme)
	}
	if u.Host == "" {
		return URI{}, ErrHostRequired
	}

	objectID := strings.TrimPrefix(u.Path, "/")
	if objectID == "" {
		return URI{}, ErrObjectIDRequired
	}
	if !objectIDRegex.MatchString(objectID) {
		return URI{}, ErrObjectIDInvalid
	}

	return URI{Host: u.Host, ObjectID: objectID}, nil
}

// ObjectURL returns the HTTPS endpoint serving the object's DRS metadata.
func (u URI) ObjectURL() string {
	return "https://" + u.Host + objectsPath + url.PathEscape(u.ObjectID)
}

func (u URI) String() string {
	uri, _ := BuildURI(u.Host, u.ObjectID)
	return uri
}
