package signature

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base64"
	"net/url"
	"sort"
	"strings"
)

// Header is the request header carrying the gateway's signature.
const Header = "X-Twilio-Signature"

// Verify reports whether signatureHeader matches the signature the messaging
// gateway computes for a request: HMAC-SHA1 over the full origin URL followed
// by every body parameter's key and value sorted lexicographically by key,
// base64 encoded.
//
// Verify never panics; a missing header, missing secret or malformed URL all
// yield false. Comparison is constant time.
func Verify(fullURL string, bodyParams map[string]string, signatureHeader, sharedSecret string) bool {
	if signatureHeader == "" || sharedSecret == "" {
		return false
	}

	u, err := url.Parse(fullURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	expected := Compute(fullURL, bodyParams, sharedSecret)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signatureHeader)) == 1
}

// Compute returns the canonical signature for a URL and body parameter set.
// Exposed so tests and local tooling can sign requests the way the gateway
// does.
func Compute(fullURL string, bodyParams map[string]string, sharedSecret string) string {
	keys := make([]string, 0, len(bodyParams))
	for k := range bodyParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(fullURL)
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteString(bodyParams[k])
	}

	mac := hmac.New(sha1.New, []byte(sharedSecret))
	mac.Write([]byte(sb.String()))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// RequestURL reconstructs the exact origin URL the gateway signed. The
// signature is byte-sensitive to this string, so forwarded proxy headers win
// over what the local listener saw.
func RequestURL(scheme, host, requestURI, forwardedProto, forwardedHost string) string {
	if forwardedProto != "" {
		scheme = forwardedProto
	}
	if forwardedHost != "" {
		host = forwardedHost
	}
	return scheme + "://" + host + requestURI
}
