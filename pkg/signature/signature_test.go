package signature

import "testing"

const testSecret = "shared-secret-token"

func TestVerify_ValidSignature(t *testing.T) {
	fullURL := "https://bot.example.org/api/webhook"
	params := map[string]string{
		"From":       "whatsapp:+9779812345678",
		"Body":       "how do I register?",
		"MessageSid": "SM123",
	}

	sig := Compute(fullURL, params, testSecret)
	if !Verify(fullURL, params, sig, testSecret) {
		t.Fatalf("Verify() = false for a correctly signed request")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	fullURL := "https://bot.example.org/api/webhook"
	params := map[string]string{"From": "whatsapp:+100", "Body": "hello"}

	sig := Compute(fullURL, params, "other-secret")
	if Verify(fullURL, params, sig, testSecret) {
		t.Fatalf("Verify() = true for a signature made with the wrong secret")
	}
}

func TestVerify_TamperedBody(t *testing.T) {
	fullURL := "https://bot.example.org/api/webhook"
	params := map[string]string{"From": "whatsapp:+100", "Body": "hello"}
	sig := Compute(fullURL, params, testSecret)

	params["Body"] = "hello there"
	if Verify(fullURL, params, sig, testSecret) {
		t.Fatalf("Verify() = true after the body was tampered with")
	}
}

func TestVerify_MissingHeaderOrSecret(t *testing.T) {
	fullURL := "https://bot.example.org/api/webhook"
	params := map[string]string{"Body": "hi"}

	if Verify(fullURL, params, "", testSecret) {
		t.Fatalf("Verify() = true with a missing signature header")
	}
	if Verify(fullURL, params, Compute(fullURL, params, testSecret), "") {
		t.Fatalf("Verify() = true with a missing shared secret")
	}
}

func TestVerify_MalformedURL(t *testing.T) {
	params := map[string]string{"Body": "hi"}
	sig := Compute("not-a-url", params, testSecret)
	if Verify("not-a-url", params, sig, testSecret) {
		t.Fatalf("Verify() = true for a URL without scheme/host")
	}
	if Verify("://broken", params, sig, testSecret) {
		t.Fatalf("Verify() = true for an unparseable URL")
	}
}

func TestCompute_SortsParamsByKey(t *testing.T) {
	fullURL := "https://bot.example.org/api/webhook"
	a := Compute(fullURL, map[string]string{"B": "2", "A": "1"}, testSecret)
	b := Compute(fullURL, map[string]string{"A": "1", "B": "2"}, testSecret)
	if a != b {
		t.Fatalf("Compute() depends on map iteration order: %q vs %q", a, b)
	}

	// Key order must matter in the canonical string itself.
	c := Compute(fullURL, map[string]string{"A": "2", "B": "1"}, testSecret)
	if a == c {
		t.Fatalf("Compute() ignored parameter values")
	}
}

func TestRequestURL_ForwardedHeadersWin(t *testing.T) {
	got := RequestURL("http", "10.0.0.5:3000", "/api/webhook?x=1", "https", "bot.example.org")
	want := "https://bot.example.org/api/webhook?x=1"
	if got != want {
		t.Fatalf("RequestURL() = %q, want %q", got, want)
	}

	got = RequestURL("http", "localhost:3000", "/api/webhook", "", "")
	if got != "http://localhost:3000/api/webhook" {
		t.Fatalf("RequestURL() without proxy headers = %q", got)
	}
}
