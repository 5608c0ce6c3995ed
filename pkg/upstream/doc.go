// Package upstream implements the client for the generative-AI provider.
//
// The client issues a single HTTP POST to the provider's
// response-generation endpoint per chat turn, with bearer-token
// authentication and a hard deadline, and extracts the assistant's
// reply text from the provider's loosely-typed response document.
//
// # Basic Usage
//
//	client, err := upstream.NewClient(upstream.Config{
//	    Model:   "gpt-4.1-mini",
//	    Timeout: 8 * time.Second,
//	}, upstream.StaticCredential(apiKey))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	reply, err := client.Generate(ctx, "What is your experience?", systemInstruction)
//
// # Credential Injection
//
// The client never reads the environment itself. The credential is
// supplied by a CredentialSource injected at construction, resolved
// once per call: a StaticCredential for fixed tokens, or a secrets
// manager for deployments that rotate the key. This keeps the caller
// testable with fakes and keeps the token out of the client's state.
//
// # Call Semantics
//
// Exactly one attempt per call. The request payload is
//
//	{"model": "...", "input": [
//	    {"role": "system", "content": instruction},
//	    {"role": "user", "content": message}
//	]}
//
// with the system instruction always first. The call races a timer
// (default 8s); if the timer wins the in-flight request is aborted.
// There are no retries at any layer.
//
// # Text Extraction
//
// The response document is traversed tolerantly: entries of the
// "output" list contribute the "text" of every content part whose
// "type" is "output_text", concatenated in document order, with the
// top-level "output_text" string as a fallback when the list yields
// nothing. Fields with unexpected types are skipped, never an error;
// an empty extraction is a successful call returning "".
//
// # Error Handling
//
// Failures are explicit, typed values rather than a blanket failure:
//
//   - *TimeoutError - the deadline expired and the request was aborted
//   - *HTTPError - non-success status or transport failure, body attached
//   - *ParseError - the response body is not JSON
//   - *ConfigError - invalid construction or an unusable credential
//
// FailureKind maps any of these to a stable label for logs and
// metrics. The relay handler maps every kind to its masked-response
// policy; clients of this package never see provider error bodies.
package upstream
