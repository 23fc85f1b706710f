// Package mailparse normalizes raw RFC 5322 messages into flat records
// ready for indexing. Parsing is best-effort: malformed input degrades to
// partial or empty fields, it never produces an error.
package mailparse

import (
	"net/textproto"
	"strings"

	"github.com/jhillyerd/enmime"

	"github.com/mailsift/mailsift/internal/textutil"
)

// Message is one normalized email. Header fields are nil when the header is
// missing from the message, which is distinct from a present-but-empty
// header.
type Message struct {
	MessageID  *string
	SentAt     *string
	Sender     *string
	Recipients *string
	Subject    *string

	// Body is the best-effort plain-text content, trimmed. Empty when the
	// message has no readable text/plain content.
	Body string
}

// Parse normalizes one raw message. It always returns a Message: envelope
// parse failures degrade to a headerless record with whatever body text can
// be salvaged after the header block.
func Parse(raw string) *Message {
	env, err := enmime.ReadEnvelope(strings.NewReader(raw))
	if err != nil || env.Root == nil {
		return &Message{Body: rawBodyFallback(raw)}
	}

	return &Message{
		MessageID:  headerOpt(env, "Message-ID"),
		SentAt:     headerOpt(env, "Date"),
		Sender:     headerOpt(env, "From"),
		Recipients: headerOpt(env, "To"),
		Subject:    headerOpt(env, "Subject"),
		Body:       extractBody(env),
	}
}

// headerOpt returns the decoded header value, or nil when the header is not
// present in the message at all.
func headerOpt(env *enmime.Envelope, name string) *string {
	if _, ok := env.Root.Header[textproto.CanonicalMIMEHeaderKey(name)]; !ok {
		return nil
	}
	v := env.GetHeader(name)
	return &v
}

// extractBody pulls the plain-text body of a parsed envelope.
//
// Multipart messages yield the first text/plain leaf part in declaration
// order; HTML-only parts and attachments are ignored, so a multipart message
// without any text/plain part has an empty body. Single-part messages yield
// their content when it is text, and an empty body otherwise.
func extractBody(env *enmime.Envelope) string {
	root := env.Root
	if strings.HasPrefix(mediaType(root.ContentType), "multipart/") {
		if part := firstPlainPart(root.FirstChild); part != nil {
			return cleanBody(part.Content)
		}
		return ""
	}
	if strings.HasPrefix(mediaType(root.ContentType), "text/") {
		return cleanBody(root.Content)
	}
	return ""
}

// firstPlainPart walks a part list depth-first (declaration order) and
// returns the first text/plain leaf, or nil.
func firstPlainPart(part *enmime.Part) *enmime.Part {
	for ; part != nil; part = part.NextSibling {
		if part.FirstChild != nil {
			if found := firstPlainPart(part.FirstChild); found != nil {
				return found
			}
			continue
		}
		if mediaType(part.ContentType) == "text/plain" {
			return part
		}
	}
	return nil
}

// mediaType strips content-type parameters: "text/plain; charset=x" →
// "text/plain".
func mediaType(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

// cleanBody converts decoded part content to trimmed, valid UTF-8 text.
// enmime has already applied transfer decoding; EnsureUTF8 covers mislabeled
// or broken charsets without ever failing.
func cleanBody(content []byte) string {
	return strings.TrimSpace(textutil.EnsureUTF8(string(content)))
}

// rawBodyFallback salvages body text from a message the envelope parser
// rejected: everything after the first blank line, sanitized.
func rawBodyFallback(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	if idx := strings.Index(raw, "\n\n"); idx >= 0 {
		return strings.TrimSpace(textutil.EnsureUTF8(raw[idx+2:]))
	}
	return ""
}
