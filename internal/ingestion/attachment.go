// Package ingestion resolves pipeline inputs: the source brief document and the
// new product details.
package ingestion

import (
	"fmt"
	"mime"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jonathan/campaign-pipeline/internal/llm"
)

// MaxInlineBytes is the largest local file sent inline with a request
const MaxInlineBytes = 20 << 20

// remoteSchemes are resolved by the model endpoint, not locally
var remoteSchemes = map[string]bool{
	"gs":    true,
	"http":  true,
	"https": true,
}

// ResolveAttachment turns a document reference into an attachment. Remote
// references (gs://, http://, https://) are passed by URI; anything else is read
// from the local filesystem and sent inline. mimeType overrides detection.
func ResolveAttachment(ref, mimeType string) (llm.Attachment, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return llm.Attachment{}, fmt.Errorf("document reference is empty")
	}

	if u, err := url.Parse(ref); err == nil && remoteSchemes[strings.ToLower(u.Scheme)] {
		return resolveRemote(u, ref, mimeType)
	}
	return resolveLocal(ref, mimeType)
}

func resolveRemote(u *url.URL, ref, mimeType string) (llm.Attachment, error) {
	if mimeType == "" {
		mimeType = baseMediaType(mime.TypeByExtension(path.Ext(u.Path)))
	}
	if mimeType == "" {
		return llm.Attachment{}, fmt.Errorf("media type is required for %s: cannot infer it from the extension", ref)
	}
	return llm.Attachment{URI: ref, MIMEType: mimeType}, nil
}

func resolveLocal(filePath, mimeType string) (llm.Attachment, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return llm.Attachment{}, fmt.Errorf("document not found: %s", filePath)
		}
		return llm.Attachment{}, fmt.Errorf("failed to stat document: %w", err)
	}
	if info.IsDir() {
		return llm.Attachment{}, fmt.Errorf("document is a directory: %s", filePath)
	}
	if info.Size() > MaxInlineBytes {
		return llm.Attachment{}, fmt.Errorf("document %s is %d bytes, larger than the %d byte inline limit; upload it and pass its URI", filePath, info.Size(), MaxInlineBytes)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return llm.Attachment{}, fmt.Errorf("failed to read document: %w", err)
	}
	if len(data) == 0 {
		return llm.Attachment{}, fmt.Errorf("document is empty: %s", filePath)
	}

	if mimeType == "" {
		mimeType = baseMediaType(mimetype.Detect(data).String())
	}

	return llm.Attachment{Data: data, MIMEType: mimeType}, nil
}

// baseMediaType strips parameters such as "; charset=utf-8"
func baseMediaType(mediaType string) string {
	if mediaType == "" {
		return ""
	}
	base, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return ""
	}
	return base
}
