package player

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/hashicorp/go-retryablehttp"
)

// ErrInvalidLocator is returned by ParseLocator for locators that can
// never be opened.
var ErrInvalidLocator = errors.New("invalid media locator")

const (
	httpDialTimeout           = 5 * time.Second
	httpKeepAlive             = 30 * time.Second
	httpTLSHandshakeTimeout   = 5 * time.Second
	httpResponseHeaderTimeout = 10 * time.Second
	httpIdleConnTimeout       = 90 * time.Second

	sniffLen = 261
)

// Container formats the backend can decode.
const (
	formatMP3    = "mp3"
	formatFLAC   = "flac"
	formatVorbis = "ogg"
	formatWAV    = "wav"
)

// Locator is a parsed media location: either a local path or a remote URL.
type Locator struct {
	Raw  string
	Path string   // set for local media
	URL  *url.URL // set for remote media
}

// IsRemote returns true if the media must be fetched over HTTP.
func (l Locator) IsRemote() bool {
	return l.URL != nil
}

// Name returns a human readable name derived from the locator.
func (l Locator) Name() string {
	if l.IsRemote() {
		base := l.URL.Path
		if i := strings.LastIndex(base, "/"); i >= 0 {
			base = base[i+1:]
		}
		if base == "" {
			return l.URL.Host
		}
		if unescaped, err := url.PathUnescape(base); err == nil {
			return unescaped
		}
		return base
	}
	return filepath.Base(l.Path)
}

// ParseLocator validates a media locator. Accepted forms are plain local
// paths, file:// URLs and http(s):// URLs.
func ParseLocator(raw string) (Locator, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Locator{}, fmt.Errorf("%w: empty", ErrInvalidLocator)
	}
	if !strings.Contains(raw, "://") {
		return Locator{Raw: raw, Path: raw}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Locator{}, fmt.Errorf("%w: %v", ErrInvalidLocator, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "file":
		if u.Path == "" {
			return Locator{}, fmt.Errorf("%w: file url without path", ErrInvalidLocator)
		}
		return Locator{Raw: raw, Path: u.Path}, nil
	case "http", "https":
		if u.Host == "" {
			return Locator{}, fmt.Errorf("%w: missing host", ErrInvalidLocator)
		}
		return Locator{Raw: raw, URL: u}, nil
	default:
		return Locator{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLocator, u.Scheme)
	}
}

// memSource holds fully downloaded remote media.
type memSource struct {
	*bytes.Reader
}

func (memSource) Close() error { return nil }

func newHTTPClient(retryMax int, timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   httpDialTimeout,
			KeepAlive: httpKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   httpTLSHandshakeTimeout,
		ResponseHeaderTimeout: httpResponseHeaderTimeout,
		IdleConnTimeout:       httpIdleConnTimeout,
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = retryMax
	retryClient.Logger = nil
	retryClient.HTTPClient = &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
	return retryClient.StandardClient()
}

// open returns a seekable reader over the media. Remote media is
// downloaded entirely; buffering transitions are reported on ev.
func (p *Player) open(ctx context.Context, loc Locator, ev Events) (io.ReadSeekCloser, error) {
	if !loc.IsRemote() {
		f, err := os.Open(loc.Path)
		if err != nil {
			return nil, err
		}
		ev.BufferingChanged(BufferingReady)
		return f, nil
	}

	ev.BufferingChanged(BufferingBuffering)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc.URL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch media: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read media body: %w", err)
	}
	p.log.Debug().Str("Method", "open").Str("URL", loc.Raw).Int("Bytes", len(data)).Msg("media downloaded")

	ev.BufferingChanged(BufferingReady)
	return memSource{bytes.NewReader(data)}, nil
}

// sniff detects the container format from the leading bytes and rewinds r.
// The file extension is used when the content is not recognised.
func sniff(r io.ReadSeeker, loc Locator) (string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read media header: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind media: %w", err)
	}

	kind, err := filetype.Match(head[:n])
	if err == nil && kind != filetype.Unknown {
		switch kind.Extension {
		case formatMP3, formatFLAC, formatVorbis, formatWAV:
			return kind.Extension, nil
		}
		return "", fmt.Errorf("%w: %s/%s", ErrUnsupportedFormat, kind.MIME.Type, kind.MIME.Subtype)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(loc.Name())), ".")
	switch ext {
	case formatMP3, formatFLAC, formatVorbis, formatWAV:
		return ext, nil
	}
	return "", fmt.Errorf("%w: unrecognised content", ErrUnsupportedFormat)
}
