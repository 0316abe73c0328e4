package server

import (
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Supported Content-Encoding values, in server preference order.
const (
	encodingZstd = "zstd"
	encodingLZ4  = "lz4"
	encodingGzip = "gzip"
)

var preferredEncodings = []string{encodingZstd, encodingLZ4, encodingGzip}

// flushWriteCloser is implemented by every compressor used here.
type flushWriteCloser interface {
	io.WriteCloser
	Flush() error
}

// negotiateEncoding picks the preferred encoding the client accepts, or ""
func negotiateEncoding(header string) string {
	accepted := make(map[string]bool)
	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		q := 1.0
		if k, v, ok := strings.Cut(strings.TrimSpace(params), "="); ok && strings.TrimSpace(k) == "q" {
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				q = parsed
			}
		}
		accepted[name] = q > 0
	}
	for _, enc := range preferredEncodings {
		if accepted[enc] {
			return enc
		}
	}
	return ""
}

func newCompressor(encoding string, w io.Writer) (flushWriteCloser, error) {
	switch encoding {
	case encodingZstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			return nil, err
		}
		return enc, nil
	case encodingLZ4:
		return lz4.NewWriter(w), nil
	default:
		gz, err := gzip.NewWriterLevel(w, gzip.BestSpeed)
		if err != nil {
			return nil, err
		}
		return gz, nil
	}
}

// compressionMiddleware compresses response bodies with zstd, lz4 or gzip
// according to Accept-Encoding
func compressionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Encoding")
		encoding := negotiateEncoding(r.Header.Get("Accept-Encoding"))
		if encoding == "" || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		cw := &compressWriter{ResponseWriter: w, encoding: encoding}
		defer func() {
			if err := cw.Close(); err != nil {
				log.Printf("ERROR: Closing %s writer failed: %v", encoding, err)
			}
		}()
		next.ServeHTTP(cw, r)
	})
}

// compressWriter starts compressing on the first write
type compressWriter struct {
	http.ResponseWriter
	encoding    string
	compressor  flushWriteCloser
	wroteHeader bool
	err         error
}

func (cw *compressWriter) WriteHeader(code int) {
	if cw.wroteHeader {
		return
	}
	cw.wroteHeader = true
	if code != http.StatusNoContent && code != http.StatusNotModified {
		h := cw.Header()
		h.Set("Content-Encoding", cw.encoding)
		h.Del("Content-Length")
		cw.compressor, cw.err = newCompressor(cw.encoding, cw.ResponseWriter)
		if cw.err != nil {
			h.Del("Content-Encoding")
		}
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *compressWriter) Write(p []byte) (int, error) {
	if !cw.wroteHeader {
		cw.WriteHeader(http.StatusOK)
	}
	if cw.compressor == nil {
		return cw.ResponseWriter.Write(p)
	}
	return cw.compressor.Write(p)
}

func (cw *compressWriter) Flush() {
	if cw.compressor != nil {
		if err := cw.compressor.Flush(); err != nil {
			log.Printf("ERROR: Flushing %s writer failed: %v", cw.encoding, err)
		}
	}
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (cw *compressWriter) Close() error {
	if cw.err != nil {
		return cw.err
	}
	if cw.compressor == nil {
		return nil
	}
	return cw.compressor.Close()
}
