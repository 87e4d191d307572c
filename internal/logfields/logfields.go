package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPostID      = "post_id"
	KeyFile        = "file"
	KeyDir         = "dir"
	KeyCount       = "count"
	KeyPlaceholder = "placeholders"
	KeyDurationMS  = "duration_ms"
	KeyCache       = "cache"
	KeyMethod      = "method"
	KeyPath        = "path"
	KeyStatus      = "status"
	KeyRequestID   = "request_id"
	KeyRemoteAddr  = "remote_addr"
	KeyUserAgent   = "user_agent"
	KeyAddr        = "addr"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func PostID(id string) slog.Attr       { return slog.String(KeyPostID, id) }
func File(name string) slog.Attr       { return slog.String(KeyFile, name) }
func Dir(path string) slog.Attr        { return slog.String(KeyDir, path) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Placeholders(n int) slog.Attr     { return slog.Int(KeyPlaceholder, n) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Cache(result string) slog.Attr    { return slog.String(KeyCache, result) }
func Method(m string) slog.Attr        { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Status(code int) slog.Attr        { return slog.Int(KeyStatus, code) }
func RequestID(id string) slog.Attr    { return slog.String(KeyRequestID, id) }
func RemoteAddr(addr string) slog.Attr { return slog.String(KeyRemoteAddr, addr) }
func UserAgent(ua string) slog.Attr    { return slog.String(KeyUserAgent, ua) }
func Addr(addr string) slog.Attr       { return slog.String(KeyAddr, addr) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
