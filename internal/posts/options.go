package posts

import (
	"log/slog"
	"time"

	"git.home.luguber.info/inful/blogcontent/internal/markdown"
	"git.home.luguber.info/inful/blogcontent/internal/metrics"
)

const (
	DefaultSummariesFile  = "summaries.md"
	DefaultTemplatePrefix = "_template"
	DefaultExcerptLength  = 150

	DefaultTitle       = "Untitled Post"
	DefaultAuthor      = "Anonymous"
	DefaultAvatar      = "/images/avatar-default.jpg"
	DefaultBio         = "Author"
	DefaultImage       = "/images/blog-1.jpg"
	DefaultImageAlt    = "Blog post image"
	DateLabelLayout    = "January 2, 2006"
	ErrorTag           = "error"
	maxRelatedPosts    = 3
	excerptEllipsis    = "..."
	placeholderMessage = "There was an error loading this blog post. Please try again later."
)

// Defaults holds the values used when a header omits author or image fields.
type Defaults struct {
	Author string
	Avatar string
	Bio    string
	Image  string
}

// Options configures a Loader. Zero values fall back to the package defaults.
type Options struct {
	SummariesFile  string
	TemplatePrefix string
	ExcerptLength  int
	Defaults       Defaults
	Mode           markdown.Mode
	Recorder       metrics.Recorder
	Logger         *slog.Logger
	// Now is used to date placeholder posts whose file cannot be stat'ed.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.SummariesFile == "" {
		o.SummariesFile = DefaultSummariesFile
	}
	if o.TemplatePrefix == "" {
		o.TemplatePrefix = DefaultTemplatePrefix
	}
	if o.ExcerptLength <= 0 {
		o.ExcerptLength = DefaultExcerptLength
	}
	if o.Defaults.Author == "" {
		o.Defaults.Author = DefaultAuthor
	}
	if o.Defaults.Avatar == "" {
		o.Defaults.Avatar = DefaultAvatar
	}
	if o.Defaults.Bio == "" {
		o.Defaults.Bio = DefaultBio
	}
	if o.Defaults.Image == "" {
		o.Defaults.Image = DefaultImage
	}
	if o.Recorder == nil {
		o.Recorder = metrics.NoopRecorder{}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
