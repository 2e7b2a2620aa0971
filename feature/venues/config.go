package venues

// Config holds the file locations consumed by a reconciliation run.
// Paths may contain ~ and environment variables; they are expanded at the
// point of use.
type Config struct {
	// DefaultConferences is the curated conference table (flat JSON).
	DefaultConferences string `mapstructure:"default_conferences" default:"data/conferences.json"`
	// DefaultJournals is the curated journal table (flat JSON).
	DefaultJournals string `mapstructure:"default_journals" default:"data/journals.json"`
	// UserConferences is the optional nested user override for conferences.
	UserConferences string `mapstructure:"user_conferences" default:""`
	// UserJournals is the optional nested user override for journals.
	UserJournals string `mapstructure:"user_journals" default:""`
	// Bibliography is the BibLaTeX source scanned for new name pairs.
	Bibliography string `mapstructure:"bibliography" default:""`
}

// DefaultPath returns the curated table path for a kind.
func (c Config) DefaultPath(k Kind) string {
	if k == KindArticle {
		return c.DefaultJournals
	}
	return c.DefaultConferences
}

// UserPath returns the user override path for a kind.
func (c Config) UserPath(k Kind) string {
	if k == KindArticle {
		return c.UserJournals
	}
	return c.UserConferences
}
