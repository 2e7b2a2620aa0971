package venues

import (
	"regexp"
	"strings"
)

// Kind identifies one of the two bibliography namespaces.
type Kind string

const (
	// KindArticle covers @article entries (journals).
	KindArticle Kind = "article"
	// KindInproceedings covers @inproceedings entries (conferences).
	KindInproceedings Kind = "inproceedings"
)

// Kinds lists the supported entry kinds in processing order.
var Kinds = []Kind{KindInproceedings, KindArticle}

// kindSpec bundles the extraction parameters for one entry kind.
type kindSpec struct {
	// prefix is the cite-key prefix selecting entries of this kind.
	prefix string
	// entry matches one bibliography entry non-greedily up to the next
	// @-header or end of text, capturing the cite key and the body.
	entry *regexp.Regexp
	// fullField captures the mandatory full-name field value.
	fullField *regexp.Regexp
	// abbrField captures the optional abbreviated-name field value.
	abbrField *regexp.Regexp
}

var kindSpecs = map[Kind]kindSpec{
	KindArticle: {
		prefix:    "J_",
		entry:     regexp.MustCompile(`(?s)@article\{(.*?),\s*([^@]*)\}`),
		fullField: regexp.MustCompile(`journaltitle\s*=\s*\{([^}]*)\}`),
		abbrField: regexp.MustCompile(`shortjournal\s*=\s*\{([^}]*)\}`),
	},
	KindInproceedings: {
		prefix:    "C_",
		entry:     regexp.MustCompile(`(?s)@inproceedings\{(.*?),\s*([^@]*)\}`),
		fullField: regexp.MustCompile(`booktitle\s*=\s*\{([^}]*)\}`),
		abbrField: regexp.MustCompile(`eventtitle\s*=\s*\{([^}]*)\}`),
	},
}

// Valid reports whether k is a supported entry kind.
func (k Kind) Valid() bool {
	_, ok := kindSpecs[k]
	return ok
}

// Namespace returns the storage namespace for the kind.
func (k Kind) Namespace() string {
	if k == KindArticle {
		return "journals"
	}
	return "conferences"
}

// UserSections returns the section-name vocabulary recognized in the
// nested user override file for this kind. Matching is case-insensitive,
// so only the singular/plural stems are listed.
func (k Kind) UserSections() []string {
	if k == KindArticle {
		return []string{"journals", "journal"}
	}
	return []string{"conferences", "conference"}
}

// KindFromNamespace resolves a namespace path segment ("conferences",
// "journal", ...) to its entry kind.
func KindFromNamespace(ns string) (Kind, bool) {
	switch strings.ToLower(ns) {
	case "conferences", "conference":
		return KindInproceedings, true
	case "journals", "journal":
		return KindArticle, true
	default:
		return "", false
	}
}
