// Package filename validates document names and derives duplicate names.
//
// Names live in a single flat namespace: they may not contain path
// separators, and their extension selects how the content is rendered.
package filename

import (
	"path"
	"slices"
	"strconv"
	"strings"
	"sync"

	apperrors "github.com/john129er/cms-project/internal/platform/errors"
	"github.com/john129er/cms-project/internal/services/docs/i18n"
)

// Kind is the content kind selected by a document extension.
type Kind int

const (
	// KindUnknown marks an extension outside the registry.
	KindUnknown Kind = iota
	// KindText is plain text served as-is.
	KindText
	// KindMarkdown is markdown rendered to HTML.
	KindMarkdown
)

// String returns the kind label.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

const duplicateStart = 2

// Policy holds the registered extensions.
type Policy struct {
	mu         sync.RWMutex
	extensions map[string]Kind
}

// NewPolicy returns a policy accepting .txt and .md.
func NewPolicy() *Policy {
	return &Policy{extensions: map[string]Kind{
		".txt": KindText,
		".md":  KindMarkdown,
	}}
}

// Register adds ext (with its leading dot) as an accepted extension of kind.
func (p *Policy) Register(ext string, kind Kind) {
	ext = strings.TrimSpace(ext)
	if ext == "" || kind == KindUnknown {
		return
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	p.mu.Lock()
	p.extensions[ext] = kind
	p.mu.Unlock()
}

// Extensions returns the accepted extensions, defaults first.
func (p *Policy) Extensions() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	exts := make([]string, 0, len(p.extensions))
	for ext := range p.extensions {
		exts = append(exts, ext)
	}
	slices.SortFunc(exts, compareExtensions)
	return exts
}

// ValidateName rejects blank names and names that would leave the flat namespace.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.New(apperrors.CodeEmptyName, i18n.Sprintf(i18n.KeyNameRequired))
	}
	if name == "." || name == ".." || strings.ContainsAny(name, "/\\\x00") {
		return apperrors.WithMetadata(apperrors.CodeInvalidName,
			i18n.Sprintf(i18n.KeyNameInvalid, name),
			map[string]string{"name": name})
	}
	return nil
}

// KindOf resolves the kind of name from its extension.
func (p *Policy) KindOf(name string) Kind {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.extensions[path.Ext(name)]
}

// ValidateExtension returns the kind of name or an UnsupportedExtension error.
func (p *Policy) ValidateExtension(name string) (Kind, error) {
	kind := p.KindOf(name)
	if kind == KindUnknown {
		return KindUnknown, apperrors.WithMetadata(apperrors.CodeUnsupportedExtension,
			i18n.Sprintf(i18n.KeyExtensionUnsupported, strings.Join(p.Extensions(), ", ")),
			map[string]string{"name": name, "extension": path.Ext(name)})
	}
	return kind, nil
}

// Validate runs ValidateName and ValidateExtension.
func (p *Policy) Validate(name string) (Kind, error) {
	if err := ValidateName(name); err != nil {
		return KindUnknown, err
	}
	return p.ValidateExtension(name)
}

// NextDuplicateName returns the name a copy of name should take.
//
// A trailing "(n)" on the base name is incremented in place; any other name
// gets "(2)" appended before its extension. The result is not checked against
// existing documents.
func NextDuplicateName(name string) string {
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if prefix, n, ok := splitCounter(base); ok {
		return prefix + "(" + strconv.FormatUint(n+1, 10) + ")" + ext
	}
	return base + "(" + strconv.Itoa(duplicateStart) + ")" + ext
}

// splitCounter parses a trailing "(digits)" group off base.
func splitCounter(base string) (string, uint64, bool) {
	if !strings.HasSuffix(base, ")") {
		return "", 0, false
	}
	open := strings.LastIndexByte(base, '(')
	if open < 0 {
		return "", 0, false
	}
	digits := base[open+1 : len(base)-1]
	if digits == "" {
		return "", 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return "", 0, false
		}
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil || n == ^uint64(0) {
		return "", 0, false
	}
	return base[:open], n, true
}

// compareExtensions keeps the defaults in their documented order (.txt, .md)
// ahead of registered additions.
func compareExtensions(a, b string) int {
	rank := func(ext string) int {
		switch ext {
		case ".txt":
			return 0
		case ".md":
			return 1
		default:
			return 2
		}
	}
	if ra, rb := rank(a), rank(b); ra != rb {
		return ra - rb
	}
	return strings.Compare(a, b)
}
